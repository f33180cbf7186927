// SPDX-License-Identifier: MIT
package slots

import (
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/geometry"
	"github.com/worshipwaves/WDweb-sub000/internal/log"
	"github.com/worshipwaves/WDweb-sub000/pkg/geo"
)

var slotLog = log.Component("Slots")

// Generate produces the cut polygon for every slot of the composition.
// Amplitudes must already be scaled to physical heights.
func Generate(state *composition.State, geom *geometry.Result) ([]Polygon, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if err := state.ValidateAmplitudes(); err != nil {
		return nil, err
	}
	if state.SlotStyle == composition.Linear {
		return generateLinear(state, geom)
	}
	return generateRadial(state, geom)
}

// sectionRotation returns the fan rotation offset for one section,
// keyed by (sectionCount, sectionIndex). The offsets mirror the section
// layout axes so every fan faces its own section outward.
func sectionRotation(sections, index int) float64 {
	rotations := map[int][]float64{
		1: {0},
		2: {180, 0},
		3: {90, 330, 210},
		4: {45, 135, 225, 315},
	}
	table, ok := rotations[sections]
	if !ok || index >= len(table) {
		return 0
	}
	return geo.Deg(table[index])
}

// generateRadial builds trapezoid slots fanning out from each
// section's V-points.
func generateRadial(state *composition.State, geom *geometry.Result) ([]Polygon, error) {
	perSection := state.SlotsPerSection()
	half := geom.SlotAngle / 2
	cosHalf := math.Cos(half)
	if cosHalf < 1e-9 {
		return nil, fmt.Errorf("slot angle %.4f too wide for radial layout", geom.SlotAngle)
	}

	var correct *corrector
	if state.Sections > 1 && state.VisualCorrectionMode != composition.CorrectionOff {
		correct = newCorrector(state, geom)
	}

	out := make([]Polygon, 0, state.SlotCount)
	for s := 0; s < state.Sections; s++ {
		center := geom.SectionCenters[s]
		rotation := sectionRotation(state.Sections, s)

		for i := 0; i < perSection; i++ {
			angle := geom.SlotAngles[i] + rotation
			amplitude := state.Amplitudes[s*perSection+i]

			centerPoint := geom.CenterPoint
			nudge := 0.0
			if correct != nil {
				shift := correct.shift(s, angle)
				if state.VisualCorrectionMode == composition.CorrectionCenter {
					centerPoint += shift
				} else {
					nudge = shift
				}
			}

			inner := geo.Clamp(centerPoint-amplitude/2, geom.MinRadiusV, geom.MaxRadiusV)
			outer := geo.Clamp(centerPoint+amplitude/2, geom.MinRadiusV, geom.MaxRadiusV)

			// Corner distances run along the wedge edges, so the radial
			// extents stretch by the angular half-width.
			dIn := inner / cosHalf
			dOut := outer / cosHalf

			vertex := center.Add(geo.Polar(geom.Circumradius+nudge, angle))
			lo := angle - half
			hi := angle + half

			out = append(out, newPolygon(
				vertex.Add(geo.Polar(dIn, lo)),
				vertex.Add(geo.Polar(dOut, lo)),
				vertex.Add(geo.Polar(dOut, hi)),
				vertex.Add(geo.Polar(dIn, hi)),
				s, i,
			))
		}
	}
	slotLog.Debugf("generated %d radial slots across %d sections", len(out), state.Sections)
	return out, nil
}
