// SPDX-License-Identifier: MIT
package slots

import (
	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/geometry"
	"github.com/worshipwaves/WDweb-sub000/pkg/geo"
)

// generateLinear builds axis-aligned rectangular slots laid out left to
// right. Up to two sections split slots evenly; more sections go
// through the symmetric distribution solver.
func generateLinear(state *composition.State, geom *geometry.Result) ([]Polygon, error) {
	var dist *distribution
	var err error
	if state.Sections > 2 {
		dist, err = solveDistribution(state)
		if err != nil {
			return nil, err
		}
	} else {
		dist = evenDistribution(state)
	}
	return layoutLinear(state, geom, dist)
}

// layoutLinear emits one rectangle per slot following the given
// per-section distribution.
func layoutLinear(state *composition.State, geom *geometry.Result, dist *distribution) ([]Polygon, error) {
	total := 0
	for _, n := range dist.counts {
		total += n
	}
	amplitudes := state.Amplitudes
	if total != state.SlotCount {
		// The distribution solver settled on a neighboring total; fit
		// the amplitude array to it.
		slotLog.Warnf("distribution places %d slots for a %d-slot request, resampling amplitudes", total, state.SlotCount)
		amplitudes = resampleAmplitudes(amplitudes, total)
	}

	minHeight := 2 * state.BitDiameter
	maxHeight := state.FinishY - 2*state.YOffset
	if maxHeight < minHeight {
		maxHeight = minHeight
	}

	sectionWidth := linearSectionWidth(state)
	pitch := dist.slotWidth + state.Spacer

	out := make([]Polygon, 0, state.SlotCount)
	global := 0
	for s, count := range dist.counts {
		left := -state.FinishX/2 + float64(s)*(sectionWidth+state.Separation)
		// Center this section's run inside its width.
		run := float64(count)*dist.slotWidth + float64(count-1)*state.Spacer
		x := left + (sectionWidth-run)/2 + dist.slotWidth/2

		for i := 0; i < count; i++ {
			amplitude := geo.Clamp(amplitudes[global], minHeight, maxHeight)
			half := amplitude / 2
			hw := dist.slotWidth / 2
			out = append(out, newPolygon(
				geo.Point{X: x - hw, Y: -half},
				geo.Point{X: x - hw, Y: half},
				geo.Point{X: x + hw, Y: half},
				geo.Point{X: x + hw, Y: -half},
				s, i,
			))
			x += pitch
			global++
		}
	}
	slotLog.Debugf("generated %d linear slots across %d sections", len(out), state.Sections)
	return out, nil
}

// resampleAmplitudes fits an amplitude array to a new slot count by
// nearest-index selection.
func resampleAmplitudes(amplitudes []float64, count int) []float64 {
	if len(amplitudes) == 0 || count <= 0 {
		return make([]float64, count)
	}
	out := make([]float64, count)
	ratio := float64(len(amplitudes)) / float64(count)
	for i := range out {
		idx := int(float64(i) * ratio)
		if idx >= len(amplitudes) {
			idx = len(amplitudes) - 1
		}
		out[i] = amplitudes[idx]
	}
	return out
}

// linearSectionWidth is the horizontal width of one section after
// removing separations.
func linearSectionWidth(state *composition.State) float64 {
	return (state.FinishX - float64(state.Sections-1)*state.Separation) / float64(state.Sections)
}

// evenDistribution splits slots evenly across one or two sections with
// a uniform width derived from the usable width after side margins.
func evenDistribution(state *composition.State) *distribution {
	counts := make([]int, state.Sections)
	base := state.SlotCount / state.Sections
	rem := state.SlotCount % state.Sections
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}

	perSection := counts[0]
	usable := linearSectionWidth(state) - 2*state.SideMargin
	width := (usable - float64(perSection-1)*state.Spacer) / float64(perSection)
	if width < state.BitDiameter {
		width = state.BitDiameter
	}
	return &distribution{counts: counts, slotWidth: width}
}
