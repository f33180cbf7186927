// SPDX-License-Identifier: MIT
//
// Package geometry derives the physical layout of a panel from its
// composition state: section centers, minimum and maximum slot radii,
// the V-frame quantities radial slots are generated in, and the single
// maximum-amplitude scalar every slot height is scaled against.
package geometry

import (
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/log"
	"github.com/worshipwaves/WDweb-sub000/pkg/geo"
)

var geomLog = log.Component("Geometry")

// Result is the computed geometry for one composition. Values are
// immutable once returned; radial quantities are only meaningful for
// the radial slot style.
type Result struct {
	// Radius is the panel's global inscribed-circle radius.
	Radius float64
	// SectionCenters holds the local center of each section in panel
	// coordinates.
	SectionCenters []geo.Point

	// SlotAngle is the angular width of one slot around the V-point.
	SlotAngle float64
	// SlotAngles holds the per-slot reference angle within a section,
	// already rolled for the grain angle.
	SlotAngles []float64
	// AutoRoll is the number of slot steps the fan was rotated to align
	// with the grain.
	AutoRoll int

	// MinRadius and MaxRadius bound the slot span measured from the
	// local section center.
	MinRadius float64
	MaxRadius float64

	// Circumradius is the distance from the local center to the
	// V-point; MinRadiusV/MaxRadiusV are the same bounds measured from
	// the V-point.
	Circumradius float64
	MinRadiusV   float64
	MaxRadiusV   float64

	// CenterPoint is the radial midpoint slots are centered on, in the
	// V-frame (or the vertical midpoint for linear layouts).
	CenterPoint float64
	// MaxAmplitude is the scaling factor all normalized slot heights
	// are multiplied by.
	MaxAmplitude float64
}

// Solve computes the full geometry for a composition state.
func Solve(state *composition.State) (*Result, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Radius:         inscribedRadius(state),
		SectionCenters: sectionCenters(state),
	}

	slots := state.SlotsPerSection()
	if slots < 1 {
		slots = 1
	}
	res.SlotAngle = 2 * math.Pi / float64(slots)
	res.AutoRoll = autoRoll(state.GrainAngle, slots)
	res.SlotAngles = make([]float64, slots)
	for i := range res.SlotAngles {
		res.SlotAngles[i] = float64(res.AutoRoll+i) * res.SlotAngle
	}

	res.MinRadius = MinimumRadius(state.BitDiameter, state.Spacer, slots)
	res.MaxRadius = maximumLocalRadius(state, res.Radius, res.MinRadius)

	solveVFrame(state, res)

	if state.SlotStyle == composition.Linear {
		if err := applyLinearOverride(state, res); err != nil {
			return nil, err
		}
	}

	if res.MaxAmplitude < 0 {
		res.MaxAmplitude = 0
	}
	geomLog.Debugf("solved %s %dx%.0f: maxAmplitude=%.3f minR=%.3f maxR=%.3f",
		state.Shape, state.Sections, state.FinishX, res.MaxAmplitude, res.MinRadius, res.MaxRadius)
	return res, nil
}

// inscribedRadius returns the radius of the largest circle contained by
// the panel outline.
func inscribedRadius(state *composition.State) float64 {
	switch state.Shape {
	case composition.Circular:
		return state.FinishX / 2
	case composition.Diamond:
		a := state.FinishX / 2
		b := state.FinishY / 2
		return a * b / math.Hypot(a, b)
	default: // Rectangular
		return math.Min(state.FinishX, state.FinishY) / 2
	}
}

// autoRoll returns the slot-step rotation that aligns the fan
// perpendicular to the material grain. With a 90 degree grain the fan
// rolls half a revolution: (slotCount/sections)/2 steps.
func autoRoll(grainAngle float64, slotsPerSection int) int {
	stepDeg := 360.0 / float64(slotsPerSection)
	roll := int(math.Round((grainAngle + 90) / stepDeg))
	roll %= slotsPerSection
	if roll < 0 {
		roll += slotsPerSection
	}
	return roll
}

// solveVFrame converts the radial bounds to the V-point frame and
// derives the center point and maximum amplitude.
func solveVFrame(state *composition.State, res *Result) {
	half := res.SlotAngle / 2
	sinHalf := math.Sin(half)
	if sinHalf < 1e-9 {
		sinHalf = 1e-9
	}

	res.Circumradius = state.Spacer / (2 * sinHalf)
	res.MinRadiusV = res.MinRadius - res.Circumradius
	res.MaxRadiusV = res.MaxRadius - res.Circumradius

	// The bit must fit as a chord subtending the slot angle at the
	// inner end; this floors the inner V radius.
	bitFloor := (state.BitDiameter / 2) / sinHalf
	if res.MinRadiusV < bitFloor {
		res.MinRadiusV = bitFloor
	}
	// The outer bound is clamped upward, never the inner downward.
	if res.MaxRadiusV < res.MinRadiusV {
		res.MaxRadiusV = res.MinRadiusV
	}

	res.CenterPoint = (res.MinRadiusV + res.MaxRadiusV) / 2 * state.ScaleCenterPoint

	outer := res.MaxRadiusV - res.CenterPoint
	inner := res.CenterPoint - res.MinRadiusV
	amp := 2 * math.Min(outer, inner)
	if amp < 0 {
		amp = 0
	}
	// Adjacent radial slots converge toward the V-point; the cosine
	// term corrects for the angular wedge overlap.
	res.MaxAmplitude = amp * math.Cos(half)
}

// sectionCenters returns the local center of every section.
func sectionCenters(state *composition.State) []geo.Point {
	sep := state.Separation
	xOff := state.XOffset

	switch state.Sections {
	case 1:
		return []geo.Point{{}}
	case 2:
		d := sep/2 + xOff
		return []geo.Point{{X: -d}, {X: d}}
	case 3:
		d := (sep + 2*xOff) / math.Sqrt(3)
		return []geo.Point{
			geo.Polar(d, geo.Deg(90)),
			geo.Polar(d, geo.Deg(330)),
			geo.Polar(d, geo.Deg(210)),
		}
	default: // 4
		if state.SlotStyle == composition.Linear {
			// Linear 4-section panels split evenly across the width.
			w := state.FinishX / 4
			return []geo.Point{
				{X: -1.5 * w}, {X: -0.5 * w}, {X: 0.5 * w}, {X: 1.5 * w},
			}
		}
		d := (sep + 2*xOff) / math.Sqrt2
		return []geo.Point{
			geo.Polar(d, geo.Deg(45)),
			geo.Polar(d, geo.Deg(135)),
			geo.Polar(d, geo.Deg(225)),
			geo.Polar(d, geo.Deg(315)),
		}
	}
}

// maximumLocalRadius derives the largest slot radius a section can use:
// the inscribed radius minus the section center's offset from the
// global center minus the vertical inset. The offset component depends
// on the section count: horizontal for two sections, vertical for
// three, Euclidean for four.
func maximumLocalRadius(state *composition.State, radius, minRadius float64) float64 {
	var offset float64
	switch state.Sections {
	case 2:
		offset = state.Separation/2 + state.XOffset
	case 3:
		offset = (state.Separation + 2*state.XOffset) / math.Sqrt(3)
	case 4:
		offset = (state.Separation + 2*state.XOffset) / math.Sqrt2
	}

	max := radius - math.Abs(offset) - state.YOffset
	if floor := minRadius + state.BitDiameter; max < floor {
		geomLog.Debugf("maximum radius %.3f below floor, clamping to %.3f", max, floor)
		max = floor
	}
	return max
}

// applyLinearOverride replaces the radial center point and maximum
// amplitude with the linear-layout values.
func applyLinearOverride(state *composition.State, res *Result) error {
	if state.Shape == composition.Rectangular {
		res.MaxAmplitude = state.FinishY - 2*state.YOffset
		res.CenterPoint = state.FinishY / 2
		if res.MaxAmplitude < 0 {
			res.MaxAmplitude = 0
		}
		return nil
	}

	amp, err := linearAmplitudeSearch(state, res.Radius)
	if err != nil {
		return fmt.Errorf("linear amplitude search: %w", err)
	}
	res.MaxAmplitude = amp
	res.CenterPoint = 0
	return nil
}
