// SPDX-License-Identifier: MIT
package slots

import (
	"math"
	"testing"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/pkg/geo"
)

func TestCircleReach(t *testing.T) {
	tests := []struct {
		name   string
		center geo.Point
		angle  float64
		radius float64
		want   float64
	}{
		{"from center any direction", geo.Point{}, 1.2, 10, 10},
		{"offset toward far side", geo.Point{X: -3}, 0, 10, 13},
		{"offset toward near side", geo.Point{X: 3}, 0, 10, 7},
		{"vertical from offset", geo.Point{X: 3}, math.Pi / 2, 5, 4}, // sqrt(25-9)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := circleReach(tt.center, geo.Dir(tt.angle), tt.radius)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func TestRectReach(t *testing.T) {
	tests := []struct {
		name   string
		center geo.Point
		angle  float64
		want   float64
	}{
		{"right from center", geo.Point{}, 0, 8},
		{"up from center", geo.Point{}, math.Pi / 2, 5},
		{"right from offset", geo.Point{X: 3}, 0, 5},
		{"diagonal hits top first", geo.Point{}, math.Pi / 4, 5 * math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rectReach(tt.center, geo.Dir(tt.angle), 8, 5)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func TestAngleDiff(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{0, math.Pi, math.Pi},
		{0.1, 2*math.Pi - 0.1, 0.2},
		{-math.Pi / 2, math.Pi / 2, math.Pi},
		{3 * math.Pi, 0, math.Pi},
	}
	for _, tt := range tests {
		if got := angleDiff(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("angleDiff(%.3f, %.3f) = %.6f, want %.6f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCorrectorShiftFavorsOutwardFacingSlots(t *testing.T) {
	state, geom := radialState(t)
	state.VisualCorrectionMode = composition.CorrectionCenter
	c := newCorrector(state, geom)

	// Section 1 (right half) faces outward along angle 0. The on-axis
	// reach is what MaxRadius was derived from, so the on-axis slot
	// needs no correction, and the slot pointing back across the gap
	// is weighted out entirely.
	if onAxis := c.shift(1, 0); math.Abs(onAxis) > 1e-9 {
		t.Errorf("on-axis shift = %.6f, want 0", onAxis)
	}
	if backward := c.shift(1, math.Pi); backward != 0 {
		t.Errorf("backward shift = %.6f, want 0", backward)
	}

	// Off-axis slots see extra reach toward the rim and shift outward.
	if offAxis := c.shift(1, math.Pi/3); offAxis <= 0 {
		t.Errorf("off-axis shift = %.6f, want positive", offAxis)
	}
}

func TestCorrectorScaleMultipliesShift(t *testing.T) {
	state, geom := radialState(t)
	state.VisualCorrectionMode = composition.CorrectionCenter

	base := newCorrector(state, geom).shift(1, math.Pi/3)

	state.VisualCorrectionScale = 0.5
	halved := newCorrector(state, geom).shift(1, math.Pi/3)

	if math.Abs(halved-base/2) > 1e-9 {
		t.Errorf("scaled shift = %.6f, want %.6f", halved, base/2)
	}
}

func TestCorrectionModesMoveDifferentParts(t *testing.T) {
	state, geom := radialState(t)

	state.VisualCorrectionMode = composition.CorrectionOff
	plain, err := Generate(state, geom)
	if err != nil {
		t.Fatal(err)
	}

	state.VisualCorrectionMode = composition.CorrectionCenter
	centered, err := Generate(state, geom)
	if err != nil {
		t.Fatal(err)
	}

	state.VisualCorrectionMode = composition.CorrectionNudge
	nudged, err := Generate(state, geom)
	if err != nil {
		t.Fatal(err)
	}

	// Both modes must move at least the outward-facing slots relative
	// to the uncorrected layout.
	moved := func(a, b []Polygon) bool {
		for i := range a {
			if a[i].Center.Dist(b[i].Center) > 1e-9 {
				return true
			}
		}
		return false
	}
	if !moved(plain, centered) {
		t.Error("center correction changed nothing")
	}
	if !moved(plain, nudged) {
		t.Error("nudge correction changed nothing")
	}
}
