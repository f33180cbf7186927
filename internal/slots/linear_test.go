// SPDX-License-Identifier: MIT
package slots

import (
	"math"
	"testing"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/geometry"
)

func linearState(t *testing.T, sections, slotCount int) (*composition.State, *geometry.Result) {
	t.Helper()
	state := &composition.State{
		Shape:            composition.Rectangular,
		FinishX:          48,
		FinishY:          20,
		Sections:         sections,
		Separation:       0.75,
		SlotStyle:        composition.Linear,
		SlotCount:        slotCount,
		BitDiameter:      0.25,
		Spacer:           0.5,
		YOffset:          1.0,
		SideMargin:       1.0,
		ScaleCenterPoint: 1.0,
	}
	geom, err := geometry.Solve(state)
	if err != nil {
		t.Fatal(err)
	}
	state.Amplitudes = make([]float64, slotCount)
	for i := range state.Amplitudes {
		state.Amplitudes[i] = 4 + float64(i%5)
	}
	return state, geom
}

func TestGenerateLinearSingleSection(t *testing.T) {
	state, geom := linearState(t, 1, 40)

	polys, err := Generate(state, geom)
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 40 {
		t.Fatalf("got %d polygons, want 40", len(polys))
	}

	for i, p := range polys {
		// Linear slots are axis-aligned rectangles centered on y=0.
		if math.Abs(p.Center.Y) > 1e-9 {
			t.Errorf("polygon %d center y = %.6f, want 0", i, p.Center.Y)
		}
		if math.Abs(p.Length-state.Amplitudes[i]) > 1e-9 {
			t.Errorf("polygon %d length = %.4f, want amplitude %.4f", i, p.Length, state.Amplitudes[i])
		}
		if i > 0 && polys[i].Center.X <= polys[i-1].Center.X {
			t.Errorf("polygon %d not laid out left to right", i)
		}
	}

	// Uniform pitch between adjacent slots.
	pitch := polys[1].Center.X - polys[0].Center.X
	for i := 2; i < len(polys); i++ {
		if math.Abs((polys[i].Center.X-polys[i-1].Center.X)-pitch) > 1e-9 {
			t.Fatalf("pitch changes at polygon %d", i)
		}
	}
}

func TestGenerateLinearClampsHeights(t *testing.T) {
	state, geom := linearState(t, 1, 30)
	for i := range state.Amplitudes {
		state.Amplitudes[i] = 0.01 // Below the two-bit minimum
	}
	state.Amplitudes[0] = 100 // Above the panel

	polys, err := Generate(state, geom)
	if err != nil {
		t.Fatal(err)
	}

	minHeight := 2 * state.BitDiameter
	maxHeight := state.FinishY - 2*state.YOffset
	if math.Abs(polys[0].Length-maxHeight) > 1e-9 {
		t.Errorf("oversized slot clamped to %.4f, want %.4f", polys[0].Length, maxHeight)
	}
	for i := 1; i < len(polys); i++ {
		if math.Abs(polys[i].Length-minHeight) > 1e-9 {
			t.Errorf("tiny slot %d clamped to %.4f, want %.4f", i, polys[i].Length, minHeight)
		}
	}
}

func TestGenerateLinearTwoSectionsSplitEvenly(t *testing.T) {
	state, geom := linearState(t, 2, 40)

	polys, err := Generate(state, geom)
	if err != nil {
		t.Fatal(err)
	}
	counts := map[int]int{}
	for _, p := range polys {
		counts[p.Section]++
	}
	if counts[0] != 20 || counts[1] != 20 {
		t.Errorf("section counts = %v, want 20 each", counts)
	}

	// Every slot of section 0 sits left of every slot of section 1.
	var maxLeft, minRight float64 = math.Inf(-1), math.Inf(1)
	for _, p := range polys {
		if p.Section == 0 && p.Center.X > maxLeft {
			maxLeft = p.Center.X
		}
		if p.Section == 1 && p.Center.X < minRight {
			minRight = p.Center.X
		}
	}
	if maxLeft >= minRight {
		t.Errorf("sections overlap: left max %.4f, right min %.4f", maxLeft, minRight)
	}
}

func TestGenerateLinearMultiSectionUsesDistribution(t *testing.T) {
	state, geom := linearState(t, 3, 60)

	polys, err := Generate(state, geom)
	if err != nil {
		t.Fatal(err)
	}

	counts := map[int]int{}
	for _, p := range polys {
		counts[p.Section]++
	}
	if counts[0] != counts[2] {
		t.Errorf("end sections differ: %v", counts)
	}
	if len(polys) == 0 {
		t.Fatal("no polygons generated")
	}
}

func TestResampleAmplitudes(t *testing.T) {
	in := []float64{1, 2, 3, 4}

	t.Run("shrink keeps endpoints region", func(t *testing.T) {
		out := resampleAmplitudes(in, 2)
		if len(out) != 2 {
			t.Fatalf("got %d values, want 2", len(out))
		}
		if out[0] != 1 || out[1] != 3 {
			t.Errorf("got %v, want [1 3]", out)
		}
	})

	t.Run("grow repeats values", func(t *testing.T) {
		out := resampleAmplitudes(in, 8)
		if len(out) != 8 {
			t.Fatalf("got %d values, want 8", len(out))
		}
		if out[0] != 1 || out[7] != 4 {
			t.Errorf("endpoints wrong: %v", out)
		}
	})

	t.Run("empty input yields zeros", func(t *testing.T) {
		out := resampleAmplitudes(nil, 3)
		if len(out) != 3 {
			t.Fatalf("got %d values, want 3", len(out))
		}
	})
}

func TestLinearSectionWidth(t *testing.T) {
	state := &composition.State{FinishX: 48, Sections: 3, Separation: 1.5}
	if got := linearSectionWidth(state); math.Abs(got-15) > 1e-9 {
		t.Errorf("got %.4f, want 15", got)
	}
}
