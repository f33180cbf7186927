// SPDX-License-Identifier: MIT
package geometry

import (
	"math"
	"testing"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
)

func TestBoundarySegmentsSingleCircle(t *testing.T) {
	state := twoSectionCircle()
	state.Sections = 1
	res, err := Solve(state)
	if err != nil {
		t.Fatal(err)
	}

	sections, err := BoundarySegments(state, res)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 || len(sections[0]) != 1 {
		t.Fatalf("got %d sections, want one full-circle arc", len(sections))
	}
	arc := sections[0][0]
	if arc.Kind != SegmentArc || arc.Radius != 18 {
		t.Errorf("got %+v, want a radius-18 arc", arc)
	}
	if !almostEqual(arc.EndAngle-arc.StartAngle, 2*math.Pi, 1e-12) {
		t.Errorf("arc spans %.6f, want a full revolution", arc.EndAngle-arc.StartAngle)
	}
}

func TestBoundarySegmentsTwoSections(t *testing.T) {
	state := twoSectionCircle()
	res, err := Solve(state)
	if err != nil {
		t.Fatal(err)
	}

	sections, err := BoundarySegments(state, res)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}

	for i, section := range sections {
		if len(section) != 2 {
			t.Fatalf("section %d has %d segments, want arc + chord", i, len(section))
		}
		arc, chord := section[0], section[1]
		if arc.Kind != SegmentArc || chord.Kind != SegmentLine {
			t.Fatalf("section %d segment kinds wrong: %+v", i, section)
		}

		// The separation gap at both ends shrinks the arc below a half
		// revolution by twice the gap angle.
		gap := math.Asin(state.Separation / (2 * res.Radius))
		wantSpan := math.Pi - 2*gap
		if !almostEqual(arc.EndAngle-arc.StartAngle, wantSpan, 1e-9) {
			t.Errorf("section %d arc spans %.6f, want %.6f", i, arc.EndAngle-arc.StartAngle, wantSpan)
		}

		// The chord closes the outline back to the arc start.
		start := chord.Start
		if !almostEqual(start.Norm(), res.Radius, 1e-9) {
			t.Errorf("section %d chord start at radius %.4f, want on the circle", i, start.Norm())
		}
	}
}

func TestBoundarySegmentsWedges(t *testing.T) {
	for _, sections := range []int{3, 4} {
		state := twoSectionCircle()
		state.Sections = sections
		state.SlotCount = 72
		res, err := Solve(state)
		if err != nil {
			t.Fatalf("sections=%d: %v", sections, err)
		}

		out, err := BoundarySegments(state, res)
		if err != nil {
			t.Fatalf("sections=%d: %v", sections, err)
		}
		if len(out) != sections {
			t.Fatalf("sections=%d: got %d outlines", sections, len(out))
		}
		for i, outline := range out {
			if len(outline) != 3 {
				t.Fatalf("sections=%d outline %d has %d segments, want arc + 2 lines", sections, i, len(outline))
			}
			if outline[0].Kind != SegmentArc || outline[1].Kind != SegmentLine || outline[2].Kind != SegmentLine {
				t.Errorf("sections=%d outline %d has wrong segment kinds", sections, i)
			}
			// Both edge lines meet at the shared inner vertex.
			if outline[1].End != outline[2].Start {
				t.Errorf("sections=%d outline %d edges do not meet at the inner vertex", sections, i)
			}
		}
	}
}

func TestBoundarySegmentsRectangleOutline(t *testing.T) {
	state := &composition.State{
		Shape:            composition.Rectangular,
		FinishX:          48,
		FinishY:          24,
		Sections:         1,
		SlotStyle:        composition.Linear,
		SlotCount:        40,
		BitDiameter:      0.25,
		Spacer:           0.5,
		YOffset:          1,
		ScaleCenterPoint: 1.0,
	}
	res, err := Solve(state)
	if err != nil {
		t.Fatal(err)
	}

	out, err := BoundarySegments(state, res)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || len(out[0]) != 4 {
		t.Fatalf("got %v, want one four-edge outline", out)
	}
	for i, seg := range out[0] {
		if seg.Kind != SegmentLine {
			t.Errorf("edge %d is not a line", i)
		}
		next := out[0][(i+1)%4]
		if seg.End != next.Start {
			t.Errorf("edge %d does not connect to edge %d", i, (i+1)%4)
		}
	}
}

func TestBoundarySegmentsMultiSectionRectangleUnsupported(t *testing.T) {
	state := &composition.State{
		Shape:            composition.Rectangular,
		FinishX:          48,
		FinishY:          24,
		Sections:         2,
		SlotStyle:        composition.Linear,
		SlotCount:        40,
		BitDiameter:      0.25,
		Spacer:           0.5,
		ScaleCenterPoint: 1.0,
	}
	if _, err := BoundarySegments(state, &Result{Radius: 12}); err == nil {
		t.Error("expected an error for multi-section rectangular boundaries")
	}
}
