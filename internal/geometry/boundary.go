// SPDX-License-Identifier: MIT
package geometry

import (
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/pkg/geo"
)

// SegmentKind distinguishes outline segment types.
type SegmentKind int

const (
	SegmentArc SegmentKind = iota
	SegmentLine
)

// Segment is one piece of a section's cut boundary. Arc segments run
// counter-clockwise from StartAngle to EndAngle around Center; line
// segments run from Start to End.
type Segment struct {
	Kind SegmentKind

	// Arc fields
	Center     geo.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64

	// Line fields
	Start geo.Point
	End   geo.Point
}

// BoundarySegments produces the outline of every section as an
// alternating arc/line sequence. Sections of a circular panel separate
// along bisector gaps of half-angle asin(separation/2R); three- and
// four-section wedges meet at inner vertices pulled back from the
// global center. Rectangular and diamond panels are supported for a
// single section only.
func BoundarySegments(state *composition.State, res *Result) ([][]Segment, error) {
	if state.Shape != composition.Circular {
		if state.Sections == 1 {
			return [][]Segment{outlinePolygon(state)}, nil
		}
		return nil, fmt.Errorf("boundary segments for %d-section %s panels are not supported", state.Sections, state.Shape)
	}

	r := res.Radius
	switch state.Sections {
	case 1:
		return [][]Segment{{
			{Kind: SegmentArc, Center: geo.Point{}, Radius: r, StartAngle: 0, EndAngle: 2 * math.Pi},
		}}, nil
	case 2:
		return splitCircle(r, state.Separation, []float64{0, math.Pi}, math.Pi), nil
	case 3:
		return wedgeSections(r, state.Separation,
			[]float64{geo.Deg(90), geo.Deg(330), geo.Deg(210)},
			2*math.Pi/3, state.Separation/math.Sqrt(3)), nil
	case 4:
		return wedgeSections(r, state.Separation,
			[]float64{geo.Deg(45), geo.Deg(135), geo.Deg(225), geo.Deg(315)},
			math.Pi/2, state.Separation/math.Sqrt2), nil
	default:
		return nil, fmt.Errorf("unsupported section count %d", state.Sections)
	}
}

// gapAngle is the angular half-gap the separation consumes at radius r.
func gapAngle(separation, r float64) float64 {
	arg := separation / (2 * r)
	if arg >= 1 {
		return math.Pi / 2
	}
	return math.Asin(arg)
}

// splitCircle builds two half-circle sections split along a vertical
// gap. Each section is its arc plus the chord line closing it; no
// inner vertices are needed for fewer than three sections.
func splitCircle(r, separation float64, axes []float64, span float64) [][]Segment {
	gap := gapAngle(separation, r)
	out := make([][]Segment, len(axes))
	for i, axis := range axes {
		a0 := axis - span/2 + gap
		a1 := axis + span/2 - gap
		start := geo.Polar(r, a0)
		end := geo.Polar(r, a1)
		out[i] = []Segment{
			{Kind: SegmentArc, Center: geo.Point{}, Radius: r, StartAngle: a0, EndAngle: a1},
			{Kind: SegmentLine, Start: end, End: start},
		}
	}
	return out
}

// wedgeSections builds pie-wedge sections: an outer arc, then lines
// from each arc end to the section's inner vertex at innerDist from
// the global center along the section axis.
func wedgeSections(r, separation float64, axes []float64, span, innerDist float64) [][]Segment {
	gap := gapAngle(separation, r)
	out := make([][]Segment, len(axes))
	for i, axis := range axes {
		a0 := axis - span/2 + gap
		a1 := axis + span/2 - gap
		arcStart := geo.Polar(r, a0)
		arcEnd := geo.Polar(r, a1)
		inner := geo.Polar(innerDist, axis)
		out[i] = []Segment{
			{Kind: SegmentArc, Center: geo.Point{}, Radius: r, StartAngle: a0, EndAngle: a1},
			{Kind: SegmentLine, Start: arcEnd, End: inner},
			{Kind: SegmentLine, Start: inner, End: arcStart},
		}
	}
	return out
}

// outlinePolygon returns the four edges of a rectangular or diamond
// panel as line segments.
func outlinePolygon(state *composition.State) []Segment {
	a := state.FinishX / 2
	b := state.FinishY / 2
	var corners []geo.Point
	if state.Shape == composition.Diamond {
		corners = []geo.Point{{X: a}, {Y: b}, {X: -a}, {Y: -b}}
	} else {
		corners = []geo.Point{{X: a, Y: b}, {X: -a, Y: b}, {X: -a, Y: -b}, {X: a, Y: -b}}
	}
	out := make([]Segment, len(corners))
	for i := range corners {
		out[i] = Segment{
			Kind:  SegmentLine,
			Start: corners[i],
			End:   corners[(i+1)%len(corners)],
		}
	}
	return out
}
