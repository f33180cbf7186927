// SPDX-License-Identifier: MIT
//
// Package slots turns amplitudes plus solved geometry into the final
// 2D cut polygons, one per slot.
package slots

import (
	"math"

	"github.com/worshipwaves/WDweb-sub000/pkg/geo"
)

// Polygon is one slot's cut outline: an ordered list of five points
// forming a closed trapezoid or rectangle, the first point repeated
// last.
type Polygon struct {
	Points [5]geo.Point

	// Derived quantities for toolpath planning and preview.
	Center geo.Point
	Angle  float64 // Orientation of the slot's long axis, radians
	Length float64 // Extent along the long axis
	Width  float64 // Extent across the long axis

	Section int // Owning section index
	Index   int // Slot index within the section
}

// newPolygon closes the four corner points into a Polygon and fills in
// the derived center, orientation and extents. Corners must be ordered
// around the outline; the long axis runs from the p0-p3 edge midpoint
// to the p1-p2 edge midpoint.
func newPolygon(p0, p1, p2, p3 geo.Point, section, index int) Polygon {
	poly := Polygon{
		Points:  [5]geo.Point{p0, p1, p2, p3, p0},
		Section: section,
		Index:   index,
	}

	inMid := midpoint(p0, p3)
	outMid := midpoint(p1, p2)
	poly.Center = midpoint(inMid, outMid)
	poly.Angle = math.Atan2(outMid.Y-inMid.Y, outMid.X-inMid.X)
	poly.Length = inMid.Dist(outMid)
	poly.Width = (p0.Dist(p3) + p1.Dist(p2)) / 2
	return poly
}

func midpoint(a, b geo.Point) geo.Point {
	return geo.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
