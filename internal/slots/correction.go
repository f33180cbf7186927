// SPDX-License-Identifier: MIT
package slots

import (
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/geometry"
	"github.com/worshipwaves/WDweb-sub000/pkg/geo"
)

// corrector computes the per-slot visual correction for multi-section
// radial layouts. Sections pulled away from the global center leave
// uneven margins; the correction redistributes each slot based on its
// exact reach to the panel boundary, weighted by a cosine falloff from
// the section's primary axis.
type corrector struct {
	state *composition.State
	geom  *geometry.Result
	scale float64
}

func newCorrector(state *composition.State, geom *geometry.Result) *corrector {
	scale := state.VisualCorrectionScale
	if scale == 0 {
		scale = 1
	}
	return &corrector{state: state, geom: geom, scale: scale}
}

// shift returns the correction distance for the slot at the given fan
// angle in the given section. Positive values push the slot outward.
func (c *corrector) shift(section int, angle float64) float64 {
	center := c.geom.SectionCenters[section]
	reach := c.boundaryReach(center, angle)
	if reach <= 0 {
		return 0
	}

	available := reach - c.state.YOffset
	baseline := c.geom.MaxRadius
	delta := available - baseline
	if delta == 0 {
		return 0
	}

	axis := sectionRotation(c.state.Sections, section)
	weight := math.Cos(angleDiff(angle, axis))
	if weight < 0 {
		weight = 0
	}
	return delta * weight * c.scale
}

// boundaryReach returns the distance from the section's local center to
// the panel boundary along the given direction. Circular panels use the
// exact line-circle intersection; rectangular panels take the minimum
// positive parametric hit across the four half-plane bounds. Diamond
// panels fall back to the inscribed circle.
func (c *corrector) boundaryReach(center geo.Point, angle float64) float64 {
	dir := geo.Dir(angle)
	switch c.state.Shape {
	case composition.Rectangular:
		return rectReach(center, dir, c.state.FinishX/2, c.state.FinishY/2)
	default:
		return circleReach(center, dir, c.geom.Radius)
	}
}

// circleReach solves |center + t*dir| = radius for the positive root.
func circleReach(center, dir geo.Point, radius float64) float64 {
	b := center.X*dir.X + center.Y*dir.Y
	cc := center.X*center.X + center.Y*center.Y - radius*radius
	disc := b*b - cc
	if disc < 0 {
		return 0
	}
	t := -b + math.Sqrt(disc)
	if t < 0 {
		return 0
	}
	return t
}

// rectReach returns the smallest positive t where center + t*dir leaves
// the rectangle |x| <= a, |y| <= b.
func rectReach(center, dir geo.Point, a, b float64) float64 {
	best := math.Inf(1)
	if dir.X != 0 {
		for _, bound := range []float64{a, -a} {
			t := (bound - center.X) / dir.X
			if t > 0 && math.Abs(center.Y+t*dir.Y) <= b+geo.Epsilon && t < best {
				best = t
			}
		}
	}
	if dir.Y != 0 {
		for _, bound := range []float64{b, -b} {
			t := (bound - center.Y) / dir.Y
			if t > 0 && math.Abs(center.X+t*dir.X) <= a+geo.Epsilon && t < best {
				best = t
			}
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

// angleDiff returns the absolute angular distance between two angles,
// normalized to [0, pi].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
