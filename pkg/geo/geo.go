// SPDX-License-Identifier: MIT
//
// Package geo provides the small set of 2D primitives shared by the
// geometry solver and the slot coordinate generator. All values are in
// inches unless a function says otherwise; angles are radians measured
// counter-clockwise from the positive x axis.
package geo

import "math"

// Epsilon is the tolerance used for boundary containment checks in the
// panel math. Dimensions are in inches, so anything below a tenth of a
// thousandth is noise.
const Epsilon = 1e-4

// Point is a 2D coordinate in panel space.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Norm returns the distance from p to the origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Polar returns the point at distance r from the origin along angle theta.
func Polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Dir returns the unit vector along angle theta.
func Dir(theta float64) Point {
	return Point{X: math.Cos(theta), Y: math.Sin(theta)}
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Deg converts degrees to radians.
func Deg(d float64) float64 {
	return d * math.Pi / 180.0
}
