// SPDX-License-Identifier: MIT
package geometry

import "math"

// Newton-Raphson termination bounds for the minimum-radius solve.
const (
	minRadiusResidualTol = 1e-9
	minRadiusDeltaTol    = 1e-6
	minRadiusMaxIter     = 100
	minRadiusStepCap     = 0.75 // Step magnitude capped at this fraction of r
	minRadiusFloorScale  = 1.0001
)

// MinimumRadius solves for the smallest radius at which one bit-width
// slot plus one spacer fit inside one slot pitch around the V-point:
//
//	2*asin(bit/2r) + 2*asin(spacer/2r) = 2*pi/slots
//
// The iteration starts from the chord approximation and falls back to
// it if the asin domain is violated or convergence fails. The result is
// floored just above half the larger of bit and spacer, where the asin
// arguments stay valid.
func MinimumRadius(bitDiameter, spacer float64, slots int) float64 {
	if slots <= 0 {
		slots = 1
	}
	pitch := 2 * math.Pi / float64(slots)
	chord := (bitDiameter + spacer) / (2 * math.Sin(pitch/2))

	r := chord
	converged := false
	for i := 0; i < minRadiusMaxIter; i++ {
		argBit := bitDiameter / (2 * r)
		argSpacer := spacer / (2 * r)
		if argBit >= 1 || argSpacer >= 1 {
			// Left the solver's domain; the chord approximation is the
			// documented deterministic recovery.
			r = chord
			break
		}

		f := 2*math.Asin(argBit) + 2*math.Asin(argSpacer) - pitch
		if math.Abs(f) < minRadiusResidualTol {
			converged = true
			break
		}

		df := asinDeriv(bitDiameter, r) + asinDeriv(spacer, r)
		if math.Abs(df) < 1e-15 {
			r = chord
			break
		}

		step := f / df
		if maxStep := minRadiusStepCap * r; math.Abs(step) > maxStep {
			step = math.Copysign(maxStep, step)
		}
		next := r - step
		if next <= 0 {
			r = chord
			break
		}
		if math.Abs(next-r) < minRadiusDeltaTol {
			r = next
			converged = true
			break
		}
		r = next
	}
	if !converged && r != chord {
		r = chord
	}

	floor := math.Max(bitDiameter/2, spacer/2) * minRadiusFloorScale
	if r < floor {
		r = floor
	}
	return r
}

// asinDeriv returns d/dr of 2*asin(c/2r).
func asinDeriv(chord, r float64) float64 {
	arg := chord / (2 * r)
	den := math.Sqrt(1 - arg*arg)
	if den < 1e-12 {
		den = 1e-12
	}
	return 2 * (-chord / (2 * r * r)) / den
}
