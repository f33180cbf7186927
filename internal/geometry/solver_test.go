// SPDX-License-Identifier: MIT
package geometry

import (
	"math"
	"testing"
)

// residual evaluates the packing equation the solver is supposed to zero.
func residual(r, bit, spacer float64, slots int) float64 {
	return 2*math.Asin(bit/(2*r)) + 2*math.Asin(spacer/(2*r)) - 2*math.Pi/float64(slots)
}

func TestMinimumRadiusSatisfiesPackingEquation(t *testing.T) {
	tests := []struct {
		name   string
		bit    float64
		spacer float64
		slots  int
	}{
		{"quarter inch 30 slots", 0.25, 0.5, 30},
		{"quarter inch 72 slots", 0.25, 0.5, 72},
		{"eighth inch 24 slots", 0.125, 0.25, 24},
		{"wide spacer", 0.25, 1.0, 40},
		{"half inch bit", 0.5, 0.5, 36},
		{"many slots", 0.0625, 0.125, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MinimumRadius(tt.bit, tt.spacer, tt.slots)
			if r <= 0 {
				t.Fatalf("radius = %.6f, want positive", r)
			}
			if res := residual(r, tt.bit, tt.spacer, tt.slots); math.Abs(res) > 1e-6 {
				t.Errorf("residual at r=%.6f is %.3e, want |res| <= 1e-6", r, res)
			}
		})
	}
}

func TestMinimumRadiusNearChordApproximation(t *testing.T) {
	// For large slot counts asin(x) ~ x, so the converged radius should
	// land close to the chord formula.
	const bit, spacer = 0.25, 0.5
	const slots = 100
	chord := (bit + spacer) / (2 * math.Sin(math.Pi/slots))

	r := MinimumRadius(bit, spacer, slots)
	if math.Abs(r-chord)/chord > 0.01 {
		t.Errorf("r = %.6f, chord = %.6f; expected within 1%%", r, chord)
	}
}

func TestMinimumRadiusRespectsFloor(t *testing.T) {
	// One slot makes the pitch a full revolution, which the packing
	// equation cannot reach; the result must still sit above the
	// half-chord floor where asin stays defined.
	r := MinimumRadius(0.25, 0.5, 1)
	floor := 0.25 // spacer/2
	if r <= floor {
		t.Errorf("radius %.6f not above floor %.6f", r, floor)
	}
	if math.IsNaN(residual(r, 0.25, 0.5, 1)) {
		t.Error("result left the asin domain")
	}
}

func TestMinimumRadiusMonotonicInSlots(t *testing.T) {
	// More slots per revolution need a larger circle.
	prev := 0.0
	for _, slots := range []int{12, 24, 48, 96, 192} {
		r := MinimumRadius(0.25, 0.5, slots)
		if r <= prev {
			t.Fatalf("radius %.6f at %d slots not greater than %.6f", r, slots, prev)
		}
		prev = r
	}
}

func TestMinimumRadiusDeterministic(t *testing.T) {
	a := MinimumRadius(0.25, 0.5, 30)
	b := MinimumRadius(0.25, 0.5, 30)
	if a != b {
		t.Errorf("repeat calls differ: %.12f vs %.12f", a, b)
	}
}

func BenchmarkMinimumRadius(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		MinimumRadius(0.25, 0.5, 60)
	}
}
