// SPDX-License-Identifier: MIT
package audioproc

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFilterZeroFractionIsIdentity(t *testing.T) {
	in := []float64{0.1, -0.4, 0.9, 0.0, -0.05}
	out := Filter(in, 0)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("index %d changed: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestFilterPreservesPeak(t *testing.T) {
	in := []float64{0.02, 0.05, 0.87, 0.3, 0.01, 0.6, 0.04, 0.02}
	prePeak := peakAbs(in)

	out := Filter(in, 0.25)
	if !approxEqual(peakAbs(out), prePeak, 1e-12) {
		t.Errorf("peak changed: got %.12f, want %.12f", peakAbs(out), prePeak)
	}
}

func TestFilterSuppressesNoiseFloor(t *testing.T) {
	// Half the values sit at a constant low floor; after subtracting
	// the floor they should collapse to zero (before rescale) and stay
	// well below the untouched signal values.
	in := []float64{0.05, 0.05, 0.05, 0.05, 0.8, 0.9, 0.7, 1.0}
	out := Filter(in, 0.5)

	for i := 0; i < 4; i++ {
		if out[i] != 0 {
			t.Errorf("floor value %d = %.6f, want 0", i, out[i])
		}
	}
	for i := 4; i < 8; i++ {
		if out[i] <= 0.5 {
			t.Errorf("signal value %d = %.6f, suppressed too hard", i, out[i])
		}
	}
}

func TestFilterConstantInputKeepsPeak(t *testing.T) {
	// With every value at the same magnitude the noise floor equals the
	// signal; subtraction would wipe it out, so the input comes back
	// untouched.
	in := []float64{0.5, 0.5, 0.5, 0.5}
	out := Filter(in, 0.5)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("index %d = %v, want %v", i, out[i], in[i])
		}
	}
	if !approxEqual(peakAbs(out), 0.5, 1e-12) {
		t.Errorf("peak = %.6f, want 0.5 preserved", peakAbs(out))
	}
}

func TestFilterKeepsSign(t *testing.T) {
	in := []float64{-0.9, 0.9, -0.1, 0.1, -0.02, 0.02}
	out := Filter(in, 0.3)
	for i := range in {
		if out[i] != 0 && math.Signbit(out[i]) != math.Signbit(in[i]) {
			t.Errorf("index %d flipped sign: in=%.4f out=%.4f", i, in[i], out[i])
		}
	}
}

func TestFilterAllZeroInput(t *testing.T) {
	in := make([]float64, 16)
	out := Filter(in, 0.2)
	for i, v := range out {
		if v != 0 {
			t.Errorf("index %d = %v, want 0", i, v)
		}
	}
}

func TestMeanOfSmallest(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		k      int
		want   float64
	}{
		{"smallest two", []float64{5, 1, 4, 2, 3}, 2, 1.5},
		{"single", []float64{9, 3, 7}, 1, 3},
		{"k equals len", []float64{2, 4}, 2, 3},
		{"k exceeds len", []float64{2, 4}, 5, 3},
		{"duplicates", []float64{1, 1, 1, 8, 8}, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := make([]float64, len(tt.values))
			copy(vals, tt.values)
			got := meanOfSmallest(vals, tt.k)
			if !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("got %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func BenchmarkFilter(b *testing.B) {
	in := make([]float64, 400)
	for i := range in {
		in[i] = math.Abs(math.Sin(float64(i) / 7))
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Filter(in, 0.1)
	}
}
