// SPDX-License-Identifier: MIT
package audioproc

import "math"

// Filter subtracts an estimated noise floor from amplitudes and rescales
// so the pre-filter peak is exactly preserved. The noise floor is the
// mean of the smallest fraction of absolute values. fraction is clamped
// to [0, 1]; a zero fraction, or a floor that would zero every value,
// returns the input unchanged.
func Filter(amplitudes []float64, fraction float64) []float64 {
	out := make([]float64, len(amplitudes))
	copy(out, amplitudes)
	if fraction <= 0 || len(amplitudes) == 0 {
		return out
	}
	if fraction > 1 {
		fraction = 1
	}

	k := int(fraction * float64(len(amplitudes)))
	if k < 1 {
		k = 1
	}

	abs := make([]float64, len(amplitudes))
	for i, a := range amplitudes {
		abs[i] = math.Abs(a)
	}

	floor := meanOfSmallest(abs, k)
	if floor <= 0 {
		return out
	}

	prePeak := peakAbs(out)
	for i, a := range out {
		mag := math.Abs(a) - floor
		if mag < 0 {
			mag = 0
		}
		out[i] = math.Copysign(mag, a)
	}

	// Rescale so the peak survives filtering exactly. If the
	// subtraction flattened every value the floor carried the whole
	// signal, so keep the input rather than erase it.
	postPeak := peakAbs(out)
	if postPeak <= 1e-12 {
		copy(out, amplitudes)
		return out
	}
	if prePeak > 0 {
		scale := prePeak / postPeak
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}

// meanOfSmallest returns the mean of the k smallest values using an
// in-place quickselect partition, O(n) expected. values is clobbered.
func meanOfSmallest(values []float64, k int) float64 {
	if k >= len(values) {
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}

	selectSmallest(values, k)
	var sum float64
	for _, v := range values[:k] {
		sum += v
	}
	return sum / float64(k)
}

// selectSmallest partitions values so the k smallest occupy the first
// k positions, in arbitrary order.
func selectSmallest(values []float64, k int) {
	lo, hi := 0, len(values)-1
	for lo < hi {
		p := partition(values, lo, hi)
		switch {
		case p == k:
			return
		case p < k:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition applies a median-of-three Hoare-style partition to
// values[lo:hi+1], returning the final pivot index.
func partition(values []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if values[mid] < values[lo] {
		values[mid], values[lo] = values[lo], values[mid]
	}
	if values[hi] < values[lo] {
		values[hi], values[lo] = values[lo], values[hi]
	}
	if values[hi] < values[mid] {
		values[hi], values[mid] = values[mid], values[hi]
	}
	pivot := values[mid]
	values[mid], values[hi-1] = values[hi-1], values[mid]

	i := lo
	for j := lo; j < hi-1; j++ {
		if values[j] < pivot {
			values[i], values[j] = values[j], values[i]
			i++
		}
	}
	values[i], values[hi-1] = values[hi-1], values[i]
	return i
}
