// SPDX-License-Identifier: MIT
package audioproc

import (
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
)

// BinResult holds the per-slot amplitude pair produced by binning. Top
// and Bottom have one entry per slot; Bottom values are zero or
// negative. Both channels are jointly normalized so the combined peak
// absolute value is 1.0.
type BinResult struct {
	Top    []float64
	Bottom []float64
}

// continuousMinFill is the fraction of slotCount below which the
// Continuous mode falls back to MeanAbsolute, since there are too few
// samples left to resample meaningfully.
const continuousMinFill = 0.8

// Bin divides samples into slotCount contiguous buckets and reduces
// each bucket to a (top, bottom) amplitude pair according to mode.
func Bin(samples []float64, slotCount int, mode composition.BinningMode) (*BinResult, error) {
	if slotCount <= 0 {
		return nil, fmt.Errorf("slot count must be positive, got %d", slotCount)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to bin")
	}

	if mode == composition.Continuous {
		if float64(len(samples)) < continuousMinFill*float64(slotCount) {
			mode = composition.MeanAbsolute
		} else {
			return binContinuous(samples, slotCount), nil
		}
	}

	top := make([]float64, slotCount)
	bottom := make([]float64, slotCount)
	n := len(samples)
	for i := 0; i < slotCount; i++ {
		// Rounded index arithmetic keeps bucket sizes within one
		// sample of each other across the whole array.
		start := int(math.Round(float64(i) * float64(n) / float64(slotCount)))
		end := int(math.Round(float64(i+1) * float64(n) / float64(slotCount)))
		if end > n {
			end = n
		}
		if start >= end {
			// Rounded boundaries collide when samples are sparser
			// than slots; reuse the nearest sample so the bucket is
			// never empty.
			end = start + 1
			if end > n {
				end = n
				start = n - 1
			}
		}
		bucket := samples[start:end]

		switch mode {
		case composition.MinMax:
			mn, mx := bucket[0], bucket[0]
			for _, s := range bucket[1:] {
				if s < mn {
					mn = s
				}
				if s > mx {
					mx = s
				}
			}
			top[i] = mx
			bottom[i] = mn
		default: // MeanAbsolute
			var sum float64
			for _, s := range bucket {
				sum += math.Abs(s)
			}
			mean := sum / float64(len(bucket))
			top[i] = mean
			bottom[i] = -mean
		}
	}

	res := &BinResult{Top: top, Bottom: bottom}
	res.normalizeJoint()
	return res, nil
}

// binContinuous resamples directly to slotCount values and splits them
// into positive and negative channels.
func binContinuous(samples []float64, slotCount int) *BinResult {
	resampled := Resample(samples, slotCount)
	top := make([]float64, slotCount)
	bottom := make([]float64, slotCount)
	for i, v := range resampled {
		if v >= 0 {
			top[i] = v
		} else {
			bottom[i] = v
		}
	}
	res := &BinResult{Top: top, Bottom: bottom}
	res.normalizeJoint()
	return res
}

// normalizeJoint scales both channels by the combined peak absolute
// value so relative top/bottom proportions survive normalization.
func (r *BinResult) normalizeJoint() {
	peak := peakAbs(r.Top)
	if p := peakAbs(r.Bottom); p > peak {
		peak = p
	}
	if peak < 1e-12 {
		return
	}
	inv := 1.0 / peak
	for i := range r.Top {
		r.Top[i] *= inv
		r.Bottom[i] *= inv
	}
}

// Heights returns the per-slot total amplitude (top minus bottom),
// which is what the slot generator consumes for symmetric slot shapes.
func (r *BinResult) Heights() []float64 {
	out := make([]float64, len(r.Top))
	for i := range r.Top {
		out[i] = r.Top[i] - r.Bottom[i]
	}
	return out
}
