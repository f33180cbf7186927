// SPDX-License-Identifier: MIT
//
// Package audioproc turns raw PCM samples into the fixed-length
// normalized amplitude array that drives slot generation. Every
// function is a pure transformation over its inputs; nothing in this
// package holds state between calls.
package audioproc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Extract averages multi-channel input to mono, normalizes by the peak
// absolute value and resamples to exactly targetCount samples. Nearest
// index selection is used when downsampling, linear interpolation when
// upsampling.
func Extract(channels [][]float64, targetCount int) ([]float64, error) {
	if targetCount <= 0 {
		return nil, fmt.Errorf("target sample count must be positive, got %d", targetCount)
	}
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil, fmt.Errorf("no samples to extract")
	}

	mono := mixToMono(channels)
	normalizePeak(mono)

	if len(mono) == targetCount {
		return mono, nil
	}
	return Resample(mono, targetCount), nil
}

// mixToMono averages samples across channels. Channels may have
// differing lengths; the shortest bounds the output.
func mixToMono(channels [][]float64) []float64 {
	if len(channels) == 1 {
		out := make([]float64, len(channels[0]))
		copy(out, channels[0])
		return out
	}
	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	out := make([]float64, n)
	inv := 1.0 / float64(len(channels))
	for i := 0; i < n; i++ {
		var sum float64
		for _, ch := range channels {
			sum += ch[i]
		}
		out[i] = sum * inv
	}
	return out
}

// normalizePeak scales samples in place so the peak absolute value is
// 1.0. A near-silent buffer is left untouched to avoid dividing by zero.
func normalizePeak(samples []float64) {
	peak := peakAbs(samples)
	if peak < 1e-12 {
		return
	}
	floats.Scale(1.0/peak, samples)
}

// peakAbs returns the maximum absolute value in samples.
func peakAbs(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// Resample converts samples to exactly count values. Downsampling picks
// the nearest source index; upsampling interpolates linearly between
// neighbors.
func Resample(samples []float64, count int) []float64 {
	n := len(samples)
	if n == 0 || count <= 0 {
		return nil
	}
	out := make([]float64, count)
	if n == count {
		copy(out, samples)
		return out
	}

	if count < n {
		// Downsample: nearest index.
		ratio := float64(n) / float64(count)
		for i := range out {
			idx := int(math.Round(float64(i) * ratio))
			if idx >= n {
				idx = n - 1
			}
			out[i] = samples[idx]
		}
		return out
	}

	// Upsample: linear interpolation.
	if n == 1 {
		for i := range out {
			out[i] = samples[0]
		}
		return out
	}
	step := float64(n-1) / float64(count-1)
	for i := range out {
		pos := float64(i) * step
		lo := int(pos)
		if lo >= n-1 {
			out[i] = samples[n-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = samples[lo]*(1-frac) + samples[lo+1]*frac
	}
	return out
}
