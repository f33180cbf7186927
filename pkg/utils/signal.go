// SPDX-License-Identifier: MIT
//
// Package utils provides deterministic signal generators shared by
// tests across the repository.
package utils

import "math"

// SineWave generates size samples of a sine at the given frequency and
// sample rate, peak amplitude 0.9.
func SineWave(size int, sampleRate, frequency float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = math.Sin(2*math.Pi*frequency*t) * 0.9
	}
	return buffer
}

// ComplexWave generates a 440Hz fundamental with two harmonics, a
// richer signal for binning and optimization tests.
func ComplexWave(size int, sampleRate float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = math.Sin(2*math.Pi*440*t)*0.5 +
			math.Sin(2*math.Pi*880*t)*0.3 +
			math.Sin(2*math.Pi*1320*t)*0.2
	}
	return buffer
}

// BurstWave generates alternating voiced and silent stretches, a
// speech-like shape for silence-removal tests. burstLen and gapLen are
// in samples; the result cycles burst, gap, burst, ... up to size.
func BurstWave(size, burstLen, gapLen int, sampleRate, frequency float64) []float64 {
	buffer := make([]float64, size)
	period := burstLen + gapLen
	if period <= 0 {
		return buffer
	}
	for i := range buffer {
		if i%period < burstLen {
			t := float64(i) / sampleRate
			buffer[i] = math.Sin(2*math.Pi*frequency*t) * 0.8
		}
	}
	return buffer
}

// Ramp generates size samples rising linearly from 0 to 1.
func Ramp(size int) []float64 {
	buffer := make([]float64, size)
	if size <= 1 {
		return buffer
	}
	for i := range buffer {
		buffer[i] = float64(i) / float64(size-1)
	}
	return buffer
}
