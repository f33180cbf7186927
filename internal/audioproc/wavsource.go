// SPDX-License-Identifier: MIT
package audioproc

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSource decodes WAV files into per-channel float samples. It is the
// default SampleSource implementation.
type WAVSource struct{}

// Compile-time check for the interface implementation.
var _ SampleSource = (*WAVSource)(nil)

// NewWAVSource returns a WAV-backed sample source.
func NewWAVSource() *WAVSource {
	return &WAVSource{}
}

// Samples decodes the WAV file at path, de-interleaves its channels and
// scales values to [-1, 1]. The window, when non-zero, slices the
// decoded samples by time.
func (s *WAVSource) Samples(path string, window TimeWindow) ([][]float64, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("'%s' is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode '%s': %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, 0, fmt.Errorf("'%s' has no channel information", path)
	}

	sampleRate := buf.Format.SampleRate
	channels := deinterleave(buf, int(decoder.BitDepth))

	if !window.IsZero() {
		channels = sliceWindow(channels, sampleRate, window)
	}
	return channels, sampleRate, nil
}

// deinterleave splits an interleaved PCM buffer into per-channel float
// slices scaled to [-1, 1] for the given source bit depth.
func deinterleave(buf *audio.IntBuffer, bitDepth int) [][]float64 {
	numChannels := buf.Format.NumChannels
	frames := len(buf.Data) / numChannels

	// Full-scale value for the source bit depth.
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := math.Pow(2, float64(bitDepth-1))

	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < numChannels; c++ {
			channels[c][i] = float64(buf.Data[i*numChannels+c]) / scale
		}
	}
	return channels
}

// sliceWindow cuts each channel to the [Start, End) time window.
// An End of zero or past the clip means "to the end".
func sliceWindow(channels [][]float64, sampleRate int, window TimeWindow) [][]float64 {
	if len(channels) == 0 {
		return channels
	}
	n := len(channels[0])
	start := int(window.Start * float64(sampleRate))
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := n
	if window.End > 0 {
		end = int(window.End * float64(sampleRate))
		if end > n {
			end = n
		}
	}
	if end < start {
		end = start
	}
	out := make([][]float64, len(channels))
	for c, ch := range channels {
		out[c] = ch[start:end]
	}
	return out
}
