// SPDX-License-Identifier: MIT
package audioproc

import (
	"testing"

	"github.com/go-audio/audio"
)

func TestDeinterleave(t *testing.T) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: 44100},
		// L, R interleaved 16-bit values.
		Data: []int{32767, -32768, 0, 16384},
	}

	channels := deinterleave(buf, 16)
	if len(channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(channels))
	}
	if len(channels[0]) != 2 || len(channels[1]) != 2 {
		t.Fatalf("channel lengths %d/%d, want 2 each", len(channels[0]), len(channels[1]))
	}

	if !approxEqual(channels[0][0], 32767.0/32768, 1e-9) {
		t.Errorf("left[0] = %.6f", channels[0][0])
	}
	if !approxEqual(channels[1][0], -1.0, 1e-9) {
		t.Errorf("right[0] = %.6f, want -1", channels[1][0])
	}
	if channels[0][1] != 0 {
		t.Errorf("left[1] = %.6f, want 0", channels[0][1])
	}
	if !approxEqual(channels[1][1], 0.5, 1e-9) {
		t.Errorf("right[1] = %.6f, want 0.5", channels[1][1])
	}
}

func TestDeinterleaveUnknownBitDepthAssumes16(t *testing.T) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:   []int{16384},
	}
	channels := deinterleave(buf, 0)
	if !approxEqual(channels[0][0], 0.5, 1e-9) {
		t.Errorf("got %.6f, want 0.5", channels[0][0])
	}
}

func TestSliceWindow(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = float64(i)
	}
	channels := [][]float64{samples}
	const rate = 100

	tests := []struct {
		name      string
		window    TimeWindow
		wantFirst float64
		wantLen   int
	}{
		{"inner slice", TimeWindow{Start: 1, End: 3}, 100, 200},
		{"open end", TimeWindow{Start: 8}, 800, 200},
		{"end past clip", TimeWindow{Start: 9, End: 99}, 900, 100},
		{"inverted window collapses", TimeWindow{Start: 5, End: 2}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sliceWindow(channels, rate, tt.window)
			if len(out[0]) != tt.wantLen {
				t.Fatalf("got %d samples, want %d", len(out[0]), tt.wantLen)
			}
			if tt.wantLen > 0 && out[0][0] != tt.wantFirst {
				t.Errorf("first sample = %.0f, want %.0f", out[0][0], tt.wantFirst)
			}
		})
	}
}
