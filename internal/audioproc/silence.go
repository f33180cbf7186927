// SPDX-License-Identifier: MIT
package audioproc

import (
	"fmt"
	"math"
	"strings"
)

// SilenceStrategy selects how sub-minimum-gap silence is handled. The
// two strategies exist because upstream callers historically disagreed:
// one dropped voiced intervals shorter than the minimum gap outright,
// the other merged them into their neighbors. Both behaviors are kept
// and the caller picks.
type SilenceStrategy int

const (
	// MergeShort joins voiced intervals separated by a gap shorter
	// than the minimum, keeping the short gap's samples.
	MergeShort SilenceStrategy = iota
	// DropShort removes voiced intervals that are themselves shorter
	// than the minimum gap duration after merging.
	DropShort
)

func (s SilenceStrategy) String() string {
	if s == DropShort {
		return "drop_short"
	}
	return "merge_short"
}

// ParseSilenceStrategy converts a string name (case-insensitive) to a
// SilenceStrategy.
func ParseSilenceStrategy(name string) (SilenceStrategy, error) {
	switch strings.ToLower(name) {
	case "merge_short", "merge", "":
		return MergeShort, nil
	case "drop_short", "drop":
		return DropShort, nil
	default:
		return MergeShort, fmt.Errorf("unknown silence strategy: '%s'", name)
	}
}

// interval is a half-open [start, end) sample range.
type interval struct {
	start int
	end   int
}

// RemoveSilence splits samples into voiced intervals using a
// frame-energy threshold, merges intervals separated by gaps shorter
// than minGapSeconds and concatenates the survivors. frameSize bounds
// the resolution of the split; thresholdDb is relative to full scale.
func RemoveSilence(samples []float64, sampleRate int, thresholdDb, minGapSeconds float64, frameSize int, strategy SilenceStrategy) []float64 {
	if len(samples) == 0 || sampleRate <= 0 {
		return samples
	}
	if frameSize <= 0 {
		frameSize = 1024
	}

	voiced := voicedIntervals(samples, frameSize, thresholdDb)
	if len(voiced) == 0 {
		// Nothing above the threshold: hand the caller the input
		// unchanged rather than an empty clip.
		return samples
	}

	minGap := int(minGapSeconds * float64(sampleRate))
	merged := mergeIntervals(voiced, minGap)

	if strategy == DropShort {
		kept := merged[:0]
		for _, iv := range merged {
			if iv.end-iv.start >= minGap {
				kept = append(kept, iv)
			}
		}
		if len(kept) == 0 {
			kept = merged[:1]
		}
		merged = kept
	}

	total := 0
	for _, iv := range merged {
		total += iv.end - iv.start
	}
	out := make([]float64, 0, total)
	for _, iv := range merged {
		out = append(out, samples[iv.start:iv.end]...)
	}
	return out
}

// voicedIntervals returns frame-aligned ranges whose RMS energy exceeds
// thresholdDb.
func voicedIntervals(samples []float64, frameSize int, thresholdDb float64) []interval {
	threshold := math.Pow(10, thresholdDb/20)
	var out []interval
	open := false
	var start int
	for off := 0; off < len(samples); off += frameSize {
		end := off + frameSize
		if end > len(samples) {
			end = len(samples)
		}
		if frameRMS(samples[off:end]) >= threshold {
			if !open {
				open = true
				start = off
			}
		} else if open {
			open = false
			out = append(out, interval{start: start, end: off})
		}
	}
	if open {
		out = append(out, interval{start: start, end: len(samples)})
	}
	return out
}

// mergeIntervals joins intervals separated by a gap shorter than minGap
// samples. Input intervals must be sorted and non-overlapping, which
// voicedIntervals guarantees.
func mergeIntervals(intervals []interval, minGap int) []interval {
	if len(intervals) == 0 {
		return nil
	}
	out := []interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &out[len(out)-1]
		if iv.start-last.end < minGap {
			last.end = iv.end
		} else {
			out = append(out, iv)
		}
	}
	return out
}

// frameRMS returns the root-mean-square energy of one frame.
func frameRMS(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}
