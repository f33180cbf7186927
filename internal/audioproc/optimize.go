// SPDX-License-Identifier: MIT
package audioproc

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/config"
	"github.com/worshipwaves/WDweb-sub000/internal/log"
)

var optLog = log.Component("Audio")

// OptimizeResult is the outcome of the exponent/filter grid search.
type OptimizeResult struct {
	FilterAmount float64
	Exponent     float64
	Score        float64
	Fallback     bool // True when the grid search lost to the mode defaults

	// RecommendedSilenceDb is only populated in speech mode; it is an
	// estimate of a good silence-removal threshold for this clip.
	RecommendedSilenceDb float64
	HasSilenceEstimate   bool
}

// Grid-search scoring weights. The spread between the 90th and 10th
// percentile rewards dynamic range; the penalties discourage settings
// that push too many slots to the extremes.
const (
	scoreHighPenalty   = 2.0
	scoreLowPenalty    = 1.75
	scoreHighThreshold = 0.95
	scoreLowThreshold  = 0.2
	scoreFallbackBelow = -0.1
)

// Optimize grid-searches candidate (filterAmount, exponent) pairs for
// the binned amplitudes of samples and returns the best-scoring pair.
// When the best score falls below the fallback cutoff, the mode's
// configured defaults win instead. speech additionally requests a
// silence-threshold estimate.
func Optimize(samples []float64, slotCount int, mode composition.BinningMode, cfg *config.AudioConfig, speech bool) (*OptimizeResult, error) {
	binned, err := Bin(samples, slotCount, mode)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	base := normalized(binned.Heights())

	best := &OptimizeResult{Score: math.Inf(-1)}
	for _, filterAmount := range cfg.FilterCandidates {
		filtered := normalized(Filter(base, filterAmount))
		for _, exponent := range cfg.ExponentCandidates {
			score := scoreCandidate(filtered, exponent)
			if score > best.Score {
				best.FilterAmount = filterAmount
				best.Exponent = exponent
				best.Score = score
			}
		}
	}

	if best.Score < scoreFallbackBelow {
		defaults := cfg.Defaults(mode.String())
		optLog.Debugf("grid search scored %.3f, falling back to mode defaults (exp=%.2f filter=%.2f)",
			best.Score, defaults.Exponent, defaults.FilterAmount)
		best.FilterAmount = defaults.FilterAmount
		best.Exponent = defaults.Exponent
		best.Fallback = true
	}

	if speech {
		if db, ok := estimateSilenceDb(samples); ok {
			best.RecommendedSilenceDb = db
			best.HasSilenceEstimate = true
		}
	}
	return best, nil
}

// scoreCandidate applies the exponent to already-filtered normalized
// amplitudes and scores the resulting distribution.
func scoreCandidate(amplitudes []float64, exponent float64) float64 {
	shaped := make([]float64, len(amplitudes))
	for i, a := range amplitudes {
		shaped[i] = math.Pow(math.Abs(a), exponent)
	}
	sort.Float64s(shaped)

	spread := stat.Quantile(0.9, stat.Empirical, shaped, nil) -
		stat.Quantile(0.1, stat.Empirical, shaped, nil)

	var high, low int
	for _, v := range shaped {
		if v > scoreHighThreshold {
			high++
		}
		if v < scoreLowThreshold {
			low++
		}
	}
	n := float64(len(shaped))
	return spread - scoreHighPenalty*float64(high)/n - scoreLowPenalty*float64(low)/n
}

// trivialSampleLevel excludes near-digital-silence samples from the
// threshold estimate.
const trivialSampleLevel = 1e-4

// estimateSilenceDb derives a recommended silence threshold from the
// 15th percentile of non-trivial absolute sample values.
func estimateSilenceDb(samples []float64) (float64, bool) {
	abs := make([]float64, 0, len(samples))
	for _, s := range samples {
		if a := math.Abs(s); a > trivialSampleLevel {
			abs = append(abs, a)
		}
	}
	if len(abs) == 0 {
		return 0, false
	}
	sort.Float64s(abs)
	level := stat.Quantile(0.15, stat.Empirical, abs, nil)
	if level <= 0 {
		return 0, false
	}
	return 20 * math.Log10(level), true
}

// normalized returns a copy of amplitudes scaled to a peak absolute
// value of 1.0. Near-silent input is returned unscaled.
func normalized(amplitudes []float64) []float64 {
	out := make([]float64, len(amplitudes))
	copy(out, amplitudes)
	peak := peakAbs(out)
	if peak < 1e-12 {
		return out
	}
	for i := range out {
		out[i] /= peak
	}
	return out
}
