// SPDX-License-Identifier: MIT
package audioproc

import (
	"context"
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/config"
)

// TimeWindow is an optional slice of the source clip, in seconds.
// A zero End means "to the end of the clip".
type TimeWindow struct {
	Start float64
	End   float64
}

// IsZero reports whether the window selects the whole clip.
func (w TimeWindow) IsZero() bool {
	return w.Start == 0 && w.End == 0
}

// SampleSource decodes an audio file into per-channel PCM samples at
// the source's native rate, honoring an optional time window. Failures
// surface as I/O errors and are propagated to the caller unmodified.
type SampleSource interface {
	Samples(path string, window TimeWindow) (channels [][]float64, sampleRate int, err error)
}

// StemSeparator isolates a single stem (vocals, drums, ...) from an
// audio file, returning the path of the isolated clip. Implementations
// wrap an external process; failures propagate unmodified with no
// retry.
type StemSeparator interface {
	Separate(ctx context.Context, path, stem string) (string, error)
}

// Request describes one full pipeline run.
type Request struct {
	Path   string
	Window TimeWindow
	Stem   string // Empty disables stem separation

	SlotCount int
	Mode      composition.BinningMode

	SilenceDb       float64
	SilenceStrategy SilenceStrategy

	FilterAmount float64
	Exponent     float64

	// MaxAmplitude is the geometry solver's scaling factor; final slot
	// heights are normalized amplitudes times this value.
	MaxAmplitude float64
	BitDiameter  float64
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Normalized holds per-slot values in [0, 1] before physical scaling.
	Normalized []float64
	// Heights holds final physical slot heights in inches, scaled to
	// MaxAmplitude and clamped to the physical floor.
	Heights []float64
	// Bins is the raw binning output (top/bottom channels).
	Bins *BinResult

	SampleRate int
}

// Pipeline assembles the full audio-to-amplitude transformation. It is
// stateless apart from its injected read-only collaborators, so
// concurrent Run calls are independent.
type Pipeline struct {
	cfg       *config.AudioConfig
	mfg       *config.ManufacturingConfig
	source    SampleSource
	separator StemSeparator
}

// NewPipeline wires a pipeline from configuration and collaborators.
// separator may be nil when stem separation is never requested.
func NewPipeline(cfg *config.AudioConfig, mfg *config.ManufacturingConfig, source SampleSource, separator StemSeparator) (*Pipeline, error) {
	if cfg == nil || mfg == nil {
		return nil, fmt.Errorf("pipeline requires audio and manufacturing config")
	}
	if source == nil {
		return nil, fmt.Errorf("pipeline requires a sample source")
	}
	return &Pipeline{cfg: cfg, mfg: mfg, source: source, separator: separator}, nil
}

// Run executes the full pipeline: optional stem separation, decode with
// the time window applied, silence removal, extraction to the fixed raw
// sample count, binning, filtering, exponent application and physical
// scaling.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if req.SlotCount <= 0 {
		return nil, fmt.Errorf("slot count must be positive, got %d", req.SlotCount)
	}

	path := req.Path
	if req.Stem != "" {
		if p.separator == nil {
			return nil, fmt.Errorf("stem '%s' requested but no separator configured", req.Stem)
		}
		separated, err := p.separator.Separate(ctx, path, req.Stem)
		if err != nil {
			return nil, err
		}
		path = separated
	}

	channels, sampleRate, err := p.source.Samples(path, req.Window)
	if err != nil {
		return nil, err
	}

	// Silence removal runs at the native rate before extraction; it is
	// independent of whether separation happened upstream.
	mono := mixToMono(channels)
	silenceDb := req.SilenceDb
	if silenceDb == 0 {
		silenceDb = p.cfg.SilenceDb
	}
	trimmed := RemoveSilence(mono, sampleRate, silenceDb, p.cfg.MinGapSeconds, p.cfg.FrameSize, req.SilenceStrategy)

	raw, err := Extract([][]float64{trimmed}, p.cfg.RawSampleCount)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	bins, err := Bin(raw, req.SlotCount, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("bin: %w", err)
	}

	heights := bins.Heights()
	if req.FilterAmount > 0 {
		heights = Filter(heights, req.FilterAmount)
	}
	norm := normalized(heights)

	exponent := req.Exponent
	if exponent <= 0 {
		exponent = 1
	}
	for i, v := range norm {
		norm[i] = math.Pow(v, exponent)
	}

	return &Result{
		Normalized: norm,
		Heights:    p.ScaleToPhysical(norm, req.MaxAmplitude, req.BitDiameter),
		Bins:       bins,
		SampleRate: sampleRate,
	}, nil
}

// ScaleToPhysical converts normalized amplitudes to physical slot
// heights: each value is scaled by maxAmplitude then clamped upward to
// the physical floor, the larger of the artistic floor fraction and
// twice the bit diameter.
func (p *Pipeline) ScaleToPhysical(normalized []float64, maxAmplitude, bitDiameter float64) []float64 {
	floor := p.mfg.ArtisticFloor * maxAmplitude
	if min := 2 * bitDiameter; min > floor {
		floor = min
	}
	out := make([]float64, len(normalized))
	for i, v := range normalized {
		h := v * maxAmplitude
		if h < floor {
			h = floor
		}
		if h > maxAmplitude && maxAmplitude > 0 {
			h = maxAmplitude
		}
		out[i] = h
	}
	return out
}
