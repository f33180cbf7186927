// SPDX-License-Identifier: MIT
package config

// Core configuration constants that define the boundaries and defaults
// for audio processing and panel manufacturing. Lengths are in inches.
const (
	// Audio pipeline defaults
	DefaultSampleRate     = 22050 // Decode target sample rate (Hz)
	DefaultRawSampleCount = 40000 // Fixed sample count fed into binning
	DefaultSilenceDb      = -40.0 // Frame energy threshold for silence removal
	DefaultMinGapSeconds  = 0.4   // Gaps shorter than this merge adjacent intervals
	DefaultFrameSize      = 1024  // Frame length for silence-energy analysis

	// Manufacturing defaults
	DefaultBitDiameter   = 0.25   // Quarter-inch bit
	DefaultSpacer        = 0.5    // Material between adjacent slots
	DefaultArtisticFloor = 0.06   // Fraction of max amplitude kept as slot floor
	MinBitDiameter       = 0.0625 // 1/16"
	MaxBitDiameter       = 1.0
	MinSlotCount         = 12
	MaxSlotCount         = 400

	// Shape dimension bounds
	MinFinishDimension = 6.0
	MaxFinishDimension = 96.0
)

// ModeDefaults holds the fallback tuning for one binning mode, used
// when the exponent/filter grid search fails to find a clear winner.
type ModeDefaults struct {
	Exponent     float64 `yaml:"exponent"`
	FilterAmount float64 `yaml:"filter_amount"`
}

// AudioConfig holds audio pipeline settings.
type AudioConfig struct {
	SampleRate     int     `yaml:"sample_rate"`      // Decode target sample rate (Hz)
	RawSampleCount int     `yaml:"raw_sample_count"` // Fixed-length sample count before binning
	SilenceDb      float64 `yaml:"silence_db"`       // Silence threshold in dBFS
	MinGapSeconds  float64 `yaml:"min_gap_seconds"`  // Minimum silence gap kept as a break
	FrameSize      int     `yaml:"frame_size"`       // Frame length for silence-energy analysis

	// Grid-search candidates for the exponent/filter optimizer.
	FilterCandidates   []float64 `yaml:"filter_candidates"`
	ExponentCandidates []float64 `yaml:"exponent_candidates"`

	// Per-mode fallbacks, keyed by binning mode name.
	ModeDefaults map[string]ModeDefaults `yaml:"mode_defaults"`
}

// ManufacturingConfig holds physical cutting constraints.
type ManufacturingConfig struct {
	BitDiameter   float64 `yaml:"bit_diameter"`
	Spacer        float64 `yaml:"spacer"`
	ArtisticFloor float64 `yaml:"artistic_floor"` // Fraction of max amplitude kept as slot floor
}

// TransportConfig holds settings for publishing computed pattern frames.
type TransportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"` // Listen address for the WebSocket preview feed
}

// Config is the main application configuration, loaded from YAML with
// environment overrides applied afterwards.
type Config struct {
	Debug         bool                `yaml:"debug"`
	LogLevel      string              `yaml:"log_level"`
	Audio         AudioConfig         `yaml:"audio"`
	Manufacturing ManufacturingConfig `yaml:"manufacturing"`
	Transport     TransportConfig     `yaml:"transport"`
}

// NewConfig returns a Config populated with built-in defaults. This is
// the base configuration before YAML and environment overrides.
func NewConfig() *Config {
	return &Config{
		Debug:    false,
		LogLevel: "info",
		Audio: AudioConfig{
			SampleRate:         DefaultSampleRate,
			RawSampleCount:     DefaultRawSampleCount,
			SilenceDb:          DefaultSilenceDb,
			MinGapSeconds:      DefaultMinGapSeconds,
			FrameSize:          DefaultFrameSize,
			FilterCandidates:   []float64{0, 0.02, 0.05, 0.1, 0.15},
			ExponentCandidates: []float64{0.5, 0.65, 0.8, 1.0, 1.25, 1.5},
			ModeDefaults: map[string]ModeDefaults{
				"mean_absolute": {Exponent: 0.8, FilterAmount: 0.05},
				"min_max":       {Exponent: 1.0, FilterAmount: 0.02},
				"continuous":    {Exponent: 1.0, FilterAmount: 0},
			},
		},
		Manufacturing: ManufacturingConfig{
			BitDiameter:   DefaultBitDiameter,
			Spacer:        DefaultSpacer,
			ArtisticFloor: DefaultArtisticFloor,
		},
		Transport: TransportConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8077",
		},
	}
}

// Defaults returns the fallback tuning for the named binning mode.
// Unknown modes fall back to the mean_absolute entry.
func (a *AudioConfig) Defaults(mode string) ModeDefaults {
	if d, ok := a.ModeDefaults[mode]; ok {
		return d
	}
	return a.ModeDefaults["mean_absolute"]
}
