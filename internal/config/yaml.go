// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file specified by path. If
// path is empty, it searches default locations ("config.yaml"). If no
// file is found, built-in defaults are used. After loading, environment
// variable overrides are applied and the final configuration validated.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{
			"config.yaml",
			"panel.yaml",
		}
		found := false
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				found = true
				break
			}
		}
		if !found {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides win over file values.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that cannot drive the pipeline.
func (c *Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.RawSampleCount <= 0 {
		return fmt.Errorf("audio.raw_sample_count must be positive, got %d", c.Audio.RawSampleCount)
	}
	if c.Audio.FrameSize <= 0 {
		return fmt.Errorf("audio.frame_size must be positive, got %d", c.Audio.FrameSize)
	}
	if c.Manufacturing.BitDiameter < MinBitDiameter || c.Manufacturing.BitDiameter > MaxBitDiameter {
		return fmt.Errorf("manufacturing.bit_diameter %.4f outside [%.4f, %.4f]",
			c.Manufacturing.BitDiameter, MinBitDiameter, MaxBitDiameter)
	}
	if c.Manufacturing.ArtisticFloor < 0 || c.Manufacturing.ArtisticFloor >= 1 {
		return fmt.Errorf("manufacturing.artistic_floor %.3f outside [0, 1)", c.Manufacturing.ArtisticFloor)
	}
	if len(c.Audio.ExponentCandidates) == 0 {
		return fmt.Errorf("audio.exponent_candidates must not be empty")
	}
	if len(c.Audio.FilterCandidates) == 0 {
		return fmt.Errorf("audio.filter_candidates must not be empty")
	}
	return nil
}

// applyEnvOverrides applies WD_* environment variables over the loaded
// configuration. Unset or malformed values leave the config untouched.
func (cfg *Config) applyEnvOverrides() {
	// WD_DEBUG
	if val, ok := os.LookupEnv("WD_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Debug = bVal
		}
	}
	// WD_LOG_LEVEL
	if val, ok := os.LookupEnv("WD_LOG_LEVEL"); ok {
		cfg.LogLevel = val
	}
	// WD_TRANSPORT_ENABLED
	if val, ok := os.LookupEnv("WD_TRANSPORT_ENABLED"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			cfg.Transport.Enabled = bVal
		}
	}
	// WD_TRANSPORT_ADDR
	if val, ok := os.LookupEnv("WD_TRANSPORT_ADDR"); ok {
		cfg.Transport.Addr = val
	}
	// WD_SAMPLE_RATE
	if val, ok := os.LookupEnv("WD_SAMPLE_RATE"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			cfg.Audio.SampleRate = iVal
		}
	}
}
