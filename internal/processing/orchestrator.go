// SPDX-License-Identifier: MIT
package processing

import (
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/geometry"
	"github.com/worshipwaves/WDweb-sub000/internal/log"
)

var procLog = log.Component("Processing")

// renormalizeAbove is the magnitude at which caller-supplied
// "normalized" amplitudes are treated as a contract violation and
// renormalized before scaling.
const renormalizeAbove = 1.5

// Outcome is the result of one orchestration call.
type Outcome struct {
	Level Level
	// State is the updated composition; identical to the input state
	// below the geometry tier.
	State *composition.State
	// Geometry is only populated at the geometry and audio tiers.
	Geometry *geometry.Result
	// MaxAmplitude is the scaling factor in effect after the call.
	MaxAmplitude float64
	// Rescaled reports whether amplitudes were rescaled.
	Rescaled bool
}

// Reprocess classifies the changed fields and re-runs only the
// necessary tier.
//
// At the geometry tier, normalized holds amplitudes in [0, 1] which are
// scaled by the newly solved maximum amplitude. At the audio tier the
// caller must already have rebinned its raw-sample cache to the new
// slot count and passes those normalized values the same way; the
// orchestrator never resamples raw audio itself. Below the geometry
// tier the state passes through untouched and previousMaxAmplitude is
// reported back.
func Reprocess(state *composition.State, changed map[string]struct{}, normalized []float64, previousMaxAmplitude float64) (*Outcome, error) {
	level := Classify(changed)
	procLog.Debugf("classified %d changed fields as level %s", len(changed), level)

	if level < LevelGeometry {
		return &Outcome{
			Level:        level,
			State:        state,
			MaxAmplitude: previousMaxAmplitude,
		}, nil
	}

	geom, err := geometry.Solve(state)
	if err != nil {
		return nil, fmt.Errorf("reprocess geometry: %w", err)
	}

	if len(normalized) == 0 {
		return nil, fmt.Errorf("level %s requires normalized amplitudes, got none", level)
	}
	if level == LevelAudio && len(normalized) != state.SlotCount {
		return nil, fmt.Errorf("audio tier expects %d rebinned amplitudes, got %d", state.SlotCount, len(normalized))
	}

	scaled := rescale(normalized, geom.MaxAmplitude)

	next := state.Clone()
	next.Amplitudes = scaled
	return &Outcome{
		Level:        level,
		State:        next,
		Geometry:     geom,
		MaxAmplitude: geom.MaxAmplitude,
		Rescaled:     true,
	}, nil
}

// rescale multiplies normalized values by maxAmplitude. Values beyond
// the renormalization bound violate the 0..1 contract; the whole array
// is emergency-renormalized by its peak first so a bad caller still
// gets usable output.
func rescale(normalized []float64, maxAmplitude float64) []float64 {
	peak := 0.0
	for _, v := range normalized {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	out := make([]float64, len(normalized))
	copy(out, normalized)
	if peak > renormalizeAbove {
		procLog.Warnf("amplitudes exceed normalized contract (peak %.3f), renormalizing", peak)
		for i := range out {
			out[i] /= peak
		}
	}
	for i := range out {
		out[i] *= maxAmplitude
	}
	return out
}
