// SPDX-License-Identifier: MIT
package geometry

import (
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
)

// linearSearchTol is the binary-search convergence tolerance for the
// linear maximum amplitude, in inches.
const linearSearchTol = 0.001

// linearAmplitudeSearch finds the largest slot amplitude that fits at
// every slot x-position of a circular or diamond panel, net of the
// vertical inset and side margin. Converges by bisection to a
// thousandth of an inch.
func linearAmplitudeSearch(state *composition.State, radius float64) (float64, error) {
	positions := linearSlotPositions(state)
	if len(positions) == 0 {
		return 0, fmt.Errorf("no slot positions for %d slots", state.SlotCount)
	}

	lo, hi := 0.0, state.FinishY
	for hi-lo > linearSearchTol {
		mid := (lo + hi) / 2
		if linearAmplitudeFits(state, radius, positions, mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// linearAmplitudeFits reports whether every slot can hold the given
// amplitude within the shape's local vertical span.
func linearAmplitudeFits(state *composition.State, radius float64, positions []float64, amplitude float64) bool {
	for _, x := range positions {
		if verticalSpan(state, radius, x)-2*state.YOffset < amplitude {
			return false
		}
	}
	return true
}

// verticalSpan returns the full vertical extent of the panel outline at
// horizontal position x (panel coordinates).
func verticalSpan(state *composition.State, radius float64, x float64) float64 {
	switch state.Shape {
	case composition.Circular:
		if math.Abs(x) >= radius {
			return 0
		}
		// Chord height of the circle at x.
		return 2 * math.Sqrt(radius*radius-x*x)
	case composition.Diamond:
		a := state.FinishX / 2
		b := state.FinishY / 2
		if a <= 0 || math.Abs(x) >= a {
			return 0
		}
		// The diamond edge is linear from the side vertex to the
		// top/bottom vertex.
		return 2 * b * (1 - math.Abs(x)/a)
	default:
		return state.FinishY
	}
}

// linearSlotPositions returns each slot's x-position in panel
// coordinates for a linear layout, spread uniformly inside the side
// margins.
func linearSlotPositions(state *composition.State) []float64 {
	if state.SlotCount <= 0 {
		return nil
	}
	usable := state.FinishX - 2*state.SideMargin
	if usable <= 0 {
		usable = state.FinishX
	}
	pitch := usable / float64(state.SlotCount)
	out := make([]float64, state.SlotCount)
	for i := range out {
		out[i] = -usable/2 + pitch*(float64(i)+0.5)
	}
	return out
}
