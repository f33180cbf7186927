// SPDX-License-Identifier: MIT
package slots

import (
	"fmt"
	"math"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
)

// distribution is a solved per-section slot allocation with its uniform
// slot width.
type distribution struct {
	counts    []int // Slots per section, end sections first and last
	slotWidth float64
}

// minWidthClearance is the margin a slot must keep above the bit
// diameter: 1/16".
const minWidthClearance = 0.0625

// marginSlack is the absolute margin deviation always tolerated, in
// inches.
const marginSlack = 0.5

// neighborSearchSpan is how far the solver wanders from the requested
// total slot count when no symmetric split fits.
const neighborSearchSpan = 14

// solveDistribution finds a symmetric (endCount, centerCount) pair for
// linear layouts with more than two sections:
//
//	2*endCount + (sections-2)*centerCount = totalSlots
//
// Slot width is uniform and derived from the center-section usable
// width. A candidate is accepted when the resulting end-section margin
// deviates from the requested margin by at most max(25%, 0.5") and the
// slot width clears the bit diameter by 1/16". Among acceptable
// candidates the one with the smallest margin deviation wins. If the
// requested total is infeasible, neighboring totals within +/-14 are
// tried before falling back to a naive equal split.
func solveDistribution(state *composition.State) (*distribution, error) {
	if state.Sections <= 2 {
		return nil, fmt.Errorf("distribution solver needs more than 2 sections, got %d", state.Sections)
	}

	if d := bestSymmetric(state, state.SlotCount); d != nil {
		return d, nil
	}

	// Widen to neighboring totals; a caller-side selector snaps the
	// composition's slot count to the total actually used.
	for delta := 1; delta <= neighborSearchSpan; delta++ {
		for _, total := range []int{state.SlotCount + delta, state.SlotCount - delta} {
			if total < state.Sections {
				continue
			}
			if d := bestSymmetric(state, total); d != nil {
				slotLog.Warnf("no symmetric split for %d slots, using neighboring total %d", state.SlotCount, total)
				return d, nil
			}
		}
	}

	slotLog.Warnf("no feasible symmetric distribution near %d slots, falling back to equal split", state.SlotCount)
	return evenDistribution(state), nil
}

// bestSymmetric returns the minimum-deviation acceptable candidate for
// one total, or nil when none qualifies.
func bestSymmetric(state *composition.State, total int) *distribution {
	sections := state.Sections
	centerSections := sections - 2
	sectionWidth := linearSectionWidth(state)
	centerUsable := sectionWidth - 2*state.SideMargin

	tolerance := math.Max(0.25*state.SideMargin, marginSlack)
	minWidth := state.BitDiameter + minWidthClearance

	var best *distribution
	bestDeviation := math.Inf(1)

	for center := 1; center < total; center++ {
		rest := total - centerSections*center
		if rest < 2 || rest%2 != 0 {
			continue
		}
		end := rest / 2

		width := (centerUsable - float64(center-1)*state.Spacer) / float64(center)
		if width < minWidth {
			continue
		}

		endRun := float64(end)*width + float64(end-1)*state.Spacer
		endMargin := (sectionWidth - endRun) / 2
		if endMargin < 0 {
			continue
		}

		deviation := math.Abs(endMargin - state.SideMargin)
		if deviation > tolerance {
			continue
		}
		if deviation < bestDeviation {
			bestDeviation = deviation
			counts := make([]int, sections)
			counts[0] = end
			counts[sections-1] = end
			for i := 1; i < sections-1; i++ {
				counts[i] = center
			}
			best = &distribution{counts: counts, slotWidth: width}
		}
	}
	return best
}
