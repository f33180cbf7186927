// SPDX-License-Identifier: MIT
package slots

import (
	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/config"
)

// ValidSlotCounts enumerates the slot counts a caller-side selector may
// offer for a composition. Radial layouts need an even split across
// sections; linear multi-section layouts accept any total the
// distribution solver can satisfy, which the lattice approximates with
// the same even-split stride.
func ValidSlotCounts(state *composition.State) []int {
	step := state.Sections
	if state.SlotStyle == composition.Linear && state.Sections > 2 {
		step = 1
	}
	var out []int
	for n := config.MinSlotCount; n <= config.MaxSlotCount; n++ {
		if n%step == 0 {
			out = append(out, n)
		}
	}
	return out
}

// MarginPresets returns the side margins offered by the caller-side
// selector, in inches.
func MarginPresets() []float64 {
	return []float64{0.5, 0.75, 1.0, 1.5, 2.0, 3.0}
}
