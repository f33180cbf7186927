// SPDX-License-Identifier: MIT
//
// Package composition defines the immutable composition state consumed
// by the geometry solver, the slot generator and the processing
// orchestrator. A State is supplied by the caller (typically from
// persisted design data) and is never mutated by the core; every
// transformation produces a new value.
package composition

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Shape identifies the outline of the finished panel.
type Shape int

const (
	Circular Shape = iota
	Rectangular
	Diamond
)

// String returns the lowercase name of the shape.
func (s Shape) String() string {
	switch s {
	case Circular:
		return "circular"
	case Rectangular:
		return "rectangular"
	case Diamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// ParseShape converts a string name (case-insensitive) to a Shape.
// Returns Circular and an error if the name is unknown.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "circular", "circle", "round":
		return Circular, nil
	case "rectangular", "rectangle", "rect":
		return Rectangular, nil
	case "diamond":
		return Diamond, nil
	default:
		return Circular, fmt.Errorf("unknown panel shape: '%s'", name)
	}
}

// SlotStyle selects how slots are laid out within a section.
type SlotStyle int

const (
	// Radial slots fan out from a common vertex per section.
	Radial SlotStyle = iota
	// Linear slots run left to right in parallel columns.
	Linear
)

func (s SlotStyle) String() string {
	if s == Linear {
		return "linear"
	}
	return "radial"
}

// ParseSlotStyle converts a string name (case-insensitive) to a SlotStyle.
func ParseSlotStyle(name string) (SlotStyle, error) {
	switch strings.ToLower(name) {
	case "radial":
		return Radial, nil
	case "linear":
		return Linear, nil
	default:
		return Radial, fmt.Errorf("unknown slot style: '%s'", name)
	}
}

// BinningMode selects how raw samples are reduced to per-slot amplitudes.
type BinningMode int

const (
	// MeanAbsolute produces symmetric amplitudes from the mean absolute
	// value of each bucket.
	MeanAbsolute BinningMode = iota
	// MinMax keeps the true extrema of each bucket.
	MinMax
	// Continuous resamples directly to the slot count, splitting
	// positive and negative excursions into separate channels.
	Continuous
)

func (m BinningMode) String() string {
	switch m {
	case MinMax:
		return "min_max"
	case Continuous:
		return "continuous"
	default:
		return "mean_absolute"
	}
}

// ParseBinningMode converts a string name (case-insensitive) to a BinningMode.
func ParseBinningMode(name string) (BinningMode, error) {
	switch strings.ToLower(name) {
	case "mean_absolute", "mean":
		return MeanAbsolute, nil
	case "min_max", "minmax":
		return MinMax, nil
	case "continuous":
		return Continuous, nil
	default:
		return MeanAbsolute, fmt.Errorf("unknown binning mode: '%s'", name)
	}
}

// CorrectionMode selects how the multi-section visual correction is applied.
type CorrectionMode int

const (
	// CorrectionOff disables visual correction.
	CorrectionOff CorrectionMode = iota
	// CorrectionCenter shifts each slot's center point toward the
	// available reach.
	CorrectionCenter
	// CorrectionNudge shifts each slot's vertex offset instead.
	CorrectionNudge
)

func (m CorrectionMode) String() string {
	switch m {
	case CorrectionCenter:
		return "center_adj"
	case CorrectionNudge:
		return "nudge_adj"
	default:
		return "off"
	}
}

// ParseCorrectionMode converts a string name (case-insensitive) to a CorrectionMode.
func ParseCorrectionMode(name string) (CorrectionMode, error) {
	switch strings.ToLower(name) {
	case "off", "none", "":
		return CorrectionOff, nil
	case "center_adj", "center":
		return CorrectionCenter, nil
	case "nudge_adj", "nudge":
		return CorrectionNudge, nil
	default:
		return CorrectionOff, fmt.Errorf("unknown correction mode: '%s'", name)
	}
}

// State is the immutable composition a caller submits for processing.
// All lengths are in inches, angles in degrees.
type State struct {
	Shape    Shape
	FinishX  float64 // Finished panel width
	FinishY  float64 // Finished panel height
	Sections int     // Number of physical sections (1-4)

	Separation float64 // Gap between adjacent sections
	SlotStyle  SlotStyle
	SlotCount  int // Total slots across all sections

	BitDiameter float64 // Cutting bit diameter
	Spacer      float64 // Material left between adjacent slots

	XOffset    float64 // Horizontal shift of section centers
	YOffset    float64 // Vertical inset from the panel edge
	SideMargin float64 // Margin at section ends (linear layouts)

	ScaleCenterPoint  float64 // Multiplier on the slot center point
	AmplitudeExponent float64 // Contrast exponent applied to amplitudes
	GrainAngle        float64 // Material grain angle, degrees

	VisualCorrectionMode  CorrectionMode
	VisualCorrectionScale float64

	// Amplitudes holds one normalized value per slot. Its length must
	// equal SlotCount whenever slot generation is invoked.
	Amplitudes []float64
}

// circularTolerance is the allowed width/height mismatch for circular panels.
const circularTolerance = 0.01

// ErrInvalidParameter is wrapped by every validation failure so callers
// can branch on the class without matching message text.
var ErrInvalidParameter = errors.New("invalid parameter")

// Validate rejects states that cannot produce a usable panel. Slot
// generation additionally requires ValidateAmplitudes.
func (s *State) Validate() error {
	if s.SlotCount <= 0 {
		return fmt.Errorf("%w: slot count must be positive, got %d", ErrInvalidParameter, s.SlotCount)
	}
	if s.Sections < 1 || s.Sections > 4 {
		return fmt.Errorf("%w: section count must be between 1 and 4, got %d", ErrInvalidParameter, s.Sections)
	}
	if s.FinishX <= 0 || s.FinishY <= 0 {
		return fmt.Errorf("%w: finish dimensions must be positive, got %.3f x %.3f", ErrInvalidParameter, s.FinishX, s.FinishY)
	}
	if s.Shape == Circular && math.Abs(s.FinishX-s.FinishY) > circularTolerance {
		return fmt.Errorf("%w: circular panels require equal width and height, got %.3f x %.3f", ErrInvalidParameter, s.FinishX, s.FinishY)
	}
	if s.BitDiameter <= 0 {
		return fmt.Errorf("%w: bit diameter must be positive, got %.4f", ErrInvalidParameter, s.BitDiameter)
	}
	if s.Spacer < 0 {
		return fmt.Errorf("%w: spacer must not be negative, got %.4f", ErrInvalidParameter, s.Spacer)
	}
	// Linear multi-section layouts distribute slots combinatorially,
	// so only radial fans need an even split.
	if s.SlotStyle == Radial && s.SlotCount%s.Sections != 0 {
		return fmt.Errorf("%w: slot count %d must divide evenly into %d sections", ErrInvalidParameter, s.SlotCount, s.Sections)
	}
	return nil
}

// ValidateAmplitudes checks the amplitude array length against the
// slot count. Separate from Validate so geometry-only callers can skip it.
func (s *State) ValidateAmplitudes() error {
	if len(s.Amplitudes) != s.SlotCount {
		return fmt.Errorf("%w: amplitude array length %d does not match slot count %d", ErrInvalidParameter, len(s.Amplitudes), s.SlotCount)
	}
	return nil
}

// SlotsPerSection returns the number of slots in each section.
func (s *State) SlotsPerSection() int {
	return s.SlotCount / s.Sections
}

// Clone returns a deep copy of the state, including the amplitude array.
func (s *State) Clone() *State {
	out := *s
	if s.Amplitudes != nil {
		out.Amplitudes = make([]float64, len(s.Amplitudes))
		copy(out.Amplitudes, s.Amplitudes)
	}
	return &out
}
