// SPDX-License-Identifier: MIT
//
// Package processing decides how much of the pipeline must re-run after
// a set of composition fields changed, and performs the geometry-tier
// and audio-tier rescaling itself.
package processing

// Level is the minimal recomputation tier required after a change. The
// order is total: a change set classifies as its maximum member.
type Level int

const (
	// LevelDisplay requires no recomputation; the caller re-renders
	// from existing data.
	LevelDisplay Level = iota
	// LevelPost re-applies post adjustments such as visual correction.
	LevelPost
	// LevelSlots regenerates slot polygons from existing amplitudes.
	LevelSlots
	// LevelGeometry recomputes geometry and rescales amplitudes.
	LevelGeometry
	// LevelAudio additionally requires the caller to rebin raw audio.
	LevelAudio
)

func (l Level) String() string {
	switch l {
	case LevelPost:
		return "post"
	case LevelSlots:
		return "slots"
	case LevelGeometry:
		return "geometry"
	case LevelAudio:
		return "audio"
	default:
		return "display"
	}
}

// fieldLevels maps changed composition field names to the tier they
// touch. Unlisted fields are display-only.
var fieldLevels = map[string]Level{
	// Audio tier: the amplitude source itself changes.
	"audio_file":       LevelAudio,
	"slot_count":       LevelAudio,
	"slice_start":      LevelAudio,
	"slice_end":        LevelAudio,
	"stem":             LevelAudio,
	"silence_db":       LevelAudio,
	"silence_strategy": LevelAudio,
	"binning_mode":     LevelAudio,

	// Geometry tier: the scaling frame changes.
	"shape":              LevelGeometry,
	"finish_x":           LevelGeometry,
	"finish_y":           LevelGeometry,
	"sections":           LevelGeometry,
	"separation":         LevelGeometry,
	"slot_style":         LevelGeometry,
	"bit_diameter":       LevelGeometry,
	"spacer":             LevelGeometry,
	"x_offset":           LevelGeometry,
	"y_offset":           LevelGeometry,
	"side_margin":        LevelGeometry,
	"scale_center_point": LevelGeometry,

	// Slot tier: polygons change, amplitudes and geometry do not.
	"grain_angle":        LevelSlots,
	"amplitude_exponent": LevelSlots,
	"filter_amount":      LevelSlots,

	// Post tier: adjustments on top of generated polygons.
	"visual_correction_mode":  LevelPost,
	"visual_correction_scale": LevelPost,
}

// Classify returns the maximum level touched by the changed fields.
// An empty or unknown-only set classifies as display.
func Classify(changed map[string]struct{}) Level {
	level := LevelDisplay
	for field := range changed {
		if l, ok := fieldLevels[field]; ok && l > level {
			level = l
		}
	}
	return level
}

// ChangeSet builds the set form Classify consumes from field names.
func ChangeSet(fields ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}
