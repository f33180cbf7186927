// SPDX-License-Identifier: MIT
//
// Package transport publishes computed pattern frames to preview
// consumers. Rendering itself is a collaborator concern; the transport
// only moves values.
package transport

import (
	"github.com/google/uuid"

	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/geometry"
	"github.com/worshipwaves/WDweb-sub000/internal/slots"
)

// Transport sends computed data to a consumer. Implementations must be
// safe for concurrent Send calls.
type Transport interface {
	Send(frame *PatternFrame) error
	Close() error
}

// PatternFrame is one complete computed cut pattern.
type PatternFrame struct {
	RunID        string          `json:"run_id"`
	Shape        string          `json:"shape"`
	Sections     int             `json:"sections"`
	SlotCount    int             `json:"slot_count"`
	MaxAmplitude float64         `json:"max_amplitude"`
	Radius       float64         `json:"radius"`
	Polygons     []slots.Polygon `json:"polygons"`
}

// NewPatternFrame assembles a frame from the pipeline's outputs,
// assigning it a fresh run identifier.
func NewPatternFrame(state *composition.State, geom *geometry.Result, polygons []slots.Polygon) *PatternFrame {
	return &PatternFrame{
		RunID:        uuid.NewString(),
		Shape:        state.Shape.String(),
		Sections:     state.Sections,
		SlotCount:    state.SlotCount,
		MaxAmplitude: geom.MaxAmplitude,
		Radius:       geom.Radius,
		Polygons:     polygons,
	}
}
