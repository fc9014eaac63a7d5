// Package plan defines the construction plan data model, the fenced-JSON
// extractor that recovers plans from raw model output, and the deterministic
// local fallback generator used when no backend produces a usable plan.
package plan

import (
	"strings"
)

// Request carries the five free-form input fields for one plan generation.
// No validation is applied beyond trimming; Rooms may or may not parse as
// an integer. Requests are never persisted.
type Request struct {
	Area      string
	Budget    string
	Rooms     string
	Style     string
	Furniture string
}

// Trimmed returns a copy of the request with surrounding whitespace
// removed from every field.
func (r Request) Trimmed() Request {
	return Request{
		Area:      strings.TrimSpace(r.Area),
		Budget:    strings.TrimSpace(r.Budget),
		Rooms:     strings.TrimSpace(r.Rooms),
		Style:     strings.TrimSpace(r.Style),
		Furniture: strings.TrimSpace(r.Furniture),
	}
}

// Room is one entry in a plan's room layout
type Room struct {
	Room string `json:"room"`
	Size string `json:"size"`
}

// Plan is the canonical output contract. Every code path that produces a
// Plan populates all five keys, even with empty containers, so consumers
// never branch on missing keys.
type Plan struct {
	Summary        string   `json:"summary"`
	RoomPlan       []Room   `json:"room_plan"`
	Materials      []string `json:"materials"`
	EstimatedCost  string   `json:"estimated_cost"`
	DesignFeatures []string `json:"design_features"`
}

// Normalize replaces nil collections with empty ones. Extracted plans may
// come from JSON that lacks some of the expected keys; that is tolerated
// here rather than treated as a failure, so a normalized plan always
// serializes with all five keys present.
func (p *Plan) Normalize() {
	if p.RoomPlan == nil {
		p.RoomPlan = []Room{}
	}
	if p.Materials == nil {
		p.Materials = []string{}
	}
	if p.DesignFeatures == nil {
		p.DesignFeatures = []string{}
	}
}
