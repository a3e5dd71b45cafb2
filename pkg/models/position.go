package models

import (
	"encoding/json"
	"math/rand/v2"
)

const (
	defaultPositionBase   = 100
	defaultPositionSpread = 200
)

// legacySettings is the subset of the legacy SettingsStr blob we still read.
// Coordinates are pointers so a partial position (missing x or y) is rejected
// rather than silently zeroed.
type legacySettings struct {
	Position *struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"position"`
}

// ResolvePosition returns the canvas position for the activity: the typed
// field when set, then the legacy settings blob, then a randomized point in
// a bounded box so freshly derived nodes don't stack on top of each other.
func (a *Activity) ResolvePosition() Position {
	if a.Position != nil {
		return *a.Position
	}

	if p, ok := a.legacyPosition(); ok {
		return p
	}

	return Position{
		X: defaultPositionBase + rand.Float64()*defaultPositionSpread,
		Y: defaultPositionBase + rand.Float64()*defaultPositionSpread,
	}
}

func (a *Activity) legacyPosition() (Position, bool) {
	if a.SettingsStr == "" {
		return Position{}, false
	}

	var settings legacySettings
	if err := json.Unmarshal([]byte(a.SettingsStr), &settings); err != nil {
		return Position{}, false
	}

	if settings.Position == nil || settings.Position.X == nil || settings.Position.Y == nil {
		return Position{}, false
	}

	return Position{X: *settings.Position.X, Y: *settings.Position.Y}, true
}

// NormalizePositions promotes legacy settings positions into the typed field.
// Repositories call this when loading external data so the dual-channel
// storage collapses at the ingest boundary.
func (w *Workflow) NormalizePositions() {
	for i := range w.Activities {
		activity := &w.Activities[i]
		if activity.Position != nil {
			continue
		}

		if p, ok := activity.legacyPosition(); ok {
			activity.Position = &p
		}
	}
}
