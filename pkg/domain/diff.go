package domain

import (
	"reflect"
)

// SnapshotDiff represents the changes between two snapshots of a session.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Screen   *Screen        `json:"screen,omitempty"`
	Animator *AnimatorState `json:"animator,omitempty"`
	Step     *Step          `json:"step,omitempty"`

	// Itinerary is set when a plan becomes available; ItineraryCleared when it is discarded.
	Itinerary        *Itinerary `json:"itinerary,omitempty"`
	ItineraryCleared bool       `json:"itinerary_cleared,omitempty"`

	// Error carries the new error message; an empty string pointer means the error was cleared.
	Error *string `json:"error,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing observable changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{SessionID: newSnap.SessionID}

	if oldSnap == nil || oldSnap.Screen != newSnap.Screen {
		diff.Screen = ptr(newSnap.Screen)
	}

	if newSnap.Animator != nil && (oldSnap == nil || oldSnap.Animator == nil || *oldSnap.Animator != *newSnap.Animator) {
		diff.Animator = ptr(*newSnap.Animator)
		if newSnap.Step != nil {
			diff.Step = ptr(*newSnap.Step)
		}
	}

	switch {
	case newSnap.Itinerary != nil && (oldSnap == nil || oldSnap.Itinerary == nil || !reflect.DeepEqual(*oldSnap.Itinerary, *newSnap.Itinerary)):
		diff.Itinerary = ptr(newSnap.Itinerary.Clone())
	case newSnap.Itinerary == nil && oldSnap != nil && oldSnap.Itinerary != nil:
		diff.ItineraryCleared = true
	}

	if oldSnap == nil {
		if newSnap.Error != "" {
			diff.Error = ptr(newSnap.Error)
		}
	} else if oldSnap.Error != newSnap.Error {
		diff.Error = ptr(newSnap.Error)
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Screen == nil &&
		d.Animator == nil &&
		d.Step == nil &&
		d.Itinerary == nil &&
		!d.ItineraryCleared &&
		d.Error == nil
}

func ptr[T any](v T) *T {
	return &v
}
