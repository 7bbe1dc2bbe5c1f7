package domain

import "time"

// Screen identifies the single top-level view active in a session.
type Screen string

const (
	ScreenPreloading Screen = "preloading" // Intro animation, initial screen
	ScreenCollecting Screen = "collecting" // Trip form
	ScreenGenerating Screen = "generating" // Busy indicator while the itinerary is built
	ScreenReviewing  Screen = "reviewing"  // Itinerary results
)

// Screens lists every screen in flow order.
var Screens = []Screen{ScreenPreloading, ScreenCollecting, ScreenGenerating, ScreenReviewing}

// Valid reports whether s is one of the known screens.
func (s Screen) Valid() bool {
	switch s {
	case ScreenPreloading, ScreenCollecting, ScreenGenerating, ScreenReviewing:
		return true
	}
	return false
}

// AnimatorState is the mutable part of the preloader.
type AnimatorState struct {
	CurrentStep int  `json:"current_step"`
	Visible     bool `json:"visible"`
}

// Snapshot represents a rendered view of a session at a point in time.
// Every field is a copy; mutating a Snapshot never affects the session.
type Snapshot struct {
	SessionID string `json:"session_id"`
	Screen    Screen `json:"screen"`

	// Animator and Step are only set while the screen is Preloading.
	Animator *AnimatorState `json:"animator,omitempty"`
	Step     *Step          `json:"step,omitempty"`
	Steps    []Step         `json:"steps,omitempty"`

	// Request is the last submitted trip request (kept so the form can be prefilled on edit).
	Request *TripRequest `json:"request,omitempty"`

	// Itinerary is only set while the screen is Reviewing.
	Itinerary *Itinerary `json:"itinerary,omitempty"`

	// Error is the last recoverable error surfaced to the user, cleared on the next successful transition.
	Error string `json:"error,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
