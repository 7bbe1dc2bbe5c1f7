package domain

import "time"

// Preloader cadence used when no timing is configured.
const (
	DefaultStepInterval = 1000 * time.Millisecond
	DefaultHold         = 800 * time.Millisecond
	DefaultFade         = 500 * time.Millisecond
)

// DefaultGenerationTimeout bounds a single itinerary generation.
const DefaultGenerationTimeout = 30 * time.Second

// MaxTripDays is the longest trip, in calendar days, a request may cover.
const MaxTripDays = 30

// MaxTravelers is the largest party a request may name. "5+" stays the form's open bucket.
const MaxTravelers = 20
