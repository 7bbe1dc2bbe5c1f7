package domain

import (
	"errors"
	"strings"
)

// ErrNoSteps is returned when an animator is built without any step.
var ErrNoSteps = errors.New("animator requires at least one step")

// ErrInvalidTiming is returned when an animator cadence is not positive or a delay is negative.
var ErrInvalidTiming = errors.New("invalid animator timing")

// ErrInvalidTransition is returned when an operation is not allowed on the current screen.
var ErrInvalidTransition = errors.New("invalid screen transition")

// ErrInvalidRequest is the category matched by every ValidationError.
var ErrInvalidRequest = errors.New("invalid trip request")

// ErrGenerationTimeout is recorded when the itinerary generator exceeds its deadline.
var ErrGenerationTimeout = errors.New("itinerary generation timed out")

// ErrGenerationCanceled is recorded when the user cancels a running generation.
var ErrGenerationCanceled = errors.New("itinerary generation canceled")

// ErrClosed is returned by operations on a controller that has been torn down.
var ErrClosed = errors.New("session closed")

// ErrSessionNotFound is returned when a session ID cannot be found in the manager.
var ErrSessionNotFound = errors.New("session not found")

// FieldError describes a single invalid field of a TripRequest.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a recoverable error listing the invalid fields of a TripRequest.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalidRequest) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}
