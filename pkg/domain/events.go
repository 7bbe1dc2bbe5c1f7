package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition    EventType = "transition"
	EventStepAdvance   EventType = "step_advance"
	EventGenerateStart EventType = "generate_start"
	EventGenerateEnd   EventType = "generate_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TransitionEvent is emitted whenever the active screen changes.
type TransitionEvent struct {
	EventBase
	From   Screen `json:"from"`
	To     Screen `json:"to"`
	Reason string `json:"reason"`
}

// StepEvent is emitted when the preloader reveals a step.
type StepEvent struct {
	EventBase
	Step Step `json:"step"`
}

// GenerateEvent is emitted around an itinerary generation.
type GenerateEvent struct {
	EventBase
	Destination string        `json:"destination"`
	Duration    time.Duration `json:"duration,omitempty"`
	Err         error         `json:"-"`
}

// LifecycleHooks defines callbacks for flow observability.
// Hooks run synchronously on the goroutine that caused the event, after the
// controller has released its lock.
type LifecycleHooks struct {
	OnTransition    func(context.Context, *TransitionEvent)
	OnStepAdvance   func(context.Context, *StepEvent)
	OnGenerateStart func(context.Context, *GenerateEvent)
	OnGenerateEnd   func(context.Context, *GenerateEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition:    chain(h.OnTransition, other.OnTransition),
		OnStepAdvance:   chain(h.OnStepAdvance, other.OnStepAdvance),
		OnGenerateStart: chain(h.OnGenerateStart, other.OnGenerateStart),
		OnGenerateEnd:   chain(h.OnGenerateEnd, other.OnGenerateEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
