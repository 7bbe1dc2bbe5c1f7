package ports

import "time"

// TaskHandle is the cancellation handle of a scheduled task.
type TaskHandle interface {
	// Cancel stops the task. It returns false if the task had already fired
	// (one-shot) or was already cancelled.
	Cancel() bool
}

// Scheduler runs delayed and periodic tasks.
// Callbacks may run on any goroutine; callers serialise their own state.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) TaskHandle

	// Every runs fn every d until the returned handle is cancelled.
	Every(d time.Duration, fn func()) TaskHandle

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}
