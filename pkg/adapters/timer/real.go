package timer

import (
	"sync/atomic"
	"time"

	"github.com/aretw0/tripwizard/pkg/ports"
)

const (
	taskPending int32 = iota
	taskFired
	taskCancelled
)

// Real implements ports.Scheduler using Go's standard time package.
type Real struct{}

// NewReal creates a scheduler backed by runtime timers.
func NewReal() *Real {
	return &Real{}
}

var _ ports.Scheduler = (*Real)(nil)

// Now returns the wall clock.
func (r *Real) Now() time.Time {
	return time.Now()
}

type oneShot struct {
	state atomic.Int32
	timer *time.Timer
}

// AfterFunc runs fn once after d on its own goroutine.
func (r *Real) AfterFunc(d time.Duration, fn func()) ports.TaskHandle {
	t := &oneShot{}
	t.timer = time.AfterFunc(d, func() {
		if t.state.CompareAndSwap(taskPending, taskFired) {
			fn()
		}
	})
	return t
}

func (t *oneShot) Cancel() bool {
	if !t.state.CompareAndSwap(taskPending, taskCancelled) {
		return false
	}
	t.timer.Stop()
	return true
}

type periodic struct {
	cancelled atomic.Bool
	done      chan struct{}
}

// Every runs fn every d on a dedicated goroutine until cancelled.
// A call already in progress when Cancel is invoked is allowed to finish.
func (r *Real) Every(d time.Duration, fn func()) ports.TaskHandle {
	t := &periodic{done: make(chan struct{})}
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				if t.cancelled.Load() {
					return
				}
				fn()
			}
		}
	}()
	return t
}

func (t *periodic) Cancel() bool {
	if !t.cancelled.CompareAndSwap(false, true) {
		return false
	}
	close(t.done)
	return true
}
