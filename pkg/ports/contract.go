package ports

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// RunSchedulerContract runs a suite of tests to verify that a Scheduler implementation
// adheres to the defined interface contract.
// advance must move the scheduler's clock forward by d and return once every task
// due by then has run (a real scheduler sleeps, a manual one advances).
func RunSchedulerContract(t *testing.T, sched Scheduler, advance func(d time.Duration)) {
	const tick = 50 * time.Millisecond

	t.Run("AfterFunc fires once", func(t *testing.T) {
		var calls atomic.Int32
		h := sched.AfterFunc(tick, func() { calls.Add(1) })

		advance(tick / 2)
		assert.Equal(t, int32(0), calls.Load(), "must not fire early")

		advance(tick)
		assert.Equal(t, int32(1), calls.Load())

		advance(3 * tick)
		assert.Equal(t, int32(1), calls.Load(), "one-shot fired twice")
		assert.False(t, h.Cancel(), "cancel after fire must report false")
	})

	t.Run("AfterFunc cancelled never fires", func(t *testing.T) {
		var calls atomic.Int32
		h := sched.AfterFunc(tick, func() { calls.Add(1) })

		assert.True(t, h.Cancel())
		assert.False(t, h.Cancel(), "second cancel must report false")

		advance(3 * tick)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("Every repeats until cancelled", func(t *testing.T) {
		var calls atomic.Int32
		h := sched.Every(tick, func() { calls.Add(1) })

		advance(tick + tick/2)
		advance(tick)
		got := calls.Load()
		assert.GreaterOrEqual(t, got, int32(2))

		assert.True(t, h.Cancel())
		advance(3 * tick)
		assert.Equal(t, got, calls.Load(), "periodic task fired after cancel")
	})

	t.Run("Now moves forward", func(t *testing.T) {
		before := sched.Now()
		advance(tick)
		assert.False(t, sched.Now().Before(before.Add(tick)))
	})
}
