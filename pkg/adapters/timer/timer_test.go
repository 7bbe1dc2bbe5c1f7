package timer_test

import (
	"testing"
	"time"

	"github.com/aretw0/tripwizard/pkg/adapters/timer"
	"github.com/aretw0/tripwizard/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestManual_Contract(t *testing.T) {
	m := timer.NewManual(time.Unix(0, 0))
	ports.RunSchedulerContract(t, m, m.Advance)
}

func TestReal_Contract(t *testing.T) {
	if testing.Short() {
		t.Skip("real timers")
	}
	r := timer.NewReal()
	ports.RunSchedulerContract(t, r, func(d time.Duration) {
		time.Sleep(d + 10*time.Millisecond)
	})
}

func TestManual_RunsInDueOrder(t *testing.T) {
	m := timer.NewManual(time.Unix(0, 0))
	var order []string

	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_NestedScheduling(t *testing.T) {
	start := time.Unix(0, 0)
	m := timer.NewManual(start)
	var firedAt []time.Duration

	m.AfterFunc(100*time.Millisecond, func() {
		firedAt = append(firedAt, m.Now().Sub(start))
		m.AfterFunc(50*time.Millisecond, func() {
			firedAt = append(firedAt, m.Now().Sub(start))
		})
	})

	m.Advance(200 * time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 150 * time.Millisecond}, firedAt)
	assert.Equal(t, 200*time.Millisecond, m.Now().Sub(start))
}

func TestManual_PeriodicSelfCancel(t *testing.T) {
	m := timer.NewManual(time.Unix(0, 0))
	calls := 0

	var h ports.TaskHandle
	h = m.Every(10*time.Millisecond, func() {
		calls++
		if calls == 3 {
			h.Cancel()
		}
	})

	m.Advance(time.Second)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, m.Pending())
}
