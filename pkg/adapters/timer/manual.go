package timer

import (
	"sync"
	"time"

	"github.com/aretw0/tripwizard/pkg/ports"
)

// Manual implements ports.Scheduler with a clock that only moves on Advance.
// Safe for concurrent use; callbacks never run while the internal lock is held.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	nextID int64
	tasks  map[int64]*manualTask
}

type manualTask struct {
	id     int64
	due    time.Time
	period time.Duration
	fn     func()
	owner  *Manual
}

// NewManual creates a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:   start,
		tasks: make(map[int64]*manualTask),
	}
}

var _ ports.Scheduler = (*Manual)(nil)

// Now returns the manual clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn to run once when the clock reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.TaskHandle {
	return m.add(d, 0, fn)
}

// Every schedules fn at now+d, now+2d, ... until cancelled.
// A non-positive period panics, like time.NewTicker.
func (m *Manual) Every(d time.Duration, fn func()) ports.TaskHandle {
	if d <= 0 {
		panic("timer: non-positive interval for Every")
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, period time.Duration, fn func()) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t := &manualTask{
		id:     m.nextID,
		due:    m.now.Add(d),
		period: period,
		fn:     fn,
		owner:  m,
	}
	m.tasks[t.id] = t
	return t
}

func (t *manualTask) Cancel() bool {
	m := t.owner
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[t.id]; !ok {
		return false
	}
	delete(m.tasks, t.id)
	return true
}

// Advance moves the clock forward by d, running every task that becomes due,
// in due order (ties in scheduling order). Tasks scheduled by a callback run in
// the same call if they fall due before the target time.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.earliestDue(target)
		if next == nil {
			if m.now.Before(target) {
				m.now = target
			}
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.period > 0 {
			next.due = next.due.Add(next.period)
		} else {
			delete(m.tasks, next.id)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending returns the number of scheduled tasks that have not fired or been cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) earliestDue(target time.Time) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}
