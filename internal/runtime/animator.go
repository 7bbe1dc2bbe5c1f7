package runtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/aretw0/tripwizard/pkg/ports"
)

// Timing configures the preloader cadence.
type Timing struct {
	Interval time.Duration `json:"interval" mapstructure:"interval"` // delay between two steps
	Hold     time.Duration `json:"hold" mapstructure:"hold"`         // last step stays visible this long
	Fade     time.Duration `json:"fade" mapstructure:"fade"`         // fade-out before completion
}

// DefaultTiming returns the 1000/800/500ms cadence.
func DefaultTiming() Timing {
	return Timing{
		Interval: domain.DefaultStepInterval,
		Hold:     domain.DefaultHold,
		Fade:     domain.DefaultFade,
	}
}

// Validate checks that the interval is positive and the delays are not negative.
func (t Timing) Validate() error {
	if t.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", domain.ErrInvalidTiming, t.Interval)
	}
	if t.Hold < 0 || t.Fade < 0 {
		return fmt.Errorf("%w: hold and fade must not be negative", domain.ErrInvalidTiming)
	}
	return nil
}

// Total returns how long an animation over n steps runs before completing.
func (t Timing) Total(n int) time.Duration {
	if n < 1 {
		return 0
	}
	return time.Duration(n-1)*t.Interval + t.Hold + t.Fade
}

type animPhase int

const (
	phaseIdle animPhase = iota
	phaseRunning
	phaseHolding
	phaseFading
	phaseDone
	phaseStopped
)

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithOnChange registers a callback invoked after every state change
// (step advance and fade start). It runs without any animator lock held.
func WithOnChange(fn func(domain.AnimatorState)) AnimatorOption {
	return func(a *Animator) {
		a.onChange = fn
	}
}

// Animator cycles through a fixed list of steps at a fixed cadence, holds the
// last one, fades out and then reports completion exactly once.
//
// Callbacks are serialised: once Stop returns, neither onChange nor onComplete
// will run again.
type Animator struct {
	steps      []domain.Step
	timing     Timing
	sched      ports.Scheduler
	onComplete func()
	onChange   func(domain.AnimatorState)

	// run serialises Start, Stop and every scheduled callback.
	run sync.Mutex

	mu      sync.Mutex
	state   domain.AnimatorState
	phase   animPhase
	ticker  ports.TaskHandle
	pending ports.TaskHandle
}

// NewAnimator validates steps and timing and returns an idle animator.
// onComplete may be nil.
func NewAnimator(steps []domain.Step, timing Timing, sched ports.Scheduler, onComplete func(), opts ...AnimatorOption) (*Animator, error) {
	if len(steps) == 0 {
		return nil, domain.ErrNoSteps
	}
	if err := timing.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, fmt.Errorf("animator requires a scheduler")
	}

	a := &Animator{
		steps:      domain.NormalizeSteps(steps),
		timing:     timing,
		sched:      sched,
		onComplete: onComplete,
		state:      domain.AnimatorState{CurrentStep: 0, Visible: true},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Start begins the animation. Calling Start more than once, or after Stop, does nothing.
func (a *Animator) Start() {
	a.run.Lock()
	defer a.run.Unlock()

	a.mu.Lock()
	if a.phase != phaseIdle {
		a.mu.Unlock()
		return
	}
	a.state = domain.AnimatorState{CurrentStep: 0, Visible: true}
	a.phase = phaseRunning
	if len(a.steps) == 1 {
		a.holdLocked()
	} else {
		a.ticker = a.sched.Every(a.timing.Interval, a.tick)
	}
	st := a.state
	a.mu.Unlock()

	a.notify(st)
}

// Stop cancels every pending timer. It is idempotent and safe to call from any goroutine
// except from inside the animator's own callbacks.
func (a *Animator) Stop() {
	a.run.Lock()
	defer a.run.Unlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase == phaseDone || a.phase == phaseStopped {
		a.phase = phaseStopped
		return
	}
	a.cancelTimersLocked()
	a.phase = phaseStopped
}

// State returns a copy of the current animator state.
func (a *Animator) State() domain.AnimatorState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Current returns the step currently displayed.
func (a *Animator) Current() domain.Step {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.steps[a.state.CurrentStep]
}

// Steps returns a copy of the animated steps.
func (a *Animator) Steps() []domain.Step {
	return append([]domain.Step(nil), a.steps...)
}

// Timing returns the animator cadence.
func (a *Animator) Timing() Timing {
	return a.timing
}

// Done reports whether the animation reached completion.
func (a *Animator) Done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase == phaseDone
}

func (a *Animator) tick() {
	a.run.Lock()
	defer a.run.Unlock()

	a.mu.Lock()
	if a.phase != phaseRunning {
		a.mu.Unlock()
		return
	}
	last := len(a.steps) - 1
	if a.state.CurrentStep < last {
		a.state.CurrentStep++
	}
	if a.state.CurrentStep >= last {
		if a.ticker != nil {
			a.ticker.Cancel()
			a.ticker = nil
		}
		a.holdLocked()
	}
	st := a.state
	a.mu.Unlock()

	a.notify(st)
}

func (a *Animator) holdLocked() {
	a.phase = phaseHolding
	a.pending = a.sched.AfterFunc(a.timing.Hold, a.fade)
}

func (a *Animator) fade() {
	a.run.Lock()
	defer a.run.Unlock()

	a.mu.Lock()
	if a.phase != phaseHolding {
		a.mu.Unlock()
		return
	}
	a.state.Visible = false
	a.phase = phaseFading
	a.pending = a.sched.AfterFunc(a.timing.Fade, a.finish)
	st := a.state
	a.mu.Unlock()

	a.notify(st)
}

func (a *Animator) finish() {
	a.run.Lock()
	defer a.run.Unlock()

	a.mu.Lock()
	if a.phase != phaseFading {
		a.mu.Unlock()
		return
	}
	a.phase = phaseDone
	a.pending = nil
	a.mu.Unlock()

	if a.onComplete != nil {
		a.onComplete()
	}
}

func (a *Animator) cancelTimersLocked() {
	if a.ticker != nil {
		a.ticker.Cancel()
		a.ticker = nil
	}
	if a.pending != nil {
		a.pending.Cancel()
		a.pending = nil
	}
}

func (a *Animator) notify(st domain.AnimatorState) {
	if a.onChange != nil {
		a.onChange(st)
	}
}
