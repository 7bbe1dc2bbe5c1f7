package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/tripwizard/internal/logging"
	"github.com/aretw0/tripwizard/pkg/adapters/timer"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/aretw0/tripwizard/pkg/ports"
)

// Controller owns the active screen of one wizard session and the data handed
// between screens.
//
// Every operation and every asynchronous completion is serialised by a single
// mutex. Completions carry the token they were started with (the animator
// instance, or the submission sequence) and are dropped when the token is stale,
// so a late timer or generator result can never be observed out of order.
type Controller struct {
	id      string
	gen     ports.ItineraryGenerator
	sched   ports.Scheduler
	steps   []domain.Step
	timing  Timing
	timeout time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	mu        sync.Mutex
	screen    domain.Screen
	anim      *Animator
	lastStep  int
	started   bool
	closed    bool
	request   *domain.TripRequest
	itinerary *domain.Itinerary
	lastErr   string
	updatedAt time.Time
	seq       uint64
	cancelGen context.CancelCauseFunc
	changed   chan struct{}
}

// NewController creates a controller in the Preloading screen. The preloader
// does not run until Start is called.
func NewController(gen ports.ItineraryGenerator, opts ...ControllerOption) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("controller requires an itinerary generator")
	}
	c := &Controller{
		gen:      gen,
		sched:    timer.NewReal(),
		steps:    domain.DefaultSteps(),
		timing:   DefaultTiming(),
		timeout:  domain.DefaultGenerationTimeout,
		logger:   logging.NewNop(),
		screen:   domain.ScreenPreloading,
		lastStep: -1,
		changed:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id != "" {
		c.logger = c.logger.With("session_id", c.id)
	}

	anim, err := NewAnimator(c.steps, c.timing, c.sched, c.onPreloadComplete, WithOnChange(c.onAnimatorChange))
	if err != nil {
		return nil, err
	}
	c.anim = anim
	c.steps = anim.Steps()
	c.updatedAt = c.sched.Now()
	return c, nil
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// Start runs the preloader. It is idempotent.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	anim := c.anim
	ev := c.newTransition("", domain.ScreenPreloading, domain.ReasonStart)
	c.mu.Unlock()

	c.logger.Debug("preloader started", "steps", len(c.steps), "interval", c.timing.Interval)
	c.emitTransition(ctx, ev)
	// Start and Stop run outside c.mu: they serialise with callbacks that take c.mu.
	if anim != nil {
		anim.Start()
	}
	return nil
}

// Submit validates req and moves from Collecting to Generating. Generation runs
// in the background; the controller moves to Reviewing once it succeeds, or back
// to Collecting with an error message when it fails, times out or is cancelled.
//
// An invalid request leaves the controller in Collecting and returns a
// *domain.ValidationError.
func (c *Controller) Submit(ctx context.Context, req domain.TripRequest) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrClosed
	}
	if c.screen != domain.ScreenCollecting {
		screen := c.screen
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot submit from %s", domain.ErrInvalidTransition, screen)
	}
	req = req.Clone()
	if err := req.Validate(); err != nil {
		c.request = &req
		c.lastErr = err.Error()
		c.touchLocked()
		c.mu.Unlock()
		c.logger.Debug("trip request rejected", "error", err)
		return err
	}

	c.request = &req
	c.lastErr = ""
	c.seq++
	seq := c.seq

	genCtx, cancel := context.WithCancelCause(context.WithoutCancel(ctx))
	c.cancelGen = cancel
	deadline := c.sched.AfterFunc(c.timeout, func() { cancel(domain.ErrGenerationTimeout) })
	ev := c.transitionLocked(domain.ScreenGenerating, domain.ReasonSubmit)
	c.mu.Unlock()

	c.emitTransition(ctx, ev)
	start := &domain.GenerateEvent{EventBase: c.base(domain.EventGenerateStart), Destination: req.Destination}
	if c.hooks.OnGenerateStart != nil {
		c.hooks.OnGenerateStart(ctx, start)
	}
	c.logger.Info("generating itinerary", "destination", req.Destination, "days", req.Days())

	go c.generate(genCtx, cancel, deadline, seq, req)
	return nil
}

type generateResult struct {
	itinerary domain.Itinerary
	err       error
}

func (c *Controller) generate(ctx context.Context, cancel context.CancelCauseFunc, deadline ports.TaskHandle, seq uint64, req domain.TripRequest) {
	defer deadline.Cancel()
	defer cancel(nil)

	began := time.Now()
	results := make(chan generateResult, 1)
	go func() {
		it, err := c.gen.Generate(ctx, req.Clone())
		results <- generateResult{itinerary: it, err: err}
	}()

	var res generateResult
	select {
	case res = <-results:
		if res.err == nil && ctx.Err() != nil {
			res.err = ctx.Err()
		}
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if res.err != nil {
		res.err = classifyGenerationError(ctx, res.err)
	}
	elapsed := time.Since(began)

	end := &domain.GenerateEvent{
		EventBase:   c.base(domain.EventGenerateEnd),
		Destination: req.Destination,
		Duration:    elapsed,
		Err:         res.err,
	}

	c.mu.Lock()
	if c.closed || seq != c.seq || c.screen != domain.ScreenGenerating {
		c.mu.Unlock()
		c.logger.Debug("dropping stale generation result", "seq", seq, "error", res.err)
		c.emitGenerateEnd(end)
		return
	}
	c.cancelGen = nil
	var ev *domain.TransitionEvent
	if res.err != nil {
		c.lastErr = failureMessage(res.err)
		ev = c.transitionLocked(domain.ScreenCollecting, domain.ReasonGenerateFailed)
	} else {
		it := res.itinerary.Clone()
		c.itinerary = &it
		ev = c.transitionLocked(domain.ScreenReviewing, domain.ReasonGenerateDone)
	}
	c.mu.Unlock()

	if res.err != nil {
		c.logger.Warn("itinerary generation failed", "destination", req.Destination, "duration", elapsed, "error", res.err)
	} else {
		c.logger.Info("itinerary ready", "destination", req.Destination, "duration", elapsed)
	}
	c.emitGenerateEnd(end)
	c.emitTransition(context.Background(), ev)
}

// Edit discards the stored itinerary and returns from Reviewing to Collecting.
// The last request is kept so the form can be prefilled.
func (c *Controller) Edit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrClosed
	}
	if c.screen != domain.ScreenReviewing {
		screen := c.screen
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot edit from %s", domain.ErrInvalidTransition, screen)
	}
	c.itinerary = nil
	c.lastErr = ""
	ev := c.transitionLocked(domain.ScreenCollecting, domain.ReasonEdit)
	c.mu.Unlock()

	c.emitTransition(ctx, ev)
	return nil
}

// Cancel aborts the running generation and returns to Collecting.
// The generator result, if it ever arrives, is discarded.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrClosed
	}
	if c.screen != domain.ScreenGenerating {
		screen := c.screen
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot cancel from %s", domain.ErrInvalidTransition, screen)
	}
	c.seq++
	cancel := c.cancelGen
	c.cancelGen = nil
	c.lastErr = failureMessage(domain.ErrGenerationCanceled)
	ev := c.transitionLocked(domain.ScreenCollecting, domain.ReasonCancel)
	c.mu.Unlock()

	if cancel != nil {
		cancel(domain.ErrGenerationCanceled)
	}
	c.emitTransition(ctx, ev)
	return nil
}

// Close tears the session down: pending preloader timers are cancelled and a
// running generation is abandoned. Close is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.seq++
	anim := c.anim
	c.anim = nil
	cancel := c.cancelGen
	c.cancelGen = nil
	c.touchLocked()
	c.mu.Unlock()

	if anim != nil {
		anim.Stop()
	}
	if cancel != nil {
		cancel(domain.ErrClosed)
	}
	c.logger.Debug("session closed")
	return nil
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Screen returns the active screen.
func (c *Controller) Screen() domain.Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Changed returns a channel that is closed on the next state change.
func (c *Controller) Changed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

// Await blocks until the active screen is one of screens, the controller is
// closed or ctx is done. It returns the snapshot observed last.
func (c *Controller) Await(ctx context.Context, screens ...domain.Screen) (domain.Snapshot, error) {
	for {
		c.mu.Lock()
		snap := c.snapshotLocked()
		ch := c.changed
		closed := c.closed
		c.mu.Unlock()

		if slices.Contains(screens, snap.Screen) {
			return snap, nil
		}
		if closed {
			return snap, domain.ErrClosed
		}
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-ch:
		}
	}
}

func (c *Controller) onPreloadComplete() {
	c.mu.Lock()
	if c.closed || c.screen != domain.ScreenPreloading {
		c.mu.Unlock()
		return
	}
	c.anim = nil
	ev := c.transitionLocked(domain.ScreenCollecting, domain.ReasonPreloadComplete)
	c.mu.Unlock()

	c.emitTransition(context.Background(), ev)
}

func (c *Controller) onAnimatorChange(st domain.AnimatorState) {
	c.mu.Lock()
	if c.closed || c.screen != domain.ScreenPreloading {
		c.mu.Unlock()
		return
	}
	c.touchLocked()
	var ev *domain.StepEvent
	if st.CurrentStep != c.lastStep {
		c.lastStep = st.CurrentStep
		ev = &domain.StepEvent{EventBase: c.base(domain.EventStepAdvance), Step: c.steps[st.CurrentStep]}
	}
	c.mu.Unlock()

	if ev != nil && c.hooks.OnStepAdvance != nil {
		c.hooks.OnStepAdvance(context.Background(), ev)
	}
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID: c.id,
		Screen:    c.screen,
		Error:     c.lastErr,
		UpdatedAt: c.updatedAt,
	}
	if c.screen == domain.ScreenPreloading && c.anim != nil {
		// Lock order is c.mu then a.mu; animator callbacks run after a.mu is released.
		st := c.anim.State()
		step := c.steps[st.CurrentStep]
		snap.Animator = &st
		snap.Step = &step
		snap.Steps = append([]domain.Step(nil), c.steps...)
	}
	if c.request != nil {
		req := c.request.Clone()
		snap.Request = &req
	}
	if c.screen == domain.ScreenReviewing && c.itinerary != nil {
		it := c.itinerary.Clone()
		snap.Itinerary = &it
	}
	return snap
}

func (c *Controller) transitionLocked(to domain.Screen, reason string) *domain.TransitionEvent {
	from := c.screen
	if !domain.CanTransition(from, to, reason) {
		c.logger.Error("transition outside the flow", "from", from, "to", to, "reason", reason)
	}
	c.screen = to
	c.touchLocked()
	c.logger.Debug("screen transition", "from", from, "to", to, "reason", reason)
	return c.newTransition(from, to, reason)
}

func (c *Controller) newTransition(from, to domain.Screen, reason string) *domain.TransitionEvent {
	return &domain.TransitionEvent{
		EventBase: c.base(domain.EventTransition),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}

// touchLocked records a state change and wakes every waiter.
func (c *Controller) touchLocked() {
	c.updatedAt = c.sched.Now()
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: c.sched.Now(), Type: t, SessionID: c.id}
}

func (c *Controller) emitTransition(ctx context.Context, ev *domain.TransitionEvent) {
	if ev != nil && c.hooks.OnTransition != nil {
		c.hooks.OnTransition(ctx, ev)
	}
}

func (c *Controller) emitGenerateEnd(ev *domain.GenerateEvent) {
	if c.hooks.OnGenerateEnd != nil {
		c.hooks.OnGenerateEnd(context.Background(), ev)
	}
}

func classifyGenerationError(ctx context.Context, err error) error {
	cause := context.Cause(ctx)
	switch {
	case errors.Is(cause, domain.ErrGenerationTimeout):
		return domain.ErrGenerationTimeout
	case errors.Is(cause, domain.ErrGenerationCanceled):
		return domain.ErrGenerationCanceled
	case errors.Is(cause, domain.ErrClosed):
		return domain.ErrClosed
	}
	return err
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrGenerationTimeout), errors.Is(err, domain.ErrGenerationCanceled):
		return err.Error() + ", please try again"
	}
	return fmt.Sprintf("could not generate itinerary: %v", err)
}
