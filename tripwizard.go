package tripwizard

import (
	"log/slog"
	"time"

	"github.com/aretw0/tripwizard/internal/runtime"
	"github.com/aretw0/tripwizard/pkg/adapters/mock"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/aretw0/tripwizard/pkg/ports"
)

// Version is the release reported by the CLI and the HTTP /info endpoint.
var Version = "0.1.0"

// Session is one wizard: the preloader, the trip form, generation and review.
type Session = runtime.Controller

// Timing is the preloader cadence.
type Timing = runtime.Timing

// DefaultTiming returns the 1000/800/500ms cadence.
func DefaultTiming() Timing {
	return runtime.DefaultTiming()
}

type config struct {
	gen  ports.ItineraryGenerator
	opts []runtime.ControllerOption
}

// Option defines a functional option for configuring a Session.
type Option func(*config)

// WithGenerator replaces the built-in offline generator.
func WithGenerator(gen ports.ItineraryGenerator) Option {
	return func(c *config) {
		c.gen = gen
	}
}

// WithSessionID sets the identifier reported in snapshots, events and logs.
func WithSessionID(id string) Option {
	return func(c *config) {
		c.opts = append(c.opts, runtime.WithSessionID(id))
	}
}

// WithSteps replaces the four default preloader steps.
func WithSteps(steps ...domain.Step) Option {
	return func(c *config) {
		c.opts = append(c.opts, runtime.WithSteps(steps))
	}
}

// WithTiming sets the preloader cadence.
func WithTiming(t Timing) Option {
	return func(c *config) {
		c.opts = append(c.opts, runtime.WithTiming(t))
	}
}

// WithScheduler injects the scheduler; tests use timer.Manual.
func WithScheduler(s ports.Scheduler) Option {
	return func(c *config) {
		c.opts = append(c.opts, runtime.WithScheduler(s))
	}
}

// WithGenerationTimeout bounds each itinerary generation (default 30s).
func WithGenerationTimeout(d time.Duration) Option {
	return func(c *config) {
		c.opts = append(c.opts, runtime.WithGenerationTimeout(d))
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.opts = append(c.opts, runtime.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.opts = append(c.opts, runtime.WithLifecycleHooks(hooks))
	}
}

// New creates a Session in the Preloading screen. Call Start to run the preloader.
func New(opts ...Option) (*Session, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.gen == nil {
		c.gen = mock.New()
	}
	return runtime.NewController(c.gen, c.opts...)
}
