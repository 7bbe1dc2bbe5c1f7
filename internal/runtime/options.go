package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/aretw0/tripwizard/pkg/ports"
)

// ControllerOption defines a functional option for configuring the Controller.
type ControllerOption func(*Controller)

// WithSessionID sets the identifier reported in snapshots, events and logs.
func WithSessionID(id string) ControllerOption {
	return func(c *Controller) {
		c.id = id
	}
}

// WithSteps replaces the default preloader steps.
func WithSteps(steps []domain.Step) ControllerOption {
	return func(c *Controller) {
		c.steps = steps
	}
}

// WithTiming replaces the default preloader cadence.
func WithTiming(t Timing) ControllerOption {
	return func(c *Controller) {
		c.timing = t
	}
}

// WithScheduler sets the scheduler driving the preloader and the generation deadline.
func WithScheduler(s ports.Scheduler) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithGenerationTimeout bounds each itinerary generation. Non-positive values keep the default.
func WithGenerationTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger configures the controller logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Calling it twice merges the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = c.hooks.Merge(hooks)
	}
}
