package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tripwizard/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that write every event to logger.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "Screen Transition", "session_id", e.SessionID, "from", e.From, "to", e.To, "reason", e.Reason)
		},
		OnStepAdvance: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "Preloader Step", "session_id", e.SessionID, "step", e.Step.Ordinal, "label", e.Step.Label)
		},
		OnGenerateStart: func(ctx context.Context, e *domain.GenerateEvent) {
			logger.DebugContext(ctx, "Generation Started", "session_id", e.SessionID, "destination", e.Destination)
		},
		OnGenerateEnd: func(ctx context.Context, e *domain.GenerateEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "Generation Failed", "session_id", e.SessionID, "destination", e.Destination, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.InfoContext(ctx, "Generation Finished", "session_id", e.SessionID, "destination", e.Destination, "duration", e.Duration)
		},
	}
}
