package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tripwizard/internal/logging"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics(nil)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTransition(ctx, &domain.TransitionEvent{To: domain.ScreenPreloading, Reason: domain.ReasonStart})
	hooks.OnTransition(ctx, &domain.TransitionEvent{From: domain.ScreenCollecting, To: domain.ScreenGenerating, Reason: domain.ReasonSubmit})
	hooks.OnTransition(ctx, &domain.TransitionEvent{From: domain.ScreenCollecting, To: domain.ScreenGenerating, Reason: domain.ReasonSubmit})
	hooks.OnStepAdvance(ctx, &domain.StepEvent{})
	hooks.OnGenerateEnd(ctx, &domain.GenerateEvent{Duration: time.Second})
	hooks.OnGenerateEnd(ctx, &domain.GenerateEvent{Duration: 30 * time.Second, Err: domain.ErrGenerationTimeout})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("none", "preloading", "start")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("collecting", "generating", "submit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("timeout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_Sessions(t *testing.T) {
	m := NewMetrics(nil)
	m.SessionOpened("a")
	m.SessionOpened("b")
	m.SessionClosed("a")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.created))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.active))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(nil)
	m.SessionOpened("a")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "tripwizard_sessions_active 1")
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", Outcome(nil))
	assert.Equal(t, "timeout", Outcome(domain.ErrGenerationTimeout))
	assert.Equal(t, "canceled", Outcome(domain.ErrGenerationCanceled))
	assert.Equal(t, "closed", Outcome(domain.ErrClosed))
	assert.Equal(t, "failure", Outcome(errors.New("boom")))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := LoggingHooks(logging.NewWithWriter(&buf, slog.LevelDebug))
	ctx := context.Background()

	hooks.OnTransition(ctx, &domain.TransitionEvent{EventBase: domain.EventBase{SessionID: "s1"}, From: domain.ScreenReviewing, To: domain.ScreenCollecting, Reason: domain.ReasonEdit})
	hooks.OnGenerateEnd(ctx, &domain.GenerateEvent{EventBase: domain.EventBase{SessionID: "s1"}, Destination: "Paris", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "session_id=s1")
	assert.Contains(t, out, "reason=edit")
	assert.Contains(t, out, "err=boom")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}
