package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripwizard"

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	registry *prometheus.Registry

	transitions *prometheus.CounterVec
	steps       prometheus.Counter
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	created     prometheus.Counter
	active      prometheus.Gauge
}

// NewMetrics registers the collectors on reg. A nil reg gets a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "screen_transitions_total",
				Help:      "Screen transitions by source, target and trigger.",
			},
			[]string{"from", "to", "reason"},
		),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preloader_steps_total",
			Help:      "Preloader steps revealed.",
		}),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Finished itinerary generations by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating itineraries.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Sessions created.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.transitions, m.steps, m.generations, m.duration, m.created, m.active)
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			from := string(e.From)
			if from == "" {
				from = "none"
			}
			m.transitions.WithLabelValues(from, string(e.To), e.Reason).Inc()
		},
		OnStepAdvance: func(context.Context, *domain.StepEvent) {
			m.steps.Inc()
		},
		OnGenerateEnd: func(_ context.Context, e *domain.GenerateEvent) {
			m.generations.WithLabelValues(Outcome(e.Err)).Inc()
			m.duration.Observe(e.Duration.Seconds())
		},
	}
}

// SessionOpened records a new session.
func (m *Metrics) SessionOpened(string) {
	m.created.Inc()
	m.active.Inc()
}

// SessionClosed records an evicted session.
func (m *Metrics) SessionClosed(string) {
	m.active.Dec()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Outcome classifies a generation result for metric labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrGenerationTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrGenerationCanceled):
		return "canceled"
	case errors.Is(err, domain.ErrClosed):
		return "closed"
	}
	return "failure"
}
