package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/tripwizard/internal/logging"
	"github.com/aretw0/tripwizard/internal/presentation/graph"
	"github.com/aretw0/tripwizard/internal/presentation/report"
	"github.com/aretw0/tripwizard/internal/runtime"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds request bodies; a trip request is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Sessions is the session registry the server exposes.
type Sessions interface {
	Create(ctx context.Context) (*runtime.Controller, error)
	Get(ctx context.Context, sessionID string) (*runtime.Controller, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

// Server serves the wizard over HTTP, one controller per session.
type Server struct {
	Sessions Sessions
	Metrics  http.Handler
	Version  string
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithLogger configures the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the session registry.
func NewHandler(sessions Sessions, opts ...Option) http.Handler {
	s := &Server{
		Sessions: sessions,
		Version:  "dev",
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/flow", s.GetFlow)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/submit", s.Submit)
			r.Post("/edit", s.Edit)
			r.Post("/cancel", s.Cancel)
			r.Get("/events", s.SubscribeEvents)
			r.Get("/graph", s.GetGraph)
			r.Get("/itinerary.md", s.DownloadItinerary)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, "CreateSession", err)
		return
	}
	w.Header().Set("Location", "/sessions/"+ctrl.ID())
	s.writeJSON(w, http.StatusCreated, ctrl.Snapshot())
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, "ListSessions", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Submit handles POST /sessions/{id}/submit. The body is a TripRequest.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}

	var req domain.TripRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid request body: %v", err)})
		s.Logger.Warn("Submit: Invalid request body", "session_id", ctrl.ID(), "err", err)
		return
	}

	if err := ctrl.Submit(r.Context(), req); err != nil {
		s.writeError(w, "Submit", err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, ctrl.Snapshot())
}

// Edit handles POST /sessions/{id}/edit.
func (s *Server) Edit(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "Edit", (*runtime.Controller).Edit)
}

// Cancel handles POST /sessions/{id}/cancel.
func (s *Server) Cancel(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "Cancel", (*runtime.Controller).Cancel)
}

func (s *Server) act(w http.ResponseWriter, r *http.Request, op string, fn func(*runtime.Controller, context.Context) error) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	if err := fn(ctrl, r.Context()); err != nil {
		s.writeError(w, op, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// DownloadItinerary handles GET /sessions/{id}/itinerary.md.
func (s *Server) DownloadItinerary(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	snap := ctrl.Snapshot()
	if snap.Itinerary == nil {
		s.writeError(w, "DownloadItinerary", fmt.Errorf("%w: no itinerary while %s", domain.ErrInvalidTransition, snap.Screen))
		return
	}
	filename := strings.ToLower(strings.ReplaceAll(snap.Itinerary.Destination, " ", "-")) + "-itinerary.md"
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(report.Markdown(*snap.Itinerary)))
}

// GetGraph handles GET /sessions/{id}/graph and returns the flow with the session overlay.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(domain.Flow, graph.OverlayFor(ctrl.Snapshot()))))
}

// GetFlow handles GET /flow.
func (s *Server) GetFlow(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"screens":     domain.Screens,
		"transitions": domain.Flow,
		"mermaid":     graph.GenerateMermaid(domain.Flow, nil),
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "tripwizard-http",
		"version": strings.TrimSpace(s.Version),
	})
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// Each message is a domain.SnapshotDiff; the first one carries the full state.
// The optional "watch" query parameter (screen, animator, itinerary, error)
// filters which diffs are sent.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var watch []string
	if v := r.URL.Query().Get("watch"); v != "" {
		watch = strings.Split(v, ",")
	}

	s.Logger.Info("SSE: Subscribing to Session Updates", "session_id", ctrl.ID())
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	var prev *domain.Snapshot
	for {
		// Take the channel before the snapshot so no change slips between them.
		changed := ctrl.Changed()
		snap := ctrl.Snapshot()

		// The first diff carries the full state and is sent regardless of the filter.
		if diff := domain.Diff(prev, &snap); diff != nil && (prev == nil || wants(diff, watch)) {
			payload, err := json.Marshal(diff)
			if err != nil {
				s.Logger.Error("SSE: Diff encode failed", "err", err)
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
		prev = &snap

		if ctrl.Closed() {
			fmt.Fprintf(w, "event: closed\ndata: %s\n\n", ctrl.ID())
			flusher.Flush()
			return
		}

		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected", "session_id", ctrl.ID())
			return
		case <-changed:
		}
	}
}

func wants(diff *domain.SnapshotDiff, watch []string) bool {
	if len(watch) == 0 {
		return true
	}
	for _, field := range watch {
		switch strings.TrimSpace(field) {
		case "screen":
			if diff.Screen != nil {
				return true
			}
		case "animator":
			if diff.Animator != nil {
				return true
			}
		case "itinerary":
			if diff.Itinerary != nil || diff.ItineraryCleared {
				return true
			}
		case "error":
			if diff.Error != nil {
				return true
			}
		}
	}
	return false
}

// -- Helpers --

type errorBody struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*runtime.Controller, bool) {
	ctrl, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "Lookup", err)
		return nil, false
	}
	return ctrl, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrClosed):
		return http.StatusGone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Debug(op+" rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}
