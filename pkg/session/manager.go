package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/tripwizard/internal/logging"
	"github.com/aretw0/tripwizard/internal/runtime"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Defaults for session expiry.
const (
	DefaultTTL             = 30 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// Factory builds the controller of a new session.
type Factory func(id string) (*runtime.Controller, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	factory  Factory
	sessions *cache.Cache
	ttl      time.Duration
	cleanup  time.Duration
	newID    func() string

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	onCreate func(id string)
	onEvict  func(id string)
	logger   *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithTTL sets how long an idle session is kept. Every access renews it.
func WithTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithCleanupInterval sets how often expired sessions are swept.
func WithCleanupInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.cleanup = d
		}
	}
}

// WithIDGenerator overrides the UUID session identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithOnCreate registers a callback run after a session is started.
func WithOnCreate(fn func(id string)) Option {
	return func(m *Manager) {
		m.onCreate = fn
	}
}

// WithOnEvict registers a callback run after a session was deleted or expired.
func WithOnEvict(fn func(id string)) Option {
	return func(m *Manager) {
		m.onEvict = fn
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager that builds controllers with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		ttl:     DefaultTTL,
		cleanup: DefaultCleanupInterval,
		newID:   uuid.NewString,
		locks:   make(map[string]*lockEntry),
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sessions = cache.New(m.ttl, m.cleanup)
	m.sessions.OnEvicted(m.evicted)
	return m
}

// evicted runs for both explicit deletes and expiry.
func (m *Manager) evicted(id string, v any) {
	if c, ok := v.(*runtime.Controller); ok {
		if err := c.Close(); err != nil {
			m.logger.Warn("Failed to close evicted session", "session_id", id, "err", err)
		}
	}
	m.logger.Debug("Session Evicted", "session_id", id)
	if m.onEvict != nil {
		m.onEvict(id)
	}
}

// Create builds, registers and starts a new session.
func (m *Manager) Create(ctx context.Context) (*runtime.Controller, error) {
	id := m.newID()
	var ctrl *runtime.Controller
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if _, found := m.sessions.Get(id); found {
			return fmt.Errorf("session %q already exists", id)
		}
		c, err := m.factory(id)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		m.sessions.Set(id, c, cache.DefaultExpiration)
		ctrl = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := ctrl.Start(ctx); err != nil {
		m.sessions.Delete(id)
		return nil, err
	}
	m.logger.Info("Session Created", "session_id", id)
	if m.onCreate != nil {
		m.onCreate(id)
	}
	return ctrl, nil
}

// Get returns the controller of a live session and renews its TTL.
func (m *Manager) Get(ctx context.Context, sessionID string) (*runtime.Controller, error) {
	var ctrl *runtime.Controller
	err := m.WithLock(ctx, sessionID, func(context.Context) error {
		v, found := m.sessions.Get(sessionID)
		if !found {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		ctrl = v.(*runtime.Controller)
		m.sessions.Set(sessionID, ctrl, cache.DefaultExpiration)
		return nil
	})
	return ctrl, err
}

// Delete closes and removes the session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(context.Context) error {
		if _, found := m.sessions.Get(sessionID); !found {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		m.sessions.Delete(sessionID)
		return nil
	})
}

// List returns the identifiers of live sessions, sorted.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	items := m.sessions.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Count returns the number of sessions held, including expired ones not yet swept.
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}

// Sweep evicts every expired session now instead of waiting for the janitor.
func (m *Manager) Sweep() {
	m.sessions.DeleteExpired()
}

// Close tears down every session.
func (m *Manager) Close() {
	for id := range m.sessions.Items() {
		_ = m.WithLock(context.Background(), id, func(context.Context) error {
			m.sessions.Delete(id)
			return nil
		})
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
