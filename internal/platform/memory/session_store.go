package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/platform/logger"
	"github.com/phrazzld/learncards/internal/store"
)

type sessionEntry struct {
	mu       sync.Mutex
	deck     *domain.Deck
	lastSeen time.Time
	deleted  bool
}

// SessionStore implements the store.SessionStore interface with a map guarded
// by a mutex. Each session has its own lock so operations on different
// sessions do not block one another.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*sessionEntry
	chunker     domain.Chunker
	maxSessions int
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a SessionStore.
type Option func(*SessionStore)

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) {
		s.now = now
	}
}

// NewSessionStore creates an in-memory session store whose decks generate
// cards with chunker. A maxSessions of zero or less means no limit.
// If logger is nil, a default logger will be used.
func NewSessionStore(
	chunker domain.Chunker,
	maxSessions int,
	logger *slog.Logger,
	opts ...Option,
) *SessionStore {
	if chunker == nil {
		panic("chunker cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &SessionStore{
		sessions:    make(map[uuid.UUID]*sessionEntry),
		chunker:     chunker,
		maxSessions: maxSessions,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "session_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *SessionStore) Create(ctx context.Context) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(s.chunker)
	if err != nil {
		return uuid.Nil, store.NewStoreError("session", "create", "failed to build deck", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		log.Warn("session limit reached",
			slog.Int("max_sessions", s.maxSessions))
		return uuid.Nil, store.ErrSessionLimit
	}

	id := uuid.New()
	s.sessions[id] = &sessionEntry{
		deck:     deck,
		lastSeen: s.now(),
	}

	log.Debug("session created", slog.String("session_id", id.String()))
	return id, nil
}

// View implements store.SessionStore.View
func (s *SessionStore) View(ctx context.Context, id uuid.UUID, fn store.DeckFunc) error {
	return s.withEntry(id, func(e *sessionEntry) error {
		return fn(e.deck)
	})
}

// Update implements store.SessionStore.Update
func (s *SessionStore) Update(ctx context.Context, id uuid.UUID, fn store.DeckFunc) error {
	return s.withEntry(id, func(e *sessionEntry) error {
		return fn(e.deck)
	})
}

// withEntry locks the session and marks it as used before running fn.
func (s *SessionStore) withEntry(id uuid.UUID, fn func(e *sessionEntry) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return store.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The entry may have been swept between the lookup and the lock.
	if e.deleted {
		return store.ErrSessionNotFound
	}
	e.lastSeen = s.now()

	return fn(e)
}

// Delete implements store.SessionStore.Delete
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return store.ErrSessionNotFound
	}

	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).
		Debug("session deleted", slog.String("session_id", id.String()))
	return nil
}

// DeleteIdle implements store.SessionStore.DeleteIdle
// Sessions whose lock is held by an in-flight operation are treated as active.
func (s *SessionStore) DeleteIdle(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []uuid.UUID
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			e.deleted = true
			delete(s.sessions, id)
			removed = append(removed, id)
		}
		e.mu.Unlock()
	}

	if len(removed) > 0 {
		logger.FromContextOrDefault(ctx, s.logger).Info("idle sessions removed",
			slog.Int("count", len(removed)),
			slog.Int("remaining", len(s.sessions)))
	}
	return removed, nil
}

// Count implements store.SessionStore.Count
func (s *SessionStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
