package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/domain"
)

// DeckFunc operates on the deck of a single session. The store holds the
// session's lock for the duration of the call.
type DeckFunc func(deck *domain.Deck) error

// SessionStore defines the interface for session-scoped deck storage.
type SessionStore interface {
	// Create opens a new session holding a fresh, unprocessed deck.
	// Returns ErrSessionLimit if the store is full.
	Create(ctx context.Context) (uuid.UUID, error)

	// View runs fn with read access to the session's deck.
	// Returns ErrSessionNotFound if the session does not exist.
	View(ctx context.Context, id uuid.UUID, fn DeckFunc) error

	// Update runs fn with exclusive access to the session's deck and marks
	// the session as recently used.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, id uuid.UUID, fn DeckFunc) error

	// Delete removes the session.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteIdle removes every session last used before cutoff and returns
	// their ids.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)

	// Count returns the number of open sessions.
	Count(ctx context.Context) int
}
