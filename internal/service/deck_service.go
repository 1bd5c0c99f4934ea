package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/events"
	"github.com/phrazzld/learncards/internal/platform/logger"
	"github.com/phrazzld/learncards/internal/store"
)

// SubmitResult is the outcome of a submit request.
type SubmitResult struct {
	// Applied is false when the submission was suppressed because the text
	// was blank or produced no cards.
	Applied bool
	State   domain.DeckState
}

// DeckService provides the deck operations of one visitor session.
type DeckService interface {
	// EnsureSession returns id if it names a live session. Otherwise it opens
	// a new session and reports created=true.
	EnsureSession(ctx context.Context, id uuid.UUID) (sessionID uuid.UUID, created bool, err error)

	// EndSession discards the session and its deck.
	EndSession(ctx context.Context, id uuid.UUID) error

	// GetDeck returns a snapshot of the session's deck.
	GetDeck(ctx context.Context, id uuid.UUID) (*domain.DeckState, error)

	// EditText replaces the source text while the deck is unprocessed.
	EditText(ctx context.Context, id uuid.UUID, text string) (*domain.DeckState, error)

	// Submit turns the source text into cards. A nil text submits the stored
	// source text.
	Submit(ctx context.Context, id uuid.UUID, text *string) (*SubmitResult, error)

	// Flip toggles one card. Unknown card ids leave the deck unchanged.
	Flip(ctx context.Context, id uuid.UUID, cardID domain.CardID) (*domain.DeckState, error)

	// Reset discards the cards and source text and returns to unprocessed.
	Reset(ctx context.Context, id uuid.UUID) (*domain.DeckState, error)

	// ExpireIdleSessions removes sessions unused for longer than maxIdle and
	// returns how many were removed.
	ExpireIdleSessions(ctx context.Context, maxIdle time.Duration) (int, error)
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	sessions     store.SessionStore
	eventEmitter events.EventEmitter
	maxTextBytes int
	logger       *slog.Logger
}

// NewDeckService creates a new DeckService.
// A maxTextBytes of zero or less disables the text size check.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	sessions store.SessionStore,
	eventEmitter events.EventEmitter,
	maxTextBytes int,
	logger *slog.Logger,
) (DeckService, error) {
	if sessions == nil {
		return nil, &DeckServiceError{
			Operation: "create_service",
			Message:   "sessions cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &DeckServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		sessions:     sessions,
		eventEmitter: eventEmitter,
		maxTextBytes: maxTextBytes,
		logger:       logger.With("component", "deck_service"),
	}, nil
}

// EnsureSession implements DeckService.EnsureSession
func (s *deckServiceImpl) EnsureSession(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id != uuid.Nil {
		err := s.sessions.View(ctx, id, func(*domain.Deck) error { return nil })
		if err == nil {
			return id, false, nil
		}
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Error("failed to look up session",
				"error", err,
				"session_id", id)
			return uuid.Nil, false, NewDeckServiceError("ensure_session", "failed to look up session", err)
		}
		log.Debug("session unknown or expired, starting a new one", "session_id", id)
	}

	newID, err := s.sessions.Create(ctx)
	if err != nil {
		log.Error("failed to create session", "error", err)
		return uuid.Nil, false, NewDeckServiceError("ensure_session", "failed to create session", err)
	}

	s.emit(ctx, events.TypeSessionStarted, newID, nil)
	return newID, true, nil
}

// EndSession implements DeckService.EndSession
func (s *deckServiceImpl) EndSession(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return NewDeckServiceError("end_session", "failed to delete session", err)
	}

	s.emit(ctx, events.TypeSessionEnded, id, nil)
	return nil
}

// GetDeck implements DeckService.GetDeck
func (s *deckServiceImpl) GetDeck(ctx context.Context, id uuid.UUID) (*domain.DeckState, error) {
	var state domain.DeckState
	err := s.sessions.View(ctx, id, func(deck *domain.Deck) error {
		state = deck.State()
		return nil
	})
	if err != nil {
		return nil, NewDeckServiceError("get_deck", "failed to read deck", err)
	}
	return &state, nil
}

// EditText implements DeckService.EditText
func (s *deckServiceImpl) EditText(ctx context.Context, id uuid.UUID, text string) (*domain.DeckState, error) {
	if err := s.checkSize(ctx, id, text); err != nil {
		return nil, err
	}

	var state domain.DeckState
	err := s.sessions.Update(ctx, id, func(deck *domain.Deck) error {
		if err := deck.SetSourceText(text); err != nil {
			return err
		}
		state = deck.State()
		return nil
	})
	if err != nil {
		return nil, NewDeckServiceError("edit_text", "failed to update source text", err)
	}
	return &state, nil
}

// Submit implements DeckService.Submit
func (s *deckServiceImpl) Submit(ctx context.Context, id uuid.UUID, text *string) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if text != nil {
		if err := s.checkSize(ctx, id, *text); err != nil {
			return nil, err
		}
	}

	var (
		applied bool
		state   domain.DeckState
	)
	err := s.sessions.Update(ctx, id, func(deck *domain.Deck) error {
		source := deck.SourceText()
		if text != nil {
			source = *text
		}

		var err error
		applied, err = deck.Submit(source)
		if err != nil {
			return err
		}
		state = deck.State()
		return nil
	})
	if err != nil {
		return nil, NewDeckServiceError("submit", "failed to submit deck", err)
	}

	if !applied {
		log.Debug("submission suppressed", "session_id", id)
		return &SubmitResult{Applied: false, State: state}, nil
	}

	log.Info("deck submitted",
		"session_id", id,
		"card_count", len(state.Cards),
		"text_bytes", len(state.SourceText))

	s.emit(ctx, events.TypeDeckSubmitted, id, events.SubmittedPayload{
		CardCount: len(state.Cards),
		WordCount: len(strings.Fields(state.SourceText)),
	})

	return &SubmitResult{Applied: true, State: state}, nil
}

// Flip implements DeckService.Flip
func (s *deckServiceImpl) Flip(ctx context.Context, id uuid.UUID, cardID domain.CardID) (*domain.DeckState, error) {
	if cardID < 0 {
		return nil, domain.ErrInvalidCardID
	}

	var (
		flipped bool
		state   domain.DeckState
	)
	err := s.sessions.Update(ctx, id, func(deck *domain.Deck) error {
		flipped = deck.Flip(cardID)
		state = deck.State()
		return nil
	})
	if err != nil {
		return nil, NewDeckServiceError("flip", "failed to flip card", err)
	}

	if flipped {
		card, _ := state.Card(cardID)
		s.emit(ctx, events.TypeCardFlipped, id, events.FlippedPayload{
			CardID:    int(cardID),
			IsFlipped: card.IsFlipped,
		})
	}

	return &state, nil
}

// Reset implements DeckService.Reset
func (s *deckServiceImpl) Reset(ctx context.Context, id uuid.UUID) (*domain.DeckState, error) {
	var state domain.DeckState
	err := s.sessions.Update(ctx, id, func(deck *domain.Deck) error {
		deck.Reset()
		state = deck.State()
		return nil
	})
	if err != nil {
		return nil, NewDeckServiceError("reset", "failed to reset deck", err)
	}

	s.emit(ctx, events.TypeDeckReset, id, nil)
	return &state, nil
}

// ExpireIdleSessions implements DeckService.ExpireIdleSessions
func (s *deckServiceImpl) ExpireIdleSessions(ctx context.Context, maxIdle time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxIdle)

	removed, err := s.sessions.DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, NewDeckServiceError("expire_sessions", "failed to delete idle sessions", err)
	}

	for _, id := range removed {
		s.emit(ctx, events.TypeSessionExpired, id, nil)
	}
	return len(removed), nil
}

// checkSize rejects text longer than the configured limit.
func (s *deckServiceImpl) checkSize(ctx context.Context, id uuid.UUID, text string) error {
	if s.maxTextBytes > 0 && len(text) > s.maxTextBytes {
		logger.FromContextOrDefault(ctx, s.logger).Warn("source text rejected",
			"session_id", id,
			"text_bytes", len(text),
			"max_text_bytes", s.maxTextBytes)
		return ErrTextTooLarge
	}
	return nil
}

// emit publishes a deck event. Failures are logged and never reach the caller.
func (s *deckServiceImpl) emit(ctx context.Context, eventType string, sessionID uuid.UUID, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewDeckEvent(eventType, sessionID, payload)
	if err != nil {
		log.Error("failed to create deck event",
			"error", err,
			"event_type", eventType,
			"session_id", sessionID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit deck event",
			"error", err,
			"event_type", eventType,
			"event_id", event.ID,
			"session_id", sessionID)
	}
}
