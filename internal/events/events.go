package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Deck event types.
const (
	TypeSessionStarted = "session.started"
	TypeSessionEnded   = "session.ended"
	TypeSessionExpired = "session.expired"
	TypeDeckSubmitted  = "deck.submitted"
	TypeCardFlipped    = "card.flipped"
	TypeDeckReset      = "deck.reset"
)

// DeckEvent records a state change of one session's deck.
type DeckEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// SessionID identifies the session the event belongs to
	SessionID uuid.UUID `json:"session_id"`

	// Payload contains event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// SubmittedPayload is carried by deck.submitted events.
type SubmittedPayload struct {
	CardCount int `json:"card_count"`
	WordCount int `json:"word_count"`
}

// FlippedPayload is carried by card.flipped events.
type FlippedPayload struct {
	CardID    int  `json:"card_id"`
	IsFlipped bool `json:"is_flipped"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *DeckEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewDeckEvent creates a new DeckEvent. A nil payload leaves Payload empty.
func NewDeckEvent(eventType string, sessionID uuid.UUID, payload interface{}) (*DeckEvent, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = b
	}

	return &DeckEvent{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *DeckEvent) error
}

// EventHandlerFunc adapts a function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *DeckEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *DeckEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *DeckEvent) error
}
