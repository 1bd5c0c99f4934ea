// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCardID is returned when a card identifier cannot be parsed.
	ErrInvalidCardID = fmt.Errorf("%w: invalid card ID", ErrValidation)

	// ErrDeckProcessed is returned when an operation that is only valid before
	// cards are generated (editing text, submitting) is attempted on a deck
	// that already holds cards.
	ErrDeckProcessed = errors.New("deck already processed")

	// ErrNilChunker is returned when a deck is constructed without a chunker.
	ErrNilChunker = errors.New("chunker cannot be nil")
)
