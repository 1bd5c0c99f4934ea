package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrTextTooLarge indicates the submitted source text exceeds the configured limit.
	// API layer should map this to HTTP 413 Request Entity Too Large.
	ErrTextTooLarge = errors.New("source text too large")
)

// knownErrors are returned unwrapped by NewDeckServiceError.
var knownErrors = []error{
	ErrTextTooLarge,
	store.ErrSessionNotFound,
	store.ErrSessionLimit,
	domain.ErrDeckProcessed,
	domain.ErrInvalidCardID,
}

// DeckServiceError wraps errors from the deck service with context.
type DeckServiceError struct {
	// Operation is the operation that failed (e.g., "submit", "flip")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError.
// It returns known sentinel errors directly without wrapping.
func NewDeckServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known
		}
	}

	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
