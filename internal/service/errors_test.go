package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestDeckServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DeckServiceError
		expected string
	}{
		{
			name: "with underlying error",
			err: &DeckServiceError{
				Operation: "submit",
				Message:   "failed to submit deck",
				Err:       errors.New("lock poisoned"),
			},
			expected: "deck service submit failed: failed to submit deck: lock poisoned",
		},
		{
			name: "without underlying error",
			err: &DeckServiceError{
				Operation: "create_service",
				Message:   "sessions cannot be nil",
			},
			expected: "deck service create_service failed: sessions cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNewDeckServiceError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, NewDeckServiceError("flip", "ignored", nil))
	})

	sentinels := []error{
		ErrTextTooLarge,
		store.ErrSessionNotFound,
		store.ErrSessionLimit,
		domain.ErrDeckProcessed,
		domain.ErrInvalidCardID,
	}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", sentinel)
			got := NewDeckServiceError("op", "message", wrapped)
			assert.Same(t, sentinel, got, "known sentinels should be returned directly")
		})
	}

	t.Run("unknown error is wrapped", func(t *testing.T) {
		cause := errors.New("unexpected")
		got := NewDeckServiceError("reset", "failed to reset deck", cause)

		var serviceErr *DeckServiceError
		assert.True(t, errors.As(got, &serviceErr))
		assert.Equal(t, "reset", serviceErr.Operation)
		assert.ErrorIs(t, got, cause)
	})
}
