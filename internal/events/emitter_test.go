package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	logger := testutils.DiscardLogger()

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewDeckEvent(TypeSessionStarted, uuid.New(), nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewDeckEvent(TypeCardFlipped, uuid.New(), FlippedPayload{CardID: 2, IsFlipped: true})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)

		firstFailing := &MockEventHandler{HandlerError: errors.New("first error")}
		successHandler := &MockEventHandler{}
		secondFailing := &MockEventHandler{HandlerError: errors.New("second error")}
		emitter.RegisterHandler(firstFailing)
		emitter.RegisterHandler(successHandler)
		emitter.RegisterHandler(secondFailing)

		event, err := NewDeckEvent(TypeDeckReset, uuid.New(), nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "first error", "the first handler error should be returned")

		// Every handler still receives the event
		assert.Equal(t, 1, firstFailing.HandledCount)
		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, secondFailing.HandledCount)
	})
}
