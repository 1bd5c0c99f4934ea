package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// InMemoryEventEmitter delivers deck events synchronously to handlers
// registered in the same process.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter returns an emitter with no handlers.
// A nil logger falls back to slog.Default.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes handler to every event emitted from now on.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("event handler registered", "handler_count", count)
}

// EmitEvent hands event to each registered handler in registration order.
// A failing handler does not stop delivery to the rest; the first failure is
// returned once all handlers have run.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *DeckEvent) error {
	e.mu.RLock()
	handlers := slices.Clone(e.handlers)
	e.mu.RUnlock()

	log := e.logger.With(
		"event_id", event.ID,
		"event_type", event.Type,
		"session_id", event.SessionID)
	log.Debug("dispatching event", "handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		err := handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		log.Error("event handler failed", "error", err, "handler_index", i)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
