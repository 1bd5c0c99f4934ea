package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/events"
	"github.com/phrazzld/learncards/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockSessionStore mocks the store.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context) (uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSessionStore) View(ctx context.Context, id uuid.UUID, fn store.DeckFunc) error {
	args := m.Called(ctx, id, fn)
	return args.Error(0)
}

func (m *MockSessionStore) Update(ctx context.Context, id uuid.UUID, fn store.DeckFunc) error {
	args := m.Called(ctx, id, fn)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteIdle(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSessionStore) Count(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

// RecordingEmitter captures emitted events and optionally fails.
type RecordingEmitter struct {
	mu     sync.Mutex
	Events []*events.DeckEvent
	Err    error
}

func (e *RecordingEmitter) EmitEvent(ctx context.Context, event *events.DeckEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Events = append(e.Events, event)
	return e.Err
}

// Types returns the emitted event types in order.
func (e *RecordingEmitter) Types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	types := make([]string, 0, len(e.Events))
	for _, ev := range e.Events {
		types = append(types, ev.Type)
	}
	return types
}
