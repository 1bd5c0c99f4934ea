package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/learncards/internal/events"
)

// SessionCounter reports the number of live sessions.
type SessionCounter interface {
	Count(ctx context.Context) int
}

// StatsSnapshot is a point-in-time copy of the usage counters.
type StatsSnapshot struct {
	ActiveSessions int              `json:"active_sessions"`
	CardsGenerated int64            `json:"cards_generated"`
	Events         map[string]int64 `json:"events"`
	Since          time.Time        `json:"since"`
}

// UsageStats counts deck events by type. It implements events.EventHandler.
type UsageStats struct {
	mu             sync.Mutex
	counts         map[string]int64
	cardsGenerated int64
	since          time.Time
	sessions       SessionCounter
	logger         *slog.Logger
}

var _ events.EventHandler = (*UsageStats)(nil)

// NewUsageStats creates an empty set of counters. sessions may be nil, in
// which case ActiveSessions is always zero.
func NewUsageStats(sessions SessionCounter, logger *slog.Logger) *UsageStats {
	if logger == nil {
		logger = slog.Default()
	}
	return &UsageStats{
		counts:   make(map[string]int64),
		since:    time.Now().UTC(),
		sessions: sessions,
		logger:   logger.With("component", "usage_stats"),
	}
}

// HandleEvent implements events.EventHandler
func (u *UsageStats) HandleEvent(ctx context.Context, event *events.DeckEvent) error {
	var cards int
	if event.Type == events.TypeDeckSubmitted {
		var payload events.SubmittedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			u.logger.Warn("malformed submitted payload",
				"error", err,
				"event_id", event.ID)
		} else {
			cards = payload.CardCount
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.counts[event.Type]++
	u.cardsGenerated += int64(cards)
	return nil
}

// Snapshot returns a copy of the counters and the live session count.
func (u *UsageStats) Snapshot(ctx context.Context) StatsSnapshot {
	u.mu.Lock()
	counts := make(map[string]int64, len(u.counts))
	for k, v := range u.counts {
		counts[k] = v
	}
	snap := StatsSnapshot{
		CardsGenerated: u.cardsGenerated,
		Events:         counts,
		Since:          u.since,
	}
	u.mu.Unlock()

	if u.sessions != nil {
		snap.ActiveSessions = u.sessions.Count(ctx)
	}
	return snap
}
