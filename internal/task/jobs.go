package task

import (
	"context"
	"log/slog"
	"time"
)

// Job names.
const (
	JobNameSessionReaper = "session_reaper"
	JobNameLimiterPrune  = "limiter_prune"
)

// SessionExpirer removes sessions that have been idle for too long.
type SessionExpirer interface {
	ExpireIdleSessions(ctx context.Context, maxIdle time.Duration) (int, error)
}

// SessionReaperJob expires idle sessions.
type SessionReaperJob struct {
	expirer SessionExpirer
	maxIdle time.Duration
	spec    string
	logger  *slog.Logger
}

// NewSessionReaperJob creates a job that expires sessions idle longer than maxIdle.
func NewSessionReaperJob(expirer SessionExpirer, maxIdle time.Duration, spec string, logger *slog.Logger) *SessionReaperJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionReaperJob{
		expirer: expirer,
		maxIdle: maxIdle,
		spec:    spec,
		logger:  logger.With("job", JobNameSessionReaper),
	}
}

// Name implements Job.
func (j *SessionReaperJob) Name() string { return JobNameSessionReaper }

// Spec implements Job.
func (j *SessionReaperJob) Spec() string { return j.spec }

// Run implements Job.
func (j *SessionReaperJob) Run(ctx context.Context) error {
	n, err := j.expirer.ExpireIdleSessions(ctx, j.maxIdle)
	if err != nil {
		return err
	}
	if n > 0 {
		j.logger.Info("expired idle sessions", "count", n)
	}
	return nil
}

// Pruner drops state that has not been touched for longer than maxIdle and
// returns how many entries were dropped.
type Pruner interface {
	Prune(maxIdle time.Duration) int
}

// LimiterPruneJob drops rate limiter entries of clients that went quiet.
type LimiterPruneJob struct {
	pruner  Pruner
	maxIdle time.Duration
	spec    string
	logger  *slog.Logger
}

// NewLimiterPruneJob creates a job that prunes limiter entries idle longer than maxIdle.
func NewLimiterPruneJob(pruner Pruner, maxIdle time.Duration, spec string, logger *slog.Logger) *LimiterPruneJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &LimiterPruneJob{
		pruner:  pruner,
		maxIdle: maxIdle,
		spec:    spec,
		logger:  logger.With("job", JobNameLimiterPrune),
	}
}

// Name implements Job.
func (j *LimiterPruneJob) Name() string { return JobNameLimiterPrune }

// Spec implements Job.
func (j *LimiterPruneJob) Spec() string { return j.spec }

// Run implements Job.
func (j *LimiterPruneJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n := j.pruner.Prune(j.maxIdle); n > 0 {
		j.logger.Debug("pruned rate limiter entries", "count", n)
	}
	return nil
}
