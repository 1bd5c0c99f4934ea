package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrJobNotFound is returned when a job name is not registered.
var ErrJobNotFound = errors.New("job not found")

// Job is a unit of periodic background work.
type Job interface {
	// Name identifies the job in logs and status reports.
	Name() string

	// Spec is the cron schedule, with an optional seconds field or a
	// descriptor such as "@every 1m".
	Spec() string

	// Run performs one execution of the job.
	Run(ctx context.Context) error
}

// JobStatus reports the most recent execution of a job.
type JobStatus struct {
	Name      string        `json:"name"`
	Spec      string        `json:"spec"`
	Runs      int           `json:"runs"`
	LastRun   time.Time     `json:"last_run"`
	LastError string        `json:"last_error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Scheduler executes registered jobs on their cron schedules.
// A failing job is logged and runs again on its next tick.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]Job
	status  map[string]JobStatus
	mu      sync.RWMutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *slog.Logger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		jobs:   make(map[string]Job),
		status: make(map[string]JobStatus),
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With("component", "scheduler"),
	}
}

// Register validates the job's schedule and adds it to the scheduler.
// Jobs may be registered before or after Start.
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	_, err := s.cron.AddFunc(job.Spec(), func() {
		s.execute(s.ctx, job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = job
	s.status[name] = JobStatus{Name: name, Spec: job.Spec()}

	s.logger.Info("registered job",
		"job", name,
		"spec", job.Spec())
	return nil
}

// Start begins running jobs on their schedules.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("scheduler started", "job_count", len(s.jobs))
	return nil
}

// Stop halts scheduling and waits for running jobs to finish or for ctx to
// expire, whichever comes first. Running jobs see their context cancelled
// when ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.cancel()
		s.logger.Info("scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.cancel()
		s.logger.Warn("scheduler stop timed out")
		return ctx.Err()
	}
}

// RunNow executes the named job immediately on the caller's goroutine.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	return s.execute(ctx, job)
}

// Status returns the status of every registered job.
func (s *Scheduler) Status() map[string]JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := make(map[string]JobStatus, len(s.status))
	for name, st := range s.status {
		status[name] = st
	}
	return status
}

// IsRunning returns true if the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// execute runs one job, recording its outcome and converting panics to errors.
func (s *Scheduler) execute(ctx context.Context, job Job) (err error) {
	name := job.Name()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", name, r)
		}

		duration := time.Since(start)
		s.mu.Lock()
		st := s.status[name]
		st.Runs++
		st.LastRun = start
		st.Duration = duration
		st.LastError = ""
		if err != nil {
			st.LastError = err.Error()
		}
		s.status[name] = st
		s.mu.Unlock()

		if err != nil {
			s.logger.Error("job failed",
				"job", name,
				"error", err,
				"duration", duration)
			return
		}
		s.logger.Debug("job completed",
			"job", name,
			"duration", duration)
	}()

	return job.Run(ctx)
}
