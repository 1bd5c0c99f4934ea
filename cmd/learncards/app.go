package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/learncards/internal/api/middleware"
	"github.com/phrazzld/learncards/internal/config"
	"github.com/phrazzld/learncards/internal/domain/chunking"
	"github.com/phrazzld/learncards/internal/events"
	"github.com/phrazzld/learncards/internal/platform/memory"
	"github.com/phrazzld/learncards/internal/service"
	"github.com/phrazzld/learncards/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores
	sessions *memory.SessionStore

	// Service interfaces
	deckService service.DeckService
	stats       *service.UsageStats

	// Event system
	eventEmitter *events.InMemoryEventEmitter

	// Request throttling
	rateLimiter *middleware.RateLimiter

	// Maintenance jobs
	scheduler *task.Scheduler
}

// newApplication creates a new application instance with all dependencies initialized.
// Nothing is started: Run starts the scheduler and the HTTP server.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize stores
	app.sessions = memory.NewSessionStore(
		chunking.NewDefaultChunker(),
		cfg.Session.MaxSessions,
		logger,
	)

	// Initialize event emitter and the usage counters listening to it
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.stats = service.NewUsageStats(app.sessions, logger)
	app.eventEmitter.RegisterHandler(app.stats)

	// Initialize deck service
	var err error
	app.deckService, err = service.NewDeckService(
		app.sessions,
		app.eventEmitter,
		cfg.Limits.MaxTextBytes,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	app.rateLimiter = middleware.NewRateLimiter(
		cfg.Limits.RequestsPerSecond,
		cfg.Limits.Burst,
		logger,
	)

	app.scheduler, err = setupScheduler(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup scheduler: %w", err)
	}

	logger.Info("Application initialized successfully",
		"max_sessions", cfg.Session.MaxSessions,
		"idle_timeout", cfg.Session.IdleTimeout.String())
	return app, nil
}

// setupScheduler registers the maintenance jobs. It does not start them.
func setupScheduler(app *application) (*task.Scheduler, error) {
	scheduler := task.NewScheduler(app.logger)
	idle := app.config.Session.IdleTimeout
	spec := app.config.Session.SweepSchedule

	if err := scheduler.Register(task.NewSessionReaperJob(app.deckService, idle, spec, app.logger)); err != nil {
		return nil, err
	}
	if err := scheduler.Register(task.NewLimiterPruneJob(app.rateLimiter, idle, spec, app.logger)); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.scheduler != nil {
		if err := app.scheduler.Stop(ctx); err != nil {
			app.logger.Error("Error stopping scheduler", "error", err)
		}
	}

	app.logger.Info("Application resources released",
		"sessions_dropped", app.sessions.Count(context.Background()))
}

// shutdownTimeout bounds how long in-flight work may take after a stop signal.
func (app *application) shutdownTimeout() time.Duration {
	if t := app.config.Server.ShutdownTimeout; t > 0 {
		return t
	}
	return 10 * time.Second
}
