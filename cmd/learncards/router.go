package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/learncards/internal/api"
	apiMiddleware "github.com/phrazzld/learncards/internal/api/middleware"
	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/phrazzld/learncards/internal/web"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	cookie := shared.SessionCookie{
		Name:   app.config.Session.CookieName,
		Secure: app.config.Session.CookieSecure,
		MaxAge: app.config.Session.IdleTimeout,
	}
	sessionMiddleware := apiMiddleware.NewSessionMiddleware(app.deckService, cookie, app.logger)

	deckHandler := api.NewDeckHandler(app.deckService, app.stats, cookie, app.logger)
	pageHandler, err := web.NewPageHandler(app.deckService, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create page handler: %w", err)
	}

	// State-changing routes are throttled per client and bounded in size.
	bodyLimit := middleware.RequestSize(int64(app.config.Limits.MaxBodyBytes))
	writeMiddlewares := []func(http.Handler) http.Handler{app.rateLimiter.Limit, bodyLimit}

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", deckHandler.GetStats)
		r.With(app.rateLimiter.Limit).Delete("/session", deckHandler.EndSession)

		r.With(sessionMiddleware.Attach).Get("/deck", deckHandler.GetDeck)

		r.Group(func(r chi.Router) {
			r.Use(writeMiddlewares...)
			r.Use(sessionMiddleware.Attach)

			r.Put("/deck/text", deckHandler.UpdateText)
			r.Post("/deck/submit", deckHandler.Submit)
			r.Post("/deck/cards/{id}/flip", deckHandler.FlipCard)
			r.Post("/deck/reset", deckHandler.ResetDeck)
		})
	})

	// Server-rendered page
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.Attach)
		pageHandler.Routes(r, writeMiddlewares...)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}
