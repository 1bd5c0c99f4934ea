package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/phrazzld/learncards/internal/platform/logger"
	"github.com/phrazzld/learncards/internal/store"
)

// SessionEnsurer resolves a session ID, opening a new session when the given
// one is unknown.
type SessionEnsurer interface {
	EnsureSession(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

// SessionMiddleware binds every request to a visitor session.
type SessionMiddleware struct {
	sessions SessionEnsurer
	cookie   shared.SessionCookie
	logger   *slog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware with the given dependencies.
func NewSessionMiddleware(sessions SessionEnsurer, cookie shared.SessionCookie, log *slog.Logger) *SessionMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return &SessionMiddleware{
		sessions: sessions,
		cookie:   cookie,
		logger:   log.With(slog.String("component", "session_middleware")),
	}
}

// Attach reads the session cookie and adds the session ID to the request
// context. A missing, malformed or expired cookie starts a new session and
// sets a fresh cookie.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		id, created, err := m.sessions.EnsureSession(r.Context(), m.cookie.Read(r))
		if err != nil {
			if errors.Is(err, store.ErrSessionLimit) {
				w.Header().Set("Retry-After", "60")
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
					"Too many active sessions, try again later", err,
					shared.WithElevatedLogLevel())
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to start session", err)
			return
		}

		if created {
			log.Debug("issued new session cookie", slog.String("session_id", id.String()))
		}
		// Refresh the cookie on every request so MaxAge tracks activity.
		m.cookie.Set(w, id)

		ctx := shared.WithSessionID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the session ID from the request context.
// Returns the session ID and a boolean indicating if it was found.
func GetSessionID(r *http.Request) (uuid.UUID, bool) {
	return shared.GetSessionID(r.Context())
}
