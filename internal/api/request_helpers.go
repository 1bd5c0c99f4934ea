package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/phrazzld/learncards/internal/domain"
)

// getSessionIDFromContext extracts the visitor's session ID from the request
// context. The ID is placed there by the session middleware.
func getSessionIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.GetSessionID(r.Context())
}

// getPathCardID extracts and parses a card ID from the URL path parameters.
func getPathCardID(r *http.Request, paramName string) (domain.CardID, error) {
	return domain.ParseCardID(chi.URLParam(r, paramName))
}

// requireSession writes a 500 response when the session middleware did not
// run. Returns false if a response was written.
func requireSession(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	id, ok := getSessionIDFromContext(r)
	if !ok {
		log.Error("session ID missing from request context")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Session unavailable")
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps a service error to a status code and a safe message
// and writes it. Client errors are logged at debug level; server errors at error.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}

	var opts []shared.ResponseOption
	if status == http.StatusRequestEntityTooLarge {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// isBodyTooLarge reports whether err came from an http.MaxBytesReader limit.
func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
