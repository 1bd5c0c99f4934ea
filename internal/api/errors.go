package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/service"
	"github.com/phrazzld/learncards/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	// Not found errors
	case errors.Is(err, store.ErrSessionNotFound):
		return http.StatusNotFound

	// Capacity errors
	case errors.Is(err, store.ErrSessionLimit):
		return http.StatusServiceUnavailable

	// Conflict errors
	case errors.Is(err, domain.ErrDeckProcessed):
		return http.StatusConflict

	// Size errors
	case errors.Is(err, service.ErrTextTooLarge),
		errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidCardID),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, store.ErrSessionLimit):
		return "Too many active sessions, try again later"

	case errors.Is(err, domain.ErrDeckProcessed):
		return "Cards have already been created; start over to change the text"

	case errors.Is(err, service.ErrTextTooLarge):
		return "Source text is too large"

	case errors.As(err, &maxBytesErr):
		return "Request body is too large"

	case errors.Is(err, domain.ErrInvalidCardID):
		return "Invalid card ID"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'UpdateTextRequest.Text' Error:Field validation for 'Text' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := strings.ToLower(fieldParts[1])
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
