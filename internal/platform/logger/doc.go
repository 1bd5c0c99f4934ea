// Package logger provides structured logging functionality for the application.
//
// It configures Go's log/slog with a JSON or text handler at the configured
// level and offers helpers for carrying a request-scoped logger through a
// context.Context.
package logger
