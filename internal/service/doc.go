// Package service contains the application-specific use cases. It coordinates
// the session store (defined in internal/store), the domain deck and the event
// emitter to fulfill what the HTTP API and the web page ask for.
//
// Key components:
//
// 1. DeckService:
//   - Resolves or opens the visitor's session
//   - Applies one deck operation under that session's lock
//   - Emits a deck event for every state change
//
// 2. UsageStats:
//   - An event handler that counts deck events by type
//
// Error Handling:
//   - Known conditions are returned as sentinel errors
//   - Unexpected errors are wrapped in *DeckServiceError
//   - The API layer maps errors to HTTP status codes
package service
