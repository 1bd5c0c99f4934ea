// Package store defines the contract for keeping per-visitor decks between
// requests. Implementations decide where the decks live; callers only see
// session ids and serialized access to the deck behind each one.
package store
