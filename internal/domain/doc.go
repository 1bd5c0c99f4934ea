// Package domain contains the core entities of the application: cards and the
// deck that owns them. A deck is created empty, receives source text, and is
// turned into an ordered sequence of cards by a Chunker. It is independent of
// any delivery mechanism (HTTP, HTML, terminal).
package domain
