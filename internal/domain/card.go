package domain

import (
	"fmt"
	"strconv"
)

// CardID identifies a card within one deck generation.
// It wraps the word offset at which the card's chunk starts, so ids are unique
// within a generation but not contiguous. Treat it as an opaque key: never use
// it as a position in the card sequence.
type CardID int

// String renders the id as a decimal string.
func (id CardID) String() string {
	return strconv.Itoa(int(id))
}

// ParseCardID parses a decimal string into a CardID.
// Returns ErrInvalidCardID (wrapped) if s is not a non-negative integer.
func ParseCardID(s string) (CardID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidCardID, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidCardID, n)
	}
	return CardID(n), nil
}

// Card represents one chunk of the source text plus its display state.
type Card struct {
	// ID is the starting word offset of the chunk in the original split.
	ID CardID `json:"id"`

	// Content holds the chunk's words rejoined with single spaces.
	Content string `json:"content"`

	// IsFlipped is a presentation flag; it never affects Content.
	IsFlipped bool `json:"is_flipped"`

	// Summary is a placeholder label shown on the front of the card.
	// It is not derived from Content.
	Summary string `json:"summary"`
}

// Chunker partitions source text into an ordered sequence of cards.
// Implementations must be pure: the same text always yields the same cards.
type Chunker interface {
	Chunk(text string) []Card
}

// ChunkerFunc adapts an ordinary function to the Chunker interface.
type ChunkerFunc func(text string) []Card

// Chunk calls f(text).
func (f ChunkerFunc) Chunk(text string) []Card {
	return f(text)
}
