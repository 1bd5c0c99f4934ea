package domain

import (
	"strings"
)

// Mode is the two-valued phase of a deck.
type Mode string

// Possible deck modes
const (
	ModeUnprocessed Mode = "unprocessed"
	ModeProcessed   Mode = "processed"
)

// DeckState is an immutable snapshot of a deck, safe to hand to a renderer.
type DeckState struct {
	Mode       Mode   `json:"mode"`
	SourceText string `json:"source_text"`
	Cards      []Card `json:"cards"`
	// CanSubmit reports whether the "create cards" affordance should be enabled.
	CanSubmit bool `json:"can_submit"`
}

// Card returns the card with the given id from the snapshot.
func (s DeckState) Card(id CardID) (Card, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// Deck is the card store for one session: the current source text, the mode
// and the ordered cards of the current generation.
//
// A Deck is not safe for concurrent use. Every method runs to completion and
// callers sharing a deck across goroutines must serialize access.
type Deck struct {
	chunker    Chunker
	sourceText string
	mode       Mode
	cards      []Card
}

// NewDeck creates an empty, unprocessed deck that generates cards with chunker.
// Returns ErrNilChunker if chunker is nil.
func NewDeck(chunker Chunker) (*Deck, error) {
	if chunker == nil {
		return nil, ErrNilChunker
	}

	return &Deck{
		chunker: chunker,
		mode:    ModeUnprocessed,
	}, nil
}

// Mode returns the current mode.
func (d *Deck) Mode() Mode {
	return d.mode
}

// SourceText returns the text currently held in the editable field.
func (d *Deck) SourceText() string {
	return d.sourceText
}

// Len returns the number of cards in the current generation.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the cards in insertion order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Card returns the card with the given id.
func (d *Deck) Card(id CardID) (Card, bool) {
	for _, c := range d.cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// CanSubmit reports whether Submit with the current source text would apply.
func (d *Deck) CanSubmit() bool {
	return d.mode == ModeUnprocessed && strings.TrimSpace(d.sourceText) != ""
}

// State returns a snapshot of the deck.
func (d *Deck) State() DeckState {
	return DeckState{
		Mode:       d.mode,
		SourceText: d.sourceText,
		Cards:      d.Cards(),
		CanSubmit:  d.CanSubmit(),
	}
}

// SetSourceText replaces the editable text.
// The field is only editable before cards are generated; in processed mode it
// returns ErrDeckProcessed and leaves the deck unchanged.
func (d *Deck) SetSourceText(text string) error {
	if d.mode == ModeProcessed {
		return ErrDeckProcessed
	}
	d.sourceText = text
	return nil
}

// Submit generates a new card sequence from text and moves the deck to
// processed mode.
//
// Whitespace-only text is ignored: Submit returns false and nothing changes.
// Submitting to a processed deck returns ErrDeckProcessed; the only way back to
// unprocessed is Reset.
func (d *Deck) Submit(text string) (bool, error) {
	if d.mode == ModeProcessed {
		return false, ErrDeckProcessed
	}
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	cards := d.chunker.Chunk(text)
	if len(cards) == 0 {
		// A chunker that returns nothing would break the non-empty invariant
		// of processed mode.
		return false, nil
	}

	d.sourceText = text
	d.cards = cards
	d.mode = ModeProcessed
	return true, nil
}

// Flip toggles IsFlipped on the card with the given id.
// The sequence is rebuilt with only that card's flag inverted. Unknown ids are
// ignored and Flip returns false.
func (d *Deck) Flip(id CardID) bool {
	found := false
	next := make([]Card, len(d.cards))
	for i, c := range d.cards {
		if c.ID == id {
			c.IsFlipped = !c.IsFlipped
			found = true
		}
		next[i] = c
	}
	if !found {
		return false
	}
	d.cards = next
	return true
}

// Reset clears the source text and cards and returns the deck to unprocessed.
func (d *Deck) Reset() {
	d.sourceText = ""
	d.cards = nil
	d.mode = ModeUnprocessed
}
