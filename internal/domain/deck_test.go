package domain_test

import (
	"strings"
	"testing"

	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/domain/chunking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeck(t *testing.T) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(chunking.NewDefaultChunker())
	require.NoError(t, err)
	return deck
}

// assertInvariants checks the invariants that must hold after every operation.
func assertInvariants(t *testing.T, deck *domain.Deck) {
	t.Helper()
	switch deck.Mode() {
	case domain.ModeProcessed:
		assert.Positive(t, deck.Len(), "processed deck must not be empty")
	case domain.ModeUnprocessed:
		assert.Zero(t, deck.Len(), "unprocessed deck must not hold cards")
	default:
		t.Fatalf("unexpected mode %q", deck.Mode())
	}
}

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	assert.Equal(t, domain.ModeUnprocessed, deck.Mode())
	assert.Empty(t, deck.SourceText())
	assert.Zero(t, deck.Len())
	assert.False(t, deck.CanSubmit())

	_, err := domain.NewDeck(nil)
	assert.ErrorIs(t, err, domain.ErrNilChunker)
}

func TestDeck_SubmitIgnoresBlankText(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t "} {
		deck := newDeck(t)
		applied, err := deck.Submit(text)

		require.NoError(t, err)
		assert.False(t, applied, "text %q", text)
		assert.Equal(t, domain.ModeUnprocessed, deck.Mode())
		assert.Zero(t, deck.Len())
		assertInvariants(t, deck)
	}
}

func TestDeck_SubmitDoesNotInvokeChunkerForBlankText(t *testing.T) {
	t.Parallel()

	calls := 0
	deck, err := domain.NewDeck(domain.ChunkerFunc(func(text string) []domain.Card {
		calls++
		return []domain.Card{{ID: 0, Content: text}}
	}))
	require.NoError(t, err)

	_, err = deck.Submit("   ")
	require.NoError(t, err)
	assert.Zero(t, calls)

	_, err = deck.Submit("x")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDeck_Submit(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	text := "one two three four five six seven eight nine ten eleven twelve"
	applied, err := deck.Submit(text)

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, domain.ModeProcessed, deck.Mode())
	assert.Equal(t, text, deck.SourceText())
	assert.False(t, deck.CanSubmit())
	require.Equal(t, 4, deck.Len())

	ids := make([]domain.CardID, 0, deck.Len())
	for _, c := range deck.Cards() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []domain.CardID{0, 3, 6, 9}, ids)
	assertInvariants(t, deck)
}

func TestDeck_SubmitWhileProcessed(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	_, err := deck.Submit("first text here")
	require.NoError(t, err)
	before := deck.State()

	applied, err := deck.Submit("something else entirely")
	assert.ErrorIs(t, err, domain.ErrDeckProcessed)
	assert.False(t, applied)
	assert.Equal(t, before, deck.State())
}

func TestDeck_SetSourceText(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	require.NoError(t, deck.SetSourceText("  "))
	assert.False(t, deck.CanSubmit())

	require.NoError(t, deck.SetSourceText("draft"))
	assert.Equal(t, "draft", deck.SourceText())
	assert.True(t, deck.CanSubmit())

	_, err := deck.Submit(deck.SourceText())
	require.NoError(t, err)

	err = deck.SetSourceText("changed")
	assert.ErrorIs(t, err, domain.ErrDeckProcessed)
	assert.Equal(t, "draft", deck.SourceText())
}

func TestDeck_Flip(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	_, err := deck.Submit("a b c d e f g h i j k l")
	require.NoError(t, err)
	before := deck.Cards()

	assert.True(t, deck.Flip(3))
	after := deck.Cards()

	require.Len(t, after, len(before))
	for i := range before {
		if before[i].ID == 3 {
			assert.True(t, after[i].IsFlipped)
			assert.Equal(t, before[i].Content, after[i].Content)
			assert.Equal(t, before[i].Summary, after[i].Summary)
			assert.Equal(t, before[i].ID, after[i].ID)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}

	// Flipping twice restores the original flag.
	assert.True(t, deck.Flip(3))
	assert.Equal(t, before, deck.Cards())
	assertInvariants(t, deck)
}

func TestDeck_FlipUnknownID(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	_, err := deck.Submit("a b c d e f g h i j k l")
	require.NoError(t, err)
	before := deck.State()

	// 1 is a valid position but not a card id in this generation.
	assert.False(t, deck.Flip(1))
	assert.False(t, deck.Flip(99))
	assert.Equal(t, before, deck.State())

	empty := newDeck(t)
	assert.False(t, empty.Flip(0))
}

func TestDeck_Reset(t *testing.T) {
	t.Parallel()

	sequences := []func(d *domain.Deck){
		func(d *domain.Deck) {},
		func(d *domain.Deck) { _ = d.SetSourceText("draft only") },
		func(d *domain.Deck) { _, _ = d.Submit("some words to chunk") },
		func(d *domain.Deck) {
			_, _ = d.Submit("a b c d e f")
			d.Flip(0)
			d.Flip(2)
		},
	}

	for i, seq := range sequences {
		deck := newDeck(t)
		seq(deck)
		deck.Reset()

		assert.Equal(t, domain.ModeUnprocessed, deck.Mode(), "sequence %d", i)
		assert.Empty(t, deck.SourceText(), "sequence %d", i)
		assert.Zero(t, deck.Len(), "sequence %d", i)
		assertInvariants(t, deck)
	}
}

func TestDeck_ResetAllowsNewGeneration(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	_, err := deck.Submit("first")
	require.NoError(t, err)
	deck.Reset()

	applied, err := deck.Submit("second generation")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "second", deck.Cards()[0].Content)
}

func TestDeck_StateIsACopy(t *testing.T) {
	t.Parallel()

	deck := newDeck(t)
	_, err := deck.Submit("copy me please")
	require.NoError(t, err)

	state := deck.State()
	state.Cards[0].Content = strings.ToUpper(state.Cards[0].Content)
	state.Cards[0].IsFlipped = true

	card, ok := deck.Card(0)
	require.True(t, ok)
	assert.Equal(t, "copy", card.Content)
	assert.False(t, card.IsFlipped)

	found, ok := state.Card(0)
	require.True(t, ok)
	assert.True(t, found.IsFlipped)

	_, ok = state.Card(42)
	assert.False(t, ok)
}

func TestDeck_EmptyChunkerOutputIsIgnored(t *testing.T) {
	t.Parallel()

	deck, err := domain.NewDeck(domain.ChunkerFunc(func(string) []domain.Card { return nil }))
	require.NoError(t, err)

	applied, err := deck.Submit("text")
	require.NoError(t, err)
	assert.False(t, applied)
	assertInvariants(t, deck)
}
