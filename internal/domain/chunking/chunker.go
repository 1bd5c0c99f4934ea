// Package chunking implements the deterministic text partitioning that turns
// source text into deck cards.
package chunking

import (
	"strconv"
	"strings"

	"github.com/phrazzld/learncards/internal/domain"
)

// Chunker splits text into roughly equal word-count chunks.
// It implements domain.Chunker.
type Chunker struct {
	params *Params
}

var _ domain.Chunker = (*Chunker)(nil)

// NewDefaultChunker creates a Chunker with default parameters
func NewDefaultChunker() *Chunker {
	return &Chunker{params: NewDefaultParams()}
}

// NewChunker creates a Chunker with custom parameters
func NewChunker(params *Params) *Chunker {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Chunker{params: params}
}

// Chunk partitions text into cards.
//
// The text is split on the separator without collapsing repeats, so leading,
// trailing and doubled separators produce empty words that take part in
// chunking and rejoining. The words are walked in windows of
// ChunkSize(len(words)) and each window becomes one card whose id is the
// window's starting word offset.
//
// Callers are expected to only pass text that is non-empty after trimming;
// Chunk itself accepts any string and never fails.
func (c *Chunker) Chunk(text string) []domain.Card {
	words := Split(text, c.params.Separator)
	size := ChunkSize(len(words), c.params.TargetChunks)

	cards := make([]domain.Card, 0, (len(words)+size-1)/size)
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}

		cards = append(cards, domain.Card{
			ID:        domain.CardID(start),
			Content:   strings.Join(words[start:end], c.params.Separator),
			IsFlipped: false,
			Summary:   c.params.SummaryPrefix + strconv.Itoa(len(cards)+1),
		})
	}

	return cards
}

// Split breaks text on every occurrence of sep.
// Consecutive separators yield empty words; the empty string yields one empty word.
func Split(text, sep string) []string {
	return strings.Split(text, sep)
}

// ChunkSize returns ceil(wordCount / target), never less than 1.
func ChunkSize(wordCount, target int) int {
	if target < 1 {
		target = 1
	}
	size := (wordCount + target - 1) / target
	if size < 1 {
		return 1
	}
	return size
}
