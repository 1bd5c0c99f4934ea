package api

import (
	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/service"
)

// UpdateTextRequest defines the payload for replacing the source text.
// An empty string is a valid value; a missing field is not.
type UpdateTextRequest struct {
	Text *string `json:"text" validate:"required"`
}

// SubmitRequest defines the payload for submitting the deck. Text is optional:
// when absent the stored source text is submitted.
type SubmitRequest struct {
	Text *string `json:"text"`
}

// CardResponse represents one card of the deck.
type CardResponse struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	IsFlipped bool   `json:"is_flipped"`
}

// DeckResponse represents the deck state returned by every deck endpoint.
type DeckResponse struct {
	Mode       string         `json:"mode"`
	SourceText string         `json:"source_text"`
	CanSubmit  bool           `json:"can_submit"`
	Cards      []CardResponse `json:"cards"`
}

// SubmitResponse is returned by the submit endpoint.
type SubmitResponse struct {
	// Applied is false when the submission was ignored because the text was blank.
	Applied bool         `json:"applied"`
	Deck    DeckResponse `json:"deck"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse = service.StatsSnapshot

// deckToResponse converts a domain.DeckState to a DeckResponse
func deckToResponse(state *domain.DeckState) DeckResponse {
	cards := make([]CardResponse, 0, len(state.Cards))
	for _, c := range state.Cards {
		cards = append(cards, CardResponse{
			ID:        int(c.ID),
			Content:   c.Content,
			Summary:   c.Summary,
			IsFlipped: c.IsFlipped,
		})
	}

	return DeckResponse{
		Mode:       string(state.Mode),
		SourceText: state.SourceText,
		CanSubmit:  state.CanSubmit,
		Cards:      cards,
	}
}
