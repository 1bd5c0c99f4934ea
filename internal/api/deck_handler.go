package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/phrazzld/learncards/internal/platform/logger"
	"github.com/phrazzld/learncards/internal/service"
	"github.com/phrazzld/learncards/internal/store"
)

// StatsProvider reports usage counters.
type StatsProvider interface {
	Snapshot(ctx context.Context) service.StatsSnapshot
}

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	deckService service.DeckService
	stats       StatsProvider
	cookie      shared.SessionCookie
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(
	deckService service.DeckService,
	stats StatsProvider,
	cookie shared.SessionCookie,
	logger *slog.Logger,
) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService: deckService,
		stats:       stats,
		cookie:      cookie,
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// GetDeck handles GET /api/deck requests
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	sessionID, ok := requireSession(w, r, log)
	if !ok {
		return
	}

	state, err := h.deckService.GetDeck(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to load deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(state))
}

// UpdateText handles PUT /api/deck/text requests
func (h *DeckHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	sessionID, ok := requireSession(w, r, log)
	if !ok {
		return
	}

	var req UpdateTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	state, err := h.deckService.EditText(r.Context(), sessionID, *req.Text)
	if err != nil {
		handleServiceError(w, r, err, "Failed to update text")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(state))
}

// Submit handles POST /api/deck/submit requests.
// A whitespace-only submission is not an error: it returns 200 with applied=false.
func (h *DeckHandler) Submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	sessionID, ok := requireSession(w, r, log)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		h.respondDecodeError(w, r, err)
		return
	}

	result, err := h.deckService.Submit(r.Context(), sessionID, req.Text)
	if err != nil {
		handleServiceError(w, r, err, "Failed to create cards")
		return
	}

	log.Debug("submit handled",
		slog.Bool("applied", result.Applied),
		slog.Int("card_count", len(result.State.Cards)))

	shared.RespondWithJSON(w, r, http.StatusOK, SubmitResponse{
		Applied: result.Applied,
		Deck:    deckToResponse(&result.State),
	})
}

// FlipCard handles POST /api/deck/cards/{id}/flip requests.
// Unknown card IDs leave the deck unchanged and still return 200.
func (h *DeckHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	sessionID, ok := requireSession(w, r, log)
	if !ok {
		return
	}

	cardID, err := getPathCardID(r, "id")
	if err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	state, err := h.deckService.Flip(r.Context(), sessionID, cardID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to flip card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(state))
}

// ResetDeck handles POST /api/deck/reset requests
func (h *DeckHandler) ResetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	sessionID, ok := requireSession(w, r, log)
	if !ok {
		return
	}

	state, err := h.deckService.Reset(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to reset deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(state))
}

// EndSession handles DELETE /api/session requests. It is idempotent: an
// unknown or missing session still yields 204 and a cleared cookie.
func (h *DeckHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if sessionID := h.cookie.Read(r); sessionID != uuid.Nil {
		err := h.deckService.EndSession(r.Context(), sessionID)
		if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
			handleServiceError(w, r, err, "Failed to end session")
			return
		}
		log.Debug("session ended", slog.String("session_id", sessionID.String()))
	}

	h.cookie.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /api/stats requests
func (h *DeckHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Stats are disabled")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse(h.stats.Snapshot(r.Context())))
}

// respondDecodeError writes 413 for oversized bodies and 400 otherwise.
func (h *DeckHandler) respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if isBodyTooLarge(err) {
		handleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
}
