package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/api"
	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/phrazzld/learncards/internal/domain"
	"github.com/phrazzld/learncards/internal/platform/logger"
	"github.com/phrazzld/learncards/internal/redact"
	"github.com/phrazzld/learncards/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "deck.html"

// pageData is the view model for the deck page.
type pageData struct {
	Deck  *domain.DeckState
	Error string
}

// PageHandler renders the deck page and applies form intents.
type PageHandler struct {
	deckService service.DeckService
	templates   *template.Template
	logger      *slog.Logger
}

// NewPageHandler parses the embedded templates and returns a PageHandler.
func NewPageHandler(deckService service.DeckService, log *slog.Logger) (*PageHandler, error) {
	if deckService == nil {
		return nil, errors.New("deckService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		deckService: deckService,
		templates:   templates,
		logger:      log.With(slog.String("component", "page_handler")),
	}, nil
}

// Routes mounts the page routes on r. The session middleware must run first.
// writeMiddlewares wrap only the state-changing POST routes.
func (h *PageHandler) Routes(r chi.Router, writeMiddlewares ...func(http.Handler) http.Handler) {
	r.Get("/", h.ShowDeck)

	w := r.With(writeMiddlewares...)
	w.Post("/submit", h.Submit)
	w.Post("/cards/{id}/flip", h.FlipCard)
	w.Post("/reset", h.Reset)
}

// ShowDeck handles GET /
func (h *PageHandler) ShowDeck(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	state, err := h.deckService.GetDeck(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, r, sessionID, err)
		return
	}

	h.render(w, r, http.StatusOK, pageData{Deck: state})
}

// Submit handles POST /submit. A blank text field leaves the deck unchanged.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, sessionID, err)
		return
	}
	text := r.PostForm.Get("text")

	if _, err := h.deckService.Submit(r.Context(), sessionID, &text); err != nil {
		h.renderError(w, r, sessionID, err)
		return
	}

	redirectHome(w, r)
}

// FlipCard handles POST /cards/{id}/flip
func (h *PageHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	cardID, err := domain.ParseCardID(chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, sessionID, err)
		return
	}

	if _, err := h.deckService.Flip(r.Context(), sessionID, cardID); err != nil {
		h.renderError(w, r, sessionID, err)
		return
	}

	redirectHome(w, r)
}

// Reset handles POST /reset
func (h *PageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, err := h.deckService.Reset(r.Context(), sessionID); err != nil {
		h.renderError(w, r, sessionID, err)
		return
	}

	redirectHome(w, r)
}

func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := shared.GetSessionID(r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("session ID missing from request context")
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return uuid.Nil, false
	}
	return id, true
}

// renderError re-renders the page with a safe message and the status the API
// would use for err. The current deck is shown when it can still be loaded.
func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID, err error) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	status := api.MapErrorToStatusCode(err)

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(r.Context(), level, "page request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
		slog.String("error", redact.Error(err)))

	state, stateErr := h.deckService.GetDeck(r.Context(), sessionID)
	if stateErr != nil {
		http.Error(w, api.GetSafeErrorMessage(err), status)
		return
	}

	h.render(w, r, status, pageData{Deck: state, Error: api.GetSafeErrorMessage(err)})
}

// render executes the page template into a buffer first so a template error
// never produces a half-written page.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to render page",
			slog.String("template", pageTemplate),
			slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("failed to write page", "error", err)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
