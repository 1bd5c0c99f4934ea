package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/phrazzld/learncards/internal/domain/chunking"
	"github.com/phrazzld/learncards/internal/events"
	"github.com/phrazzld/learncards/internal/platform/memory"
	"github.com/phrazzld/learncards/internal/service"
	"github.com/phrazzld/learncards/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twelveWords = "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"

type pageFixture struct {
	router    http.Handler
	service   service.DeckService
	sessionID uuid.UUID
}

func newPageFixture(t *testing.T, maxTextBytes int) *pageFixture {
	t.Helper()
	log := testutils.DiscardLogger()

	sessions := memory.NewSessionStore(chunking.NewDefaultChunker(), 10, log)
	svc, err := service.NewDeckService(sessions, events.NewInMemoryEventEmitter(log), maxTextBytes, log)
	require.NoError(t, err)

	sessionID, created, err := svc.EnsureSession(context.Background(), uuid.Nil)
	require.NoError(t, err)
	require.True(t, created)

	h, err := NewPageHandler(svc, log)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.WithSessionID(r.Context(), sessionID)))
		})
	})
	h.Routes(r)

	return &pageFixture{router: r, service: svc, sessionID: sessionID}
}

func (f *pageFixture) get(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	return rr
}

func (f *pageFixture) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestNewPageHandler_RequiresService(t *testing.T) {
	_, err := NewPageHandler(nil, nil)
	assert.Error(t, err)
}

func TestShowDeck_Unprocessed(t *testing.T) {
	f := newPageFixture(t, 0)

	rr := f.get(t)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Learning Cards</title>")
	assert.Contains(t, body, `<textarea id="source-text" name="text"`)
	assert.Contains(t, body, `type="submit" disabled>Create Learning Cards</button>`,
		"button is disabled while the text is empty")
	assert.NotContains(t, body, "Start Over")
}

func TestSubmitFlipReset_FullCycle(t *testing.T) {
	f := newPageFixture(t, 0)

	rr := f.post(t, "/submit", url.Values{"text": {twelveWords}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	body := f.get(t).Body.String()
	for _, id := range []string{"0", "3", "6", "9"} {
		assert.Contains(t, body, `action="/cards/`+id+`/flip"`)
	}
	assert.Contains(t, body, "Key point 1")
	assert.Contains(t, body, "Key point 4")
	assert.NotContains(t, body, "alpha bravo charlie", "content is hidden until flipped")
	assert.Contains(t, body, "Start Over")
	assert.NotContains(t, body, "<textarea")

	rr = f.post(t, "/cards/3/flip", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	body = f.get(t).Body.String()
	assert.Contains(t, body, "delta echo foxtrot")
	assert.NotContains(t, body, "Key point 2")
	assert.Contains(t, body, "Key point 1")

	rr = f.post(t, "/reset", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	state, err := f.service.GetDeck(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, "unprocessed", string(state.Mode))
	assert.Empty(t, state.SourceText)
	assert.Empty(t, state.Cards)
}

func TestSubmit_BlankTextIsIgnored(t *testing.T) {
	f := newPageFixture(t, 0)

	rr := f.post(t, "/submit", url.Values{"text": {"   \t "}})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	state, err := f.service.GetDeck(context.Background(), f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, "unprocessed", string(state.Mode))
	assert.Empty(t, state.Cards)
}

func TestSubmit_AlreadyProcessedRendersConflict(t *testing.T) {
	f := newPageFixture(t, 0)
	require.Equal(t, http.StatusSeeOther, f.post(t, "/submit", url.Values{"text": {"one two"}}).Code)

	rr := f.post(t, "/submit", url.Values{"text": {"three four"}})

	assert.Equal(t, http.StatusConflict, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "start over to change the text")
	assert.Contains(t, body, "Key point 1", "the current deck is still shown")
}

func TestSubmit_TextTooLarge(t *testing.T) {
	f := newPageFixture(t, 8)

	rr := f.post(t, "/submit", url.Values{"text": {"this text is far too long"}})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, rr.Body.String(), "Source text is too large")
}

func TestFlipCard_InvalidID(t *testing.T) {
	f := newPageFixture(t, 0)

	rr := f.post(t, "/cards/abc/flip", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid card ID")
}

func TestFlipCard_UnknownIDIsNoOp(t *testing.T) {
	f := newPageFixture(t, 0)
	require.Equal(t, http.StatusSeeOther, f.post(t, "/submit", url.Values{"text": {twelveWords}}).Code)

	rr := f.post(t, "/cards/1/flip", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	state, err := f.service.GetDeck(context.Background(), f.sessionID)
	require.NoError(t, err)
	for _, c := range state.Cards {
		assert.False(t, c.IsFlipped)
	}
}

func TestShowDeck_EscapesUserText(t *testing.T) {
	f := newPageFixture(t, 0)
	_, err := f.service.EditText(context.Background(), f.sessionID, "<script>alert(1)</script>")
	require.NoError(t, err)

	body := f.get(t).Body.String()

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, `type="submit" disabled>`, "non-blank text enables the button")
}

func TestShowDeck_MissingSession(t *testing.T) {
	log := testutils.DiscardLogger()
	sessions := memory.NewSessionStore(chunking.NewDefaultChunker(), 1, log)
	svc, err := service.NewDeckService(sessions, events.NewInMemoryEventEmitter(log), 0, log)
	require.NoError(t, err)
	h, err := NewPageHandler(svc, log)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ShowDeck(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
