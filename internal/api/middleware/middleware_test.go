package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/phrazzld/learncards/internal/api/shared"
	"github.com/phrazzld/learncards/internal/platform/logger"
	"github.com/phrazzld/learncards/internal/store"
	"github.com/phrazzld/learncards/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	var seenTrace, seenRequestID string
	var scoped *slog.Logger
	handler := chimiddleware.RequestID(NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		seenRequestID = logger.RequestID(r.Context())
		scoped = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/deck", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.NotEmpty(t, seenTrace)
	assert.NotEmpty(t, seenRequestID)
	assert.NotNil(t, scoped, "a request-scoped logger should be in the context")
	assert.Equal(t, seenTrace, w.Header().Get(TraceIDHeader))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, seenTrace, entry["trace_id"])
	assert.Equal(t, "/api/deck", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
}

// fakeEnsurer implements SessionEnsurer with a function field.
type fakeEnsurer struct {
	EnsureSessionFn func(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

func (f *fakeEnsurer) EnsureSession(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	return f.EnsureSessionFn(ctx, id)
}

func TestSessionMiddleware(t *testing.T) {
	cookie := shared.SessionCookie{Name: "learncards_session"}
	existing := uuid.New()
	fresh := uuid.New()

	ensurer := &fakeEnsurer{
		EnsureSessionFn: func(_ context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
			if id == existing {
				return id, false, nil
			}
			return fresh, true, nil
		},
	}
	mw := NewSessionMiddleware(ensurer, cookie, testutils.DiscardLogger())

	var got uuid.UUID
	handler := mw.Attach(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetSessionID(r)
		require.True(t, ok)
		got = id
	}))

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   uuid.UUID
	}{
		{name: "no cookie", want: fresh},
		{name: "malformed cookie", cookie: &http.Cookie{Name: cookie.Name, Value: "garbage"}, want: fresh},
		{name: "expired session", cookie: &http.Cookie{Name: cookie.Name, Value: uuid.NewString()}, want: fresh},
		{name: "live session", cookie: &http.Cookie{Name: cookie.Name, Value: existing.String()}, want: existing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, got)
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, tc.want.String(), cookies[0].Value)
		})
	}
}

func TestSessionMiddleware_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "session limit", err: store.ErrSessionLimit, wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ensurer := &fakeEnsurer{
				EnsureSessionFn: func(context.Context, uuid.UUID) (uuid.UUID, bool, error) {
					return uuid.Nil, false, tc.err
				},
			}
			mw := NewSessionMiddleware(ensurer, shared.SessionCookie{Name: "s"}, testutils.DiscardLogger())
			called := false
			handler := mw.Attach(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.False(t, called)
			assert.NotContains(t, w.Body.String(), tc.err.Error())
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2, testutils.DiscardLogger())
	limiter.now = func() time.Time { return now }

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/deck/submit", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:2222").Code, "the port does not matter")

	w := send("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.True(t, strings.Contains(w.Body.String(), "Too many requests"))

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code, "clients are limited independently")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:4444").Code, "tokens refill over time")

	assert.Equal(t, 2, limiter.Len())
	now = now.Add(10 * time.Minute)
	assert.Equal(t, 2, limiter.Prune(5*time.Minute))
	assert.Equal(t, 0, limiter.Len())
}
