package shared

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookie describes the cookie that carries a visitor's session ID.
type SessionCookie struct {
	Name   string
	Secure bool
	// MaxAge bounds how long the browser keeps the cookie. Zero makes it a
	// browser-session cookie.
	MaxAge time.Duration
}

// Read returns the session ID from the request cookie, or uuid.Nil if the
// cookie is missing or malformed.
func (c SessionCookie) Read(r *http.Request) uuid.UUID {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Set writes the session cookie for id.
func (c SessionCookie) Set(w http.ResponseWriter, id uuid.UUID) {
	cookie := &http.Cookie{
		Name:     c.Name,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.MaxAge > 0 {
		cookie.MaxAge = int(c.MaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
}

// Clear instructs the browser to drop the session cookie.
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
