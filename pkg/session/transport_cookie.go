package session

import (
	"net/http"
	"time"
)

// CookieTransport carries the session id in a plain cookie. The value is the
// opaque store-assigned id, so no signing or encryption is applied.
type CookieTransport struct {
	name   string
	secure bool
}

// NewCookieTransport creates a cookie-based transport using the given cookie
// name.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	return &CookieTransport{name: name, secure: secure}
}

// ID reads the session cookie if present. An empty value counts as absent.
func (t *CookieTransport) ID(r *http.Request) (string, bool) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Set writes the session cookie with a lifetime matching ttl.
func (t *CookieTransport) Set(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   t.secure,
	})
}

// Clear expires the session cookie immediately.
func (t *CookieTransport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   t.secure,
	})
}
