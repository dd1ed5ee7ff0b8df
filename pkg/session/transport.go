package session

import (
	"net/http"
	"time"
)

// Transport maps session identity to and from the wire carried by the
// client.
type Transport interface {
	// ID extracts the candidate session id from the request. An absent or
	// empty value means no session.
	ID(r *http.Request) (string, bool)

	// Set binds the session id to the response with a lifetime of at least
	// ttl. Server-side TTL enforcement stays authoritative.
	Set(w http.ResponseWriter, id string, ttl time.Duration)

	// Clear unbinds any session id from the response.
	Clear(w http.ResponseWriter)
}
