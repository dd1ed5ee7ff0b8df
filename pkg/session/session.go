package session

import (
	"maps"
	"time"
)

// Session is the durable unit of per-visitor state, carried between requests
// by an opaque id stored in a cookie. A Session with an empty ID has never
// round-tripped through the store and lives for the current request only.
type Session struct {
	ID         string         `json:"id"`
	UserID     *int64         `json:"user_id,omitempty"`
	LastUsedAt time.Time      `json:"last_used_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// Anonymous returns a fresh in-memory session with no id, no user and empty
// data.
func Anonymous() *Session {
	return &Session{Data: make(map[string]any)}
}

// Persisted reports whether the session is backed by the store. A
// non-persisted (degraded) session is discarded at the end of the request.
func (s *Session) Persisted() bool {
	return s != nil && s.ID != ""
}

// IsAuthenticated returns true if the session has a user ID.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != nil
}

// CurrentUserID returns the authenticated user's id, if any.
func (s *Session) CurrentUserID() (int64, bool) {
	if s == nil || s.UserID == nil {
		return 0, false
	}
	return *s.UserID, true
}

// SetUserID attaches an authenticated user to the session.
func (s *Session) SetUserID(id int64) {
	if s == nil {
		return
	}
	s.UserID = &id
}

// ClearUserID detaches the authenticated user from the session.
func (s *Session) ClearUserID() {
	if s == nil {
		return
	}
	s.UserID = nil
}

// Expired reports whether the session's last recorded use is older than ttl.
// Validity is last_used_at + ttl > now; anything else is indistinguishable
// from a missing session.
func (s *Session) Expired(ttl time.Duration, now time.Time) bool {
	return s == nil || !s.LastUsedAt.Add(ttl).After(now)
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Pop removes a value from session data and returns it, or def when the key
// is absent.
func (s *Session) Pop(key string, def any) any {
	val, ok := s.Get(key)
	if !ok {
		return def
	}
	delete(s.Data, key)
	return val
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// clone returns a copy that does not share the Data map with the caller, so
// store implementations never hand out aliased state.
func (s *Session) clone() *Session {
	c := *s
	c.Data = make(map[string]any, len(s.Data))
	maps.Copy(c.Data, s.Data)
	return &c
}
