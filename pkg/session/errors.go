package session

import "errors"

var (
	// ErrSessionNotFound indicates the store has no session for the id.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrStoreUnavailable indicates a transport-level failure talking to the
	// store: timeout, connection error or a malformed response. Distinct from
	// a store-reported not-found.
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrSessionExpired indicates the session's last use is past its TTL.
	ErrSessionExpired = errors.New("session.expired")
)
