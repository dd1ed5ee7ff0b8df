package session

import (
	"context"
	"time"
)

// Store abstracts the remote session backing store behind the three
// operations the Manager needs. Implementations translate transport failures
// into ErrStoreUnavailable instead of propagating raw network errors; callers
// distinguish outcomes with errors.Is.
type Store interface {
	// Fetch looks up a session by id. Returns ErrSessionNotFound when the
	// store reports no such session and ErrStoreUnavailable on any
	// transport-level failure.
	Fetch(ctx context.Context, id string) (*Session, error)

	// Create asks the store to allocate a new session id, seeded with no
	// user, empty data and the given timestamp. The returned Session has a
	// populated ID.
	Create(ctx context.Context, at time.Time) (*Session, error)

	// Update persists the full user id, last-used timestamp and data for an
	// existing session id. Idempotent: replays with the same payload are
	// safe.
	Update(ctx context.Context, id string, s *Session) error
}
