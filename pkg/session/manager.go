package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/racedayhq/raceday/pkg/logger"
)

// Manager owns the session lifecycle of a single request: which Session
// backs it, whether the session is persisted afterwards and how the cookie
// is updated. Store failures are absorbed here and never surface to request
// handlers.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	log       *slog.Logger
	now       func() time.Time
}

// New creates a session manager. A Store is required; the default transport
// is a plain cookie named by the configuration.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		// Fail fast on misconfiguration instead of degrading every request.
		panic("session: store is required")
	}

	if m.transport == nil {
		m.transport = NewCookieTransport(m.config.CookieName, m.config.SecureCookies)
	}

	if m.log == nil {
		m.log = slog.Default()
	}

	return m
}

// Open decides which Session backs the request. It never fails: a missing,
// expired or unknown cookie mints a fresh session, and an unreachable store
// degrades to an in-memory session that lives for this request only.
func (m *Manager) Open(ctx context.Context, r *http.Request) *Session {
	now := m.now()

	if id, ok := m.transport.ID(r); ok {
		s, err := m.store.Fetch(ctx, id)
		switch {
		case err == nil && !s.Expired(m.config.TTL, now):
			return s
		case err == nil || errors.Is(err, ErrSessionNotFound):
			// Expired or unknown id: mint a replacement.
		default:
			m.log.WarnContext(ctx, "session fetch failed", logger.Error(err))
		}
	}

	s, err := m.store.Create(ctx, now)
	if err != nil {
		m.log.WarnContext(ctx, "session create failed, serving request without persistence", logger.Error(err))
		return Anonymous()
	}
	return s
}

// Close persists the session and refreshes the cookie. A degraded session
// clears the cookie and is not persisted. When the store is unreachable the
// previous cookie is left untouched so the client keeps presenting the same
// id on the next request.
func (m *Manager) Close(ctx context.Context, w http.ResponseWriter, s *Session) {
	if !s.Persisted() {
		m.transport.Clear(w)
		return
	}

	s.LastUsedAt = m.now()
	if err := m.store.Update(ctx, s.ID, s); err != nil {
		m.log.WarnContext(ctx, "session update failed, cookie left unchanged", logger.Error(err))
		return
	}

	m.transport.Set(w, s.ID, m.config.TTL)
}

// Invalidate discards the session. The stored record is emptied on a best
// effort basis so a replayed cookie no longer authenticates, then the
// session is detached from the store and Close clears the cookie.
func (m *Manager) Invalidate(ctx context.Context, s *Session) {
	if s == nil {
		return
	}

	s.UserID = nil
	s.Clear()

	if s.Persisted() {
		s.LastUsedAt = m.now()
		if err := m.store.Update(ctx, s.ID, s); err != nil {
			m.log.WarnContext(ctx, "session invalidate failed", logger.Error(err))
		}
	}

	s.ID = ""
}
