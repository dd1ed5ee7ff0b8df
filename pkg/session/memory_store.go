package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with in-process storage. Intended for tests
// and local development where no session service is running.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Fetch retrieves a session by id. Expiry is not evaluated here; the Manager
// applies the TTL policy.
func (m *MemoryStore) Fetch(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.clone(), nil
}

// Create allocates a new session with no user and empty data.
func (m *MemoryStore) Create(ctx context.Context, at time.Time) (*Session, error) {
	s := &Session{
		ID:         uuid.NewString(),
		LastUsedAt: at,
		Data:       make(map[string]any),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s.clone()
	m.mu.Unlock()

	return s, nil
}

// Update replaces the stored state for an existing session id.
func (m *MemoryStore) Update(ctx context.Context, id string, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}

	c := s.clone()
	c.ID = id
	m.sessions[id] = c
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
