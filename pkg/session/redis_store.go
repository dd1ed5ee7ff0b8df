package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore implements Store on top of redis, for deployments that
// co-locate the session store with the web tier instead of calling a remote
// session service. Keys expire together with the session TTL so abandoned
// sessions are reclaimed by redis itself.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a redis-backed session store. ttl bounds the key
// lifetime; zero disables key expiry.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Fetch retrieves a session by id.
func (r *RedisStore) Fetch(ctx context.Context, id string) (*Session, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	s := &Session{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	return s, nil
}

// Create allocates a new session with no user and empty data.
func (r *RedisStore) Create(ctx context.Context, at time.Time) (*Session, error) {
	s := &Session{
		ID:         uuid.NewString(),
		LastUsedAt: at,
		Data:       make(map[string]any),
	}
	if err := r.write(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the stored state for an existing session id and refreshes
// the key TTL.
func (r *RedisStore) Update(ctx context.Context, id string, s *Session) error {
	c := s.clone()
	c.ID = id
	return r.write(ctx, c)
}

func (r *RedisStore) write(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, b, r.ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
