package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/infrastructure/cache"
)

// RedisSessionStore persists sessions as JSON in Redis with a sliding TTL.
// Every Put refreshes the TTL, so a session expires only after the
// conversation has gone quiet for the full window.
type RedisSessionStore struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewRedisSessionStore creates a session store backed by Redis
func NewRedisSessionStore(c *cache.RedisCache, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{cache: c, ttl: ttl}
}

// Get loads a session by id. Returns services.ErrSessionNotFound when the
// session does not exist or has expired.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.cache.GetJSON(ctx, cache.KeySessionPrefix+id, &session)
	if errors.Is(err, redis.Nil) {
		return nil, services.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return &session, nil
}

// Put saves a session and refreshes its TTL
func (s *RedisSessionStore) Put(ctx context.Context, session *models.Session) error {
	if err := s.cache.SetJSON(ctx, cache.KeySessionPrefix+session.ID, session, s.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

// Delete removes a session
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, cache.KeySessionPrefix+id)
}
