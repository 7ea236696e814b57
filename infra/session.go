package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionData is what a logged-in browser session carries between requests.
type SessionData struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CSRFToken string    `json:"csrf_token"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionStore interface {
	Create(ctx context.Context, data SessionData) (string, error)
	Get(ctx context.Context, id string) (*SessionData, error)
	Destroy(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions under "session:<uuid>" with a sliding TTL.
type RedisSessionStore struct {
	redis *RedisClient
	ttl   time.Duration
}

func NewRedisSessionStore(redis *RedisClient, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{redis: redis, ttl: ttl}
}

func (s *RedisSessionStore) Create(ctx context.Context, data SessionData) (string, error) {
	id := uuid.NewString()
	if data.CSRFToken == "" {
		data.CSRFToken = uuid.NewString()
	}
	if err := s.redis.Set(ctx, sessionKey(id), data, s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*SessionData, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	var data SessionData
	if err := s.redis.GetEx(ctx, sessionKey(id), &data, s.ttl); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &data, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, id string) error {
	return s.redis.Delete(ctx, sessionKey(id))
}

func sessionKey(id string) string {
	return "session:" + id
}
