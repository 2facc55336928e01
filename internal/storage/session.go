package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("session not found")

const sessionPrefix = "auth_"

// SessionStore keeps token -> user id pairs in Redis with a native expiry.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.Get(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return v, err
}

func (s *SessionStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionPrefix+token, userID, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionPrefix+token).Err()
}

// IsAlive pings Redis. Failures are reported as false.
func (s *SessionStore) IsAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.rdb.Ping(ctx).Err() == nil
}

// NewRedisClient opens a client for addr. Connection happens lazily.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
