package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adityarama/folio/internal/config"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "folio:session:"

// RedisStore implements Store backed by Redis. Expiry is delegated to
// the key TTL, so a session disappears exactly when its inactivity
// window runs out.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store on a new Redis connection.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Get retrieves the context for a token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Context, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess Context
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &sess, nil
}

// Save persists the context and resets its time-to-live.
func (s *RedisStore) Save(ctx context.Context, sess *Context, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+sess.Token, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Delete removes the context. Missing tokens are a no-op.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
