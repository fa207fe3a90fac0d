package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"phonedir/internal/directory/metrics"
	"phonedir/pkg/platform/sentinel"
)

// RedisStore is the Redis-backed key-value adapter. Each method is a single
// Redis command, atomic per key on the server side.
type RedisStore struct {
	client  redis.Cmdable
	metrics *metrics.Metrics
}

// RedisOption configures a RedisStore instance.
type RedisOption func(*RedisStore)

// WithMetrics records per-command latency.
func WithMetrics(m *metrics.Metrics) RedisOption {
	return func(s *RedisStore) {
		s.metrics = m
	}
}

// NewRedis constructs a store on a shared client. The client lifecycle is
// managed by the caller.
func NewRedis(client redis.Cmdable, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Exists reports whether key is present (EXISTS).
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	defer s.observe("exists", time.Now())
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the value at key (GET), or sentinel.ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	defer s.observe("get", time.Now())
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value at key without expiry (SET).
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	defer s.observe("set", time.Now())
	return s.client.Set(ctx, key, value, 0).Err()
}

// SetIfAbsent stores value only if key is absent (SETNX) and reports whether it
// did.
func (s *RedisStore) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	defer s.observe("setnx", time.Now())
	return s.client.SetNX(ctx, key, value, 0).Result()
}

// Delete removes key (DEL). Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	defer s.observe("del", time.Now())
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) observe(command string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveStoreCommand(command, start)
	}
}
