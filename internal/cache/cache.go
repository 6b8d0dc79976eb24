// Package cache provides the key/value backends used to cache channel reads:
// Redis when several instances share a cache, or a per-process LRU.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by backends other than Redis when a key is absent.
var ErrMiss = errors.New("cache miss")

// Backend stores opaque values by key.
type Backend interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// IsMiss reports whether err means the key was not present.
func IsMiss(err error) bool {
	return errors.Is(err, ErrMiss) || errors.Is(err, redis.Nil)
}

// Get fetches key from b and JSON-unmarshals the value.
func Get[T any](ctx context.Context, b Backend, key string) (T, error) {
	var v T
	raw, err := b.GetBytes(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("cache unmarshal %s: %w", key, err)
	}
	return v, nil
}

// Set JSON-marshals v and stores it under key with the given TTL.
func Set(ctx context.Context, b Backend, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	return b.SetBytes(ctx, key, data, ttl)
}
