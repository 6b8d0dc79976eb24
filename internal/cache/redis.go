package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by this service.
const KeyPrefix = "tvcatalog:"

// Redis is a Backend shared by every instance of the service.
type Redis struct {
	client redis.UniversalClient
}

// New parses a Redis URL (e.g. "redis://host:6379/0") and returns a
// client. Call Ping to verify the connection.
func New(rawURL string) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

// Ping checks the connection to Redis.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close shuts down the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// GetBytes reads KeyPrefix+key. A missing key returns redis.Nil (see IsMiss).
func (r *Redis) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, KeyPrefix+key).Bytes()
}

// SetBytes stores data under KeyPrefix+key with the given TTL.
func (r *Redis) SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return r.client.Set(ctx, KeyPrefix+key, data, ttl).Err()
}
