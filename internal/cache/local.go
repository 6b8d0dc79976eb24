package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Local is a per-process Backend: a size-bounded LRU whose entries expire
// after a fixed TTL. Values are stored serialized, so callers never share
// memory with the cache.
type Local struct {
	lru *expirable.LRU[string, []byte]
}

// NewLocal creates a Local cache holding at most size entries for ttl each.
func NewLocal(size int, ttl time.Duration) *Local {
	return &Local{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// GetBytes returns ErrMiss when key is absent or expired.
func (l *Local) GetBytes(_ context.Context, key string) ([]byte, error) {
	v, ok := l.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

// SetBytes adds data under key. The per-call ttl is ignored: every entry
// lives for the TTL the cache was created with.
func (l *Local) SetBytes(_ context.Context, key string, data []byte, _ time.Duration) error {
	l.lru.Add(key, data)
	return nil
}

// Len returns the number of entries currently held.
func (l *Local) Len() int {
	return l.lru.Len()
}
