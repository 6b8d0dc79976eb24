package store

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/voyagen/tvcatalog/internal/cache"
	"github.com/voyagen/tvcatalog/internal/models"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tvcatalog_cache_hits_total",
		Help: "Channel cache hits by entity.",
	}, []string{"entity"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tvcatalog_cache_misses_total",
		Help: "Channel cache misses by entity.",
	}, []string{"entity"})
)

// CachedStore wraps a Store with a read-through cache (Redis or a local LRU)
// for channel pages and single channels. Facets are never cached: statistics are
// recomputed from the full collection on every call. Records change only
// through external administration, so entries simply expire after ttl.
type CachedStore struct {
	inner Store
	cache cache.Backend
	ttl   time.Duration
}

// NewCachedStore creates a CachedStore that wraps inner with c.
func NewCachedStore(inner Store, c cache.Backend, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, cache: c, ttl: ttl}
}

// channelListResult is a helper type to cache the ListChannels tuple.
type channelListResult struct {
	Channels []models.Channel `json:"channels"`
	Total    int              `json:"total"`
}

func (c *CachedStore) ListChannels(ctx context.Context, filter ChannelFilter) ([]models.Channel, int, error) {
	key := "channels:" + filterHash(filter)
	if v, ok := lookup[channelListResult](ctx, c, "channels", key); ok {
		return v.Channels, v.Total, nil
	}
	channels, total, err := c.inner.ListChannels(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	c.store(ctx, key, channelListResult{Channels: channels, Total: total})
	return channels, total, nil
}

func (c *CachedStore) GetChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	key := "channel:" + strings.ToLower(id)
	if v, ok := lookup[models.Channel](ctx, c, "channel", key); ok {
		return &v, nil
	}
	ch, err := c.inner.GetChannelByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, ch)
	return ch, nil
}

func (c *CachedStore) ListChannelFacets(ctx context.Context) ([]models.ChannelFacets, error) {
	return c.inner.ListChannelFacets(ctx)
}

// Ping checks the inner store only; a cache outage degrades to misses.
func (c *CachedStore) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

// lookup reads key from the cache. Backend errors other than a miss are logged
// and treated as a miss so the request falls through to the inner store.
func lookup[T any](ctx context.Context, c *CachedStore, entity, key string) (T, bool) {
	v, err := cache.Get[T](ctx, c.cache, key)
	if err == nil {
		cacheHitsTotal.WithLabelValues(entity).Inc()
		return v, true
	}
	if !cache.IsMiss(err) {
		log.Warn().Err(err).Str("key", key).Msg("cache get")
	}
	cacheMissesTotal.WithLabelValues(entity).Inc()
	return v, false
}

func (c *CachedStore) store(ctx context.Context, key string, v any) {
	if err := cache.Set(ctx, c.cache, key, v, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set")
	}
}

// filterHash produces a short deterministic hash for a ChannelFilter so it
// can be used as part of a cache key.
func filterHash(f ChannelFilter) string {
	raw := fmt.Sprintf("%q|%q|%q|%q|%d|%d",
		f.Category, f.Language, f.Country, f.Search, f.Limit, f.Offset)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}
