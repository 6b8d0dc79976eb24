// Package service implements the channel catalog operations on top of a store.Store.
package service

import (
	"context"
	"fmt"
	"math"

	"github.com/voyagen/tvcatalog/internal/models"
	"github.com/voyagen/tvcatalog/internal/store"
)

// Page size bounds for List.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ErrNotFound is returned by Get when no channel has the requested id.
var ErrNotFound = store.ErrNotFound

// ListQuery is the sanitized input of a List call. Empty strings disable the
// corresponding filter.
type ListQuery struct {
	Category string
	Language string
	Country  string
	Search   string
	Page     int
	Limit    int
}

// ListResult is one page of channels plus pagination metadata.
type ListResult struct {
	Channels   []models.Channel
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Catalog serves read-only channel queries.
type Catalog struct {
	store store.Store
}

// NewCatalog creates a Catalog reading from s.
func NewCatalog(s store.Store) *Catalog {
	return &Catalog{store: s}
}

// List returns the requested page of channels matching every active filter,
// ordered by name. Page is raised to at least 1 and Limit clamped to [1, MaxLimit].
func (c *Catalog) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	page := max(q.Page, 1)
	limit := ClampLimit(q.Limit)

	filter := store.ChannelFilter{
		Category: q.Category,
		Language: q.Language,
		Country:  q.Country,
		Search:   q.Search,
		Limit:    limit,
		Offset:   pageOffset(page, limit),
	}
	channels, total, err := c.store.ListChannels(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	if channels == nil {
		channels = []models.Channel{}
	}
	return &ListResult{
		Channels:   channels,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

// Get returns the channel with the given id or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, id string) (*models.Channel, error) {
	ch, err := c.store.GetChannelByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get channel %s: %w", id, err)
	}
	return ch, nil
}

// Stats scans every channel and computes the category, language and country
// distributions.
func (c *Catalog) Stats(ctx context.Context) (*Stats, error) {
	facets, err := c.store.ListChannelFacets(ctx)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}
	stats := ComputeStats(facets)
	return &stats, nil
}

// pageOffset returns (page-1)*limit, saturating instead of overflowing for
// absurdly large page numbers.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt32/limit {
		return math.MaxInt32
	}
	return (page - 1) * limit
}

// ClampLimit bounds a page size to [1, MaxLimit].
func ClampLimit(limit int) int {
	return min(max(limit, 1), MaxLimit)
}

// TotalPages returns ceil(total/limit), or 0 when there are no matches.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
