package store

import (
	"context"
	"errors"

	"github.com/voyagen/tvcatalog/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("not found")

// Store is read-only access to the channel collection.
type Store interface {
	// ListChannels returns the page of channels matching the filter, ordered by
	// name ascending, and the total number of matches before Limit/Offset.
	ListChannels(ctx context.Context, filter ChannelFilter) ([]models.Channel, int, error)
	// GetChannelByID returns a single channel or ErrNotFound.
	GetChannelByID(ctx context.Context, id string) (*models.Channel, error)
	// ListChannelFacets returns category/language/country for every channel,
	// in a stable scan order.
	ListChannelFacets(ctx context.Context) ([]models.ChannelFacets, error)
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// ChannelFilter holds optional filters for listing channels. Empty string
// fields are not applied; all applied filters are combined with AND.
type ChannelFilter struct {
	Category string // exact match
	Language string // exact match
	Country  string // exact match
	Search   string // case-insensitive substring match on channel name
	Limit    int    // <= 0 means no limit
	Offset   int
}
