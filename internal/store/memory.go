package store

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voyagen/tvcatalog/internal/models"
	"gopkg.in/yaml.v3"
)

// Memory implements Store over a fixed in-memory slice of channels. It is
// used for fixture-backed local runs and as the store in tests.
// Channels are never mutated after construction, so Memory is safe for concurrent use.
type Memory struct {
	channels []models.Channel // insertion order, which is the facet scan order
	byID     map[string]int
}

// NewMemory creates a Memory store holding channels in the given order.
// Channels without an ID get a random UUID; a zero CreatedAt is set to now.
func NewMemory(channels []models.Channel) *Memory {
	m := &Memory{
		channels: make([]models.Channel, len(channels)),
		byID:     make(map[string]int, len(channels)),
	}
	now := time.Now().UTC()
	for i, ch := range channels {
		if ch.ID == "" {
			ch.ID = uuid.NewString()
		}
		if ch.CreatedAt.IsZero() {
			ch.CreatedAt = now
		}
		m.channels[i] = ch
		m.byID[strings.ToLower(ch.ID)] = i
	}
	return m
}

type fixtureFile struct {
	Channels []models.Channel `yaml:"channels"`
}

// LoadMemoryFile reads a YAML fixture file with a top-level "channels" list.
func LoadMemoryFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	for i, ch := range f.Channels {
		if ch.ID == "" {
			continue
		}
		if _, err := uuid.Parse(ch.ID); err != nil {
			return nil, fmt.Errorf("fixtures %s: channel %d (%q): invalid id %q", path, i, ch.Name, ch.ID)
		}
	}
	return NewMemory(f.Channels), nil
}

// Len returns the number of channels held.
func (m *Memory) Len() int {
	return len(m.channels)
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// ListChannels applies the filter, orders by name (then id) and slices the page.
func (m *Memory) ListChannels(ctx context.Context, filter ChannelFilter) ([]models.Channel, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	search := strings.ToLower(filter.Search)
	var matched []models.Channel
	for _, ch := range m.channels {
		if filter.Category != "" && ch.Category != filter.Category {
			continue
		}
		if filter.Language != "" && ch.Language != filter.Language {
			continue
		}
		if filter.Country != "" && ch.Country != filter.Country {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(ch.Name), search) {
			continue
		}
		matched = append(matched, ch)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}

// GetChannelByID returns a copy of the channel or ErrNotFound. Matching is case-insensitive.
func (m *Memory) GetChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := m.byID[strings.ToLower(id)]
	if !ok {
		return nil, ErrNotFound
	}
	ch := m.channels[i]
	return &ch, nil
}

// ListChannelFacets returns the facets in insertion order.
func (m *Memory) ListChannelFacets(ctx context.Context) ([]models.ChannelFacets, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	facets := make([]models.ChannelFacets, len(m.channels))
	for i, ch := range m.channels {
		facets[i] = models.ChannelFacets{Category: ch.Category, Language: ch.Language, Country: ch.Country}
	}
	return facets, nil
}
