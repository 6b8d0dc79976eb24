package service

import (
	"sort"

	"github.com/voyagen/tvcatalog/internal/models"
)

// ValueCount is one entry of a distribution.
type ValueCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats is the statistics snapshot over the whole collection.
type Stats struct {
	TotalChannels int          `json:"total_channels"`
	ByCategory    []ValueCount `json:"by_category"`
	ByLanguage    []ValueCount `json:"by_language"`
	ByCountry     []ValueCount `json:"by_country"`
}

// frequencyTable counts occurrences of string values and remembers the order
// in which each value was first seen.
type frequencyTable struct {
	index   map[string]int
	entries []ValueCount
}

func newFrequencyTable() *frequencyTable {
	return &frequencyTable{index: make(map[string]int), entries: []ValueCount{}}
}

func (t *frequencyTable) add(value string) {
	if i, ok := t.index[value]; ok {
		t.entries[i].Count++
		return
	}
	t.index[value] = len(t.entries)
	t.entries = append(t.entries, ValueCount{Name: value, Count: 1})
}

// sorted returns the entries by count descending. Equal counts keep
// first-seen order.
func (t *frequencyTable) sorted() []ValueCount {
	out := make([]ValueCount, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// ComputeStats builds the three distributions from facets in scan order.
func ComputeStats(facets []models.ChannelFacets) Stats {
	categories := newFrequencyTable()
	languages := newFrequencyTable()
	countries := newFrequencyTable()
	for _, f := range facets {
		categories.add(f.Category)
		languages.add(f.Language)
		countries.add(f.Country)
	}
	return Stats{
		TotalChannels: len(facets),
		ByCategory:    categories.sorted(),
		ByLanguage:    languages.sorted(),
		ByCountry:     countries.sorted(),
	}
}
