package service

import (
	"testing"

	"github.com/voyagen/tvcatalog/internal/models"
)

func facetsOf(categories ...string) []models.ChannelFacets {
	out := make([]models.ChannelFacets, len(categories))
	for i, c := range categories {
		out[i] = models.ChannelFacets{Category: c, Language: "English", Country: "USA"}
	}
	return out
}

func TestComputeStats_TiesKeepFirstSeenOrder(t *testing.T) {
	facets := facetsOf(
		"Entertainment", "News", "Kids", "News", "Entertainment",
		"Kids", "News", "Kids", "News", "Entertainment",
		"Kids", "News", "Entertainment",
	)
	stats := ComputeStats(facets)

	want := []ValueCount{{"News", 5}, {"Entertainment", 4}, {"Kids", 4}}
	if len(stats.ByCategory) != len(want) {
		t.Fatalf("by_category = %v, want %v", stats.ByCategory, want)
	}
	for i := range want {
		if stats.ByCategory[i] != want[i] {
			t.Errorf("by_category[%d] = %v, want %v", i, stats.ByCategory[i], want[i])
		}
	}
	if stats.TotalChannels != 13 {
		t.Errorf("total_channels = %d, want 13", stats.TotalChannels)
	}
}

func TestComputeStats_TieOrderFollowsScan(t *testing.T) {
	stats := ComputeStats(facetsOf("Kids", "Entertainment", "News", "News"))
	got := stats.ByCategory
	if got[0].Name != "News" || got[1].Name != "Kids" || got[2].Name != "Entertainment" {
		t.Errorf("by_category = %v, want News, Kids, Entertainment", got)
	}
}

func TestComputeStats_TotalsMatchEveryDistribution(t *testing.T) {
	facets := []models.ChannelFacets{
		{Category: "News", Language: "English", Country: "UK"},
		{Category: "News", Language: "French", Country: "France"},
		{Category: "Sports", Language: "English", Country: "USA"},
		{Category: "Music", Language: "Spanish", Country: "Mexico"},
		{Category: "Sports", Language: "English", Country: "USA"},
	}
	stats := ComputeStats(facets)

	for name, dist := range map[string][]ValueCount{
		"by_category": stats.ByCategory,
		"by_language": stats.ByLanguage,
		"by_country":  stats.ByCountry,
	} {
		sum := 0
		for i, e := range dist {
			sum += e.Count
			if i > 0 && dist[i-1].Count < e.Count {
				t.Errorf("%s not sorted descending: %v", name, dist)
			}
		}
		if sum != stats.TotalChannels {
			t.Errorf("%s sums to %d, want %d", name, sum, stats.TotalChannels)
		}
	}
	if stats.ByLanguage[0] != (ValueCount{"English", 3}) {
		t.Errorf("by_language[0] = %v, want {English 3}", stats.ByLanguage[0])
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalChannels != 0 {
		t.Errorf("total_channels = %d, want 0", stats.TotalChannels)
	}
	if stats.ByCategory == nil || len(stats.ByCategory) != 0 {
		t.Errorf("by_category = %#v, want empty non-nil slice", stats.ByCategory)
	}
}
