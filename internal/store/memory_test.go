package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/voyagen/tvcatalog/internal/models"
)

func testChannels() []models.Channel {
	return []models.Channel{
		{ID: "11111111-1111-1111-1111-111111111111", Name: "Tech News Network", Category: "News", Language: "English", Country: "USA"},
		{ID: "22222222-2222-2222-2222-222222222222", Name: "Sports Central", Category: "Sports", Language: "English", Country: "USA"},
		{ID: "33333333-3333-3333-3333-333333333333", Name: "Arte", Category: "Culture", Language: "French", Country: "France"},
		{ID: "44444444-4444-4444-4444-444444444444", Name: "BBC News", Category: "News", Language: "English", Country: "UK"},
		{ID: "55555555-5555-5555-5555-555555555555", Name: "France 24", Category: "News", Language: "French", Country: "France"},
	}
}

func names(chs []models.Channel) []string {
	out := make([]string, len(chs))
	for i, ch := range chs {
		out[i] = ch.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMemory_ListChannels(t *testing.T) {
	m := NewMemory(testChannels())
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    ChannelFilter
		wantNames []string
		wantTotal int
	}{
		{"no filter ordered by name", ChannelFilter{}, []string{"Arte", "BBC News", "France 24", "Sports Central", "Tech News Network"}, 5},
		{"category", ChannelFilter{Category: "News"}, []string{"BBC News", "France 24", "Tech News Network"}, 3},
		{"category and language", ChannelFilter{Category: "News", Language: "French"}, []string{"France 24"}, 1},
		{"country", ChannelFilter{Country: "USA"}, []string{"Sports Central", "Tech News Network"}, 2},
		{"search case-insensitive", ChannelFilter{Search: "tech"}, []string{"Tech News Network"}, 1},
		{"search substring", ChannelFilter{Search: "NEWS"}, []string{"BBC News", "Tech News Network"}, 2},
		{"exact match is case-sensitive", ChannelFilter{Category: "news"}, []string{}, 0},
		{"page", ChannelFilter{Limit: 2, Offset: 2}, []string{"France 24", "Sports Central"}, 5},
		{"page past end", ChannelFilter{Limit: 2, Offset: 10}, []string{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := m.ListChannels(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListChannels: %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if !equalStrings(names(got), tt.wantNames) {
				t.Errorf("names = %v, want %v", names(got), tt.wantNames)
			}
		})
	}
}

func TestMemory_GetChannelByID(t *testing.T) {
	m := NewMemory(testChannels())
	ctx := context.Background()

	ch, err := m.GetChannelByID(ctx, "33333333-3333-3333-3333-333333333333")
	if err != nil {
		t.Fatalf("GetChannelByID: %v", err)
	}
	if ch.Name != "Arte" {
		t.Errorf("Name = %q, want Arte", ch.Name)
	}

	if _, err := m.GetChannelByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemory_ListChannelFacets_InsertionOrder(t *testing.T) {
	m := NewMemory(testChannels())
	facets, err := m.ListChannelFacets(context.Background())
	if err != nil {
		t.Fatalf("ListChannelFacets: %v", err)
	}
	if len(facets) != 5 {
		t.Fatalf("len = %d, want 5", len(facets))
	}
	if facets[0].Category != "News" || facets[2].Country != "France" {
		t.Errorf("facets out of insertion order: %+v", facets)
	}
}

func TestMemory_AssignsMissingIDs(t *testing.T) {
	m := NewMemory([]models.Channel{{Name: "No ID"}})
	got, _, err := m.ListChannels(context.Background(), ChannelFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(got[0].ID); err != nil {
		t.Errorf("generated id %q is not a UUID", got[0].ID)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	m := NewMemory(testChannels())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := m.ListChannels(ctx, ChannelFilter{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadMemoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.yaml")
	data := []byte(`channels:
  - id: 9b2f1c3e-4a5d-4e6f-8a7b-1c2d3e4f5a6b
    name: Kids Planet
    category: Kids
    language: Spanish
    country: Mexico
    stream_url: https://example.com/kids.m3u8
    logo_url: https://example.com/kids.png
    created_at: 2024-01-02T03:04:05Z
  - name: Cartoon Time
    category: Kids
    language: English
    country: USA
    stream_url: https://example.com/cartoon.m3u8
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMemoryFile(path)
	if err != nil {
		t.Fatalf("LoadMemoryFile: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	ch, err := m.GetChannelByID(context.Background(), "9B2F1C3E-4A5D-4E6F-8A7B-1C2D3E4F5A6B")
	if err != nil {
		t.Fatalf("GetChannelByID: %v", err)
	}
	if ch.LogoURL == nil || *ch.LogoURL != "https://example.com/kids.png" {
		t.Errorf("LogoURL = %v", ch.LogoURL)
	}
	if ch.Description != nil {
		t.Errorf("Description = %v, want nil", *ch.Description)
	}
	if ch.CreatedAt.Year() != 2024 {
		t.Errorf("CreatedAt = %v", ch.CreatedAt)
	}
}

func TestLoadMemoryFile_InvalidID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.yaml")
	if err := os.WriteFile(path, []byte("channels:\n  - id: not-a-uuid\n    name: Broken\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMemoryFile(path); err == nil {
		t.Fatal("expected error for invalid id")
	}
}
