package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/voyagen/tvcatalog/internal/cache"
	"github.com/voyagen/tvcatalog/internal/models"
)

// callCounter counts calls that reach the wrapped store.
type callCounter struct {
	Store
	lists, gets, facets int
}

func (c *callCounter) ListChannels(ctx context.Context, f ChannelFilter) ([]models.Channel, int, error) {
	c.lists++
	return c.Store.ListChannels(ctx, f)
}

func (c *callCounter) GetChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	c.gets++
	return c.Store.GetChannelByID(ctx, id)
}

func (c *callCounter) ListChannelFacets(ctx context.Context) ([]models.ChannelFacets, error) {
	c.facets++
	return c.Store.ListChannelFacets(ctx)
}

func exerciseCachedStore(t *testing.T, backend cache.Backend) {
	t.Helper()
	ctx := context.Background()
	inner := &callCounter{Store: NewMemory(testChannels())}
	cs := NewCachedStore(inner, backend, time.Minute)

	filter := ChannelFilter{Category: "News", Limit: 2}
	for i := 0; i < 2; i++ {
		got, total, err := cs.ListChannels(ctx, filter)
		if err != nil {
			t.Fatalf("ListChannels: %v", err)
		}
		if total != 3 || !equalStrings(names(got), []string{"BBC News", "France 24"}) {
			t.Errorf("call %d: total=%d names=%v", i, total, names(got))
		}
	}
	if inner.lists != 1 {
		t.Errorf("inner ListChannels calls = %d, want 1", inner.lists)
	}

	// A different page is a different key.
	if _, _, err := cs.ListChannels(ctx, ChannelFilter{Category: "News", Limit: 2, Offset: 2}); err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if inner.lists != 2 {
		t.Errorf("inner ListChannels calls = %d, want 2", inner.lists)
	}

	for i := 0; i < 2; i++ {
		ch, err := cs.GetChannelByID(ctx, "33333333-3333-3333-3333-333333333333")
		if err != nil || ch.Name != "Arte" {
			t.Fatalf("GetChannelByID = %+v, %v", ch, err)
		}
	}
	if inner.gets != 1 {
		t.Errorf("inner GetChannelByID calls = %d, want 1", inner.gets)
	}

	if _, err := cs.GetChannelByID(ctx, "99999999-9999-9999-9999-999999999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := cs.ListChannelFacets(ctx); err != nil {
			t.Fatalf("ListChannelFacets: %v", err)
		}
	}
	if inner.facets != 2 {
		t.Errorf("inner ListChannelFacets calls = %d, want 2 (never cached)", inner.facets)
	}
}

func TestCachedStore_Local(t *testing.T) {
	exerciseCachedStore(t, cache.NewLocal(100, time.Minute))
}

// failingBackend errors on every call, as an unreachable Redis would.
type failingBackend struct{}

func (failingBackend) GetBytes(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingBackend) SetBytes(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestCachedStore_BackendDown(t *testing.T) {
	ctx := context.Background()
	inner := &callCounter{Store: NewMemory(testChannels())}
	cs := NewCachedStore(inner, failingBackend{}, time.Minute)

	got, total, err := cs.ListChannels(ctx, ChannelFilter{})
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if total != 5 || len(got) != 5 {
		t.Errorf("total=%d len=%d, want 5/5", total, len(got))
	}
	if err := cs.Ping(ctx); err != nil {
		t.Errorf("Ping = %v, want nil while only the cache is down", err)
	}
}
