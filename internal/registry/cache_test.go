package registry

import (
	"testing"
	"time"
)

func TestCatalogCache_MissThenHit(t *testing.T) {
	cache := NewCatalogCache(time.Minute)

	if got := cache.Get(); got.Hit {
		t.Fatal("expected miss on empty cache")
	}

	cache.Set([]*ToolDescriptor{{Slug: "a"}, {Slug: "b"}})

	got := cache.Get()
	if !got.Hit || got.NeedsRefresh {
		t.Fatalf("expected fresh hit, got %+v", got)
	}
	if len(got.Tools) != 2 || got.BySlug["b"] == nil {
		t.Fatalf("snapshot not indexed: %+v", got)
	}
}

func TestCatalogCache_StaleServedOnce(t *testing.T) {
	cache := NewCatalogCache(10 * time.Millisecond)
	cache.Set([]*ToolDescriptor{{Slug: "a"}})

	time.Sleep(20 * time.Millisecond)

	first := cache.Get()
	if !first.Hit || !first.NeedsRefresh {
		t.Fatalf("expected stale hit needing refresh, got %+v", first)
	}

	// Only one caller wins the refresh CAS; the rest keep serving stale.
	second := cache.Get()
	if !second.Hit || second.NeedsRefresh {
		t.Fatalf("expected stale hit without refresh, got %+v", second)
	}
}

func TestCatalogCache_SetResetsTTL(t *testing.T) {
	cache := NewCatalogCache(10 * time.Millisecond)
	cache.Set([]*ToolDescriptor{{Slug: "a"}})
	time.Sleep(20 * time.Millisecond)
	cache.Get()

	cache.Set([]*ToolDescriptor{{Slug: "a"}, {Slug: "b"}})

	got := cache.Get()
	if !got.Hit || got.NeedsRefresh {
		t.Fatalf("expected fresh hit after Set, got %+v", got)
	}
	if len(got.Tools) != 2 {
		t.Fatalf("expected new snapshot, got %d tools", len(got.Tools))
	}
}
