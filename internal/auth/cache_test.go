package auth

import (
	"testing"
	"time"
)

func TestAuthCache_MissThenHit(t *testing.T) {
	cache := NewAuthCache(time.Minute)

	if got := cache.Get("key"); got.Hit {
		t.Fatal("expected miss on empty cache")
	}

	cache.Set("key", &ClientContext{ClientID: "c1"})

	got := cache.Get("key")
	if !got.Hit || got.NeedsRefresh {
		t.Fatalf("expected fresh hit, got %+v", got)
	}
	if got.Client.ClientID != "c1" {
		t.Fatalf("unexpected client: %+v", got.Client)
	}
}

func TestAuthCache_StaleRefreshCASWinsOnce(t *testing.T) {
	cache := NewAuthCache(10 * time.Millisecond)
	cache.Set("key", &ClientContext{ClientID: "c1"})

	time.Sleep(20 * time.Millisecond)

	first := cache.Get("key")
	if !first.Hit || !first.NeedsRefresh {
		t.Fatalf("expected stale hit needing refresh, got %+v", first)
	}
	second := cache.Get("key")
	if !second.Hit || second.NeedsRefresh {
		t.Fatalf("expected stale hit without refresh, got %+v", second)
	}
}

func TestAuthCache_Delete(t *testing.T) {
	cache := NewAuthCache(time.Minute)
	cache.Set("key", &ClientContext{ClientID: "c1"})
	cache.Delete("key")

	if got := cache.Get("key"); got.Hit {
		t.Fatal("expected miss after delete")
	}
}
