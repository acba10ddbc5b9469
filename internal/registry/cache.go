package registry

import (
	"sync/atomic"
	"time"
)

// CatalogCache is a TTL-based cache with stale-while-revalidate for whole
// catalog snapshots. The catalog changes rarely, so one snapshot pointer
// with lock-free reads covers the hot path.
type CatalogCache struct {
	current atomic.Pointer[catalogSnapshot]
	ttl     time.Duration
}

type catalogSnapshot struct {
	tools      []*ToolDescriptor
	bySlug     map[string]*ToolDescriptor
	expiresAt  time.Time
	refreshing atomic.Bool
}

// CacheGetResult holds the result of a snapshot lookup.
type CacheGetResult struct {
	Tools        []*ToolDescriptor
	BySlug       map[string]*ToolDescriptor
	Hit          bool // true if a snapshot exists (fresh or stale)
	NeedsRefresh bool // true if expired — caller should refresh in background
}

// NewCatalogCache creates a cache with the given TTL.
func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{ttl: ttl}
}

// Get performs a non-blocking snapshot lookup.
// Returns stale snapshots with NeedsRefresh=true when expired.
func (c *CatalogCache) Get() CacheGetResult {
	snap := c.current.Load()
	if snap == nil {
		return CacheGetResult{Hit: false}
	}

	if time.Now().Before(snap.expiresAt) {
		return CacheGetResult{Tools: snap.tools, BySlug: snap.bySlug, Hit: true}
	}

	// Stale hit — only one goroutine wins the CAS and refreshes
	needsRefresh := snap.refreshing.CompareAndSwap(false, true)
	return CacheGetResult{
		Tools:        snap.tools,
		BySlug:       snap.bySlug,
		Hit:          true,
		NeedsRefresh: needsRefresh,
	}
}

// Set installs a new snapshot with a fresh TTL.
func (c *CatalogCache) Set(tools []*ToolDescriptor) {
	bySlug := make(map[string]*ToolDescriptor, len(tools))
	for _, t := range tools {
		bySlug[t.Slug] = t
	}
	c.current.Store(&catalogSnapshot{
		tools:     tools,
		bySlug:    bySlug,
		expiresAt: time.Now().Add(c.ttl),
	})
}
