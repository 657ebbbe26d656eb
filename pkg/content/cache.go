package content

import (
	"sync"

	"github.com/google/uuid"
)

type cacheEntry struct {
	content *Content
	version uint64
}

// Cache holds one assembled document per tenant, each with a monotonically
// increasing version. Invalidation bumps the version without storing a
// document; a refresh computed against an older version is discarded, so a
// slow aggregation can never overwrite the result of a newer one.
type Cache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*cacheEntry
}

// NewCache creates an empty content cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uuid.UUID]*cacheEntry)}
}

// Get returns the cached document for a tenant, if one is stored.
func (c *Cache) Get(tenantID uuid.UUID) (*Content, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tenantID]
	if !ok || e.content == nil {
		return nil, false
	}
	return e.content, true
}

// Version returns the tenant's current cache version. A refresh records this
// before aggregating and hands it back to Put.
func (c *Cache) Version(tenantID uuid.UUID) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[tenantID]; ok {
		return e.version
	}
	return 0
}

// Put stores a document computed against basedOn. It reports false, storing
// nothing, when the tenant's version has moved past basedOn in the meantime.
func (c *Cache) Put(tenantID uuid.UUID, content *Content, basedOn uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[tenantID]
	if !ok {
		e = &cacheEntry{}
		c.entries[tenantID] = e
	}
	if e.version != basedOn {
		return false
	}
	e.content = content
	e.version++
	return true
}

// Invalidate drops a tenant's document and bumps its version, so in-flight
// refreshes started before the invalidation are discarded.
func (c *Cache) Invalidate(tenantID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tenantID]
	if !ok {
		c.entries[tenantID] = &cacheEntry{version: 1}
		return
	}
	e.content = nil
	e.version++
}

// InvalidateAll drops every tenant's document. Used when global state such as
// the active theme changes.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.content = nil
		e.version++
	}
}
