package marketdata

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value  interface{}
	expiry time.Time
}

// ttlCache is a mutex-guarded response cache with per-entry expiry.
// Lookups and stores happen under one lock; two callers that both miss will
// both fetch and the last writer wins, which is acceptable staleness for
// this data.
type ttlCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key if it has not expired.
// Expired entries are removed on lookup.
func (c *ttlCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores a value with the cache's TTL
func (c *ttlCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:  value,
		expiry: time.Now().Add(c.ttl),
	}
}

// Sweep removes all expired entries and reports how many were evicted.
// Called periodically by the scheduler so stale entries do not accumulate
// between lookups.
func (c *ttlCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Purge removes every entry
func (c *ttlCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of entries currently stored, expired or not
func (c *ttlCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
