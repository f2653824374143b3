package collector

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"BazarPulse/internal/model"
)

// Cache is a thread-safe TTL cache for catalog fetches. A
// singleflight.Group collapses concurrent refreshes for the same endpoint
// into one upstream request, so a burst of callers after expiry costs a
// single round trip.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	group   singleflight.Group
}

type cacheEntry struct {
	products  []model.Product
	fetchedAt time.Time
}

// NewCache creates an empty cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

// get returns cached products if present and fresh.
func (c *Cache) get(key string) ([]model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Since(e.fetchedAt) > c.ttl {
		return nil, false
	}
	return e.products, true
}

func (c *Cache) put(key string, products []model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{products: products, fetchedAt: time.Now()}
}

// Fetch returns cached products for key, refreshing via fetch on a miss.
// A failed refresh is not cached; the next caller retries.
func (c *Cache) Fetch(key string, fetch func() ([]model.Product, error)) ([]model.Product, error) {
	if products, ok := c.get(key); ok {
		return products, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have refreshed while we waited for the flight.
		if products, ok := c.get(key); ok {
			return products, nil
		}
		products, err := fetch()
		if err != nil {
			return nil, err
		}
		c.put(key, products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Product), nil
}

// Invalidate drops the cached entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
