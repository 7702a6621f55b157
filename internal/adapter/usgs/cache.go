package usgs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/seismic-analysis-service/internal/observability"
	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

// CachedCatalog wraps a CatalogProvider with an in-memory TTL-bounded LRU
// cache. Catalog results go stale as new events arrive, so entries expire
// after the TTL even when recently used.
type CachedCatalog struct {
	inner   seismic.CatalogProvider
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedCatalog creates a cache decorator around a catalog provider.
func NewCachedCatalog(inner seismic.CatalogProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedCatalog {
	return &CachedCatalog{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl),
		metrics: metrics,
	}
}

func (c *CachedCatalog) EventsNearLocation(ctx context.Context, q seismic.CatalogQuery) ([]seismic.Event, error) {
	key := queryKey(q)
	if events, ok := c.cache.get(key); ok {
		c.metrics.CatalogCache.WithLabelValues("hit").Inc()
		return events, nil
	}
	c.metrics.CatalogCache.WithLabelValues("miss").Inc()
	events, err := c.inner.EventsNearLocation(ctx, q)
	if err != nil {
		return nil, err
	}
	// Empty results are cached too; "no recent events" is a valid answer
	// worth reusing until the TTL expires.
	c.cache.put(key, events)
	return events, nil
}

func queryKey(q seismic.CatalogQuery) string {
	return fmt.Sprintf("%.4f,%.4f,%.1f|%d,%d|%.1f|%d",
		q.Latitude, q.Longitude, q.RadiusKm,
		q.StartTime.Unix(), q.EndTime.Unix(),
		q.MinMagnitude, q.Limit)
}

// lruCache is a thread-safe LRU cache of event slices with per-entry expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	value     []seismic.Event
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int, ttl time.Duration) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]seismic.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []seismic.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
