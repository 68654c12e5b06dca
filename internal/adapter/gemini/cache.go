package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/observability"
)

// CachedDescriber wraps an AreaDescriber with an in-memory LRU cache.
// Area labels are display-only decoration, so serving a recent label
// for a nearby coordinate is always acceptable; resolution results
// are never cached anywhere.
type CachedDescriber struct {
	inner   domain.AreaDescriber
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedDescriber creates a cache decorator around a describer.
// Keys round coordinates to 4 decimal places, about 11 m of position.
func NewCachedDescriber(inner domain.AreaDescriber, maxEntries int, metrics *observability.Metrics) *CachedDescriber {
	return &CachedDescriber{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedDescriber) DescribeArea(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)
	if label, ok := c.cache.get(key); ok {
		c.metrics.AreaCache.WithLabelValues("hit").Inc()
		return label, nil
	}
	c.metrics.AreaCache.WithLabelValues("miss").Inc()

	label, err := c.inner.DescribeArea(ctx, lat, lng)
	if err != nil {
		return label, err
	}
	// Only cache non-empty labels so transient blank replies can be retried.
	if label != "" {
		c.cache.put(key, label)
	}
	return label, nil
}

// lruCache is a simple thread-safe LRU cache for area labels.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value string
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
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
