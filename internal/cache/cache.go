// Package cache provides a bounded in-memory key/value cache with lazy TTL expiry.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// General-purpose and gateway tunings. Both coexist: the gateway memoizes
// more responses for longer than ad-hoc callers do.
const (
	DefaultMaxSize = 100
	DefaultTTL     = 5 * time.Minute

	GatewayMaxSize = 200
	GatewayTTL     = 10 * time.Minute
)

type entry struct {
	key      string
	value    any
	storedAt time.Time
}

// Bounded is a TTL cache that evicts the oldest-inserted key when full.
// Eviction follows insertion order, not access order. Values are stored
// as-is: callers must not mutate what they put in or get out.
type Bounded struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List               // front = oldest insertion
	entries map[string]*list.Element // key -> element in order
	now     func() time.Time
}

// New creates a cache holding at most maxSize keys for ttl each
func New(maxSize int, ttl time.Duration) *Bounded {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Bounded{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

// NewGateway creates a cache tuned for metadata API responses
func NewGateway() *Bounded {
	return New(GatewayMaxSize, GatewayTTL)
}

// WithClock replaces the time source (tests)
func (c *Bounded) WithClock(now func() time.Time) *Bounded {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// Set stores value under key with the current timestamp.
// Re-setting a key counts as a fresh insertion.
func (c *Bounded) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}

	if len(c.entries) >= c.maxSize {
		if oldest := c.order.Front(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}

	c.entries[key] = c.order.PushBack(&entry{key: key, value: value, storedAt: c.now()})
}

// Get returns the value for key if present and not older than the TTL.
// A stale entry is evicted as a side effect.
func (c *Bounded) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().Sub(e.storedAt) > c.ttl {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Has reports whether Get would return a value
func (c *Bounded) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key
func (c *Bounded) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
}

// Clear removes every entry
func (c *Bounded) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// Len returns the number of stored keys, stale ones included
func (c *Bounded) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
