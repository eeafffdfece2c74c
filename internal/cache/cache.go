package cache

import "sync"

// Cache is a generic thread-safe LRU cache with a soft limit.
// When an insertion pushes the cache past softLimit, the least recently
// used entries are evicted until a quarter of the limit is free.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*node[K, V]
	order     lruList[K, V]
	softLimit int
	onEvict   func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	if softLimit < 0 {
		softLimit = 0
	}
	return &Cache[K, V]{
		entries:   make(map[K]*node[K, V]),
		softLimit: softLimit,
	}
}

// OnEvict sets a hook called for every entry dropped by the soft limit or
// by Retain. It runs after the cache lock is released. Delete and Clear do
// not call it.
func (c *Cache[K, V]) OnEvict(fn func(key K, value V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get retrieves a value and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Peek retrieves a value without touching its access order or the hit
// counters.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Set stores a value, replacing any previous value for key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.store(key, value)
	evicted := c.trim()
	hook := c.onEvict
	c.mu.Unlock()

	notify(hook, evicted)
}

// Delete removes an entry. Returns true if the entry was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.remove(n)
	delete(c.entries, key)
	return true
}

// Retain drops every entry for which keep returns false and reports how
// many were dropped. keep runs under the cache lock.
func (c *Cache[K, V]) Retain(keep func(key K, value V) bool) int {
	c.mu.Lock()
	var dropped []*node[K, V]
	for n := c.order.head; n != nil; {
		next := n.next
		if !keep(n.key, n.value) {
			c.order.remove(n)
			delete(c.entries, n.key)
			dropped = append(dropped, n)
		}
		n = next
	}
	c.evictions += uint64(len(dropped))
	hook := c.onEvict
	c.mu.Unlock()

	notify(hook, dropped)
	return len(dropped)
}

// Clear removes all entries. Counters are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*node[K, V])
	c.order.clear()
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the soft limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.softLimit
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// store inserts or replaces key. Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.order.pushFront(n)
}

// trim evicts the least recently used entries once the soft limit is
// exceeded, down to three quarters of the limit. Caller must hold c.mu.
func (c *Cache[K, V]) trim() []*node[K, V] {
	if c.softLimit <= 0 || len(c.entries) <= c.softLimit {
		return nil
	}
	target := max(c.softLimit*3/4, 1)

	var evicted []*node[K, V]
	for len(c.entries) > target {
		n := c.order.back()
		c.order.remove(n)
		delete(c.entries, n.key)
		evicted = append(evicted, n)
	}
	c.evictions += uint64(len(evicted))
	return evicted
}

func notify[K comparable, V any](hook func(K, V), nodes []*node[K, V]) {
	if hook == nil {
		return
	}
	for _, n := range nodes {
		hook(n.key, n.value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the soft limit.
	Capacity int
	// Hits and Misses count Get lookups.
	Hits   uint64
	Misses uint64
	// HitRate is Hits over all lookups, 0 when there were none.
	HitRate float64
	// Evictions counts entries dropped by the soft limit or Retain.
	Evictions uint64
}
