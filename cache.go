package monitor

import (
	"crypto/sha1"
	"fmt"
	"sync"
	"time"
)

// Cache is the process-local freshness cache wrapping fetch and parse
// results. Entries live for a static per-source TTL; there is no durable
// or cross-process component. Concurrent callers missing the same key are
// not deduplicated in flight: both fetch, both parse, and the results are
// identical, so the only cost is the duplicate work.
type Cache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value       any
	fingerprint string
	expires     time.Time
}

// NewCache returns an empty cache on the wall clock.
func NewCache() *Cache {
	return &Cache{now: time.Now, entries: make(map[string]cacheEntry)}
}

// SetClock replaces the cache's notion of now. Tests use it to step
// through TTL expiry deterministically.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Cache) get(key string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || (!e.expires.IsZero() && c.now().After(e.expires)) {
		return cacheEntry{}, false
	}
	return e, true
}

func (c *Cache) put(key string, e cacheEntry, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
}

// Fingerprint hashes a raw payload for parse-level caching.
func Fingerprint(raw []byte) string {
	return fmt.Sprintf("%x", sha1.Sum(raw))
}

// Cached returns the value under key, filling it via fill on a miss or
// after TTL expiry. A fill failure is not cached; the next caller tries
// again.
func Cached[T any](c *Cache, key string, ttl time.Duration, fill func() (T, error)) (T, error) {
	if e, ok := c.get(key); ok {
		return e.value.(T), nil
	}
	v, err := fill()
	if err != nil {
		return v, err
	}
	c.put(key, cacheEntry{value: v}, ttl)
	return v, nil
}

// ParseCached returns the parsed form of raw for a logical source,
// reparsing only when the payload bytes actually changed. A byte
// identical re-download therefore skips the parse even after the fetch
// TTL for the same source has expired. One entry per source is kept.
func ParseCached[T any](c *Cache, source string, raw []byte, parse func([]byte) (T, error)) (T, error) {
	key := "parse:" + source
	fp := Fingerprint(raw)
	if e, ok := c.get(key); ok && e.fingerprint == fp {
		return e.value.(T), nil
	}
	v, err := parse(raw)
	if err != nil {
		return v, err
	}
	c.put(key, cacheEntry{value: v, fingerprint: fp}, 0)
	return v, nil
}
