// Package cache provides short-lived memoization with TTL-based and
// explicit invalidation, decoupled from any specific data source.
//
// Expired entries are evicted lazily the moment a read observes them;
// ClearExpired offers an explicit sweep for memory hygiene on a
// host-driven schedule. There is no background timer.
package cache

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"
	"time"
)

// entry holds one cached value. A zero expiresAt means the entry never
// expires via TTL.
type entry struct {
	value     any
	createdAt time.Time
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Stats reports running counters for cache operations.
type Stats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Deletes int64
	Clears  int64
	Entries int

	// HitRate is the percentage of reads that hit, 0-100.
	HitRate float64
}

// Cache is an in-memory key/value store with per-entry time-to-live.
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry

	hits    int64
	misses  int64
	sets    int64
	deletes int64
	clears  int64

	now      func() time.Time
	onAccess func(hit bool)
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source. Used by tests and hosts that
// drive time cooperatively.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithAccessHook installs a callback invoked on every Get with the
// hit/miss outcome. Used to hook in metrics without coupling the cache
// to a recorder.
func WithAccessHook(fn func(hit bool)) Option {
	return func(c *Cache) {
		c.onAccess = fn
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores a value. A ttl of zero or less means the entry never
// expires via TTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := entry{value: value, createdAt: now}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.entries[key] = e
	c.sets++
}

// Get returns the value for key. A present-but-expired entry is deleted,
// counted as a miss, and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()

	e, ok := c.entries[key]
	if ok && e.expired(c.now()) {
		delete(c.entries, key)
		ok = false
	}
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	hook := c.onAccess
	c.mu.Unlock()

	if hook != nil {
		hook(ok)
	}
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Has reports whether key holds a live entry. Applies the same expiry
// check as Get but does not count toward hit/miss statistics.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && e.expired(c.now()) {
		delete(c.entries, key)
		return false
	}
	return ok
}

// Delete removes a single key. Returns true if an entry was removed.
// Deleting a missing key is not an error.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	c.deletes++
	return true
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	c.clears++
}

// ClearExpired sweeps the whole store once, removing every entry whose
// TTL has passed. Returns the count removed. This is the only proactive
// eviction path.
func (c *Cache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// ClearPattern removes every key matching the glob pattern, where *
// matches any run of characters and the pattern is anchored to the full
// key. Returns the count removed.
//
// Used to invalidate families of keys (e.g. "training_load*") after a
// write that affects multiple cached queries.
func (c *Cache) ClearPattern(pattern string) int {
	re := compileGlob(pattern)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if re.MatchString(key) {
			delete(c.entries, key)
			c.deletes++
			removed++
		}
	}
	return removed
}

// compileGlob turns a * glob into an anchored full-string regexp.
func compileGlob(pattern string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(pattern)
	return regexp.MustCompile("^" + strings.ReplaceAll(quoted, `\*`, ".*") + "$")
}

// Len returns the number of stored entries, including any not yet
// evicted expired ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns every stored key. Order is unspecified.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Stats returns a snapshot of the running counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		Deletes: c.deletes,
		Clears:  c.clears,
		Entries: len(c.entries),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total) * 100
	}
	return s
}

// fallbackEntrySize is charged for values that cannot be serialized
// when estimating memory usage.
const fallbackEntrySize = 64

// MemoryUsage estimates the bytes held by cached values. Values are
// sized by JSON serialization; entries that fail to serialize are
// charged a rough fixed estimate instead of surfacing an error.
func (c *Cache) MemoryUsage() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for key, e := range c.entries {
		total += int64(len(key))
		if data, err := json.Marshal(e.value); err == nil {
			total += int64(len(data))
		} else {
			total += fallbackEntrySize
		}
	}
	return total
}
