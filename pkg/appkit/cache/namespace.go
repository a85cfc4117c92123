package cache

import "time"

// Namespace is a view of a Cache that prefixes every key with
// "<prefix>:", giving callers an isolated sub-cache without key
// collisions. All operations delegate to the parent cache, so
// statistics and TTL behavior are shared.
type Namespace struct {
	parent *Cache
	prefix string
}

// Namespace returns a bound view over the given prefix.
func (c *Cache) Namespace(prefix string) *Namespace {
	return &Namespace{parent: c, prefix: prefix + ":"}
}

func (n *Namespace) key(key string) string {
	return n.prefix + key
}

// Set stores a value under the namespaced key.
func (n *Namespace) Set(key string, value any, ttl time.Duration) {
	n.parent.Set(n.key(key), value, ttl)
}

// Get returns the value for the namespaced key.
func (n *Namespace) Get(key string) (any, bool) {
	return n.parent.Get(n.key(key))
}

// Has reports whether the namespaced key holds a live entry.
func (n *Namespace) Has(key string) bool {
	return n.parent.Has(n.key(key))
}

// Delete removes the namespaced key.
func (n *Namespace) Delete(key string) bool {
	return n.parent.Delete(n.key(key))
}

// Clear removes every entry in this namespace, leaving the rest of the
// parent cache untouched.
func (n *Namespace) Clear() int {
	return n.parent.ClearPattern(n.prefix + "*")
}
