// Package state provides the single source of truth for cross-page
// application data, with change notification.
//
// The state is one JSON document addressed by dot-delimited paths
// (e.g. "settings.ftp"). Writing to a path transparently creates
// intermediate objects; reading a missing path returns nil, never an
// error. Subscribers are tracked per top-level key.
//
// Every Set notifies subscribers and emits state:change events
// synchronously, so callers can rely on "after Set returns, all
// listeners have already observed the new value".
package state

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/velodash/appkit/pkg/appkit/event"
)

// DefaultRefreshWindow is the staleness window for NeedsRefresh.
const DefaultRefreshWindow = 5 * time.Minute

// Config configures a Store.
type Config struct {
	// Bus receives state:change emissions. May be nil, in which case
	// the store only notifies direct subscribers.
	Bus *event.Bus

	// Logger receives recovered subscriber panics. May be nil.
	Logger *slog.Logger

	// RefreshWindow is the staleness window for NeedsRefresh.
	// Default: 5 minutes.
	RefreshWindow time.Duration
}

// Store is a reactive tree of application-wide data. Safe for
// concurrent use.
type Store struct {
	mu        sync.Mutex
	doc       []byte
	subs      map[string][]*subscriber
	fetchedAt map[string]time.Time

	bus           *event.Bus
	logger        *slog.Logger
	refreshWindow time.Duration
	now           func() time.Time
}

// subscriber observes one top-level key.
type subscriber struct {
	id string
	fn func(value any)
}

// New creates a Store populated with the documented defaults.
func New(config Config) *Store {
	if config.RefreshWindow <= 0 {
		config.RefreshWindow = DefaultRefreshWindow
	}
	return &Store{
		doc:           []byte(defaultDoc),
		subs:          make(map[string][]*subscriber),
		fetchedAt:     make(map[string]time.Time),
		bus:           config.Bus,
		logger:        config.Logger,
		refreshWindow: config.RefreshWindow,
		now:           time.Now,
	}
}

// topKey returns the first segment of a dot-path.
func topKey(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

// Get returns the value at a dot-path, or nil if the path is absent.
// Missing intermediate nodes are not an error.
func (s *Store) Get(path string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gjson.GetBytes(s.doc, path).Value()
}

// Set writes a value at a dot-path, creating intermediate objects as
// needed, then synchronously notifies subscribers of the path's
// top-level key and emits state:change and state:change:<key> events.
//
// An empty path is logged and ignored; Set never fails for a missing
// intermediate path.
func (s *Store) Set(path string, value any) {
	if path == "" {
		if s.logger != nil {
			s.logger.Warn("state write with empty path ignored")
		}
		return
	}

	key := topKey(path)

	s.mu.Lock()
	oldValue := gjson.GetBytes(s.doc, path).Value()
	doc, err := sjson.SetBytes(s.doc, path, value)
	if err != nil {
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("state write failed",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	s.doc = doc
	keyValue := gjson.GetBytes(s.doc, key).Value()
	subs := append([]*subscriber(nil), s.subs[key]...)
	s.mu.Unlock()

	// Notify outside the lock so subscribers may read or write the
	// store re-entrantly.
	for _, sub := range subs {
		s.notify(sub, key, keyValue)
	}

	if s.bus != nil {
		payload := event.StateChangePayload{
			Key:      key,
			Path:     path,
			Value:    value,
			OldValue: oldValue,
		}
		s.bus.Emit(event.StateChange, payload)
		s.bus.Emit(event.Scoped(event.StateChange, key), payload)
	}
}

// notify runs one subscriber with panic recovery.
func (s *Store) notify(sub *subscriber, key string, value any) {
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Error("state subscriber panicked",
				slog.String("key", key),
				slog.String("subscriber_id", sub.id),
				slog.Any("panic", r),
			)
		}
	}()
	sub.fn(value)
}

// Subscribe registers a callback for writes under a top-level key and
// returns an unsubscribe function. Multiple independent subscriptions
// to the same key do not interfere with each other's lifecycle.
//
// Panics if key is empty or fn is nil.
func (s *Store) Subscribe(key string, fn func(value any)) func() {
	if key == "" {
		panic("state: subscription key cannot be empty")
	}
	if fn == nil {
		panic("state: subscription callback cannot be nil")
	}

	sub := &subscriber{id: uuid.New().String(), fn: fn}

	s.mu.Lock()
	s.subs[key] = append(s.subs[key], sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[key]
		for i, candidate := range subs {
			if candidate.id == sub.id {
				s.subs[key] = append(subs[:i:i], subs[i+1:]...)
				if len(s.subs[key]) == 0 {
					delete(s.subs, key)
				}
				return
			}
		}
	}
}

// SetUser replaces the user subtree and derives the authenticated flag
// from the user's presence.
func (s *Store) SetUser(user any) {
	s.Set("user", user)
	s.Set("auth.isAuthenticated", user != nil)
}

// UpdateSettings shallow-merges a partial object into the settings
// subtree.
func (s *Store) UpdateSettings(partial map[string]any) {
	s.merge("settings", partial)
}

// UpdateHeaderStats shallow-merges a partial object into the header
// stats subtree.
func (s *Store) UpdateHeaderStats(partial map[string]any) {
	s.merge("header", partial)
}

// merge shallow-merges partial into the object at key. A non-object
// current value is replaced wholesale.
func (s *Store) merge(key string, partial map[string]any) {
	s.mu.Lock()
	merged := make(map[string]any)
	if current, ok := gjson.GetBytes(s.doc, key).Value().(map[string]any); ok {
		for k, v := range current {
			merged[k] = v
		}
	}
	s.mu.Unlock()

	for k, v := range partial {
		merged[k] = v
	}
	s.Set(key, merged)
}

// MarkFetched records a fetch timestamp for a data key.
func (s *Store) MarkFetched(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchedAt[key] = s.now()
}

// NeedsRefresh reports whether a data key has never been fetched or its
// last fetch is older than the refresh window. This is a staleness
// check only; it does not trigger a refetch.
func (s *Store) NeedsRefresh(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	fetched, ok := s.fetchedAt[key]
	if !ok {
		return true
	}
	return s.now().Sub(fetched) > s.refreshWindow
}

// ClearCache resets only the fetched-data portion of the tree and the
// fetch timestamps, leaving auth, user, and UI state untouched, then
// emits a state:cache-cleared event. Used after writes that invalidate
// derived analytics.
func (s *Store) ClearCache() {
	s.Set("data", map[string]any{})

	s.mu.Lock()
	s.fetchedAt = make(map[string]time.Time)
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Emit(event.StateCacheCleared, nil)
	}
}

// Reset restores the entire tree to its documented defaults, routed
// through Set per top-level key so subscribers still fire.
func (s *Store) Reset() {
	defaults := gjson.Parse(defaultDoc)
	for _, key := range defaultKeys {
		s.Set(key, defaults.Get(key).Value())
	}

	s.mu.Lock()
	s.fetchedAt = make(map[string]time.Time)
	s.mu.Unlock()
}

// Snapshot returns a copy of the state document as JSON.
func (s *Store) Snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.doc...)
}

// Restore applies a snapshot produced by Snapshot, routed through Set
// per top-level key so subscribers and state:change listeners observe
// the restored values.
func (s *Store) Restore(snapshot []byte) error {
	parsed := gjson.ParseBytes(snapshot)
	if !parsed.IsObject() {
		return ErrBadSnapshot
	}

	for key, value := range parsed.Map() {
		s.Set(key, value.Value())
	}
	return nil
}
