package appkit

import (
	"context"
	"log/slog"
	"time"

	"github.com/velodash/appkit/pkg/appkit/cache"
	"github.com/velodash/appkit/pkg/appkit/event"
	"github.com/velodash/appkit/pkg/appkit/router"
	"github.com/velodash/appkit/pkg/appkit/state"
	"github.com/velodash/appkit/pkg/appkit/store"
)

// snapshotKey is the storage key under which SaveState persists the
// state document.
const snapshotKey = "appstate"

// App wires the runtime components together: one bus, one state store,
// one cache, one router, and an optional storage backend.
type App struct {
	bus    *event.Bus
	state  *state.Store
	cache  *cache.Cache
	router *router.Router
	local  store.Store
	logger *slog.Logger
}

// New constructs an App. All components share the configured logger and
// observability hooks.
func New(opts ...Option) *App {
	cfg := defaultAppConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.local == nil {
		cfg.local = store.NewMemoryStore()
	}

	busCfg := event.BusConfig{
		HistoryCapacity: cfg.historyCapacity,
		Logger:          cfg.logger,
	}
	if cfg.metrics != nil {
		metrics := cfg.metrics
		busCfg.OnEmit = func(name string, listeners int) {
			metrics.RecordEmit(context.Background(), name, listeners)
		}
	}
	bus := event.NewBus(busCfg)

	st := state.New(state.Config{
		Bus:           bus,
		Logger:        cfg.logger,
		RefreshWindow: cfg.refreshWindow,
	})

	var cacheOpts []cache.Option
	if cfg.metrics != nil {
		metrics := cfg.metrics
		cacheOpts = append(cacheOpts, cache.WithAccessHook(func(hit bool) {
			metrics.RecordCacheAccess(context.Background(), hit)
		}))
	}
	dataCache := cache.New(cacheOpts...)

	rt := router.New(bus, st, router.Config{
		DefaultPage: cfg.defaultPage,
		Titles:      cfg.titles,
		History:     cfg.history,
		Chrome:      cfg.chrome,
		Logger:      cfg.logger,
		Metrics:     cfg.metrics,
		Spans:       cfg.spans,
	})

	return &App{
		bus:    bus,
		state:  st,
		cache:  dataCache,
		router: rt,
		local:  cfg.local,
		logger: cfg.logger,
	}
}

// Bus returns the event bus.
func (a *App) Bus() *event.Bus { return a.bus }

// State returns the state store.
func (a *App) State() *state.Store { return a.state }

// Cache returns the data cache.
func (a *App) Cache() *cache.Cache { return a.cache }

// Router returns the page router.
func (a *App) Router() *router.Router { return a.router }

// Local returns the durable storage backend.
func (a *App) Local() store.Store { return a.local }

// RegisterPage adds a page module to the router's registry.
func (a *App) RegisterPage(name string, page router.Page) {
	a.router.RegisterPage(name, page)
}

// Start performs one-time startup: restores any persisted state
// snapshot and runs the router's initial navigation.
//
// A missing or corrupt snapshot is logged and ignored; the app starts
// from defaults. A failed initial navigation is returned.
func (a *App) Start(ctx context.Context) error {
	if err := a.RestoreState(); err != nil {
		if a.logger != nil {
			a.logger.Warn("persisted state ignored",
				slog.String("error", err.Error()),
			)
		}
	}
	return a.router.Init(ctx)
}

// NavigateTo transitions to the named page.
func (a *App) NavigateTo(ctx context.Context, page string) error {
	return a.router.NavigateTo(ctx, page)
}

// Refresh re-loads the current page in place.
func (a *App) Refresh(ctx context.Context) error {
	return a.router.Refresh(ctx)
}

// SaveState persists the current state document to local storage.
func (a *App) SaveState() error {
	return a.local.Save(snapshotKey, a.state.Snapshot())
}

// RestoreState loads the persisted state document, if any, into the
// state store. A missing snapshot is not an error.
func (a *App) RestoreState() error {
	snapshot, err := a.local.Load(snapshotKey)
	if err != nil {
		if err == store.ErrNotFound {
			return nil
		}
		return err
	}
	return a.state.Restore(snapshot)
}

// ClearCaches drops both the data cache and the state store's fetch
// bookkeeping, forcing the next page load to re-fetch everything.
func (a *App) ClearCaches() {
	removed := a.cache.Len()
	a.cache.Clear()
	a.state.ClearCache()
	a.bus.Emit(event.CacheRebuilt, event.CacheRebuiltPayload{
		Pattern: "*",
		Removed: removed,
	})
}

// Close shuts the app down: the current page is unloaded, the state is
// persisted, and the storage backend is closed.
func (a *App) Close(ctx context.Context) error {
	a.router.Shutdown(ctx)
	if err := a.SaveState(); err != nil && a.logger != nil {
		a.logger.Warn("state persistence failed on shutdown",
			slog.String("error", err.Error()),
		)
	}
	return a.local.Close()
}

// MarkFetched records that data for key was fetched now, and caches the
// value under the same key.
func (a *App) MarkFetched(key string, value any, ttl time.Duration) {
	a.cache.Set(key, value, ttl)
	a.state.MarkFetched(key)
}

// Stale reports whether data for key should be re-fetched: missing from
// the cache or outside the state store's freshness window.
func (a *App) Stale(key string) bool {
	if !a.cache.Has(key) {
		return true
	}
	return a.state.NeedsRefresh(key)
}
