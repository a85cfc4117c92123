package appkit

import (
	"log/slog"
	"time"

	"github.com/velodash/appkit/pkg/appkit/config"
	"github.com/velodash/appkit/pkg/appkit/observability"
	"github.com/velodash/appkit/pkg/appkit/router"
	"github.com/velodash/appkit/pkg/appkit/state"
	"github.com/velodash/appkit/pkg/appkit/store"
)

// appConfig holds construction-time settings for an App.
type appConfig struct {
	logger          *slog.Logger
	historyCapacity int
	defaultPage     string
	titles          map[string]string
	history         router.History
	chrome          router.Chrome
	local           store.Store
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	refreshWindow   time.Duration
}

// defaultAppConfig returns the default App configuration.
func defaultAppConfig() appConfig {
	return appConfig{
		historyCapacity: 100,
		defaultPage:     router.DefaultPage,
		refreshWindow:   state.DefaultRefreshWindow,
	}
}

// Option configures an App.
type Option func(*appConfig)

// WithLogger sets the structured logger used across all components.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *appConfig) {
		c.logger = logger
	}
}

// WithHistoryCapacity sets how many event emissions the bus retains for
// debugging. Default: 100.
func WithHistoryCapacity(n int) Option {
	return func(c *appConfig) {
		if n > 0 {
			c.historyCapacity = n
		}
	}
}

// WithDefaultPage sets the startup page when the history carries no
// location. Default: "overview".
func WithDefaultPage(page string) Option {
	return func(c *appConfig) {
		if page != "" {
			c.defaultPage = page
		}
	}
}

// WithPageTitles overrides the builtin page title table.
func WithPageTitles(titles map[string]string) Option {
	return func(c *appConfig) {
		c.titles = titles
	}
}

// WithHistory sets the host navigation history.
// Default: an empty in-memory history.
func WithHistory(h router.History) Option {
	return func(c *appConfig) {
		c.history = h
	}
}

// WithChrome sets the host navigation surface (menu highlighting,
// window title, error views). Default: none.
func WithChrome(chrome router.Chrome) Option {
	return func(c *appConfig) {
		c.chrome = chrome
	}
}

// WithLocalStore sets the durable storage backend used by SaveState and
// RestoreState. Default: in-memory storage.
//
// The App takes ownership: Close closes the store.
func WithLocalStore(s store.Store) Option {
	return func(c *appConfig) {
		c.local = s
	}
}

// WithMetrics enables metrics recording for navigations, event
// emissions, and cache reads. Default: none.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *appConfig) {
		c.metrics = m
	}
}

// WithSpans enables trace spans around navigations and page lifecycle
// hooks. Default: none.
func WithSpans(s observability.SpanManager) Option {
	return func(c *appConfig) {
		c.spans = s
	}
}

// WithRefreshWindow sets how long fetched data is considered fresh by
// the state store's NeedsRefresh. Default: 5 minutes.
func WithRefreshWindow(d time.Duration) Option {
	return func(c *appConfig) {
		if d > 0 {
			c.refreshWindow = d
		}
	}
}

// FromConfig derives construction options from loaded settings.
// Recognized keys:
//
//	default_page     string        startup page
//	history_capacity int           bus emission history size
//	refresh_window   duration      data freshness window
//	titles           map           page title overrides
//	storage:
//	  path           string        SQLite database path
//
// A storage path opens a SQLite store; errors from opening it are
// returned so the caller can decide whether to continue without
// persistence.
func FromConfig(cfg config.Config) ([]Option, error) {
	opts := []Option{
		WithDefaultPage(cfg.String("default_page", router.DefaultPage)),
		WithHistoryCapacity(cfg.Int("history_capacity", 100)),
		WithRefreshWindow(cfg.Duration("refresh_window", state.DefaultRefreshWindow)),
	}

	if titles := cfg.StringMap("titles", nil); titles != nil {
		opts = append(opts, WithPageTitles(titles))
	}

	if path := cfg.Section("storage").String("path", ""); path != "" {
		local, err := store.NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLocalStore(local))
	}

	return opts, nil
}
