// Package router implements the page-lifecycle state machine for the
// appkit runtime.
//
// # Overview
//
// The router owns a registry of named Page modules and moves between
// two states: idle (no navigation in progress) and navigating (one
// transition in flight). A transition tears down the current page,
// updates history and navigation chrome, records the new page in the
// application state, runs the incoming page's lifecycle hooks, and
// announces the result on the event bus.
//
// Concurrent navigation requests are dropped, not queued: a second
// request observed while one is in flight is ignored with a log line
// and ErrNavigationInFlight. The system favors predictability over
// queuing complexity.
//
// # Error Taxonomy
//
//   - page not found: non-fatal, inline error view, no state mutation
//   - lifecycle hook error (OnHide/OnShow): logged, transition continues
//   - load error: fatal to the transition only; inline error view,
//     data:error event, router returns to idle
//
// A page whose Load never returns keeps the router navigating until it
// settles; the router imposes no deadline of its own.
package router

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/velodash/appkit/pkg/appkit/event"
	"github.com/velodash/appkit/pkg/appkit/observability"
	"github.com/velodash/appkit/pkg/appkit/state"
)

// DefaultPage is the navigation target when the history carries no
// location at startup.
const DefaultPage = "overview"

// currentPagePath is the state path the router keeps in sync with the
// current page name.
const currentPagePath = "ui.currentPage"

// Config configures a Router. Zero-value fields fall back to defaults.
type Config struct {
	// DefaultPage is the startup target when the history is empty.
	// Default: "overview".
	DefaultPage string

	// Titles overrides the builtin page title table.
	Titles map[string]string

	// History is the host navigation history. Default: an empty
	// MemoryHistory.
	History History

	// Chrome is the host navigation surface. Default: NoopChrome.
	Chrome Chrome

	// Logger receives navigation and hook failure logs. May be nil.
	Logger *slog.Logger

	// Metrics records navigation outcomes. Default: NoopMetrics.
	Metrics observability.MetricsRecorder

	// Spans traces transitions and hooks. Default: NoopSpanManager.
	Spans observability.SpanManager
}

// Router is the navigation state machine. Safe for concurrent use; at
// most one transition runs at a time.
type Router struct {
	bus   *event.Bus
	state *state.Store

	defaultPage string
	titles      map[string]string
	history     History
	chrome      Chrome
	logger      *slog.Logger
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager

	mu       sync.RWMutex
	pages    map[string]Page
	current  string
	inFlight string

	navigating atomic.Bool
}

// New creates a Router. The bus is required; the state store may be nil
// for hosts that do not track the current page in application state.
func New(bus *event.Bus, st *state.Store, config Config) *Router {
	if bus == nil {
		panic("router: event bus cannot be nil")
	}
	if config.DefaultPage == "" {
		config.DefaultPage = DefaultPage
	}
	if config.History == nil {
		config.History = NewMemoryHistory("")
	}
	if config.Chrome == nil {
		config.Chrome = NoopChrome{}
	}
	if config.Metrics == nil {
		config.Metrics = observability.NoopMetrics{}
	}
	if config.Spans == nil {
		config.Spans = observability.NoopSpanManager{}
	}

	return &Router{
		bus:         bus,
		state:       st,
		defaultPage: config.DefaultPage,
		titles:      config.Titles,
		history:     config.History,
		chrome:      config.Chrome,
		logger:      config.Logger,
		metrics:     config.Metrics,
		spans:       config.Spans,
		pages:       make(map[string]Page),
	}
}

// RegisterPage adds a page module to the registry. The last
// registration for a name wins; a replaced module's OnUnload hook is
// invoked so it can release resources.
//
// Panics if name is empty or page is nil.
func (r *Router) RegisterPage(name string, page Page) {
	if name == "" {
		panic("router: page name cannot be empty")
	}
	if page == nil {
		panic("router: page cannot be nil")
	}

	r.mu.Lock()
	replaced := r.pages[name]
	r.pages[name] = page
	r.mu.Unlock()

	if replaced != nil {
		r.unload(context.Background(), name, replaced)
	}
}

// Pages returns the registered page names. Order is unspecified.
func (r *Router) Pages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	return names
}

// CurrentPage returns the name of the current page, or "" before the
// first successful navigation.
func (r *Router) CurrentPage() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// IsNavigating reports whether a transition is in flight.
func (r *Router) IsNavigating() bool {
	return r.navigating.Load()
}

// NavigateTo transitions to the named page, pushing a history entry
// when the location changes.
//
// Returns ErrNavigationInFlight when dropped by the single-flight
// guard, ErrPageNotFound for an unregistered target, or a
// *NavigationError when the page's Load fails. Hook failures are
// logged and do not fail the transition.
func (r *Router) NavigateTo(ctx context.Context, target string) error {
	return r.navigate(ctx, target, true)
}

func (r *Router) navigate(ctx context.Context, target string, updateHistory bool) error {
	// Drop, don't queue: one transition at a time.
	if r.navigating.Load() {
		observability.LogNavigationDropped(r.logger, target, r.inFlightPage())
		return ErrNavigationInFlight
	}

	r.mu.RLock()
	page, registered := r.pages[target]
	prevName := r.current
	prevPage := r.pages[prevName]
	r.mu.RUnlock()

	if !registered {
		observability.LogPageNotFound(r.logger, target)
		r.chrome.ShowError(target, ErrPageNotFound)
		return ErrPageNotFound
	}

	if !r.navigating.CompareAndSwap(false, true) {
		observability.LogNavigationDropped(r.logger, target, r.inFlightPage())
		return ErrNavigationInFlight
	}
	// Always return to idle so a failed navigation cannot wedge the
	// router.
	defer r.navigating.Store(false)
	r.setInFlight(target)
	defer r.setInFlight("")

	done := observability.TimedOperation()
	ctx, span := r.spans.StartNavigationSpan(ctx, target)
	observability.LogNavigationStart(r.logger, target)

	var navErr error
	defer func() {
		r.spans.EndSpanWithError(span, navErr)
		elapsed := time.Duration(done() * float64(time.Millisecond))
		r.metrics.RecordNavigation(ctx, target, elapsed, navErr)
	}()

	// Tear down the current page. A failing OnHide must not block
	// navigation.
	if prevPage != nil {
		r.bus.Emit(event.PageUnload, event.PageUnloadPayload{Page: prevName})
		if hider, ok := prevPage.(Hider); ok {
			hctx, hspan := r.spans.StartHookSpan(ctx, prevName, "onHide")
			err := hider.OnHide(hctx)
			r.spans.EndSpanWithError(hspan, err)
			if err != nil {
				observability.LogHookError(r.logger, prevName, "onHide", err)
			}
		}
	}

	if updateHistory && r.history.Current() != target {
		r.history.Push(target)
	}

	r.chrome.SetActivePage(target)
	r.chrome.SetTitle(titleFor(target, r.titles))

	if r.state != nil {
		r.state.Set(currentPagePath, target)
	}

	if shower, ok := page.(Shower); ok {
		sctx, sspan := r.spans.StartHookSpan(ctx, target, "onShow")
		err := shower.OnShow(sctx)
		r.spans.EndSpanWithError(sspan, err)
		if err != nil {
			observability.LogHookError(r.logger, target, "onShow", err)
		}
	}

	lctx, lspan := r.spans.StartHookSpan(ctx, target, "load")
	err := page.Load(lctx)
	r.spans.EndSpanWithError(lspan, err)
	if err != nil {
		// Fatal to this transition only.
		r.chrome.ShowError(target, err)
		r.bus.Emit(event.DataError, event.DataErrorPayload{
			Context: "navigation",
			Page:    target,
			Err:     err,
		})
		navErr = &NavigationError{Page: target, Phase: PhaseLoad, Err: err}
		observability.LogNavigationError(r.logger, target, err, done())
		return navErr
	}

	r.mu.Lock()
	r.current = target
	r.mu.Unlock()

	r.bus.Emit(event.PageLoad, event.PageLoadPayload{Page: target})
	observability.LogNavigationComplete(r.logger, target, done())
	return nil
}

// Init performs one-time startup: installs the history pop handler,
// resolves the initial page from the current location (falling back to
// the configured default), performs the first navigation, and emits
// router:ready.
func (r *Router) Init(ctx context.Context) error {
	r.history.OnPop(func(page string) {
		// Pop-driven navigation re-uses the existing entry; no push.
		if err := r.navigate(context.Background(), page, false); err != nil && r.logger != nil {
			r.logger.Warn("history navigation failed",
				slog.String("page", page),
				slog.String("error", err.Error()),
			)
		}
	})

	initial := r.history.Current()
	if initial == "" {
		initial = r.defaultPage
	}

	if err := r.navigate(ctx, initial, true); err != nil {
		return err
	}

	r.bus.Emit(event.RouterReady, event.PageLoadPayload{Page: initial})
	return nil
}

// Refresh re-loads the current page in place: the page's Refresh hook
// when present, Load otherwise. A no-op with a warning when there is no
// current page. Emits page:refresh before attempting either.
func (r *Router) Refresh(ctx context.Context) error {
	r.mu.RLock()
	name := r.current
	page := r.pages[name]
	r.mu.RUnlock()

	if page == nil {
		observability.LogRefreshNoop(r.logger)
		return nil
	}

	r.bus.Emit(event.PageRefresh, event.PageRefreshPayload{Page: name})

	var err error
	if refresher, ok := page.(Refresher); ok {
		err = refresher.Refresh(ctx)
	} else {
		err = page.Load(ctx)
	}
	if err != nil {
		r.chrome.ShowError(name, err)
		r.bus.Emit(event.DataError, event.DataErrorPayload{
			Context: "refresh",
			Page:    name,
			Err:     err,
		})
		return &NavigationError{Page: name, Phase: PhaseRefresh, Err: err}
	}
	return nil
}

// Shutdown ends the page session: the current page's OnUnload hook is
// invoked so it can release resources. The router itself holds no other
// resources.
func (r *Router) Shutdown(ctx context.Context) {
	r.mu.RLock()
	name := r.current
	page := r.pages[name]
	r.mu.RUnlock()

	if page != nil {
		r.unload(ctx, name, page)
	}
}

// unload runs a page's OnUnload hook with failure logging.
func (r *Router) unload(ctx context.Context, name string, page Page) {
	unloader, ok := page.(Unloader)
	if !ok {
		return
	}
	if err := unloader.OnUnload(ctx); err != nil {
		observability.LogHookError(r.logger, name, "onUnload", err)
	}
}

func (r *Router) setInFlight(page string) {
	r.mu.Lock()
	r.inFlight = page
	r.mu.Unlock()
}

func (r *Router) inFlightPage() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inFlight
}
