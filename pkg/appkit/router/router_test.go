package router_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velodash/appkit/pkg/appkit/event"
	"github.com/velodash/appkit/pkg/appkit/router"
	"github.com/velodash/appkit/pkg/appkit/state"
)

// fakePage records lifecycle calls and simulates hook outcomes.
type fakePage struct {
	mu       sync.Mutex
	loads    int
	shows    int
	hides    int
	unloads  int
	refreshs int

	loadErr    error
	showErr    error
	hideErr    error
	hasRefresh bool

	blockLoad chan struct{} // when set, Load waits until closed
	loading   chan struct{} // when set, closed once Load is entered
}

func (p *fakePage) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loads++
	loading := p.loading
	p.loading = nil
	p.mu.Unlock()

	if loading != nil {
		close(loading)
	}
	if p.blockLoad != nil {
		<-p.blockLoad
	}
	return p.loadErr
}

func (p *fakePage) OnShow(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shows++
	return p.showErr
}

func (p *fakePage) OnHide(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hides++
	return p.hideErr
}

func (p *fakePage) OnUnload(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unloads++
	return nil
}

func (p *fakePage) loadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loads
}

// refreshablePage adds the Refresh hook on top of fakePage.
type refreshablePage struct {
	fakePage
}

func (p *refreshablePage) Refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshs++
	return nil
}

// recordingChrome captures chrome interactions.
type recordingChrome struct {
	mu     sync.Mutex
	active []string
	titles []string
	errors []string
}

func (c *recordingChrome) SetActivePage(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = append(c.active, name)
}

func (c *recordingChrome) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.titles = append(c.titles, title)
}

func (c *recordingChrome) ShowError(page string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, page)
}

type fixture struct {
	bus     *event.Bus
	state   *state.Store
	router  *router.Router
	chrome  *recordingChrome
	history *router.MemoryHistory
}

func newFixture(t *testing.T, initialHash string) *fixture {
	t.Helper()

	bus := event.NewBus(event.DefaultBusConfig)
	st := state.New(state.Config{Bus: bus})
	chrome := &recordingChrome{}
	history := router.NewMemoryHistory(initialHash)
	rt := router.New(bus, st, router.Config{
		History: history,
		Chrome:  chrome,
	})
	return &fixture{bus: bus, state: st, router: rt, chrome: chrome, history: history}
}

func TestRouter_NavigateTo(t *testing.T) {
	f := newFixture(t, "")
	page := &fakePage{}
	f.router.RegisterPage("overview", page)

	var loaded []string
	f.bus.On(event.PageLoad, func(evt event.Event) {
		loaded = append(loaded, evt.Payload.(event.PageLoadPayload).Page)
	})

	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))

	assert.Equal(t, 1, page.loadCount())
	assert.Equal(t, "overview", f.router.CurrentPage())
	assert.Equal(t, "overview", f.state.Get("ui.currentPage"))
	assert.Equal(t, []string{"overview"}, loaded)
	assert.Equal(t, []string{"overview"}, f.chrome.active)
	assert.Equal(t, []string{"Overview"}, f.chrome.titles)
	assert.Equal(t, "overview", f.history.Current())
	assert.False(t, f.router.IsNavigating())
}

func TestRouter_NavigateToUnregisteredPage(t *testing.T) {
	f := newFixture(t, "")
	f.router.RegisterPage("overview", &fakePage{})
	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))

	err := f.router.NavigateTo(context.Background(), "nope")

	assert.ErrorIs(t, err, router.ErrPageNotFound)
	assert.Equal(t, "overview", f.router.CurrentPage())
	assert.Equal(t, []string{"nope"}, f.chrome.errors)
}

func TestRouter_SingleFlightDropsConcurrentRequest(t *testing.T) {
	f := newFixture(t, "")
	page := &fakePage{
		blockLoad: make(chan struct{}),
		loading:   make(chan struct{}),
	}
	loading := page.loading
	f.router.RegisterPage("overview", page)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- f.router.NavigateTo(context.Background(), "overview")
	}()

	<-loading // first navigation is inside Load
	err := f.router.NavigateTo(context.Background(), "overview")
	assert.ErrorIs(t, err, router.ErrNavigationInFlight)

	close(page.blockLoad)
	require.NoError(t, <-firstDone)

	assert.Equal(t, 1, page.loadCount())
}

func TestRouter_FailedLoadReturnsRouterToIdle(t *testing.T) {
	f := newFixture(t, "")
	broken := &fakePage{loadErr: errors.New("api unreachable")}
	working := &fakePage{}
	f.router.RegisterPage("activities", broken)
	f.router.RegisterPage("overview", working)

	var dataErrs []event.DataErrorPayload
	f.bus.On(event.DataError, func(evt event.Event) {
		dataErrs = append(dataErrs, evt.Payload.(event.DataErrorPayload))
	})

	err := f.router.NavigateTo(context.Background(), "activities")

	var navErr *router.NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, "activities", navErr.Page)
	assert.Equal(t, router.PhaseLoad, navErr.Phase)

	require.Len(t, dataErrs, 1)
	assert.Equal(t, "navigation", dataErrs[0].Context)
	assert.Equal(t, "activities", dataErrs[0].Page)
	assert.Equal(t, []string{"activities"}, f.chrome.errors)

	// The failed transition did not record a current page or wedge the
	// router.
	assert.Equal(t, "", f.router.CurrentPage())
	assert.False(t, f.router.IsNavigating())
	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))
	assert.Equal(t, "overview", f.router.CurrentPage())
}

func TestRouter_FailingOnHideDoesNotBlockNavigation(t *testing.T) {
	f := newFixture(t, "")
	first := &fakePage{hideErr: errors.New("teardown failed")}
	second := &fakePage{}
	f.router.RegisterPage("overview", first)
	f.router.RegisterPage("settings", second)

	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))
	require.NoError(t, f.router.NavigateTo(context.Background(), "settings"))

	assert.Equal(t, 1, second.loadCount())
	assert.Equal(t, "settings", f.router.CurrentPage())
}

func TestRouter_FailingOnShowDoesNotBlockLoad(t *testing.T) {
	f := newFixture(t, "")
	page := &fakePage{showErr: errors.New("chart library missing")}
	f.router.RegisterPage("overview", page)

	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))

	assert.Equal(t, 1, page.loadCount())
	assert.Equal(t, 1, page.shows)
}

func TestRouter_LifecycleOrderAcrossPages(t *testing.T) {
	f := newFixture(t, "")

	var order []string
	f.bus.On(event.PageUnload, func(evt event.Event) {
		order = append(order, "unload:"+evt.Payload.(event.PageUnloadPayload).Page)
	})
	f.bus.On(event.PageLoad, func(evt event.Event) {
		order = append(order, "load:"+evt.Payload.(event.PageLoadPayload).Page)
	})

	f.router.RegisterPage("overview", &fakePage{})
	f.router.RegisterPage("settings", &fakePage{})

	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))
	require.NoError(t, f.router.NavigateTo(context.Background(), "settings"))

	assert.Equal(t, []string{"load:overview", "unload:overview", "load:settings"}, order)
}

func TestRouter_InitRespectsLocationHash(t *testing.T) {
	f := newFixture(t, "settings")
	overview := &fakePage{}
	settings := &fakePage{}
	f.router.RegisterPage("overview", overview)
	f.router.RegisterPage("settings", settings)

	ready := false
	f.bus.On(event.RouterReady, func(event.Event) { ready = true })

	require.NoError(t, f.router.Init(context.Background()))

	assert.Equal(t, "settings", f.router.CurrentPage())
	assert.Equal(t, 1, settings.loadCount())
	assert.Equal(t, 0, overview.loadCount())
	assert.True(t, ready)
	// The location already pointed at settings; no extra entry pushed.
	assert.Equal(t, 1, f.history.Len())
}

func TestRouter_InitFallsBackToDefaultPage(t *testing.T) {
	f := newFixture(t, "")
	overview := &fakePage{}
	f.router.RegisterPage("overview", overview)

	require.NoError(t, f.router.Init(context.Background()))

	assert.Equal(t, "overview", f.router.CurrentPage())
	assert.Equal(t, 1, overview.loadCount())
}

func TestRouter_BackNavigatesWithoutPushing(t *testing.T) {
	f := newFixture(t, "")
	f.router.RegisterPage("overview", &fakePage{})
	f.router.RegisterPage("settings", &fakePage{})

	require.NoError(t, f.router.Init(context.Background()))
	require.NoError(t, f.router.NavigateTo(context.Background(), "settings"))
	require.Equal(t, 2, f.history.Len())

	f.history.Back()

	assert.Equal(t, "overview", f.router.CurrentPage())
	assert.Equal(t, 1, f.history.Len())
}

func TestRouter_RefreshPrefersRefreshHook(t *testing.T) {
	f := newFixture(t, "")
	page := &refreshablePage{}
	f.router.RegisterPage("overview", page)
	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))

	refreshed := false
	f.bus.On(event.PageRefresh, func(event.Event) { refreshed = true })

	require.NoError(t, f.router.Refresh(context.Background()))

	assert.Equal(t, 1, page.refreshs)
	assert.Equal(t, 1, page.loadCount())
	assert.True(t, refreshed)
}

func TestRouter_RefreshFallsBackToLoad(t *testing.T) {
	f := newFixture(t, "")
	page := &fakePage{}
	f.router.RegisterPage("overview", page)
	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))

	require.NoError(t, f.router.Refresh(context.Background()))

	assert.Equal(t, 2, page.loadCount())
}

func TestRouter_RefreshWithoutCurrentPageIsNoop(t *testing.T) {
	f := newFixture(t, "")

	assert.NoError(t, f.router.Refresh(context.Background()))
}

func TestRouter_ReplacedRegistrationUnloadsOldPage(t *testing.T) {
	f := newFixture(t, "")
	old := &fakePage{}
	f.router.RegisterPage("overview", old)
	f.router.RegisterPage("overview", &fakePage{})

	assert.Equal(t, 1, old.unloads)
}

func TestRouter_ShutdownUnloadsCurrentPage(t *testing.T) {
	f := newFixture(t, "")
	page := &fakePage{}
	f.router.RegisterPage("overview", page)
	require.NoError(t, f.router.NavigateTo(context.Background(), "overview"))

	f.router.Shutdown(context.Background())

	assert.Equal(t, 1, page.unloads)
}

func TestRouter_RegistrationValidation(t *testing.T) {
	f := newFixture(t, "")

	assert.Panics(t, func() { f.router.RegisterPage("", &fakePage{}) })
	assert.Panics(t, func() { f.router.RegisterPage("overview", nil) })
}

func TestRouter_SequentialNavigationsAfterSlowLoad(t *testing.T) {
	f := newFixture(t, "")
	slow := &fakePage{blockLoad: make(chan struct{})}
	f.router.RegisterPage("overview", slow)
	f.router.RegisterPage("settings", &fakePage{})

	done := make(chan error, 1)
	go func() {
		done <- f.router.NavigateTo(context.Background(), "overview")
	}()

	// Unblock shortly after; the follow-up navigation succeeds once the
	// first settles.
	time.AfterFunc(20*time.Millisecond, func() { close(slow.blockLoad) })
	require.NoError(t, <-done)
	require.NoError(t, f.router.NavigateTo(context.Background(), "settings"))
	assert.Equal(t, "settings", f.router.CurrentPage())
}
