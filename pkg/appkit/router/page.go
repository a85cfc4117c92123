package router

import "context"

// Page is the contract between the router and a page module. Load is
// the only required operation; the router discovers the optional
// lifecycle hooks by interface assertion and never inspects a page's
// internal state.
type Page interface {
	// Load fetches and renders the page. A Load failure is fatal to the
	// navigation that triggered it.
	Load(ctx context.Context) error
}

// Shower is an optional hook invoked before Load when a page becomes
// current. A failure is logged and does not block the transition.
type Shower interface {
	OnShow(ctx context.Context) error
}

// Hider is an optional hook invoked on the outgoing page before the
// incoming page loads. A failure is logged and does not block the
// transition.
type Hider interface {
	OnHide(ctx context.Context) error
}

// Unloader is an optional hook invoked when a page module is discarded:
// either its registration is replaced, or the router shuts down while
// the page is current.
type Unloader interface {
	OnUnload(ctx context.Context) error
}

// Refresher is an optional hook invoked by Router.Refresh. Pages
// without it are refreshed by calling Load again.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// PageFunc adapts a plain function to the Page interface, for pages
// with no lifecycle hooks.
type PageFunc func(ctx context.Context) error

// Load implements Page.
func (f PageFunc) Load(ctx context.Context) error { return f(ctx) }
