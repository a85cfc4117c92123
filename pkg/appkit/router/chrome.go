package router

// Chrome is the router's port to the host's navigation surface: the
// active-item marking in the nav bar, the page title element, and the
// inline error view. The core never touches the DOM directly.
type Chrome interface {
	// SetActivePage marks the nav item for the given page as active.
	SetActivePage(name string)

	// SetTitle updates the page title element.
	SetTitle(title string)

	// ShowError renders an inline, human-readable error state for a
	// page, with whatever retry affordance the host provides.
	ShowError(page string, err error)
}

// NoopChrome is a Chrome that does nothing. Used by headless hosts and
// tests.
type NoopChrome struct{}

// Compile-time interface check.
var _ Chrome = NoopChrome{}

// SetActivePage does nothing.
func (NoopChrome) SetActivePage(string) {}

// SetTitle does nothing.
func (NoopChrome) SetTitle(string) {}

// ShowError does nothing.
func (NoopChrome) ShowError(string, error) {}
