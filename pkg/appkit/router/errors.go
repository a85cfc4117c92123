package router

import (
	"errors"
	"fmt"
)

// Sentinel errors for navigation outcomes.
var (
	// ErrPageNotFound indicates a navigation target with no registered
	// page. Non-fatal: the current page is unchanged.
	ErrPageNotFound = errors.New("page not registered")

	// ErrNavigationInFlight indicates a navigation request dropped by
	// the single-flight guard. Requests are dropped, not queued; the
	// caller may retry once the in-flight transition settles.
	ErrNavigationInFlight = errors.New("navigation already in flight")
)

// Transition phases reported by NavigationError.
const (
	PhaseLoad    = "load"
	PhaseRefresh = "refresh"
)

// NavigationError reports a failure that was fatal to one transition.
// The router returns to idle afterwards, so subsequent navigations are
// unaffected.
type NavigationError struct {
	Page  string
	Phase string
	Err   error
}

// Error implements the error interface.
func (e *NavigationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Phase, e.Page, e.Err)
}

// Unwrap returns the underlying error.
func (e *NavigationError) Unwrap() error {
	return e.Err
}
