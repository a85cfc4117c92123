package router

import "sync"

// History is the router's port to the host's navigation history (the
// browser location hash in the original deployment). The router pushes
// one entry per user-initiated navigation and re-navigates without
// pushing when the host reports a pop (back/forward).
type History interface {
	// Push records a new entry as the current location.
	Push(page string)

	// Current returns the page at the current location, or "" when the
	// history is empty.
	Current() string

	// OnPop installs the handler invoked when the host moves through
	// existing entries. Installed once, at Router.Init.
	OnPop(fn func(page string))
}

// MemoryHistory is an in-process History for tests and non-browser
// hosts. Back walks the entry stack and fires the pop handler the way
// a browser fires popstate.
type MemoryHistory struct {
	mu    sync.Mutex
	stack []string
	onPop func(page string)
}

// NewMemoryHistory creates a history. A non-empty initial entry models
// a deep link (the location hash present before the app starts).
func NewMemoryHistory(initial string) *MemoryHistory {
	h := &MemoryHistory{}
	if initial != "" {
		h.stack = []string{initial}
	}
	return h
}

// Push implements History.
func (h *MemoryHistory) Push(page string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, page)
}

// Current implements History.
func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return ""
	}
	return h.stack[len(h.stack)-1]
}

// OnPop implements History.
func (h *MemoryHistory) OnPop(fn func(page string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPop = fn
}

// Back discards the current entry and fires the pop handler with the
// entry beneath it. A no-op when there is nothing to go back to.
func (h *MemoryHistory) Back() {
	h.mu.Lock()
	if len(h.stack) < 2 {
		h.mu.Unlock()
		return
	}
	h.stack = h.stack[:len(h.stack)-1]
	target := h.stack[len(h.stack)-1]
	fn := h.onPop
	h.mu.Unlock()

	if fn != nil {
		fn(target)
	}
}

// Len returns the number of entries. Useful for tests asserting that
// pop-driven navigation does not re-push.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}
