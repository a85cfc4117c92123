package event

// Event names shared by all publishers and subscribers in the runtime.
// The registry is a naming convention, not an enforced schema: any
// component may publish or subscribe to any name.
const (
	// PageLoad fires after a page's Load completes during navigation.
	PageLoad = "page:load"

	// PageUnload fires before the current page is hidden and replaced.
	PageUnload = "page:unload"

	// PageRefresh fires before the current page is re-loaded in place.
	PageRefresh = "page:refresh"

	// RouterReady fires once after Init has completed the first navigation.
	RouterReady = "router:ready"

	// StateChange fires on every state write. A key-specific variant
	// (see Scoped) fires alongside it.
	StateChange = "state:change"

	// StateCacheCleared fires when the fetched-data portion of the state
	// tree is reset.
	StateCacheCleared = "state:cache-cleared"

	// DataError reports a failed data operation, including fatal page
	// load failures during navigation.
	DataError = "data:error"

	// AuthLogin and AuthLogout announce identity changes.
	AuthLogin  = "auth:login"
	AuthLogout = "auth:logout"

	// UploadStart and UploadComplete bracket an activity file upload.
	UploadStart    = "upload:start"
	UploadComplete = "upload:complete"

	// CacheRebuilt announces that a family of cached queries was
	// invalidated and refetched after a write.
	CacheRebuilt = "cache:rebuilt"
)

// Scoped derives a key-specific event name, e.g.
// Scoped(StateChange, "settings") == "state:change:settings".
func Scoped(name, key string) string {
	return name + ":" + key
}

// PageLoadPayload accompanies PageLoad and RouterReady.
type PageLoadPayload struct {
	Page string
}

// PageUnloadPayload accompanies PageUnload.
type PageUnloadPayload struct {
	Page string
}

// PageRefreshPayload accompanies PageRefresh.
type PageRefreshPayload struct {
	Page string
}

// StateChangePayload accompanies StateChange and its scoped variants.
// Key is the top-level state key; Path is the full dot-path written.
type StateChangePayload struct {
	Key      string
	Path     string
	Value    any
	OldValue any
}

// DataErrorPayload accompanies DataError. Context names the operation
// that failed (e.g. "navigation").
type DataErrorPayload struct {
	Context string
	Page    string
	Err     error
}

// AuthPayload accompanies AuthLogin and AuthLogout.
type AuthPayload struct {
	UserID string
}

// UploadPayload accompanies UploadStart and UploadComplete.
type UploadPayload struct {
	Filename string
	Size     int64
}

// CacheRebuiltPayload accompanies CacheRebuilt.
type CacheRebuiltPayload struct {
	Pattern string
	Removed int
}
