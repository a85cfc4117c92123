package event

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a single emission. Events are transient: they exist only for
// the duration of the emit pass and are never persisted.
type Event struct {
	ID        string
	Name      string
	Payload   any
	Timestamp time.Time
}

// Callback handles a delivered event.
type Callback func(Event)

// Registration is the capability returned by On. Holding it is the only
// way to remove a listener besides Off with the listener id.
type Registration interface {
	// ID returns the unique listener identifier.
	ID() string

	// Unsubscribe removes the listener from the bus.
	Unsubscribe()
}

// BusConfig configures bus behavior.
type BusConfig struct {
	// HistoryCapacity bounds the emission history ring buffer.
	// Default: 100
	HistoryCapacity int

	// Logger receives recovered listener panics. May be nil.
	Logger *slog.Logger

	// OnEmit is called for every emission with the listener count.
	// Used to hook in metrics without coupling the bus to a recorder.
	OnEmit func(name string, listeners int)
}

// DefaultBusConfig provides reasonable defaults.
var DefaultBusConfig = BusConfig{
	HistoryCapacity: 100,
}

// Bus is a synchronous in-memory publish/subscribe hub.
//
// Listeners for one event name are kept sorted by descending priority;
// ties preserve registration order. Emit delivers in the caller's
// goroutine, so when Emit returns every listener has run.
type Bus struct {
	config BusConfig

	mu        sync.Mutex
	listeners map[string][]*listener
	history   *ring
}

// NewBus creates a new event bus.
func NewBus(config BusConfig) *Bus {
	if config.HistoryCapacity <= 0 {
		config.HistoryCapacity = DefaultBusConfig.HistoryCapacity
	}
	return &Bus{
		config:    config,
		listeners: make(map[string][]*listener),
		history:   newRing(config.HistoryCapacity),
	}
}

// listener is an internal registration.
type listener struct {
	id       string
	name     string
	callback Callback
	once     bool
	priority int
	bus      *Bus
}

// ID implements Registration.
func (l *listener) ID() string { return l.id }

// Unsubscribe implements Registration.
func (l *listener) Unsubscribe() { l.bus.Off(l.name, l.id) }

// ListenerOption configures a registration.
type ListenerOption func(*listener)

// WithPriority sets the listener priority. Higher values run first.
// Default: 0.
func WithPriority(p int) ListenerOption {
	return func(l *listener) {
		l.priority = p
	}
}

// WithOnce marks the listener for removal after its first delivery,
// even if that delivery panics.
func WithOnce() ListenerOption {
	return func(l *listener) {
		l.once = true
	}
}

// On registers a listener for an event name and returns its
// Registration. Multiple listeners for the same name are all kept;
// duplicate registrations are not an error.
//
// Panics if name is empty or fn is nil. Malformed registration is
// programmer error and fails fast at the call site.
func (b *Bus) On(name string, fn Callback, opts ...ListenerOption) Registration {
	if name == "" {
		panic("event: listener name cannot be empty")
	}
	if fn == nil {
		panic("event: listener callback cannot be nil")
	}

	l := &listener{
		id:       uuid.New().String(),
		name:     name,
		callback: fn,
		bus:      b,
	}
	for _, opt := range opts {
		opt(l)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.listeners[name]
	// Insert after every listener of equal or higher priority so that
	// ties keep registration order.
	i := sort.Search(len(ls), func(i int) bool { return ls[i].priority < l.priority })
	ls = append(ls, nil)
	copy(ls[i+1:], ls[i:])
	ls[i] = l
	b.listeners[name] = ls

	return l
}

// Once registers a listener that is removed after its first delivery.
func (b *Bus) Once(name string, fn Callback) Registration {
	return b.On(name, fn, WithOnce())
}

// Off removes a listener by id. Returns true if a listener was removed.
// Removing the last listener for a name deletes the name's collection,
// keeping the listener map bounded to active topics.
func (b *Bus) Off(name, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(name, id)
}

func (b *Bus) removeLocked(name, id string) bool {
	ls := b.listeners[name]
	for i, l := range ls {
		if l.id == id {
			b.listeners[name] = append(ls[:i:i], ls[i+1:]...)
			if len(b.listeners[name]) == 0 {
				delete(b.listeners, name)
			}
			return true
		}
	}
	return false
}

// Emit invokes every currently registered listener for name in
// descending priority order and returns whether at least one listener
// ran. A panicking listener is recovered and logged; sibling listeners
// still run.
//
// Listeners are snapshotted before the pass, so a listener that
// registers or unregisters listeners mid-pass does not affect the
// current delivery. Once listeners are removed only after the full pass
// completes.
func (b *Bus) Emit(name string, payload any) bool {
	evt := Event{
		ID:        uuid.New().String(),
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.Lock()
	snapshot := append([]*listener(nil), b.listeners[name]...)
	b.history.record(Emission{
		EventID:   evt.ID,
		Name:      name,
		Payload:   payload,
		Timestamp: evt.Timestamp,
		Listeners: len(snapshot),
	})
	b.mu.Unlock()

	if b.config.OnEmit != nil {
		b.config.OnEmit(name, len(snapshot))
	}

	for _, l := range snapshot {
		b.invoke(l, evt)
	}

	b.mu.Lock()
	for _, l := range snapshot {
		if l.once {
			b.removeLocked(name, l.id)
		}
	}
	b.mu.Unlock()

	return len(snapshot) > 0
}

// invoke runs one listener with panic recovery.
func (b *Bus) invoke(l *listener, evt Event) {
	defer func() {
		if r := recover(); r != nil && b.config.Logger != nil {
			b.config.Logger.Error("event listener panicked",
				slog.String("event", evt.Name),
				slog.String("listener_id", l.id),
				slog.Any("panic", r),
			)
		}
	}()
	l.callback(evt)
}

// EmitAsync schedules the emit off the caller's stack. The returned
// channel resolves to the same boolean Emit would have returned.
func (b *Bus) EmitAsync(name string, payload any) <-chan bool {
	done := make(chan bool, 1)
	go func() {
		done <- b.Emit(name, payload)
	}()
	return done
}

// ListenerCount returns the number of listeners registered for name.
func (b *Bus) ListenerCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[name])
}

// Names returns every event name with at least one active listener.
func (b *Bus) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.listeners))
	for name := range b.listeners {
		names = append(names, name)
	}
	return names
}

// History returns the recorded emissions, oldest first.
func (b *Bus) History() []Emission {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.snapshot()
}

// HistoryFor returns recorded emissions for one event name, oldest first.
func (b *Bus) HistoryFor(name string) []Emission {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Emission
	for _, e := range b.history.snapshot() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
