// Package event provides the synchronous publish/subscribe hub for the
// appkit runtime.
//
// # Overview
//
// The Bus fans out named events to registered listeners without the
// publisher knowing who is listening:
//
//   - Priority ordering: higher-priority listeners run first; ties run
//     in registration order
//   - Once semantics: a once listener is removed after its first delivery
//   - Failure isolation: a panicking listener is recovered and logged,
//     and never prevents sibling listeners from running
//   - Bounded emission history for debugging and analytics
//
// # Basic Usage
//
//	bus := event.NewBus(event.DefaultBusConfig)
//
//	reg := bus.On(event.PageLoad, func(evt event.Event) {
//	    payload := evt.Payload.(event.PageLoadPayload)
//	    fmt.Println("loaded:", payload.Page)
//	})
//	defer reg.Unsubscribe()
//
//	bus.Emit(event.PageLoad, event.PageLoadPayload{Page: "overview"})
//
// # Ordering
//
// Emit invokes listeners synchronously in the caller's goroutine, in
// descending priority order. When Emit returns, every listener has
// already observed the event. EmitAsync defers the whole pass to a
// separate goroutine but preserves the same per-listener ordering once
// it starts.
//
// # Event Names
//
// Event names are fixed string constants paired with payload structs
// (see names.go), so publishers and subscribers share a compile-time
// contract instead of a loose name-to-payload convention. The Bus itself
// does not enforce the pairing; any component may publish or subscribe
// to any name.
package event
