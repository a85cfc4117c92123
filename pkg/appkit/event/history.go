package event

import "time"

// Emission records one Emit call for debugging and analytics. Every
// emission is recorded regardless of listener count; the buffer makes
// no replay guarantees.
type Emission struct {
	EventID   string
	Name      string
	Payload   any
	Timestamp time.Time
	Listeners int
}

// ring is a fixed-capacity buffer of emissions. Oldest entries are
// dropped first. Not safe for concurrent use; the Bus guards it.
type ring struct {
	entries []Emission
	next    int
	full    bool
}

func newRing(capacity int) *ring {
	return &ring{entries: make([]Emission, capacity)}
}

func (r *ring) record(e Emission) {
	r.entries[r.next] = e
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

// snapshot returns recorded emissions oldest first.
func (r *ring) snapshot() []Emission {
	if !r.full {
		return append([]Emission(nil), r.entries[:r.next]...)
	}
	out := make([]Emission, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}
