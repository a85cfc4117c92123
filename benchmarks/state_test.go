package benchmarks

import (
	"fmt"
	"testing"

	"github.com/velodash/appkit/pkg/appkit/state"
)

// BenchmarkStateSet writes a nested path repeatedly.
func BenchmarkStateSet(b *testing.B) {
	st := state.New(state.Config{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Set("ui.theme", "dark")
	}
}

// BenchmarkStateSet_Deep writes a deeply nested path.
func BenchmarkStateSet_Deep(b *testing.B) {
	st := state.New(state.Config{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Set("data.activities.summary.totals.distance", i)
	}
}

// BenchmarkStateGet reads a nested path.
func BenchmarkStateGet(b *testing.B) {
	st := state.New(state.Config{})
	st.Set("ui.theme", "dark")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Get("ui.theme")
	}
}

// BenchmarkStateSet_WithSubscribers writes with 10 subscribers watching
// the changed key.
func BenchmarkStateSet_WithSubscribers(b *testing.B) {
	st := state.New(state.Config{})
	for i := 0; i < 10; i++ {
		st.Subscribe("ui", func(any) {})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Set("ui.theme", "dark")
	}
}

// BenchmarkStateSnapshot copies a grown state document.
func BenchmarkStateSnapshot(b *testing.B) {
	st := state.New(state.Config{})
	for i := 0; i < 100; i++ {
		st.Set(fmt.Sprintf("data.rides.r%d", i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Snapshot()
	}
}
