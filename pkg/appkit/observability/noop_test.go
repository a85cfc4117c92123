package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordNavigation(ctx, "overview", time.Second, nil)
		m.RecordNavigation(ctx, "overview", time.Second, errors.New("x"))
		m.RecordEmit(ctx, "page:load", 3)
		m.RecordCacheAccess(ctx, true)
	})
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		ctx, span := m.StartNavigationSpan(ctx, "overview")
		_, hookSpan := m.StartHookSpan(ctx, "overview", "load")
		m.EndSpanWithError(span, nil)
		m.EndSpanWithError(hookSpan, errors.New("x"))
		m.AddSpanEvent(ctx, "noop")
	})
}

func TestNoopSpanManagerReturnsContextUnchanged(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	got, _ := m.StartNavigationSpan(ctx, "overview")
	assert.Equal(t, ctx, got)
}
