package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the appkit tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("appkit")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartNavigationSpan starts a span covering one page transition.
	// Returns the context with span and the span itself.
	StartNavigationSpan(ctx context.Context, page string) (context.Context, trace.Span)

	// StartHookSpan starts a span for a page lifecycle hook.
	// The hook span should be a child of the navigation span.
	StartHookSpan(ctx context.Context, page, hook string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartNavigationSpan starts a span covering one page transition.
func (m *otelSpanManager) StartNavigationSpan(ctx context.Context, page string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "appkit.navigate",
		trace.WithAttributes(
			attribute.String("page", page),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartHookSpan starts a span for a page lifecycle hook.
func (m *otelSpanManager) StartHookSpan(ctx context.Context, page, hook string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "appkit.page."+hook,
		trace.WithAttributes(
			attribute.String("page", page),
			attribute.String("hook", hook),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
