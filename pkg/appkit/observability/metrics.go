package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records appkit runtime metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordNavigation records a navigation attempt with its duration and
	// error status.
	RecordNavigation(ctx context.Context, page string, duration time.Duration, err error)

	// RecordEmit records an event emission and its listener fan-out.
	RecordEmit(ctx context.Context, name string, listeners int)

	// RecordCacheAccess records a cache read outcome.
	RecordCacheAccess(ctx context.Context, hit bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	navigations       metric.Int64Counter
	navigationLatency metric.Float64Histogram
	navigationErrors  metric.Int64Counter
	emissions         metric.Int64Counter
	emissionFanout    metric.Int64Histogram
	cacheReads        metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("appkit")

	navigations, err := meter.Int64Counter("appkit.router.navigations",
		metric.WithDescription("Number of navigation attempts"),
	)
	if err != nil {
		return nil, err
	}

	navigationLatency, err := meter.Float64Histogram("appkit.router.latency_ms",
		metric.WithDescription("Navigation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	navigationErrors, err := meter.Int64Counter("appkit.router.errors",
		metric.WithDescription("Number of failed navigations"),
	)
	if err != nil {
		return nil, err
	}

	emissions, err := meter.Int64Counter("appkit.bus.emissions",
		metric.WithDescription("Number of event emissions"),
	)
	if err != nil {
		return nil, err
	}

	emissionFanout, err := meter.Int64Histogram("appkit.bus.fanout",
		metric.WithDescription("Listeners invoked per emission"),
	)
	if err != nil {
		return nil, err
	}

	cacheReads, err := meter.Int64Counter("appkit.cache.reads",
		metric.WithDescription("Cache reads by hit/miss outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		navigations:       navigations,
		navigationLatency: navigationLatency,
		navigationErrors:  navigationErrors,
		emissions:         emissions,
		emissionFanout:    emissionFanout,
		cacheReads:        cacheReads,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordNavigation records a navigation attempt.
func (m *otelMetrics) RecordNavigation(ctx context.Context, page string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("page", page),
	}

	m.navigations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.navigationLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.navigationErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordEmit records an event emission.
func (m *otelMetrics) RecordEmit(ctx context.Context, name string, listeners int) {
	attrs := []attribute.KeyValue{
		attribute.String("event", name),
	}
	m.emissions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.emissionFanout.Record(ctx, int64(listeners), metric.WithAttributes(attrs...))
}

// RecordCacheAccess records a cache read outcome.
func (m *otelMetrics) RecordCacheAccess(ctx context.Context, hit bool) {
	m.cacheReads.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("hit", hit),
	))
}
