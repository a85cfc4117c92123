// Package observability provides production-grade observability features
// for the appkit runtime: structured logging, metrics, and tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds navigation context to a logger.
// Returns a new logger with page and from fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "settings", "overview")
//	enriched.Info("loading") // includes page, from
func EnrichLogger(logger *slog.Logger, page, from string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("page", page),
		slog.String("from", from),
	)
}

// LogNavigationStart logs the start of a page transition.
func LogNavigationStart(logger *slog.Logger, page string) {
	if logger == nil {
		return
	}
	logger.Info("navigation starting",
		slog.String("page", page),
	)
}

// LogNavigationComplete logs a successful page transition.
func LogNavigationComplete(logger *slog.Logger, page string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("navigation completed",
		slog.String("page", page),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNavigationError logs a failed page load.
func LogNavigationError(logger *slog.Logger, page string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("navigation failed",
		slog.String("page", page),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNavigationDropped logs a navigation request dropped by the
// single-flight guard.
func LogNavigationDropped(logger *slog.Logger, page, inFlight string) {
	if logger == nil {
		return
	}
	logger.Warn("navigation dropped, another is in flight",
		slog.String("page", page),
		slog.String("in_flight", inFlight),
	)
}

// LogPageNotFound logs a navigation to an unregistered page.
func LogPageNotFound(logger *slog.Logger, page string) {
	if logger == nil {
		return
	}
	logger.Error("page not registered",
		slog.String("page", page),
	)
}

// LogHookError logs a lifecycle hook failure (non-fatal).
func LogHookError(logger *slog.Logger, page, hook string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("lifecycle hook failed",
		slog.String("page", page),
		slog.String("hook", hook),
		slog.String("error", err.Error()),
	)
}

// LogRefreshNoop logs a refresh request with no current page.
func LogRefreshNoop(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Warn("refresh requested with no current page")
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
