package dbusengine

import (
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
)

// The observability types are aliases of the core interfaces, so every
// implementation of the core interfaces (the oteladapters package included)
// can be passed to the With* options directly.

// Logger interface for fetch call logging, operational messages, warnings, and error reporting.
type Logger = snapshotview.Logger

// MetricsCollector interface for collecting fetch performance and operational metrics.
type MetricsCollector = snapshotview.MetricsCollector

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext = snapshotview.SpanContext

// TracingCollector interface for collecting distributed tracing information from fetch operations.
// It is dependency-free on purpose, so any tracing backend (OpenTelemetry, Jaeger, Zipkin, ...)
// can be plugged in by implementing this interface.
type TracingCollector = snapshotview.TracingCollector

// ContextualLogger interface for context-aware logging with automatic trace correlation.
type ContextualLogger = snapshotview.ContextualLogger

// Option defines a functional option for configuring a Fetcher.
type Option func(*Fetcher) error

// WithLogger sets the logger for the Fetcher.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Info level: object counts and fetch durations (production-safe)
// Error level: failures of the managed-objects call.
func WithLogger(logger Logger) Option {
	return func(f *Fetcher) error {
		f.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Fetcher.
// The contextual logger receives the same messages as the plain logger plus
// automatic trace/span correlation when tracing is enabled.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(f *Fetcher) error {
		f.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Fetcher.
// The collector will receive fetch durations, fetched object counts, and call errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(f *Fetcher) error {
		f.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Fetcher.
// The collector will receive one span per managed-objects call, including
// context propagation and error tracking.
func WithTracing(collector TracingCollector) Option {
	return func(f *Fetcher) error {
		f.tracingCollector = collector
		return nil
	}
}
