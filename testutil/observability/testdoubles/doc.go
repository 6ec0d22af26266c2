// Package testdoubles provides test doubles (spies) for observability interfaces.
//
// This package contains spy implementations for the observability interfaces
// used by the managed-objects fetch engine:
//   - LoggerSpy / ContextualLoggerSpy: capture structured logging calls
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures span lifecycles
//
// These test doubles enable testing of the fetch instrumentation without an
// actual telemetry backend.
package testdoubles
