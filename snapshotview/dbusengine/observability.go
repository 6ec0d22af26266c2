package dbusengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
)

// logOperation logs operational information at info level if a logger is configured.
// The contextual logger is preferred so messages correlate with the active span.
func (f Fetcher) logOperation(ctx context.Context, msg string, args ...any) {
	if f.contextualLogger != nil {
		f.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if f.logger != nil {
		f.logger.Info(msg, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (f Fetcher) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if f.contextualLogger != nil {
		f.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if f.logger != nil {
		f.logger.Error(msg, allArgs...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (f Fetcher) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordFetchMetrics records duration and object count for a successful fetch
// if a metrics collector is configured.
func (f Fetcher) recordFetchMetrics(ctx context.Context, duration time.Duration, objectCount int) {
	if f.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operationFetch,
		spanAttrService:   f.serviceName,
		"status":          statusSuccess,
	}

	if contextualCollector, ok := f.metricsCollector.(snapshotview.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricFetchDuration, duration, labels)
		contextualCollector.RecordValueContext(ctx, metricFetchedObjects, float64(objectCount), labels)
	} else {
		f.metricsCollector.RecordDuration(metricFetchDuration, duration, labels)
		f.metricsCollector.RecordValue(metricFetchedObjects, float64(objectCount), labels)
	}
}

// recordErrorMetrics records error metrics if a metrics collector is configured.
func (f Fetcher) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if f.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		spanAttrService:   f.serviceName,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := f.metricsCollector.(snapshotview.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricFetchErrors, labels)
	} else {
		f.metricsCollector.IncrementCounter(metricFetchErrors, labels)
	}
}

// startFetchSpan starts a tracing span for the managed-objects call if a tracing collector is configured.
func (f Fetcher) startFetchSpan(ctx context.Context) (context.Context, SpanContext) {
	if f.tracingCollector == nil {
		return ctx, nil
	}

	spanAttrs := map[string]string{
		spanAttrOperation: operationFetch,
		spanAttrService:   f.serviceName,
	}

	return f.tracingCollector.StartSpan(ctx, spanNameFetch, spanAttrs)
}

// finishFetchSpanSuccess finishes a successful fetch span with results.
func (f Fetcher) finishFetchSpanSuccess(span SpanContext, objectCount int, duration time.Duration) {
	if f.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(statusSuccess)
	span.AddAttribute(spanAttrObjectCount, fmt.Sprintf("%d", objectCount))
	span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6))

	f.tracingCollector.FinishSpan(span, statusSuccess, map[string]string{
		spanAttrObjectCount: fmt.Sprintf("%d", objectCount),
	})
}

// finishFetchSpanError finishes a fetch span with error details.
func (f Fetcher) finishFetchSpanError(span SpanContext, errorType string, duration time.Duration) {
	if f.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(statusError)
	span.AddAttribute(spanAttrErrorType, errorType)

	if duration > 0 {
		span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6))
	}

	f.tracingCollector.FinishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}
