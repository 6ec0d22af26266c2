package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/dbusengine"
)

// SpanRecord represents one recorded span lifecycle.
type SpanRecord struct {
	Name         string
	StartAttrs   map[string]string
	FinishAttrs  map[string]string
	FinishStatus string
	Finished     bool
}

// SpanContextSpy implements the SpanContext interface and records the calls made on it.
type SpanContextSpy struct {
	record *SpanRecord
	spy    *TracingCollectorSpy
}

// SetStatus records the status set on the span.
func (s *SpanContextSpy) SetStatus(status string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	s.record.FinishStatus = status
}

// AddAttribute records an attribute added to the span.
func (s *SpanContextSpy) AddAttribute(key, value string) {
	s.spy.mu.Lock()
	defer s.spy.mu.Unlock()

	if s.record.FinishAttrs == nil {
		s.record.FinishAttrs = make(map[string]string)
	}
	s.record.FinishAttrs[key] = value
}

// TracingCollectorSpy captures span lifecycles for testing the fetch engine's
// tracing instrumentation.
type TracingCollectorSpy struct {
	spans []*SpanRecord
	mu    sync.Mutex
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy instance.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan implements the TracingCollector interface for testing.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, dbusengine.SpanContext) {

	s.mu.Lock()
	defer s.mu.Unlock()

	record := &SpanRecord{Name: name, StartAttrs: maps.Clone(attrs)}
	s.spans = append(s.spans, record)

	return ctx, &SpanContextSpy{record: record, spy: s}
}

// FinishSpan implements the TracingCollector interface for testing.
// Span contexts not created by this spy are ignored.
func (s *TracingCollectorSpy) FinishSpan(spanCtx dbusengine.SpanContext, status string, attrs map[string]string) {
	spanSpy, isOwn := spanCtx.(*SpanContextSpy)
	if !isOwn {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spanSpy.record.Finished = true
	spanSpy.record.FinishStatus = status
	for key, value := range attrs {
		if spanSpy.record.FinishAttrs == nil {
			spanSpy.record.FinishAttrs = make(map[string]string)
		}
		spanSpy.record.FinishAttrs[key] = value
	}
}

// Spans returns a copy of all recorded span records.
func (s *TracingCollectorSpy) Spans() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpanRecord, 0, len(s.spans))
	for _, span := range s.spans {
		spans = append(spans, *span)
	}

	return spans
}

var _ dbusengine.TracingCollector = (*TracingCollectorSpy)(nil)
