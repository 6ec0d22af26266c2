package dbusengine

import (
	"context"
	"errors"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/dbusengine/internal/adapters"
)

const (
	logMsgFetchFailed    = "managed objects call failed"
	logMsgFetchCompleted = "fetch completed"
	logAttrError         = "error"
	logAttrService       = "service"
	logAttrObjectCount   = "object_count"
	logAttrDurationMS    = "duration_ms"
	metricFetchDuration  = "managedobjects_fetch_duration_seconds"
	metricFetchErrors    = "managedobjects_fetch_errors_total"
	metricFetchedObjects = "managedobjects_fetched_objects"
	spanNameFetch        = "managedobjects.fetch"
	spanAttrOperation    = "operation"
	spanAttrService      = "service"
	spanAttrErrorType    = "error_type"
	spanAttrObjectCount  = "object_count"
	spanAttrDurationMS   = "duration_ms"
	operationFetch       = "fetch"
	statusSuccess        = "success"
	statusError          = "error"
	errorTypeCallFailed  = "call_failed"
	errorTypeCanceled    = "canceled"
)

// Fetcher performs the managed-objects bulk call against one service's object
// manager and converts the reply into a snapshotview.RawSnapshot.
//
// It is the only place in this module that touches the bus; everything behind
// the returned snapshot is read-only and offline.
type Fetcher struct {
	bus              adapters.BusAdapter
	serviceName      string
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewFetcherFromConn creates a new Fetcher from a bus connection, the
// destination service name, and the object path its object manager lives at.
func NewFetcherFromConn(
	conn *dbus.Conn,
	serviceName string,
	managerPath dbus.ObjectPath,
	options ...Option,
) (Fetcher, error) {

	if conn == nil {
		return Fetcher{}, snapshotview.ErrNilBusConnection
	}

	if serviceName == "" {
		return Fetcher{}, snapshotview.ErrEmptyServiceName
	}

	fetcher := Fetcher{
		bus:         adapters.NewConnAdapter(conn, serviceName, managerPath),
		serviceName: serviceName,
	}

	for _, option := range options {
		if err := option(&fetcher); err != nil {
			return Fetcher{}, err
		}
	}

	return fetcher, nil
}

// NewFetcherFromBusObject creates a new Fetcher from a pre-built bus object,
// for callers that already resolved the service's object manager themselves.
func NewFetcherFromBusObject(object dbus.BusObject, options ...Option) (Fetcher, error) {
	if object == nil {
		return Fetcher{}, snapshotview.ErrNilBusObject
	}

	fetcher := Fetcher{
		bus:         adapters.NewBusObjectAdapter(object),
		serviceName: object.Destination(),
	}

	for _, option := range options {
		if err := option(&fetcher); err != nil {
			return Fetcher{}, err
		}
	}

	return fetcher, nil
}

// FetchManagedObjects performs the bulk call and returns the converted snapshot.
//
// Failures of the call itself are joined with snapshotview.ErrFetchFailed and
// passed through without interpretation; this engine never retries. The
// returned snapshot is a fresh value owned by the caller and safe to treat as
// immutable from here on.
func (f Fetcher) FetchManagedObjects(ctx context.Context) (snapshotview.RawSnapshot, error) {
	spanCtx, span := f.startFetchSpan(ctx)

	start := time.Now()
	rawObjects, callErr := f.bus.GetManagedObjects(spanCtx)
	duration := time.Since(start)

	if callErr != nil {
		errorType := errorTypeCallFailed
		if errors.Is(callErr, context.Canceled) || errors.Is(callErr, context.DeadlineExceeded) {
			errorType = errorTypeCanceled
		}

		f.logError(spanCtx, logMsgFetchFailed, callErr, logAttrService, f.serviceName)
		f.recordErrorMetrics(spanCtx, operationFetch, errorType)
		f.finishFetchSpanError(span, errorType, duration)

		return nil, errors.Join(snapshotview.ErrFetchFailed, callErr)
	}

	snapshot := snapshotFromRawObjects(rawObjects)

	f.logOperation(
		spanCtx,
		logMsgFetchCompleted,
		logAttrService, f.serviceName,
		logAttrObjectCount, len(snapshot),
		logAttrDurationMS, f.durationToMilliseconds(duration))
	f.recordFetchMetrics(spanCtx, duration, len(snapshot))
	f.finishFetchSpanSuccess(span, len(snapshot), duration)

	return snapshot, nil
}
