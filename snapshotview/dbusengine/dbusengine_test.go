package dbusengine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/dbusengine"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/oteladapters"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/testutil/fixtures"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/testutil/observability/testdoubles"
)

/***** fake bus object *****/

// fakeBusObject implements dbus.BusObject with a canned managed-objects reply,
// so the engine can be exercised without a bus.
type fakeBusObject struct {
	reply       map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	callErr     error
	destination string
	calledWith  string
}

func (f *fakeBusObject) Call(method string, _ dbus.Flags, _ ...interface{}) *dbus.Call {
	return f.makeCall(method)
}

func (f *fakeBusObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, _ ...interface{}) *dbus.Call {
	return f.makeCall(method)
}

func (f *fakeBusObject) makeCall(method string) *dbus.Call {
	f.calledWith = method

	if f.callErr != nil {
		return &dbus.Call{Err: f.callErr}
	}

	return &dbus.Call{Body: []interface{}{f.reply}}
}

func (f *fakeBusObject) Go(_ string, _ dbus.Flags, ch chan *dbus.Call, _ ...interface{}) *dbus.Call {
	return &dbus.Call{Done: ch}
}

func (f *fakeBusObject) GoWithContext(_ context.Context, _ string, _ dbus.Flags, ch chan *dbus.Call, _ ...interface{}) *dbus.Call {
	return &dbus.Call{Done: ch}
}

func (f *fakeBusObject) AddMatchSignal(_, _ string, _ ...dbus.MatchOption) *dbus.Call {
	return &dbus.Call{}
}

func (f *fakeBusObject) RemoveMatchSignal(_, _ string, _ ...dbus.MatchOption) *dbus.Call {
	return &dbus.Call{}
}

func (f *fakeBusObject) GetProperty(_ string) (dbus.Variant, error) {
	return dbus.Variant{}, errors.New("not implemented")
}

func (f *fakeBusObject) StoreProperty(_ string, _ interface{}) error {
	return errors.New("not implemented")
}

func (f *fakeBusObject) SetProperty(_ string, _ interface{}) error {
	return errors.New("not implemented")
}

func (f *fakeBusObject) Destination() string {
	return f.destination
}

func (f *fakeBusObject) Path() dbus.ObjectPath {
	return "/org/storage/stratis1"
}

func managedObjectsReply() map[dbus.ObjectPath]map[string]map[string]dbus.Variant {
	return map[dbus.ObjectPath]map[string]map[string]dbus.Variant{
		"/org/storage/stratis1/pool/1": {
			"org.storage.stratis1.pool": {
				"Name": dbus.MakeVariant("mypool"),
				"Uuid": dbus.MakeVariant(fixtures.Pool1UUID),
			},
		},
		"/org/storage/stratis1/fs/1": {
			"org.storage.stratis1.filesystem": {
				"Name":    dbus.MakeVariant("myfs"),
				"Uuid":    dbus.MakeVariant(fixtures.Filesystem1UUID),
				"Devnode": dbus.MakeVariant("/dev/stratis/mypool/myfs"),
			},
		},
	}
}

/***** construction *****/

func Test_NewFetcherFromConn_NilConnection(t *testing.T) {
	_, err := dbusengine.NewFetcherFromConn(nil, "org.storage.stratis1", "/org/storage/stratis1")

	assert.ErrorIs(t, err, snapshotview.ErrNilBusConnection)
}

func Test_NewFetcherFromBusObject_NilObject(t *testing.T) {
	_, err := dbusengine.NewFetcherFromBusObject(nil)

	assert.ErrorIs(t, err, snapshotview.ErrNilBusObject)
}

func Test_NewFetcherFromBusObject_WithOptions(t *testing.T) {
	busObject := &fakeBusObject{destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(
		busObject,
		dbusengine.WithLogger(testdoubles.NewLoggerSpy()),
		dbusengine.WithContextualLogger(testdoubles.NewContextualLoggerSpy()),
		dbusengine.WithMetrics(testdoubles.NewMetricsCollectorSpy()),
		dbusengine.WithTracing(testdoubles.NewTracingCollectorSpy()),
	)

	require.NoError(t, err)
	assert.NotNil(t, fetcher)
}

/***** fetching *****/

func Test_FetchManagedObjects(t *testing.T) {
	busObject := &fakeBusObject{reply: managedObjectsReply(), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject)
	require.NoError(t, err)

	snapshot, err := fetcher.FetchManagedObjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "org.freedesktop.DBus.ObjectManager.GetManagedObjects", busObject.calledWith)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "mypool", snapshot["/org/storage/stratis1/pool/1"]["org.storage.stratis1.pool"]["Name"])
	assert.Equal(t, "/dev/stratis/mypool/myfs",
		snapshot["/org/storage/stratis1/fs/1"]["org.storage.stratis1.filesystem"]["Devnode"])
}

func Test_FetchManagedObjects_SnapshotWorksWithView(t *testing.T) {
	busObject := &fakeBusObject{reply: managedObjectsReply(), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject)
	require.NoError(t, err)

	snapshot, err := fetcher.FetchManagedObjects(context.Background())
	require.NoError(t, err)

	view := snapshotview.BuildView(snapshot)

	spec := snapshotview.BuildQuerySpec().
		MatchingAllOf(snapshotview.P("Name", "mypool")).
		Finalize()

	pools, err := view.EntriesImplementing("org.storage.stratis1.pool", spec)
	require.NoError(t, err)

	var paths []string
	for objectPath := range pools {
		paths = append(paths, objectPath)
	}
	assert.Equal(t, []string{"/org/storage/stratis1/pool/1"}, paths)
}

func Test_FetchManagedObjects_CallFailure(t *testing.T) {
	busError := errors.New("the name org.storage.stratis1 was not provided by any .service files")
	busObject := &fakeBusObject{callErr: busError, destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject)
	require.NoError(t, err)

	snapshot, err := fetcher.FetchManagedObjects(context.Background())

	assert.Nil(t, snapshot)
	require.ErrorIs(t, err, snapshotview.ErrFetchFailed)
	assert.ErrorIs(t, err, busError)
}

/***** observability *****/

func Test_FetchManagedObjects_LogsCompletion(t *testing.T) {
	loggerSpy := testdoubles.NewLoggerSpy()
	busObject := &fakeBusObject{reply: managedObjectsReply(), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject, dbusengine.WithLogger(loggerSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())

	require.NoError(t, err)
	assert.True(t, loggerSpy.HasLog("info", "fetch completed"))
}

func Test_FetchManagedObjects_PrefersContextualLogger(t *testing.T) {
	loggerSpy := testdoubles.NewLoggerSpy()
	contextualSpy := testdoubles.NewContextualLoggerSpy()
	busObject := &fakeBusObject{reply: managedObjectsReply(), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(
		busObject,
		dbusengine.WithLogger(loggerSpy),
		dbusengine.WithContextualLogger(contextualSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())

	require.NoError(t, err)
	assert.True(t, contextualSpy.HasLog("info", "fetch completed"))
	assert.Empty(t, loggerSpy.Records())
}

func Test_FetchManagedObjects_LogsCallFailure(t *testing.T) {
	loggerSpy := testdoubles.NewLoggerSpy()
	busObject := &fakeBusObject{callErr: errors.New("boom"), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject, dbusengine.WithLogger(loggerSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())

	require.Error(t, err)
	assert.True(t, loggerSpy.HasLog("error", "managed objects call failed"))
}

func Test_FetchManagedObjects_RecordsMetrics(t *testing.T) {
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	busObject := &fakeBusObject{reply: managedObjectsReply(), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject, dbusengine.WithMetrics(metricsSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())

	require.NoError(t, err)
	assert.True(t, metricsSpy.HasDuration("managedobjects_fetch_duration_seconds"))

	valueRecords := metricsSpy.ValueRecords()
	require.Len(t, valueRecords, 1)
	assert.Equal(t, "managedobjects_fetched_objects", valueRecords[0].Metric)
	assert.Equal(t, float64(2), valueRecords[0].Value)
	assert.Equal(t, "org.storage.stratis1", valueRecords[0].Labels["service"])
}

func Test_FetchManagedObjects_RecordsErrorMetrics(t *testing.T) {
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	busObject := &fakeBusObject{callErr: errors.New("boom"), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject, dbusengine.WithMetrics(metricsSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())

	require.Error(t, err)
	assert.True(t, metricsSpy.HasCounter("managedobjects_fetch_errors_total"))
	assert.False(t, metricsSpy.HasDuration("managedobjects_fetch_duration_seconds"))
}

func Test_FetchManagedObjects_TracesSuccess(t *testing.T) {
	tracingSpy := testdoubles.NewTracingCollectorSpy()
	busObject := &fakeBusObject{reply: managedObjectsReply(), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject, dbusengine.WithTracing(tracingSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())
	require.NoError(t, err)

	spans := tracingSpy.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, "managedobjects.fetch", spans[0].Name)
	assert.True(t, spans[0].Finished)
	assert.Equal(t, "success", spans[0].FinishStatus)
	assert.Equal(t, "2", spans[0].FinishAttrs["object_count"])
}

func Test_FetchManagedObjects_ClassifiesCanceledContext(t *testing.T) {
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	tracingSpy := testdoubles.NewTracingCollectorSpy()
	busObject := &fakeBusObject{callErr: context.Canceled, destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(
		busObject,
		dbusengine.WithMetrics(metricsSpy),
		dbusengine.WithTracing(tracingSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())

	require.ErrorIs(t, err, snapshotview.ErrFetchFailed)
	assert.ErrorIs(t, err, context.Canceled)

	counterRecords := metricsSpy.CounterRecords()
	require.Len(t, counterRecords, 1)
	assert.Equal(t, "managedobjects_fetch_errors_total", counterRecords[0].Metric)
	assert.Equal(t, "canceled", counterRecords[0].Labels["error_type"])

	spans := tracingSpy.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, "canceled", spans[0].FinishAttrs["error_type"])
}

func Test_FetchManagedObjects_ClassifiesDeadlineExceeded(t *testing.T) {
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	busObject := &fakeBusObject{callErr: context.DeadlineExceeded, destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject, dbusengine.WithMetrics(metricsSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())

	require.ErrorIs(t, err, snapshotview.ErrFetchFailed)

	counterRecords := metricsSpy.CounterRecords()
	require.Len(t, counterRecords, 1)
	assert.Equal(t, "canceled", counterRecords[0].Labels["error_type"])
}

func Test_FetchManagedObjects_WiresOTelTracingCollector(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := provider.Tracer("test")

	busObject := &fakeBusObject{reply: managedObjectsReply(), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(
		busObject,
		dbusengine.WithTracing(oteladapters.NewTracingCollector(tracer)))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "managedobjects.fetch", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func Test_FetchManagedObjects_TracesFailure(t *testing.T) {
	tracingSpy := testdoubles.NewTracingCollectorSpy()
	busObject := &fakeBusObject{callErr: errors.New("boom"), destination: "org.storage.stratis1"}

	fetcher, err := dbusengine.NewFetcherFromBusObject(busObject, dbusengine.WithTracing(tracingSpy))
	require.NoError(t, err)

	_, err = fetcher.FetchManagedObjects(context.Background())
	require.Error(t, err)

	spans := tracingSpy.Spans()
	require.Len(t, spans, 1)
	assert.True(t, spans[0].Finished)
	assert.Equal(t, "error", spans[0].FinishStatus)
	assert.Equal(t, "call_failed", spans[0].FinishAttrs["error_type"])
}
