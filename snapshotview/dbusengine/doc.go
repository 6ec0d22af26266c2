// Package dbusengine implements the remote side of the snapshot view: it
// performs the org.freedesktop.DBus.ObjectManager.GetManagedObjects bulk call
// against one service and converts the reply into a snapshotview.RawSnapshot.
//
// The engine is deliberately thin. It does not interpret the service's
// schema, does not retry, and owns no state beyond its bus handle; call
// failures are joined with snapshotview.ErrFetchFailed and passed through.
// Cancellation and timeouts are the caller's business via the context.
//
// A Fetcher can be built from a *dbus.Conn plus service name and manager
// path, or from an already resolved dbus.BusObject. Optional logging, metrics,
// and tracing are wired in through functional options; the oteladapters
// subpackage provides OpenTelemetry implementations of those interfaces.
//
// Common usage pattern:
//
//	conn, err := dbus.SystemBus()
//	if err != nil {
//		// handle error
//	}
//
//	fetcher, err := dbusengine.NewFetcherFromConn(
//		conn,
//		stratis.ServiceName,
//		stratis.ManagerObjectPath,
//		dbusengine.WithLogger(slog.Default()),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	snapshot, err := fetcher.FetchManagedObjects(ctx)
package dbusengine
