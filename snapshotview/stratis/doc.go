// Package stratis supplies the external configuration for viewing the stratis
// storage daemon's managed objects: well-known service and interface names,
// the InterfaceSpecs for the pool and filesystem kinds, compiled typed
// accessors for both, and the ManagedObjects convenience wrapper around one
// snapshot.
//
// The snapshot core treats all of this as opaque configuration; nothing here
// implements storage logic.
//
// Common usage pattern:
//
//	managed, err := stratis.GetManagedObjects(ctx, fetcher)
//	if err != nil {
//		// handle error
//	}
//
//	pools, err := managed.Pools(
//		snapshotview.BuildQuerySpec().
//			MatchingAllOf(snapshotview.P(stratis.PropName, "mypool")).
//			Finalize())
//	if err != nil {
//		// handle error
//	}
//
//	for objectPath, table := range pools {
//		pool := stratis.BindPool(table)
//		name, err := pool.Name()
//		// ...
//	}
package stratis
