// Package snapshotview provides typed, queryable views over the nested table
// returned by a managed-objects bulk call (object path -> interface name ->
// property name -> value).
//
// The package never talks to the service itself: a RawSnapshot is produced by
// an external fetch (see the dbusengine subpackage), then wrapped in a View
// for filtered enumeration. Known interfaces are described by InterfaceSpec
// values that compile into reusable accessor prototypes.
//
// Key types:
//   - RawSnapshot: the immutable three-level table from one fetch
//   - View: predicate-filtered, re-iterable enumeration over a snapshot
//   - QuerySpec: a conjunctive equality filter over one interface's properties
//   - InterfaceSpec: static declaration of an interface and its property names
//   - AccessorPrototype / Accessor: compiled spec, bound to one entry's table
//
// Common usage pattern:
//
//	snapshot, err := fetcher.FetchManagedObjects(ctx)
//	if err != nil {
//		// handle error
//	}
//
//	view := snapshotview.BuildView(snapshot)
//
//	spec := snapshotview.BuildQuerySpec().
//		MatchingAllOf(snapshotview.P("Name", "mypool")).
//		Finalize()
//
//	pools, err := view.EntriesImplementing(poolInterfaceName, spec)
//	if err != nil {
//		// a spec key was absent from a matched entry: configuration defect
//	}
//
//	for objectPath, table := range pools {
//		pool := poolPrototype.Bind(table)
//		name, err := pool.Get("Name")
//		// ...
//	}
//
// Each query call materializes its match set once, in lexical object path
// order; the returned sequence replays those matches and is never exhausted
// by consumption. Everything is read-only, so concurrent readers need no
// locking as long as the snapshot itself is not mutated after construction.
package snapshotview
