package snapshotview

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

/***** View *****/

// ManagedObjectSeq is a finite, re-iterable sequence of (object path, interface
// table) pairs. Ranging over it multiple times replays the same matches in the
// same order; it is never a one-shot stream.
type ManagedObjectSeq = iter.Seq2[ObjectPathString, InterfaceTable]

// View wraps one raw snapshot and offers filtered enumeration over its entries.
//
// The view never writes, so any number of goroutines may query the same View
// (or multiple Views over the same snapshot) concurrently, as long as the
// RawSnapshot itself is not mutated after construction.
type View struct {
	snapshot RawSnapshot
}

// BuildView wraps the given raw snapshot.
//
// The snapshot is stored by reference, without a defensive copy. It must not
// be mutated for the lifetime of the view or of any accessor bound to one of
// its tables.
func BuildView(snapshot RawSnapshot) View {
	return View{snapshot: snapshot}
}

// EntriesImplementing enumerates the snapshot entries that implement the given
// interface and satisfy every predicate of the query spec. An empty spec
// matches every entry implementing the interface.
//
// The match set is materialized once, at call time, against the stored
// snapshot reference; the returned sequence only replays it, in lexical
// object path order. Repeated calls with equal arguments on an unmodified
// snapshot produce identical sequences.
//
// Entries lacking the interface are simply excluded. A spec key that is absent
// from the property table of an entry implementing the interface is a contract
// violation and fails the whole call with ErrSchemaMismatch before any entry
// is yielded: no partial results are observable.
func (v View) EntriesImplementing(
	interfaceName InterfaceNameString,
	spec QuerySpec,
) (ManagedObjectSeq, error) {

	matching, matchErr := v.matchingPaths(interfaceName, spec)
	if matchErr != nil {
		return nil, matchErr
	}

	sequence := func(yield func(ObjectPathString, InterfaceTable) bool) {
		for _, objectPath := range matching {
			if !yield(objectPath, v.snapshot[objectPath]) {
				return
			}
		}
	}

	return sequence, nil
}

func (v View) matchingPaths(
	interfaceName InterfaceNameString,
	spec QuerySpec,
) ([]ObjectPathString, error) {

	objectPaths := make([]ObjectPathString, 0, len(v.snapshot))
	for objectPath := range v.snapshot {
		objectPaths = append(objectPaths, objectPath)
	}
	slices.Sort(objectPaths)

	matching := make([]ObjectPathString, 0, len(objectPaths))

	for _, objectPath := range objectPaths {
		properties, implements := v.snapshot[objectPath][interfaceName]
		if !implements {
			continue
		}

		// Presence of every spec key is checked before any equality so that a
		// schema mismatch is reported even when another predicate already
		// failed to match.
		for _, predicate := range spec.Predicates() {
			if _, found := properties[predicate.Key()]; !found {
				return nil, errors.Join(
					ErrSchemaMismatch,
					fmt.Errorf(
						"property %q is not present for interface %q at object path %q",
						predicate.Key(), interfaceName, objectPath),
				)
			}
		}

		if v.satisfiesAllPredicates(properties, spec) {
			matching = append(matching, objectPath)
		}
	}

	return slices.Clip(matching), nil
}

func (v View) satisfiesAllPredicates(properties PropertyTable, spec QuerySpec) bool {
	for _, predicate := range spec.Predicates() {
		if !valuesEqual(properties[predicate.Key()], predicate.Val()) {
			return false
		}
	}

	return true
}
