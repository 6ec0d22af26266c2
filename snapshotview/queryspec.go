package snapshotview

import (
	"reflect"
	"slices"
)

/***** QuerySpec *****/

// QuerySpec is a conjunctive equality filter over the properties of one
// interface: an entry matches iff every predicate's value equals the entry's
// value for that property. The zero value (empty spec) matches everything.
type QuerySpec struct {
	predicates []QueryPredicate
}

func (qs QuerySpec) Predicates() []QueryPredicate {
	return qs.predicates
}

func (qs QuerySpec) IsEmpty() bool {
	return len(qs.predicates) == 0
}

/***** QueryPredicate *****/

// QueryPredicate is one (property name, expected value) pair of a QuerySpec.
// Expected values are compared structurally against the opaque snapshot values.
type QueryPredicate struct {
	key PropertyNameString
	val Value
}

func P(key PropertyNameString, val Value) QueryPredicate {
	return QueryPredicate{key: key, val: val}
}

func (qp QueryPredicate) Key() PropertyNameString {
	return qp.key
}

func (qp QueryPredicate) Val() Value {
	return qp.val
}

/***** QuerySpecBuilder *****/

// QuerySpecBuilder builds a QuerySpec for the snapshot view query operations.
// It is designed to only allow the "useful" combinations:
//
//   - empty spec (matches every entry implementing the interface)
//   - (predicate)
//   - (predicate AND predicate...)
type QuerySpecBuilder interface {
	// MatchingAllOf adds one or multiple QueryPredicate(s), all of which must match.
	//
	// It sanitizes the input:
	//	- removing QueryPredicate(s) with an empty key
	//	- sorting the QueryPredicate(s) by key
	//	- removing duplicate QueryPredicate(s)
	MatchingAllOf(predicate QueryPredicate, predicates ...QueryPredicate) QuerySpecBuilder

	// MatchingAnything directly creates an empty QuerySpec.
	MatchingAnything() QuerySpec

	// Finalize returns the QuerySpec.
	Finalize() QuerySpec
}

// querySpecBuilder implements QuerySpecBuilder
type querySpecBuilder struct {
	spec QuerySpec
}

// BuildQuerySpec creates a QuerySpecBuilder which must eventually be finalized
// with Finalize() or MatchingAnything().
func BuildQuerySpec() QuerySpecBuilder {
	return querySpecBuilder{}
}

// BuildQuerySpecFromProperties creates a QuerySpec from a plain property map,
// for callers that already hold the expectations in map shape.
func BuildQuerySpecFromProperties(properties map[PropertyNameString]Value) QuerySpec {
	if len(properties) == 0 {
		return QuerySpec{}
	}

	builder := BuildQuerySpec()
	for key, val := range properties {
		builder = builder.MatchingAllOf(P(key, val))
	}

	return builder.Finalize()
}

// MatchingAllOf adds one or multiple QueryPredicate(s), all of which must match.
//
// It sanitizes the input:
//   - removing QueryPredicate(s) with an empty key
//   - sorting the QueryPredicate(s) by key
//   - removing duplicate QueryPredicate(s)
func (qb querySpecBuilder) MatchingAllOf(
	predicate QueryPredicate,
	predicates ...QueryPredicate,
) QuerySpecBuilder {

	qb.spec.predicates = qb.sanitizePredicates(
		append(qb.spec.predicates, append([]QueryPredicate{predicate}, predicates...)...),
	)

	return qb
}

// MatchingAnything directly creates an empty QuerySpec.
func (qb querySpecBuilder) MatchingAnything() QuerySpec {
	return QuerySpec{}
}

// Finalize returns the QuerySpec.
func (qb querySpecBuilder) Finalize() QuerySpec {
	return qb.spec
}

func (qb querySpecBuilder) sanitizePredicates(allPredicates []QueryPredicate) []QueryPredicate {
	allPredicates = slices.DeleteFunc(allPredicates, func(p QueryPredicate) bool { return len(p.key) == 0 })
	slices.SortStableFunc(
		allPredicates,
		func(a, b QueryPredicate) int {
			if a.key > b.key {
				return 1
			}

			if a.key < b.key {
				return -1
			}

			return 0
		})

	allPredicates = slices.CompactFunc(
		allPredicates,
		func(a, b QueryPredicate) bool {
			return a.key == b.key && valuesEqual(a.val, b.val)
		})
	allPredicates = slices.Clip(allPredicates)

	return allPredicates
}

// valuesEqual implements the structural equality policy for opaque snapshot values.
func valuesEqual(a, b Value) bool {
	return reflect.DeepEqual(a, b)
}
