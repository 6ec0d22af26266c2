package snapshotview

import (
	"errors"
	"fmt"
	"slices"
)

type ObjectKindString = string

var ErrEmptyObjectKindSupplied = errors.New("empty object kind supplied")
var ErrDuplicateObjectKind = errors.New("object kind is already registered")

/***** SchemaRegistry *****/

// SchemaRegistry holds the InterfaceSpec for each known object kind
// (e.g. "pool", "filesystem") together with its compiled AccessorPrototype.
//
// It is meant to be assembled once during program initialization and treated
// as read-only afterwards; it is not safe for concurrent registration.
type SchemaRegistry struct {
	specs      map[ObjectKindString]InterfaceSpec
	prototypes map[ObjectKindString]AccessorPrototype
}

// NewSchemaRegistry creates an empty SchemaRegistry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		specs:      make(map[ObjectKindString]InterfaceSpec),
		prototypes: make(map[ObjectKindString]AccessorPrototype),
	}
}

// Register adds the spec for an object kind and compiles its prototype.
// Each kind can only be registered once.
func (sr *SchemaRegistry) Register(kind ObjectKindString, spec InterfaceSpec) error {
	if kind == "" {
		return ErrEmptyObjectKindSupplied
	}

	if _, alreadyRegistered := sr.specs[kind]; alreadyRegistered {
		return errors.Join(ErrDuplicateObjectKind, fmt.Errorf("kind: %q", kind))
	}

	sr.specs[kind] = spec
	sr.prototypes[kind] = CompileAccessor(spec)

	return nil
}

// Spec returns the registered InterfaceSpec for a kind.
func (sr *SchemaRegistry) Spec(kind ObjectKindString) (InterfaceSpec, bool) {
	spec, found := sr.specs[kind]
	return spec, found
}

// Prototype returns the compiled AccessorPrototype for a kind.
// The prototype was compiled exactly once, at registration time.
func (sr *SchemaRegistry) Prototype(kind ObjectKindString) (AccessorPrototype, bool) {
	prototype, found := sr.prototypes[kind]
	return prototype, found
}

// Kinds returns all registered kinds in lexical order.
func (sr *SchemaRegistry) Kinds() []ObjectKindString {
	kinds := make([]ObjectKindString, 0, len(sr.specs))
	for kind := range sr.specs {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	return kinds
}
