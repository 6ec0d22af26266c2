package snapshotview

import (
	"errors"
	"fmt"
)

/***** AccessorPrototype *****/

// AccessorPrototype is the compiled shape of one InterfaceSpec: it knows the
// interface name and the declared property names, and can be bound to any
// number of interface tables from any number of snapshots.
//
// Compile once per known interface (typically during program initialization),
// then bind per matched entry.
type AccessorPrototype struct {
	interfaceName InterfaceNameString
	declared      map[PropertyNameString]struct{}
}

// CompileAccessor compiles an InterfaceSpec into a reusable AccessorPrototype.
//
// Compilation is a pure function of the spec: deterministic, side-effect free,
// and therefore cacheable by spec identity.
func CompileAccessor(spec InterfaceSpec) AccessorPrototype {
	propertyNames := spec.PropertyNames()

	declared := make(map[PropertyNameString]struct{}, len(propertyNames))
	for _, propertyName := range propertyNames {
		declared[propertyName] = struct{}{}
	}

	return AccessorPrototype{
		interfaceName: spec.InterfaceName(),
		declared:      declared,
	}
}

// InterfaceName returns the fully qualified interface name this prototype was compiled for.
func (ap AccessorPrototype) InterfaceName() InterfaceNameString {
	return ap.interfaceName
}

// Bind produces an Accessor over the given interface table.
//
// Binding only stores the reference, it performs no upfront property lookup
// and no defensive copy. The accessor is valid as long as the table is.
func (ap AccessorPrototype) Bind(table InterfaceTable) Accessor {
	return Accessor{prototype: ap, table: table}
}

/***** Accessor *****/

// Accessor exposes read-only property access to one managed object's data,
// restricted to the properties declared by the compiled spec.
//
// Accessors are ephemeral: create one per matched entry, use it, drop it.
type Accessor struct {
	prototype AccessorPrototype
	table     InterfaceTable
}

// Get resolves the value of a declared property from the bound table.
//
// Every failure mode is an ErrSchemaMismatch, since each one means the
// compiled spec and the actual data disagree:
//   - the property was not declared in the compiled spec
//   - the bound table does not implement the spec's interface
//   - the interface is present but lacks the property
func (a Accessor) Get(propertyName PropertyNameString) (Value, error) {
	if _, isDeclared := a.prototype.declared[propertyName]; !isDeclared {
		return nil, errors.Join(
			ErrSchemaMismatch,
			fmt.Errorf("property %q is not declared for interface %q", propertyName, a.prototype.interfaceName),
		)
	}

	properties, implements := a.table[a.prototype.interfaceName]
	if !implements {
		return nil, errors.Join(
			ErrSchemaMismatch,
			fmt.Errorf("bound table does not implement interface %q", a.prototype.interfaceName),
		)
	}

	value, found := properties[propertyName]
	if !found {
		return nil, errors.Join(
			ErrSchemaMismatch,
			fmt.Errorf("property %q is not present for interface %q", propertyName, a.prototype.interfaceName),
		)
	}

	return value, nil
}
