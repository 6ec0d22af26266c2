package snapshotview

import (
	"errors"
	"slices"
)

var ErrEmptyInterfaceNameSupplied = errors.New("empty interfaceName supplied")
var ErrNoPropertyNamesSupplied = errors.New("interface spec needs at least one non-empty property name")

/***** InterfaceSpec *****/

// InterfaceSpec is the static declaration of one interface: its fully
// qualified name and the ordered set of property names it exposes.
//
// It is configuration data supplied per object kind and is never constructed
// from snapshot contents.
//
// While it is a plain value type, it should only be constructed with the
// supplied factory method BuildInterfaceSpec, which sanitizes and validates
// the input.
type InterfaceSpec struct {
	interfaceName InterfaceNameString
	propertyNames []PropertyNameString
}

// BuildInterfaceSpec is a factory method for InterfaceSpec.
//
// It sanitizes the property names:
//   - removing empty property names ("")
//   - removing duplicate property names, keeping the first occurrence
//
// The declared order of the remaining property names is preserved.
// Returns an error if the interface name is empty or no property name survives
// sanitization.
func BuildInterfaceSpec(
	interfaceName InterfaceNameString,
	propertyName PropertyNameString,
	propertyNames ...PropertyNameString,
) (InterfaceSpec, error) {

	if interfaceName == "" {
		return InterfaceSpec{}, ErrEmptyInterfaceNameSupplied
	}

	sanitized := sanitizePropertyNames(propertyName, propertyNames...)
	if len(sanitized) == 0 {
		return InterfaceSpec{}, ErrNoPropertyNamesSupplied
	}

	return InterfaceSpec{
		interfaceName: interfaceName,
		propertyNames: sanitized,
	}, nil
}

func sanitizePropertyNames(
	propertyName PropertyNameString,
	propertyNames ...PropertyNameString,
) []PropertyNameString {

	allPropertyNames := append([]PropertyNameString{propertyName}, propertyNames...)

	seen := make(map[PropertyNameString]struct{}, len(allPropertyNames))
	sanitized := make([]PropertyNameString, 0, len(allPropertyNames))

	for _, name := range allPropertyNames {
		if name == "" {
			continue
		}

		if _, isDuplicate := seen[name]; isDuplicate {
			continue
		}

		seen[name] = struct{}{}
		sanitized = append(sanitized, name)
	}

	return slices.Clip(sanitized)
}

// InterfaceName returns the fully qualified name of the declared interface.
func (is InterfaceSpec) InterfaceName() InterfaceNameString {
	return is.interfaceName
}

// PropertyNames returns the declared property names in declaration order.
// The returned slice is a copy, the spec itself stays immutable.
func (is InterfaceSpec) PropertyNames() []PropertyNameString {
	return slices.Clone(is.propertyNames)
}

// Declares reports whether the given property name is part of this spec.
func (is InterfaceSpec) Declares(propertyName PropertyNameString) bool {
	return slices.Contains(is.propertyNames, propertyName)
}
