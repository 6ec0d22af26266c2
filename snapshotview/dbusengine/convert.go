package dbusengine

import (
	"github.com/godbus/dbus/v5"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/dbusengine/internal/adapters"
)

// snapshotFromRawObjects converts the wire shape of the managed-objects reply
// into the engine-agnostic snapshot tables, unwrapping every variant so the
// core only ever sees plain opaque values.
func snapshotFromRawObjects(rawObjects adapters.RawManagedObjects) snapshotview.RawSnapshot {
	snapshot := make(snapshotview.RawSnapshot, len(rawObjects))

	for objectPath, rawInterfaces := range rawObjects {
		interfaceTable := make(snapshotview.InterfaceTable, len(rawInterfaces))

		for interfaceName, rawProperties := range rawInterfaces {
			propertyTable := make(snapshotview.PropertyTable, len(rawProperties))

			for propertyName, variant := range rawProperties {
				propertyTable[propertyName] = unwrapValue(variant.Value())
			}

			interfaceTable[interfaceName] = propertyTable
		}

		snapshot[string(objectPath)] = interfaceTable
	}

	return snapshot
}

// unwrapValue recursively strips dbus.Variant wrappers from container values.
// Scalars, object paths, and typed slices pass through unchanged; their exact
// types stay part of the opaque value domain.
func unwrapValue(raw any) snapshotview.Value {
	switch typed := raw.(type) {
	case dbus.Variant:
		return unwrapValue(typed.Value())

	case []dbus.Variant:
		unwrapped := make([]any, len(typed))
		for i, element := range typed {
			unwrapped[i] = unwrapValue(element.Value())
		}
		return unwrapped

	case map[string]dbus.Variant:
		unwrapped := make(map[string]any, len(typed))
		for key, element := range typed {
			unwrapped[key] = unwrapValue(element.Value())
		}
		return unwrapped

	case []any:
		unwrapped := make([]any, len(typed))
		for i, element := range typed {
			unwrapped[i] = unwrapValue(element)
		}
		return unwrapped

	case map[string]any:
		unwrapped := make(map[string]any, len(typed))
		for key, element := range typed {
			unwrapped[key] = unwrapValue(element)
		}
		return unwrapped

	default:
		return typed
	}
}
