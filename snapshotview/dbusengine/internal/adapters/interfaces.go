package adapters

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// RawManagedObjects is the wire shape of the ObjectManager bulk call before
// variants are unwrapped into opaque snapshot values.
type RawManagedObjects = map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// BusAdapter abstracts how the managed-objects call reaches the bus, so the
// engine works with a full connection as well as with a pre-built bus object.
type BusAdapter interface {
	GetManagedObjects(ctx context.Context) (RawManagedObjects, error)
}
