package adapters

import (
	"context"

	"github.com/godbus/dbus/v5"
)

const getManagedObjectsMethod = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"

// BusObjectAdapter implements BusAdapter for a dbus.BusObject, typically the
// service's object manager at its well-known path.
type BusObjectAdapter struct {
	object dbus.BusObject
}

// NewBusObjectAdapter creates an adapter around a pre-built bus object.
func NewBusObjectAdapter(object dbus.BusObject) *BusObjectAdapter {
	return &BusObjectAdapter{object: object}
}

// NewConnAdapter creates an adapter from a connection plus the service name
// and manager path the object manager lives at.
func NewConnAdapter(conn *dbus.Conn, serviceName string, managerPath dbus.ObjectPath) *BusObjectAdapter {
	return &BusObjectAdapter{object: conn.Object(serviceName, managerPath)}
}

// GetManagedObjects performs the ObjectManager bulk call and stores the reply
// into the nested wire shape. Call and store failures are returned unchanged.
func (b *BusObjectAdapter) GetManagedObjects(ctx context.Context) (RawManagedObjects, error) {
	call := b.object.CallWithContext(ctx, getManagedObjectsMethod, 0)
	if call.Err != nil {
		return nil, call.Err
	}

	var result RawManagedObjects
	if storeErr := call.Store(&result); storeErr != nil {
		return nil, storeErr
	}

	return result, nil
}
