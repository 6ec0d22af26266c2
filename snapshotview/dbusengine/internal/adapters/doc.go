// Package adapters provides bus adapter implementations for the D-Bus fetch engine.
//
// The adapter pattern keeps the engine independent of how callers hold their
// bus handle: a full *dbus.Conn or an already resolved dbus.BusObject both end
// up behind the common BusAdapter interface, which exposes exactly one
// operation, the ObjectManager managed-objects bulk call.
package adapters
