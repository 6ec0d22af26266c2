package stratis

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
)

// Well-known identifiers of the stratis storage daemon's D-Bus API.
// They are configuration data as far as the snapshot core is concerned.
const (
	ServiceName       = "org.storage.stratis1"
	ManagerObjectPath = dbus.ObjectPath("/org/storage/stratis1")

	PoolInterfaceName       = ServiceName + ".pool"
	FilesystemInterfaceName = ServiceName + ".filesystem"

	PoolKind       = "pool"
	FilesystemKind = "filesystem"
)

// Property names the daemon exposes on the interfaces above.
const (
	PropName    = "Name"
	PropUUID    = "Uuid"
	PropDevnode = "Devnode"
)

// PoolSpec declares the pool interface and its known properties.
var PoolSpec = mustBuildSpec(PoolInterfaceName, PropName, PropUUID)

// FilesystemSpec declares the filesystem interface and its known properties.
var FilesystemSpec = mustBuildSpec(FilesystemInterfaceName, PropName, PropUUID, PropDevnode)

// mustBuildSpec exists because the specs above are static configuration; a
// build failure here is a defect in this package, not a runtime condition.
func mustBuildSpec(
	interfaceName snapshotview.InterfaceNameString,
	propertyName snapshotview.PropertyNameString,
	propertyNames ...snapshotview.PropertyNameString,
) snapshotview.InterfaceSpec {

	spec, err := snapshotview.BuildInterfaceSpec(interfaceName, propertyName, propertyNames...)
	if err != nil {
		panic(err)
	}

	return spec
}

// NewSchemaRegistry returns a registry preloaded with the stratis object kinds.
func NewSchemaRegistry() (*snapshotview.SchemaRegistry, error) {
	registry := snapshotview.NewSchemaRegistry()

	if err := registry.Register(PoolKind, PoolSpec); err != nil {
		return nil, err
	}

	if err := registry.Register(FilesystemKind, FilesystemSpec); err != nil {
		return nil, err
	}

	return registry, nil
}

/***** ManagedObjects *****/

// ManagedObjects wraps one raw snapshot of the stratis daemon with kind-aware
// query methods, mirroring the daemon's managed-objects call structure.
type ManagedObjects struct {
	view snapshotview.View
}

// BuildManagedObjects wraps the given raw snapshot.
// The snapshot must not be mutated afterwards.
func BuildManagedObjects(snapshot snapshotview.RawSnapshot) ManagedObjects {
	return ManagedObjects{view: snapshotview.BuildView(snapshot)}
}

// Pools enumerates the entries implementing the pool interface that match the
// query spec. An empty spec returns all pools.
func (mo ManagedObjects) Pools(spec snapshotview.QuerySpec) (snapshotview.ManagedObjectSeq, error) {
	return mo.view.EntriesImplementing(PoolInterfaceName, spec)
}

// Filesystems enumerates all entries implementing the filesystem interface.
func (mo ManagedObjects) Filesystems() (snapshotview.ManagedObjectSeq, error) {
	return mo.view.EntriesImplementing(FilesystemInterfaceName, snapshotview.QuerySpec{})
}

// View exposes the underlying snapshot view for queries against interfaces
// this package does not declare.
func (mo ManagedObjects) View() snapshotview.View {
	return mo.view
}

/***** fetch convenience *****/

// ManagedObjectsFetcher is the boundary to the remote call; dbusengine.Fetcher satisfies it.
type ManagedObjectsFetcher interface {
	FetchManagedObjects(ctx context.Context) (snapshotview.RawSnapshot, error)
}

// GetManagedObjects fetches a fresh snapshot and wraps it.
// Fetch failures are passed through unchanged.
func GetManagedObjects(ctx context.Context, fetcher ManagedObjectsFetcher) (ManagedObjects, error) {
	snapshot, fetchErr := fetcher.FetchManagedObjects(ctx)
	if fetchErr != nil {
		return ManagedObjects{}, fetchErr
	}

	return BuildManagedObjects(snapshot), nil
}
