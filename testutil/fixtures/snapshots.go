package fixtures

import (
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/stratis"
)

// Deterministic identifiers used across package tests.
const (
	Pool1UUID       = "3e8f4c6a-9d2b-4f7e-8a1c-5b6d7e8f9a0b"
	Pool2UUID       = "7a1b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d"
	Filesystem1UUID = "c4d5e6f7-a8b9-4c0d-9e1f-2a3b4c5d6e7f"
)

// PoolTable builds the interface table of a managed object implementing only
// the pool interface.
func PoolTable(name, uuidText string) snapshotview.InterfaceTable {
	return snapshotview.InterfaceTable{
		stratis.PoolInterfaceName: snapshotview.PropertyTable{
			stratis.PropName: name,
			stratis.PropUUID: uuidText,
		},
	}
}

// FilesystemTable builds the interface table of a managed object implementing
// only the filesystem interface.
func FilesystemTable(name, uuidText, devnode string) snapshotview.InterfaceTable {
	return snapshotview.InterfaceTable{
		stratis.FilesystemInterfaceName: snapshotview.PropertyTable{
			stratis.PropName:    name,
			stratis.PropUUID:    uuidText,
			stratis.PropDevnode: devnode,
		},
	}
}

// StratisSnapshot builds a realistic snapshot of a small stratis daemon:
// two pools, one filesystem, and the manager object which implements neither
// of the well-known interfaces.
func StratisSnapshot() snapshotview.RawSnapshot {
	return snapshotview.RawSnapshot{
		"/org/storage/stratis1":        {"org.storage.stratis1.Manager": {"Version": "1.0.0"}},
		"/org/storage/stratis1/pool/1": PoolTable("mypool", Pool1UUID),
		"/org/storage/stratis1/pool/2": PoolTable("otherpool", Pool2UUID),
		"/org/storage/stratis1/fs/1":   FilesystemTable("myfs", Filesystem1UUID, "/dev/stratis/mypool/myfs"),
	}
}
