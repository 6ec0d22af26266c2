package snapshotview

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidSnapshotJSON is returned when raw snapshot JSON data is malformed or invalid.
	ErrInvalidSnapshotJSON = errors.New("snapshot json is not valid")

	// ErrEncodingSnapshotFailed is returned when a raw snapshot cannot be encoded to JSON.
	ErrEncodingSnapshotFailed = errors.New("encoding snapshot to json failed")
)

type ObjectPathString = string
type InterfaceNameString = string
type PropertyNameString = string

// Value is the leaf value domain of a snapshot. It is defined entirely by the
// remote service and treated as opaque here; comparisons are structural.
type Value = any

// PropertyTable maps property names to their values for one interface of one managed object.
type PropertyTable = map[PropertyNameString]Value

// InterfaceTable maps interface names to property tables for one managed object.
// An object "implements" an interface iff the interface name is a key of its InterfaceTable.
type InterfaceTable = map[InterfaceNameString]PropertyTable

// RawSnapshot is the full result of a managed-objects call: object path -> interface name -> property name -> value.
//
// A RawSnapshot is produced once by the remote call and must be treated as
// immutable afterwards. Views and accessors store references into it and never
// copy it defensively.
type RawSnapshot = map[ObjectPathString]InterfaceTable

// BuildRawSnapshotFromJSON decodes a raw snapshot from its JSON representation.
//
// This is the offline counterpart of fetching from the bus, used for fixtures
// and for snapshots that were captured with RawSnapshotToJSON.
// Returns an error if the data is not valid JSON or not snapshot-shaped.
func BuildRawSnapshotFromJSON(data []byte) (RawSnapshot, error) {
	if !jsoniter.ConfigFastest.Valid(data) {
		return nil, ErrInvalidSnapshotJSON
	}

	var snapshot RawSnapshot
	if unmarshalErr := jsoniter.ConfigFastest.Unmarshal(data, &snapshot); unmarshalErr != nil {
		return nil, errors.Join(ErrInvalidSnapshotJSON, unmarshalErr)
	}

	return snapshot, nil
}

// RawSnapshotToJSON encodes a raw snapshot to JSON.
func RawSnapshotToJSON(snapshot RawSnapshot) ([]byte, error) {
	data, marshalErr := jsoniter.ConfigFastest.Marshal(snapshot)
	if marshalErr != nil {
		return nil, errors.Join(ErrEncodingSnapshotFailed, marshalErr)
	}

	return data, nil
}
