package snapshotview

import (
	"errors"
)

// ErrSchemaMismatch signals that a query spec or an accessor referenced a
// property that is absent from the actual data of an interface known to be
// present. This is always a configuration defect of the caller, never an
// expected runtime condition, and is surfaced immediately instead of being
// treated as "no match".
var ErrSchemaMismatch = errors.New("schema mismatch between spec and snapshot data")

// ErrFetchFailed wraps any failure of the remote managed-objects call.
// The underlying cause is joined and passed through without interpretation.
var ErrFetchFailed = errors.New("fetching managed objects failed")

var ErrNilBusConnection = errors.New("bus connection must not be nil")
var ErrNilBusObject = errors.New("bus object must not be nil")
var ErrEmptyServiceName = errors.New("empty serviceName supplied")
