package stratis

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
)

// ErrUnexpectedPropertyValue is returned when a property exists but its value
// does not have the type this package expects for it.
var ErrUnexpectedPropertyValue = errors.New("property value has unexpected type")

// The prototypes are compiled exactly once; binding them per entry is O(1).
var poolPrototype = snapshotview.CompileAccessor(PoolSpec)
var filesystemPrototype = snapshotview.CompileAccessor(FilesystemSpec)

/***** Pool *****/

// Pool exposes typed, read-only access to one managed object's pool
// properties. It stores a reference into the snapshot and is only valid as
// long as the snapshot is.
type Pool struct {
	accessor snapshotview.Accessor
}

// BindPool binds one entry's interface table, as yielded by ManagedObjects.Pools.
func BindPool(table snapshotview.InterfaceTable) Pool {
	return Pool{accessor: poolPrototype.Bind(table)}
}

// Name returns the pool's Name property.
func (p Pool) Name() (string, error) {
	return stringProperty(p.accessor, PropName)
}

// UUID returns the pool's Uuid property, parsed.
func (p Pool) UUID() (uuid.UUID, error) {
	return uuidProperty(p.accessor, PropUUID)
}

/***** Filesystem *****/

// Filesystem exposes typed, read-only access to one managed object's
// filesystem properties, with the same lifetime rules as Pool.
type Filesystem struct {
	accessor snapshotview.Accessor
}

// BindFilesystem binds one entry's interface table, as yielded by ManagedObjects.Filesystems.
func BindFilesystem(table snapshotview.InterfaceTable) Filesystem {
	return Filesystem{accessor: filesystemPrototype.Bind(table)}
}

// Name returns the filesystem's Name property.
func (f Filesystem) Name() (string, error) {
	return stringProperty(f.accessor, PropName)
}

// UUID returns the filesystem's Uuid property, parsed.
func (f Filesystem) UUID() (uuid.UUID, error) {
	return uuidProperty(f.accessor, PropUUID)
}

// Devnode returns the filesystem's Devnode property.
func (f Filesystem) Devnode() (string, error) {
	return stringProperty(f.accessor, PropDevnode)
}

func stringProperty(
	accessor snapshotview.Accessor,
	propertyName snapshotview.PropertyNameString,
) (string, error) {

	value, getErr := accessor.Get(propertyName)
	if getErr != nil {
		return "", getErr
	}

	text, isString := value.(string)
	if !isString {
		return "", errors.Join(
			ErrUnexpectedPropertyValue,
			fmt.Errorf("property %q is %T, expected string", propertyName, value),
		)
	}

	return text, nil
}

func uuidProperty(
	accessor snapshotview.Accessor,
	propertyName snapshotview.PropertyNameString,
) (uuid.UUID, error) {

	text, stringErr := stringProperty(accessor, propertyName)
	if stringErr != nil {
		return uuid.UUID{}, stringErr
	}

	parsed, parseErr := uuid.Parse(text)
	if parseErr != nil {
		return uuid.UUID{}, errors.Join(ErrUnexpectedPropertyValue, parseErr)
	}

	return parsed, nil
}
