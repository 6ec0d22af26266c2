package stratis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/stratis"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/testutil/fixtures"
)

func collectPaths(t *testing.T, sequence snapshotview.ManagedObjectSeq) []string {
	t.Helper()

	var paths []string
	for objectPath := range sequence {
		paths = append(paths, objectPath)
	}

	return paths
}

func Test_WellKnownSpecs(t *testing.T) {
	assert.Equal(t, "org.storage.stratis1.pool", stratis.PoolSpec.InterfaceName())
	assert.Equal(t,
		[]snapshotview.PropertyNameString{"Name", "Uuid"},
		stratis.PoolSpec.PropertyNames())

	assert.Equal(t, "org.storage.stratis1.filesystem", stratis.FilesystemSpec.InterfaceName())
	assert.Equal(t,
		[]snapshotview.PropertyNameString{"Name", "Uuid", "Devnode"},
		stratis.FilesystemSpec.PropertyNames())
}

func Test_NewSchemaRegistry_HoldsBothKinds(t *testing.T) {
	registry, err := stratis.NewSchemaRegistry()

	require.NoError(t, err)
	assert.Equal(t, []snapshotview.ObjectKindString{"filesystem", "pool"}, registry.Kinds())

	prototype, found := registry.Prototype(stratis.PoolKind)
	require.True(t, found)
	assert.Equal(t, stratis.PoolInterfaceName, prototype.InterfaceName())
}

func Test_ManagedObjects_Pools_EmptySpec(t *testing.T) {
	managed := stratis.BuildManagedObjects(fixtures.StratisSnapshot())

	pools, err := managed.Pools(snapshotview.QuerySpec{})

	require.NoError(t, err)
	assert.Equal(t,
		[]string{"/org/storage/stratis1/pool/1", "/org/storage/stratis1/pool/2"},
		collectPaths(t, pools))
}

func Test_ManagedObjects_Pools_WithSpec(t *testing.T) {
	managed := stratis.BuildManagedObjects(fixtures.StratisSnapshot())

	spec := snapshotview.BuildQuerySpec().
		MatchingAllOf(snapshotview.P(stratis.PropName, "mypool")).
		Finalize()

	pools, err := managed.Pools(spec)

	require.NoError(t, err)
	assert.Equal(t, []string{"/org/storage/stratis1/pool/1"}, collectPaths(t, pools))
}

func Test_ManagedObjects_Pools_NoMatch(t *testing.T) {
	managed := stratis.BuildManagedObjects(fixtures.StratisSnapshot())

	spec := snapshotview.BuildQuerySpec().
		MatchingAllOf(snapshotview.P(stratis.PropName, "nomatch")).
		Finalize()

	pools, err := managed.Pools(spec)

	require.NoError(t, err)
	assert.Empty(t, collectPaths(t, pools))
}

func Test_ManagedObjects_Filesystems(t *testing.T) {
	managed := stratis.BuildManagedObjects(fixtures.StratisSnapshot())

	filesystems, err := managed.Filesystems()

	require.NoError(t, err)
	assert.Equal(t, []string{"/org/storage/stratis1/fs/1"}, collectPaths(t, filesystems))
}

func Test_ManagedObjects_MethodsMatchGenericViewQueries(t *testing.T) {
	snapshot := fixtures.StratisSnapshot()
	managed := stratis.BuildManagedObjects(snapshot)
	view := snapshotview.BuildView(snapshot)

	fromMethod, err := managed.Filesystems()
	require.NoError(t, err)
	fromView, err := view.EntriesImplementing(stratis.FilesystemInterfaceName, snapshotview.QuerySpec{})
	require.NoError(t, err)

	assert.Equal(t, collectPaths(t, fromView), collectPaths(t, fromMethod))
}

/***** fetch convenience *****/

type stubFetcher struct {
	snapshot snapshotview.RawSnapshot
	err      error
}

func (s stubFetcher) FetchManagedObjects(_ context.Context) (snapshotview.RawSnapshot, error) {
	return s.snapshot, s.err
}

func Test_GetManagedObjects(t *testing.T) {
	fetcher := stubFetcher{snapshot: fixtures.StratisSnapshot()}

	managed, err := stratis.GetManagedObjects(context.Background(), fetcher)

	require.NoError(t, err)

	pools, err := managed.Pools(snapshotview.QuerySpec{})
	require.NoError(t, err)
	assert.Len(t, collectPaths(t, pools), 2)
}

func Test_GetManagedObjects_PassesFetchErrorsThrough(t *testing.T) {
	fetchErr := errors.Join(snapshotview.ErrFetchFailed, errors.New("bus unreachable"))
	fetcher := stubFetcher{err: fetchErr}

	_, err := stratis.GetManagedObjects(context.Background(), fetcher)

	assert.ErrorIs(t, err, snapshotview.ErrFetchFailed)
}
