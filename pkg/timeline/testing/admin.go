package testing

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *StoreTestSuite) RunAdminTests(test *testing.T) {
	test.Run("Versions_Empty", suite.TestVersions_Empty)
	test.Run("Versions_ListsHistory", suite.TestVersions_ListsHistory)
	test.Run("Versions_IncludesExpired", suite.TestVersions_IncludesExpired)
	test.Run("Stats_Empty", suite.TestStats_Empty)
	test.Run("Stats_CountsNamesAndVersions", suite.TestStats_CountsNamesAndVersions)
	test.Run("Stats_ReflectsRollback", suite.TestStats_ReflectsRollback)
}

// TestVersions_Empty verifies that an unknown name has an empty history,
// not an error.
func (suite *StoreTestSuite) TestVersions_Empty(test *testing.T) {
	store := suite.NewStore()

	versions, err := store.Versions(context.Background(), "missing.txt")

	require.NoError(test, err)
	assert.Empty(test, versions)
}

// TestVersions_ListsHistory verifies that the full history comes back in
// creation order with the recorded fields.
func (suite *StoreTestSuite) TestVersions_ListsHistory(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 10, "file.txt", 100, timeline.TTLSeconds(90))
	MustUploadAt(test, store, 101, "file.txt", 200, timeline.NoTTL())
	MustUploadAt(test, store, 5, "other.txt", 50, timeline.NoTTL())

	versions, err := store.Versions(ctx, "file.txt")
	require.NoError(test, err)
	require.Len(test, versions, 2)

	assert.Equal(test, "file.txt", versions[0].Name)
	assert.Equal(test, int64(100), versions[0].Size)
	assert.Equal(test, timeline.Timestamp(10), versions[0].CreatedAt)
	seconds, bounded := versions[0].TTL.Seconds()
	assert.True(test, bounded)
	assert.Equal(test, int64(90), seconds)

	assert.Equal(test, "file.txt", versions[1].Name)
	assert.Equal(test, int64(200), versions[1].Size)
	assert.Equal(test, timeline.Timestamp(101), versions[1].CreatedAt)
	assert.True(test, versions[1].TTL.IsUnbounded())

	// Every record carries its own identity.
	assert.NotEqual(test, uuid.Nil, versions[0].ID)
	assert.NotEqual(test, uuid.Nil, versions[1].ID)
	assert.NotEqual(test, versions[0].ID, versions[1].ID)
}

// TestVersions_IncludesExpired verifies that history listing is about
// records, not visibility: expired and superseded versions stay listed.
func (suite *StoreTestSuite) TestVersions_IncludesExpired(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 0, "file.txt", 100, timeline.TTLSeconds(1))
	MustUploadAt(test, store, 2, "file.txt", 200, timeline.TTLSeconds(1))
	MustUploadAt(test, store, 4, "file.txt", 300, timeline.NoTTL())

	versions, err := store.Versions(ctx, "file.txt")
	require.NoError(test, err)
	assert.Len(test, versions, 3)
}

// TestStats_Empty verifies the zero state.
func (suite *StoreTestSuite) TestStats_Empty(test *testing.T) {
	store := suite.NewStore()

	stats, err := store.Stats(context.Background())

	require.NoError(test, err)
	assert.Equal(test, 0, stats.Names)
	assert.Equal(test, 0, stats.Versions)
}

// TestStats_CountsNamesAndVersions verifies that stats count distinct names
// and total version records, including records created by copies.
func (suite *StoreTestSuite) TestStats_CountsNamesAndVersions(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 0, "a.txt", 100, timeline.TTLSeconds(1))
	MustUploadAt(test, store, 2, "a.txt", 200, timeline.NoTTL())
	MustUploadAt(test, store, 0, "b.txt", 300, timeline.NoTTL())
	MustCopyAt(test, store, 5, "b.txt", "c.txt")

	stats, err := store.Stats(ctx)
	require.NoError(test, err)
	assert.Equal(test, 3, stats.Names)
	assert.Equal(test, 4, stats.Versions)
}

// TestStats_ReflectsRollback verifies that rollback shrinks both counters.
func (suite *StoreTestSuite) TestStats_ReflectsRollback(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 2, "b.txt", 200, timeline.NoTTL())
	MustCopyAt(test, store, 3, "a.txt", "c.txt")

	require.NoError(test, store.Rollback(ctx, 1))

	stats, err := store.Stats(ctx)
	require.NoError(test, err)
	assert.Equal(test, 1, stats.Names)
	assert.Equal(test, 1, stats.Versions)
}
