package testing

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *StoreTestSuite) RunRollbackTests(test *testing.T) {
	test.Run("Rollback_Validation", suite.TestRollback_Validation)
	test.Run("Rollback_FutureNoOp", suite.TestRollback_FutureNoOp)
	test.Run("Rollback_RemovesNewerVersions", suite.TestRollback_RemovesNewerVersions)
	test.Run("Rollback_UndoesCopyThenUpload", suite.TestRollback_UndoesCopyThenUpload)
	test.Run("Rollback_RestoresOverwrittenTTL", suite.TestRollback_RestoresOverwrittenTTL)
	test.Run("Rollback_DropsEmptiedNames", suite.TestRollback_DropsEmptiedNames)
}

// TestRollback_Validation verifies that a negative timestamp is rejected.
func (suite *StoreTestSuite) TestRollback_Validation(test *testing.T) {
	store := suite.NewStore()

	// Act
	err := store.Rollback(context.Background(), -1)

	// Assert
	AssertErrorCode(test, timeline.ErrInvalidArgument, err)
	AssertErrorMessage(test, "timestamp must be non-negative", err)
}

// TestRollback_FutureNoOp verifies that rolling back to an instant at or
// beyond all recorded data changes nothing, and does not resurrect versions
// that expired before it.
func (suite *StoreTestSuite) TestRollback_FutureNoOp(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 2, "dir/a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 3, "dir/b.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 4, "dir/c.txt", 100, timeline.TTLSeconds(96))
	MustCopyAt(test, store, 5, "dir/c.txt", "dir/d.txt")
	MustCopyAt(test, store, 6, "dir/a.txt", "dir/e.txt")

	before100 := []string{"dir/a.txt", "dir/b.txt", "dir/c.txt", "dir/d.txt", "dir/e.txt"}
	before101 := []string{"dir/a.txt", "dir/b.txt", "dir/e.txt"}
	AssertSearchAt(test, store, 100, "dir/", before100)
	AssertSearchAt(test, store, 101, "dir/", before101)

	// Rollback into the future keeps everything.
	err := store.Rollback(ctx, 1000)
	require.NoError(test, err)
	AssertSearchAt(test, store, 100, "dir/", before100)
	AssertSearchAt(test, store, 101, "dir/", before101)

	// Rollback to the instant of the last write keeps everything too.
	err = store.Rollback(ctx, 6)
	require.NoError(test, err)
	AssertSearchAt(test, store, 100, "dir/", before100)
	AssertSearchAt(test, store, 101, "dir/", before101)
}

// TestRollback_RemovesNewerVersions verifies that consecutive rollbacks peel
// writes off in reverse creation order.
func (suite *StoreTestSuite) TestRollback_RemovesNewerVersions(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 2, "dir/a.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 3, "dir/b.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 4, "dir/c.txt", 100, timeline.TTLSeconds(96))
	MustCopyAt(test, store, 5, "dir/c.txt", "dir/d.txt")
	MustCopyAt(test, store, 6, "dir/a.txt", "dir/e.txt")

	AssertSearchAt(test, store, 100, "dir/", []string{
		"dir/a.txt", "dir/b.txt", "dir/c.txt", "dir/d.txt", "dir/e.txt",
	})
	AssertSearchAt(test, store, 101, "dir/", []string{
		"dir/a.txt", "dir/b.txt", "dir/e.txt",
	})

	// Undo the copy that created dir/e.
	require.NoError(test, store.Rollback(ctx, 5))
	AssertSearchAt(test, store, 100, "dir/", []string{
		"dir/a.txt", "dir/b.txt", "dir/c.txt", "dir/d.txt",
	})
	AssertSearchAt(test, store, 101, "dir/", []string{
		"dir/a.txt", "dir/b.txt",
	})

	// Undo the copy that created dir/d.
	require.NoError(test, store.Rollback(ctx, 4))
	AssertSearchAt(test, store, 100, "dir/", []string{
		"dir/a.txt", "dir/b.txt", "dir/c.txt",
	})

	// Undo the upload of dir/c.
	require.NoError(test, store.Rollback(ctx, 3))
	AssertSearchAt(test, store, 100, "dir/", []string{
		"dir/a.txt", "dir/b.txt",
	})

	// Undo the upload of dir/b.
	require.NoError(test, store.Rollback(ctx, 2))
	AssertSearchAt(test, store, 100, "dir/", []string{
		"dir/a.txt",
	})

	// Nothing existed at instant 0.
	require.NoError(test, store.Rollback(ctx, 0))
	AssertSearchAt(test, store, 100, "dir/", []string{})
	AssertSearchAt(test, store, 100, "", []string{})
}

// TestRollback_UndoesCopyThenUpload verifies rollback across both write
// kinds: first the copy disappears, then the original upload.
func (suite *StoreTestSuite) TestRollback_UndoesCopyThenUpload(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 1, "a.txt", 100, timeline.NoTTL())
	MustCopyAt(test, store, 2, "a.txt", "b.txt")

	require.NoError(test, store.Rollback(ctx, 1))
	AssertNotFoundAt(test, store, 2, "b.txt")
	AssertSizeAt(test, store, 1, "a.txt", 100)

	require.NoError(test, store.Rollback(ctx, 0))
	AssertNotFoundAt(test, store, 1, "a.txt")
}

// TestRollback_RestoresOverwrittenTTL verifies that removing a copy record
// re-exposes the previously active destination version with its original
// expiry.
func (suite *StoreTestSuite) TestRollback_RestoresOverwrittenTTL(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.TTLSeconds(90))
	MustUploadAt(test, store, 10, "dest.txt", 200, timeline.TTLSeconds(1000))
	MustCopyAt(test, store, 50, "source.txt", "dest.txt")

	AssertNotFoundAt(test, store, 9, "source.txt")
	AssertSizeAt(test, store, 10, "source.txt", 100)
	AssertSizeAt(test, store, 100, "source.txt", 100)
	AssertNotFoundAt(test, store, 101, "source.txt")

	// The copy carries the source's remaining TTL.
	AssertNotFoundAt(test, store, 9, "dest.txt")
	AssertSizeAt(test, store, 10, "dest.txt", 200)
	AssertSizeAt(test, store, 49, "dest.txt", 200)
	AssertSizeAt(test, store, 50, "dest.txt", 100)
	AssertSizeAt(test, store, 100, "dest.txt", 100)
	AssertNotFoundAt(test, store, 101, "dest.txt")

	// Remove the copy record and the original version takes over again.
	require.NoError(test, store.Rollback(ctx, 49))

	AssertSizeAt(test, store, 10, "source.txt", 100)
	AssertSizeAt(test, store, 100, "source.txt", 100)
	AssertNotFoundAt(test, store, 101, "source.txt")

	AssertSizeAt(test, store, 10, "dest.txt", 200)
	AssertSizeAt(test, store, 49, "dest.txt", 200)
	AssertSizeAt(test, store, 50, "dest.txt", 200)
	AssertSizeAt(test, store, 100, "dest.txt", 200)
	AssertSizeAt(test, store, 101, "dest.txt", 200)
	AssertSizeAt(test, store, 1010, "dest.txt", 200)
	AssertNotFoundAt(test, store, 1011, "dest.txt")
}

// TestRollback_DropsEmptiedNames verifies that a name whose whole history is
// rolled away behaves exactly like a name that never existed.
func (suite *StoreTestSuite) TestRollback_DropsEmptiedNames(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 5, "gone.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 1, "kept.txt", 100, timeline.NoTTL())

	require.NoError(test, store.Rollback(ctx, 4))

	AssertNotFoundAt(test, store, 1000, "gone.txt")
	AssertSizeAt(test, store, 1000, "kept.txt", 100)

	versions, err := store.Versions(ctx, "gone.txt")
	require.NoError(test, err)
	assert.Empty(test, versions)

	stats, err := store.Stats(ctx)
	require.NoError(test, err)
	assert.Equal(test, 1, stats.Names)
	assert.Equal(test, 1, stats.Versions)

	// The emptied name is free for a fresh history at any instant.
	MustUploadAt(test, store, 2, "gone.txt", 300, timeline.NoTTL())
	AssertSizeAt(test, store, 2, "gone.txt", 300)
}
