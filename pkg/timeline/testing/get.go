package testing

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *StoreTestSuite) RunGetTests(test *testing.T) {
	test.Run("Get_Validation", suite.TestGet_Validation)
	test.Run("Get_MissingName", suite.TestGet_MissingName)
	test.Run("Get_BeforeCreation", suite.TestGet_BeforeCreation)
	test.Run("Get_UnboundedStaysVisible", suite.TestGet_UnboundedStaysVisible)
	test.Run("Get_ExpiryBoundary", suite.TestGet_ExpiryBoundary)
	test.Run("Get_NoFallbackToOlderVersions", suite.TestGet_NoFallbackToOlderVersions)
	test.Run("Get_Idempotent", suite.TestGet_Idempotent)
}

// TestGet_Validation verifies that a negative timestamp is rejected.
func (suite *StoreTestSuite) TestGet_Validation(test *testing.T) {
	store := suite.NewStore()

	// Act
	_, err := store.GetAt(context.Background(), -10, "file.txt")

	// Assert
	AssertErrorCode(test, timeline.ErrInvalidArgument, err)
	AssertErrorMessage(test, "timestamp must be non-negative", err)
}

// TestGet_MissingName verifies that unknown names report not found. Reads
// do not validate the name, so the empty name simply never resolves.
func (suite *StoreTestSuite) TestGet_MissingName(test *testing.T) {
	store := suite.NewStore()

	AssertNotFoundAt(test, store, 0, "file.txt")
	AssertNotFoundAt(test, store, 0, "")

	MustUploadAt(test, store, 10, "file.txt", 100, timeline.NoTTL())

	AssertNotFoundAt(test, store, 0, "")
	AssertNotFoundAt(test, store, 1000, "other.txt")
}

// TestGet_BeforeCreation verifies that a version is invisible before its
// creation instant.
func (suite *StoreTestSuite) TestGet_BeforeCreation(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "file.txt", 100, timeline.NoTTL())

	AssertNotFoundAt(test, store, 0, "file.txt")
	AssertNotFoundAt(test, store, 9, "file.txt")
	AssertSizeAt(test, store, 10, "file.txt", 100)
}

// TestGet_UnboundedStaysVisible verifies that a version without TTL never
// expires.
func (suite *StoreTestSuite) TestGet_UnboundedStaysVisible(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 0, "file.txt", 100, timeline.NoTTL())

	AssertSizeAt(test, store, 0, "file.txt", 100)
	AssertSizeAt(test, store, 1, "file.txt", 100)
	AssertSizeAt(test, store, 1000, "file.txt", 100)
}

// TestGet_ExpiryBoundary verifies the inclusive expiry instant: a version
// created at 10 with ttl 90 is visible through 100 and gone at 101.
func (suite *StoreTestSuite) TestGet_ExpiryBoundary(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "file.txt", 100, timeline.TTLSeconds(90))

	AssertNotFoundAt(test, store, 9, "file.txt")
	AssertSizeAt(test, store, 10, "file.txt", 100)
	AssertSizeAt(test, store, 99, "file.txt", 100)
	AssertSizeAt(test, store, 100, "file.txt", 100)
	AssertNotFoundAt(test, store, 101, "file.txt")
}

// TestGet_NoFallbackToOlderVersions verifies that only the newest version
// at the query instant is considered: when it has expired, older versions
// do not become visible again even if their own TTL would still run.
func (suite *StoreTestSuite) TestGet_NoFallbackToOlderVersions(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 0, "file.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 0, "short.txt", 50, timeline.TTLSeconds(10))

	// The copy supersedes the unbounded original with a version that
	// expires at 10.
	MustCopyAt(test, store, 5, "short.txt", "file.txt")

	AssertSizeAt(test, store, 5, "file.txt", 50)
	AssertSizeAt(test, store, 10, "file.txt", 50)
	AssertNotFoundAt(test, store, 11, "file.txt")
	AssertNotFoundAt(test, store, 1000, "file.txt")
}

// TestGet_Idempotent verifies that repeated reads with identical arguments
// return identical results.
func (suite *StoreTestSuite) TestGet_Idempotent(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 10, "file.txt", 100, timeline.TTLSeconds(90))

	for i := 0; i < 3; i++ {
		size, err := store.GetAt(ctx, 50, "file.txt")
		require.NoError(test, err)
		assert.Equal(test, int64(100), size)

		_, err = store.GetAt(ctx, 101, "file.txt")
		AssertErrorCode(test, timeline.ErrNotFound, err)
	}
}
