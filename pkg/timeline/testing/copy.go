package testing

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *StoreTestSuite) RunCopyTests(test *testing.T) {
	test.Run("Copy_Validation", suite.TestCopy_Validation)
	test.Run("Copy_MissingSource", suite.TestCopy_MissingSource)
	test.Run("Copy_ExpiredSource", suite.TestCopy_ExpiredSource)
	test.Run("Copy_Success", suite.TestCopy_Success)
	test.Run("Copy_OverwritesDest", suite.TestCopy_OverwritesDest)
	test.Run("Copy_SelfCopyNoEffect", suite.TestCopy_SelfCopyNoEffect)
	test.Run("Copy_InheritsRemainingTTL", suite.TestCopy_InheritsRemainingTTL)
	test.Run("Copy_OverwritesDestTTL", suite.TestCopy_OverwritesDestTTL)
	test.Run("Copy_AtExpiryInstant", suite.TestCopy_AtExpiryInstant)
	test.Run("Copy_ChainPreservesExpiry", suite.TestCopy_ChainPreservesExpiry)
}

// TestCopy_Validation verifies that the timestamp is validated before the
// source is resolved.
func (suite *StoreTestSuite) TestCopy_Validation(test *testing.T) {
	store := suite.NewStore()

	// Act
	err := store.CopyAt(context.Background(), -10, "source.txt", "dest.txt")

	// Assert
	AssertErrorCode(test, timeline.ErrInvalidArgument, err)
	AssertErrorMessage(test, "timestamp must be non-negative", err)
}

// TestCopy_MissingSource verifies that copying a name with no active version
// fails, including the self-copy case.
func (suite *StoreTestSuite) TestCopy_MissingSource(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	err := store.CopyAt(ctx, 0, "source.txt", "dest.txt")
	AssertErrorCode(test, timeline.ErrNotFound, err)
	AssertErrorMessage(test, "source file does not exist", err)

	// The source check runs before the self-copy shortcut, so copying a
	// missing name onto itself still fails.
	err = store.CopyAt(ctx, 0, "source.txt", "source.txt")
	AssertErrorCode(test, timeline.ErrNotFound, err)

	// A failed copy creates nothing.
	AssertNotFoundAt(test, store, 0, "dest.txt")
}

// TestCopy_ExpiredSource verifies that an expired source behaves like a
// missing one.
func (suite *StoreTestSuite) TestCopy_ExpiredSource(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.TTLSeconds(90))

	err := store.CopyAt(ctx, 101, "source.txt", "dest.txt")
	AssertErrorCode(test, timeline.ErrNotFound, err, "Source expired at 101 should not be copyable")

	err = store.CopyAt(ctx, 101, "source.txt", "source.txt")
	AssertErrorCode(test, timeline.ErrNotFound, err, "Expired self-copy should fail the source check")
}

// TestCopy_Success verifies that a copy becomes visible at the copy instant
// and the source stays untouched.
func (suite *StoreTestSuite) TestCopy_Success(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.NoTTL())
	MustCopyAt(test, store, 20, "source.txt", "dest.txt")

	AssertNotFoundAt(test, store, 9, "source.txt")
	AssertSizeAt(test, store, 10, "source.txt", 100)
	AssertSizeAt(test, store, 19, "source.txt", 100)
	AssertSizeAt(test, store, 1000, "source.txt", 100)

	AssertNotFoundAt(test, store, 9, "dest.txt")
	AssertNotFoundAt(test, store, 19, "dest.txt")
	AssertSizeAt(test, store, 20, "dest.txt", 100)
	AssertSizeAt(test, store, 1000, "dest.txt", 100)
}

// TestCopy_OverwritesDest verifies that copy silently supersedes whatever
// was active for the destination, unlike upload which reports a conflict.
func (suite *StoreTestSuite) TestCopy_OverwritesDest(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.NoTTL())
	MustUploadAt(test, store, 10, "dest.txt", 999, timeline.NoTTL())
	MustCopyAt(test, store, 20, "source.txt", "dest.txt")

	AssertSizeAt(test, store, 10, "source.txt", 100)
	AssertSizeAt(test, store, 1000, "source.txt", 100)

	// The old destination version stays visible up to the copy instant.
	AssertNotFoundAt(test, store, 9, "dest.txt")
	AssertSizeAt(test, store, 10, "dest.txt", 999)
	AssertSizeAt(test, store, 19, "dest.txt", 999)
	AssertSizeAt(test, store, 20, "dest.txt", 100)
	AssertSizeAt(test, store, 1000, "dest.txt", 100)
}

// TestCopy_SelfCopyNoEffect verifies that copying a name onto itself leaves
// its history untouched.
func (suite *StoreTestSuite) TestCopy_SelfCopyNoEffect(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.NoTTL())
	MustCopyAt(test, store, 20, "source.txt", "source.txt")

	AssertNotFoundAt(test, store, 9, "source.txt")
	AssertSizeAt(test, store, 10, "source.txt", 100)
	AssertSizeAt(test, store, 19, "source.txt", 100)
	AssertSizeAt(test, store, 1000, "source.txt", 100)

	versions, err := store.Versions(ctx, "source.txt")
	require.NoError(test, err)
	assert.Len(test, versions, 1, "Self-copy should not append a version record")
}

// TestCopy_InheritsRemainingTTL verifies that a copy expires at the same
// absolute instant the source would have, not a fresh TTL after the copy.
func (suite *StoreTestSuite) TestCopy_InheritsRemainingTTL(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.TTLSeconds(90))
	MustUploadAt(test, store, 10, "dest.txt", 999, timeline.NoTTL())
	MustCopyAt(test, store, 50, "source.txt", "dest.txt")

	AssertNotFoundAt(test, store, 9, "source.txt")
	AssertSizeAt(test, store, 10, "source.txt", 100)
	AssertSizeAt(test, store, 49, "source.txt", 100)
	AssertSizeAt(test, store, 50, "source.txt", 100)
	AssertSizeAt(test, store, 100, "source.txt", 100)
	AssertNotFoundAt(test, store, 101, "source.txt")

	AssertNotFoundAt(test, store, 9, "dest.txt")
	AssertSizeAt(test, store, 10, "dest.txt", 999)
	AssertSizeAt(test, store, 49, "dest.txt", 999)
	AssertSizeAt(test, store, 50, "dest.txt", 100)
	AssertSizeAt(test, store, 100, "dest.txt", 100)
	AssertNotFoundAt(test, store, 101, "dest.txt")
}

// TestCopy_OverwritesDestTTL verifies that the copy's inherited TTL replaces
// a much longer TTL on the previously active destination version.
func (suite *StoreTestSuite) TestCopy_OverwritesDestTTL(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.TTLSeconds(90))
	MustUploadAt(test, store, 10, "dest.txt", 999, timeline.TTLSeconds(1000))
	MustCopyAt(test, store, 50, "source.txt", "dest.txt")

	// The destination now dies with the source's expiry, not at 1010.
	AssertSizeAt(test, store, 100, "dest.txt", 100)
	AssertNotFoundAt(test, store, 101, "dest.txt")
	AssertNotFoundAt(test, store, 1010, "dest.txt")
}

// TestCopy_AtExpiryInstant verifies the zero-remaining boundary: copying at
// the source's last valid instant yields a version visible only at that
// exact instant.
func (suite *StoreTestSuite) TestCopy_AtExpiryInstant(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.TTLSeconds(90))
	MustCopyAt(test, store, 100, "source.txt", "dest.txt")

	AssertSizeAt(test, store, 100, "dest.txt", 100)
	AssertNotFoundAt(test, store, 101, "dest.txt")
}

// TestCopy_ChainPreservesExpiry verifies that chained copies keep the
// original absolute expiry point.
func (suite *StoreTestSuite) TestCopy_ChainPreservesExpiry(test *testing.T) {
	store := suite.NewStore()

	MustUploadAt(test, store, 10, "source.txt", 100, timeline.TTLSeconds(90))
	MustCopyAt(test, store, 50, "source.txt", "hop.txt")
	MustCopyAt(test, store, 80, "hop.txt", "dest.txt")

	AssertSizeAt(test, store, 80, "dest.txt", 100)
	AssertSizeAt(test, store, 100, "dest.txt", 100)
	AssertNotFoundAt(test, store, 101, "dest.txt")
}
