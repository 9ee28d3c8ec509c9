package testing

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MustUploadAt uploads a file record and fails the test on any error.
func MustUploadAt(test *testing.T, store timeline.Store, at timeline.Timestamp, name string, size int64, ttl timeline.TTL) {
	test.Helper()
	err := store.UploadAt(context.Background(), at, name, size, ttl)
	require.NoError(test, err, "UploadAt(%d, %q, %d, %s) should succeed", at, name, size, ttl)
}

// MustCopyAt copies a file record and fails the test on any error.
func MustCopyAt(test *testing.T, store timeline.Store, at timeline.Timestamp, source, dest string) {
	test.Helper()
	err := store.CopyAt(context.Background(), at, source, dest)
	require.NoError(test, err, "CopyAt(%d, %q, %q) should succeed", at, source, dest)
}

// AssertSizeAt asserts that a name resolves to the expected size at the
// given instant.
func AssertSizeAt(test *testing.T, store timeline.Store, at timeline.Timestamp, name string, expected int64) {
	test.Helper()
	size, err := store.GetAt(context.Background(), at, name)
	require.NoError(test, err, "GetAt(%d, %q) should resolve", at, name)
	assert.Equal(test, expected, size, "GetAt(%d, %q) size", at, name)
}

// AssertNotFoundAt asserts that a name does not resolve at the given instant.
func AssertNotFoundAt(test *testing.T, store timeline.Store, at timeline.Timestamp, name string) {
	test.Helper()
	_, err := store.GetAt(context.Background(), at, name)
	AssertErrorCode(test, timeline.ErrNotFound, err, "GetAt(%d, %q) should not resolve", at, name)
}

// AssertSearchAt asserts the exact result order of a prefix search at the
// given instant.
func AssertSearchAt(test *testing.T, store timeline.Store, at timeline.Timestamp, prefix string, expected []string) {
	test.Helper()
	names, err := store.SearchAt(context.Background(), at, prefix)
	require.NoError(test, err, "SearchAt(%d, %q) should succeed", at, prefix)
	assert.Equal(test, expected, names, "SearchAt(%d, %q) result order", at, prefix)
}

// AssertErrorCode checks if an error has the expected error code.
// This handles both unwrapped ErrorCode and wrapped StoreError.
func AssertErrorCode(test *testing.T, expected timeline.ErrorCode, err error, msgAndArgs ...any) bool {
	if err == nil {
		return assert.Fail(test, "Expected an error but got nil", msgAndArgs...)
	}

	// Try to unwrap as StoreError
	if storeErr, ok := timeline.AsStoreError(err); ok {
		return assert.Equal(test, expected, storeErr.Code, msgAndArgs...)
	}

	// Fall back to direct comparison (in case implementation returns bare ErrorCode)
	return assert.Equal(test, expected, err, msgAndArgs...)
}

// AssertErrorMessage checks the stable message of a StoreError. Callers are
// expected to match on these messages, so the suite pins them down.
func AssertErrorMessage(test *testing.T, expected string, err error, msgAndArgs ...any) bool {
	if err == nil {
		return assert.Fail(test, "Expected an error but got nil", msgAndArgs...)
	}

	if storeErr, ok := timeline.AsStoreError(err); ok {
		return assert.Equal(test, expected, storeErr.Message, msgAndArgs...)
	}

	return assert.Fail(test, "Expected a StoreError", msgAndArgs...)
}
