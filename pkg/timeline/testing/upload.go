package testing

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *StoreTestSuite) RunUploadTests(test *testing.T) {
	test.Run("Upload_Success", suite.TestUpload_Success)
	test.Run("Upload_Validation", suite.TestUpload_Validation)
	test.Run("Upload_Conflict", suite.TestUpload_Conflict)
	test.Run("Upload_ConflictWhileActive", suite.TestUpload_ConflictWhileActive)
	test.Run("Upload_ContextCancelled", suite.TestUpload_ContextCancelled)
}

// TestUpload_Success verifies that uploads with various TTL configurations
// become visible from their creation instant onward.
func (suite *StoreTestSuite) TestUpload_Success(test *testing.T) {
	tests := []struct {
		name        string
		at          timeline.Timestamp
		fileName    string
		size        int64
		ttl         timeline.TTL
		description string
	}{
		{
			name:        "unbounded_ttl",
			at:          0,
			fileName:    "file.txt",
			size:        100,
			ttl:         timeline.NoTTL(),
			description: "Upload without expiry stays visible forever",
		},
		{
			name:        "bounded_ttl",
			at:          10,
			fileName:    "ephemeral.txt",
			size:        250,
			ttl:         timeline.TTLSeconds(90),
			description: "Upload with a TTL is visible at creation",
		},
		{
			name:        "zero_size",
			at:          5,
			fileName:    "empty.bin",
			size:        0,
			ttl:         timeline.NoTTL(),
			description: "Zero-byte files are valid",
		},
		{
			name:        "late_timestamp",
			at:          1_000_000,
			fileName:    "late.txt",
			size:        42,
			ttl:         timeline.TTLSeconds(1),
			description: "Large timestamps are valid",
		},
	}

	for _, tt := range tests {
		test.Run(tt.name, func(t *testing.T) {
			store := suite.NewStore()

			// Act
			err := store.UploadAt(context.Background(), tt.at, tt.fileName, tt.size, tt.ttl)

			// Assert
			require.NoError(t, err, tt.description)
			AssertSizeAt(t, store, tt.at, tt.fileName, tt.size)
		})
	}
}

// TestUpload_Validation verifies that invalid arguments are rejected with
// stable error codes and messages, in a fixed check order, without side
// effects on the store.
func (suite *StoreTestSuite) TestUpload_Validation(test *testing.T) {
	tests := []struct {
		name        string
		at          timeline.Timestamp
		fileName    string
		size        int64
		ttl         timeline.TTL
		wantMessage string
	}{
		{
			name:        "negative_timestamp",
			at:          -10,
			fileName:    "file.txt",
			size:        100,
			ttl:         timeline.NoTTL(),
			wantMessage: "timestamp must be non-negative",
		},
		{
			name:        "empty_name",
			at:          0,
			fileName:    "",
			size:        100,
			ttl:         timeline.NoTTL(),
			wantMessage: "file name must be non-empty",
		},
		{
			name:        "negative_size",
			at:          0,
			fileName:    "file.txt",
			size:        -100,
			ttl:         timeline.NoTTL(),
			wantMessage: "file size must be non-negative",
		},
		{
			name:        "negative_ttl",
			at:          0,
			fileName:    "file.txt",
			size:        100,
			ttl:         timeline.TTLSeconds(-1),
			wantMessage: "file ttl must be positive",
		},
		{
			name:        "zero_ttl",
			at:          0,
			fileName:    "file.txt",
			size:        100,
			ttl:         timeline.TTLSeconds(0),
			wantMessage: "file ttl must be positive",
		},
		{
			// Timestamp is checked before the name, so the timestamp
			// violation wins when both arguments are invalid.
			name:        "timestamp_checked_first",
			at:          -1,
			fileName:    "",
			size:        -5,
			ttl:         timeline.TTLSeconds(0),
			wantMessage: "timestamp must be non-negative",
		},
	}

	for _, tt := range tests {
		test.Run(tt.name, func(t *testing.T) {
			store := suite.NewStore()

			// Act
			err := store.UploadAt(context.Background(), tt.at, tt.fileName, tt.size, tt.ttl)

			// Assert
			AssertErrorCode(t, timeline.ErrInvalidArgument, err)
			AssertErrorMessage(t, tt.wantMessage, err)

			// A rejected upload leaves no trace behind.
			if tt.fileName != "" {
				AssertNotFoundAt(t, store, 0, tt.fileName)
			}
		})
	}
}

// TestUpload_Conflict verifies that uploading over an active version fails
// and leaves the existing version untouched.
func (suite *StoreTestSuite) TestUpload_Conflict(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 0, "file.txt", 100, timeline.NoTTL())

	// Act
	err := store.UploadAt(ctx, 0, "file.txt", 200, timeline.NoTTL())

	// Assert
	require.Error(test, err)
	AssertErrorCode(test, timeline.ErrConflict, err, "Should return ErrConflict for an active name")
	AssertErrorMessage(test, "file with the same name already exists", err)
	AssertSizeAt(test, store, 0, "file.txt", 100)
}

// TestUpload_ConflictWhileActive verifies the conflict window of a bounded
// upload: occupied through the last valid instant, free one second later.
func (suite *StoreTestSuite) TestUpload_ConflictWhileActive(test *testing.T) {
	store := suite.NewStore()
	ctx := context.Background()

	MustUploadAt(test, store, 10, "file.txt", 100, timeline.TTLSeconds(90))

	// The version is still active at its last valid instant.
	err := store.UploadAt(ctx, 100, "file.txt", 100, timeline.NoTTL())
	AssertErrorCode(test, timeline.ErrConflict, err, "Upload at the last valid instant should conflict")

	// One second later the version has expired and the name is free again.
	MustUploadAt(test, store, 101, "file.txt", 200, timeline.NoTTL())

	AssertSizeAt(test, store, 100, "file.txt", 100)
	AssertSizeAt(test, store, 101, "file.txt", 200)
	AssertSizeAt(test, store, 1000, "file.txt", 200)
}

// TestUpload_ContextCancelled verifies that a cancelled context aborts the
// operation before it mutates the store.
func (suite *StoreTestSuite) TestUpload_ContextCancelled(test *testing.T) {
	store := suite.NewStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err := store.UploadAt(ctx, 0, "file.txt", 100, timeline.NoTTL())

	// Assert
	require.Error(test, err)
	assert.ErrorIs(test, err, context.Canceled)
	AssertNotFoundAt(test, store, 0, "file.txt")
}
