// Package timeline defines the temporal file store: named, sized file
// records organized into per-name version histories with point-in-time
// visibility, TTL expiry, copy inheritance and history rollback.
package timeline

import (
	"context"
)

// DefaultSearchLimit is the number of names SearchAt returns when a
// store is not configured with an explicit limit.
const DefaultSearchLimit = 10

// ============================================================================
// Store Interface
// ============================================================================

// Store is a temporal index of named, sized files.
//
// Every mutation and query carries an explicit instant on a logical
// clock; nothing in the store ever consults the wall clock. Each name
// owns an ordered history of immutable version records, and reads
// resolve against the history as it stood at the requested instant.
//
// Visibility:
// A version uploaded at time C with a bounded TTL of n seconds is
// visible ("active") during the closed interval [C, C+n]. Unbounded
// versions stay visible from C on. At most one version of a name is
// active at any instant under the intended monotonic use, because an
// upload over an active version is rejected with ErrConflict.
//
// Copies:
// CopyAt writes a fresh record for the destination carrying the
// source's size and remaining lifetime. The destination's previous
// versions are superseded silently; only UploadAt checks for
// conflicts.
//
// Rollback:
// Rollback truncates every history to the records created at or
// before the given instant. Truncation is irreversible and removes
// names whose histories become empty.
//
// Error Handling:
// Business failures are reported as *StoreError and leave the store
// untouched. Infrastructure failures (a backend write going wrong)
// are returned wrapped with context.
//
// Thread Safety:
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Store interface {
	// ========================================================================
	// Temporal Operations
	// ========================================================================

	// UploadAt records a new version of a file at the given instant.
	//
	// Arguments are validated in order: the timestamp must be
	// non-negative, the name non-empty, the size non-negative and the
	// TTL positive or unbounded. The first violated rule is reported
	// as ErrInvalidArgument.
	//
	// Parameters:
	//   - t: The instant the version is created at
	//   - name: The file name
	//   - size: The file size in bytes
	//   - ttl: The lifetime of the version starting at t
	//
	// Returns:
	//   - error: ErrInvalidArgument for bad arguments, ErrConflict if
	//     the name already has an active version at t, or context
	//     cancellation errors
	UploadAt(ctx context.Context, t Timestamp, name string, size int64, ttl TTL) error

	// GetAt returns the size of the file's version active at the given
	// instant.
	//
	// Parameters:
	//   - t: The instant to resolve against
	//   - name: The file name to look up
	//
	// Returns:
	//   - int64: Size in bytes of the active version
	//   - error: ErrInvalidArgument for a negative timestamp,
	//     ErrNotFound if no version of name is active at t, or context
	//     cancellation errors
	GetAt(ctx context.Context, t Timestamp, name string) (int64, error)

	// CopyAt copies the version of source active at the given instant
	// to dest.
	//
	// The copy is a fresh record created at t with the source's size
	// and the source's remaining lifetime (unbounded sources produce
	// unbounded copies). Copying a name onto itself is a no-op once the
	// source has been resolved. The destination is not checked for an
	// active version: existing versions are superseded silently.
	//
	// Parameters:
	//   - t: The instant the copy happens at
	//   - source: The file name to copy from
	//   - dest: The file name to copy to
	//
	// Returns:
	//   - error: ErrInvalidArgument for a negative timestamp,
	//     ErrNotFound if no version of source is active at t, or
	//     context cancellation errors
	CopyAt(ctx context.Context, t Timestamp, source, dest string) error

	// SearchAt returns the names of files active at the given instant
	// whose name starts with prefix, ranked by size descending with
	// lexicographic names breaking ties, capped at the store's search
	// limit.
	//
	// An empty prefix matches every active file. A search with no
	// matches returns an empty slice, not an error.
	//
	// Parameters:
	//   - t: The instant to resolve against
	//   - prefix: The name prefix to filter by
	//
	// Returns:
	//   - []string: Matching names, best first
	//   - error: ErrInvalidArgument for a negative timestamp, or
	//     context cancellation errors
	SearchAt(ctx context.Context, t Timestamp, prefix string) ([]string, error)

	// Rollback discards every version record created strictly after
	// the given instant, across all names.
	//
	// Names whose histories become empty disappear entirely. Records
	// created at or before t are kept even if already expired at t. A
	// rollback to an instant at or after every record is a no-op.
	//
	// Parameters:
	//   - t: The instant to roll the store back to
	//
	// Returns:
	//   - error: ErrInvalidArgument for a negative timestamp, or
	//     context cancellation errors
	Rollback(ctx context.Context, t Timestamp) error

	// ========================================================================
	// Administration
	// ========================================================================

	// Versions returns the history of a name in order, oldest first.
	//
	// The listing includes expired records; it reflects storage, not
	// visibility. Unknown names yield an empty slice, not an error.
	//
	// Returns:
	//   - []Version: Copy of the name's history
	//   - error: Only context cancellation errors
	Versions(ctx context.Context, name string) ([]Version, error)

	// Stats returns structural counters: the number of live names and
	// the total number of version records.
	//
	// Returns:
	//   - Stats: Current counters
	//   - error: Only context cancellation errors
	Stats(ctx context.Context) (Stats, error)

	// ========================================================================
	// Lifecycle
	// ========================================================================

	// Close releases the store's resources. After Close the store must
	// not be used.
	Close() error
}
