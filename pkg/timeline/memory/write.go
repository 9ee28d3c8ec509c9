package memory

import (
	"context"
	"time"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/google/uuid"
)

// ============================================================================
// Mutations: UploadAt, CopyAt
// ============================================================================

// UploadAt records a new version of a file at the given instant.
//
// Validation follows the fixed argument order (timestamp, name, size,
// TTL) and an upload over a still-active version is rejected, so a
// name can only be re-uploaded once its current version has expired.
func (store *MemoryStore) UploadAt(
	ctx context.Context,
	t timeline.Timestamp,
	name string,
	size int64,
	ttl timeline.TTL,
) (err error) {
	start := time.Now()
	defer func() { store.metrics.RecordOperation("UploadAt", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return err
	}

	// Validate arguments in contract order
	if err = timeline.ValidateUpload(t, name, size, ttl); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	// Reject the upload while an active version exists
	hist, exists := store.histories[name]
	if exists {
		if _, active := hist.activeAt(t); active {
			err = &timeline.StoreError{
				Code:    timeline.ErrConflict,
				Message: "file with the same name already exists",
				Name:    name,
			}
			return err
		}
	} else {
		hist = &history{}
		store.histories[name] = hist
	}

	// Insert the new record keeping history order
	hist.insert(timeline.Version{
		ID:        uuid.New(),
		Name:      name,
		Size:      size,
		CreatedAt: t,
		TTL:       ttl,
	})
	store.versionCount++
	store.publishGauges()

	logger.Debug("UploadAt: recorded %s (size %d, ttl %s) at %d", name, size, ttl, t)
	return nil
}

// CopyAt copies the version of source active at the given instant to
// dest.
//
// The destination record is created at t with the source's size and
// whatever lifetime the source had left; an unbounded source produces
// an unbounded copy. The destination's own versions are not examined:
// the copy silently supersedes them.
func (store *MemoryStore) CopyAt(
	ctx context.Context,
	t timeline.Timestamp,
	source, dest string,
) (err error) {
	start := time.Now()
	defer func() { store.metrics.RecordOperation("CopyAt", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return err
	}

	if err = timeline.ValidateTimestamp(t); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	// Resolve the source before anything else, so copying a missing
	// name onto itself still fails
	hist, exists := store.histories[source]
	if !exists {
		err = &timeline.StoreError{
			Code:    timeline.ErrNotFound,
			Message: "source file does not exist",
			Name:    source,
		}
		return err
	}
	sourceVersion, active := hist.activeAt(t)
	if !active {
		err = &timeline.StoreError{
			Code:    timeline.ErrNotFound,
			Message: "source file does not exist",
			Name:    source,
		}
		return err
	}

	// Copying a name onto itself changes nothing
	if source == dest {
		return nil
	}

	destHist, exists := store.histories[dest]
	if !exists {
		destHist = &history{}
		store.histories[dest] = destHist
	}

	// The copy inherits the source's remaining lifetime from t on
	elapsed := int64(t - sourceVersion.CreatedAt)
	destHist.insert(timeline.Version{
		ID:        uuid.New(),
		Name:      dest,
		Size:      sourceVersion.Size,
		CreatedAt: t,
		TTL:       sourceVersion.TTL.Remaining(elapsed),
	})
	store.versionCount++
	store.publishGauges()

	logger.Debug("CopyAt: copied %s to %s at %d", source, dest, t)
	return nil
}
