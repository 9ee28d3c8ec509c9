package badger

import (
	"context"
	"time"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/pkg/timeline"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// ============================================================================
// Mutations: UploadAt, CopyAt
// ============================================================================

// UploadAt records a new version of the named file at the given instant.
//
// The whole operation runs in one BadgerDB update transaction: the
// conflict check against the currently active version and the insert
// either commit together or not at all.
func (store *BadgerStore) UploadAt(ctx context.Context, t timeline.Timestamp, name string, size int64, ttl timeline.TTL) (err error) {
	start := time.Now()
	defer func() {
		store.metrics.RecordOperation("UploadAt", time.Since(start), err)
	}()

	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := timeline.ValidateUpload(t, name, size, ttl); err != nil {
		return err
	}

	newName := false
	err = store.db.Update(func(txn *badger.Txn) error {
		active, err := resolveActive(txn, t, name)
		if err != nil {
			return err
		}
		if active != nil {
			return &timeline.StoreError{
				Code:    timeline.ErrConflict,
				Message: "file with the same name already exists",
				Name:    name,
			}
		}

		newName, err = insertVersion(txn, &timeline.Version{
			ID:        uuid.New(),
			Name:      name,
			Size:      size,
			CreatedAt: t,
			TTL:       ttl,
		})
		return err
	})
	if err != nil {
		return err
	}

	store.noteInsert(newName)
	logger.Debug("UploadAt: recorded %s (size %d, ttl %s) at %d", name, size, ttl, t)

	return nil
}

// CopyAt records a copy of the source file's active version under the
// destination name.
//
// The destination inherits the remaining lifetime of the source, so
// both expire at the same absolute instant. Copying a name onto itself
// is a no-op once the source check has passed. Unlike UploadAt, the
// destination is not checked: the copy silently supersedes whatever
// was active there.
func (store *BadgerStore) CopyAt(ctx context.Context, t timeline.Timestamp, source, dest string) (err error) {
	start := time.Now()
	defer func() {
		store.metrics.RecordOperation("CopyAt", time.Since(start), err)
	}()

	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := timeline.ValidateTimestamp(t); err != nil {
		return err
	}

	copied := false
	newName := false
	err = store.db.Update(func(txn *badger.Txn) error {
		// Resolve the source before the self-copy shortcut, so copying
		// a missing name onto itself still fails.
		sourceVersion, err := resolveActive(txn, t, source)
		if err != nil {
			return err
		}
		if sourceVersion == nil {
			return &timeline.StoreError{
				Code:    timeline.ErrNotFound,
				Message: "source file does not exist",
				Name:    source,
			}
		}

		if source == dest {
			return nil
		}

		elapsed := int64(t - sourceVersion.CreatedAt)
		newName, err = insertVersion(txn, &timeline.Version{
			ID:        uuid.New(),
			Name:      dest,
			Size:      sourceVersion.Size,
			CreatedAt: t,
			TTL:       sourceVersion.TTL.Remaining(elapsed),
		})
		if err != nil {
			return err
		}

		copied = true
		return nil
	})
	if err != nil {
		return err
	}

	if copied {
		store.noteInsert(newName)
		logger.Debug("CopyAt: copied %s to %s at %d", source, dest, t)
	}

	return nil
}
