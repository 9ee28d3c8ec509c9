package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/pkg/timeline"
	badger "github.com/dgraph-io/badger/v4"
)

// ============================================================================
// Rollback
// ============================================================================

// Rollback removes every version record created after the given
// instant, across all names. Records at or before the instant survive,
// including ones that have already expired. Names whose whole history
// is removed disappear from the name index entirely. There is no undo.
func (store *BadgerStore) Rollback(ctx context.Context, t timeline.Timestamp) (err error) {
	start := time.Now()
	defer func() {
		store.metrics.RecordOperation("Rollback", time.Since(start), err)
	}()

	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := timeline.ValidateTimestamp(t); err != nil {
		return err
	}

	removedNames := 0
	removedRecords := 0
	err = store.db.Update(func(txn *badger.Txn) error {
		// Snapshot the name index first: a writable transaction allows
		// only one iterator at a time, and the per-name scans below
		// need their own.
		type nameEntry struct {
			name  string
			count uint64
		}
		var entries []nameEntry

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixName)

		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			name := nameFromKey(item.Key())

			var count uint64
			err := item.Value(func(val []byte) error {
				decoded, err := decodeUint64(val)
				if err != nil {
					return err
				}
				count = decoded
				return nil
			})
			if err != nil {
				it.Close()
				return err
			}

			entries = append(entries, nameEntry{name: name, count: count})
		}
		it.Close()

		for _, entry := range entries {
			doomed, err := collectAfter(txn, entry.name, t)
			if err != nil {
				return err
			}
			if len(doomed) == 0 {
				continue
			}

			for _, key := range doomed {
				if err := txn.Delete(key); err != nil {
					return fmt.Errorf("failed to delete version record: %w", err)
				}
			}
			removedRecords += len(doomed)

			remaining := entry.count - uint64(len(doomed))
			if remaining == 0 {
				if err := txn.Delete(keyName(entry.name)); err != nil {
					return fmt.Errorf("failed to drop name index entry: %w", err)
				}
				removedNames++
			} else {
				if err := txn.Set(keyName(entry.name), encodeUint64(remaining)); err != nil {
					return fmt.Errorf("failed to update name index: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	store.noteRollback(removedNames, removedRecords)
	logger.Debug("Rollback: to %d, removed %d records, %d names emptied", t, removedRecords, removedNames)

	return nil
}

// collectAfter returns the keys of one name's version records created
// strictly after the given instant.
//
// Parameters:
//   - txn: BadgerDB transaction
//   - name: The file name to scan
//   - t: The rollback target
//
// Returns:
//   - [][]byte: Keys of records to remove, in creation order
//   - error: Error if the scan fails
func collectAfter(txn *badger.Txn, name string, t timeline.Timestamp) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var doomed [][]byte
	prefix := keyVersionPrefix(name)
	for it.Seek(keyVersionTruncateStart(name, t)); it.ValidForPrefix(prefix); it.Next() {
		doomed = append(doomed, it.Item().KeyCopy(nil))
	}

	return doomed, nil
}
