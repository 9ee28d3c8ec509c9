package badger

import (
	"context"
	"strings"
	"time"

	"github.com/chronostore/chronostore/internal/rank"
	"github.com/chronostore/chronostore/pkg/timeline"
	badger "github.com/dgraph-io/badger/v4"
)

// ============================================================================
// Queries: GetAt, SearchAt
// ============================================================================

// GetAt returns the size of the named file's active version at the
// given instant.
func (store *BadgerStore) GetAt(ctx context.Context, t timeline.Timestamp, name string) (size int64, err error) {
	start := time.Now()
	defer func() {
		store.metrics.RecordOperation("GetAt", time.Since(start), err)
	}()

	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := timeline.ValidateTimestamp(t); err != nil {
		return 0, err
	}

	err = store.db.View(func(txn *badger.Txn) error {
		version, err := resolveActive(txn, t, name)
		if err != nil {
			return err
		}
		if version == nil {
			return &timeline.StoreError{
				Code:    timeline.ErrNotFound,
				Message: "file does not exist",
				Name:    name,
			}
		}

		size = version.Size
		return nil
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}

// SearchAt returns the names with an active version at the given
// instant that start with the prefix, ranked by size descending with
// ties broken by name ascending, capped at the configured limit.
func (store *BadgerStore) SearchAt(ctx context.Context, t timeline.Timestamp, prefix string) (names []string, err error) {
	start := time.Now()
	defer func() {
		store.metrics.RecordOperation("SearchAt", time.Since(start), err)
	}()

	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := timeline.ValidateTimestamp(t); err != nil {
		return nil, err
	}

	top := rank.NewTopK(store.searchLimit)

	err = store.db.View(func(txn *badger.Txn) error {
		// Enumerate candidate names from the name index, then resolve
		// each name's active version inside the same snapshot.
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixName)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			name := nameFromKey(it.Item().Key())
			if !strings.HasPrefix(name, prefix) {
				continue
			}

			version, err := resolveActive(txn, t, name)
			if err != nil {
				return err
			}
			if version == nil {
				continue
			}

			top.Add(name, version.Size)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return top.Names(), nil
}
