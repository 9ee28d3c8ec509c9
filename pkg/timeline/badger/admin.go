package badger

import (
	"context"
	"time"

	"github.com/chronostore/chronostore/pkg/timeline"
	badger "github.com/dgraph-io/badger/v4"
)

// ============================================================================
// Administration: Versions, Stats
// ============================================================================

// Versions returns every version record of a name in creation order,
// including expired and superseded ones. Unknown names yield an empty
// history.
func (store *BadgerStore) Versions(ctx context.Context, name string) (versions []timeline.Version, err error) {
	start := time.Now()
	defer func() {
		store.metrics.RecordOperation("Versions", time.Since(start), err)
	}()

	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	versions = []timeline.Version{}
	err = store.db.View(func(txn *badger.Txn) error {
		prefix := keyVersionPrefix(name)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				version, err := decodeVersion(val)
				if err != nil {
					return err
				}
				versions = append(versions, *version)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return versions, nil
}

// Stats reports the number of live names and the total number of
// version records, straight from the name index.
func (store *BadgerStore) Stats(ctx context.Context) (stats timeline.Stats, err error) {
	start := time.Now()
	defer func() {
		store.metrics.RecordOperation("Stats", time.Since(start), err)
	}()

	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return timeline.Stats{}, err
	}

	err = store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixName)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var count uint64
			err := it.Item().Value(func(val []byte) error {
				decoded, err := decodeUint64(val)
				if err != nil {
					return err
				}
				count = decoded
				return nil
			})
			if err != nil {
				return err
			}

			stats.Names++
			stats.Versions += int(count)
		}

		return nil
	})
	if err != nil {
		return timeline.Stats{}, err
	}

	return stats, nil
}
