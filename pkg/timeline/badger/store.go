// Package badger provides a temporal file store backed by BadgerDB.
//
// The store keeps every name's version records in a contiguous,
// time-ordered key range (see keys.go), so point-in-time reads are a
// single reverse seek and rollback is a bounded range delete. It runs
// the database in BadgerDB's in-memory mode: the engine's transactions
// and iterators are exercised for real, but nothing touches disk.
package badger

import (
	"context"
	"fmt"
	"sync"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/pkg/metrics"
	"github.com/chronostore/chronostore/pkg/timeline"
	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore implements timeline.Store using BadgerDB as the storage
// engine.
//
// Compared to the map-based memory store, histories live in BadgerDB's
// LSM tree as binary-sorted keys. The behavior contract is identical;
// both implementations pass the same acceptance suite.
//
// Thread Safety:
// Data operations rely on BadgerDB transactions, which provide snapshot
// isolation and conflict detection on commit. The small gauge counters
// kept outside the database are guarded by their own mutex.
//
// Storage Model:
// See keys.go for the key namespace. Version records are JSON values
// under time-ordered keys, the name index tracks live names with their
// record counts, and a singleton sequence counter orders same-instant
// inserts by arrival.
type BadgerStore struct {
	// db is the BadgerDB database handle (thread-safe, uses internal MVCC)
	db *badger.DB

	// searchLimit caps SearchAt result counts
	searchLimit int

	// metrics records operation outcomes and store gauges (never nil)
	metrics metrics.StoreMetrics

	// counters mirrors the name and record totals for gauge updates,
	// so mutations do not rescan the name index
	counters struct {
		mu       sync.Mutex
		names    int
		versions int
	}
}

// BadgerStoreConfig contains configuration for creating a BadgerDB
// temporal store.
type BadgerStoreConfig struct {
	// InMemory selects BadgerDB's in-memory mode. Only in-memory mode
	// is supported; the store refuses to start with it disabled.
	InMemory bool `mapstructure:"in_memory"`

	// SearchLimit is the maximum number of names a search returns.
	// Zero selects timeline.DefaultSearchLimit.
	SearchLimit int `mapstructure:"search_limit"`

	// BadgerOptions allows customization of BadgerDB behavior.
	// If nil, sensible defaults are used. The options must keep
	// in-memory mode enabled.
	BadgerOptions *badger.Options
}

// NewBadgerStore creates a new BadgerDB-based temporal store with the
// specified configuration.
//
// The returned store is immediately ready for use and safe for
// concurrent access from multiple goroutines. Callers that do not
// collect metrics may pass nil.
//
// Context Cancellation:
// This operation respects context cancellation during database
// initialization.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - config: Store configuration
//   - m: Metrics sink, or nil for no metrics collection
//
// Returns:
//   - *BadgerStore: A new store instance ready for use
//   - error: Error if database initialization fails or context is cancelled
//
// Example:
//
//	config := BadgerStoreConfig{InMemory: true, SearchLimit: 10}
//	store, err := NewBadgerStore(ctx, config, nil)
func NewBadgerStore(ctx context.Context, config BadgerStoreConfig, m metrics.StoreMetrics) (*BadgerStore, error) {
	// Check context before database operations
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := config.SearchLimit
	if limit == 0 {
		limit = timeline.DefaultSearchLimit
	}

	if m == nil {
		m = metrics.NoopStoreMetrics()
	}

	// Prepare BadgerDB options
	var opts badger.Options
	if config.BadgerOptions != nil {
		opts = *config.BadgerOptions
	} else {
		opts = badger.DefaultOptions("")
		opts = opts.WithInMemory(config.InMemory)
		opts = opts.WithLoggingLevel(badger.WARNING) // Reduce log noise
	}

	if !opts.InMemory {
		return nil, fmt.Errorf("badger store supports only in-memory mode")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	store := &BadgerStore{
		db:          db,
		searchLimit: limit,
		metrics:     m,
	}

	// Initialize singleton keys if they don't exist
	if err := store.initializeSingletons(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize singletons: %w", err)
	}

	logger.Info("Badger store initialized (search limit %d)", limit)

	return store, nil
}

// NewBadgerStoreWithDefaults creates a new BadgerDB temporal store with
// sensible defaults: in-memory mode, the default search limit, and no
// metrics collection.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//
// Returns:
//   - *BadgerStore: A new store instance with default configuration
//   - error: Error if database initialization fails
func NewBadgerStoreWithDefaults(ctx context.Context) (*BadgerStore, error) {
	return NewBadgerStore(ctx, BadgerStoreConfig{InMemory: true}, nil)
}

// initializeSingletons initializes singleton keys if they don't exist.
//
// This creates the insert sequence counter, which persists across
// restarts when a durable BadgerDB mode is ever enabled.
//
// Thread Safety: Must be called during initialization before concurrent access.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - error: Error if database operations fail
func (store *BadgerStore) initializeSingletons(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(keySequence())
		if err == badger.ErrKeyNotFound {
			if err := txn.Set(keySequence(), encodeUint64(0)); err != nil {
				return fmt.Errorf("failed to initialize sequence counter: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check sequence counter: %w", err)
		}
		return nil
	})
}

// Close closes the BadgerDB database and releases all resources.
//
// After calling Close, the store must not be used.
//
// Returns:
//   - error: Error if closing the database fails
func (store *BadgerStore) Close() error {
	if err := store.db.Close(); err != nil {
		return fmt.Errorf("failed to close BadgerDB: %w", err)
	}

	return nil
}

// nextSequence increments and returns the global insert sequence.
//
// Thread Safety: Must be called within an update transaction; the
// transaction's conflict detection serializes concurrent increments.
//
// Parameters:
//   - txn: BadgerDB update transaction
//
// Returns:
//   - uint64: The next sequence value
//   - error: Error if the counter cannot be read or written
func nextSequence(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(keySequence())
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence counter: %w", err)
	}

	var current uint64
	err = item.Value(func(val []byte) error {
		current, err = decodeUint64(val)
		return err
	})
	if err != nil {
		return 0, err
	}

	next := current + 1
	if err := txn.Set(keySequence(), encodeUint64(next)); err != nil {
		return 0, fmt.Errorf("failed to advance sequence counter: %w", err)
	}

	return next, nil
}

// resolveActive returns the version of a name that is active at the
// given instant, or nil when the name has no active version.
//
// Only the newest record at or before the instant is considered: if
// that record has expired, older records do not come back into view.
//
// Parameters:
//   - txn: BadgerDB transaction (read-only is sufficient)
//   - at: The query instant
//   - name: The file name to resolve
//
// Returns:
//   - *timeline.Version: The active version, or nil
//   - error: Error if the lookup fails
func resolveActive(txn *badger.Txn, at timeline.Timestamp, name string) (*timeline.Version, error) {
	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	// The reverse seek lands on the newest record with created_at <= at.
	it.Seek(keyVersionUpperBound(name, at))
	if !it.ValidForPrefix(keyVersionPrefix(name)) {
		return nil, nil
	}

	var version *timeline.Version
	err := it.Item().Value(func(val []byte) error {
		decoded, err := decodeVersion(val)
		if err != nil {
			return err
		}
		version = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !version.ActiveAt(at) {
		return nil, nil
	}

	return version, nil
}

// insertVersion writes one version record and keeps the name index in
// step.
//
// Parameters:
//   - txn: BadgerDB update transaction
//   - version: The record to insert
//
// Returns:
//   - bool: Whether the name is new to the store
//   - error: Error if any write fails
func insertVersion(txn *badger.Txn, version *timeline.Version) (bool, error) {
	seq, err := nextSequence(txn)
	if err != nil {
		return false, err
	}

	encoded, err := encodeVersion(version)
	if err != nil {
		return false, err
	}

	if err := txn.Set(keyVersion(version.Name, version.CreatedAt, seq), encoded); err != nil {
		return false, fmt.Errorf("failed to write version record: %w", err)
	}

	// Bump the name index count, creating the entry on first use.
	var count uint64
	newName := false
	item, err := txn.Get(keyName(version.Name))
	switch {
	case err == badger.ErrKeyNotFound:
		newName = true
	case err != nil:
		return false, fmt.Errorf("failed to read name index: %w", err)
	default:
		err = item.Value(func(val []byte) error {
			count, err = decodeUint64(val)
			return err
		})
		if err != nil {
			return false, err
		}
	}

	if err := txn.Set(keyName(version.Name), encodeUint64(count+1)); err != nil {
		return false, fmt.Errorf("failed to update name index: %w", err)
	}

	return newName, nil
}

// noteInsert updates the gauge counters after a committed insert.
func (store *BadgerStore) noteInsert(newName bool) {
	store.counters.mu.Lock()
	defer store.counters.mu.Unlock()

	if newName {
		store.counters.names++
	}
	store.counters.versions++

	store.metrics.SetNames(int64(store.counters.names))
	store.metrics.SetVersions(int64(store.counters.versions))
}

// noteRollback updates the gauge counters after a committed rollback.
func (store *BadgerStore) noteRollback(removedNames, removedVersions int) {
	store.counters.mu.Lock()
	defer store.counters.mu.Unlock()

	store.counters.names -= removedNames
	store.counters.versions -= removedVersions

	store.metrics.SetNames(int64(store.counters.names))
	store.metrics.SetVersions(int64(store.counters.versions))
}
