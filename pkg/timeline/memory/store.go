// Package memory provides the reference in-memory implementation of
// timeline.Store.
package memory

import (
	"sync"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/pkg/metrics"
	"github.com/chronostore/chronostore/pkg/timeline"
)

// MemoryStore implements timeline.Store using in-memory histories.
//
// This implementation is the semantic reference for the store: one
// map entry per file name, each holding an ordered slice of version
// records. It is suitable for:
//   - Single-process use where state is ephemeral
//   - Testing and development
//   - Seeding and replaying recorded operation logs
//
// Thread Safety:
// All operations are protected by a single read-write mutex (mu),
// making the store safe for concurrent access from multiple
// goroutines. Queries take the read lock, mutations the write lock.
// No operation blocks while holding the lock.
//
// Storage Model:
// histories maps each file name to its history, a slice of records
// sorted by CreatedAt (ties in arrival order). Point-in-time reads
// binary-search that slice; rollback truncates it and drops the map
// entry when nothing remains. An emptied name and a never-seen name
// are indistinguishable afterwards.
type MemoryStore struct {
	// mu protects histories and versionCount for concurrent access.
	mu sync.RWMutex

	// histories maps file names to their version histories.
	// Key: file name
	// Value: ordered history of version records
	histories map[string]*history

	// versionCount is the total number of records across all
	// histories, maintained incrementally for O(1) Stats.
	versionCount int

	// searchLimit caps the number of names SearchAt returns.
	searchLimit int

	// metrics records operation outcomes. Never nil: the constructor
	// substitutes a no-op implementation when none is provided.
	metrics metrics.StoreMetrics
}

// MemoryStoreConfig contains configuration for creating a memory store.
type MemoryStoreConfig struct {
	// SearchLimit caps the number of names SearchAt returns.
	// 0 means timeline.DefaultSearchLimit.
	SearchLimit int `mapstructure:"search_limit"`
}

// NewMemoryStore creates a new in-memory store with the specified
// configuration.
//
// The returned store is immediately ready for use and safe for
// concurrent access from multiple goroutines.
//
// Parameters:
//   - config: Store configuration
//   - m: Metrics sink for operation outcomes; nil disables collection
//
// Returns:
//   - *MemoryStore: A new store instance ready for use
func NewMemoryStore(config MemoryStoreConfig, m metrics.StoreMetrics) *MemoryStore {
	limit := config.SearchLimit
	if limit == 0 {
		limit = timeline.DefaultSearchLimit
	}
	if m == nil {
		m = metrics.NoopStoreMetrics()
	}

	logger.Info("Memory store initialized (search limit %d)", limit)

	return &MemoryStore{
		histories:   make(map[string]*history),
		searchLimit: limit,
		metrics:     m,
	}
}

// NewMemoryStoreWithDefaults creates a new in-memory store with the
// default search limit and no metrics collection.
func NewMemoryStoreWithDefaults() *MemoryStore {
	return NewMemoryStore(MemoryStoreConfig{}, nil)
}

// Close releases the store. The memory store holds no external
// resources, so this only drops the histories.
func (store *MemoryStore) Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.histories = nil
	store.versionCount = 0
	return nil
}

// publishGauges pushes the structural counters to the metrics sink.
// Thread Safety: Must be called with lock held (read or write).
func (store *MemoryStore) publishGauges() {
	store.metrics.SetNames(int64(len(store.histories)))
	store.metrics.SetVersions(int64(store.versionCount))
}
