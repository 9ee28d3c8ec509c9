package memory

import (
	"context"
	"strings"
	"time"

	"github.com/chronostore/chronostore/internal/rank"
	"github.com/chronostore/chronostore/pkg/timeline"
)

// ============================================================================
// Queries: GetAt, SearchAt
// ============================================================================

// GetAt returns the size of the file's version active at the given
// instant.
//
// Only the newest record created at or before t is considered; if it
// has expired by t the lookup fails even when an older record's TTL
// would still be running.
func (store *MemoryStore) GetAt(
	ctx context.Context,
	t timeline.Timestamp,
	name string,
) (size int64, err error) {
	start := time.Now()
	defer func() { store.metrics.RecordOperation("GetAt", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	if err = timeline.ValidateTimestamp(t); err != nil {
		return 0, err
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	hist, exists := store.histories[name]
	if !exists {
		err = &timeline.StoreError{
			Code:    timeline.ErrNotFound,
			Message: "file does not exist",
			Name:    name,
		}
		return 0, err
	}

	version, active := hist.activeAt(t)
	if !active {
		err = &timeline.StoreError{
			Code:    timeline.ErrNotFound,
			Message: "file does not exist",
			Name:    name,
		}
		return 0, err
	}

	return version.Size, nil
}

// SearchAt returns the names of files active at the given instant
// whose name starts with prefix, ranked by size descending with
// lexicographic names breaking ties, capped at the store's search
// limit.
func (store *MemoryStore) SearchAt(
	ctx context.Context,
	t timeline.Timestamp,
	prefix string,
) (names []string, err error) {
	start := time.Now()
	defer func() { store.metrics.RecordOperation("SearchAt", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if err = timeline.ValidateTimestamp(t); err != nil {
		return nil, err
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	// Rank every active match, keeping only the best searchLimit
	top := rank.NewTopK(store.searchLimit)
	for name, hist := range store.histories {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if version, active := hist.activeAt(t); active {
			top.Add(name, version.Size)
		}
	}

	return top.Names(), nil
}
