package memory

import (
	"context"
	"time"

	"github.com/chronostore/chronostore/pkg/timeline"
)

// ============================================================================
// Administration: Versions, Stats
// ============================================================================

// Versions returns a copy of the name's history in order, oldest
// first. The listing reflects storage, not visibility: expired
// records appear until a rollback removes them. Unknown names yield
// an empty slice.
func (store *MemoryStore) Versions(
	ctx context.Context,
	name string,
) (versions []timeline.Version, err error) {
	start := time.Now()
	defer func() { store.metrics.RecordOperation("Versions", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	hist, exists := store.histories[name]
	if !exists {
		return []timeline.Version{}, nil
	}
	return hist.list(), nil
}

// Stats returns the number of live names and the total number of
// version records.
func (store *MemoryStore) Stats(ctx context.Context) (stats timeline.Stats, err error) {
	start := time.Now()
	defer func() { store.metrics.RecordOperation("Stats", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return timeline.Stats{}, err
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	return timeline.Stats{
		Names:    len(store.histories),
		Versions: store.versionCount,
	}, nil
}
