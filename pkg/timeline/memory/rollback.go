package memory

import (
	"context"
	"time"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/pkg/timeline"
)

// ============================================================================
// Rollback
// ============================================================================

// Rollback discards every version record created strictly after the
// given instant, across all names.
//
// Records created at or before t survive even when they are already
// expired at t; only creation instants matter. Names left with no
// records disappear from the store entirely, so a later GetAt or
// SearchAt cannot tell them apart from names never uploaded.
// Truncation is irreversible.
func (store *MemoryStore) Rollback(
	ctx context.Context,
	t timeline.Timestamp,
) (err error) {
	start := time.Now()
	defer func() { store.metrics.RecordOperation("Rollback", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return err
	}

	if err = timeline.ValidateTimestamp(t); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	removedRecords := 0
	removedNames := 0
	for name, hist := range store.histories {
		removed := hist.truncateAfter(t)
		if removed == 0 {
			continue
		}
		removedRecords += removed
		if hist.len() == 0 {
			delete(store.histories, name)
			removedNames++
		}
	}
	store.versionCount -= removedRecords
	store.publishGauges()

	logger.Debug("Rollback: to %d, removed %d records, %d names emptied", t, removedRecords, removedNames)
	return nil
}
