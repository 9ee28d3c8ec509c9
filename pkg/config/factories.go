package config

import (
	"context"
	"fmt"

	"github.com/chronostore/chronostore/pkg/metrics"
	"github.com/chronostore/chronostore/pkg/timeline"
	timelinebadger "github.com/chronostore/chronostore/pkg/timeline/badger"
	timelinememory "github.com/chronostore/chronostore/pkg/timeline/memory"
	"github.com/mitchellh/mapstructure"
)

// CreateStore creates a store based on configuration.
//
// This factory function uses the Type field to determine which store
// implementation to create, then decodes the type-specific configuration
// from the corresponding map and passes it to the store's constructor.
//
// The store is wired to a Prometheus metrics sink labeled with the store
// type; when the metrics registry was never initialized the sink is a
// no-op.
//
// Supported types:
//   - "memory": Uses pkg/timeline/memory (slice-backed histories)
//   - "badger": Uses pkg/timeline/badger (embedded BadgerDB, in-memory mode)
//
// Parameters:
//   - ctx: Context for initialization operations
//   - cfg: Store configuration
//
// Returns:
//   - timeline.Store: Initialized store
//   - error: Configuration or initialization error
func CreateStore(ctx context.Context, cfg *StoreConfig) (timeline.Store, error) {
	switch cfg.Type {
	case "memory":
		return createMemoryStore(cfg)
	case "badger":
		return createBadgerStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}

// createMemoryStore creates an in-memory store.
func createMemoryStore(cfg *StoreConfig) (timeline.Store, error) {
	// Decode memory-specific configuration
	var storeCfg timelinememory.MemoryStoreConfig
	if err := mapstructure.Decode(cfg.Memory, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode memory store config: %w", err)
	}

	// The shared search limit applies unless the section overrides it
	if storeCfg.SearchLimit == 0 {
		storeCfg.SearchLimit = cfg.SearchLimit
	}

	store := timelinememory.NewMemoryStore(storeCfg, metrics.NewStoreMetrics("memory"))

	return store, nil
}

// createBadgerStore creates a BadgerDB-backed store.
func createBadgerStore(ctx context.Context, cfg *StoreConfig) (timeline.Store, error) {
	// Decode BadgerDB-specific configuration
	var storeCfg timelinebadger.BadgerStoreConfig
	if err := mapstructure.Decode(cfg.Badger, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode badger store config: %w", err)
	}

	// The shared search limit applies unless the section overrides it
	if storeCfg.SearchLimit == 0 {
		storeCfg.SearchLimit = cfg.SearchLimit
	}

	store, err := timelinebadger.NewBadgerStore(ctx, storeCfg, metrics.NewStoreMetrics("badger"))
	if err != nil {
		return nil, fmt.Errorf("failed to create badger store: %w", err)
	}

	return store, nil
}
