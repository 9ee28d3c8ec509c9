// Package catalog provides a flat, current-state file catalog.
//
// The catalog is the non-temporal precursor of timeline.Store: it
// tracks only the present set of named files, with no timestamps, no
// TTLs and no version history. Uploading a taken name fails, copying
// overwrites the destination, and search ranks matches by size. It is
// useful when only the latest state matters and history bookkeeping
// would be overhead.
package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chronostore/chronostore/internal/logger"
	"github.com/chronostore/chronostore/internal/rank"
	"github.com/chronostore/chronostore/pkg/metrics"
)

// DefaultSearchLimit caps the number of names Search returns when the
// configuration does not override it.
const DefaultSearchLimit = 10

// File is one catalog entry.
type File struct {
	// Name is the file name, unique within the catalog
	Name string `json:"name"`

	// Size is the recorded size in bytes
	Size int64 `json:"size"`
}

// Catalog is an in-memory flat file catalog.
//
// Thread Safety:
// All operations are protected by a single read-write mutex (mu),
// making the catalog safe for concurrent access from multiple
// goroutines. Queries take the read lock, mutations the write lock.
type Catalog struct {
	// mu protects files for concurrent access.
	mu sync.RWMutex

	// files maps file names to their entries.
	files map[string]File

	// searchLimit caps the number of names Search returns.
	searchLimit int

	// metrics records operation outcomes. Never nil: the constructor
	// substitutes a no-op implementation when none is provided.
	metrics metrics.StoreMetrics
}

// CatalogConfig contains configuration for creating a catalog.
type CatalogConfig struct {
	// SearchLimit caps the number of names Search returns.
	// 0 means DefaultSearchLimit.
	SearchLimit int `mapstructure:"search_limit"`
}

// NewCatalog creates a new catalog with the specified configuration.
//
// Parameters:
//   - config: Catalog configuration
//   - m: Metrics sink for operation outcomes; nil disables collection
//
// Returns:
//   - *Catalog: A new catalog ready for use
func NewCatalog(config CatalogConfig, m metrics.StoreMetrics) *Catalog {
	limit := config.SearchLimit
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if m == nil {
		m = metrics.NoopStoreMetrics()
	}

	logger.Info("Catalog initialized (search limit %d)", limit)

	return &Catalog{
		files:       make(map[string]File),
		searchLimit: limit,
		metrics:     m,
	}
}

// NewCatalogWithDefaults creates a new catalog with the default search
// limit and no metrics collection.
func NewCatalogWithDefaults() *Catalog {
	return NewCatalog(CatalogConfig{}, nil)
}

// Upload adds a file to the catalog.
//
// The name must be free: unlike the temporal store there is no expiry
// that could release it, so a taken name stays taken until overwritten
// by a copy.
func (c *Catalog) Upload(ctx context.Context, name string, size int64) (err error) {
	start := time.Now()
	defer func() { c.metrics.RecordOperation("Upload", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return err
	}

	if name == "" {
		err = &CatalogError{
			Code:    ErrInvalidArgument,
			Message: "file name must be non-empty",
		}
		return err
	}
	if size < 0 {
		err = &CatalogError{
			Code:    ErrInvalidArgument,
			Message: "file size must be non-negative",
			Name:    name,
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.files[name]; exists {
		err = &CatalogError{
			Code:    ErrConflict,
			Message: "file with the same name already exists",
			Name:    name,
		}
		return err
	}

	c.files[name] = File{Name: name, Size: size}
	c.publishGauges()

	logger.Debug("Upload: recorded %s (size %d)", name, size)
	return nil
}

// Get returns the size of the named file.
func (c *Catalog) Get(ctx context.Context, name string) (size int64, err error) {
	start := time.Now()
	defer func() { c.metrics.RecordOperation("Get", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	file, exists := c.files[name]
	if !exists {
		err = &CatalogError{
			Code:    ErrNotFound,
			Message: "file does not exist",
			Name:    name,
		}
		return 0, err
	}
	return file.Size, nil
}

// Copy copies the source file to dest, overwriting any existing
// destination entry.
func (c *Catalog) Copy(ctx context.Context, source, dest string) (err error) {
	start := time.Now()
	defer func() { c.metrics.RecordOperation("Copy", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	file, exists := c.files[source]
	if !exists {
		err = &CatalogError{
			Code:    ErrNotFound,
			Message: "source file does not exist",
			Name:    source,
		}
		return err
	}

	c.files[dest] = File{Name: dest, Size: file.Size}
	c.publishGauges()

	logger.Debug("Copy: copied %s to %s", source, dest)
	return nil
}

// Search returns the names of files whose name starts with prefix,
// ordered by size descending, ties broken by name ascending. At most
// the configured search limit names are returned; an empty prefix
// matches every file.
func (c *Catalog) Search(ctx context.Context, prefix string) (names []string, err error) {
	start := time.Now()
	defer func() { c.metrics.RecordOperation("Search", time.Since(start), err) }()

	// Check context before acquiring lock
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	top := rank.NewTopK(c.searchLimit)
	for name, file := range c.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		top.Add(name, file.Size)
	}
	return top.Names(), nil
}

// Len returns the number of files in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.files)
}

// publishGauges pushes the structural counters to the metrics sink.
// Thread Safety: Must be called with lock held (read or write).
func (c *Catalog) publishGauges() {
	count := int64(len(c.files))
	c.metrics.SetNames(count)
	c.metrics.SetVersions(count)
}
