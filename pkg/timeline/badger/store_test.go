package badger

import (
	"context"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	timelinetesting "github.com/chronostore/chronostore/pkg/timeline/testing"
	badger "github.com/dgraph-io/badger/v4"
)

// createTestStore creates a BadgerStore sized for tests.
func createTestStore(t *testing.T, config BadgerStoreConfig) *BadgerStore {
	t.Helper()

	if config.BadgerOptions == nil {
		// Small memtables keep dozens of test stores cheap.
		opts := badger.DefaultOptions("")
		opts = opts.WithInMemory(true)
		opts = opts.WithLoggingLevel(badger.ERROR)
		opts = opts.WithMemTableSize(1 << 20)
		config.BadgerOptions = &opts
	}

	store, err := NewBadgerStore(context.Background(), config, nil)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// TestBadgerStore runs the complete Store test suite against the
// BadgerStore implementation.
func TestBadgerStore(t *testing.T) {
	suite := &timelinetesting.StoreTestSuite{
		NewStore: func() timeline.Store {
			return createTestStore(t, BadgerStoreConfig{})
		},
	}

	suite.Run(t)
}

// TestBadgerStoreRejectsDiskMode verifies that the store refuses to
// start without in-memory mode.
func TestBadgerStoreRejectsDiskMode(t *testing.T) {
	_, err := NewBadgerStore(context.Background(), BadgerStoreConfig{InMemory: false}, nil)
	if err == nil {
		t.Fatal("expected an error for disk mode")
	}
}

// TestBadgerStoreSearchLimit verifies that the configured search limit
// bounds result counts.
func TestBadgerStoreSearchLimit(t *testing.T) {
	store := createTestStore(t, BadgerStoreConfig{SearchLimit: 2})

	timelinetesting.MustUploadAt(t, store, 1, "a.txt", 100, timeline.NoTTL())
	timelinetesting.MustUploadAt(t, store, 2, "b.txt", 300, timeline.NoTTL())
	timelinetesting.MustUploadAt(t, store, 3, "c.txt", 200, timeline.NoTTL())

	timelinetesting.AssertSearchAt(t, store, 3, "", []string{"b.txt", "c.txt"})
}

// TestBadgerStoreTieBreakMatchesArrival verifies that two records with
// the same creation instant resolve to the latest arrival, exercising
// the sequence ordering in the key layout.
func TestBadgerStoreTieBreakMatchesArrival(t *testing.T) {
	store := createTestStore(t, BadgerStoreConfig{})

	// The copy lands at the exact instant of the destination's own
	// upload, producing two records with the same creation time.
	timelinetesting.MustUploadAt(t, store, 10, "source.txt", 100, timeline.NoTTL())
	timelinetesting.MustUploadAt(t, store, 10, "dest.txt", 999, timeline.TTLSeconds(5))
	timelinetesting.MustCopyAt(t, store, 10, "source.txt", "dest.txt")

	// The copy arrived last, so it wins the tie from that instant on.
	timelinetesting.AssertSizeAt(t, store, 10, "dest.txt", 100)
	timelinetesting.AssertSizeAt(t, store, 1000, "dest.txt", 100)

	versions, err := store.Versions(context.Background(), "dest.txt")
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected 2 records for dest.txt, got %d", len(versions))
	}
}
