package config

import (
	"context"
	"strings"
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
)

func TestCreateStore_Memory(t *testing.T) {
	ctx := context.Background()
	cfg := &StoreConfig{
		Type:   "memory",
		Memory: map[string]any{},
	}

	store, err := CreateStore(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create memory store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if store == nil {
		t.Fatal("Expected non-nil store")
	}
}

func TestCreateStore_MemorySearchLimit(t *testing.T) {
	ctx := context.Background()
	cfg := &StoreConfig{
		Type:        "memory",
		SearchLimit: 2,
		Memory:      map[string]any{},
	}

	store, err := CreateStore(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create memory store: %v", err)
	}
	defer func() { _ = store.Close() }()

	// The shared search limit flows into the store
	for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := store.UploadAt(ctx, 1, name, int64(100*(i+1)), timeline.NoTTL()); err != nil {
			t.Fatalf("Failed to upload %s: %v", name, err)
		}
	}

	names, err := store.SearchAt(ctx, 1, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("Expected 2 results with search_limit 2, got %d: %v", len(names), names)
	}
}

func TestCreateStore_Badger(t *testing.T) {
	ctx := context.Background()
	cfg := &StoreConfig{
		Type: "badger",
		Badger: map[string]any{
			"in_memory": true,
		},
	}

	store, err := CreateStore(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create badger store: %v", err)
	}
	defer func() { _ = store.Close() }()

	// Exercise one round trip through the created store
	if err := store.UploadAt(ctx, 1, "file.txt", 100, timeline.NoTTL()); err != nil {
		t.Fatalf("Failed to upload: %v", err)
	}
	size, err := store.GetAt(ctx, 1, "file.txt")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if size != 100 {
		t.Errorf("Expected size 100, got %d", size)
	}
}

func TestCreateStore_BadgerDiskMode(t *testing.T) {
	ctx := context.Background()
	cfg := &StoreConfig{
		Type: "badger",
		Badger: map[string]any{
			"in_memory": false,
		},
	}

	_, err := CreateStore(ctx, cfg)
	if err == nil {
		t.Fatal("Expected error for badger disk mode")
	}
	if !strings.Contains(err.Error(), "in-memory") {
		t.Errorf("Expected 'in-memory' error, got: %v", err)
	}
}

func TestCreateStore_UnknownType(t *testing.T) {
	ctx := context.Background()
	cfg := &StoreConfig{
		Type: "postgres",
	}

	_, err := CreateStore(ctx, cfg)
	if err == nil {
		t.Fatal("Expected error for unknown store type")
	}
	if !strings.Contains(err.Error(), "unknown store type") {
		t.Errorf("Expected 'unknown store type' error, got: %v", err)
	}
}

func TestCreateStore_InvalidBadgerConfig(t *testing.T) {
	ctx := context.Background()
	cfg := &StoreConfig{
		Type: "badger",
		Badger: map[string]any{
			"in_memory": "definitely",
		},
	}

	_, err := CreateStore(ctx, cfg)
	if err == nil {
		t.Fatal("Expected error for malformed badger config")
	}
}
