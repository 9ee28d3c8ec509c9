package main

import (
	"context"
	"fmt"

	"github.com/chronostore/chronostore/pkg/timeline"
)

// seedStore loads a small demo dataset so the shell has something to
// show. The mix covers unbounded files, files that expire, and a copy
// that inherits a lifetime.
func seedStore(ctx context.Context, store timeline.Store) error {
	files := []struct {
		at   timeline.Timestamp
		name string
		size int64
		ttl  timeline.TTL
	}{
		{0, "readme.txt", 512, timeline.NoTTL()},
		{0, "notes.txt", 1024, timeline.NoTTL()},
		{5, "images/background1.png", 204800, timeline.NoTTL()},
		{5, "images/background2.jpg", 153600, timeline.NoTTL()},
		{5, "images/wallpaper.png", 307200, timeline.NoTTL()},
		{10, "tmp/session.lock", 64, timeline.TTLSeconds(90)},
		{10, "tmp/cache.bin", 4096, timeline.TTLSeconds(300)},
	}

	for _, file := range files {
		if err := store.UploadAt(ctx, file.at, file.name, file.size, file.ttl); err != nil {
			return fmt.Errorf("failed to seed %s: %w", file.name, err)
		}
	}

	// A copy of a bounded file keeps whatever lifetime the original had
	// left, so tmp/session.bak below expires together with session.lock
	if err := store.CopyAt(ctx, 20, "tmp/session.lock", "tmp/session.bak"); err != nil {
		return fmt.Errorf("failed to seed tmp/session.bak: %w", err)
	}

	return nil
}
