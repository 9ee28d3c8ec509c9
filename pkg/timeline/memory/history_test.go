package memory

import (
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
)

func record(created timeline.Timestamp, size int64) timeline.Version {
	return timeline.Version{Size: size, CreatedAt: created, TTL: timeline.NoTTL()}
}

// TestHistoryInsertKeepsOrder verifies CreatedAt ordering with ties in
// arrival order.
func TestHistoryInsertKeepsOrder(t *testing.T) {
	tests := []struct {
		name      string
		inserts   []timeline.Version
		wantSizes []int64
	}{
		{
			name:      "ascending input",
			inserts:   []timeline.Version{record(1, 10), record(2, 20), record(3, 30)},
			wantSizes: []int64{10, 20, 30},
		},
		{
			name:      "descending input gets sorted",
			inserts:   []timeline.Version{record(3, 30), record(2, 20), record(1, 10)},
			wantSizes: []int64{10, 20, 30},
		},
		{
			name:      "equal instants keep arrival order",
			inserts:   []timeline.Version{record(5, 1), record(5, 2), record(5, 3)},
			wantSizes: []int64{1, 2, 3},
		},
		{
			name:      "tie inserted between neighbors",
			inserts:   []timeline.Version{record(1, 10), record(9, 90), record(5, 51), record(5, 52)},
			wantSizes: []int64{10, 51, 52, 90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &history{}
			for _, v := range tt.inserts {
				h.insert(v)
			}
			if h.len() != len(tt.wantSizes) {
				t.Fatalf("len = %d, want %d", h.len(), len(tt.wantSizes))
			}
			for i, want := range tt.wantSizes {
				if got := h.versions[i].Size; got != want {
					t.Fatalf("versions[%d].Size = %d, want %d", i, got, want)
				}
			}
			for i := 1; i < h.len(); i++ {
				if h.versions[i-1].CreatedAt > h.versions[i].CreatedAt {
					t.Fatalf("history out of order at %d", i)
				}
			}
		})
	}
}

// TestHistoryActiveAt verifies that only the newest record at or
// before the instant is considered, then checked against expiry.
func TestHistoryActiveAt(t *testing.T) {
	h := &history{}
	h.insert(timeline.Version{Size: 100, CreatedAt: 10, TTL: timeline.TTLSeconds(90)})
	h.insert(timeline.Version{Size: 200, CreatedAt: 150, TTL: timeline.NoTTL()})

	tests := []struct {
		name     string
		at       timeline.Timestamp
		wantSize int64
		wantOK   bool
	}{
		{name: "before first record", at: 9, wantOK: false},
		{name: "first record creation", at: 10, wantSize: 100, wantOK: true},
		{name: "first record last valid", at: 100, wantSize: 100, wantOK: true},
		{name: "gap after expiry", at: 101, wantOK: false},
		{name: "gap before second record", at: 149, wantOK: false},
		{name: "second record", at: 150, wantSize: 200, wantOK: true},
		{name: "second record far future", at: 100000, wantSize: 200, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := h.activeAt(tt.at)
			if ok != tt.wantOK {
				t.Fatalf("activeAt(%d) ok = %v, want %v", tt.at, ok, tt.wantOK)
			}
			if ok && v.Size != tt.wantSize {
				t.Fatalf("activeAt(%d).Size = %d, want %d", tt.at, v.Size, tt.wantSize)
			}
		})
	}
}

// TestHistoryActiveAtSupersedes verifies that a newer record shadows
// an older one whose TTL is still running.
func TestHistoryActiveAtSupersedes(t *testing.T) {
	h := &history{}
	h.insert(timeline.Version{Size: 100, CreatedAt: 10, TTL: timeline.NoTTL()})
	h.insert(timeline.Version{Size: 200, CreatedAt: 50, TTL: timeline.TTLSeconds(10)})

	// The newer record wins while it lives
	if v, ok := h.activeAt(55); !ok || v.Size != 200 {
		t.Fatalf("activeAt(55) = %v, %v; want size 200", v.Size, ok)
	}

	// After the newer record expires the older one does NOT come back:
	// the newest record at or before the instant is the only candidate
	if _, ok := h.activeAt(61); ok {
		t.Fatal("expired newest record should not fall back to older one")
	}
}

// TestHistoryActiveAtTies verifies that the last arrival wins among
// records sharing a creation instant.
func TestHistoryActiveAtTies(t *testing.T) {
	h := &history{}
	h.insert(timeline.Version{Size: 1, CreatedAt: 5, TTL: timeline.NoTTL()})
	h.insert(timeline.Version{Size: 2, CreatedAt: 5, TTL: timeline.NoTTL()})
	h.insert(timeline.Version{Size: 3, CreatedAt: 5, TTL: timeline.NoTTL()})

	if v, ok := h.activeAt(5); !ok || v.Size != 3 {
		t.Fatalf("activeAt(5) = %d, %v; want last arrival (size 3)", v.Size, ok)
	}
}

// TestHistoryTruncateAfter verifies the strict cut at the instant.
func TestHistoryTruncateAfter(t *testing.T) {
	tests := []struct {
		name        string
		created     []timeline.Timestamp
		at          timeline.Timestamp
		wantRemoved int
		wantLen     int
	}{
		{
			name:        "future instant removes nothing",
			created:     []timeline.Timestamp{1, 2, 3},
			at:          3,
			wantRemoved: 0,
			wantLen:     3,
		},
		{
			name:        "middle cut",
			created:     []timeline.Timestamp{1, 2, 3},
			at:          2,
			wantRemoved: 1,
			wantLen:     2,
		},
		{
			name:        "cut keeps equal instants",
			created:     []timeline.Timestamp{1, 2, 2, 3},
			at:          2,
			wantRemoved: 1,
			wantLen:     3,
		},
		{
			name:        "everything removed",
			created:     []timeline.Timestamp{5, 6, 7},
			at:          4,
			wantRemoved: 3,
			wantLen:     0,
		},
		{
			name:        "zero instant keeps records created at zero",
			created:     []timeline.Timestamp{0, 1},
			at:          0,
			wantRemoved: 1,
			wantLen:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &history{}
			for _, c := range tt.created {
				h.insert(record(c, int64(c)))
			}
			removed := h.truncateAfter(tt.at)
			if removed != tt.wantRemoved {
				t.Fatalf("truncateAfter(%d) removed %d, want %d", tt.at, removed, tt.wantRemoved)
			}
			if h.len() != tt.wantLen {
				t.Fatalf("len after truncate = %d, want %d", h.len(), tt.wantLen)
			}
		})
	}
}

// TestHistoryListIsACopy verifies that mutating the listing does not
// touch the history.
func TestHistoryListIsACopy(t *testing.T) {
	h := &history{}
	h.insert(record(1, 10))

	listed := h.list()
	listed[0].Size = 999

	if h.versions[0].Size != 10 {
		t.Fatal("list() leaked the backing slice")
	}
}
