package badger

import (
	"testing"

	"github.com/chronostore/chronostore/pkg/timeline"
	"github.com/google/uuid"
)

// TestVersionRoundTrip verifies that version records survive encoding,
// in particular the bounded/unbounded TTL distinction.
func TestVersionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		version timeline.Version
	}{
		{
			name: "unbounded",
			version: timeline.Version{
				ID:        uuid.New(),
				Name:      "file.txt",
				Size:      100,
				CreatedAt: 10,
				TTL:       timeline.NoTTL(),
			},
		},
		{
			name: "bounded",
			version: timeline.Version{
				ID:        uuid.New(),
				Name:      "dir/a.txt",
				Size:      0,
				CreatedAt: 0,
				TTL:       timeline.TTLSeconds(90),
			},
		},
		{
			name: "bounded_zero",
			version: timeline.Version{
				ID:        uuid.New(),
				Name:      "copy.txt",
				Size:      7,
				CreatedAt: 100,
				TTL:       timeline.TTLSeconds(0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := encodeVersion(&tt.version)
			if err != nil {
				t.Fatalf("encodeVersion failed: %v", err)
			}

			decoded, err := decodeVersion(encoded)
			if err != nil {
				t.Fatalf("decodeVersion failed: %v", err)
			}

			if *decoded != tt.version {
				t.Errorf("round trip changed the record: got %+v, want %+v", *decoded, tt.version)
			}
		})
	}
}

// TestUint64RoundTrip verifies the binary counter encoding.
func TestUint64RoundTrip(t *testing.T) {
	for _, value := range []uint64{0, 1, 300, 1<<63 + 5} {
		decoded, err := decodeUint64(encodeUint64(value))
		if err != nil {
			t.Fatalf("decodeUint64 failed for %d: %v", value, err)
		}
		if decoded != value {
			t.Errorf("round trip changed the value: got %d, want %d", decoded, value)
		}
	}

	if _, err := decodeUint64([]byte{1, 2, 3}); err == nil {
		t.Error("decodeUint64 should reject short input")
	}
}
