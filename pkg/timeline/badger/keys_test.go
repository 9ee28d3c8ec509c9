package badger

import (
	"bytes"
	"math"
	"testing"
)

// TestVersionKeyOrdering verifies that version keys sort by
// (created_at, seq) under lexicographic byte comparison.
func TestVersionKeyOrdering(t *testing.T) {
	ordered := [][]byte{
		keyVersion("file.txt", 0, 1),
		keyVersion("file.txt", 5, 2),
		keyVersion("file.txt", 5, 9),
		keyVersion("file.txt", 10, 3),
		keyVersion("file.txt", 10, 7),
		keyVersion("file.txt", math.MaxInt64, 1),
	}

	for i := 1; i < len(ordered); i++ {
		if bytes.Compare(ordered[i-1], ordered[i]) >= 0 {
			t.Errorf("key %d (%x) should sort before key %d (%x)", i-1, ordered[i-1], i, ordered[i])
		}
	}
}

// TestVersionKeyPrefixIsolation verifies that one name's range never
// matches another name that extends it.
func TestVersionKeyPrefixIsolation(t *testing.T) {
	prefix := keyVersionPrefix("a")

	if !bytes.HasPrefix(keyVersion("a", 5, 1), prefix) {
		t.Error("a's own version keys should match a's prefix")
	}
	if bytes.HasPrefix(keyVersion("ab", 5, 1), prefix) {
		t.Error("ab's version keys should not match a's prefix")
	}
	if bytes.HasPrefix(keyName("a"), prefix) {
		t.Error("name index keys should not match version prefixes")
	}
}

// TestVersionUpperBound verifies the reverse-seek bound: it covers every
// real key at the instant and none after it.
func TestVersionUpperBound(t *testing.T) {
	bound := keyVersionUpperBound("file.txt", 10)

	atInstant := keyVersion("file.txt", 10, math.MaxUint64-1)
	if bytes.Compare(atInstant, bound) > 0 {
		t.Errorf("key at the instant (%x) should not sort above the bound (%x)", atInstant, bound)
	}

	afterInstant := keyVersion("file.txt", 11, 0)
	if bytes.Compare(afterInstant, bound) <= 0 {
		t.Errorf("key after the instant (%x) should sort above the bound (%x)", afterInstant, bound)
	}
}

// TestVersionTruncateStart verifies the rollback scan start: strictly
// after every key at the instant, at or before every later key.
func TestVersionTruncateStart(t *testing.T) {
	start := keyVersionTruncateStart("file.txt", 10)

	kept := keyVersion("file.txt", 10, math.MaxUint64)
	if bytes.Compare(kept, start) >= 0 {
		t.Errorf("key at the instant (%x) should sort below the truncate start (%x)", kept, start)
	}

	doomed := keyVersion("file.txt", 11, 0)
	if bytes.Compare(doomed, start) < 0 {
		t.Errorf("key after the instant (%x) should not sort below the truncate start (%x)", doomed, start)
	}
}

// TestNameFromKey verifies the name index key round trip.
func TestNameFromKey(t *testing.T) {
	tests := []string{"file.txt", "dir/a.txt", "x"}

	for _, name := range tests {
		if got := nameFromKey(keyName(name)); got != name {
			t.Errorf("nameFromKey(keyName(%q)) = %q", name, got)
		}
	}
}
