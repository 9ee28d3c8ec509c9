package timeline

import (
	"bytes"
	"fmt"
	"strconv"
)

// TTL is the lifetime of a version: either bounded to a number of
// seconds or unbounded. The zero value is unbounded, matching the
// default for uploads that do not specify a lifetime.
//
// A bounded TTL of n seconds keeps a version visible for the closed
// interval [CreatedAt, CreatedAt+n]. Note the inclusive upper bound:
// a version uploaded at 10 with a TTL of 90 is still visible at 100
// and gone at 101.
//
// TTL distinguishes "bounded at zero" (visible only at its creation
// instant, which copy inheritance can produce) from "unbounded", so
// no integer sentinel is involved.
type TTL struct {
	seconds int64
	bounded bool
}

// TTLSeconds returns a bounded TTL of the given number of seconds.
// Upload validation rejects non-positive values; copy inheritance may
// legitimately construct a zero TTL.
func TTLSeconds(seconds int64) TTL {
	return TTL{seconds: seconds, bounded: true}
}

// NoTTL returns an unbounded TTL.
func NoTTL() TTL {
	return TTL{}
}

// IsUnbounded reports whether the TTL never expires.
func (t TTL) IsUnbounded() bool {
	return !t.bounded
}

// Seconds returns the bounded lifetime in seconds. The second return
// is false for unbounded TTLs, in which case the count is meaningless.
func (t TTL) Seconds() (int64, bool) {
	return t.seconds, t.bounded
}

// Remaining returns the lifetime left after elapsed seconds have
// passed. Unbounded TTLs stay unbounded. This is the inheritance rule
// for copies: the destination lives exactly as long as the source
// would have.
func (t TTL) Remaining(elapsed int64) TTL {
	if !t.bounded {
		return t
	}
	return TTLSeconds(t.seconds - elapsed)
}

// String formats the TTL for logs and shell output.
func (t TTL) String() string {
	if !t.bounded {
		return "unbounded"
	}
	return strconv.FormatInt(t.seconds, 10) + "s"
}

// MarshalJSON encodes a bounded TTL as its second count and an
// unbounded TTL as null.
func (t TTL) MarshalJSON() ([]byte, error) {
	if !t.bounded {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.seconds, 10), nil
}

// UnmarshalJSON decodes the representation produced by MarshalJSON.
func (t *TTL) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = NoTTL()
		return nil
	}

	seconds, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ttl value %q: %w", data, err)
	}

	*t = TTLSeconds(seconds)
	return nil
}
