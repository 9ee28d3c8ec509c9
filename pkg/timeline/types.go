package timeline

import (
	"math"

	"github.com/google/uuid"
)

// Timestamp is an instant on the store's logical clock, measured in
// seconds. Every operation receives its instant from the caller; the
// store never reads the wall clock. Valid timestamps are non-negative
// and callers are expected to supply them in non-decreasing order,
// though the store does not enforce monotonicity.
type Timestamp int64

// Version is one immutable record in a file's history. A record is
// written by UploadAt or CopyAt and never modified afterwards; the
// only way a record disappears is Rollback truncating its history.
type Version struct {
	// ID identifies the record for listings and debug logging.
	// It carries no ordering: history order is (CreatedAt, arrival).
	ID uuid.UUID `json:"id"`

	// Name is the file name the record belongs to.
	Name string `json:"name"`

	// Size is the file size in bytes recorded at creation.
	Size int64 `json:"size"`

	// CreatedAt is the instant the record was written.
	CreatedAt Timestamp `json:"created_at"`

	// TTL is the record's lifetime starting at CreatedAt.
	TTL TTL `json:"ttl"`
}

// ExpiresAt returns the last instant the version is visible. The
// second return is false when the version never expires. The sum
// saturates instead of wrapping for very large TTLs.
func (v Version) ExpiresAt() (Timestamp, bool) {
	seconds, bounded := v.TTL.Seconds()
	if !bounded {
		return 0, false
	}
	expiry := v.CreatedAt + Timestamp(seconds)
	if seconds > 0 && expiry < v.CreatedAt {
		expiry = math.MaxInt64
	}
	return expiry, true
}

// ActiveAt reports whether the version is visible at t: at or after
// its creation and, for bounded TTLs, at or before its expiry.
func (v Version) ActiveAt(t Timestamp) bool {
	if t < v.CreatedAt {
		return false
	}
	expiry, bounded := v.ExpiresAt()
	if !bounded {
		return true
	}
	return t <= expiry
}

// Stats reports structural counters for a store.
type Stats struct {
	// Names is the number of file names with at least one record.
	Names int `json:"names"`

	// Versions is the total number of records across all names.
	Versions int `json:"versions"`
}
