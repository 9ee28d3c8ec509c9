package badger

import (
	"encoding/binary"

	"github.com/chronostore/chronostore/pkg/timeline"
)

// Database Key Namespace Design
// ==============================
//
// BadgerDB is a key-value store, so we use prefixed keys to organize different
// data types into logical namespaces. This design:
//   - Prevents key collisions between different data types
//   - Lets one name's version records form a contiguous, time-ordered key range
//   - Makes the database structure self-documenting
//   - Supports future extensions without schema changes
//
// Time-Ordered Version Keys:
//
// Version records are keyed by name plus a fixed-width binary suffix of
// (created_at, seq), both big-endian. Because timestamps are validated
// non-negative, big-endian int64 bytes sort in numeric order, so BadgerDB's
// lexicographic key order within one name's range IS creation-time order,
// with the global insertion sequence breaking ties in arrival order. Point
// lookups ("newest record at or before T") become a single reverse seek.
//
// Key Namespace Prefixes:
//
// Data Type             Prefix   Key Format                              Value Type
// ==================================================================================
// Version Records       "v:"     v:<name>\x00<created_at BE8><seq BE8>   Version (JSON)
// Name Index            "n:"     n:<name>                                record count (uint64 BE)
// Insert Sequence       "sys:"   sys:seq                                 uint64 BE (singleton)
//
// Key Design Rationale:
//
// 1. Version Records (v:)
//    - One entry per upload or copy event
//    - The \x00 separator ends the name before the fixed 16-byte suffix,
//      so one name's range never leaks into another's during scans
//    - History listing: forward scan over "v:<name>\x00"
//    - Active-version lookup: reverse seek to "v:<name>\x00<T><0xff...>"
//    - Rollback: forward scan from "v:<name>\x00<T+1><0>" to the range end
//
// 2. Name Index (n:)
//    - One entry per name that currently has version records
//    - The value is the record count, kept in step with inserts/deletes
//    - Search and rollback enumerate names here instead of scanning all
//      version records
//    - Dropped as soon as rollback empties the name's history
//
// 3. Insert Sequence (sys:)
//    - Singleton counter, incremented on every insert
//    - Orders same-instant records by arrival, which is the tie-break
//      rule for retrieval

const (
	// prefixVersion is the key prefix for version records
	prefixVersion = "v:"

	// prefixName is the key prefix for the name index
	prefixName = "n:"

	// keySeparator terminates the name portion of a version key
	keySeparator = 0x00

	// versionKeySuffixLen is the fixed byte length of <created_at BE8><seq BE8>
	versionKeySuffixLen = 16
)

// keyVersion generates a key for one version record.
//
// Format: "v:<name>\x00<created_at BE8><seq BE8>"
//
// Parameters:
//   - name: The file name
//   - createdAt: The record's creation instant
//   - seq: The global insertion sequence number
//
// Returns:
//   - []byte: Database key for the version record
func keyVersion(name string, createdAt timeline.Timestamp, seq uint64) []byte {
	key := keyVersionPrefix(name)
	key = binary.BigEndian.AppendUint64(key, uint64(createdAt))
	key = binary.BigEndian.AppendUint64(key, seq)
	return key
}

// keyVersionPrefix generates the key prefix covering all of one name's
// version records.
//
// Format: "v:<name>\x00"
//
// Use this to scan a full history in creation order:
//
//	from: keyVersionPrefix(name)
//	to:   end of prefix range
//
// Parameters:
//   - name: The file name
//
// Returns:
//   - []byte: Database key prefix for the name's version records
func keyVersionPrefix(name string) []byte {
	key := make([]byte, 0, len(prefixVersion)+len(name)+1+versionKeySuffixLen)
	key = append(key, prefixVersion...)
	key = append(key, name...)
	key = append(key, keySeparator)
	return key
}

// keyVersionUpperBound generates the largest possible version key at the
// given instant, for reverse seeks.
//
// Format: "v:<name>\x00<t BE8><0xff x8>"
//
// A reverse iterator seeked here lands on the newest record with
// created_at <= t, since any real sequence number sorts below the 0xff
// padding.
//
// Parameters:
//   - name: The file name
//   - t: The query instant
//
// Returns:
//   - []byte: Seek key for reverse iteration
func keyVersionUpperBound(name string, t timeline.Timestamp) []byte {
	key := keyVersionPrefix(name)
	key = binary.BigEndian.AppendUint64(key, uint64(t))
	for i := 0; i < 8; i++ {
		key = append(key, 0xff)
	}
	return key
}

// keyVersionTruncateStart generates the first version key strictly after
// the given instant, for rollback scans.
//
// Format: "v:<name>\x00<t+1 BE8><0 x8>"
//
// Parameters:
//   - name: The file name
//   - t: The rollback target; records created after it are removed
//
// Returns:
//   - []byte: Seek key for forward iteration over doomed records
func keyVersionTruncateStart(name string, t timeline.Timestamp) []byte {
	key := keyVersionPrefix(name)
	key = binary.BigEndian.AppendUint64(key, uint64(t)+1)
	key = binary.BigEndian.AppendUint64(key, 0)
	return key
}

// keyName generates a key for the name index entry.
//
// Format: "n:<name>"
//
// Parameters:
//   - name: The file name
//
// Returns:
//   - []byte: Database key for the name index entry
func keyName(name string) []byte {
	return []byte(prefixName + name)
}

// nameFromKey extracts the file name from a name index key.
//
// Parameters:
//   - key: A key with the "n:" prefix
//
// Returns:
//   - string: The file name
func nameFromKey(key []byte) string {
	return string(key[len(prefixName):])
}

// keySequence generates the key for the global insert sequence counter.
//
// Format: "sys:seq"
//
// This is a singleton key - there's only one sequence counter.
//
// Returns:
//   - []byte: Database key for the sequence counter
func keySequence() []byte {
	return []byte("sys:seq")
}
