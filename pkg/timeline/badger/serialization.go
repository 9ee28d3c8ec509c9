package badger

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/chronostore/chronostore/pkg/timeline"
)

// Serialization Strategy
// ======================
//
// BadgerDB stores data as raw bytes, so we serialize before storing and
// deserialize when reading. Two strategies, chosen by data type:
//
// 1. JSON Encoding (Version Records)
//    - Pros: Human-readable, flexible schema evolution, easy debugging
//    - Cons: Larger size, slower than binary
//    - Version records are small and infrequent enough that debuggability
//      wins over raw encode speed
//
// 2. Binary Encoding (Counters)
//    - Name index counts and the insert sequence are uint64 big-endian
//    - Pros: Compact, fast
//    - Cons: Not human-readable, rigid schema

// encodeVersion serializes a version record to JSON bytes.
//
// Parameters:
//   - version: The version record to encode
//
// Returns:
//   - []byte: JSON-encoded bytes
//   - error: Encoding error if serialization fails
func encodeVersion(version *timeline.Version) ([]byte, error) {
	bytes, err := json.Marshal(version)
	if err != nil {
		return nil, fmt.Errorf("failed to encode version record: %w", err)
	}
	return bytes, nil
}

// decodeVersion deserializes a version record from JSON bytes.
//
// Parameters:
//   - bytes: JSON-encoded version record
//
// Returns:
//   - *timeline.Version: Decoded version record
//   - error: Decoding error if deserialization fails
func decodeVersion(bytes []byte) (*timeline.Version, error) {
	var version timeline.Version
	if err := json.Unmarshal(bytes, &version); err != nil {
		return nil, fmt.Errorf("failed to decode version record: %w", err)
	}
	return &version, nil
}

// encodeUint64 serializes a uint64 to 8 bytes using big-endian encoding.
//
// Big-endian keeps encoded values comparable in lexicographic ordering,
// matching the ordering BadgerDB uses for keys.
//
// Parameters:
//   - value: The uint64 value to encode
//
// Returns:
//   - []byte: 8-byte big-endian representation
func encodeUint64(value uint64) []byte {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, value)
	return bytes
}

// decodeUint64 deserializes a uint64 from 8 bytes using big-endian encoding.
//
// Parameters:
//   - bytes: 8-byte big-endian encoded value
//
// Returns:
//   - uint64: Decoded value
//   - error: Error if bytes length is not 8
func decodeUint64(bytes []byte) (uint64, error) {
	if len(bytes) != 8 {
		return 0, fmt.Errorf("invalid uint64 bytes: expected 8 bytes, got %d", len(bytes))
	}
	return binary.BigEndian.Uint64(bytes), nil
}
