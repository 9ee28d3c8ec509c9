package timeline

import "errors"

// StoreError represents a domain error from store operations.
//
// These are business rule failures (invalid argument, conflicting
// upload, missing source) as opposed to infrastructure errors. Callers
// match on Code; Message is a fixed human-readable string. A failed
// operation leaves the store untouched, so StoreError never signals a
// partial effect.
type StoreError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Name is the file name related to the error (if applicable)
	Name string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// ErrorCode represents the category of a store error.
type ErrorCode int

const (
	// ErrInvalidArgument indicates invalid parameters were provided
	// Examples: negative timestamp, empty name, negative size, zero TTL
	ErrInvalidArgument ErrorCode = iota

	// ErrConflict indicates an upload targeted a name that already has
	// an active version at the given instant
	ErrConflict

	// ErrNotFound indicates no active version exists for the name at
	// the given instant
	ErrNotFound
)

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidArgument:
		return "INVALID_ARGUMENT"
	case ErrConflict:
		return "CONFLICT"
	case ErrNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// AsStoreError unwraps err as a *StoreError.
func AsStoreError(err error) (*StoreError, bool) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}

// IsInvalidArgument reports whether err is a StoreError with code
// ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	storeErr, ok := AsStoreError(err)
	return ok && storeErr.Code == ErrInvalidArgument
}

// IsConflict reports whether err is a StoreError with code ErrConflict.
func IsConflict(err error) bool {
	storeErr, ok := AsStoreError(err)
	return ok && storeErr.Code == ErrConflict
}

// IsNotFound reports whether err is a StoreError with code ErrNotFound.
func IsNotFound(err error) bool {
	storeErr, ok := AsStoreError(err)
	return ok && storeErr.Code == ErrNotFound
}
