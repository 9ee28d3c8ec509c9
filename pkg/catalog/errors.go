package catalog

import "errors"

// CatalogError represents a domain error from catalog operations.
//
// These are business rule failures (invalid argument, duplicate
// upload, missing source) as opposed to infrastructure errors. Callers
// match on Code; Message is a fixed human-readable string. A failed
// operation leaves the catalog untouched.
type CatalogError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Name is the file name related to the error (if applicable)
	Name string
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// ErrorCode represents the category of a catalog error.
type ErrorCode int

const (
	// ErrInvalidArgument indicates invalid parameters were provided
	// Examples: empty name, negative size
	ErrInvalidArgument ErrorCode = iota

	// ErrConflict indicates an upload targeted a name that is already
	// present in the catalog
	ErrConflict

	// ErrNotFound indicates the named file is not in the catalog
	ErrNotFound
)

// AsCatalogError unwraps err as a *CatalogError.
func AsCatalogError(err error) (*CatalogError, bool) {
	var catalogErr *CatalogError
	if errors.As(err, &catalogErr) {
		return catalogErr, true
	}
	return nil, false
}

// IsInvalidArgument reports whether err is a CatalogError with code
// ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	catalogErr, ok := AsCatalogError(err)
	return ok && catalogErr.Code == ErrInvalidArgument
}

// IsConflict reports whether err is a CatalogError with code
// ErrConflict.
func IsConflict(err error) bool {
	catalogErr, ok := AsCatalogError(err)
	return ok && catalogErr.Code == ErrConflict
}

// IsNotFound reports whether err is a CatalogError with code
// ErrNotFound.
func IsNotFound(err error) bool {
	catalogErr, ok := AsCatalogError(err)
	return ok && catalogErr.Code == ErrNotFound
}
