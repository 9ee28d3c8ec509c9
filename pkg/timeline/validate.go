package timeline

// Argument validation shared by store implementations.
//
// Validation order is part of the contract: an upload with several bad
// arguments reports the first rule that fails, checked in the order
// timestamp, name, size, TTL. Both the memory and the badger store
// call these helpers so the two report identical errors.

// ValidateTimestamp rejects negative instants.
func ValidateTimestamp(t Timestamp) error {
	if t < 0 {
		return &StoreError{
			Code:    ErrInvalidArgument,
			Message: "timestamp must be non-negative",
		}
	}
	return nil
}

// ValidateUpload checks the argument rules for UploadAt.
func ValidateUpload(t Timestamp, name string, size int64, ttl TTL) error {
	if err := ValidateTimestamp(t); err != nil {
		return err
	}
	if name == "" {
		return &StoreError{
			Code:    ErrInvalidArgument,
			Message: "file name must be non-empty",
		}
	}
	if size < 0 {
		return &StoreError{
			Code:    ErrInvalidArgument,
			Message: "file size must be non-negative",
			Name:    name,
		}
	}
	if seconds, bounded := ttl.Seconds(); bounded && seconds <= 0 {
		return &StoreError{
			Code:    ErrInvalidArgument,
			Message: "file ttl must be positive",
			Name:    name,
		}
	}
	return nil
}
