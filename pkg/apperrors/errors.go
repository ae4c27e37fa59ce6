package apperrors

import (
	"fmt"
	"strings"
)

// ValidationError aggregates every violated input rule into one error instead
// of failing on the first. Fields lists each missing or invalid field name.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// NotFoundError signals that a record with the requested id does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

// ConflictError signals a duplicate name or a delete blocked by a reference.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StorageCorruptError means the collection file exists, is non-empty and is
// not parseable as the expected structure.
type StorageCorruptError struct {
	Path string
	Err  error
}

func (e *StorageCorruptError) Error() string {
	return fmt.Sprintf("storage file %s is corrupt: %v", e.Path, e.Err)
}

func (e *StorageCorruptError) Unwrap() error { return e.Err }

// StorageWriteError wraps an I/O failure while persisting a collection.
// The caller treats it as fatal for the current request; no partial-write
// recovery is attempted.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write storage file %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
