// Package apperrors defines the error taxonomy shared by the service and
// repository layers. Handlers translate these into HTTP status codes; no
// other layer inspects HTTP concerns.
package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError signals a lookup on an unknown task id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with id %q not found", e.ID)
}

// ValidationError signals a rejected field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError signals a duplicate-title violation.
type ConflictError struct {
	Title string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a task with title %q already exists", e.Title)
}

// StorageError wraps a backing-store failure; surfaced as 5xx.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
