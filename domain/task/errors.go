package task

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input validation failure. Validation
// failures are detected before the store is touched.
var ErrValidation = errors.New("validation failed")

// Sentinel errors for task operations.
var (
	// ErrInvalidDueDate is returned when a due date is not in YYYY-MM-DD form.
	ErrInvalidDueDate = fmt.Errorf("%w: invalid due date format, use YYYY-MM-DD", ErrValidation)

	// ErrNoFieldsProvided is returned when an update carries no fields.
	ErrNoFieldsProvided = fmt.Errorf("%w: no fields provided", ErrValidation)

	// ErrEmptyTitle is returned when a title is empty.
	ErrEmptyTitle = fmt.Errorf("%w: title is required", ErrValidation)

	// ErrInvalidPriority is returned when a priority is outside MinPriority..MaxPriority.
	ErrInvalidPriority = fmt.Errorf("%w: priority must be between %d and %d", ErrValidation, MinPriority, MaxPriority)

	// ErrNotFound is returned when the target task does not exist.
	ErrNotFound = errors.New("task not found")
)

// StoreError reports a failure of the underlying storage.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err is, or wraps, a *StoreError.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
