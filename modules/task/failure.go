package task

import (
	"errors"

	domain "github.com/example/taskmaster/domain/task"
)

// Failure codes carried in service responses.
const (
	CodeInvalidDueDate   = "invalid_due_date"
	CodeInvalidPriority  = "invalid_priority"
	CodeEmptyTitle       = "empty_title"
	CodeNoFieldsProvided = "no_fields_provided"
	CodeNotFound         = "not_found"
	CodeStoreError       = "store_error"
	CodeInternal         = "internal"
)

// Failure carries a domain failure inside a response body. Errors lose their
// type when sent over NATS, so the code is what the adapter maps back.
type Failure struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

var codes = []struct {
	code string
	err  error
}{
	{CodeInvalidDueDate, domain.ErrInvalidDueDate},
	{CodeInvalidPriority, domain.ErrInvalidPriority},
	{CodeEmptyTitle, domain.ErrEmptyTitle},
	{CodeNoFieldsProvided, domain.ErrNoFieldsProvided},
	{CodeNotFound, domain.ErrNotFound},
}

// toFailure converts a service error into a Failure.
func toFailure(err error) Failure {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return Failure{Code: c.code, Message: err.Error()}
		}
	}
	if domain.IsStoreError(err) {
		return Failure{Code: CodeStoreError, Message: err.Error()}
	}
	return Failure{Code: CodeInternal, Message: err.Error()}
}

// Err converts the Failure back into the matching sentinel error, or nil.
func (f Failure) Err() error {
	if f.Code == "" {
		return nil
	}
	for _, c := range codes {
		if f.Code == c.code {
			return c.err
		}
	}
	if f.Code == CodeStoreError {
		return &domain.StoreError{Op: "remote", Err: errors.New(f.Message)}
	}
	return errors.New(f.Message)
}
