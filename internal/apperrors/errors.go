package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that a journal entry's debits do not equal its credits.
// This is a programming or data error and is never silently corrected.
var ErrUnbalanced = errors.New("journal entry debits do not equal credits")

// ErrConflict indicates that the requested change conflicts with current state.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("action forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrTransient indicates a store-level failure (network, lock) that was rolled
// back and is safe for the caller to retry.
var ErrTransient = errors.New("transient store error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// IsRetryable reports whether the caller may retry the failed operation.
// Fatal errors (unbalanced entries, unknown accounts, duplicates) are not
// retryable; transient store errors are.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
