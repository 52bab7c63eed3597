package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Entry errors. These are recovered per entry and never abort a run.
	ErrBrokenEntry ErrorCode = "BROKEN_ENTRY"
	ErrCollision   ErrorCode = "COLLISION"
	ErrOutOfBounds ErrorCode = "OUT_OF_BOUNDS"
	ErrTransientIO ErrorCode = "TRANSIENT_IO"

	// Manifest errors
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrDuplicateName ErrorCode = "DUPLICATE_NAME"

	// Repository errors
	ErrDirtyRepository ErrorCode = "DIRTY_REPOSITORY"
	ErrVCS             ErrorCode = "VCS"
)

// DotyError represents a structured error with code and details
type DotyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotyError) Is(target error) bool {
	var targetErr *DotyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotyError with the given code and message
func New(code ErrorCode, message string) *DotyError {
	return &DotyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotyError {
	return &DotyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotyError
func Wrap(err error, code ErrorCode, message string) *DotyError {
	if err == nil {
		return nil
	}
	return &DotyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotyError {
	if err == nil {
		return nil
	}
	return &DotyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotyError) WithDetail(key string, value interface{}) *DotyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotyErr *DotyError
	if errors.As(err, &dotyErr) {
		return dotyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotyError
func GetErrorCode(err error) ErrorCode {
	var dotyErr *DotyError
	if errors.As(err, &dotyErr) {
		return dotyErr.Code
	}
	return ErrUnknown
}

// Fatal reports whether an error of this code aborts the whole run.
// Entry level codes are recovered and reported; everything else stops.
func Fatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrBrokenEntry, ErrCollision, ErrOutOfBounds, ErrTransientIO:
		return false
	}
	return err != nil
}
