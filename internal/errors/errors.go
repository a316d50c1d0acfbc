// Package errors provides the structured error type used at docdex's
// build, store, and configuration boundaries.
package errors

import "fmt"

// Category classifies an error for handling and logging.
type Category string

const (
	CategoryIO         Category = "io"
	CategoryStore      Category = "store"
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
)

// Error codes for the failure modes docdex distinguishes.
const (
	// ErrCodeRootUnreadable means the scan root could not be enumerated.
	// Fatal to a build; no partial index is produced.
	ErrCodeRootUnreadable = "ERR_ROOT_UNREADABLE"

	// ErrCodeStoreWrite means the index snapshot could not be persisted.
	ErrCodeStoreWrite = "ERR_STORE_WRITE"

	// ErrCodeConfigInvalid means the configuration file could not be parsed.
	ErrCodeConfigInvalid = "ERR_CONFIG_INVALID"

	// ErrCodeInvalidInput means a caller-supplied argument was rejected.
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// DocdexError is the structured error type for docdex.
type DocdexError struct {
	// Code is the unique error code (e.g. "ERR_ROOT_UNREADABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (io, store, config, validation).
	Category Category

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *DocdexError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DocdexError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
func (e *DocdexError) Is(target error) bool {
	if t, ok := target.(*DocdexError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new DocdexError with the given code and message.
func New(code string, message string, cause error) *DocdexError {
	return &DocdexError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// IsRetryable reports whether the operation behind err can be retried.
func IsRetryable(err error) bool {
	if de, ok := err.(*DocdexError); ok {
		return de.Retryable
	}
	return false
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *DocdexError {
	return New(ErrCodeRootUnreadable, message, cause)
}

// StoreError creates a persistence-related error.
func StoreError(message string, cause error) *DocdexError {
	return New(ErrCodeStoreWrite, message, cause)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *DocdexError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *DocdexError {
	return New(ErrCodeInvalidInput, message, cause)
}

// GetCode extracts the error code from a DocdexError.
// Returns empty string if not a DocdexError.
func GetCode(err error) string {
	if de, ok := err.(*DocdexError); ok {
		return de.Code
	}
	return ""
}

// isRetryableCode reports whether a failure mode is transient. Snapshot
// writes can lose a lock race; bad input and bad config never heal on retry.
func isRetryableCode(code string) bool {
	return code == ErrCodeStoreWrite
}

func categoryFromCode(code string) Category {
	switch code {
	case ErrCodeRootUnreadable:
		return CategoryIO
	case ErrCodeStoreWrite:
		return CategoryStore
	case ErrCodeConfigInvalid:
		return CategoryConfig
	case ErrCodeInvalidInput:
		return CategoryValidation
	default:
		return CategoryIO
	}
}
