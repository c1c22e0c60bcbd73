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
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Template errors
	ErrTemplateLoad  ErrorCode = "TEMPLATE_LOAD"
	ErrTemplateParse ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateWrite ErrorCode = "TEMPLATE_WRITE"

	// Build result errors
	ErrBuildGraphLoad ErrorCode = "BUILD_GRAPH_LOAD"
	ErrBuildDirAccess ErrorCode = "BUILD_DIR_ACCESS"

	// Layer errors
	ErrMissingRuntime ErrorCode = "MISSING_RUNTIME"
	ErrLayerCopy      ErrorCode = "LAYER_COPY"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// DepliftError represents a structured error with code and details
type DepliftError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DepliftError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DepliftError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DepliftError) Is(target error) bool {
	var targetErr *DepliftError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DepliftError with the given code and message
func New(code ErrorCode, message string) *DepliftError {
	return &DepliftError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DepliftError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DepliftError {
	return &DepliftError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DepliftError
func Wrap(err error, code ErrorCode, message string) *DepliftError {
	if err == nil {
		return nil
	}
	return &DepliftError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DepliftError {
	if err == nil {
		return nil
	}
	return &DepliftError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DepliftError) WithDetail(key string, value interface{}) *DepliftError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var depliftErr *DepliftError
	if errors.As(err, &depliftErr) {
		return depliftErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DepliftError
func GetErrorCode(err error) ErrorCode {
	var depliftErr *DepliftError
	if errors.As(err, &depliftErr) {
		return depliftErr.Code
	}
	return ErrUnknown
}
