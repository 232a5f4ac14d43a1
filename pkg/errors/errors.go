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
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors. ErrConfiguration is the only fatal class: the run
	// cannot continue without knowing whose home directory to provision.
	ErrConfiguration ErrorCode = "CONFIGURATION"
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigValid   ErrorCode = "CONFIG_INVALID"

	// Privilege errors
	ErrElevate ErrorCode = "ELEVATE"

	// Package errors
	ErrPackageQuery   ErrorCode = "PACKAGE_QUERY"
	ErrPackageInstall ErrorCode = "PACKAGE_INSTALL"
	ErrNoPackageMgr   ErrorCode = "NO_PACKAGE_MANAGER"

	// Command errors
	ErrCommandExecute ErrorCode = "COMMAND_EXECUTE"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrBackup        ErrorCode = "BACKUP"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrChown         ErrorCode = "CHOWN"

	// Rendering errors
	ErrTemplate ErrorCode = "TEMPLATE"
	ErrXMLEdit  ErrorCode = "XML_EDIT"
)

// DotrigError represents a structured error with code and details
type DotrigError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotrigError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotrigError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotrigError) Is(target error) bool {
	var targetErr *DotrigError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotrigError with the given code and message
func New(code ErrorCode, message string) *DotrigError {
	return &DotrigError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotrigError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotrigError {
	return &DotrigError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotrigError
func Wrap(err error, code ErrorCode, message string) *DotrigError {
	if err == nil {
		return nil
	}
	return &DotrigError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotrigError {
	if err == nil {
		return nil
	}
	return &DotrigError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotrigError) WithDetail(key string, value interface{}) *DotrigError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotrigErr *DotrigError
	if errors.As(err, &dotrigErr) {
		return dotrigErr.Code == code
	}
	return false
}

// IsFatal reports whether err, or any error it wraps, must abort the whole
// run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, &DotrigError{Code: ErrConfiguration})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotrigError
func GetErrorCode(err error) ErrorCode {
	var dotrigErr *DotrigError
	if errors.As(err, &dotrigErr) {
		return dotrigErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotrigError
func GetErrorDetails(err error) map[string]interface{} {
	var dotrigErr *DotrigError
	if errors.As(err, &dotrigErr) {
		return dotrigErr.Details
	}
	return nil
}
