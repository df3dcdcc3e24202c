// Package errors provides structured error types for the recurrence finder.
//
// Errors carry a category, a specific code, optional context values, and an
// optional suggestion for the operator. Categories map to CLI exit codes so
// scripted callers can distinguish configuration mistakes from bad data.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryParse         ErrorCategory = "parse"
	CategoryData          ErrorCategory = "data"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryDetection     ErrorCategory = "detection"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"

	// Parse errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeInvalidData   ErrorCode = "invalid_data"
	CodeMissingField  ErrorCode = "missing_field"

	// Data errors
	CodeEmptyDescription ErrorCode = "empty_description"
	CodeInvalidAmount    ErrorCode = "invalid_amount"
	CodeInvalidDate      ErrorCode = "invalid_date"

	// Configuration errors
	CodeInvalidConfig  ErrorCode = "invalid_config"
	CodeInvalidWeights ErrorCode = "invalid_weights"

	// Detection errors
	CodeDegenerateStatistics ErrorCode = "degenerate_statistics"
	CodeProcessingError      ErrorCode = "processing_error"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// FinderError is the base error type for all application errors
type FinderError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *FinderError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *FinderError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate exit code for the error
func (e *FinderError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryParse, CategoryData:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryDetection:
		return 5
	default:
		return 1
	}
}

// WithContext adds a context key-value pair to the error
func (e *FinderError) WithContext(key string, value interface{}) *FinderError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error
func (e *FinderError) WithSuggestion(suggestion string) *FinderError {
	e.Suggestion = suggestion
	return e
}

// New creates a new FinderError with stack trace capture
func New(category ErrorCategory, code ErrorCode, message string) *FinderError {
	err := &FinderError{
		Category: category,
		Code:     code,
		Message:  message,
	}

	if tracer, ok := errors.New("").(stackTracer); ok {
		err.StackTrace = tracer.StackTrace()
	}

	return err
}

// Wrap wraps an existing error with category and code information
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *FinderError {
	wrapped := &FinderError{
		Category: category,
		Code:     code,
		Message:  message,
		Cause:    err,
	}

	if tracer, ok := errors.WithStack(err).(stackTracer); ok {
		wrapped.StackTrace = tracer.StackTrace()
	}

	return wrapped
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *FinderError {
	message := fmt.Sprintf("file operation failed: %s", path)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	finderErr := Wrap(err, CategoryFile, code, message).
		WithContext("path", path)

	switch code {
	case CodeFileNotFound:
		finderErr = finderErr.WithSuggestion("Check that the file path is correct and the file exists")
	case CodeFilePermission:
		finderErr = finderErr.WithSuggestion("Check file permissions")
	}

	return finderErr
}

// ParseError creates a parsing-related error with line context
func ParseError(code ErrorCode, file string, line int, field string, value string, err error) *FinderError {
	message := fmt.Sprintf("parse error in %s at line %d", file, line)
	if field != "" {
		message = fmt.Sprintf("%s (field %s='%s')", message, field, value)
	}
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	return Wrap(err, CategoryParse, code, message).
		WithContext("file", file).
		WithContext("line", line).
		WithContext("field", field).
		WithContext("value", value)
}

// DataError creates an error for transaction records that violate core invariants
func DataError(code ErrorCode, field string, value interface{}, err error) *FinderError {
	message := fmt.Sprintf("invalid transaction data: field %s", field)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	return Wrap(err, CategoryData, code, message).
		WithContext("field", field).
		WithContext("value", value)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *FinderError {
	message := fmt.Sprintf("invalid configuration: %s", setting)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	finderErr := Wrap(err, CategoryConfiguration, code, message).
		WithContext("setting", setting).
		WithContext("value", value)

	if code == CodeInvalidWeights {
		finderErr = finderErr.WithSuggestion("Ensemble weights must sum to 1.0")
	}

	return finderErr
}

// DetectionError creates an error for failures during pattern detection
func DetectionError(code ErrorCode, operation string, err error) *FinderError {
	message := fmt.Sprintf("detection failed during %s", operation)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	return Wrap(err, CategoryDetection, code, message).
		WithContext("operation", operation)
}

// InternalError creates an error for unexpected internal failures
func InternalError(code ErrorCode, operation string, err error) *FinderError {
	message := fmt.Sprintf("internal error during %s", operation)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	return Wrap(err, CategoryInternal, code, message).
		WithContext("operation", operation).
		WithSuggestion("This is likely a bug; please report it with the input that triggered it")
}

// IsFinderError checks whether err is (or wraps) a FinderError
func IsFinderError(err error) bool {
	_, ok := AsFinderError(err)
	return ok
}

// AsFinderError extracts a FinderError from an error chain
func AsFinderError(err error) (*FinderError, bool) {
	for err != nil {
		if finderErr, ok := err.(*FinderError); ok {
			return finderErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// WrapIfNeeded wraps err unless it is already a FinderError
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *FinderError {
	if finderErr, ok := AsFinderError(err); ok {
		return finderErr
	}
	return Wrap(err, category, code, message)
}

// FormatCategories returns a human-readable list of known categories
func FormatCategories() string {
	categories := []string{
		string(CategoryFile),
		string(CategoryParse),
		string(CategoryData),
		string(CategoryConfiguration),
		string(CategoryDetection),
		string(CategoryInternal),
	}
	return strings.Join(categories, ", ")
}
