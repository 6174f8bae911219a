// Package errors provides a lightweight structured error type (CoreBuildError)
// for category-based classification at the CLI boundary.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a corebuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryDefinition ErrorCategory = "definition"
	CategoryUsage      ErrorCategory = "usage"

	// Build orchestration errors
	CategorySetup      ErrorCategory = "setup"
	CategorySnippet    ErrorCategory = "snippet"
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	// External system and infrastructure errors
	CategoryGit      ErrorCategory = "git"
	CategoryHistory  ErrorCategory = "history"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// CoreBuildError is a structured error with category and context
type CoreBuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for CoreBuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *CoreBuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *CoreBuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *CoreBuildError) WithContext(key string, value any) *CoreBuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new CoreBuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *CoreBuildError {
	return &CoreBuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new CoreBuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *CoreBuildError {
	return &CoreBuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}
