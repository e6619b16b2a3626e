package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the engine
var (
	// ErrInvalidInput indicates invalid caller input
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfiguration indicates configuration issues; always fatal to a run
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigError represents an invalid comparison configuration. It fails the
// run before any work starts; there is no partial output.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewConfigError creates a new config error
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// ExtractionError represents a page (or document) whose content could not be
// extracted. Page-level occurrences are recovered as empty page models
// flagged unavailable; they never abort a comparison.
type ExtractionError struct {
	DocumentID string
	PageNumber int
	Wrapped    error
}

func (e *ExtractionError) Error() string {
	if e.PageNumber > 0 {
		return fmt.Sprintf("extraction error: document '%s' page %d: %v", e.DocumentID, e.PageNumber, e.Wrapped)
	}
	return fmt.Sprintf("extraction error: document '%s': %v", e.DocumentID, e.Wrapped)
}

func (e *ExtractionError) Unwrap() error {
	return e.Wrapped
}

// NewExtractionError creates a new extraction error
func NewExtractionError(documentID string, pageNumber int, wrapped error) *ExtractionError {
	return &ExtractionError{DocumentID: documentID, PageNumber: pageNumber, Wrapped: wrapped}
}

// DiffUnitError represents a failure inside one page pair's diff unit. The
// coordinator retries it; exhausting retries degrades the pair to
// "unavailable" without failing the run.
type DiffUnitError struct {
	PairIndex int
	Attempts  int
	Wrapped   error
}

func (e *DiffUnitError) Error() string {
	return fmt.Sprintf("diff unit error: pair %d failed after %d attempt(s): %v", e.PairIndex, e.Attempts, e.Wrapped)
}

func (e *DiffUnitError) Unwrap() error {
	return e.Wrapped
}

// NewDiffUnitError creates a new diff unit error
func NewDiffUnitError(pairIndex, attempts int, wrapped error) *DiffUnitError {
	return &DiffUnitError{PairIndex: pairIndex, Attempts: attempts, Wrapped: wrapped}
}
