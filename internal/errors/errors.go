// Package errors defines the typed error values used at the config and
// CLI boundary. The normalization core itself is total and never
// returns errors; these types exist for the seams around it.
package errors

import (
	"fmt"
	"time"
)

// ErrorType categorizes boundary errors.
type ErrorType string

const (
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeHandler ErrorType = "handler"
	ErrorTypeInput   ErrorType = "input"
)

// ConfigError represents a configuration loading or parsing error.
type ConfigError struct {
	Type       ErrorType
	Path       string
	Field      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a config error with context.
func NewConfigError(path, field string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Path:       path,
		Field:      field,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s (field %s): %v", e.Path, e.Field, e.Underlying)
	}
	return fmt.Sprintf("config error in %s: %v", e.Path, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// HandlerError represents a request for an unsupported language.
type HandlerError struct {
	Type      ErrorType
	Language  string
	Timestamp time.Time
}

// NewHandlerError creates a handler lookup error.
func NewHandlerError(language string) *HandlerError {
	return &HandlerError{
		Type:      ErrorTypeHandler,
		Language:  language,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("no handler registered for language %q", e.Language)
}

// InputError represents malformed CLI input.
type InputError struct {
	Type       ErrorType
	Line       int
	Underlying error
	Timestamp  time.Time
}

// NewInputError creates an input error for one input line.
func NewInputError(line int, err error) *InputError {
	return &InputError{
		Type:       ErrorTypeInput,
		Line:       line,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input at line %d: %v", e.Line, e.Underlying)
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Underlying
}
