package config

import (
	"errors"
	"fmt"

	"github.com/dshills/docstorm/internal/config/loader"
)

// ErrValidationFailed matches every *ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ParseError is returned when a config file cannot be parsed.
type ParseError = loader.ParseError

// ValidationError describes a setting with an unacceptable value.
type ValidationError struct {
	// Path is the setting path, e.g. "editing.delete_direction".
	Path    string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid %s %v: %s", e.Path, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Path, e.Message)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
