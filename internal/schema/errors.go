package schema

import (
	"errors"
	"fmt"
)

// Errors returned by schema operations.
var (
	// ErrUnknownType indicates a node type name is not registered.
	ErrUnknownType = errors.New("unknown node type")

	// ErrDuplicateType indicates a node type name was registered twice.
	ErrDuplicateType = errors.New("node type already registered")

	// ErrInvalidType indicates a node type declaration is malformed.
	ErrInvalidType = errors.New("invalid node type")
)

// ParseError represents an error while parsing a schema file.
type ParseError struct {
	// Path is the file path (or "<reader>") that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("schema parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
