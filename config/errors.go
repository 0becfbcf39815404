package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyNotFound is returned when a path segment is absent from the document.
var ErrKeyNotFound = errors.New("key not found")

// ErrTypeMismatch is returned when the addressed node cannot be converted to the requested type.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrUnknownEnumValue is returned when a scalar does not name any member of the requested enum.
var ErrUnknownEnumValue = errors.New("unknown enum value")

// ErrValidationFailed is returned when a value is present and convertible but a rule rejects it.
var ErrValidationFailed = errors.New("validation failed")

// ErrInvalidDocument is returned when the YAML text cannot be parsed.
var ErrInvalidDocument = errors.New("invalid document")

// Error carries the path and document position of a failed lookup or conversion.
// It unwraps to its Kind, so callers match it with errors.Is against the sentinels above.
type Error struct {
	Kind   error
	Path   Path
	Line   int
	Column int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString("config: ")
	sb.WriteString(e.Kind.Error())
	fmt.Fprintf(&sb, " at %q", e.Path.String())

	if e.Line > 0 {
		fmt.Fprintf(&sb, " (line %d, column %d)", e.Line, e.Column)
	}

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap exposes both the error kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
