package parser

import (
	"errors"
	"fmt"
)

// Kinds of parse failures. Match them with errors.Is.
var (
	ErrMalformedLine      = errors.New("malformed line")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrMalformedField     = errors.New("malformed field")
)

// ParseError is returned when a line cannot be turned into a record
type ParseError struct {
	Kind  error
	Line  int    // 1-based line number, 0 when parsed outside of a file
	Text  string // offending line
	Field string // offending field, empty for ErrMalformedLine
	Err   error  // underlying conversion error, if any
}

func (e *ParseError) Error() string {
	var where string
	if e.Line > 0 {
		where = fmt.Sprintf(" at line %d", e.Line)
	}
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s %q%s: %v: %q", e.Kind, e.Field, where, e.Err, e.Text)
	case e.Field != "":
		return fmt.Sprintf("%s %q%s: %q", e.Kind, e.Field, where, e.Text)
	default:
		return fmt.Sprintf("%s%s: %q", e.Kind, where, e.Text)
	}
}

// Unwrap exposes both the kind and the underlying error
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformedLine(text string) *ParseError {
	return &ParseError{Kind: ErrMalformedLine, Text: text}
}

func malformedField(kind error, field, text string, err error) *ParseError {
	return &ParseError{Kind: kind, Field: field, Text: text, Err: err}
}
