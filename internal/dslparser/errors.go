package dslparser

import "fmt"

// ParseError is a malformed-DSL error; it always carries the offending
// file and line so a caller can point the user at the exact spot.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

func newParseError(file string, line int, format string, args ...any) *ParseError {
	return &ParseError{File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// ReferenceError is an "extends of unknown table" or "mixin referenced
// but not loaded" error.
type ReferenceError struct {
	File    string
	Line    int
	Message string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

func newReferenceError(file string, line int, format string, args ...any) *ReferenceError {
	return &ReferenceError{File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// TypeError is an unknown DSL type, or an explicit "int" primary-key
// declaration (§4.3: "Explicit int is a hard error").
type TypeError struct {
	File    string
	Line    int
	Message string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

func newTypeError(file string, line int, format string, args ...any) *TypeError {
	return &TypeError{File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}
