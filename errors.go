// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstrict

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a SyntaxError.
type ErrorKind byte

const (
	// Lexical errors report a malformed token: a bad escape, an unterminated
	// string, an unescaped control character, a malformed number, or an
	// unexpected character between tokens.
	Lexical ErrorKind = iota + 1

	// Structural errors report a well-formed token in a position where the
	// JSON grammar does not permit it, including premature end of input and
	// trailing content after a complete document.
	Structural
)

func (k ErrorKind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Structural:
		return "structural"
	default:
		return "unknown"
	}
}

var (
	// ErrLexical matches any lexical *SyntaxError under errors.Is.
	ErrLexical = errors.New("lexical error")

	// ErrStructural matches any structural *SyntaxError under errors.Is.
	ErrStructural = errors.New("structural error")

	// ErrMaxDepth is wrapped by the structural error reported when an input
	// nests more deeply than permitted by Options.MaxDepth.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// SyntaxError is the concrete type of errors reported for malformed input.
// Errors from the underlying reader are not wrapped in a SyntaxError.
type SyntaxError struct {
	Kind     ErrorKind
	Location LineCol // 1-based
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Is reports whether target is the sentinel for the kind of e.
func (e *SyntaxError) Is(target error) bool {
	switch target {
	case ErrLexical:
		return e.Kind == Lexical
	case ErrStructural:
		return e.Kind == Structural
	}
	return false
}
