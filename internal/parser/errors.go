package parser

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parse errors.
type ErrorCode string

const (
	// ErrCodeUnexpectedToken indicates the parser found a token of the
	// wrong kind.
	ErrCodeUnexpectedToken ErrorCode = "UNEXPECTED_TOKEN"

	// ErrCodeUnexpectedEOF indicates the input ended mid-expression,
	// including unmatched delimiters.
	ErrCodeUnexpectedEOF ErrorCode = "UNEXPECTED_EOF"

	// ErrCodeMaxDepth indicates expression nesting crossed the
	// configured ceiling. This is the denial-of-service guard.
	ErrCodeMaxDepth ErrorCode = "MAX_DEPTH_EXCEEDED"
)

// Error is a syntax error with enough context to localize the fault:
// what was expected, what was found, and where.
type Error struct {
	Code   ErrorCode
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

// IsParseError reports whether err is (or wraps) a parser Error.
func IsParseError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// IsMaxDepthError reports whether err is the nesting-ceiling guard
// firing.
func IsMaxDepthError(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeMaxDepth
	}
	return false
}
