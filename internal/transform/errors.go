package transform

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes lowering errors.
type ErrorCode string

const (
	// ErrCodeUndefinedVariable indicates an identifier absent from the
	// environment. Prevents host-global names leaking into generated
	// code.
	ErrCodeUndefinedVariable ErrorCode = "UNDEFINED_VARIABLE"

	// ErrCodeRecursiveCall indicates a bound lambda calling its own
	// name. The language has no runtime recursion primitive.
	ErrCodeRecursiveCall ErrorCode = "RECURSIVE_CALL"

	// ErrCodeUnknownOperator indicates an operator missing from the
	// internal tables. Unreachable for trees produced by the parser.
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeUnknownTypeSelector indicates a type expression naming a
	// type that is neither built-in nor a declared constructor.
	ErrCodeUnknownTypeSelector ErrorCode = "UNKNOWN_TYPE_SELECTOR"

	// ErrCodeMaxDepth indicates lowering recursion crossed the
	// configured ceiling.
	ErrCodeMaxDepth ErrorCode = "MAX_DEPTH_EXCEEDED"
)

// Error is a lowering failure. Name carries the variable, operator or
// type selector at fault where there is one.
type Error struct {
	Code   ErrorCode
	Name   string
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s: %q", e.Code, e.Msg, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// IsUndefinedVariable reports whether err is an undefined-variable
// error.
func IsUndefinedVariable(err error) bool {
	return hasCode(err, ErrCodeUndefinedVariable)
}

// IsRecursiveCall reports whether err is a self-recursion error.
func IsRecursiveCall(err error) bool {
	return hasCode(err, ErrCodeRecursiveCall)
}

func hasCode(err error, code ErrorCode) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}
