package lexer

import (
	"errors"
	"fmt"
)

// Error is a lexical error: an input byte the grammar has no use for at
// the position it appears. Offset is a byte offset into the source.
type Error struct {
	Offset int
	Char   byte
	Msg    string
}

func (e *Error) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("lex error at offset %d: %s: %q", e.Offset, e.Msg, string(e.Char))
}

// IsLexError reports whether err is (or wraps) a lexer Error.
func IsLexError(err error) bool {
	var le *Error
	return errors.As(err, &le)
}
