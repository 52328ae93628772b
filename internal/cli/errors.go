package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/lexer"
	"github.com/elolang/elo/internal/parser"
	"github.com/elolang/elo/internal/transform"
)

// classify maps a pipeline error to a CLI error code plus, when the
// error carries a source offset, a caret snippet locating it.
func classify(src string, err error) (string, interface{}) {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return ErrCodeLex, snippet(src, lexErr.Offset)
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return ErrCodeParse, snippet(src, parseErr.Offset)
	}
	var trErr *transform.Error
	if errors.As(err, &trErr) {
		return ErrCodeTransform, snippet(src, trErr.Offset)
	}
	if codegen.IsDispatchError(err) {
		return ErrCodeCodegen, nil
	}
	return ErrCodeGeneric, nil
}

// snippet renders the offending source line with a caret under the
// byte offset, prefixed with the line:column position.
func snippet(src string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	lineEnd := strings.IndexByte(src[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += offset
	}
	line := 1 + strings.Count(src[:lineStart], "\n")
	col := offset - lineStart + 1

	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d\n", line, col)
	b.WriteString(src[lineStart:lineEnd])
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", offset-lineStart))
	b.WriteByte('^')
	return b.String()
}
