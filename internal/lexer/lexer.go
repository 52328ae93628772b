// Package lexer turns Elo source text into a stream of tokens. Tokens are
// produced one at a time; the lexer holds no lookahead beyond the current
// byte offset, which makes its state trivially snapshottable for the
// parser's speculative parsing.
package lexer

import (
	"github.com/elolang/elo/internal/token"
)

// Lexer scans a single source string. Only ASCII is significant to the
// grammar; non-ASCII bytes are legal inside string literals and comments
// and are an error anywhere else.
type Lexer struct {
	src    string
	offset int
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Mark captures the lexer position for later restoration.
type Mark struct {
	offset int
}

// Mark returns the current position. Pair with Reset to backtrack.
func (l *Lexer) Mark() Mark { return Mark{offset: l.offset} }

// Reset rewinds the lexer to a previously captured position.
func (l *Lexer) Reset(m Mark) { l.offset = m.offset }

// Next scans and returns the next token, advancing the lexer. At end of
// input it returns an EOF token forever.
func (l *Lexer) Next() (token.Token, error) {
	l.skipBlanks()

	if l.eof() {
		return token.Token{Kind: token.EOF, Offset: l.offset}, nil
	}

	start := l.offset
	c := l.cur()

	switch {
	case isDigit(c):
		return l.scanNumber()
	case c == '\'':
		return l.scanString()
	case c == 'D' && isDigit(l.peek()):
		return l.scanDate()
	case c == 'P' && (isDigit(l.peek()) || l.peek() == 'T'):
		return l.scanDuration()
	case isAlpha(c):
		return l.scanIdent()
	}

	// Longest-match operator scan: three, then two, then one character.
	if l.offset+3 <= len(l.src) {
		if kind, ok := token.TripleSymbols[l.src[l.offset:l.offset+3]]; ok {
			l.offset += 3
			return token.Token{Kind: kind, Lexeme: l.src[start:l.offset], Offset: start}, nil
		}
	}
	if l.offset+2 <= len(l.src) {
		if kind, ok := token.DoubleSymbols[l.src[l.offset:l.offset+2]]; ok {
			l.offset += 2
			return token.Token{Kind: kind, Lexeme: l.src[start:l.offset], Offset: start}, nil
		}
	}
	if kind, ok := token.SingleSymbols[c]; ok {
		l.offset++
		return token.Token{Kind: kind, Lexeme: l.src[start:l.offset], Offset: start}, nil
	}

	return token.Token{}, &Error{Offset: start, Char: c, Msg: "unexpected character"}
}

// skipBlanks consumes whitespace and #-to-end-of-line comments.
func (l *Lexer) skipBlanks() {
	for !l.eof() {
		switch c := l.cur(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.offset++
		case c == '#':
			for !l.eof() && l.cur() != '\n' {
				l.offset++
			}
		default:
			return
		}
	}
}

// scanNumber consumes a maximal run of digits with at most one decimal
// point. A dot directly followed by another dot belongs to a range
// operator and terminates the number.
func (l *Lexer) scanNumber() (token.Token, error) {
	start := l.offset
	seenDot := false
	for !l.eof() {
		c := l.cur()
		if isDigit(c) {
			l.offset++
			continue
		}
		if c == '.' && !seenDot && l.peek() != '.' && isDigit(l.peek()) {
			seenDot = true
			l.offset++
			continue
		}
		break
	}
	return token.Token{Kind: token.NUMBER, Lexeme: l.src[start:l.offset], Offset: start}, nil
}

// scanString consumes a single-quoted string. Only \' and \\ escapes are
// recognized; any other backslash sequence is an error.
func (l *Lexer) scanString() (token.Token, error) {
	start := l.offset
	l.offset++ // opening quote
	for !l.eof() {
		c := l.cur()
		if c == '\\' {
			next := l.peek()
			if next != '\'' && next != '\\' {
				return token.Token{}, &Error{Offset: l.offset, Char: next, Msg: "invalid escape sequence"}
			}
			l.offset += 2
			continue
		}
		if c == '\'' {
			l.offset++
			return token.Token{Kind: token.STRING, Lexeme: l.src[start:l.offset], Offset: start}, nil
		}
		l.offset++
	}
	return token.Token{}, &Error{Offset: start, Char: '\'', Msg: "unterminated string literal"}
}

// scanIdent consumes an identifier or keyword.
func (l *Lexer) scanIdent() (token.Token, error) {
	start := l.offset
	for !l.eof() && (isAlpha(l.cur()) || isDigit(l.cur())) {
		l.offset++
	}
	lexeme := l.src[start:l.offset]
	kind := token.IDENT
	if k, ok := token.Keywords[lexeme]; ok {
		kind = k
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Offset: start}, nil
}

// scanDate consumes a date literal D2024-01-15 or a datetime literal
// D2024-01-15T10:30:00. The leading D has already been matched.
func (l *Lexer) scanDate() (token.Token, error) {
	start := l.offset
	l.offset++ // 'D'

	if err := l.expectDigits(4); err != nil {
		return token.Token{}, err
	}
	for i := 0; i < 2; i++ {
		if err := l.expectByte('-'); err != nil {
			return token.Token{}, err
		}
		if err := l.expectDigits(2); err != nil {
			return token.Token{}, err
		}
	}

	kind := token.DATE
	if !l.eof() && l.cur() == 'T' && isDigit(l.peek()) {
		l.offset++ // 'T'
		if err := l.expectDigits(2); err != nil {
			return token.Token{}, err
		}
		for i := 0; i < 2; i++ {
			if err := l.expectByte(':'); err != nil {
				return token.Token{}, err
			}
			if err := l.expectDigits(2); err != nil {
				return token.Token{}, err
			}
		}
		kind = token.DATETIME
	}

	return token.Token{Kind: kind, Lexeme: l.src[start:l.offset], Offset: start}, nil
}

// scanDuration consumes an ISO-8601 duration literal. Date designators
// (Y, M, W, D) are legal before the T separator; time designators (H, M,
// S) only after it. M therefore means months before T and minutes after
// it: P30M is thirty months, PT30M thirty minutes. P2H is rejected.
func (l *Lexer) scanDuration() (token.Token, error) {
	start := l.offset
	l.offset++ // 'P'

	seenT := false
	seenComponent := false
	for !l.eof() {
		c := l.cur()
		if c == 'T' && !seenT {
			seenT = true
			l.offset++
			continue
		}
		if !isDigit(c) {
			break
		}
		for !l.eof() && isDigit(l.cur()) {
			l.offset++
		}
		if l.eof() {
			return token.Token{}, &Error{Offset: l.offset, Char: 0, Msg: "unterminated duration literal"}
		}
		des := l.cur()
		if seenT {
			if des != 'H' && des != 'M' && des != 'S' {
				return token.Token{}, &Error{Offset: l.offset, Char: des, Msg: "invalid time designator in duration"}
			}
		} else {
			if des == 'H' || des == 'S' {
				return token.Token{}, &Error{Offset: l.offset, Char: des, Msg: "time designator requires T prefix in duration"}
			}
			if des != 'Y' && des != 'M' && des != 'W' && des != 'D' {
				return token.Token{}, &Error{Offset: l.offset, Char: des, Msg: "invalid date designator in duration"}
			}
		}
		seenComponent = true
		l.offset++
	}

	if !seenComponent {
		return token.Token{}, &Error{Offset: start, Char: 'P', Msg: "empty duration literal"}
	}
	return token.Token{Kind: token.DURATION, Lexeme: l.src[start:l.offset], Offset: start}, nil
}

func (l *Lexer) expectDigits(n int) error {
	for i := 0; i < n; i++ {
		if l.eof() || !isDigit(l.cur()) {
			var c byte
			if !l.eof() {
				c = l.cur()
			}
			return &Error{Offset: l.offset, Char: c, Msg: "malformed date literal"}
		}
		l.offset++
	}
	return nil
}

func (l *Lexer) expectByte(b byte) error {
	if l.eof() || l.cur() != b {
		var c byte
		if !l.eof() {
			c = l.cur()
		}
		return &Error{Offset: l.offset, Char: c, Msg: "malformed date literal"}
	}
	l.offset++
	return nil
}

func (l *Lexer) eof() bool { return l.offset >= len(l.src) }

func (l *Lexer) cur() byte { return l.src[l.offset] }

func (l *Lexer) peek() byte {
	if l.offset+1 >= len(l.src) {
		return 0
	}
	return l.src[l.offset+1]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
