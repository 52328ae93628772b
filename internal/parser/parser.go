// Package parser builds the untyped syntax tree from a token stream.
//
// The parser is recursive descent with precedence climbing. Ambiguous
// constructs (range membership vs. the in keyword of let) are handled by
// speculative parsing: the parser snapshots the lexer position and its
// current token, tentatively consumes input, and restores the snapshot
// when the speculation fails. Backtracking is explicit state restoration,
// never exceptions-as-control-flow.
package parser

import (
	"strings"

	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/lexer"
	"github.com/elolang/elo/internal/token"
)

// DefaultMaxDepth is the expression nesting ceiling applied when the
// caller does not configure one. It is a denial-of-service guard, not a
// language feature.
const DefaultMaxDepth = 100

// Options configures a parse.
type Options struct {
	// MaxDepth caps expression nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Parser consumes tokens from a lexer and produces an AST. A Parser is
// good for one Parse call.
type Parser struct {
	lx       *lexer.Lexer
	cur      token.Token
	depth    int
	maxDepth int
}

// New returns a parser over src.
func New(src string, opts Options) *Parser {
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{
		lx:       lexer.New(src),
		maxDepth: maxDepth,
	}
}

// Parse parses src as a single expression or type definition with
// default options.
func Parse(src string) (ast.Expr, error) {
	return New(src, Options{}).Parse()
}

// Parse parses the whole input. Trailing tokens after the expression are
// an error.
func (p *Parser) Parse() (ast.Expr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	var (
		expr ast.Expr
		err  error
	)
	if p.cur.Kind == token.TYPE {
		expr, err = p.parseTypeDef()
	} else {
		expr, err = p.parseExpr()
	}
	if err != nil {
		return nil, err
	}

	if p.cur.Kind != token.EOF {
		return nil, p.errUnexpected("end of input")
	}
	return expr, nil
}

// snapshot captures everything needed to backtrack: the lexer position
// and the current token.
type snapshot struct {
	mark lexer.Mark
	cur  token.Token
}

func (p *Parser) save() snapshot {
	return snapshot{mark: p.lx.Mark(), cur: p.cur}
}

func (p *Parser) restore(s snapshot) {
	p.lx.Reset(s.mark)
	p.cur = s.cur
}

// advance consumes the current token and scans the next one.
func (p *Parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// expect consumes a token of the given kind or fails.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.cur.Kind != kind {
		return token.Token{}, p.errUnexpected(kind.String())
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind token.Kind) (bool, error) {
	if p.cur.Kind != kind {
		return false, nil
	}
	return true, p.advance()
}

// enter increments the nesting counter, failing once the ceiling is
// crossed. Every parseExpr entry pairs enter with leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return &Error{
			Code:   ErrCodeMaxDepth,
			Offset: p.cur.Offset,
			Msg:    "expression nesting exceeds maximum depth",
		}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

func (p *Parser) errUnexpected(expected string) error {
	found := p.cur.Kind.String()
	code := ErrCodeUnexpectedToken
	if p.cur.Kind == token.EOF {
		found = "end of input"
		code = ErrCodeUnexpectedEOF
	}
	return &Error{
		Code:   code,
		Offset: p.cur.Offset,
		Msg:    "expected " + expected + ", found " + found,
	}
}

// unquote resolves the \' and \\ escapes of a string literal lexeme,
// quotes included.
func unquote(lexeme string) string {
	body := lexeme[1 : len(lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
