// Package token defines the lexical vocabulary of the Elo expression
// language: token kinds, the keyword table, and the single- and multi-
// character symbol tables shared by the lexer and parser.
package token

import "fmt"

// Kind identifies a class of lexical token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// Literals and identifiers.
	NUMBER   // 42, 3.14
	STRING   // 'hello'
	IDENT    // foo, NOW, _
	DATE     // D2024-01-15
	DATETIME // D2024-01-15T10:30:00
	DURATION // P1D, PT2H, P1Y2M

	// Keywords.
	LET
	IN
	IF
	THEN
	ELSE
	FN
	NOT
	TRUE
	FALSE
	NULL
	TYPE

	// Operators and punctuation.
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	CARET     // ^
	EQ        // =
	EQ_EQ     // ==
	NOT_EQ    // !=
	LESS      // <
	LESS_EQ   // <=
	GREATER   // >
	GREATER_EQ // >=
	AND_AND   // &&
	OR_OR     // ||
	BANG      // !
	PIPE      // |
	PIPE_GT   // |>
	TILDE_GT  // ~>
	RANGE     // ..
	RANGE_EX  // ...
	QUESTION  // ?
	DOT       // .
	COMMA     // ,
	COLON     // :
	LPAREN    // (
	RPAREN    // )
	LBRACK    // [
	RBRACK    // ]
	LBRACE    // {
	RBRACE    // }
)

// Token is a single lexical token. Tokens are produced lazily by the lexer
// and consumed immediately by the parser; they are never retained.
type Token struct {
	Kind   Kind
	Lexeme string // raw source text of the token
	Offset int    // byte offset of the first character in the source
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Lexeme, t.Offset)
}

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// Keywords maps reserved words to their token kinds. Temporal keywords
// (NOW, TODAY, ...) are deliberately absent: they lex as IDENT and are
// resolved during lowering so they can be shadowed by let bindings.
var Keywords = map[string]Kind{
	"let":   LET,
	"in":    IN,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
	"fn":    FN,
	"not":   NOT,
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
	"type":  TYPE,
}

// SingleSymbols maps one-character operators to kinds. Characters that can
// begin a longer operator are checked against TripleSymbols and
// DoubleSymbols first.
var SingleSymbols = map[byte]Kind{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'^': CARET,
	'=': EQ,
	'<': LESS,
	'>': GREATER,
	'!': BANG,
	'|': PIPE,
	'?': QUESTION,
	'.': DOT,
	',': COMMA,
	':': COLON,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACK,
	']': RBRACK,
	'{': LBRACE,
	'}': RBRACE,
}

// DoubleSymbols maps two-character operators to kinds.
var DoubleSymbols = map[string]Kind{
	"==": EQ_EQ,
	"!=": NOT_EQ,
	"<=": LESS_EQ,
	">=": GREATER_EQ,
	"&&": AND_AND,
	"||": OR_OR,
	"|>": PIPE_GT,
	"~>": TILDE_GT,
	"..": RANGE,
}

// TripleSymbols maps three-character operators to kinds.
var TripleSymbols = map[string]Kind{
	"...": RANGE_EX,
}

var kindNames = map[Kind]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	IDENT:      "IDENT",
	DATE:       "DATE",
	DATETIME:   "DATETIME",
	DURATION:   "DURATION",
	LET:        "let",
	IN:         "in",
	IF:         "if",
	THEN:       "then",
	ELSE:       "else",
	FN:         "fn",
	NOT:        "not",
	TRUE:       "true",
	FALSE:      "false",
	NULL:       "null",
	TYPE:       "type",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	CARET:      "^",
	EQ:         "=",
	EQ_EQ:      "==",
	NOT_EQ:     "!=",
	LESS:       "<",
	LESS_EQ:    "<=",
	GREATER:    ">",
	GREATER_EQ: ">=",
	AND_AND:    "&&",
	OR_OR:      "||",
	BANG:       "!",
	PIPE:       "|",
	PIPE_GT:    "|>",
	TILDE_GT:   "~>",
	RANGE:      "..",
	RANGE_EX:   "...",
	QUESTION:   "?",
	DOT:        ".",
	COMMA:      ",",
	COLON:      ":",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACK:     "[",
	RBRACK:     "]",
	LBRACE:     "{",
	RBRACE:     "}",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
