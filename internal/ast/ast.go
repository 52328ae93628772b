// Package ast defines the untyped syntax tree produced by the parser.
//
// Expr is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the transform.
//
// Nodes own their children exclusively: the tree has no sharing and no
// cycles. It is produced once per compile and discarded after lowering.
package ast

// Expr is any expression node.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Number is a numeric literal, kept as raw source text. Whether it is
// integral or fractional is decided during lowering.
type Number struct {
	Text   string
	Offset int
}

// String is a string literal with escapes already resolved.
type String struct {
	Value string
}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

// Null is the null literal.
type Null struct{}

// Date is a date literal. Text is the ISO form without the D prefix,
// e.g. "2024-01-15".
type Date struct {
	Text string
}

// DateTime is a datetime literal, e.g. "2024-01-15T10:30:00".
type DateTime struct {
	Text string
}

// Duration is an ISO-8601 duration literal, e.g. "P1D" or "PT2H".
type Duration struct {
	Text string
}

// Var is a variable reference.
type Var struct {
	Name   string
	Offset int
}

// Binary is a binary operator application. Op is the surface operator
// text ("+", "==", "&&", ...).
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

// Unary is a unary operator application ("-" or "!").
type Unary struct {
	Op      string
	Operand Expr
}

// Call is a call to a named function. Pipe expressions desugar into
// calls before the tree leaves the parser.
type Call struct {
	Name   string
	Args   []Expr
	Offset int
}

// Member is a member access, target.name.
type Member struct {
	Target Expr
	Name   string
}

// ObjectField is one name/value pair of an object literal.
type ObjectField struct {
	Name  string
	Value Expr
}

// Object is an object literal.
type Object struct {
	Fields []ObjectField
}

// Array is an array literal.
type Array struct {
	Elems []Expr
}

// Let binds a single name. let a=..., b=... in body desugars in the
// parser to nested single-binding lets, so each binding value sees only
// earlier bindings and the body sees all of them.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

// Cond is if/then/else.
type Cond struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Lambda is a value-returning function literal, fn(x, y ~> x + y).
type Lambda struct {
	Params []string
	Body   Expr
}

// Predicate is a boolean-returning function literal, fn(x | x > 0).
type Predicate struct {
	Params []string
	Body   Expr
}

// AppliedLambda is the immediate application of a function literal to
// arguments, fn(x ~> x + 1)(5).
type AppliedLambda struct {
	Fn   Expr // *Lambda or *Predicate
	Args []Expr
}

// Alternative is a | b | c: evaluates left to right, yields the first
// non-null result.
type Alternative struct {
	Exprs []Expr
}

// TypeDef is a named type definition, type Name = <type expression>.
type TypeDef struct {
	Name string
	Type TypeExpr
}

func (*Number) exprNode()        {}
func (*String) exprNode()        {}
func (*Bool) exprNode()          {}
func (*Null) exprNode()          {}
func (*Date) exprNode()          {}
func (*DateTime) exprNode()      {}
func (*Duration) exprNode()      {}
func (*Var) exprNode()           {}
func (*Binary) exprNode()        {}
func (*Unary) exprNode()         {}
func (*Call) exprNode()          {}
func (*Member) exprNode()        {}
func (*Object) exprNode()        {}
func (*Array) exprNode()         {}
func (*Let) exprNode()           {}
func (*Cond) exprNode()          {}
func (*Lambda) exprNode()        {}
func (*Predicate) exprNode()     {}
func (*AppliedLambda) exprNode() {}
func (*Alternative) exprNode()   {}
func (*TypeDef) exprNode()       {}
