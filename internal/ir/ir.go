// Package ir defines the typed intermediate representation consumed by
// the backends.
//
// Node is a sealed interface - only types in this package implement it.
// The IR mirrors the AST shape, but every literal carries an explicit
// type tag, every operator application has become a named call with
// statically resolved argument and result types, and applications
// distinguish calling a registered function (Call) from invoking a value
// known to hold a function (Apply). The IR is produced once by the
// transform and consumed once by a backend; ownership is a simple tree.
package ir

import "github.com/elolang/elo/internal/types"

// Node is any typed IR node.
type Node interface {
	irNode()
	// Type is the statically inferred type of the node's value.
	Type() types.Type
}

// Lit is a literal carrying its runtime type tag. Text is the plain
// value: digits for numbers, the unescaped body for strings, the ISO
// form for temporal literals, "true"/"false" for booleans, empty for
// null.
type Lit struct {
	Typ  types.Type
	Text string
}

// Var is a reference to a variable bound by a let or a lambda
// parameter, or the implicit input value.
type Var struct {
	Name string
	Typ  types.Type
}

// Column is a bare identifier admitted by relaxed-identifier mode,
// meaningful as a column reference on targets that have them.
type Column struct {
	Name string
}

// Call is static dispatch: a named function with statically known
// argument types, resolved against the per-target dispatch registry at
// emission time.
type Call struct {
	Name   string
	Args   []Node
	Result types.Type
}

// ArgTypes returns the types of the call's arguments.
func (c *Call) ArgTypes() []types.Type {
	ts := make([]types.Type, len(c.Args))
	for i, a := range c.Args {
		ts[i] = a.Type()
	}
	return ts
}

// Apply is dynamic dispatch: invocation of a value known to hold a
// function.
type Apply struct {
	Fn   Node
	Args []Node
}

// Let binds a single name for the body.
type Let struct {
	Name  string
	Value Node
	Body  Node
}

// Cond is a typed conditional.
type Cond struct {
	Cond   Node
	Then   Node
	Else   Node
	Result types.Type
}

// Lambda is a function literal. Parameters carry the wildcard type:
// the language has no parameter type annotations.
type Lambda struct {
	Params    []string
	Body      Node
	Predicate bool // boolean-returning fn(x | ...) form
}

// Field is one attribute of an object literal.
type Field struct {
	Name  string
	Value Node
}

// Object is an object literal.
type Object struct {
	Fields []Field
}

// Array is an array literal.
type Array struct {
	Elems []Node
}

// Alternative evaluates its expressions left to right and yields the
// first non-null result.
type Alternative struct {
	Exprs  []Node
	Result types.Type
}

func (*Lit) irNode()         {}
func (*Var) irNode()         {}
func (*Column) irNode()      {}
func (*Call) irNode()        {}
func (*Apply) irNode()       {}
func (*Let) irNode()         {}
func (*Cond) irNode()        {}
func (*Lambda) irNode()      {}
func (*Object) irNode()      {}
func (*Array) irNode()       {}
func (*Alternative) irNode() {}

func (n *Lit) Type() types.Type         { return n.Typ }
func (n *Var) Type() types.Type         { return n.Typ }
func (n *Column) Type() types.Type      { return types.Any }
func (n *Call) Type() types.Type        { return n.Result }
func (n *Apply) Type() types.Type       { return types.Any }
func (n *Let) Type() types.Type         { return n.Body.Type() }
func (n *Cond) Type() types.Type        { return n.Result }
func (n *Lambda) Type() types.Type      { return types.Function }
func (n *Object) Type() types.Type      { return types.Object }
func (n *Array) Type() types.Type       { return types.Array }
func (n *Alternative) Type() types.Type { return n.Result }
