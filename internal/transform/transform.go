// Package transform lowers the untyped syntax tree into the typed IR.
//
// The lowering is a single recursive walk carrying an immutable type
// environment, a recursion-guard name set, and a depth counter. Every
// literal gets a runtime type tag, every operator application becomes a
// named call typed through the signature registry, and temporal keywords
// desugar into calls on synthesized now()/today() expressions.
package transform

import (
	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// DefaultMaxDepth caps IR construction depth, independently of the
// parser's syntax-depth guard.
const DefaultMaxDepth = 100

// DefaultInputName is the implicit input variable.
const DefaultInputName = "_"

// Options configures a lowering.
type Options struct {
	// MaxDepth caps lowering recursion. Zero means DefaultMaxDepth.
	MaxDepth int

	// RelaxedIdents admits unknown identifiers as column references
	// instead of failing with an undefined-variable error. Used for
	// targets where bare names are meaningful.
	RelaxedIdents bool

	// InputName overrides the implicit input variable name.
	InputName string

	// Registry overrides the signature registry. Nil means the shared
	// default registry.
	Registry *types.Registry
}

// Transformer lowers syntax trees. It is stateless across Lower calls
// and safe for concurrent use.
type Transformer struct {
	reg       *types.Registry
	maxDepth  int
	relaxed   bool
	inputName string
}

// New returns a transformer with the given options.
func New(opts Options) *Transformer {
	reg := opts.Registry
	if reg == nil {
		reg = types.DefaultRegistry()
	}
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	inputName := opts.InputName
	if inputName == "" {
		inputName = DefaultInputName
	}
	return &Transformer{
		reg:       reg,
		maxDepth:  maxDepth,
		relaxed:   opts.RelaxedIdents,
		inputName: inputName,
	}
}

// Lower lowers an expression. Type definitions go through LowerTypeDef
// instead.
func (t *Transformer) Lower(expr ast.Expr) (ir.Node, error) {
	return t.lower(expr, nil, nil, 0)
}

// env is an immutable scope chain: extending returns a child frame, the
// parent is never mutated, and sibling scopes cannot observe each
// other's bindings.
type env struct {
	parent *env
	name   string
	typ    types.Type
}

func (e *env) extend(name string, typ types.Type) *env {
	return &env{parent: e, name: name, typ: typ}
}

func (e *env) lookup(name string) (types.Type, bool) {
	for f := e; f != nil; f = f.parent {
		if f.name == name {
			return f.typ, true
		}
	}
	return types.Type{}, false
}

// defset tracks names whose lambda bodies are currently being lowered.
// The language has no runtime recursion primitive, so a call to a name
// in this set is a hard error rather than silently broken output.
type defset struct {
	parent *defset
	name   string
}

func (d *defset) with(name string) *defset {
	return &defset{parent: d, name: name}
}

func (d *defset) has(name string) bool {
	for f := d; f != nil; f = f.parent {
		if f.name == name {
			return true
		}
	}
	return false
}

func (t *Transformer) lower(expr ast.Expr, scope *env, defining *defset, depth int) (ir.Node, error) {
	if depth > t.maxDepth {
		return nil, &Error{Code: ErrCodeMaxDepth, Msg: "expression nesting exceeds maximum depth"}
	}
	depth++

	switch e := expr.(type) {
	case *ast.Number:
		if isIntegral(e.Text) {
			return &ir.Lit{Typ: types.Int, Text: e.Text}, nil
		}
		return &ir.Lit{Typ: types.Float, Text: e.Text}, nil

	case *ast.String:
		return &ir.Lit{Typ: types.String, Text: e.Value}, nil

	case *ast.Bool:
		if e.Value {
			return &ir.Lit{Typ: types.Bool, Text: "true"}, nil
		}
		return &ir.Lit{Typ: types.Bool, Text: "false"}, nil

	case *ast.Null:
		return &ir.Lit{Typ: types.Null}, nil

	case *ast.Date:
		return &ir.Lit{Typ: types.Date, Text: e.Text}, nil

	case *ast.DateTime:
		return &ir.Lit{Typ: types.DateTime, Text: e.Text}, nil

	case *ast.Duration:
		return &ir.Lit{Typ: types.Duration, Text: e.Text}, nil

	case *ast.Var:
		return t.lowerVar(e, scope, defining)

	case *ast.Binary:
		name, ok := binaryOps[e.Op]
		if !ok {
			return nil, &Error{Code: ErrCodeUnknownOperator, Name: e.Op, Msg: "unknown binary operator"}
		}
		left, err := t.lower(e.Left, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		right, err := t.lower(e.Right, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		return t.call(name, left, right), nil

	case *ast.Unary:
		name, ok := unaryOps[e.Op]
		if !ok {
			return nil, &Error{Code: ErrCodeUnknownOperator, Name: e.Op, Msg: "unknown unary operator"}
		}
		operand, err := t.lower(e.Operand, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		return t.call(name, operand), nil

	case *ast.Call:
		return t.lowerCall(e, scope, defining, depth)

	case *ast.Member:
		target, err := t.lower(e.Target, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		return t.call("get", target, &ir.Lit{Typ: types.String, Text: e.Name}), nil

	case *ast.Object:
		obj := &ir.Object{}
		for _, f := range e.Fields {
			value, err := t.lower(f.Value, scope, defining, depth)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, ir.Field{Name: f.Name, Value: value})
		}
		return obj, nil

	case *ast.Array:
		arr := &ir.Array{}
		for _, elem := range e.Elems {
			v, err := t.lower(elem, scope, defining, depth)
			if err != nil {
				return nil, err
			}
			arr.Elems = append(arr.Elems, v)
		}
		return arr, nil

	case *ast.Let:
		valueDefs := defining
		if isFnLiteral(e.Value) {
			// A binding whose value is a lambda may not call its own
			// name inside the body.
			valueDefs = defining.with(e.Name)
		}
		value, err := t.lower(e.Value, scope, valueDefs, depth)
		if err != nil {
			return nil, err
		}
		body, err := t.lower(e.Body, scope.extend(e.Name, value.Type()), defining, depth)
		if err != nil {
			return nil, err
		}
		return &ir.Let{Name: e.Name, Value: value, Body: body}, nil

	case *ast.Cond:
		cond, err := t.lower(e.Cond, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		then, err := t.lower(e.Then, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		els, err := t.lower(e.Else, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		result := types.Any
		if then.Type() == els.Type() {
			result = then.Type()
		}
		return &ir.Cond{Cond: cond, Then: then, Else: els, Result: result}, nil

	case *ast.Lambda:
		body, err := t.lowerFnBody(e.Params, e.Body, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		return &ir.Lambda{Params: e.Params, Body: body}, nil

	case *ast.Predicate:
		body, err := t.lowerFnBody(e.Params, e.Body, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		return &ir.Lambda{Params: e.Params, Body: body, Predicate: true}, nil

	case *ast.AppliedLambda:
		fn, err := t.lower(e.Fn, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		args, err := t.lowerAll(e.Args, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		return &ir.Apply{Fn: fn, Args: args}, nil

	case *ast.Alternative:
		exprs, err := t.lowerAll(e.Exprs, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		result := exprs[0].Type()
		for _, x := range exprs[1:] {
			if x.Type() != result {
				result = types.Any
				break
			}
		}
		return &ir.Alternative{Exprs: exprs, Result: result}, nil

	case *ast.TypeDef:
		return nil, &Error{Code: ErrCodeUnknownOperator, Name: "type", Msg: "type definition is not an expression"}
	}

	return nil, &Error{Code: ErrCodeUnknownOperator, Msg: "unhandled syntax node"}
}

func (t *Transformer) lowerAll(exprs []ast.Expr, scope *env, defining *defset, depth int) ([]ir.Node, error) {
	out := make([]ir.Node, len(exprs))
	for i, e := range exprs {
		n, err := t.lower(e, scope, defining, depth)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (t *Transformer) lowerFnBody(params []string, body ast.Expr, scope *env, defining *defset, depth int) (ir.Node, error) {
	// Parameters carry the wildcard type: the language has no
	// parameter type annotations.
	inner := scope
	for _, p := range params {
		inner = inner.extend(p, types.Any)
	}
	return t.lower(body, inner, defining, depth)
}

// lowerVar resolves an identifier: scope bindings shadow temporal
// keywords, the implicit input is always in scope, everything else is
// either a temporal keyword, a relaxed-mode column reference, or an
// undefined-variable error.
func (t *Transformer) lowerVar(e *ast.Var, scope *env, defining *defset) (ir.Node, error) {
	if typ, ok := scope.lookup(e.Name); ok {
		return &ir.Var{Name: e.Name, Typ: typ}, nil
	}
	if defining.has(e.Name) {
		return nil, &Error{Code: ErrCodeRecursiveCall, Name: e.Name, Msg: "function refers to itself; the language has no recursion"}
	}
	if e.Name == t.inputName {
		return &ir.Var{Name: e.Name, Typ: types.Any}, nil
	}
	if node, ok := t.temporalKeyword(e.Name); ok {
		return node, nil
	}
	if t.relaxed {
		return &ir.Column{Name: e.Name}, nil
	}
	return nil, &Error{Code: ErrCodeUndefinedVariable, Name: e.Name, Offset: e.Offset, Msg: "undefined variable"}
}

func (t *Transformer) lowerCall(e *ast.Call, scope *env, defining *defset, depth int) (ir.Node, error) {
	if defining.has(e.Name) {
		return nil, &Error{Code: ErrCodeRecursiveCall, Name: e.Name, Msg: "function calls itself; the language has no recursion"}
	}

	args, err := t.lowerAll(e.Args, scope, defining, depth)
	if err != nil {
		return nil, err
	}

	// A name bound to a function value in scope is dynamic dispatch;
	// everything else is a static call resolved by the registry.
	if typ, ok := scope.lookup(e.Name); ok && typ == types.Function {
		return &ir.Apply{Fn: &ir.Var{Name: e.Name, Typ: typ}, Args: args}, nil
	}
	return t.call(e.Name, args...), nil
}

// call builds a Call node with its result type resolved through the
// signature registry's generalization search.
func (t *Transformer) call(name string, args ...ir.Node) *ir.Call {
	c := &ir.Call{Name: name, Args: args}
	c.Result = t.reg.Lookup(name, c.ArgTypes())
	return c
}

// isIntegral reports whether a numeric literal has no decimal point.
func isIntegral(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] == '.' {
			return false
		}
	}
	return true
}

func isFnLiteral(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Lambda, *ast.Predicate:
		return true
	}
	return false
}

// binaryOps maps surface operators to registry function names.
var binaryOps = map[string]string{
	"+":  "add",
	"-":  "sub",
	"*":  "mul",
	"/":  "div",
	"%":  "mod",
	"^":  "pow",
	"==": "eq",
	"!=": "neq",
	"<":  "lt",
	"<=": "lte",
	">":  "gt",
	">=": "gte",
	"&&": "and",
	"||": "or",
}

var unaryOps = map[string]string{
	"!": "not",
	"-": "neg",
}
