// Package js emits JavaScript from the typed IR.
//
// When operand types are statically known the emitter uses native
// operators; wildcard-typed operands route through named runtime
// helpers (kAdd, kSub, ...) that re-dispatch on the runtime value. Only
// helpers actually requested during emission are included, with
// helper-to-helper dependencies resolved transitively.
package js

import (
	"strings"
	"sync"

	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// Emitter is the JavaScript emission context. One per Generate call.
type Emitter struct {
	buf     strings.Builder
	helpers map[string]bool
}

// Generate compiles an IR tree to a JavaScript expression plus the
// runtime helpers it needs.
func Generate(n ir.Node) (codegen.Output, error) {
	e := &Emitter{helpers: map[string]bool{}}
	if err := e.Emit(n); err != nil {
		return codegen.Output{}, err
	}
	bodies, err := runtimeHelpers.Resolve(e.helpers)
	if err != nil {
		return codegen.Output{}, err
	}
	return codegen.Output{Expr: e.buf.String(), Helpers: bodies}, nil
}

// RequireHelper marks a runtime helper as used by the generated code.
func (e *Emitter) RequireHelper(name string) { e.helpers[name] = true }

func (e *Emitter) write(s string) { e.buf.WriteString(s) }

// Emit appends the JavaScript for one IR node.
func (e *Emitter) Emit(n ir.Node) error {
	switch v := n.(type) {
	case *ir.Lit:
		return e.emitLit(v)

	case *ir.Var:
		e.write(v.Name)
		return nil

	case *ir.Column:
		e.write(v.Name)
		return nil

	case *ir.Call:
		fn, err := stdlib().Lookup(v.Name, v.ArgTypes())
		if err != nil {
			return err
		}
		return fn(e, v.Args)

	case *ir.Apply:
		if _, ok := v.Fn.(*ir.Var); ok {
			if err := e.Emit(v.Fn); err != nil {
				return err
			}
		} else {
			e.write("(")
			if err := e.Emit(v.Fn); err != nil {
				return err
			}
			e.write(")")
		}
		return e.emitArgList(v.Args)

	case *ir.Let:
		// Lexical scoping via an immediately applied arrow function.
		e.write("((" + v.Name + ") => ")
		if err := e.emitArrowBody(v.Body); err != nil {
			return err
		}
		e.write(")(")
		if err := e.Emit(v.Value); err != nil {
			return err
		}
		e.write(")")
		return nil

	case *ir.Cond:
		// The whole ternary is parenthesized so it behaves as an atom
		// in any surrounding expression.
		e.write("(")
		if err := e.Emit(v.Cond); err != nil {
			return err
		}
		e.write(" ? ")
		if err := e.Emit(v.Then); err != nil {
			return err
		}
		e.write(" : ")
		if err := e.Emit(v.Else); err != nil {
			return err
		}
		e.write(")")
		return nil

	case *ir.Lambda:
		e.write("(" + strings.Join(v.Params, ", ") + ") => ")
		return e.emitArrowBody(v.Body)

	case *ir.Object:
		e.write("{")
		for i, f := range v.Fields {
			if i > 0 {
				e.write(", ")
			}
			if identSafe(f.Name) {
				e.write(f.Name)
			} else {
				e.write(quote(f.Name))
			}
			e.write(": ")
			if err := e.Emit(f.Value); err != nil {
				return err
			}
		}
		e.write("}")
		return nil

	case *ir.Array:
		e.write("[")
		for i, elem := range v.Elems {
			if i > 0 {
				e.write(", ")
			}
			if err := e.Emit(elem); err != nil {
				return err
			}
		}
		e.write("]")
		return nil

	case *ir.Alternative:
		// ?? must not mix unparenthesized with || or && in
		// JavaScript, so every operator operand is wrapped.
		for i, x := range v.Exprs {
			if i > 0 {
				e.write(" ?? ")
			}
			if err := e.emitAtom(x); err != nil {
				return err
			}
		}
		return nil
	}
	return &codegen.DispatchError{Name: "node"}
}

// EmitParens emits a child operand, parenthesizing it when its operator
// binds looser than the parent's, or equally on the wrong side.
func (e *Emitter) EmitParens(n ir.Node, parentOp string, side codegen.Side) error {
	if op, ok := e.operatorFor(n); ok && precedence.NeedsParens(parentOp, op, side) {
		e.write("(")
		if err := e.Emit(n); err != nil {
			return err
		}
		e.write(")")
		return nil
	}
	return e.Emit(n)
}

// emitAtom wraps any operator expression in parentheses.
func (e *Emitter) emitAtom(n ir.Node) error {
	if _, ok := e.operatorFor(n); ok {
		e.write("(")
		if err := e.Emit(n); err != nil {
			return err
		}
		e.write(")")
		return nil
	}
	return e.Emit(n)
}

// emitArrowBody emits an arrow-function body expression. Object
// literals need parentheses there or they parse as a block.
func (e *Emitter) emitArrowBody(body ir.Node) error {
	if _, ok := body.(*ir.Object); ok {
		e.write("(")
		if err := e.Emit(body); err != nil {
			return err
		}
		e.write(")")
		return nil
	}
	return e.Emit(body)
}

func (e *Emitter) emitArgList(args []ir.Node) error {
	e.write("(")
	for i, a := range args {
		if i > 0 {
			e.write(", ")
		}
		if err := e.Emit(a); err != nil {
			return err
		}
	}
	e.write(")")
	return nil
}

func (e *Emitter) emitLit(v *ir.Lit) error {
	switch v.Typ.Kind {
	case types.KindString:
		e.write(quote(v.Text))
	case types.KindDate, types.KindDateTime:
		e.RequireHelper("kDate")
		e.write("kDate(" + quote(v.Text) + ")")
	case types.KindDuration:
		e.RequireHelper("kDuration")
		e.write("kDuration(" + quote(v.Text) + ")")
	case types.KindNull:
		e.write("null")
	default:
		e.write(v.Text)
	}
	return nil
}

// operatorFor returns the JavaScript operator spelling a node will be
// emitted with, if it is emitted as an operator at all. Helper calls,
// parenthesized ternaries and literals are atoms.
func (e *Emitter) operatorFor(n ir.Node) (string, bool) {
	switch v := n.(type) {
	case *ir.Call:
		return nativeOp(v.Name, v.ArgTypes())
	case *ir.Alternative:
		return "??", true
	case *ir.Lambda:
		return "=>", true
	}
	return "", false
}

// quote renders a JavaScript single-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func identSafe(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		alpha := c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !alpha && !(i > 0 && c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

var (
	libOnce sync.Once
	lib     *codegen.StdLib[*Emitter]
)

// stdlib returns the shared dispatch registry for the JavaScript
// target, built once and read-only thereafter.
func stdlib() *codegen.StdLib[*Emitter] {
	libOnce.Do(func() {
		lib = buildStdlib()
	})
	return lib
}
