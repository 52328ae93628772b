// Package ruby emits Ruby from the typed IR.
//
// Ruby's operators are already polymorphic over the value kinds Elo
// cares about (ActiveSupport covers date and duration arithmetic), so
// most calls emit native operators or method calls. The one genuinely
// type-dependent case is division, where Integer#/ truncates; known
// int operands emit fdiv and wildcard operands route through a runtime
// helper.
package ruby

import (
	"strings"
	"sync"

	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// Emitter is the Ruby emission context. One per Generate call.
type Emitter struct {
	buf     strings.Builder
	helpers map[string]bool
}

// Generate compiles an IR tree to a Ruby expression plus any runtime
// helper methods it needs.
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

// Emit appends the Ruby for one IR node.
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
		if err := e.emitReceiver(v.Fn); err != nil {
			return err
		}
		e.write(".call")
		return e.emitArgList(v.Args)

	case *ir.Let:
		// Lexical scoping via an immediately called lambda.
		e.write("->(" + v.Name + ") { ")
		if err := e.Emit(v.Body); err != nil {
			return err
		}
		e.write(" }.call(")
		if err := e.Emit(v.Value); err != nil {
			return err
		}
		e.write(")")
		return nil

	case *ir.Cond:
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
		e.write("->(" + strings.Join(v.Params, ", ") + ") { ")
		if err := e.Emit(v.Body); err != nil {
			return err
		}
		e.write(" }")
		return nil

	case *ir.Object:
		e.write("{ ")
		for i, f := range v.Fields {
			if i > 0 {
				e.write(", ")
			}
			if identSafe(f.Name) {
				e.write(f.Name + ": ")
			} else {
				e.write(quote(f.Name) + " => ")
			}
			if err := e.Emit(f.Value); err != nil {
				return err
			}
		}
		e.write(" }")
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
		// First non-nil value, left to right. Arms are wrapped in
		// lambdas so arms after the first non-nil one never run.
		e.write("[")
		for i, x := range v.Exprs {
			if i > 0 {
				e.write(", ")
			}
			e.write("-> { ")
			if err := e.Emit(x); err != nil {
				return err
			}
			e.write(" }")
		}
		e.write("].lazy.map(&:call).find { |v| !v.nil? }")
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

// emitReceiver emits a value a method call will be chained onto,
// wrapping operator expressions so the dot binds to the whole
// expression rather than its last operand.
func (e *Emitter) emitReceiver(n ir.Node) error {
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
	case types.KindDate:
		e.write("Date.parse(" + quote(v.Text) + ")")
	case types.KindDateTime:
		e.write("Time.parse(" + quote(v.Text) + ")")
	case types.KindDuration:
		e.write("ActiveSupport::Duration.parse(" + quote(v.Text) + ")")
	case types.KindNull:
		e.write("nil")
	default:
		e.write(v.Text)
	}
	return nil
}

// operatorFor returns the Ruby operator spelling a node will be
// emitted with, if it is emitted as an operator at all.
func (e *Emitter) operatorFor(n ir.Node) (string, bool) {
	if v, ok := n.(*ir.Call); ok {
		return nativeOp(v.Name, v.ArgTypes())
	}
	return "", false
}

// quote renders a Ruby single-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
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
		alpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
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

// stdlib returns the shared dispatch registry for the Ruby target,
// built once and read-only thereafter.
func stdlib() *codegen.StdLib[*Emitter] {
	libOnce.Do(func() {
		lib = buildStdlib()
	})
	return lib
}
