// Package sql emits SQL scalar expressions from the typed IR.
//
// SQL has no runtime helpers and no scalar bindings, so the target
// differs structurally from the JavaScript and Ruby ones: let bindings
// inline their value expression at every use site, conditionals become
// CASE WHEN, alternatives become COALESCE, and relaxed identifiers
// emit as column references. Function values have no SQL rendering and
// are rejected. The dialect is PostgreSQL flavored; the portable
// arithmetic, logic, string and CASE subset runs unmodified on SQLite,
// which is what the test harness executes against.
package sql

import (
	"errors"
	"strings"
	"sync"

	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// ErrUnsupported is returned for IR with no SQL rendering, such as
// function values and object or array literals.
var ErrUnsupported = errors.New("sql: no SQL rendering for this expression")

// binding is a let-bound value together with the scope it was bound
// under, so its free variables resolve to what they meant at the
// binding site rather than at the use site.
type binding struct {
	node ir.Node
	env  *scope
}

// scope is an immutable chain of bindings.
type scope struct {
	parent *scope
	name   string
	bind   *binding
}

func (s *scope) lookup(name string) (*binding, bool) {
	for f := s; f != nil; f = f.parent {
		if f.name == name {
			return f.bind, true
		}
	}
	return nil, false
}

// Emitter is the SQL emission context. env carries the let bindings
// inlined at each variable use.
type Emitter struct {
	buf strings.Builder
	env *scope
}

// Generate compiles an IR tree to a SQL scalar expression.
func Generate(n ir.Node) (codegen.Output, error) {
	e := &Emitter{}
	if err := e.Emit(n); err != nil {
		return codegen.Output{}, err
	}
	return codegen.Output{Expr: e.buf.String()}, nil
}

func (e *Emitter) write(s string) { e.buf.WriteString(s) }

// resolve follows let bindings so that a bound variable emits, and is
// precedence-classified, as the expression it was bound to. It returns
// the node together with the scope it must be emitted under.
func (e *Emitter) resolve(n ir.Node) (ir.Node, *scope) {
	env := e.env
	for {
		v, ok := n.(*ir.Var)
		if !ok {
			return n, env
		}
		b, ok := env.lookup(v.Name)
		if !ok {
			return n, env
		}
		n, env = b.node, b.env
	}
}

// Emit appends the SQL for one IR node. Bound variables are inlined
// under the scope captured at their binding site.
func (e *Emitter) Emit(n ir.Node) error {
	node, env := e.resolve(n)
	saved := e.env
	e.env = env
	err := e.emit(node)
	e.env = saved
	return err
}

func (e *Emitter) emit(n ir.Node) error {
	switch v := n.(type) {
	case *ir.Lit:
		return e.emitLit(v)

	case *ir.Var:
		// Unbound names surface as column references, same as
		// relaxed identifiers.
		e.write(ident(v.Name))
		return nil

	case *ir.Column:
		e.write(ident(v.Name))
		return nil

	case *ir.Call:
		fn, err := stdlib().Lookup(v.Name, v.ArgTypes())
		if err != nil {
			return err
		}
		return fn(e, v.Args)

	case *ir.Apply:
		// Applying a let-bound lambda inlines its body with the
		// arguments bound as if by let: the arguments close over the
		// caller's scope, the body over the lambda's.
		fn, fnEnv := e.resolve(v.Fn)
		if lam, ok := fn.(*ir.Lambda); ok && len(lam.Params) == len(v.Args) {
			inner := fnEnv
			for i, p := range lam.Params {
				inner = &scope{parent: inner, name: p, bind: &binding{node: v.Args[i], env: e.env}}
			}
			saved := e.env
			e.env = inner
			err := e.Emit(lam.Body)
			e.env = saved
			return err
		}
		return ErrUnsupported

	case *ir.Let:
		e.env = &scope{
			parent: e.env,
			name:   v.Name,
			bind:   &binding{node: v.Value, env: e.env},
		}
		err := e.Emit(v.Body)
		e.env = e.env.parent
		return err

	case *ir.Cond:
		e.write("CASE WHEN ")
		if err := e.Emit(v.Cond); err != nil {
			return err
		}
		e.write(" THEN ")
		if err := e.Emit(v.Then); err != nil {
			return err
		}
		e.write(" ELSE ")
		if err := e.Emit(v.Else); err != nil {
			return err
		}
		e.write(" END")
		return nil

	case *ir.Alternative:
		e.write("COALESCE(")
		for i, x := range v.Exprs {
			if i > 0 {
				e.write(", ")
			}
			if err := e.Emit(x); err != nil {
				return err
			}
		}
		e.write(")")
		return nil

	case *ir.Lambda, *ir.Object, *ir.Array:
		return ErrUnsupported
	}
	return ErrUnsupported
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

func (e *Emitter) emitLit(v *ir.Lit) error {
	switch v.Typ.Kind {
	case types.KindString:
		e.write(quote(v.Text))
	case types.KindBool:
		e.write(strings.ToUpper(v.Text))
	case types.KindDate:
		e.write("DATE " + quote(v.Text))
	case types.KindDateTime:
		e.write("TIMESTAMP " + quote(v.Text))
	case types.KindDuration:
		e.write("INTERVAL " + quote(v.Text))
	case types.KindNull:
		e.write("NULL")
	default:
		e.write(v.Text)
	}
	return nil
}

// operatorFor returns the SQL operator spelling a node will be emitted
// with, if it is emitted as an operator at all. CASE and COALESCE are
// self-delimiting. Resolution happens here too so a bound variable
// classifies as its value expression.
func (e *Emitter) operatorFor(n ir.Node) (string, bool) {
	node, _ := e.resolve(n)
	if v, ok := node.(*ir.Call); ok {
		return nativeOp(v.Name, v.ArgTypes())
	}
	return "", false
}

// quote renders a SQL single-quoted string literal. The only escape is
// the doubled quote.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ident renders a column name, double-quoting anything that is not a
// plain lowercase identifier.
func ident(s string) string {
	safe := s != ""
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		safe = false
		break
	}
	if safe {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

var (
	libOnce sync.Once
	lib     *codegen.StdLib[*Emitter]
)

// stdlib returns the shared dispatch registry for the SQL target,
// built once and read-only thereafter.
func stdlib() *codegen.StdLib[*Emitter] {
	libOnce.Do(func() {
		lib = buildStdlib()
	})
	return lib
}
