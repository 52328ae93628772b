package sql

import (
	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// precedence holds the SQL operator binding powers. OR binds loosest,
// then AND, NOT, the comparisons, and the arithmetic tiers.
var precedence = codegen.PrecTable{
	Prec: map[string]int{
		"OR":  1,
		"AND": 2,
		"NOT": 3,
		"=": 4, "<>": 4, "<": 4, "<=": 4, ">": 4, ">=": 4,
		"+": 5, "-": 5, "||": 5,
		"*": 6, "/": 6, "%": 6,
		"u-": 7,
	},
	NonAssoc: map[string]bool{
		"-": true, "/": true, "%": true,
		"=": true, "<>": true, "<": true, "<=": true, ">": true, ">=": true,
		"u-": true,
	},
}

// nativeOp maps a call to the SQL operator it is emitted with. Every
// surface operator has one; only string addition changes spelling.
func nativeOp(name string, args []types.Type) (string, bool) {
	switch name {
	case "add":
		if len(args) == 2 && args[0].Kind == types.KindString && args[1].Kind == types.KindString {
			return "||", true
		}
		return "+", true
	case "sub":
		return "-", true
	case "mul":
		return "*", true
	case "div":
		return "/", true
	case "mod":
		return "%", true
	case "eq":
		return "=", true
	case "neq":
		return "<>", true
	case "lt":
		return "<", true
	case "lte":
		return "<=", true
	case "gt":
		return ">", true
	case "gte":
		return ">=", true
	case "and":
		return "AND", true
	case "or":
		return "OR", true
	case "not":
		return "NOT", true
	case "neg":
		return "u-", true
	}
	return "", false
}

func buildStdlib() *codegen.StdLib[*Emitter] {
	l := codegen.NewStdLib[*Emitter]()
	any1 := []types.Type{types.Any}
	any2 := []types.Type{types.Any, types.Any}

	for _, name := range []string{"sub", "mul", "mod", "eq", "neq", "lt", "lte", "gt", "gte"} {
		op, _ := nativeOp(name, any2)
		l.Register(name, any2, binary(op))
	}
	l.Register("add", []types.Type{types.String, types.String}, binary("||"))
	l.Register("add", any2, binary("+"))
	l.Register("and", any2, binary("AND"))
	l.Register("or", any2, binary("OR"))
	l.Register("not", any1, unary("NOT", "NOT "))
	l.Register("neg", any1, unary("u-", "-"))
	l.Register("pow", any2, call("POWER"))

	// SQL integer division truncates, so known int over int casts the
	// dividend. Wildcard operands keep the cast too: it is harmless
	// for floats and preserves the always-float division rule.
	l.Register("div", []types.Type{types.Int, types.Float}, binary("/"))
	l.Register("div", []types.Type{types.Float, types.Int}, binary("/"))
	l.Register("div", []types.Type{types.Float, types.Float}, binary("/"))
	l.Register("div", []types.Type{types.Duration, types.Int}, binary("/"))
	l.Register("div", []types.Type{types.Duration, types.Float}, binary("/"))
	l.Register("div", any2, castDiv)

	l.Register("now", nil, raw("NOW()"))
	l.Register("today", nil, raw("CURRENT_DATE"))
	l.Register("duration", []types.Type{types.String}, durationCast)

	starts := []struct{ name, unit string }{
		{"sow", "week"}, {"som", "month"}, {"soq", "quarter"}, {"soy", "year"}, {"sod", "day"},
	}
	for _, s := range starts {
		l.Register(s.name, any1, trunc(s.unit))
	}
	ends := []struct{ name, unit, step string }{
		{"eow", "week", "P7D"},
		{"eom", "month", "P1M"},
		{"eoq", "quarter", "P3M"},
		{"eoy", "year", "P1Y"},
		{"eod", "day", "P1D"},
	}
	for _, x := range ends {
		l.Register(x.name, any1, truncEnd(x.unit, x.step))
	}

	l.Register("get", []types.Type{types.Any, types.String}, member)

	l.Register("upper", []types.Type{types.String}, call("UPPER"))
	l.Register("lower", []types.Type{types.String}, call("LOWER"))
	l.Register("trim", []types.Type{types.String}, call("TRIM"))
	l.Register("len", []types.Type{types.String}, call("LENGTH"))
	l.Register("abs", []types.Type{types.Int}, call("ABS"))
	l.Register("abs", []types.Type{types.Float}, call("ABS"))
	l.Register("round", []types.Type{types.Float}, call("ROUND"))
	l.Register("floor", []types.Type{types.Float}, call("FLOOR"))
	l.Register("ceil", []types.Type{types.Float}, call("CEIL"))

	return l
}

func binary(op string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		if err := e.EmitParens(args[0], op, codegen.Left); err != nil {
			return err
		}
		e.write(" " + op + " ")
		return e.EmitParens(args[1], op, codegen.Right)
	}
}

// unary takes both the precedence key and the surface spelling since
// unary minus shares its spelling with subtraction.
func unary(key, spell string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write(spell)
		return e.EmitParens(args[0], key, codegen.Right)
	}
}

// call emits NAME(args...).
func call(name string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write(name + "(")
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
}

// raw emits a fixed expression, ignoring arguments.
func raw(text string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write(text)
		return nil
	}
}

// castDiv emits CAST(a AS REAL) / b.
func castDiv(e *Emitter, args []ir.Node) error {
	e.write("CAST(")
	if err := e.Emit(args[0]); err != nil {
		return err
	}
	e.write(" AS REAL) / ")
	return e.EmitParens(args[1], "/", codegen.Right)
}

// durationCast emits INTERVAL '...' for a literal ISO string and a
// CAST for anything computed.
func durationCast(e *Emitter, args []ir.Node) error {
	node, _ := e.resolve(args[0])
	if lit, ok := node.(*ir.Lit); ok && lit.Typ.Kind == types.KindString {
		e.write("INTERVAL " + quote(lit.Text))
		return nil
	}
	e.write("CAST(")
	if err := e.Emit(args[0]); err != nil {
		return err
	}
	e.write(" AS INTERVAL)")
	return nil
}

func trunc(unit string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write("DATE_TRUNC(" + quote(unit) + ", ")
		if err := e.Emit(args[0]); err != nil {
			return err
		}
		e.write(")")
		return nil
	}
}

// truncEnd emits the inclusive end of a period: the next period start
// minus one second, parenthesized so it nests as an atom.
func truncEnd(unit, step string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write("(DATE_TRUNC(" + quote(unit) + ", ")
		if err := e.Emit(args[0]); err != nil {
			return err
		}
		e.write(") + INTERVAL " + quote(step) + " - INTERVAL 'PT1S')")
		return nil
	}
}

// member emits receiver.column for a statically known attribute name.
// Computed keys have no SQL rendering.
func member(e *Emitter, args []ir.Node) error {
	key, _ := e.resolve(args[1])
	lit, ok := key.(*ir.Lit)
	if !ok {
		return ErrUnsupported
	}
	recvNode, _ := e.resolve(args[0])
	switch recv := recvNode.(type) {
	case *ir.Var:
		e.write(ident(recv.Name) + "." + ident(lit.Text))
	case *ir.Column:
		e.write(ident(recv.Name) + "." + ident(lit.Text))
	default:
		return ErrUnsupported
	}
	return nil
}
