package ruby

import (
	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// precedence holds the Ruby operator binding powers. ** binds tighter
// than unary minus and groups to the right.
var precedence = codegen.PrecTable{
	Prec: map[string]int{
		"||": 4,
		"&&": 5,
		"==": 8, "!=": 8,
		"<": 9, "<=": 9, ">": 9, ">=": 9,
		"+": 12, "-": 12,
		"*": 13, "/": 13, "%": 13,
		"u!": 15, "u-": 15,
		"**": 16,
	},
	NonAssoc: map[string]bool{
		"-": true, "/": true, "%": true,
		"<": true, "<=": true, ">": true, ">=": true,
		"==": true, "!=": true,
		"u!": true, "u-": true,
	},
	RightAssoc: map[string]bool{"**": true},
}

// nativeOp maps a call to the Ruby operator it is emitted with. Ruby
// operators dispatch on the receiver at runtime, so unlike the
// JavaScript target most calls stay native for wildcard types too.
// Integer division is the exception: Integer#/ truncates, so int and
// wildcard operands leave the operator form.
func nativeOp(name string, args []types.Type) (string, bool) {
	switch name {
	case "add":
		return "+", true
	case "sub":
		return "-", true
	case "mul":
		return "*", true
	case "div":
		if floatDiv(args) {
			return "/", true
		}
	case "mod":
		return "%", true
	case "pow":
		return "**", true
	case "eq":
		return "==", true
	case "neq":
		return "!=", true
	case "lt":
		return "<", true
	case "lte":
		return "<=", true
	case "gt":
		return ">", true
	case "gte":
		return ">=", true
	case "and":
		return "&&", true
	case "or":
		return "||", true
	case "not":
		return "u!", true
	case "neg":
		return "u-", true
	}
	return "", false
}

// floatDiv reports whether / can be emitted directly: at least one
// operand is known float, or the left side is a duration scaling.
func floatDiv(args []types.Type) bool {
	if len(args) != 2 {
		return false
	}
	if args[0].Kind == types.KindFloat || args[1].Kind == types.KindFloat {
		return true
	}
	return args[0].Kind == types.KindDuration
}

func buildStdlib() *codegen.StdLib[*Emitter] {
	l := codegen.NewStdLib[*Emitter]()
	any1 := []types.Type{types.Any}
	any2 := []types.Type{types.Any, types.Any}

	for _, name := range []string{"add", "sub", "mul", "mod", "pow", "eq", "neq", "lt", "lte", "gt", "gte"} {
		op, _ := nativeOp(name, any2)
		l.Register(name, any2, binary(op))
	}
	l.Register("and", any2, binary("&&"))
	l.Register("or", any2, binary("||"))
	l.Register("not", any1, unary("u!", "!"))
	l.Register("neg", any1, unary("u-", "-"))

	// Integer#/ truncates, so int over int goes through fdiv and
	// wildcard operands dispatch in a helper at runtime.
	l.Register("div", []types.Type{types.Int, types.Int}, method(".fdiv"))
	l.Register("div", []types.Type{types.Int, types.Float}, binary("/"))
	l.Register("div", []types.Type{types.Float, types.Int}, binary("/"))
	l.Register("div", []types.Type{types.Float, types.Float}, binary("/"))
	l.Register("div", []types.Type{types.Duration, types.Int}, binary("/"))
	l.Register("div", []types.Type{types.Duration, types.Float}, binary("/"))
	l.Register("div", any2, helperCall("k_div"))

	l.Register("now", nil, raw("Time.now"))
	l.Register("today", nil, raw("Date.today"))
	l.Register("duration", []types.Type{types.String}, wrapCall("ActiveSupport::Duration.parse"))

	bounds := []struct{ name, call string }{
		{"sow", ".beginning_of_week"},
		{"eow", ".end_of_week"},
		{"som", ".beginning_of_month"},
		{"eom", ".end_of_month"},
		{"soq", ".beginning_of_quarter"},
		{"eoq", ".end_of_quarter"},
		{"soy", ".beginning_of_year"},
		{"eoy", ".end_of_year"},
		{"sod", ".beginning_of_day"},
		{"eod", ".end_of_day"},
	}
	for _, b := range bounds {
		l.Register(b.name, any1, property(b.call))
	}

	l.Register("get", []types.Type{types.Any, types.String}, member)

	// String and math functions register for their concrete types
	// only; wildcard call sites reach them through the arity fallback.
	l.Register("upper", []types.Type{types.String}, property(".upcase"))
	l.Register("lower", []types.Type{types.String}, property(".downcase"))
	l.Register("trim", []types.Type{types.String}, property(".strip"))
	l.Register("len", []types.Type{types.String}, property(".length"))
	l.Register("len", []types.Type{types.Array}, property(".length"))
	l.Register("abs", []types.Type{types.Int}, property(".abs"))
	l.Register("abs", []types.Type{types.Float}, property(".abs"))
	l.Register("round", []types.Type{types.Float}, property(".round"))
	l.Register("floor", []types.Type{types.Float}, property(".floor"))
	l.Register("ceil", []types.Type{types.Float}, property(".ceil"))

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

func helperCall(name string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.RequireHelper(name)
		e.write(name)
		return e.emitArgList(args)
	}
}

// raw emits a fixed expression, ignoring arguments.
func raw(text string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write(text)
		return nil
	}
}

// wrapCall emits name(arg) for a fixed callable.
func wrapCall(name string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write(name)
		return e.emitArgList(args)
	}
}

// method emits receiver.name(args...) for the remaining arguments.
func method(call string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		if err := e.emitReceiver(args[0]); err != nil {
			return err
		}
		e.write(call)
		return e.emitArgList(args[1:])
	}
}

// property emits receiver.name with no argument list.
func property(call string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		if err := e.emitReceiver(args[0]); err != nil {
			return err
		}
		e.write(call)
		return nil
	}
}

func member(e *Emitter, args []ir.Node) error {
	if err := e.emitReceiver(args[0]); err != nil {
		return err
	}
	e.write("[")
	if lit, ok := args[1].(*ir.Lit); ok && identSafe(lit.Text) {
		e.write(":" + lit.Text)
	} else if err := e.Emit(args[1]); err != nil {
		return err
	}
	e.write("]")
	return nil
}
