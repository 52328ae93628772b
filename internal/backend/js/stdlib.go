package js

import (
	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// precedence holds the JavaScript operator binding powers, plus the
// operators whose equal-precedence right operand keeps its parentheses.
var precedence = codegen.PrecTable{
	Prec: map[string]int{
		"=>": 1,
		"??": 3,
		"||": 4,
		"&&": 5,
		"===": 9, "!==": 9,
		"<": 10, "<=": 10, ">": 10, ">=": 10,
		"+": 12, "-": 12,
		"*": 13, "/": 13, "%": 13,
		"u!": 15, "u-": 15,
	},
	NonAssoc: map[string]bool{
		"-": true, "/": true, "%": true,
		"<": true, "<=": true, ">": true, ">=": true,
		"===": true, "!==": true,
		"??": true, "u!": true, "u-": true,
	},
}

// nativeOp maps a call to the JavaScript operator it is emitted with
// when its argument types permit native emission. Calls outside this
// set, or with types needing runtime dispatch, go through helpers and
// are atoms for precedence purposes.
func nativeOp(name string, args []types.Type) (string, bool) {
	switch name {
	case "add":
		if bothNumeric(args) || bothString(args) {
			return "+", true
		}
	case "sub":
		if bothNumeric(args) {
			return "-", true
		}
	case "mul":
		if bothNumeric(args) {
			return "*", true
		}
	case "div":
		if bothNumeric(args) {
			return "/", true
		}
	case "mod":
		if bothNumeric(args) {
			return "%", true
		}
	case "eq":
		if nativeEqual(args) {
			return "===", true
		}
	case "neq":
		if nativeEqual(args) {
			return "!==", true
		}
	case "lt":
		if nativeOrdered(args) {
			return "<", true
		}
	case "lte":
		if nativeOrdered(args) {
			return "<=", true
		}
	case "gt":
		if nativeOrdered(args) {
			return ">", true
		}
	case "gte":
		if nativeOrdered(args) {
			return ">=", true
		}
	case "and":
		return "&&", true
	case "or":
		return "||", true
	case "not":
		return "u!", true
	case "neg":
		if len(args) == 1 && args[0].IsNumeric() {
			return "u-", true
		}
	}
	return "", false
}

func bothNumeric(args []types.Type) bool {
	return len(args) == 2 && args[0].IsNumeric() && args[1].IsNumeric()
}

func bothString(args []types.Type) bool {
	return len(args) == 2 && args[0] == types.String && args[1] == types.String
}

// nativeEqual admits the types whose JavaScript === agrees with Elo
// equality. Dates compare by identity under ===, so they dispatch.
func nativeEqual(args []types.Type) bool {
	if len(args) != 2 {
		return false
	}
	for _, a := range args {
		switch a.Kind {
		case types.KindInt, types.KindFloat, types.KindString, types.KindBool:
		default:
			return false
		}
	}
	return true
}

func nativeOrdered(args []types.Type) bool {
	return bothNumeric(args) || bothString(args)
}

func buildStdlib() *codegen.StdLib[*Emitter] {
	l := codegen.NewStdLib[*Emitter]()
	nums := []types.Type{types.Int, types.Float}
	any2 := []types.Type{types.Any, types.Any}

	arith := []struct{ name, op, helper string }{
		{"add", "+", "kAdd"},
		{"sub", "-", "kSub"},
		{"mul", "*", "kMul"},
		{"div", "/", "kDiv"},
		{"mod", "%", "kMod"},
	}
	for _, a := range arith {
		for _, lt := range nums {
			for _, rt := range nums {
				l.Register(a.name, []types.Type{lt, rt}, binary(a.op))
			}
		}
		// Wildcard operands dispatch at runtime: dates, durations and
		// numbers share the surface operators.
		l.Register(a.name, any2, helperCall(a.helper))
	}
	l.Register("add", []types.Type{types.String, types.String}, binary("+"))
	l.Register("pow", any2, builtinCall("Math.pow"))

	cmps := []struct{ name, op, helper string }{
		{"eq", "===", "kEq"},
		{"neq", "!==", "kNeq"},
		{"lt", "<", "kLt"},
		{"lte", "<=", "kLte"},
		{"gt", ">", "kGt"},
		{"gte", ">=", "kGte"},
	}
	for _, c := range cmps {
		for _, lt := range nums {
			for _, rt := range nums {
				l.Register(c.name, []types.Type{lt, rt}, binary(c.op))
			}
		}
		l.Register(c.name, []types.Type{types.String, types.String}, binary(c.op))
		l.Register(c.name, any2, helperCall(c.helper))
	}
	l.Register("eq", []types.Type{types.Bool, types.Bool}, binary("==="))
	l.Register("neq", []types.Type{types.Bool, types.Bool}, binary("!=="))

	l.Register("and", any2, binary("&&"))
	l.Register("or", any2, binary("||"))
	l.Register("not", []types.Type{types.Any}, unary("u!", "!"))
	l.Register("neg", []types.Type{types.Int}, unary("u-", "-"))
	l.Register("neg", []types.Type{types.Float}, unary("u-", "-"))
	l.Register("neg", []types.Type{types.Any}, helperCall("kNeg"))

	l.Register("now", nil, helperCall("kNow"))
	l.Register("today", nil, helperCall("kToday"))
	l.Register("duration", []types.Type{types.String}, helperCall("kDuration"))

	bounds := []struct{ name, helper, unit string }{
		{"sow", "kStartOf", "week"},
		{"eow", "kEndOf", "week"},
		{"som", "kStartOf", "month"},
		{"eom", "kEndOf", "month"},
		{"soq", "kStartOf", "quarter"},
		{"eoq", "kEndOf", "quarter"},
		{"soy", "kStartOf", "year"},
		{"eoy", "kEndOf", "year"},
		{"sod", "kStartOf", "day"},
		{"eod", "kEndOf", "day"},
	}
	for _, b := range bounds {
		l.Register(b.name, []types.Type{types.Any}, boundary(b.helper, b.unit))
	}

	l.Register("get", []types.Type{types.Any, types.String}, member)

	// String and math functions register for their concrete types
	// only; wildcard call sites reach them through the arity fallback.
	l.Register("upper", []types.Type{types.String}, method(".toUpperCase()"))
	l.Register("lower", []types.Type{types.String}, method(".toLowerCase()"))
	l.Register("trim", []types.Type{types.String}, method(".trim()"))
	l.Register("len", []types.Type{types.String}, property(".length"))
	l.Register("len", []types.Type{types.Array}, property(".length"))
	l.Register("abs", []types.Type{types.Int}, builtinCall("Math.abs"))
	l.Register("abs", []types.Type{types.Float}, builtinCall("Math.abs"))
	l.Register("round", []types.Type{types.Float}, builtinCall("Math.round"))
	l.Register("floor", []types.Type{types.Float}, builtinCall("Math.floor"))
	l.Register("ceil", []types.Type{types.Float}, builtinCall("Math.ceil"))

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

// builtinCall is helperCall for functions the JavaScript runtime
// already provides.
func builtinCall(name string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.write(name)
		return e.emitArgList(args)
	}
}

func boundary(helper, unit string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		e.RequireHelper(helper)
		e.write(helper + "(")
		if err := e.Emit(args[0]); err != nil {
			return err
		}
		e.write(", '" + unit + "')")
		return nil
	}
}

func method(call string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		if err := e.emitReceiver(args[0]); err != nil {
			return err
		}
		e.write(call)
		return nil
	}
}

func property(name string) codegen.EmitFunc[*Emitter] {
	return func(e *Emitter, args []ir.Node) error {
		if err := e.emitReceiver(args[0]); err != nil {
			return err
		}
		e.write(name)
		return nil
	}
}

func member(e *Emitter, args []ir.Node) error {
	if err := e.emitReceiver(args[0]); err != nil {
		return err
	}
	if lit, ok := args[1].(*ir.Lit); ok && identSafe(lit.Text) {
		e.write("." + lit.Text)
		return nil
	}
	e.write("[")
	if err := e.Emit(args[1]); err != nil {
		return err
	}
	e.write("]")
	return nil
}

// emitReceiver emits a value a . will be appended to. Numeric literals
// need parentheses there or the dot reads as a decimal point.
func (e *Emitter) emitReceiver(n ir.Node) error {
	if lit, ok := n.(*ir.Lit); ok && lit.Typ.IsNumeric() {
		e.write("(" + lit.Text + ")")
		return nil
	}
	return e.emitAtom(n)
}
