package types

import "sync"

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// DefaultRegistry returns the shared signature registry for the Elo
// standard operators and functions. It is built once and is read-only
// thereafter; concurrent compilations may share it freely.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultReg = buildDefault()
	})
	return defaultReg
}

func buildDefault() *Registry {
	r := NewRegistry()

	// Integer arithmetic stays integral except for division, which
	// always yields float. Any float operand promotes the result.
	for _, op := range []string{"add", "sub", "mul", "mod", "pow"} {
		r.Register(op, []Type{Int, Int}, Int)
		r.Register(op, []Type{Int, Float}, Float)
		r.Register(op, []Type{Float, Int}, Float)
		r.Register(op, []Type{Float, Float}, Float)
	}
	r.Register("div", []Type{Int, Int}, Float)
	r.Register("div", []Type{Int, Float}, Float)
	r.Register("div", []Type{Float, Int}, Float)
	r.Register("div", []Type{Float, Float}, Float)

	// String concatenation.
	r.Register("add", []Type{String, String}, String)

	// Temporal arithmetic.
	r.Register("add", []Type{Date, Duration}, Date)
	r.Register("add", []Type{Duration, Date}, Date)
	r.Register("sub", []Type{Date, Duration}, Date)
	r.Register("sub", []Type{Date, Date}, Duration)
	r.Register("add", []Type{DateTime, Duration}, DateTime)
	r.Register("add", []Type{Duration, DateTime}, DateTime)
	r.Register("sub", []Type{DateTime, Duration}, DateTime)
	r.Register("sub", []Type{DateTime, DateTime}, Duration)
	r.Register("add", []Type{Duration, Duration}, Duration)
	r.Register("sub", []Type{Duration, Duration}, Duration)
	for _, num := range []Type{Int, Float} {
		r.Register("mul", []Type{Duration, num}, Duration)
		r.Register("mul", []Type{num, Duration}, Duration)
		r.Register("div", []Type{Duration, num}, Duration)
	}

	// Comparisons and logical operators yield bool whatever the
	// operand types: a pair of wildcard registrations covers them all.
	for _, op := range []string{"eq", "neq", "lt", "lte", "gt", "gte", "and", "or"} {
		r.Register(op, []Type{Any, Any}, Bool)
	}
	r.Register("not", []Type{Any}, Bool)

	// Negation preserves its operand type where that is known.
	r.Register("neg", []Type{Int}, Int)
	r.Register("neg", []Type{Float}, Float)
	r.Register("neg", []Type{Duration}, Duration)

	// Temporal constructors and period boundaries.
	r.Register("now", nil, DateTime)
	r.Register("today", nil, Date)
	r.Register("duration", []Type{String}, Duration)
	for _, fn := range []string{"sow", "eow", "som", "eom", "soq", "eoq", "soy", "eoy"} {
		r.Register(fn, []Type{Date}, Date)
		r.Register(fn, []Type{DateTime}, DateTime)
	}
	r.Register("sod", []Type{DateTime}, DateTime)
	r.Register("eod", []Type{DateTime}, DateTime)
	r.Register("sod", []Type{Date}, DateTime)
	r.Register("eod", []Type{Date}, DateTime)

	// Small string/number library surfaced in all targets.
	r.Register("upper", []Type{String}, String)
	r.Register("lower", []Type{String}, String)
	r.Register("trim", []Type{String}, String)
	r.Register("len", []Type{String}, Int)
	r.Register("len", []Type{Array}, Int)
	r.Register("abs", []Type{Int}, Int)
	r.Register("abs", []Type{Float}, Float)
	r.Register("round", []Type{Float}, Int)
	r.Register("floor", []Type{Float}, Int)
	r.Register("ceil", []Type{Float}, Int)

	return r
}
