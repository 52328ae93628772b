package js

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elolang/elo/internal/codegen"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/parser"
	"github.com/elolang/elo/internal/transform"
)

func gen(t *testing.T, src string) codegen.Output {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err, "source: %s", src)
	node, err := transform.New(transform.Options{}).Lower(expr)
	require.NoError(t, err, "source: %s", src)
	out, err := Generate(node)
	require.NoError(t, err, "source: %s", src)
	return out
}

func genRelaxed(t *testing.T, src string) codegen.Output {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err)
	node, err := transform.New(transform.Options{RelaxedIdents: true}).Lower(expr)
	require.NoError(t, err)
	out, err := Generate(node)
	require.NoError(t, err)
	return out
}

func helperNames(out codegen.Output) string {
	return strings.Join(out.Helpers, "\n")
}

func TestGenerate_NativeArithmetic(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 - 2 - 3", "1 - 2 - 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"1 / 2", "1 / 2"},
		{"10 % 3", "10 % 3"},
		{"2 ^ 10", "Math.pow(2, 10)"},
		{"-5 * 2", "-5 * 2"},
		{"'a' + 'b'", "'a' + 'b'"},
	}
	for _, c := range cases {
		out := gen(t, c.src)
		assert.Equal(t, c.want, out.Expr, "source: %s", c.src)
		assert.Empty(t, out.Helpers, "source: %s", c.src)
	}
}

func TestGenerate_NativeComparisonAndLogic(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 < 2", "1 < 2"},
		{"1 == 2", "1 === 2"},
		{"'a' != 'b'", "'a' !== 'b'"},
		{"true && false", "true && false"},
		{"1 < 2 && 2 < 3", "1 < 2 && 2 < 3"},
		{"!(1 < 2)", "!(1 < 2)"},
		{"!true", "!true"},
	}
	for _, c := range cases {
		out := gen(t, c.src)
		assert.Equal(t, c.want, out.Expr, "source: %s", c.src)
	}
}

func TestGenerate_WildcardOperandsDispatch(t *testing.T) {
	out := gen(t, "_ + 1")
	assert.Equal(t, "kAdd(_, 1)", out.Expr)
	names := helperNames(out)
	assert.Contains(t, names, "function kAdd")
	assert.Contains(t, names, "function kIsDate", "transitive dependency")
	assert.Contains(t, names, "function kDateAdd")
}

func TestGenerate_TemporalLiterals(t *testing.T) {
	out := gen(t, "D2024-01-15 + P1D")
	assert.Equal(t, "kAdd(kDate('2024-01-15'), kDuration('P1D'))", out.Expr)
	names := helperNames(out)
	assert.Contains(t, names, "function kDate")
	assert.Contains(t, names, "function kDuration")
}

func TestGenerate_DateEqualityNeverNative(t *testing.T) {
	// === compares dates by object identity, so they always dispatch.
	out := gen(t, "D2024-01-15 == D2024-01-15")
	assert.Equal(t, "kEq(kDate('2024-01-15'), kDate('2024-01-15'))", out.Expr)
}

func TestGenerate_Let(t *testing.T) {
	out := gen(t, "let x = 5 in x + 1")
	assert.Equal(t, "((x) => x + 1)(5)", out.Expr)

	// Object bodies need parentheses inside an arrow.
	out = gen(t, "let x = 1 in {a: x}")
	assert.Equal(t, "((x) => ({a: x}))(1)", out.Expr)
}

func TestGenerate_CondIsAtom(t *testing.T) {
	out := gen(t, "if true then 1 else 2")
	assert.Equal(t, "(true ? 1 : 2)", out.Expr)

	out = gen(t, "1 + (if true then 1 else 2)")
	assert.Equal(t, "1 + (true ? 1 : 2)", out.Expr)
}

func TestGenerate_LambdaAndApply(t *testing.T) {
	out := gen(t, "fn(x, y ~> x + y)")
	assert.Equal(t, "(x, y) => x + y", out.Expr)

	out = gen(t, "fn(x ~> x + 1)(5)")
	assert.Equal(t, "((x) => x + 1)(5)", out.Expr)

	out = gen(t, "let f = fn(x ~> x + 1) in f(5)")
	assert.Equal(t, "((f) => f(5))((x) => x + 1)", out.Expr)
}

func TestGenerate_AlternativeWrapsOperators(t *testing.T) {
	out := genRelaxed(t, "a | b | 1")
	assert.Equal(t, "a ?? b ?? 1", out.Expr)

	out = genRelaxed(t, "(a && b) | c")
	assert.Equal(t, "(a && b) ?? c", out.Expr)
}

func TestGenerate_Member(t *testing.T) {
	out := gen(t, "_.customer.name")
	assert.Equal(t, "_.customer.name", out.Expr)
}

func TestGenerate_StringAndMathFunctions(t *testing.T) {
	cases := []struct{ src, want string }{
		{"upper('hi')", "'hi'.toUpperCase()"},
		{"trim(' x ')", "' x '.trim()"},
		{"len('hi')", "'hi'.length"},
		{"abs(5)", "Math.abs(5)"},
		{"round(1.5)", "Math.round(1.5)"},
	}
	for _, c := range cases {
		out := gen(t, c.src)
		assert.Equal(t, c.want, out.Expr, "source: %s", c.src)
	}
}

func TestGenerate_ArityFallbackForWildcardCallSite(t *testing.T) {
	// upper registers for string only; a wildcard-typed argument reaches
	// the implementation through the arity fallback.
	out := gen(t, "upper(_)")
	assert.Equal(t, "_.toUpperCase()", out.Expr)
}

func TestGenerate_TemporalKeywords(t *testing.T) {
	out := gen(t, "NOW")
	assert.Equal(t, "kNow()", out.Expr)

	out = gen(t, "TOMORROW")
	assert.Equal(t, "kAdd(kToday(), kDuration('P1D'))", out.Expr)

	out = gen(t, "SOW")
	assert.Equal(t, "kStartOf(kToday(), 'week')", out.Expr)
	assert.Contains(t, helperNames(out), "function kStartOf")
}

func TestGenerate_ObjectAndArrayLiterals(t *testing.T) {
	out := gen(t, "{name: 'x', n: 1 + 2}")
	assert.Equal(t, "{name: 'x', n: 1 + 2}", out.Expr)

	out = gen(t, "[1, 2, 3]")
	assert.Equal(t, "[1, 2, 3]", out.Expr)
}

func TestGenerate_NegWildcard(t *testing.T) {
	out := gen(t, "-_")
	assert.Equal(t, "kNeg(_)", out.Expr)
	assert.Contains(t, helperNames(out), "function kNeg")
}

func TestGenerate_UnknownFunctionErrors(t *testing.T) {
	node := &ir.Call{Name: "frobnicate", Args: nil}
	_, err := Generate(node)
	require.Error(t, err)
	assert.True(t, codegen.IsDispatchError(err))
}

func TestQuote_Escapes(t *testing.T) {
	assert.Equal(t, `'o\'k'`, quote("o'k"))
	assert.Equal(t, `'a\nb'`, quote("a\nb"))
	assert.Equal(t, `'a\\b'`, quote(`a\b`))
}

func TestGenerate_NullLiteral(t *testing.T) {
	out := gen(t, "null")
	assert.Equal(t, "null", out.Expr)
}
