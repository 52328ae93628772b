package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/parser"
	"github.com/elolang/elo/internal/types"
)

func lowerSrc(t *testing.T, src string, opts Options) ir.Node {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err, "source: %s", src)
	node, err := New(opts).Lower(expr)
	require.NoError(t, err, "source: %s", src)
	return node
}

func lowerErr(t *testing.T, src string, opts Options) error {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err, "source: %s", src)
	_, err = New(opts).Lower(expr)
	require.Error(t, err, "source: %s", src)
	return err
}

func TestTransformer_Lower_LiteralTyping(t *testing.T) {
	assert.Equal(t, types.Int, lowerSrc(t, "42", Options{}).Type())
	assert.Equal(t, types.Float, lowerSrc(t, "3.14", Options{}).Type())
	assert.Equal(t, types.String, lowerSrc(t, "'x'", Options{}).Type())
	assert.Equal(t, types.Bool, lowerSrc(t, "true", Options{}).Type())
	assert.Equal(t, types.Null, lowerSrc(t, "null", Options{}).Type())
	assert.Equal(t, types.Date, lowerSrc(t, "D2024-01-15", Options{}).Type())
	assert.Equal(t, types.DateTime, lowerSrc(t, "D2024-01-15T10:30:00", Options{}).Type())
	assert.Equal(t, types.Duration, lowerSrc(t, "P1D", Options{}).Type())
}

func TestTransformer_Lower_OperatorsBecomeCalls(t *testing.T) {
	node := lowerSrc(t, "1 + 2", Options{})
	call, ok := node.(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	assert.Equal(t, types.Int, call.Result)

	node = lowerSrc(t, "1 / 2", Options{})
	call = node.(*ir.Call)
	assert.Equal(t, "div", call.Name)
	assert.Equal(t, types.Float, call.Result, "int division is always float")

	node = lowerSrc(t, "!true", Options{})
	call = node.(*ir.Call)
	assert.Equal(t, "not", call.Name)
	assert.Equal(t, types.Bool, call.Result)
}

func TestTransformer_Lower_TemporalPropagation(t *testing.T) {
	node := lowerSrc(t, "D2024-01-15 + P1D", Options{})
	assert.Equal(t, types.Date, node.Type())

	node = lowerSrc(t, "D2024-02-01 - D2024-01-01", Options{})
	assert.Equal(t, types.Duration, node.Type())
}

func TestTransformer_Lower_LetScoping(t *testing.T) {
	node := lowerSrc(t, "let x = 5 in x + 1", Options{})
	let, ok := node.(*ir.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	// x carries the bound value's type inside the body.
	assert.Equal(t, types.Int, let.Body.Type())
}

func TestTransformer_Lower_LetShadowing(t *testing.T) {
	node := lowerSrc(t, "let x = 1 in let x = 's' in x", Options{})
	assert.Equal(t, types.String, node.Type())
}

func TestTransformer_Lower_UndefinedVariable(t *testing.T) {
	err := lowerErr(t, "nope", Options{})
	var trErr *Error
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, ErrCodeUndefinedVariable, trErr.Code)
	assert.Equal(t, "nope", trErr.Name)
}

func TestTransformer_Lower_RelaxedIdentsBecomeColumns(t *testing.T) {
	node := lowerSrc(t, "price * quantity", Options{RelaxedIdents: true})
	call := node.(*ir.Call)
	assert.IsType(t, &ir.Column{}, call.Args[0])
	assert.IsType(t, &ir.Column{}, call.Args[1])
}

func TestTransformer_Lower_ImplicitInput(t *testing.T) {
	node := lowerSrc(t, "_ + 1", Options{})
	call := node.(*ir.Call)
	v, ok := call.Args[0].(*ir.Var)
	require.True(t, ok)
	assert.Equal(t, "_", v.Name)
	assert.True(t, ir.UsesVar(node, "_"))

	node = lowerSrc(t, "row * 2", Options{InputName: "row"})
	assert.True(t, ir.UsesVar(node, "row"))
}

func TestTransformer_Lower_TemporalKeywords(t *testing.T) {
	node := lowerSrc(t, "TODAY", Options{})
	call := node.(*ir.Call)
	assert.Equal(t, "today", call.Name)
	assert.Equal(t, types.Date, call.Result)

	// TOMORROW is today() plus one day.
	node = lowerSrc(t, "TOMORROW", Options{})
	call = node.(*ir.Call)
	assert.Equal(t, "add", call.Name)
	assert.Equal(t, types.Date, call.Result)

	// Day boundaries anchor on now() and yield datetimes.
	node = lowerSrc(t, "EOD", Options{})
	call = node.(*ir.Call)
	assert.Equal(t, "eod", call.Name)
	assert.Equal(t, types.DateTime, call.Result)
}

func TestTransformer_Lower_TemporalKeywordShadowable(t *testing.T) {
	node := lowerSrc(t, "let TODAY = 5 in TODAY", Options{})
	assert.Equal(t, types.Int, node.Type())
}

func TestTransformer_Lower_MemberBecomesGet(t *testing.T) {
	node := lowerSrc(t, "_.customer.name", Options{})
	outer := node.(*ir.Call)
	assert.Equal(t, "get", outer.Name)
	lit := outer.Args[1].(*ir.Lit)
	assert.Equal(t, "name", lit.Text)
	inner := outer.Args[0].(*ir.Call)
	assert.Equal(t, "get", inner.Name)
}

func TestTransformer_Lower_CondTyping(t *testing.T) {
	node := lowerSrc(t, "if true then 1 else 2", Options{})
	assert.Equal(t, types.Int, node.Type())

	// Diverging branches widen to the wildcard.
	node = lowerSrc(t, "if true then 1 else 's'", Options{})
	assert.Equal(t, types.Any, node.Type())
}

func TestTransformer_Lower_AlternativeTyping(t *testing.T) {
	node := lowerSrc(t, "1 | 2 | 3", Options{})
	alt := node.(*ir.Alternative)
	assert.Equal(t, types.Int, alt.Result)

	node = lowerSrc(t, "1 | 's'", Options{})
	alt = node.(*ir.Alternative)
	assert.Equal(t, types.Any, alt.Result)
}

func TestTransformer_Lower_LambdaAndApply(t *testing.T) {
	node := lowerSrc(t, "fn(x ~> x + 1)", Options{})
	lam, ok := node.(*ir.Lambda)
	require.True(t, ok)
	assert.False(t, lam.Predicate)
	assert.Equal(t, types.Function, lam.Type())

	node = lowerSrc(t, "fn(x | x > 0)", Options{})
	assert.True(t, node.(*ir.Lambda).Predicate)

	// Calling a let-bound function is dynamic dispatch.
	node = lowerSrc(t, "let f = fn(x ~> x + 1) in f(5)", Options{})
	let := node.(*ir.Let)
	_, ok = let.Body.(*ir.Apply)
	assert.True(t, ok)
}

func TestTransformer_Lower_RecursionRejected(t *testing.T) {
	err := lowerErr(t, "let f = fn(x ~> f(x)) in f(1)", Options{})
	var trErr *Error
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, ErrCodeRecursiveCall, trErr.Code)
	assert.Equal(t, "f", trErr.Name)
}

func TestTransformer_Lower_NonLambdaLetMayReferToOuterName(t *testing.T) {
	// Only lambda values guard their own name; a plain rebinding sees
	// the outer binding.
	node := lowerSrc(t, "let x = 1 in let x = x + 1 in x", Options{})
	assert.Equal(t, types.Int, node.Type())
}

func TestTransformer_Lower_MaxDepth(t *testing.T) {
	deep := strings.Repeat("1 + (", 30) + "1" + strings.Repeat(")", 30)
	expr, err := parser.Parse(deep)
	require.NoError(t, err)

	_, err = New(Options{MaxDepth: 10}).Lower(expr)
	require.Error(t, err)
	var trErr *Error
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, ErrCodeMaxDepth, trErr.Code)

	_, err = New(Options{MaxDepth: 100}).Lower(expr)
	assert.NoError(t, err)
}

func TestTransformer_LowerTypeDef(t *testing.T) {
	expr, err := parser.Parse("type Money = {amount: float, currency: string}")
	require.NoError(t, err)

	def, err := New(Options{}).LowerTypeDef(expr.(*ast.TypeDef), nil)
	require.NoError(t, err)
	assert.Equal(t, "Money", def.Name)
	schema := def.Type.(*ir.ObjectSchema)
	require.Len(t, schema.Fields, 2)
	assert.Equal(t, "amount", schema.Fields[0].Name)
}

func TestTransformer_LowerTypeDef_UnknownSelector(t *testing.T) {
	expr, err := parser.Parse("type ID = string | Uuid")
	require.NoError(t, err)

	tr := New(Options{})
	_, err = tr.LowerTypeDef(expr.(*ast.TypeDef), nil)
	var trErr *Error
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, ErrCodeUnknownTypeSelector, trErr.Code)
	assert.Equal(t, "Uuid", trErr.Name)

	// Declared constructors make the selector legal.
	_, err = tr.LowerTypeDef(expr.(*ast.TypeDef), []string{"Uuid"})
	assert.NoError(t, err)
}

func TestTransformer_LowerTypeDef_SelfReference(t *testing.T) {
	expr, err := parser.Parse("type Tree = {value: int, kids: [Tree]}")
	require.NoError(t, err)

	_, err = New(Options{}).LowerTypeDef(expr.(*ast.TypeDef), nil)
	assert.NoError(t, err)
}
