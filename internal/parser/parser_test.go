package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elolang/elo/internal/ast"
)

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := Parse(src)
	require.NoError(t, err, "source: %s", src)
	return expr
}

func TestParser_Parse_Literals(t *testing.T) {
	assert.Equal(t, &ast.Number{Text: "42"}, parse(t, "42"))
	assert.Equal(t, &ast.Number{Text: "3.14", Offset: 0}, parse(t, "3.14"))
	assert.Equal(t, &ast.String{Value: "it's"}, parse(t, `'it\'s'`))
	assert.Equal(t, &ast.Bool{Value: true}, parse(t, "true"))
	assert.Equal(t, &ast.Null{}, parse(t, "null"))
	assert.Equal(t, &ast.Date{Text: "2024-01-15"}, parse(t, "D2024-01-15"))
	assert.Equal(t, &ast.DateTime{Text: "2024-01-15T10:30:00"}, parse(t, "D2024-01-15T10:30:00"))
	assert.Equal(t, &ast.Duration{Text: "P1DT2H"}, parse(t, "P1DT2H"))
}

func TestParser_Parse_Precedence(t *testing.T) {
	// 1 + 2 * 3 groups the product first.
	expr := parse(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	right, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParser_Parse_PowerRightAssociative(t *testing.T) {
	expr := parse(t, "2 ^ 3 ^ 4")
	bin := expr.(*ast.Binary)
	assert.Equal(t, "^", bin.Op)
	assert.IsType(t, &ast.Number{}, bin.Left)
	right := bin.Right.(*ast.Binary)
	assert.Equal(t, "^", right.Op)
}

func TestParser_Parse_ComparisonChainsLeft(t *testing.T) {
	expr := parse(t, "a < b < c")
	bin := expr.(*ast.Binary)
	assert.Equal(t, "<", bin.Op)
	left := bin.Left.(*ast.Binary)
	assert.Equal(t, "<", left.Op)
}

func TestParser_Parse_UnaryNesting(t *testing.T) {
	expr := parse(t, "!-x")
	un := expr.(*ast.Unary)
	assert.Equal(t, "!", un.Op)
	inner := un.Operand.(*ast.Unary)
	assert.Equal(t, "-", inner.Op)
}

func TestParser_Parse_CallsAndMembers(t *testing.T) {
	expr := parse(t, "upper(name)")
	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "upper", call.Name)
	require.Len(t, call.Args, 1)

	expr = parse(t, "order.customer.name")
	outer := expr.(*ast.Member)
	assert.Equal(t, "name", outer.Name)
	inner := outer.Target.(*ast.Member)
	assert.Equal(t, "customer", inner.Name)
	assert.Equal(t, "order", inner.Target.(*ast.Var).Name)
}

func TestParser_Parse_CallOnExpressionIsApplication(t *testing.T) {
	expr := parse(t, "fn(x ~> x)(1)")
	applied, ok := expr.(*ast.AppliedLambda)
	require.True(t, ok)
	assert.IsType(t, &ast.Lambda{}, applied.Fn)
	require.Len(t, applied.Args, 1)
}

func TestParser_Parse_LetSingle(t *testing.T) {
	expr := parse(t, "let x = 5 in x + 1")
	let, ok := expr.(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	assert.IsType(t, &ast.Binary{}, let.Body)
}

func TestParser_Parse_LetMultiBindingDesugarsNested(t *testing.T) {
	expr := parse(t, "let a = 1, b = a + 1 in a + b")
	outer := expr.(*ast.Let)
	assert.Equal(t, "a", outer.Name)
	inner, ok := outer.Body.(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name)
	assert.IsType(t, &ast.Binary{}, inner.Body)
}

func TestParser_Parse_LetInDisambiguatedFromRange(t *testing.T) {
	// The in here belongs to the let, not a range membership: the
	// speculation consumes "in x" looking for .. and backs out.
	expr := parse(t, "let x = 5 in x")
	let, ok := expr.(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	assert.Equal(t, "x", let.Body.(*ast.Var).Name)
}

func TestParser_Parse_RangeMembershipInclusive(t *testing.T) {
	// v in lo..hi desugars to v >= lo && v <= hi.
	expr := parse(t, "x in 1..10")
	and := expr.(*ast.Binary)
	assert.Equal(t, "&&", and.Op)
	lower := and.Left.(*ast.Binary)
	assert.Equal(t, ">=", lower.Op)
	upper := and.Right.(*ast.Binary)
	assert.Equal(t, "<=", upper.Op)
}

func TestParser_Parse_RangeMembershipExclusive(t *testing.T) {
	expr := parse(t, "x in 1...10")
	and := expr.(*ast.Binary)
	upper := and.Right.(*ast.Binary)
	assert.Equal(t, "<", upper.Op)
}

func TestParser_Parse_RangeMembershipNegated(t *testing.T) {
	expr := parse(t, "x not in 1..10")
	not, ok := expr.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "!", not.Op)
	assert.IsType(t, &ast.Binary{}, not.Operand)
}

func TestParser_Parse_RangeComplexOperandsLetBound(t *testing.T) {
	// Non-trivial operands are bound once rather than duplicated.
	expr := parse(t, "f(x) in 1..10")
	let, ok := expr.(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "__range_v", let.Name)
	assert.IsType(t, &ast.Call{}, let.Value)
}

func TestParser_Parse_PipeDesugarsToCall(t *testing.T) {
	expr := parse(t, "x |> trim")
	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "trim", call.Name)
	require.Len(t, call.Args, 1)

	// The piped value becomes the leading argument.
	expr = parse(t, "x |> add(1)")
	call = expr.(*ast.Call)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
	assert.Equal(t, "x", call.Args[0].(*ast.Var).Name)
}

func TestParser_Parse_PipeChainsLeft(t *testing.T) {
	expr := parse(t, "x |> trim |> upper")
	outer := expr.(*ast.Call)
	assert.Equal(t, "upper", outer.Name)
	inner := outer.Args[0].(*ast.Call)
	assert.Equal(t, "trim", inner.Name)
}

func TestParser_Parse_If(t *testing.T) {
	expr := parse(t, "if x > 0 then 'pos' else 'neg'")
	cond, ok := expr.(*ast.Cond)
	require.True(t, ok)
	assert.IsType(t, &ast.Binary{}, cond.Cond)
	assert.IsType(t, &ast.String{}, cond.Then)
	assert.IsType(t, &ast.String{}, cond.Else)
}

func TestParser_Parse_LambdaAndPredicate(t *testing.T) {
	expr := parse(t, "fn(x, y ~> x + y)")
	lam, ok := expr.(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, lam.Params)

	expr = parse(t, "fn(x | x > 0)")
	pred, ok := expr.(*ast.Predicate)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, pred.Params)
}

func TestParser_Parse_Alternative(t *testing.T) {
	expr := parse(t, "a | b | c")
	alt, ok := expr.(*ast.Alternative)
	require.True(t, ok)
	assert.Len(t, alt.Exprs, 3)
}

func TestParser_Parse_ObjectAndArray(t *testing.T) {
	expr := parse(t, "{name: 'x', 'two words': 1}")
	obj := expr.(*ast.Object)
	require.Len(t, obj.Fields, 2)
	assert.Equal(t, "name", obj.Fields[0].Name)
	assert.Equal(t, "two words", obj.Fields[1].Name)

	expr = parse(t, "[1, 2, 3]")
	arr := expr.(*ast.Array)
	assert.Len(t, arr.Elems, 3)
}

func TestParser_Parse_TypeDef(t *testing.T) {
	expr := parse(t, "type Money = {amount: float, currency: string, ...}")
	def, ok := expr.(*ast.TypeDef)
	require.True(t, ok)
	assert.Equal(t, "Money", def.Name)
	schema := def.Type.(*ast.ObjectSchema)
	assert.True(t, schema.Extra)
	require.Len(t, schema.Fields, 2)
}

func TestParser_Parse_TypeDefUnionAndConstraint(t *testing.T) {
	expr := parse(t, "type ID = string | positive(int)")
	def := expr.(*ast.TypeDef)
	union := def.Type.(*ast.UnionType)
	require.Len(t, union.Alts, 2)
	constraint := union.Alts[1].(*ast.Constraint)
	assert.Equal(t, "positive", constraint.Label)
}

func TestParser_Parse_TrailingTokens(t *testing.T) {
	_, err := Parse("1 + 2 3")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestParser_Parse_UnexpectedEOF(t *testing.T) {
	_, err := Parse("1 +")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestParser_Parse_MaxDepthBoundary(t *testing.T) {
	// A nest of parens just under the ceiling parses; one past fails.
	deep := strings.Repeat("(", 40) + "1" + strings.Repeat(")", 40)
	_, err := New(deep, Options{MaxDepth: 50}).Parse()
	require.NoError(t, err)

	tooDeep := strings.Repeat("(", 60) + "1" + strings.Repeat(")", 60)
	_, err = New(tooDeep, Options{MaxDepth: 50}).Parse()
	require.Error(t, err)
	assert.True(t, IsMaxDepthError(err))
}
