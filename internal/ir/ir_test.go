package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elolang/elo/internal/types"
)

func TestMarshalCanonical_Lit(t *testing.T) {
	out, err := MarshalCanonical(&Lit{Typ: types.Int, Text: "42"})
	require.NoError(t, err)
	assert.Equal(t, `{"lit":"42","type":"int"}`, string(out))
}

func TestMarshalCanonical_CallKeyOrder(t *testing.T) {
	node := &Call{
		Name: "add",
		Args: []Node{
			&Lit{Typ: types.Int, Text: "1"},
			&Var{Name: "x", Typ: types.Int},
		},
		Result: types.Int,
	}
	out, err := MarshalCanonical(node)
	require.NoError(t, err)
	assert.Equal(t,
		`{"call":"add","args":[{"lit":"1","type":"int"},{"var":"x","type":"int"}],"type":"int"}`,
		string(out))
}

func TestMarshalCanonical_LetCondLambda(t *testing.T) {
	node := &Let{
		Name:  "x",
		Value: &Lit{Typ: types.Int, Text: "1"},
		Body: &Cond{
			Cond:   &Lit{Typ: types.Bool, Text: "true"},
			Then:   &Var{Name: "x", Typ: types.Int},
			Else:   &Lit{Typ: types.Int, Text: "0"},
			Result: types.Int,
		},
	}
	out, err := MarshalCanonical(node)
	require.NoError(t, err)
	assert.Equal(t,
		`{"let":"x","value":{"lit":"1","type":"int"},"body":{"if":{"lit":"true","type":"bool"},"then":{"var":"x","type":"int"},"else":{"lit":"0","type":"int"},"type":"int"}}`,
		string(out))

	lam := &Lambda{Params: []string{"a", "b"}, Body: &Var{Name: "a", Typ: types.Any}}
	out, err = MarshalCanonical(lam)
	require.NoError(t, err)
	assert.Equal(t, `{"lambda":["a","b"],"body":{"var":"a","type":"any"}}`, string(out))

	pred := &Lambda{Params: []string{"v"}, Body: &Lit{Typ: types.Bool, Text: "true"}, Predicate: true}
	out, err = MarshalCanonical(pred)
	require.NoError(t, err)
	assert.Equal(t, `{"predicate":["v"],"body":{"lit":"true","type":"bool"}}`, string(out))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// e followed by combining acute composes to a single code point.
	decomposed := "café"
	composed := "café"
	a, err := MarshalCanonical(&Lit{Typ: types.String, Text: decomposed})
	require.NoError(t, err)
	b, err := MarshalCanonical(&Lit{Typ: types.String, Text: composed})
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalType_Schema(t *testing.T) {
	def := &TypeDef{
		Name: "Money",
		Type: &ObjectSchema{
			Fields: []SchemaField{
				{Name: "amount", Type: &TypeRef{Name: "float"}},
				{Name: "note", Optional: true, Type: &TypeRef{Name: "string"}},
			},
			Extra: true,
		},
	}
	out, err := MarshalCanonicalType(def)
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"Money","def":{"object":[{"name":"amount","optional":false,"type":{"ref":"float"}},{"name":"note","optional":true,"type":{"ref":"string"}}],"extra":true}}`,
		string(out))
}

func TestMarshalCanonicalType_UnionConstraintArray(t *testing.T) {
	def := &TypeDef{
		Name: "ID",
		Type: &UnionType{Alts: []TypeExpr{
			&TypeRef{Name: "string"},
			&Constraint{Label: "positive", Elem: &TypeRef{Name: "int"}},
			&ArrayType{Elem: &TypeRef{Name: "int"}},
		}},
	}
	out, err := MarshalCanonicalType(def)
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"ID","def":{"union":[{"ref":"string"},{"constraint":"positive","of":{"ref":"int"}},{"array":{"ref":"int"}}]}}`,
		string(out))
}

func TestWalk_VisitsAllAndStopsEarly(t *testing.T) {
	tree := &Call{
		Name: "add",
		Args: []Node{
			&Let{Name: "x", Value: &Lit{Typ: types.Int, Text: "1"}, Body: &Var{Name: "x", Typ: types.Int}},
			&Alternative{Exprs: []Node{&Column{Name: "a"}, &Lit{Typ: types.Null}}},
		},
		Result: types.Int,
	}

	var count int
	Walk(tree, func(Node) bool {
		count++
		return true
	})
	assert.Equal(t, 7, count)

	count = 0
	Walk(tree, func(n Node) bool {
		count++
		_, isLet := n.(*Let)
		return !isLet
	})
	// Stops at the Let before descending into its value and body.
	assert.Equal(t, 2, count)
}

func TestUsesVar(t *testing.T) {
	tree := &Call{
		Name:   "mul",
		Args:   []Node{&Var{Name: "_", Typ: types.Any}, &Lit{Typ: types.Int, Text: "2"}},
		Result: types.Any,
	}
	assert.True(t, UsesVar(tree, "_"))
	assert.False(t, UsesVar(tree, "row"))

	// Columns are not variables.
	col := &Call{Name: "neg", Args: []Node{&Column{Name: "price"}}, Result: types.Any}
	assert.False(t, UsesVar(col, "price"))
}

func TestNode_Types(t *testing.T) {
	assert.Equal(t, types.Any, (&Column{Name: "c"}).Type())
	assert.Equal(t, types.Function, (&Lambda{}).Type())
	assert.Equal(t, types.Object, (&Object{}).Type())
	assert.Equal(t, types.Array, (&Array{}).Type())
	assert.Equal(t, types.Int, (&Alternative{Result: types.Int}).Type())
	assert.Equal(t, types.Any, (&Apply{}).Type())
}
