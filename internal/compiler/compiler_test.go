package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elolang/elo/internal/parser"
	"github.com/elolang/elo/internal/transform"
)

func TestParseTarget(t *testing.T) {
	for _, name := range []string{"js", "ruby", "sql"} {
		target, err := ParseTarget(name)
		require.NoError(t, err)
		assert.Equal(t, Target(name), target)
	}

	_, err := ParseTarget("python")
	assert.ErrorContains(t, err, "unknown target")
}

func TestCompile_AllTargets(t *testing.T) {
	cases := []struct {
		target Target
		want   string
	}{
		{TargetJS, "1 + 2 * 3"},
		{TargetRuby, "1 + 2 * 3"},
		{TargetSQL, "1 + 2 * 3"},
	}
	for _, c := range cases {
		result, err := Compile("1 + 2 * 3", c.target, Options{})
		require.NoError(t, err, "target: %s", c.target)
		assert.Equal(t, c.want, result.Code, "target: %s", c.target)
		assert.False(t, result.UsesInput)
		assert.Nil(t, result.Fragment)
	}
}

func TestCompile_UsesInput(t *testing.T) {
	result, err := Compile("_ * 2", TargetRuby, Options{})
	require.NoError(t, err)
	assert.Equal(t, "_ * 2", result.Code)
	assert.True(t, result.UsesInput)

	result, err = Compile("row * 2", TargetRuby, Options{InputName: "row"})
	require.NoError(t, err)
	assert.True(t, result.UsesInput)
}

func TestCompile_HelpersPrecedeExpression(t *testing.T) {
	result, err := Compile("_ + 1", TargetJS, Options{})
	require.NoError(t, err)
	assert.Contains(t, result.Code, "function kAdd")
	assert.True(t, strings.HasSuffix(result.Code, "kAdd(_, 1)"))
}

func TestCompile_Prelude(t *testing.T) {
	result, err := Compile("1 + 2", TargetJS, Options{Prelude: true})
	require.NoError(t, err)
	assert.Equal(t, "'use strict';\n1 + 2", result.Code)

	result, err = Compile("1 + 2", TargetRuby, Options{Prelude: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Code, "require 'date'"))

	// SQL has no prelude.
	result, err = Compile("1 + 2", TargetSQL, Options{Prelude: true})
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", result.Code)
}

func TestCompile_SQLIsAlwaysRelaxed(t *testing.T) {
	result, err := Compile("price * 2", TargetSQL, Options{})
	require.NoError(t, err)
	assert.Equal(t, "price * 2", result.Code)

	// The other targets reject unknown identifiers unless relaxed.
	_, err = Compile("price * 2", TargetJS, Options{})
	require.Error(t, err)
	assert.True(t, transform.IsUndefinedVariable(err))

	result, err = Compile("price * 2", TargetJS, Options{RelaxedIdents: true})
	require.NoError(t, err)
	assert.Equal(t, "price * 2", result.Code)
}

func TestCompile_TypeDefFragment(t *testing.T) {
	result, err := Compile("type Money = {amount: float}", TargetJS, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Code)
	assert.Equal(t,
		`{"type":"Money","def":{"object":[{"name":"amount","optional":false,"type":{"ref":"float"}}],"extra":false}}`,
		string(result.Fragment))
}

func TestCompile_TypeDefConstructors(t *testing.T) {
	_, err := Compile("type ID = Uuid", TargetJS, Options{})
	require.Error(t, err)

	result, err := Compile("type ID = Uuid", TargetJS, Options{Constructors: []string{"Uuid"}})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Fragment)
}

func TestCompile_ErrorWrapping(t *testing.T) {
	_, err := Compile("1 +", TargetJS, Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse:")
	var perr *parser.Error
	assert.ErrorAs(t, err, &perr)

	_, err = Compile("nope", TargetJS, Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "transform:")

	// Function values have no SQL rendering.
	_, err = Compile("fn(x ~> x)", TargetSQL, Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "codegen:")
}

func TestCompile_MaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 80) + "1" + strings.Repeat(")", 80)
	_, err := Compile(deep, TargetJS, Options{MaxDepth: 20})
	require.Error(t, err)

	_, err = Compile(deep, TargetJS, Options{MaxDepth: 500})
	assert.NoError(t, err)
}
