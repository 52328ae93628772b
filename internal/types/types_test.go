package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_Rendering(t *testing.T) {
	assert.Equal(t, "add(int,int)", Signature("add", []Type{Int, Int}))
	assert.Equal(t, "now()", Signature("now", nil))
	assert.Equal(t, "get(any,string)", Signature("get", []Type{Any, String}))
}

func TestType_Predicates(t *testing.T) {
	assert.True(t, Any.IsWildcard())
	assert.False(t, Int.IsWildcard())
	assert.True(t, Int.IsNumeric())
	assert.True(t, Float.IsNumeric())
	assert.False(t, String.IsNumeric())
	assert.True(t, Date.IsTemporal())
	assert.True(t, Duration.IsTemporal())
	assert.False(t, Bool.IsTemporal())
}

func TestByName(t *testing.T) {
	typ, ok := ByName("datetime")
	require.True(t, ok)
	assert.Equal(t, DateTime, typ)

	_, ok = ByName("integer")
	assert.False(t, ok)
}

func TestGeneralizations_Order(t *testing.T) {
	// The walk is most-specific-first: exact signature, then every
	// single substitution in position order, then pairs, then all-any.
	var seen []string
	Generalizations([]Type{Int, String}, func(args []Type) bool {
		seen = append(seen, Signature("f", args))
		return false
	})
	assert.Equal(t, []string{
		"f(int,string)",
		"f(any,string)",
		"f(int,any)",
		"f(any,any)",
	}, seen)
}

func TestGeneralizations_SkipsWildcardPositions(t *testing.T) {
	// An argument that is already the wildcard is never substituted,
	// so a call with one wildcard yields 2^1 combinations, not 2^2.
	var seen []string
	Generalizations([]Type{Any, Int}, func(args []Type) bool {
		seen = append(seen, Signature("f", args))
		return false
	})
	assert.Equal(t, []string{
		"f(any,int)",
		"f(any,any)",
	}, seen)
}

func TestGeneralizations_StopsOnMatch(t *testing.T) {
	count := 0
	found := Generalizations([]Type{Int, Int, Int}, func(args []Type) bool {
		count++
		return count == 2
	})
	assert.True(t, found)
	assert.Equal(t, 2, count)
}

func TestRegistry_Lookup_ExactBeforeGeneral(t *testing.T) {
	r := NewRegistry()
	r.Register("add", []Type{Int, Int}, Int)
	r.Register("add", []Type{Any, Any}, Any)

	assert.Equal(t, Int, r.Lookup("add", []Type{Int, Int}))
	assert.Equal(t, Any, r.Lookup("add", []Type{Date, Duration}))
}

func TestRegistry_Lookup_UnknownIsWildcard(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, Any, r.Lookup("mystery", []Type{Int}))
}

func TestRegistry_LookupFallback(t *testing.T) {
	r := NewRegistry()
	called := false
	got := r.LookupFallback("missing", []Type{Int}, func(name string, args []Type) Type {
		called = true
		return Bool
	})
	assert.True(t, called)
	assert.Equal(t, Bool, got)
}

func TestDefaultRegistry_OperatorResults(t *testing.T) {
	r := DefaultRegistry()

	// Integer arithmetic stays integral except division.
	assert.Equal(t, Int, r.Lookup("add", []Type{Int, Int}))
	assert.Equal(t, Float, r.Lookup("add", []Type{Int, Float}))
	assert.Equal(t, Float, r.Lookup("div", []Type{Int, Int}))

	// String concatenation.
	assert.Equal(t, String, r.Lookup("add", []Type{String, String}))

	// Temporal arithmetic.
	assert.Equal(t, Date, r.Lookup("add", []Type{Date, Duration}))
	assert.Equal(t, Duration, r.Lookup("sub", []Type{Date, Date}))
	assert.Equal(t, Duration, r.Lookup("mul", []Type{Duration, Int}))

	// Comparisons are bool whatever the operands.
	assert.Equal(t, Bool, r.Lookup("eq", []Type{Date, Date}))
	assert.Equal(t, Bool, r.Lookup("lt", []Type{Any, Any}))

	// Negation preserves known operand types.
	assert.Equal(t, Int, r.Lookup("neg", []Type{Int}))
	assert.Equal(t, Duration, r.Lookup("neg", []Type{Duration}))

	// Temporal constructors and boundaries.
	assert.Equal(t, DateTime, r.Lookup("now", nil))
	assert.Equal(t, Date, r.Lookup("today", nil))
	assert.Equal(t, Date, r.Lookup("sow", []Type{Date}))
	assert.Equal(t, DateTime, r.Lookup("sod", []Type{Date}))
}

func TestDefaultRegistry_SharedInstance(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}
