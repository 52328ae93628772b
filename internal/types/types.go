// Package types defines the Elo static type tags and the signature
// registry that maps (function name, argument types) to a result type
// through a generalization search.
//
// The tag set is closed and finite: there is no structural or generic
// typing. Two types are equal iff their kinds match; types are compared
// by value, never by identity.
package types

import "strings"

// Kind discriminates the closed set of Elo types.
type Kind int

const (
	KindAny Kind = iota // wildcard; matches anything in a signature
	KindInt
	KindFloat
	KindBool
	KindString
	KindDate
	KindDateTime
	KindDuration
	KindFunction
	KindObject
	KindArray
	KindNull
)

// Type is an immutable type tag. The zero value is Any.
type Type struct {
	Kind Kind
}

var (
	Any      = Type{KindAny}
	Int      = Type{KindInt}
	Float    = Type{KindFloat}
	Bool     = Type{KindBool}
	String   = Type{KindString}
	Date     = Type{KindDate}
	DateTime = Type{KindDateTime}
	Duration = Type{KindDuration}
	Function = Type{KindFunction}
	Object   = Type{KindObject}
	Array    = Type{KindArray}
	Null     = Type{KindNull}
)

var kindNames = map[Kind]string{
	KindAny:      "any",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindString:   "string",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindDuration: "duration",
	KindFunction: "function",
	KindObject:   "object",
	KindArray:    "array",
	KindNull:     "null",
}

func (t Type) String() string { return kindNames[t.Kind] }

// IsWildcard reports whether t is the wildcard type.
func (t Type) IsWildcard() bool { return t.Kind == KindAny }

// IsNumeric reports whether t is int or float.
func (t Type) IsNumeric() bool { return t.Kind == KindInt || t.Kind == KindFloat }

// IsTemporal reports whether t is date, datetime or duration.
func (t Type) IsTemporal() bool {
	return t.Kind == KindDate || t.Kind == KindDateTime || t.Kind == KindDuration
}

// ByName resolves a built-in type name to its tag. Used when lowering
// type expressions.
func ByName(name string) (Type, bool) {
	for k, n := range kindNames {
		if n == name {
			return Type{k}, true
		}
	}
	return Type{}, false
}

// Signature renders the canonical lookup key for a name and argument
// type list, e.g. "add(int,int)".
func Signature(name string, args []Type) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Generalizations invokes fn with successive wildcard substitutions of
// args, most specific first: the exact types, then every way of
// replacing one non-wildcard position with the wildcard, then two, and
// so on up to the all-wildcard signature (2^k combinations for k
// non-wildcard positions). The walk stops when fn returns true, and
// Generalizations reports whether it did. The order is deterministic:
// substitution sets of equal size are visited in lexicographic position
// order.
func Generalizations(args []Type, fn func([]Type) bool) bool {
	var concrete []int
	for i, a := range args {
		if !a.IsWildcard() {
			concrete = append(concrete, i)
		}
	}

	scratch := make([]Type, len(args))
	for size := 0; size <= len(concrete); size++ {
		if visitCombos(args, scratch, concrete, size, 0, nil, fn) {
			return true
		}
	}
	return false
}

// visitCombos enumerates all size-element subsets of concrete[from:],
// lexicographically, applying each as a wildcard substitution.
func visitCombos(args, scratch []Type, concrete []int, size, from int, chosen []int, fn func([]Type) bool) bool {
	if size == 0 {
		copy(scratch, args)
		for _, pos := range chosen {
			scratch[pos] = Any
		}
		return fn(scratch)
	}
	for i := from; i <= len(concrete)-size; i++ {
		if visitCombos(args, scratch, concrete, size-1, i+1, append(chosen, concrete[i]), fn) {
			return true
		}
	}
	return false
}
