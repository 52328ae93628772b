// Package codegen is the dispatch-based code-generation framework
// shared by the three backends. A backend instantiates StdLib with its
// own emitter type, registers an emission routine per (function name,
// argument types) signature, and resolves call sites through the same
// generalization search the signature registry uses, plus a
// specialization fallback for wildcard call sites.
package codegen

import (
	"fmt"

	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// EmitFunc emits code for one resolved call. E is the backend's
// concrete emitter type.
type EmitFunc[E any] func(e E, args []ir.Node) error

// StdLib maps (name, argument types) to emission routines. It is
// append-only during backend construction and read-only afterwards;
// one instance per target is built once and shared by every
// compilation.
type StdLib[E any] struct {
	exact   map[string]EmitFunc[E]
	byArity map[string][]EmitFunc[E]
}

// NewStdLib returns an empty registry.
func NewStdLib[E any]() *StdLib[E] {
	return &StdLib[E]{
		exact:   make(map[string]EmitFunc[E]),
		byArity: make(map[string][]EmitFunc[E]),
	}
}

// Register records an emission routine for an exact signature.
func (s *StdLib[E]) Register(name string, args []types.Type, fn EmitFunc[E]) {
	s.exact[types.Signature(name, args)] = fn
	key := arityKey(name, len(args))
	s.byArity[key] = append(s.byArity[key], fn)
}

// Lookup resolves a call site. The search order is the registry's
// generalization search - exact signature first, progressively more
// wildcard-substituted ones after - with one extra pass for wildcard
// call sites: if any argument type is already the wildcard and no
// generalized signature matched, any registered implementation of the
// same name and arity is accepted. At that point the generated code is
// itself type-agnostic and the target runtime will coerce or fail at
// execution time, not compile time. The fallback can pick a
// semantically wrong overload for a mistyped value; see DESIGN.md
// before tightening or loosening it.
func (s *StdLib[E]) Lookup(name string, args []types.Type) (EmitFunc[E], error) {
	var found EmitFunc[E]
	ok := types.Generalizations(args, func(gen []types.Type) bool {
		fn, hit := s.exact[types.Signature(name, gen)]
		if hit {
			found = fn
		}
		return hit
	})
	if ok {
		return found, nil
	}

	if hasWildcard(args) {
		if impls := s.byArity[arityKey(name, len(args))]; len(impls) > 0 {
			return impls[0], nil
		}
	}

	return nil, &DispatchError{Name: name, Args: append([]types.Type(nil), args...)}
}

func hasWildcard(args []types.Type) bool {
	for _, a := range args {
		if a.IsWildcard() {
			return true
		}
	}
	return false
}

func arityKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}
