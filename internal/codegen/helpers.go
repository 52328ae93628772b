package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Helper is one entry of a backend's runtime-helper table: a function
// body injected ahead of generated code, plus the names of other
// helpers its body calls.
type Helper struct {
	Body string
	Deps []string
}

// HelperTable is a static name-to-body mapping. The dispatch framework
// only ever requests helper names; bodies stay here.
type HelperTable map[string]Helper

// Resolve expands the requested helper names to their transitive
// dependency closure and returns the bodies in stable, name-sorted
// order. Only requested helpers and their dependencies are emitted.
func (t HelperTable) Resolve(used map[string]bool) ([]string, error) {
	closure := map[string]bool{}
	var visit func(name string) error
	visit = func(name string) error {
		if closure[name] {
			return nil
		}
		h, ok := t[name]
		if !ok {
			return fmt.Errorf("unknown runtime helper %q", name)
		}
		closure[name] = true
		for _, dep := range h.Deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for name := range used {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(closure))
	for name := range closure {
		names = append(names, name)
	}
	sort.Strings(names)

	bodies := make([]string, len(names))
	for i, name := range names {
		bodies[i] = t[name].Body
	}
	return bodies, nil
}

// Output is the result of one backend compilation.
type Output struct {
	// Expr is the compiled expression in the target idiom.
	Expr string

	// Helpers holds the runtime-helper bodies the expression needs,
	// dependency-closed, in stable order. Empty for targets without
	// runtime helpers.
	Helpers []string

	// UsesInput reports whether the expression references the
	// implicit input value.
	UsesInput bool
}

// Code joins helpers and expression into a single code string.
func (o Output) Code() string {
	if len(o.Helpers) == 0 {
		return o.Expr
	}
	return strings.Join(o.Helpers, "\n") + "\n" + o.Expr
}
