package types

// Registry maps (name, argument types) to a statically known result
// type. It is append-only during construction and read-only afterwards:
// one instance is built per process and shared by every compilation, so
// it must never be mutated after Register calls complete.
type Registry struct {
	sigs map[string]Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sigs: make(map[string]Type)}
}

// Register records the result type for an exact signature.
func (r *Registry) Register(name string, args []Type, result Type) {
	r.sigs[Signature(name, args)] = result
}

// Lookup resolves the result type for a call through the generalization
// search: the exact argument types first, then progressively more
// wildcard-substituted signatures. Unknown signatures resolve to the
// wildcard type.
func (r *Registry) Lookup(name string, args []Type) Type {
	return r.LookupFallback(name, args, func(string, []Type) Type { return Any })
}

// LookupFallback is Lookup with a caller-supplied fallback for the case
// where no generalization matches.
func (r *Registry) LookupFallback(name string, args []Type, fallback func(name string, args []Type) Type) Type {
	var result Type
	found := Generalizations(args, func(gen []Type) bool {
		t, ok := r.sigs[Signature(name, gen)]
		if ok {
			result = t
		}
		return ok
	})
	if found {
		return result
	}
	return fallback(name, args)
}

// Has reports whether an exact signature is registered.
func (r *Registry) Has(name string, args []Type) bool {
	_, ok := r.sigs[Signature(name, args)]
	return ok
}
