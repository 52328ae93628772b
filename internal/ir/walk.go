package ir

// Walk calls fn for n and every node beneath it, stopping early when fn
// returns false.
func Walk(n Node, fn func(Node) bool) bool {
	if n == nil || !fn(n) {
		return false
	}
	switch v := n.(type) {
	case *Call:
		for _, a := range v.Args {
			if !Walk(a, fn) {
				return false
			}
		}
	case *Apply:
		if !Walk(v.Fn, fn) {
			return false
		}
		for _, a := range v.Args {
			if !Walk(a, fn) {
				return false
			}
		}
	case *Let:
		if !Walk(v.Value, fn) || !Walk(v.Body, fn) {
			return false
		}
	case *Cond:
		if !Walk(v.Cond, fn) || !Walk(v.Then, fn) || !Walk(v.Else, fn) {
			return false
		}
	case *Lambda:
		if !Walk(v.Body, fn) {
			return false
		}
	case *Object:
		for _, f := range v.Fields {
			if !Walk(f.Value, fn) {
				return false
			}
		}
	case *Array:
		for _, e := range v.Elems {
			if !Walk(e, fn) {
				return false
			}
		}
	case *Alternative:
		for _, e := range v.Exprs {
			if !Walk(e, fn) {
				return false
			}
		}
	}
	return true
}

// UsesVar reports whether the tree references a variable by name.
// Hosts use this on the implicit input name to decide whether to wrap
// generated code as a unary function.
func UsesVar(n Node, name string) bool {
	found := false
	Walk(n, func(node Node) bool {
		if v, ok := node.(*Var); ok && v.Name == name {
			found = true
			return false
		}
		return true
	})
	return found
}
