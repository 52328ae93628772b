package codegen

// Side identifies which operand of a parent operator a child is.
type Side int

const (
	Left Side = iota
	Right
)

// PrecTable maps a target's operator spellings to binding powers.
// Higher binds tighter. Operators absent from the table are treated as
// atoms and never parenthesized.
type PrecTable struct {
	// Prec is the binding power per operator.
	Prec map[string]int

	// NonAssoc lists operators whose identical-precedence right
	// operand must stay parenthesized: a - (b - c) is not a - b - c.
	NonAssoc map[string]bool

	// RightAssoc lists operators that group to the right, so their
	// identical-precedence left operand needs the parens instead.
	RightAssoc map[string]bool
}

// NeedsParens reports whether a child expression using childOp needs
// parentheses when emitted as the given side's operand of parentOp.
func (t PrecTable) NeedsParens(parentOp, childOp string, side Side) bool {
	parent, ok := t.Prec[parentOp]
	if !ok {
		return false
	}
	child, ok := t.Prec[childOp]
	if !ok {
		return false
	}
	if child < parent {
		return true
	}
	if child > parent {
		return false
	}
	if t.RightAssoc[parentOp] {
		return side == Left
	}
	if side == Right {
		return t.NonAssoc[parentOp]
	}
	return false
}
