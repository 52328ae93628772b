package parser

import (
	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/token"
)

// Synthetic binding names used when range operands must be evaluated
// exactly once. Double underscores keep them out of the user namespace.
const (
	rangeValueVar = "__range_v"
	rangeLoVar    = "__range_lo"
	rangeHiVar    = "__range_hi"
)

// parseRangeMembership speculatively parses v in lo..hi, v in lo...hi,
// or the not-in forms. The in keyword is ambiguous with the in of a let
// expression, so the parser snapshots its state, tentatively consumes
// [not] in plus a lower bound, and restores the snapshot if no range
// operator follows. Returns ok=false (with no input consumed) when the
// speculation fails.
func (p *Parser) parseRangeMembership(value ast.Expr) (ast.Expr, bool, error) {
	saved := p.save()

	negated := false
	if p.cur.Kind == token.NOT {
		negated = true
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		if p.cur.Kind != token.IN {
			p.restore(saved)
			return nil, false, nil
		}
	}
	if err := p.advance(); err != nil { // 'in'
		return nil, false, err
	}

	lo, err := p.parseAddition()
	if err != nil {
		// The tokens after in did not parse as an expression; this is
		// the let form (or a genuine error that the let parser will
		// report at the right place). Back out.
		p.restore(saved)
		return nil, false, nil
	}

	var exclusive bool
	switch p.cur.Kind {
	case token.RANGE:
		exclusive = false
	case token.RANGE_EX:
		exclusive = true
	default:
		p.restore(saved)
		return nil, false, nil
	}
	if err := p.advance(); err != nil {
		return nil, false, err
	}

	hi, err := p.parseAddition()
	if err != nil {
		return nil, false, err
	}

	return desugarRange(value, lo, hi, exclusive, negated), true, nil
}

// desugarRange rewrites membership as explicit comparisons:
//
//	v in lo..hi      =>  v >= lo && v <= hi
//	v in lo...hi     =>  v >= lo && v < hi
//	v not in lo..hi  =>  !(v >= lo && v <= hi)
//
// Simple operands (literals and variables) are substituted directly.
// Anything else is let-bound first so each operand is evaluated exactly
// once despite appearing twice in the expansion.
func desugarRange(value, lo, hi ast.Expr, exclusive, negated bool) ast.Expr {
	upperOp := "<="
	if exclusive {
		upperOp = "<"
	}

	var expr ast.Expr
	if isSimpleOperand(value) && isSimpleOperand(lo) && isSimpleOperand(hi) {
		expr = &ast.Binary{
			Op:    "&&",
			Left:  &ast.Binary{Op: ">=", Left: value, Right: lo},
			Right: &ast.Binary{Op: upperOp, Left: value, Right: hi},
		}
	} else {
		v := &ast.Var{Name: rangeValueVar}
		l := &ast.Var{Name: rangeLoVar}
		h := &ast.Var{Name: rangeHiVar}
		body := &ast.Binary{
			Op:    "&&",
			Left:  &ast.Binary{Op: ">=", Left: v, Right: l},
			Right: &ast.Binary{Op: upperOp, Left: v, Right: h},
		}
		expr = &ast.Let{Name: rangeValueVar, Value: value,
			Body: &ast.Let{Name: rangeLoVar, Value: lo,
				Body: &ast.Let{Name: rangeHiVar, Value: hi, Body: body}}}
	}

	if negated {
		expr = &ast.Unary{Op: "!", Operand: expr}
	}
	return expr
}

// isSimpleOperand reports whether re-emitting the expression twice is
// safe: literals and variable references only.
func isSimpleOperand(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Number, *ast.String, *ast.Bool, *ast.Null,
		*ast.Date, *ast.DateTime, *ast.Duration, *ast.Var:
		return true
	}
	return false
}
