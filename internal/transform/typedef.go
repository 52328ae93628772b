package transform

import (
	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/ir"
	"github.com/elolang/elo/internal/types"
)

// LowerTypeDef lowers a type definition, validating that every
// referenced type name is either a built-in or one of the constructor
// names the host declared in advance. The defined name itself is legal
// inside its own body so object schemas can nest.
func (t *Transformer) LowerTypeDef(def *ast.TypeDef, constructors []string) (*ir.TypeDef, error) {
	known := make(map[string]bool, len(constructors)+1)
	for _, c := range constructors {
		known[c] = true
	}
	known[def.Name] = true

	typ, err := t.lowerTypeExpr(def.Type, known)
	if err != nil {
		return nil, err
	}
	return &ir.TypeDef{Name: def.Name, Type: typ}, nil
}

func (t *Transformer) lowerTypeExpr(te ast.TypeExpr, known map[string]bool) (ir.TypeExpr, error) {
	switch e := te.(type) {
	case *ast.TypeRef:
		if _, ok := types.ByName(e.Name); !ok && !known[e.Name] {
			return nil, &Error{
				Code:   ErrCodeUnknownTypeSelector,
				Name:   e.Name,
				Offset: e.Offset,
				Msg:    "unknown type selector",
			}
		}
		return &ir.TypeRef{Name: e.Name}, nil

	case *ast.ObjectSchema:
		schema := &ir.ObjectSchema{Extra: e.Extra}
		for _, f := range e.Fields {
			ft, err := t.lowerTypeExpr(f.Type, known)
			if err != nil {
				return nil, err
			}
			schema.Fields = append(schema.Fields, ir.SchemaField{
				Name:     f.Name,
				Optional: f.Optional,
				Type:     ft,
			})
		}
		return schema, nil

	case *ast.Constraint:
		elem, err := t.lowerTypeExpr(e.Elem, known)
		if err != nil {
			return nil, err
		}
		return &ir.Constraint{Label: e.Label, Elem: elem}, nil

	case *ast.ArrayType:
		elem, err := t.lowerTypeExpr(e.Elem, known)
		if err != nil {
			return nil, err
		}
		return &ir.ArrayType{Elem: elem}, nil

	case *ast.UnionType:
		union := &ir.UnionType{}
		for _, alt := range e.Alts {
			at, err := t.lowerTypeExpr(alt, known)
			if err != nil {
				return nil, err
			}
			union.Alts = append(union.Alts, at)
		}
		return union, nil
	}
	return nil, &Error{Code: ErrCodeUnknownTypeSelector, Msg: "unhandled type expression"}
}
