package parser

import (
	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/token"
)

// parseTypeDef parses type Name = <type expression>.
func (p *Parser) parseTypeDef() (ast.Expr, error) {
	if _, err := p.expect(token.TYPE); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &ast.TypeDef{Name: name.Lexeme, Type: typ}, nil
}

// parseTypeExpr parses a union of type terms, T | U | V.
func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	first, err := p.parseTypeTerm()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.PIPE {
		return first, nil
	}
	alts := []ast.TypeExpr{first}
	for p.cur.Kind == token.PIPE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseTypeTerm()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	return &ast.UnionType{Alts: alts}, nil
}

// parseTypeTerm parses a single type term: a reference, a labelled
// constraint label(T), an array type [T], or an object schema.
func (p *Parser) parseTypeTerm() (ast.TypeExpr, error) {
	switch p.cur.Kind {
	case token.IDENT:
		name := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == token.LPAREN {
			if err := p.advance(); err != nil {
				return nil, err
			}
			elem, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			return &ast.Constraint{Label: name.Lexeme, Elem: elem}, nil
		}
		return &ast.TypeRef{Name: name.Lexeme, Offset: name.Offset}, nil

	case token.LBRACK:
		if err := p.advance(); err != nil {
			return nil, err
		}
		elem, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACK); err != nil {
			return nil, err
		}
		return &ast.ArrayType{Elem: elem}, nil

	case token.LBRACE:
		return p.parseObjectSchema()
	}
	return nil, p.errUnexpected("type expression")
}

// parseObjectSchema parses {name: T, other?: U, ...}. A trailing ...
// marks the schema as tolerating extra attributes.
func (p *Parser) parseObjectSchema() (ast.TypeExpr, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	schema := &ast.ObjectSchema{}
	for p.cur.Kind != token.RBRACE {
		if p.cur.Kind == token.RANGE_EX {
			schema.Extra = true
			if err := p.advance(); err != nil {
				return nil, err
			}
			break
		}
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		optional, err := p.accept(token.QUESTION)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		schema.Fields = append(schema.Fields, ast.SchemaField{
			Name:     name.Lexeme,
			Optional: optional,
			Type:     typ,
		})

		ok, err := p.accept(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return schema, nil
}
