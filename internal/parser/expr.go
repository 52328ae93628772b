package parser

import (
	"github.com/elolang/elo/internal/ast"
	"github.com/elolang/elo/internal/token"
)

// parseExpr is the grammar's entry point. let and if are recognized here
// so they may appear anywhere an expression is expected, including pipe
// right-hand sides and let binding bodies.
func (p *Parser) parseExpr() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.cur.Kind {
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	}
	return p.parsePipe()
}

// parsePipe handles a |> f and a |> f(x), desugaring left-associatively
// into ordinary calls: f(a) and f(a, x).
func (p *Parser) parsePipe() (ast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.PIPE_GT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		target, err := p.parsePipeTarget()
		if err != nil {
			return nil, err
		}
		left = pipeApply(left, target)
	}
	return left, nil
}

func (p *Parser) parsePipeTarget() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	}
	return p.parsePostfix()
}

// pipeApply turns the piped value into the first argument of the target.
func pipeApply(arg, target ast.Expr) ast.Expr {
	switch t := target.(type) {
	case *ast.Var:
		return &ast.Call{Name: t.Name, Args: []ast.Expr{arg}, Offset: t.Offset}
	case *ast.Call:
		t.Args = append([]ast.Expr{arg}, t.Args...)
		return t
	case *ast.AppliedLambda:
		t.Args = append([]ast.Expr{arg}, t.Args...)
		return t
	default:
		return &ast.AppliedLambda{Fn: target, Args: []ast.Expr{arg}}
	}
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.OR_OR {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseAlternative()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.AND_AND {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

// parseAlternative handles a | b | c, the first-non-null chain. The |
// of a predicate literal never reaches here: it is consumed inside the
// parameter list by parseFn. Logical or lexes as || and is handled one
// level up.
func (p *Parser) parseAlternative() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.PIPE {
		return left, nil
	}

	exprs := []ast.Expr{left}
	for p.cur.Kind == token.PIPE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, next)
	}
	return &ast.Alternative{Exprs: exprs}, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.EQ_EQ || p.cur.Kind == token.NOT_EQ {
		op := p.cur.Kind.String()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAddition()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case token.LESS, token.LESS_EQ, token.GREATER, token.GREATER_EQ:
			op := p.cur.Kind.String()
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseAddition()
			if err != nil {
				return nil, err
			}
			left = &ast.Binary{Op: op, Left: left, Right: right}

		case token.IN, token.NOT:
			expr, ok, err := p.parseRangeMembership(left)
			if err != nil {
				return nil, err
			}
			if !ok {
				return left, nil
			}
			left = expr

		default:
			return left, nil
		}
	}
}

func (p *Parser) parseAddition() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := p.cur.Kind.String()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.STAR || p.cur.Kind == token.SLASH || p.cur.Kind == token.PERCENT {
		op := p.cur.Kind.String()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parsePower handles ^, right-associative.
func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.CARET {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: "^", Left: left, Right: right}, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.BANG:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "!", Operand: operand}, nil
	case token.MINUS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: "-", Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles calls and member access, both left-associative.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case token.LPAREN:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = applyCall(expr, args)

		case token.DOT:
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{Target: expr, Name: name.Lexeme}

		default:
			return expr, nil
		}
	}
}

// applyCall decides what kind of call node a postfix argument list
// produces. Calling a bare name is a Call; anything else - a function
// literal, a previous call's result - is an immediate application.
func applyCall(callee ast.Expr, args []ast.Expr) ast.Expr {
	if v, ok := callee.(*ast.Var); ok {
		return &ast.Call{Name: v.Name, Args: args, Offset: v.Offset}
	}
	return &ast.AppliedLambda{Fn: callee, Args: args}
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	args := []ast.Expr{}
	if p.cur.Kind == token.RPAREN {
		return args, p.advance()
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		ok, err := p.accept(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.NUMBER:
		tok := p.cur
		return &ast.Number{Text: tok.Lexeme, Offset: tok.Offset}, p.advance()
	case token.STRING:
		tok := p.cur
		return &ast.String{Value: unquote(tok.Lexeme)}, p.advance()
	case token.TRUE:
		return &ast.Bool{Value: true}, p.advance()
	case token.FALSE:
		return &ast.Bool{Value: false}, p.advance()
	case token.NULL:
		return &ast.Null{}, p.advance()
	case token.DATE:
		tok := p.cur
		return &ast.Date{Text: tok.Lexeme[1:]}, p.advance()
	case token.DATETIME:
		tok := p.cur
		return &ast.DateTime{Text: tok.Lexeme[1:]}, p.advance()
	case token.DURATION:
		tok := p.cur
		return &ast.Duration{Text: tok.Lexeme}, p.advance()
	case token.IDENT:
		tok := p.cur
		return &ast.Var{Name: tok.Lexeme, Offset: tok.Offset}, p.advance()
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBRACE:
		return p.parseObject()
	case token.LBRACK:
		return p.parseArray()
	case token.FN:
		return p.parseFn()
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	}
	return nil, p.errUnexpected("expression")
}

// parseLet parses let a = x, b = y in body and desugars the binding list
// into nested single-binding lets: each binding value sees only earlier
// bindings, the body sees all of them. Binding values parse at the
// or-level so an unparenthesized nested let cannot swallow the rest of
// the binding list.
func (p *Parser) parseLet() (ast.Expr, error) {
	if _, err := p.expect(token.LET); err != nil {
		return nil, err
	}

	type binding struct {
		name  string
		value ast.Expr
	}
	var bindings []binding
	for {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.EQ); err != nil {
			return nil, err
		}
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding{name.Lexeme, value})

		ok, err := p.accept(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}

	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	for i := len(bindings) - 1; i >= 0; i-- {
		body = &ast.Let{Name: bindings[i].name, Value: bindings[i].value, Body: body}
	}
	return body, nil
}

func (p *Parser) parseIf() (ast.Expr, error) {
	if _, err := p.expect(token.IF); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Cond{Cond: cond, Then: then, Else: els}, nil
}

// parseFn parses a function literal. The separator after the parameter
// list decides the flavor: ~> introduces a value-returning lambda, |
// a boolean-returning predicate.
func (p *Parser) parseFn() (ast.Expr, error) {
	if _, err := p.expect(token.FN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []string
	for p.cur.Kind == token.IDENT {
		params = append(params, p.cur.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
		ok, err := p.accept(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}

	predicate := false
	switch p.cur.Kind {
	case token.TILDE_GT:
		// value lambda
	case token.PIPE:
		predicate = true
	default:
		return nil, p.errUnexpected("~> or | after parameter list")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if predicate {
		return &ast.Predicate{Params: params, Body: body}, nil
	}
	return &ast.Lambda{Params: params, Body: body}, nil
}

func (p *Parser) parseObject() (ast.Expr, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	obj := &ast.Object{}
	if p.cur.Kind == token.RBRACE {
		return obj, p.advance()
	}
	for {
		var name string
		switch p.cur.Kind {
		case token.IDENT:
			name = p.cur.Lexeme
		case token.STRING:
			name = unquote(p.cur.Lexeme)
		default:
			return nil, p.errUnexpected("object field name")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		obj.Fields = append(obj.Fields, ast.ObjectField{Name: name, Value: value})

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
	return obj, nil
}

func (p *Parser) parseArray() (ast.Expr, error) {
	if _, err := p.expect(token.LBRACK); err != nil {
		return nil, err
	}
	arr := &ast.Array{}
	if p.cur.Kind == token.RBRACK {
		return arr, p.advance()
	}
	for {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, elem)
		ok, err := p.accept(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	if _, err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}
	return arr, nil
}
