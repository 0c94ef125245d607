package parser

import (
	"strconv"
	"strings"

	"github.com/j8sim/engine/internal/ast"
	"github.com/j8sim/engine/internal/lexer"
)

// parseExpression is the precedence-climbing entry point: an expression is
// a prefix term followed by zero or more infix extensions whose precedence
// exceeds the caller's floor, per spec.md §4.2.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.errorf(p.cur.Pos, "unexpected token %s (%q) in expression", p.cur.Type, p.cur.Literal)
		p.next()
		return &ast.NullLiteral{Token: p.cur}
	}
	left := prefix()

	for !p.curIs(lexer.SEMICOLON) && precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

// parseIdentifier also covers the bare-identifier lambda form `x -> body`,
// spec.md §4.2's "identifier followed by ->" disambiguation rule; the
// parenthesized form `(a, b) -> body` is handled by tryParseLambda instead.
func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.cur
	if p.peekIs(lexer.ARROW) {
		p.next() // the parameter name
		p.next() // '->'
		var body ast.Node
		if p.curIs(lexer.LBRACE) {
			body = p.parseBlock()
		} else {
			body = p.parseExpression(LOWEST)
		}
		return &ast.LambdaExpr{Token: tok, Params: []string{tok.Literal}, Body: body}
	}
	p.next()
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cur
	lit := strings.TrimSuffix(strings.TrimSuffix(tok.Literal, "L"), "l")
	val, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid integer literal %q", tok.Literal)
	}
	p.next()
	return &ast.IntegerLiteral{Token: tok, Value: val}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.cur
	isF32 := false
	lit := tok.Literal
	if strings.HasSuffix(lit, "f") || strings.HasSuffix(lit, "F") {
		isF32 = true
		lit = lit[:len(lit)-1]
	} else if strings.HasSuffix(lit, "d") || strings.HasSuffix(lit, "D") {
		lit = lit[:len(lit)-1]
	}
	val, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.errorf(tok.Pos, "invalid floating-point literal %q", tok.Literal)
	}
	p.next()
	return &ast.FloatLiteral{Token: tok, Value: val, IsF32: isF32}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur
	p.next()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	tok := p.cur
	p.next()
	r := rune(0)
	if len([]rune(tok.Literal)) > 0 {
		r = []rune(tok.Literal)[0]
	}
	return &ast.CharLiteral{Token: tok, Value: r}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.cur
	p.next()
	return &ast.BooleanLiteral{Token: tok, Value: tok.Type == lexer.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.cur
	p.next()
	return &ast.NullLiteral{Token: tok}
}

func (p *Parser) parseThis() ast.Expression {
	tok := p.cur
	p.next()
	return &ast.ThisExpr{Token: tok}
}

func (p *Parser) parseSuper() ast.Expression {
	tok := p.cur
	p.next()
	return &ast.SuperExpr{Token: tok}
}

// parseNew parses `new ClassName(args...)` or `new Type[dims]...` / `new
// Type[]{elements}`, per spec.md §4.2.
func (p *Parser) parseNew() ast.Expression {
	tok := p.cur
	p.next()

	if _, ok := primitiveTypeNames[p.cur.Type]; ok || p.peekIs(lexer.LBRACKET) {
		elemTok := p.cur
		elemName := p.parseTypeNameOnly()
		elem := &ast.TypeNode{Token: elemTok, Name: elemName}
		expr := &ast.NewArrayExpr{Token: tok, ElemType: elem}
		for p.curIs(lexer.LBRACKET) {
			p.next()
			if p.curIs(lexer.RBRACKET) {
				p.next()
				elem.ArrayDims++
				continue
			}
			expr.Dims = append(expr.Dims, p.parseExpression(LOWEST))
			p.expect(lexer.RBRACKET)
		}
		if p.curIs(lexer.LBRACE) {
			expr.Elements = p.parseArrayInitializer()
		}
		return expr
	}

	className := p.expect(lexer.IDENT).Literal
	if p.curIs(lexer.LT) {
		p.parseTypeArgs()
	}
	expr := &ast.NewObjectExpr{Token: tok, ClassName: className}
	p.expect(lexer.LPAREN)
	expr.Args = p.parseArgs()
	return expr
}

func (p *Parser) parseTypeNameOnly() string {
	if name, ok := primitiveTypeNames[p.cur.Type]; ok {
		p.next()
		return name
	}
	return p.expect(lexer.IDENT).Literal
}

func (p *Parser) parseArrayInitializer() []ast.Expression {
	p.expect(lexer.LBRACE)
	var elems []ast.Expression
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.LBRACE) {
			// nested initializer for a multi-dimensional array literal;
			// represented as a best-effort flattened element for now.
			elems = append(elems, &ast.NewArrayExpr{Token: p.cur, ElemType: &ast.TypeNode{Name: "Object"}, Elements: p.parseArrayInitializer()})
		} else {
			elems = append(elems, p.parseExpression(LOWEST))
		}
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return elems
}

func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur
	op := tok.Literal
	p.next()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: operand, Prefix: true}
}

func (p *Parser) parsePostfix(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tok.Literal
	p.next()
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: left, Prefix: false}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tok.Literal
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Token: tok, Left: left, Op: op, Right: right}
}

func (p *Parser) parseInstanceOf(left ast.Expression) ast.Expression {
	tok := p.cur
	p.next()
	ty := p.parseType()
	return &ast.InstanceOfExpr{Token: tok, Expr: left, Type: ty}
}

func (p *Parser) parseAssign(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tok.Literal
	p.next()
	value := p.parseExpression(ASSIGN - 1)
	return &ast.AssignExpr{Token: tok, Target: left, Op: op, Value: value}
}

func (p *Parser) parseTernary(cond ast.Expression) ast.Expression {
	tok := p.cur
	p.next()
	then := p.parseExpression(LOWEST)
	p.expect(lexer.COLON)
	els := p.parseExpression(TERNARY)
	return &ast.TernaryExpr{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.cur
	p.next()
	args := p.parseArgs()
	return &ast.CallExpr{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseIndex(left ast.Expression) ast.Expression {
	tok := p.cur
	p.next()
	idx := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACKET)
	return &ast.IndexExpr{Token: tok, Array: left, Index: idx}
}

func (p *Parser) parseFieldAccess(left ast.Expression) ast.Expression {
	tok := p.cur
	p.next()
	name := p.expect(lexer.IDENT).Literal
	return &ast.FieldAccessExpr{Token: tok, Object: left, Name: name}
}

func (p *Parser) parseMethodRef(left ast.Expression) ast.Expression {
	tok := p.cur
	p.next()
	method := p.expect(lexer.IDENT).Literal
	return &ast.MethodRefExpr{Token: tok, Object: left, Method: method}
}

// parsePrimitiveCastDummy handles a primitive type appearing where an
// expression is expected: the only legal case is a cast, `(int) x`, which
// is itself driven by parseParenOrCastOrLambda; reaching here at
// expression-prefix position is always an error.
func (p *Parser) parsePrimitiveCastDummy() ast.Expression {
	p.errorf(p.cur.Pos, "unexpected primitive type %s in expression", p.cur.Type)
	tok := p.cur
	p.next()
	return &ast.NullLiteral{Token: tok}
}

// parseParenOrCastOrLambda disambiguates `(expr)`, `(Type) expr` casts, and
// `(params) -> body` lambdas, all of which start with '(' per spec.md §4.2.
func (p *Parser) parseParenOrCastOrLambda() ast.Expression {
	tok := p.cur

	if lam, ok := p.tryParseLambda(tok); ok {
		return lam
	}
	if cast, ok := p.tryParseCast(tok); ok {
		return cast
	}

	p.next() // consume '('
	expr := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return expr
}

// tryParseLambda speculatively parses `(a, b) -> ...` or `() -> ...`,
// restoring parser state on failure.
func (p *Parser) tryParseLambda(tok lexer.Token) (ast.Expression, bool) {
	snap := p.snapshot()
	savedErrs := len(p.errors)

	p.next() // '('
	var params []string
	ok := true
	for !p.curIs(lexer.RPAREN) {
		if !p.curIs(lexer.IDENT) {
			ok = false
			break
		}
		params = append(params, p.cur.Literal)
		p.next()
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if ok && p.curIs(lexer.RPAREN) {
		p.next()
		if p.curIs(lexer.ARROW) {
			p.next()
			var body ast.Node
			if p.curIs(lexer.LBRACE) {
				body = p.parseBlock()
			} else {
				body = p.parseExpression(LOWEST)
			}
			return &ast.LambdaExpr{Token: tok, Params: params, Body: body}, true
		}
	}

	p.errors = p.errors[:savedErrs]
	p.restore(snap)
	return nil, false
}

// tryParseCast speculatively parses `(Type) expr`, restoring parser state
// on failure. A cast is recognised only when the parenthesized content is
// exactly a type reference and what follows it can start an expression.
func (p *Parser) tryParseCast(tok lexer.Token) (ast.Expression, bool) {
	snap := p.snapshot()
	savedErrs := len(p.errors)

	p.next() // '('
	_, isPrimitive := primitiveTypeNames[p.cur.Type]
	if !isPrimitive && !p.curIs(lexer.IDENT) {
		p.errors = p.errors[:savedErrs]
		p.restore(snap)
		return nil, false
	}

	ty := p.parseType()
	if !p.curIs(lexer.RPAREN) {
		p.errors = p.errors[:savedErrs]
		p.restore(snap)
		return nil, false
	}
	p.next() // ')'

	if !isPrimitive && !p.castCanFollow() {
		p.errors = p.errors[:savedErrs]
		p.restore(snap)
		return nil, false
	}

	operand := p.parseExpression(PREFIX)
	return &ast.CastExpr{Token: tok, Type: ty, Expr: operand}, true
}

// castCanFollow reports whether the current token can start the operand of
// a reference-type cast; this rules out `(Counter) + 1` (a parenthesized
// identifier used additively) being misread as a cast.
func (p *Parser) castCanFollow() bool {
	switch p.cur.Type {
	case lexer.IDENT, lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR,
		lexer.TRUE, lexer.FALSE, lexer.NULL, lexer.THIS, lexer.SUPER,
		lexer.NEW, lexer.LPAREN, lexer.NOT:
		return true
	default:
		return false
	}
}
