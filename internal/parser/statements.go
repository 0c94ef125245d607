package parser

import (
	"github.com/j8sim/engine/internal/ast"
	"github.com/j8sim/engine/internal/lexer"
)

type parserSnapshot struct {
	lexerState lexer.LexerState
	cur, peek  lexer.Token
}

func (p *Parser) snapshot() parserSnapshot {
	return parserSnapshot{lexerState: p.l.SaveState(), cur: p.cur, peek: p.peek}
}

func (p *Parser) restore(s parserSnapshot) {
	p.l.RestoreState(s.lexerState)
	p.cur = s.cur
	p.peek = s.peek
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	tok := p.cur
	p.expect(lexer.LBRACE)
	block := &ast.BlockStmt{Token: tok}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if s := p.parseStatement(); s != nil {
			block.Statements = append(block.Statements, s)
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.DO:
		return p.parseDoWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		tok := p.cur
		p.next()
		p.expect(lexer.SEMICOLON)
		return &ast.BreakStmt{Token: tok}
	case lexer.CONTINUE:
		tok := p.cur
		p.next()
		p.expect(lexer.SEMICOLON)
		return &ast.ContinueStmt{Token: tok}
	case lexer.THROW:
		return p.parseThrowStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.SYNCHRONIZED:
		return p.parseSynchronizedStmt()
	case lexer.SWITCH:
		return p.parseSwitchStmt()
	case lexer.SEMICOLON:
		p.next()
		return nil
	case lexer.FINAL:
		return p.parseVarDeclGroup()
	default:
		if p.looksLikeType() && p.isVarDeclAhead() {
			return p.parseVarDeclGroup()
		}
		return p.parseExprStmt()
	}
}

// isVarDeclAhead tentatively parses a type and reports whether it is
// followed by an identifier, the signal that this is a variable
// declaration rather than an expression statement (e.g. a bare method
// call or assignment), per spec.md §4.2.
func (p *Parser) isVarDeclAhead() bool {
	snap := p.snapshot()
	savedErrs := len(p.errors)
	_ = p.parseType()
	ok := p.curIs(lexer.IDENT)
	p.errors = p.errors[:savedErrs]
	p.restore(snap)
	return ok
}

// parseVarDeclGroup parses `[final] Type name [= init] (, name [= init])*;`
// and lowers multi-name groups to a block of VarDeclStmt, per spec.md §4.2.
func (p *Parser) parseVarDeclGroup() ast.Statement {
	tok := p.cur
	if p.curIs(lexer.FINAL) {
		p.next()
	}
	ty := p.parseType()

	first := p.parseOneVarDecl(tok, ty)
	if !p.curIs(lexer.COMMA) {
		p.expect(lexer.SEMICOLON)
		return first
	}

	block := &ast.BlockStmt{Token: tok, Statements: []ast.Statement{first}}
	for p.curIs(lexer.COMMA) {
		p.next()
		block.Statements = append(block.Statements, p.parseOneVarDecl(tok, ty))
	}
	p.expect(lexer.SEMICOLON)
	return block
}

func (p *Parser) parseOneVarDecl(tok lexer.Token, ty *ast.TypeNode) *ast.VarDeclStmt {
	name := p.expect(lexer.IDENT).Literal
	decl := &ast.VarDeclStmt{Token: tok, Type: ty, Name: name}
	if p.curIs(lexer.ASSIGN) {
		p.next()
		decl.Init = p.parseExpression(LOWEST)
	}
	return decl
}

func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(LOWEST)
	p.expect(lexer.SEMICOLON)
	return &ast.ExprStmt{Token: tok, Expr: expr}
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.cur
	p.next()
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	then := p.parseStatement()
	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: then}
	if p.curIs(lexer.ELSE) {
		p.next()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	tok := p.cur
	p.next()
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStmt() ast.Statement {
	tok := p.cur
	p.next()
	body := p.parseStatement()
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	p.expect(lexer.SEMICOLON)
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body, DoWhile: true}
}

// parseForStmt parses both the C-style for and, via a ':' lookahead after
// the loop variable declarator, the enhanced for-each form, per spec.md
// §4.2.
func (p *Parser) parseForStmt() ast.Statement {
	tok := p.cur
	p.next()
	p.expect(lexer.LPAREN)

	if p.looksLikeType() {
		snap := p.snapshot()
		savedErrs := len(p.errors)
		ty := p.parseType()
		if p.curIs(lexer.IDENT) {
			name := p.cur.Literal
			p.next()
			if p.curIs(lexer.COLON) {
				p.next()
				iterable := p.parseExpression(LOWEST)
				p.expect(lexer.RPAREN)
				body := p.parseStatement()
				return &ast.ForEachStmt{Token: tok, VarType: ty, VarName: name, Iterable: iterable, Body: body}
			}
		}
		p.errors = p.errors[:savedErrs]
		p.restore(snap)
	}

	var init ast.Statement
	if !p.curIs(lexer.SEMICOLON) {
		if p.looksLikeType() && p.isVarDeclAhead() {
			ty := p.parseType()
			init = p.parseOneVarDecl(p.cur, ty)
		} else {
			exprTok := p.cur
			init = &ast.ExprStmt{Token: exprTok, Expr: p.parseExpression(LOWEST)}
		}
	}
	p.expect(lexer.SEMICOLON)

	var cond ast.Expression
	if !p.curIs(lexer.SEMICOLON) {
		cond = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMICOLON)

	var post ast.Statement
	if !p.curIs(lexer.RPAREN) {
		postTok := p.cur
		post = &ast.ExprStmt{Token: postTok, Expr: p.parseExpression(LOWEST)}
	}
	p.expect(lexer.RPAREN)

	body := p.parseStatement()
	return &ast.ForStmt{Token: tok, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.cur
	p.next()
	stmt := &ast.ReturnStmt{Token: tok}
	if !p.curIs(lexer.SEMICOLON) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMICOLON)
	return stmt
}

func (p *Parser) parseThrowStmt() ast.Statement {
	tok := p.cur
	p.next()
	value := p.parseExpression(LOWEST)
	p.expect(lexer.SEMICOLON)
	return &ast.ThrowStmt{Token: tok, Value: value}
}

// parseTryStmt parses `try block (catch (Type name) block)* [finally block]`.
// Catch bodies are parsed for structure only; the compiler never emits code
// that runs them, per spec.md §7.
func (p *Parser) parseTryStmt() ast.Statement {
	tok := p.cur
	p.next()
	body := p.parseBlock()
	stmt := &ast.TryStmt{Token: tok, Body: body}

	for p.curIs(lexer.CATCH) {
		catchTok := p.cur
		p.next()
		p.expect(lexer.LPAREN)
		excType := p.parseType()
		for p.curIs(lexer.PIPE) {
			p.next()
			p.parseType()
		}
		excName := p.expect(lexer.IDENT).Literal
		p.expect(lexer.RPAREN)
		catchBody := p.parseBlock()
		stmt.Catches = append(stmt.Catches, &ast.CatchClause{
			Token: catchTok, ExcType: excType, ExcName: excName, Body: catchBody,
		})
	}
	if p.curIs(lexer.FINALLY) {
		p.next()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseSynchronizedStmt() ast.Statement {
	tok := p.cur
	p.next()
	p.expect(lexer.LPAREN)
	lock := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.SynchronizedStmt{Token: tok, Lock: lock, Body: body}
}

func (p *Parser) parseSwitchStmt() ast.Statement {
	tok := p.cur
	p.next()
	p.expect(lexer.LPAREN)
	subject := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	stmt := &ast.SwitchStmt{Token: tok, Subject: subject}
	for p.curIs(lexer.CASE) || p.curIs(lexer.DEFAULT) {
		c := &ast.SwitchCase{}
		if p.curIs(lexer.DEFAULT) {
			c.IsDefault = true
			p.next()
		} else {
			p.next()
			c.Values = append(c.Values, p.parseExpression(LOWEST))
		}
		p.expect(lexer.COLON)
		for !p.curIs(lexer.CASE) && !p.curIs(lexer.DEFAULT) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			if s := p.parseStatement(); s != nil {
				c.Statements = append(c.Statements, s)
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(lexer.RBRACE)
	return stmt
}
