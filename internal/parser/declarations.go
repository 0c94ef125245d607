package parser

import (
	"github.com/j8sim/engine/internal/ast"
	"github.com/j8sim/engine/internal/lexer"
)

var modifierTokens = map[lexer.TokenType]string{
	lexer.PUBLIC: "public", lexer.PRIVATE: "private", lexer.PROTECTED: "protected",
	lexer.STATIC: "static", lexer.FINAL: "final", lexer.ABSTRACT: "abstract",
	lexer.DEFAULT: "default", lexer.NATIVE: "native", lexer.SYNCHRONIZED: "synchronized",
	lexer.TRANSIENT: "transient", lexer.VOLATILE: "volatile",
}

// parseModifiers consumes a run of modifier keywords, in any order, per
// spec.md §4.2.
func (p *Parser) parseModifiers() []string {
	var mods []string
	for {
		name, ok := modifierTokens[p.cur.Type]
		if !ok {
			return mods
		}
		mods = append(mods, name)
		p.next()
	}
}

func hasMod(mods []string, name string) bool { return contains(mods, name) }

// parseType parses a type reference: a primitive keyword or an identifier,
// optional generic type arguments (preserved only for name reconstruction),
// and trailing `[]` array dimensions, per spec.md §4.2.
func (p *Parser) parseType() *ast.TypeNode {
	tok := p.cur
	ty := &ast.TypeNode{Token: tok}

	if name, ok := primitiveTypeNames[p.cur.Type]; ok {
		ty.Name = name
		p.next()
	} else if p.curIs(lexer.VOID) {
		ty.Name = "void"
		p.next()
	} else {
		ty.Name = p.expect(lexer.IDENT).Literal
		if p.curIs(lexer.LT) {
			ty.TypeArgs = p.parseTypeArgs()
		}
	}

	for p.curIs(lexer.LBRACKET) && p.peekIs(lexer.RBRACKET) {
		p.next()
		p.next()
		ty.ArrayDims++
	}
	return ty
}

var primitiveTypeNames = map[lexer.TokenType]string{
	lexer.INT_TYPE: "int", lexer.LONG_TYPE: "long", lexer.FLOAT_TYPE: "float",
	lexer.DOUBLE_TYPE: "double", lexer.BOOLEAN_TYPE: "boolean", lexer.CHAR_TYPE: "char",
	lexer.BYTE_TYPE: "byte", lexer.SHORT_TYPE: "short",
}

func (p *Parser) parseTypeArgs() []*ast.TypeNode {
	p.expect(lexer.LT)
	var args []*ast.TypeNode
	for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.QUESTION) {
			args = append(args, &ast.TypeNode{Token: p.cur, Name: "?"})
			p.next()
		} else {
			args = append(args, p.parseType())
		}
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.GT)
	return args
}

// looksLikeType reports whether the current token can start a type
// reference, used to tell field/method declarations apart from statements.
func (p *Parser) looksLikeType() bool {
	if _, ok := primitiveTypeNames[p.cur.Type]; ok {
		return true
	}
	return p.curIs(lexer.IDENT)
}

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	tok := p.cur
	p.expect(lexer.CLASS)
	name := p.expect(lexer.IDENT).Literal

	decl := &ast.ClassDecl{Token: tok, Name: name}

	if p.curIs(lexer.EXTENDS) {
		p.next()
		decl.SuperClass = p.expect(lexer.IDENT).Literal
		if p.curIs(lexer.LT) {
			p.parseTypeArgs()
		}
	}
	if p.curIs(lexer.IMPLEMENTS) {
		p.next()
		decl.Interfaces = append(decl.Interfaces, p.expect(lexer.IDENT).Literal)
		for p.curIs(lexer.COMMA) {
			p.next()
			decl.Interfaces = append(decl.Interfaces, p.expect(lexer.IDENT).Literal)
		}
	}

	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		before := p.cur
		p.parseClassMember(decl, name)
		if p.cur == before {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return decl
}

func (p *Parser) parseInterfaceDecl() *ast.InterfaceDecl {
	tok := p.cur
	p.expect(lexer.INTERFACE)
	name := p.expect(lexer.IDENT).Literal

	decl := &ast.InterfaceDecl{Token: tok, Name: name}
	if p.curIs(lexer.EXTENDS) {
		p.next()
		decl.Extends = append(decl.Extends, p.expect(lexer.IDENT).Literal)
		for p.curIs(lexer.COMMA) {
			p.next()
			decl.Extends = append(decl.Extends, p.expect(lexer.IDENT).Literal)
		}
	}

	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		p.skipAnnotations()
		mods := p.parseModifiers()
		if p.curIs(lexer.SEMICOLON) {
			p.next()
			continue
		}
		ret := p.parseType()
		mname := p.expect(lexer.IDENT).Literal
		m := &ast.MethodDecl{Token: p.cur, Modifiers: mods, ReturnType: ret, Name: mname, IsDefault: hasMod(mods, "default")}
		m.Params = p.parseParams()
		p.skipThrowsClause()
		if p.curIs(lexer.LBRACE) {
			m.Body = p.parseBlock()
		} else {
			p.expect(lexer.SEMICOLON)
		}
		decl.Methods = append(decl.Methods, m)
	}
	p.expect(lexer.RBRACE)
	return decl
}

// parseClassMember parses one field, method, or constructor and appends it
// to decl, lowering a comma-separated field group (`int a, b;`) to multiple
// FieldDecl entries per spec.md §4.2.
func (p *Parser) parseClassMember(decl *ast.ClassDecl, className string) {
	p.skipAnnotations()
	if p.curIs(lexer.SEMICOLON) {
		p.next()
		return
	}
	mods := p.parseModifiers()

	if p.curIs(lexer.IDENT) && p.cur.Literal == className && p.peekIs(lexer.LPAREN) {
		ctor := &ast.MethodDecl{Token: p.cur, Modifiers: mods, Name: className, IsConstructor: true}
		p.next()
		ctor.Params = p.parseParams()
		p.skipThrowsClause()
		ctor.Body = p.parseBlock()
		decl.Constructors = append(decl.Constructors, ctor)
		return
	}

	ty := p.parseType()
	name := p.expect(lexer.IDENT).Literal

	if p.curIs(lexer.LPAREN) {
		m := &ast.MethodDecl{
			Token: p.cur, Modifiers: mods, ReturnType: ty, Name: name,
			IsAbstract: hasMod(mods, "abstract"), IsNative: hasMod(mods, "native"),
		}
		m.Params = p.parseParams()
		p.skipThrowsClause()
		if p.curIs(lexer.LBRACE) {
			m.Body = p.parseBlock()
		} else {
			p.expect(lexer.SEMICOLON)
		}
		decl.Methods = append(decl.Methods, m)
		return
	}

	for {
		f := &ast.FieldDecl{Token: p.cur, Modifiers: mods, Type: ty, Name: name}
		if p.curIs(lexer.ASSIGN) {
			p.next()
			f.Init = p.parseExpression(LOWEST)
		}
		decl.Fields = append(decl.Fields, f)
		if !p.curIs(lexer.COMMA) {
			break
		}
		p.next()
		name = p.expect(lexer.IDENT).Literal
	}
	p.expect(lexer.SEMICOLON)
}

func (p *Parser) parseParams() []*ast.Param {
	p.expect(lexer.LPAREN)
	var params []*ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		p.skipAnnotations()
		if p.curIs(lexer.FINAL) {
			p.next()
		}
		ty := p.parseType()
		name := p.expect(lexer.IDENT).Literal
		params = append(params, &ast.Param{Type: ty, Name: name})
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

// skipThrowsClause discards `throws E1, E2` before a method body, per
// spec.md §4.2 ("checked exceptions are accepted syntactically and
// otherwise ignored").
func (p *Parser) skipThrowsClause() {
	if !p.curIs(lexer.THROWS) {
		return
	}
	p.next()
	p.expect(lexer.IDENT)
	for p.curIs(lexer.COMMA) {
		p.next()
		p.expect(lexer.IDENT)
	}
}
