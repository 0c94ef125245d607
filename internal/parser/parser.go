// Package parser implements a hand-written recursive-descent parser with
// precedence-climbing for expressions, per spec.md §4.2. It turns a token
// stream from internal/lexer into an *ast.Program.
package parser

import (
	"fmt"

	"github.com/j8sim/engine/internal/ast"
	"github.com/j8sim/engine/internal/lexer"
)

// Precedence levels, lowest to highest, matching spec.md §4.2's table.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = += -= *= /=
	TERNARY     // ?:
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	EQUALS      // == !=
	COMPARE     // < <= > >= instanceof
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // ! - ++ --
	CALL        // f(args)
	INDEX       // a[i]
	MEMBER      // a.b a::b
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN: ASSIGN, lexer.PLUS_ASSIGN: ASSIGN, lexer.MINUS_ASSIGN: ASSIGN,
	lexer.STAR_ASSIGN: ASSIGN, lexer.SLASH_ASSIGN: ASSIGN,
	lexer.QUESTION:    TERNARY,
	lexer.OR_OR:       LOGIC_OR,
	lexer.AND_AND:     LOGIC_AND,
	lexer.EQ:          EQUALS,
	lexer.NOT_EQ:      EQUALS,
	lexer.LT:          COMPARE,
	lexer.LT_EQ:       COMPARE,
	lexer.GT:          COMPARE,
	lexer.GT_EQ:       COMPARE,
	lexer.INSTANCEOF:  COMPARE,
	lexer.PLUS:        SUM,
	lexer.MINUS:       SUM,
	lexer.STAR:        PRODUCT,
	lexer.SLASH:       PRODUCT,
	lexer.PERCENT:     PRODUCT,
	lexer.LPAREN:      CALL,
	lexer.LBRACKET:    INDEX,
	lexer.DOT:         MEMBER,
	lexer.COLON_COLON: MEMBER,
	lexer.INC:         MEMBER,
	lexer.DEC:         MEMBER,
}

// ParseError is a structured parse failure with a source position, per
// spec.md §4.2 ("all parse failures throw a structured ParseError").
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser is the Java-8 subset recursive-descent parser.
type Parser struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token

	errors []*ParseError

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:     p.parseIdentifier,
		lexer.INT:       p.parseIntegerLiteral,
		lexer.FLOAT:     p.parseFloatLiteral,
		lexer.STRING:    p.parseStringLiteral,
		lexer.CHAR:      p.parseCharLiteral,
		lexer.TRUE:      p.parseBooleanLiteral,
		lexer.FALSE:     p.parseBooleanLiteral,
		lexer.NULL:      p.parseNullLiteral,
		lexer.THIS:      p.parseThis,
		lexer.SUPER:     p.parseSuper,
		lexer.NEW:       p.parseNew,
		lexer.LPAREN:    p.parseParenOrCastOrLambda,
		lexer.NOT:       p.parsePrefix,
		lexer.MINUS:     p.parsePrefix,
		lexer.PLUS:      p.parsePrefix,
		lexer.INC:       p.parsePrefix,
		lexer.DEC:       p.parsePrefix,
		lexer.INT_TYPE: p.parsePrimitiveCastDummy, lexer.LONG_TYPE: p.parsePrimitiveCastDummy,
		lexer.FLOAT_TYPE: p.parsePrimitiveCastDummy, lexer.DOUBLE_TYPE: p.parsePrimitiveCastDummy,
		lexer.BOOLEAN_TYPE: p.parsePrimitiveCastDummy, lexer.CHAR_TYPE: p.parsePrimitiveCastDummy,
		lexer.BYTE_TYPE: p.parsePrimitiveCastDummy, lexer.SHORT_TYPE: p.parsePrimitiveCastDummy,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS: p.parseBinary, lexer.MINUS: p.parseBinary, lexer.STAR: p.parseBinary,
		lexer.SLASH: p.parseBinary, lexer.PERCENT: p.parseBinary,
		lexer.EQ: p.parseBinary, lexer.NOT_EQ: p.parseBinary,
		lexer.LT: p.parseBinary, lexer.LT_EQ: p.parseBinary, lexer.GT: p.parseBinary, lexer.GT_EQ: p.parseBinary,
		lexer.AND_AND: p.parseBinary, lexer.OR_OR: p.parseBinary,
		lexer.INSTANCEOF: p.parseInstanceOf,
		lexer.ASSIGN:     p.parseAssign, lexer.PLUS_ASSIGN: p.parseAssign, lexer.MINUS_ASSIGN: p.parseAssign,
		lexer.STAR_ASSIGN: p.parseAssign, lexer.SLASH_ASSIGN: p.parseAssign,
		lexer.QUESTION: p.parseTernary,
		lexer.LPAREN:   p.parseCall,
		lexer.LBRACKET: p.parseIndex,
		lexer.DOT:      p.parseFieldAccess,
		lexer.INC:      p.parsePostfix,
		lexer.DEC:      p.parsePostfix,
		lexer.COLON_COLON: p.parseMethodRef,
	}

	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// Errors returns the accumulated structured parse errors.
func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.cur
	if !p.curIs(tt) {
		p.errorf(p.cur.Pos, "expected %s, got %s (%q)", tt, p.cur.Type, p.cur.Literal)
	} else {
		p.next()
	}
	return tok
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream into an *ast.Program, skipping
// package/import declarations and annotations per spec.md §4.2.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		p.skipAnnotations()
		switch {
		case p.curIs(lexer.PACKAGE), p.curIs(lexer.IMPORT):
			p.skipSimpleDeclaration()
		case p.curIs(lexer.ENUM):
			p.skipEnumDecl()
		case p.curIs(lexer.CLASS):
			if d := p.parseClassDecl(); d != nil {
				prog.Declarations = append(prog.Declarations, d)
			}
		case p.curIs(lexer.INTERFACE):
			if d := p.parseInterfaceDecl(); d != nil {
				prog.Declarations = append(prog.Declarations, d)
			}
		case p.curIs(lexer.PUBLIC), p.curIs(lexer.ABSTRACT), p.curIs(lexer.FINAL):
			// leading modifiers on a top-level class/interface declaration.
			mods := p.parseModifiers()
			if p.curIs(lexer.INTERFACE) {
				if d := p.parseInterfaceDecl(); d != nil {
					prog.Declarations = append(prog.Declarations, d)
				}
			} else if p.curIs(lexer.CLASS) {
				if d := p.parseClassDecl(); d != nil {
					d.IsAbstract = contains(mods, "abstract")
					prog.Declarations = append(prog.Declarations, d)
				}
			} else {
				p.errorf(p.cur.Pos, "expected class or interface declaration, got %s", p.cur.Type)
				p.next()
			}
		default:
			p.errorf(p.cur.Pos, "unexpected token %s at top level", p.cur.Type)
			p.next()
		}
	}
	return prog
}

// skipAnnotations discards `@Name` and `@Name(...)` at any position, per
// spec.md §4.2.
func (p *Parser) skipAnnotations() {
	for p.curIs(lexer.AT) {
		p.next()
		p.expect(lexer.IDENT)
		if p.curIs(lexer.LPAREN) {
			depth := 0
			for {
				if p.curIs(lexer.LPAREN) {
					depth++
				} else if p.curIs(lexer.RPAREN) {
					depth--
					if depth == 0 {
						p.next()
						break
					}
				} else if p.curIs(lexer.EOF) {
					break
				}
				p.next()
			}
		}
	}
}

// skipSimpleDeclaration discards a `package a.b.c;` or `import a.b.C;`
// statement.
func (p *Parser) skipSimpleDeclaration() {
	for !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.EOF) {
		p.next()
	}
	if p.curIs(lexer.SEMICOLON) {
		p.next()
	}
}

// skipEnumDecl brace-matches and discards an `enum Name { ... }` per
// spec.md §4.2.
func (p *Parser) skipEnumDecl() {
	p.next() // 'enum'
	if p.curIs(lexer.IDENT) {
		p.next()
	}
	if p.curIs(lexer.IMPLEMENTS) {
		p.next()
		for !p.curIs(lexer.LBRACE) && !p.curIs(lexer.EOF) {
			p.next()
		}
	}
	if !p.curIs(lexer.LBRACE) {
		return
	}
	depth := 0
	for {
		if p.curIs(lexer.LBRACE) {
			depth++
		} else if p.curIs(lexer.RBRACE) {
			depth--
			if depth == 0 {
				p.next()
				return
			}
		} else if p.curIs(lexer.EOF) {
			return
		}
		p.next()
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
