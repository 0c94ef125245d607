package lexer

import "fmt"

// Position identifies a location in source text by line, column, and byte
// offset. Columns are counted in runes, not bytes or display cells, so
// multi-byte UTF-8 sequences each count once.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column" for diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit: its category, literal text, and the
// source position at which it starts.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// NewToken constructs a Token from a single-rune literal at pos.
func NewToken(tt TokenType, ch rune, pos Position) Token {
	return Token{Type: tt, Literal: string(ch), Pos: pos}
}
