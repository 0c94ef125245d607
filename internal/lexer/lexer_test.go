package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `int a = 10;
	a = a + 1;
	String s = "hi\n";
	`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{INT_TYPE, "int"},
		{IDENT, "a"},
		{ASSIGN, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{IDENT, "a"},
		{ASSIGN, "="},
		{IDENT, "a"},
		{PLUS, "+"},
		{INT, "1"},
		{SEMICOLON, ";"},
		{IDENT, "String"},
		{IDENT, "s"},
		{ASSIGN, "="},
		{STRING, "hi\n"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	input := `class Foo extends Bar { public static void main() { if (a >= 1 && b != 2) { a->b::c; } } }`
	l := New(input)
	var got []TokenType
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		got = append(got, tok.Type)
	}
	want := []TokenType{
		CLASS, IDENT, EXTENDS, IDENT, LBRACE,
		PUBLIC, STATIC, VOID, IDENT, LPAREN, RPAREN, LBRACE,
		IF, LPAREN, IDENT, GT_EQ, INT, AND_AND, IDENT, NOT_EQ, INT, RPAREN, LBRACE,
		IDENT, ARROW, IDENT, COLON_COLON, IDENT, SEMICOLON,
		RBRACE, RBRACE, RBRACE,
	}
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING token, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one lexer error, got %d", len(l.Errors()))
	}
}

func TestPeekLookahead(t *testing.T) {
	l := New(`a -> b`)
	if l.Peek(1).Type != ARROW {
		t.Fatalf("Peek(1) = %s, want ARROW", l.Peek(1).Type)
	}
	if l.NextToken().Type != IDENT {
		t.Fatal("expected first NextToken to be IDENT")
	}
	if l.NextToken().Type != ARROW {
		t.Fatal("expected second NextToken to be ARROW")
	}
}
