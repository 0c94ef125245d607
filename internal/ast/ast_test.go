package ast

import (
	"testing"

	"github.com/j8sim/engine/internal/lexer"
)

func TestProgramString(t *testing.T) {
	class := &ClassDecl{
		Token: lexer.Token{Type: lexer.CLASS, Literal: "class"},
		Name:  "HelloWorld",
	}
	prog := &Program{Declarations: []Declaration{class}}

	if prog.TokenLiteral() != "class" {
		t.Fatalf("TokenLiteral() = %q, want %q", prog.TokenLiteral(), "class")
	}
}

func TestClassDeclHasMain(t *testing.T) {
	withMain := &ClassDecl{
		Name: "App",
		Methods: []*MethodDecl{
			{Name: "main", Params: []*Param{{Type: &TypeNode{Name: "String", ArrayDims: 1}, Name: "args"}}},
		},
	}
	if !withMain.HasMain() {
		t.Fatal("expected HasMain() to be true")
	}

	withoutMain := &ClassDecl{Name: "Helper"}
	if withoutMain.HasMain() {
		t.Fatal("expected HasMain() to be false")
	}
}

func TestMethodSignature(t *testing.T) {
	m := &MethodDecl{
		Name: "add",
		Params: []*Param{
			{Type: &TypeNode{Name: "int"}, Name: "a"},
			{Type: &TypeNode{Name: "int"}, Name: "b"},
		},
	}
	if got, want := m.Signature(), "add(int,int)"; got != want {
		t.Fatalf("Signature() = %q, want %q", got, want)
	}
}

func TestTypeNodeStringArray(t *testing.T) {
	ty := &TypeNode{Name: "int", ArrayDims: 2}
	if got, want := ty.String(), "int[][]"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
