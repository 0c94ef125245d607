package engine

import "testing"

func TestCompileHelloWorld(t *testing.T) {
	source := `
public class HelloWorld {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}
`
	prog, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	if prog.MainClass != "HelloWorld" {
		t.Fatalf("MainClass = %q, want HelloWorld", prog.MainClass)
	}
}

func TestCompileLexError(t *testing.T) {
	source := `public class Broken { String s = "unterminated }`
	_, err := Compile(source)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
	ce, ok := err.(*CompilationError)
	if !ok {
		t.Fatalf("error type = %T, want *CompilationError", err)
	}
	if len(ce.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	if ce.Diagnostics[0].Stage != "lex" {
		t.Fatalf("Stage = %q, want lex", ce.Diagnostics[0].Stage)
	}
}

func TestCompileParseError(t *testing.T) {
	source := `public class Broken { void m( { } }`
	_, err := Compile(source)
	if err == nil {
		t.Fatal("expected a parse error for a malformed parameter list")
	}
	ce, ok := err.(*CompilationError)
	if !ok {
		t.Fatalf("error type = %T, want *CompilationError", err)
	}
	if ce.Diagnostics[0].Stage != "parse" {
		t.Fatalf("Stage = %q, want parse", ce.Diagnostics[0].Stage)
	}
}
