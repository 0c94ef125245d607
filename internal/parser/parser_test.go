package parser

import (
	"testing"

	"github.com/j8sim/engine/internal/ast"
	"github.com/j8sim/engine/internal/lexer"
)

func parseOrFail(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestParseSimpleClass(t *testing.T) {
	prog := parseOrFail(t, `
public class HelloWorld {
    public static void main(String[] args) {
        System.out.println("hi");
    }
}
`)
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}
	class, ok := prog.Declarations[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", prog.Declarations[0])
	}
	if class.Name != "HelloWorld" {
		t.Fatalf("class.Name = %q, want %q", class.Name, "HelloWorld")
	}
	if !class.HasMain() {
		t.Fatal("expected HasMain() to be true")
	}
}

func TestParseMultipleTopLevelClasses(t *testing.T) {
	prog := parseOrFail(t, `
class Helper {
    int value;
}

public class App {
    public static void main(String[] args) {}
}
`)
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
}

func TestParseUnqualifiedGenericType(t *testing.T) {
	prog := parseOrFail(t, `
class Box {
    List<Integer> items;
}
`)
	class := prog.Declarations[0].(*ast.ClassDecl)
	if len(class.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(class.Fields))
	}
	if got := class.Fields[0].Type.Name; got != "List" {
		t.Fatalf("field type name = %q, want %q", got, "List")
	}
}

func TestParseQualifiedTypeNameFails(t *testing.T) {
	p := New(lexer.New(`
class Box {
    java.util.List items;
}
`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for a dotted type name")
	}
}

func TestParseForLoopAndIf(t *testing.T) {
	prog := parseOrFail(t, `
class Loop {
    static void run() {
        int total = 0;
        for (int i = 0; i < 5; i++) {
            if (i % 2 == 0) {
                total = total + i;
            } else {
                total = total - i;
            }
        }
    }
}
`)
	class := prog.Declarations[0].(*ast.ClassDecl)
	method := class.Methods[0]
	body := method.Body
	if len(body.Statements) != 2 {
		t.Fatalf("expected 2 statements in method body, got %d", len(body.Statements))
	}
	forStmt, ok := body.Statements[1].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", body.Statements[1])
	}
	ifStmt, ok := forStmt.Body.(*ast.BlockStmt).Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt inside the loop body, got %T", forStmt.Body.(*ast.BlockStmt).Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseThrowsClauseIsDiscarded(t *testing.T) {
	prog := parseOrFail(t, `
class Risky {
    static void run() throws InterruptedException {
        return;
    }
}
`)
	class := prog.Declarations[0].(*ast.ClassDecl)
	if len(class.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(class.Methods))
	}
}

func TestParseBareIdentifierLambda(t *testing.T) {
	prog := parseOrFail(t, `
class Lambdas {
    static void run() {
        Function<Integer, Integer> square = x -> x * x;
    }
}
`)
	class := prog.Declarations[0].(*ast.ClassDecl)
	decl := class.Methods[0].Body.Statements[0].(*ast.VarDeclStmt)
	lambda, ok := decl.Init.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("expected *ast.LambdaExpr, got %T", decl.Init)
	}
	if len(lambda.Params) != 1 || lambda.Params[0] != "x" {
		t.Fatalf("Params = %v, want [x]", lambda.Params)
	}
	if _, ok := lambda.Body.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected the lambda body to be a *ast.BinaryExpr, got %T", lambda.Body)
	}
}

func TestParseParenthesizedLambda(t *testing.T) {
	prog := parseOrFail(t, `
class Lambdas {
    static void run() {
        BiFunction<Integer, Integer, Integer> add = (a, b) -> a + b;
    }
}
`)
	class := prog.Declarations[0].(*ast.ClassDecl)
	decl := class.Methods[0].Body.Statements[0].(*ast.VarDeclStmt)
	lambda, ok := decl.Init.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("expected *ast.LambdaExpr, got %T", decl.Init)
	}
	if len(lambda.Params) != 2 || lambda.Params[0] != "a" || lambda.Params[1] != "b" {
		t.Fatalf("Params = %v, want [a b]", lambda.Params)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseOrFail(t, `
class Expr {
    static int run() {
        return 1 + 2 * 3;
    }
}
`)
	class := prog.Declarations[0].(*ast.ClassDecl)
	ret := class.Methods[0].Body.Statements[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level *ast.BinaryExpr, got %T", ret.Value)
	}
	if bin.Op != "+" {
		t.Fatalf("top-level operator = %q, want %q (multiplication should bind tighter)", bin.Op, "+")
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected right-hand side to be the nested %q expression, got %T", "*", bin.Right)
	}
}
