package bytecode

import (
	"testing"

	"github.com/j8sim/engine/internal/lexer"
	"github.com/j8sim/engine/internal/parser"
)

func compileSource(t *testing.T, src string) *CompiledProgram {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	compiled, errs := Compile(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	return compiled
}

func TestCompileSelectsMainClassRegardlessOfOrder(t *testing.T) {
	compiled := compileSource(t, `
class Helper {
    int value;
}

public class App {
    public static void main(String[] args) {
        System.out.println("hi");
    }
}
`)
	if compiled.MainClass != "App" {
		t.Fatalf("MainClass = %q, want %q", compiled.MainClass, "App")
	}
	if len(compiled.Classes) != 2 {
		t.Fatalf("expected 2 compiled classes, got %d", len(compiled.Classes))
	}
}

func TestCompileMainClassFoundWhenDeclaredFirst(t *testing.T) {
	compiled := compileSource(t, `
public class App {
    public static void main(String[] args) {}
}

class Helper {
    int value;
}
`)
	if compiled.MainClass != "App" {
		t.Fatalf("MainClass = %q, want %q", compiled.MainClass, "App")
	}
}

func TestCompileMethodSignaturesAreIndexed(t *testing.T) {
	compiled := compileSource(t, `
public class Calc {
    static int add(int a, int b) {
        return a + b;
    }

    public static void main(String[] args) {
        System.out.println(add(1, 2));
    }
}
`)
	class := compiled.Classes["Calc"]
	method, ok := class.Methods["add(2)"]
	if !ok {
		t.Fatalf("expected a method indexed as %q, got keys %v", "add(2)", keysOf(class.Methods))
	}
	if method.NumLocals < 2 {
		t.Fatalf("NumLocals = %d, want at least 2 for the two parameters", method.NumLocals)
	}
}

func TestLookupMethodWalksSuperclassChain(t *testing.T) {
	compiled := compileSource(t, `
class Animal {
    void speak() {
        System.out.println("...");
    }
}

class Dog extends Animal {
}

public class App {
    public static void main(String[] args) {}
}
`)
	method, owner := compiled.LookupMethod("Dog", "speak(0)")
	if method == nil {
		t.Fatal("expected speak() to resolve through the superclass chain")
	}
	if owner != "Animal" {
		t.Fatalf("owner = %q, want %q", owner, "Animal")
	}
}

func TestIsSubclassOf(t *testing.T) {
	compiled := compileSource(t, `
interface Greeter {
}

class Animal implements Greeter {
}

class Dog extends Animal {
}

public class App {
    public static void main(String[] args) {}
}
`)
	if !compiled.IsSubclassOf("Dog", "Animal") {
		t.Fatal("expected Dog to be a subclass of Animal")
	}
	if !compiled.IsSubclassOf("Dog", "Greeter") {
		t.Fatal("expected Dog to satisfy the Greeter interface through Animal")
	}
	if compiled.IsSubclassOf("Animal", "Dog") {
		t.Fatal("did not expect Animal to be a subclass of Dog")
	}
}

func TestCompileArrayIndexCompoundAssignIsAnError(t *testing.T) {
	p := parser.New(lexer.New(`
public class App {
    public static void main(String[] args) {
        int[] nums = new int[3];
        nums[0] += 1;
    }
}
`))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	_, errs := Compile(prog)
	if len(errs) == 0 {
		t.Fatal("expected a compile error for a compound assignment to an array element")
	}
}

func TestCompileStaticFieldAccessEmitsInvokeStatic(t *testing.T) {
	compiled := compileSource(t, `
public class App {
    public static void main(String[] args) {
        double r = Math.PI;
    }
}
`)
	method := compiled.Classes["App"].Methods["main(1)"]
	var found *Instruction
	for i := method.StartIndex; i < len(compiled.Instructions); i++ {
		instr := compiled.Instructions[i]
		if instr.Op == INVOKE_STATIC && instr.ClassName == "Math" {
			found = &compiled.Instructions[i]
			break
		}
		if instr.Op == RETURN || instr.Op == RETURN_VALUE {
			break
		}
	}
	if found == nil {
		t.Fatalf("expected an INVOKE_STATIC instruction targeting Math in main()'s body")
	}
	if found.StrOperand != "PI(0)" {
		t.Fatalf("StrOperand = %q, want %q", found.StrOperand, "PI(0)")
	}
	if found.ArgCount != 0 {
		t.Fatalf("ArgCount = %d, want 0", found.ArgCount)
	}
}

func keysOf(m map[string]*CompiledMethod) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
