package stdlib

import (
	"math"
	"testing"

	"github.com/j8sim/engine/internal/bytecode"
	"github.com/j8sim/engine/internal/vm"
)

// newTestInterpreter builds an Interpreter with no compiled program, just
// enough state (heap, static fields) for a stdlib handler to run in
// isolation, the same shape internal/vm/monitor_test.go uses for hand-built
// instruction streams.
func newTestInterpreter(t *testing.T) *vm.Interpreter {
	t.Helper()
	st := vm.NewVMState(bytecode.NewCompiledProgram())
	ip := vm.NewInterpreter(st)
	ip.SetStdlib(New())
	return ip
}

func invoke(t *testing.T, ip *vm.Interpreter, class, method string, recv vm.Value, args ...vm.Value) vm.Value {
	t.Helper()
	reg := New()
	ok, ret, _ := reg.Invoke(ip, ip.State().Threads[0], class, method, args, recv, recv.Kind == vm.KindNull)
	if !ok {
		t.Fatalf("stdlib did not recognise %s.%s/%d", class, method, len(args))
	}
	return ret
}

func TestStringLength(t *testing.T) {
	ip := newTestInterpreter(t)
	got := invoke(t, ip, "String", "length", vm.StringValue("hello"))
	if got.AsInt64() != 5 {
		t.Fatalf("length = %d, want 5", got.AsInt64())
	}
}

func TestStringToUpperCase(t *testing.T) {
	ip := newTestInterpreter(t)
	got := invoke(t, ip, "String", "toUpperCase", vm.StringValue("hi there"))
	if got.S != "HI THERE" {
		t.Fatalf("toUpperCase = %q, want %q", got.S, "HI THERE")
	}
}

func TestStringSubstring(t *testing.T) {
	ip := newTestInterpreter(t)
	got := invoke(t, ip, "String", "substring", vm.StringValue("hello world"), vm.IntValue(6))
	if got.S != "world" {
		t.Fatalf("substring(6) = %q, want %q", got.S, "world")
	}
}

func TestMathMax(t *testing.T) {
	ip := newTestInterpreter(t)
	got := invoke(t, ip, "Math", "max", vm.NullValue(), vm.IntValue(3), vm.IntValue(7))
	if got.AsInt64() != 7 {
		t.Fatalf("Math.max(3,7) = %d, want 7", got.AsInt64())
	}
}

func TestMathPI(t *testing.T) {
	ip := newTestInterpreter(t)
	got := invoke(t, ip, "Math", "PI", vm.NullValue())
	if got.AsFloat64() != math.Pi {
		t.Fatalf("Math.PI = %v, want %v", got.AsFloat64(), math.Pi)
	}
}

func TestListAddAndGet(t *testing.T) {
	ip := newTestInterpreter(t)
	obj := ip.State().Heap.NewObject("ArrayList")
	recv := vm.RefValue(obj.ID)

	invoke(t, ip, "ArrayList", "add", recv, vm.IntValue(10))
	invoke(t, ip, "ArrayList", "add", recv, vm.IntValue(20))

	size := invoke(t, ip, "ArrayList", "size", recv)
	if size.AsInt64() != 2 {
		t.Fatalf("size = %d, want 2", size.AsInt64())
	}
	got := invoke(t, ip, "ArrayList", "get", recv, vm.IntValue(1))
	if got.AsInt64() != 20 {
		t.Fatalf("get(1) = %d, want 20", got.AsInt64())
	}
}

func TestListGetOutOfRangeReturnsNull(t *testing.T) {
	ip := newTestInterpreter(t)
	obj := ip.State().Heap.NewObject("ArrayList")
	recv := vm.RefValue(obj.ID)

	got := invoke(t, ip, "ArrayList", "get", recv, vm.IntValue(0))
	if got.Kind != vm.KindNull {
		t.Fatalf("get on empty list = %v, want a null value", got)
	}
}

func TestMapPutGetAndSize(t *testing.T) {
	ip := newTestInterpreter(t)
	obj := ip.State().Heap.NewObject("HashMap")
	recv := vm.RefValue(obj.ID)

	invoke(t, ip, "HashMap", "put", recv, vm.StringValue("a"), vm.IntValue(1))
	invoke(t, ip, "HashMap", "put", recv, vm.StringValue("b"), vm.IntValue(2))

	got := invoke(t, ip, "HashMap", "get", recv, vm.StringValue("a"))
	if got.AsInt64() != 1 {
		t.Fatalf("get(a) = %d, want 1", got.AsInt64())
	}
	size := invoke(t, ip, "HashMap", "size", recv)
	if size.AsInt64() != 2 {
		t.Fatalf("size = %d, want 2", size.AsInt64())
	}
	has := invoke(t, ip, "HashMap", "containsKey", recv, vm.StringValue("z"))
	if has.B {
		t.Fatal("containsKey(z) = true, want false")
	}
}

func TestMapPutOverwritesReturnsOldValue(t *testing.T) {
	ip := newTestInterpreter(t)
	obj := ip.State().Heap.NewObject("HashMap")
	recv := vm.RefValue(obj.ID)

	invoke(t, ip, "HashMap", "put", recv, vm.StringValue("a"), vm.IntValue(1))
	old := invoke(t, ip, "HashMap", "put", recv, vm.StringValue("a"), vm.IntValue(99))
	if old.AsInt64() != 1 {
		t.Fatalf("put returned old value %d, want 1", old.AsInt64())
	}
	got := invoke(t, ip, "HashMap", "get", recv, vm.StringValue("a"))
	if got.AsInt64() != 99 {
		t.Fatalf("get(a) after overwrite = %d, want 99", got.AsInt64())
	}
}

func TestRegistryUnknownMethodFallsThrough(t *testing.T) {
	ip := newTestInterpreter(t)
	reg := New()
	ok, _, _ := reg.Invoke(ip, ip.State().Threads[0], "NotARealClass", "doStuff", nil, vm.NullValue(), true)
	if ok {
		t.Fatal("expected Invoke to report false for an unrecognised class")
	}
}

func TestRegistryThreadSubclassFallback(t *testing.T) {
	prog := bytecode.NewCompiledProgram()
	prog.Classes["Worker"] = &bytecode.CompiledClass{
		Name: "Worker", SuperClass: "Thread", Methods: map[string]*bytecode.CompiledMethod{},
	}
	prog.ClassOrder = []string{"Worker"}
	st := vm.NewVMState(prog)
	ip := vm.NewInterpreter(st)
	ip.SetStdlib(New())

	obj := ip.State().Heap.NewObject("Worker")
	recv := vm.RefValue(obj.ID)

	reg := New()
	ok, _, _ := reg.Invoke(ip, ip.State().Threads[0], "Worker", "start", nil, recv, false)
	if !ok {
		t.Fatal("expected Worker (extends Thread) to resolve start() via the subclass fallback")
	}
}
