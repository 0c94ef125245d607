package stdlib

import (
	"strings"

	"github.com/j8sim/engine/internal/vm"
)

// str renders v the way ValueToString would, for stdlib methods that accept
// "any value" arguments (e.g. concat, List.add).
func str(v vm.Value, ip *vm.Interpreter) string {
	return vm.ValueToString(v, ip.State().Heap)
}

func argStr(args []vm.Value, i int, ip *vm.Interpreter) string {
	if i >= len(args) {
		return ""
	}
	return str(args[i], ip)
}

func argInt(args []vm.Value, i int) int64 {
	if i >= len(args) {
		return 0
	}
	return args[i].AsInt64()
}

func argFloat(args []vm.Value, i int) float64 {
	if i >= len(args) {
		return 0
	}
	return args[i].AsFloat64()
}

// heapObj fetches the HeapObject backing a ref/array Value, or nil.
func heapObj(ip *vm.Interpreter, v vm.Value) *vm.HeapObject {
	if v.Kind != vm.KindRef && v.Kind != vm.KindArray {
		return nil
	}
	obj, ok := ip.State().Heap.Objects[v.Ref]
	if !ok {
		return nil
	}
	return obj
}

// classNameContains matches spec.md §4.5's "any class whose name contains
// Map/Set" rule.
func classNameContains(substr string) func(string) bool {
	return func(class string) bool { return strings.Contains(class, substr) }
}

// containsAny matches spec.md §4.5's List/Deque/Queue family, whose real
// JDK names (ArrayList, LinkedList, Stack, Vector, ArrayDeque,
// PriorityQueue, ...) don't share one substring.
func containsAny(substrs ...string) func(string) bool {
	return func(class string) bool {
		for _, s := range substrs {
			if strings.Contains(class, s) {
				return true
			}
		}
		return false
	}
}

func exactly(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(class string) bool { return set[class] }
}

func boolVal(b bool) vm.Value { return vm.BoolValue(b) }
func intVal(i int) vm.Value  { return vm.IntValue(int64(i)) }
func voidVal() vm.Value      { return vm.NullValue() }
