package stdlib

import "github.com/j8sim/engine/internal/vm"

// setFamily implements spec.md §4.5's Set bullet: HashSet, LinkedHashSet,
// TreeSet and any class whose name contains "Set". Elements live in the
// receiver's Elements slice, deduplicated by stringified value on add.
func setFamily() *family {
	f := newFamily("Set", classNameContains("Set"))

	f.on("<init>", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		clearElements(ip, recv)
		return voidVal(), "Set.<init>"
	})
	f.on("<init>", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		clearElements(ip, recv)
		if src := heapObj(ip, args[0]); src != nil {
			for _, e := range src.Elements {
				setAdd(ip, recv, e)
			}
		}
		return voidVal(), "Set.<init>"
	})
	f.on("add", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(setAdd(ip, recv, args[0])), "Set.add"
	})
	f.on("contains", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(elementIndex(ip, recv, args[0]) >= 0), "Set.contains"
	})
	f.on("remove", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return boolVal(false), "Set.remove"
		}
		idx := elementIndex(ip, recv, args[0])
		if idx < 0 {
			return boolVal(false), "Set.remove"
		}
		obj.Elements = append(obj.Elements[:idx], obj.Elements[idx+1:]...)
		return boolVal(true), "Set.remove"
	})
	f.on("size", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(len(elementsOf(ip, recv))), "Set.size"
	})
	f.on("isEmpty", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(len(elementsOf(ip, recv)) == 0), "Set.isEmpty"
	})
	f.on("clear", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		clearElements(ip, recv)
		return voidVal(), "Set.clear"
	})
	f.on("iterator", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newIterator(ip, "$SetIterator", recv), "Set.iterator"
	})
	f.on("toArray", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, recv)
		obj := ip.State().Heap.NewArray("Object", len(elems))
		copy(obj.Elements, elems)
		return vm.ArrayValue(obj.ID), "Set.toArray"
	})
	f.on("forEach", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return voidVal(), "Set.forEach is a no-op (lambda bodies are not executed)"
	})
	return f
}

func clearElements(ip *vm.Interpreter, recv vm.Value) {
	if obj := heapObj(ip, recv); obj != nil {
		obj.Elements = nil
	}
}

func elementsOf(ip *vm.Interpreter, recv vm.Value) []vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil {
		return nil
	}
	return obj.Elements
}

func elementIndex(ip *vm.Interpreter, recv, val vm.Value) int {
	obj := heapObj(ip, recv)
	if obj == nil {
		return -1
	}
	target := str(val, ip)
	for i, e := range obj.Elements {
		if str(e, ip) == target {
			return i
		}
	}
	return -1
}

func setAdd(ip *vm.Interpreter, recv, val vm.Value) bool {
	if elementIndex(ip, recv, val) >= 0 {
		return false
	}
	obj := heapObj(ip, recv)
	if obj == nil {
		return false
	}
	obj.Elements = append(obj.Elements, val)
	return true
}
