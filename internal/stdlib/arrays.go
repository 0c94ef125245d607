package stdlib

import "github.com/j8sim/engine/internal/vm"

// arraysFamily implements spec.md §4.5's static Arrays helper bullet,
// operating directly on the array heap object's Elements.
func arraysFamily() *family {
	f := newFamily("Arrays", exactly("Arrays"))

	f.on("sort", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		sortNatural(ip, args[0])
		return voidVal(), "Arrays.sort"
	})
	f.on("fill", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, args[0]); obj != nil {
			for i := range obj.Elements {
				obj.Elements[i] = args[1]
			}
		}
		return voidVal(), "Arrays.fill"
	})
	f.on("copyOf", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		src := heapObj(ip, args[0])
		n := int(argInt(args, 1))
		elemType := "Object"
		if src != nil {
			elemType = src.ArrayElemType
		}
		out := ip.State().Heap.NewArray(elemType, n)
		if src != nil {
			copy(out.Elements, src.Elements)
		}
		return vm.ArrayValue(out.ID), "Arrays.copyOf"
	})
	f.on("copyOfRange", 3, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		src := heapObj(ip, args[0])
		from, to := int(argInt(args, 1)), int(argInt(args, 2))
		elemType := "Object"
		if src != nil {
			elemType = src.ArrayElemType
			from, to = clampRange(from, to, len(src.Elements))
		}
		out := ip.State().Heap.NewArray(elemType, to-from)
		if src != nil {
			copy(out.Elements, src.Elements[from:to])
		}
		return vm.ArrayValue(out.ID), "Arrays.copyOfRange"
	})
	f.on("equals", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		a, b := heapObj(ip, args[0]), heapObj(ip, args[1])
		if a == nil || b == nil {
			return boolVal(a == b), "Arrays.equals"
		}
		if len(a.Elements) != len(b.Elements) {
			return boolVal(false), "Arrays.equals"
		}
		for i := range a.Elements {
			if !vm.ValuesEqual(a.Elements[i], b.Elements[i]) {
				return boolVal(false), "Arrays.equals"
			}
		}
		return boolVal(true), "Arrays.equals"
	})
	f.on("deepEquals", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(false), "Arrays.deepEquals is not modelled for nested arrays"
	})
	f.on("toString", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(javaListString(ip, args[0])), "Arrays.toString"
	})
	f.on("deepToString", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(deepArrayString(ip, args[0])), "Arrays.deepToString"
	})
	f.on("asList", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newListLike(ip, "ArrayList", elementsOf(ip, args[0])), "Arrays.asList"
	})
	f.on("binarySearch", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, args[0])
		target := str(args[1], ip)
		lo, hi := 0, len(elems)-1
		for lo <= hi {
			mid := (lo + hi) / 2
			cmp := str(elems[mid], ip)
			switch {
			case cmp == target:
				return intVal(mid), "Arrays.binarySearch"
			case cmp < target:
				lo = mid + 1
			default:
				hi = mid - 1
			}
		}
		return intVal(-(lo + 1)), "Arrays.binarySearch"
	})
	f.on("stream", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newListLike(ip, "ArrayList", elementsOf(ip, args[0])), "Arrays.stream returns a List snapshot rather than a lazy Stream"
	})
	return f
}

func deepArrayString(ip *vm.Interpreter, v vm.Value) string {
	obj := heapObj(ip, v)
	if obj == nil {
		return "null"
	}
	s := "["
	for i, e := range obj.Elements {
		if i > 0 {
			s += ", "
		}
		if inner := heapObj(ip, e); inner != nil && inner.IsArray {
			s += deepArrayString(ip, e)
		} else {
			s += str(e, ip)
		}
	}
	return s + "]"
}
