package stdlib

import (
	"math/rand"

	"github.com/j8sim/engine/internal/vm"
)

// collectionsFamily implements spec.md §4.5's static Collections helper
// bullet, all operating on the List/Set argument's Elements slice in
// place.
func collectionsFamily() *family {
	f := newFamily("Collections", exactly("Collections"))

	f.on("sort", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		sortNatural(ip, args[0])
		return voidVal(), "Collections.sort"
	})
	f.on("sort", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		sortNatural(ip, args[0])
		return voidVal(), "Collections.sort(comparator) falls back to natural ordering"
	})
	f.on("reverse", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, args[0]); obj != nil {
			obj.Elements = reverseCopy(obj.Elements)
		}
		return voidVal(), "Collections.reverse"
	})
	f.on("shuffle", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, args[0]); obj != nil {
			rand.Shuffle(len(obj.Elements), func(i, j int) {
				obj.Elements[i], obj.Elements[j] = obj.Elements[j], obj.Elements[i]
			})
		}
		return voidVal(), "Collections.shuffle"
	})
	f.on("min", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return extremum(ip, args[0], true), "Collections.min"
	})
	f.on("max", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return extremum(ip, args[0], false), "Collections.max"
	})
	f.on("frequency", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, args[0])
		target := str(args[1], ip)
		count := 0
		for _, e := range elems {
			if str(e, ip) == target {
				count++
			}
		}
		return intVal(count), "Collections.frequency"
	})
	f.on("fill", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, args[0]); obj != nil {
			for i := range obj.Elements {
				obj.Elements[i] = args[1]
			}
		}
		return voidVal(), "Collections.fill"
	})
	f.on("copy", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		dst := heapObj(ip, args[0])
		src := heapObj(ip, args[1])
		if dst != nil && src != nil {
			copy(dst.Elements, src.Elements)
		}
		return voidVal(), "Collections.copy"
	})
	f.on("swap", 3, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, args[0])
		i, j := int(argInt(args, 1)), int(argInt(args, 2))
		if obj != nil && i >= 0 && j >= 0 && i < len(obj.Elements) && j < len(obj.Elements) {
			obj.Elements[i], obj.Elements[j] = obj.Elements[j], obj.Elements[i]
		}
		return voidVal(), "Collections.swap"
	})
	f.on("nCopies", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		n := int(argInt(args, 0))
		elems := make([]vm.Value, 0, n)
		for i := 0; i < n; i++ {
			elems = append(elems, args[1])
		}
		return newListLike(ip, "ArrayList", elems), "Collections.nCopies"
	})
	f.on("singleton", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newListLike(ip, "LinkedHashSet", []vm.Value{args[0]}), "Collections.singleton"
	})
	f.on("singletonList", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newListLike(ip, "ArrayList", []vm.Value{args[0]}), "Collections.singletonList"
	})
	f.on("emptyList", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newListLike(ip, "ArrayList", nil), "Collections.emptyList"
	})
	f.on("emptySet", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newListLike(ip, "LinkedHashSet", nil), "Collections.emptySet"
	})
	f.on("emptyMap", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := ip.State().Heap.NewObject("LinkedHashMap")
		return vm.RefValue(obj.ID), "Collections.emptyMap"
	})
	for _, name := range []string{"unmodifiableList", "unmodifiableSet", "unmodifiableMap", "unmodifiableCollection"} {
		f.on(name, 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			return args[0], "Collections." + name + " returns the same reference (no view wrapper)"
		})
	}
	f.on("binarySearch", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, args[0])
		target := str(args[1], ip)
		lo, hi := 0, len(elems)-1
		for lo <= hi {
			mid := (lo + hi) / 2
			cmp := str(elems[mid], ip)
			switch {
			case cmp == target:
				return intVal(mid), "Collections.binarySearch"
			case cmp < target:
				lo = mid + 1
			default:
				hi = mid - 1
			}
		}
		return intVal(-(lo + 1)), "Collections.binarySearch"
	})
	f.on("disjoint", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		a := elementsOf(ip, args[0])
		for _, e := range a {
			if elementIndex(ip, args[1], e) >= 0 {
				return boolVal(false), "Collections.disjoint"
			}
		}
		return boolVal(true), "Collections.disjoint"
	})
	return f
}

func extremum(ip *vm.Interpreter, coll vm.Value, wantMin bool) vm.Value {
	elems := elementsOf(ip, coll)
	if len(elems) == 0 {
		return vm.NullValue()
	}
	best := elems[0]
	for _, e := range elems[1:] {
		cmp := compareNumeric(e, best)
		if !e.IsNumeric() {
			cmp = 0
			if str(e, ip) < str(best, ip) {
				cmp = -1
			} else if str(e, ip) > str(best, ip) {
				cmp = 1
			}
		}
		if (wantMin && cmp < 0) || (!wantMin && cmp > 0) {
			best = e
		}
	}
	return best
}
