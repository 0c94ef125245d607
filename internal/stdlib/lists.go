package stdlib

import (
	"sort"

	"github.com/j8sim/engine/internal/vm"
)

// listFamily implements spec.md §4.5's List/Deque/Queue bullet: ArrayList,
// LinkedList, Stack, Vector, ArrayDeque, PriorityQueue and friends, all
// backed by the receiver's Elements slice, used positionally regardless of
// which JDK class name compiled the call (no distinct linked-node
// representation for LinkedList, a documented simplification).
func listFamily() *family {
	f := newFamily("List", containsAny("List", "Stack", "Vector", "Deque", "Queue"))

	f.on("<init>", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		clearElements(ip, recv)
		return voidVal(), "List.<init>"
	})
	f.on("<init>", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		clearElements(ip, recv)
		if src := heapObj(ip, args[0]); src != nil {
			obj := heapObj(ip, recv)
			obj.Elements = append(obj.Elements, src.Elements...)
		}
		return voidVal(), "List.<init>"
	})
	f.on("add", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, recv); obj != nil {
			obj.Elements = append(obj.Elements, args[0])
		}
		return boolVal(true), "List.add"
	})
	f.on("add", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return voidVal(), "List.add(index, value)"
		}
		i := clampIndex(int(argInt(args, 0)), len(obj.Elements))
		obj.Elements = insertAt(obj.Elements, i, args[1])
		return voidVal(), "List.add(index, value)"
	})
	f.on("addAll", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		src := heapObj(ip, args[0])
		if obj == nil || src == nil {
			return boolVal(false), "List.addAll"
		}
		obj.Elements = append(obj.Elements, src.Elements...)
		return boolVal(len(src.Elements) > 0), "List.addAll"
	})
	f.on("get", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, recv)
		i := int(argInt(args, 0))
		if i < 0 || i >= len(elems) {
			return vm.NullValue(), "List.get out of range"
		}
		return elems[i], "List.get"
	})
	f.on("set", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		i := int(argInt(args, 0))
		if obj == nil || i < 0 || i >= len(obj.Elements) {
			return vm.NullValue(), "List.set out of range"
		}
		old := obj.Elements[i]
		obj.Elements[i] = args[1]
		return old, "List.set"
	})
	f.on("remove", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.NullValue(), "List.remove"
		}
		if args[0].Kind == vm.KindInt || args[0].Kind == vm.KindLong {
			i := int(argInt(args, 0))
			if i < 0 || i >= len(obj.Elements) {
				return vm.NullValue(), "List.remove(index) out of range"
			}
			removed := obj.Elements[i]
			obj.Elements = append(obj.Elements[:i], obj.Elements[i+1:]...)
			return removed, "List.remove(index)"
		}
		idx := elementIndex(ip, recv, args[0])
		if idx < 0 {
			return boolVal(false), "List.remove(value)"
		}
		obj.Elements = append(obj.Elements[:idx], obj.Elements[idx+1:]...)
		return boolVal(true), "List.remove(value)"
	})
	f.on("removeAll", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		other := heapObj(ip, args[0])
		if obj == nil || other == nil {
			return boolVal(false), "List.removeAll"
		}
		before := len(obj.Elements)
		obj.Elements = filterElements(obj.Elements, other.Elements, ip, false)
		return boolVal(len(obj.Elements) != before), "List.removeAll"
	})
	f.on("retainAll", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		other := heapObj(ip, args[0])
		if obj == nil || other == nil {
			return boolVal(false), "List.retainAll"
		}
		before := len(obj.Elements)
		obj.Elements = filterElements(obj.Elements, other.Elements, ip, true)
		return boolVal(len(obj.Elements) != before), "List.retainAll"
	})
	f.on("size", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(len(elementsOf(ip, recv))), "List.size"
	})
	f.on("isEmpty", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(len(elementsOf(ip, recv)) == 0), "List.isEmpty"
	})
	f.on("contains", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(elementIndex(ip, recv, args[0]) >= 0), "List.contains"
	})
	f.on("containsAll", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		other := heapObj(ip, args[0])
		if other == nil {
			return boolVal(true), "List.containsAll"
		}
		for _, e := range other.Elements {
			if elementIndex(ip, recv, e) < 0 {
				return boolVal(false), "List.containsAll"
			}
		}
		return boolVal(true), "List.containsAll"
	})
	f.on("indexOf", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(elementIndex(ip, recv, args[0])), "List.indexOf"
	})
	f.on("lastIndexOf", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, recv)
		target := str(args[0], ip)
		for i := len(elems) - 1; i >= 0; i-- {
			if str(elems[i], ip) == target {
				return intVal(i), "List.lastIndexOf"
			}
		}
		return intVal(-1), "List.lastIndexOf"
	})
	f.on("clear", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		clearElements(ip, recv)
		return voidVal(), "List.clear"
	})
	for _, name := range []string{"iterator", "listIterator", "descendingIterator"} {
		name := name
		f.on(name, 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			elems := elementsOf(ip, recv)
			if name == "descendingIterator" {
				reversed := ip.State().Heap.NewObject("$ReversedView")
				reversed.Elements = reverseCopy(elems)
				return newIterator(ip, "$ListIterator", vm.RefValue(reversed.ID)), "List.descendingIterator"
			}
			return newIterator(ip, "$ListIterator", recv), "List." + name
		})
	}
	f.on("toArray", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, recv)
		obj := ip.State().Heap.NewArray("Object", len(elems))
		copy(obj.Elements, elems)
		return vm.ArrayValue(obj.ID), "List.toArray"
	})
	f.on("sort", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		sortNatural(ip, recv)
		return voidVal(), "List.sort"
	})
	f.on("sort", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		sortNatural(ip, recv)
		return voidVal(), "List.sort(comparator) falls back to natural ordering: comparator lambdas are not invoked"
	})
	f.on("toString", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(javaListString(ip, recv)), "List.toString"
	})
	f.on("subList", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		elems := elementsOf(ip, recv)
		from, to := clampRange(int(argInt(args, 0)), int(argInt(args, 1)), len(elems))
		return newListLike(ip, classNameOf(ip, recv), append([]vm.Value(nil), elems[from:to]...)), "List.subList"
	})

	// Deque/Queue/Stack vocabulary, all operating on the same Elements slice
	// with index 0 as the head/front.
	f.on("addFirst", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		pushFront(ip, recv, args[0])
		return voidVal(), "Deque.addFirst"
	})
	f.on("offerFirst", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		pushFront(ip, recv, args[0])
		return boolVal(true), "Deque.offerFirst"
	})
	f.on("push", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		pushFront(ip, recv, args[0])
		return voidVal(), "Deque.push"
	})
	f.on("addLast", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, recv); obj != nil {
			obj.Elements = append(obj.Elements, args[0])
		}
		return voidVal(), "Deque.addLast"
	})
	f.on("offerLast", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, recv); obj != nil {
			obj.Elements = append(obj.Elements, args[0])
		}
		return boolVal(true), "Deque.offerLast"
	})
	f.on("offer", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, recv); obj != nil {
			obj.Elements = append(obj.Elements, args[0])
		}
		return boolVal(true), "Queue.offer"
	})
	for _, name := range []string{"removeFirst", "poll", "pop"} {
		name := name
		f.on(name, 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			return popFront(ip, recv), "Deque." + name
		})
	}
	for _, name := range []string{"removeLast", "pollLast"} {
		name := name
		f.on(name, 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			return popBack(ip, recv), "Deque." + name
		})
	}
	for _, name := range []string{"peekFirst", "peek", "element", "getFirst"} {
		name := name
		f.on(name, 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			elems := elementsOf(ip, recv)
			if len(elems) == 0 {
				return vm.NullValue(), "Deque." + name + " on empty deque"
			}
			return elems[0], "Deque." + name
		})
	}
	for _, name := range []string{"peekLast", "getLast"} {
		name := name
		f.on(name, 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			elems := elementsOf(ip, recv)
			if len(elems) == 0 {
				return vm.NullValue(), "Deque." + name + " on empty deque"
			}
			return elems[len(elems)-1], "Deque." + name
		})
	}
	return f
}

func classNameOf(ip *vm.Interpreter, recv vm.Value) string {
	if obj := heapObj(ip, recv); obj != nil {
		return obj.ClassName
	}
	return "ArrayList"
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func clampRange(from, to, length int) (int, int) {
	from = clampIndex(from, length)
	to = clampIndex(to, length)
	if to < from {
		to = from
	}
	return from, to
}

func insertAt(elems []vm.Value, i int, v vm.Value) []vm.Value {
	elems = append(elems, vm.Value{})
	copy(elems[i+1:], elems[i:])
	elems[i] = v
	return elems
}

func reverseCopy(elems []vm.Value) []vm.Value {
	out := make([]vm.Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return out
}

func pushFront(ip *vm.Interpreter, recv, v vm.Value) {
	obj := heapObj(ip, recv)
	if obj == nil {
		return
	}
	obj.Elements = insertAt(obj.Elements, 0, v)
}

func popFront(ip *vm.Interpreter, recv vm.Value) vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil || len(obj.Elements) == 0 {
		return vm.NullValue()
	}
	v := obj.Elements[0]
	obj.Elements = obj.Elements[1:]
	return v
}

func popBack(ip *vm.Interpreter, recv vm.Value) vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil || len(obj.Elements) == 0 {
		return vm.NullValue()
	}
	v := obj.Elements[len(obj.Elements)-1]
	obj.Elements = obj.Elements[:len(obj.Elements)-1]
	return v
}

func filterElements(elems, against []vm.Value, ip *vm.Interpreter, retain bool) []vm.Value {
	seen := make(map[string]bool, len(against))
	for _, a := range against {
		seen[str(a, ip)] = true
	}
	out := elems[:0]
	for _, e := range elems {
		if seen[str(e, ip)] == retain {
			out = append(out, e)
		}
	}
	return out
}

// sortNatural sorts in place by numeric value when every element is
// numeric, otherwise by lexical string comparison, per spec.md's
// panic-free evaluation stance (no comparator lambdas are invoked).
func sortNatural(ip *vm.Interpreter, recv vm.Value) {
	obj := heapObj(ip, recv)
	if obj == nil {
		return
	}
	allNumeric := true
	for _, e := range obj.Elements {
		if !e.IsNumeric() {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		sort.Slice(obj.Elements, func(i, j int) bool {
			return obj.Elements[i].AsFloat64() < obj.Elements[j].AsFloat64()
		})
		return
	}
	sort.Slice(obj.Elements, func(i, j int) bool {
		return str(obj.Elements[i], ip) < str(obj.Elements[j], ip)
	})
}

func javaListString(ip *vm.Interpreter, recv vm.Value) string {
	elems := elementsOf(ip, recv)
	s := "["
	for i, e := range elems {
		if i > 0 {
			s += ", "
		}
		s += str(e, ip)
	}
	return s + "]"
}
