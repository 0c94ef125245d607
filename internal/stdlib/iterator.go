package stdlib

import "github.com/j8sim/engine/internal/vm"

// newIterator allocates a synthetic iterator object over the elements of
// target (a List/Set-shaped heap object), tracked via a private $index
// field plus a $target reference back to the collection it walks.
func newIterator(ip *vm.Interpreter, className string, target vm.Value) vm.Value {
	obj := ip.State().Heap.NewObject(className)
	obj.Fields["$index"] = vm.IntValue(0)
	obj.Fields["$target"] = target
	return vm.RefValue(obj.ID)
}

// iteratorFamily implements spec.md §4.5's Iterator bullet: hasNext/next
// walk the $target collection's Elements by $index; remove is a no-op
// since no compiled program can observe the underlying collection shrink
// mid-iteration without re-reading it.
func iteratorFamily() *family {
	f := newFamily("Iterator", exactly("$Iterator", "$SetIterator", "$ListIterator"))

	f.on("hasNext", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return boolVal(false), "Iterator.hasNext"
		}
		idx := int(obj.Fields["$index"].AsInt64())
		return boolVal(idx < len(elementsOf(ip, obj.Fields["$target"]))), "Iterator.hasNext"
	})
	f.on("next", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.NullValue(), "Iterator.next"
		}
		idx := int(obj.Fields["$index"].AsInt64())
		elems := elementsOf(ip, obj.Fields["$target"])
		if idx < 0 || idx >= len(elems) {
			return vm.NullValue(), "Iterator.next past end"
		}
		obj.Fields["$index"] = vm.IntValue(int64(idx + 1))
		return elems[idx], "Iterator.next"
	})
	f.on("remove", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return voidVal(), "Iterator.remove is a no-op"
	})
	return f
}
