package stdlib

import "github.com/j8sim/engine/internal/vm"

// mapFamily implements spec.md §4.5's Map bullet: fields[] repurposed to
// hold entries, field name = stringified key ("v:"+key for the value,
// "k:"+key for the original key so entrySet/keySet can recover it),
// insertion order tracked via Elements (a plain string list, even though
// these objects are not arrays).
func mapFamily() *family {
	f := newFamily("Map", classNameContains("Map"))

	f.on("<init>", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		initMap(ip, recv)
		return voidVal(), "Map.<init>"
	})
	f.on("<init>", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		initMap(ip, recv)
		return voidVal(), "Map.<init>"
	})
	f.on("put", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		old := mapPut(ip, recv, args[0], args[1])
		return old, "Map.put"
	})
	f.on("get", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return mapGet(ip, recv, args[0]), "Map.get"
	})
	f.on("getOrDefault", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if v, ok := mapLookup(ip, recv, args[0]); ok {
			return v, "Map.getOrDefault"
		}
		return args[1], "Map.getOrDefault"
	})
	f.on("putIfAbsent", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if v, ok := mapLookup(ip, recv, args[0]); ok {
			return v, "Map.putIfAbsent"
		}
		mapPut(ip, recv, args[0], args[1])
		return vm.NullValue(), "Map.putIfAbsent"
	})
	f.on("containsKey", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		_, ok := mapLookup(ip, recv, args[0])
		return boolVal(ok), "Map.containsKey"
	})
	f.on("containsValue", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		target := str(args[0], ip)
		for _, v := range mapValues(ip, recv) {
			if str(v, ip) == target {
				return boolVal(true), "Map.containsValue"
			}
		}
		return boolVal(false), "Map.containsValue"
	})
	f.on("size", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(len(mapKeys(ip, recv))), "Map.size"
	})
	f.on("isEmpty", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(len(mapKeys(ip, recv)) == 0), "Map.isEmpty"
	})
	f.on("remove", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return mapRemove(ip, recv, args[0]), "Map.remove"
	})
	f.on("clear", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		initMap(ip, recv)
		return voidVal(), "Map.clear"
	})
	f.on("keySet", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		keys := make([]vm.Value, 0)
		if obj != nil {
			for _, keyStr := range obj.Elements {
				if k, ok := obj.Fields["k:"+keyStr.S]; ok {
					keys = append(keys, k)
				}
			}
		}
		return newListLike(ip, "LinkedHashSet", keys), "Map.keySet"
	})
	f.on("values", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return newListLike(ip, "ArrayList", mapValues(ip, recv)), "Map.values"
	})
	f.on("entrySet", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		entries := make([]vm.Value, 0)
		if obj != nil {
			for _, keyStr := range obj.Elements {
				k := obj.Fields["k:"+keyStr.S]
				v := obj.Fields["v:"+keyStr.S]
				entryObj := ip.State().Heap.NewObject("$MapEntry")
				entryObj.Fields["key"] = k
				entryObj.Fields["value"] = v
				entries = append(entries, vm.RefValue(entryObj.ID))
			}
		}
		return newListLike(ip, "LinkedHashSet", entries), "Map.entrySet"
	})
	f.on("forEach", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return voidVal(), "Map.forEach is a no-op (lambda bodies are not executed)"
	})
	return f
}

// mapEntryFamily implements the synthetic $MapEntry objects materialised by
// Map.entrySet.
func mapEntryFamily() *family {
	f := newFamily("$MapEntry", exactly("$MapEntry"))
	f.on("getKey", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.NullValue(), "$MapEntry.getKey"
		}
		return obj.Fields["key"], "$MapEntry.getKey"
	})
	f.on("getValue", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.NullValue(), "$MapEntry.getValue"
		}
		return obj.Fields["value"], "$MapEntry.getValue"
	})
	f.on("setValue", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.NullValue(), "$MapEntry.setValue"
		}
		old := obj.Fields["value"]
		obj.Fields["value"] = args[0]
		return old, "$MapEntry.setValue"
	})
	return f
}

func initMap(ip *vm.Interpreter, recv vm.Value) {
	obj := heapObj(ip, recv)
	if obj == nil {
		return
	}
	obj.Fields = make(map[string]vm.Value)
	obj.Elements = nil
}

func mapPut(ip *vm.Interpreter, recv, key, value vm.Value) vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil {
		return vm.NullValue()
	}
	if obj.Fields == nil {
		obj.Fields = make(map[string]vm.Value)
	}
	keyStr := str(key, ip)
	old, existed := obj.Fields["v:"+keyStr]
	if !existed {
		obj.Elements = append(obj.Elements, vm.StringValue(keyStr))
	}
	obj.Fields["k:"+keyStr] = key
	obj.Fields["v:"+keyStr] = value
	if !existed {
		return vm.NullValue()
	}
	return old
}

func mapLookup(ip *vm.Interpreter, recv, key vm.Value) (vm.Value, bool) {
	obj := heapObj(ip, recv)
	if obj == nil {
		return vm.NullValue(), false
	}
	v, ok := obj.Fields["v:"+str(key, ip)]
	return v, ok
}

func mapGet(ip *vm.Interpreter, recv, key vm.Value) vm.Value {
	if v, ok := mapLookup(ip, recv, key); ok {
		return v
	}
	return vm.NullValue()
}

func mapRemove(ip *vm.Interpreter, recv, key vm.Value) vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil {
		return vm.NullValue()
	}
	keyStr := str(key, ip)
	old, ok := obj.Fields["v:"+keyStr]
	if !ok {
		return vm.NullValue()
	}
	delete(obj.Fields, "v:"+keyStr)
	delete(obj.Fields, "k:"+keyStr)
	for i, e := range obj.Elements {
		if e.S == keyStr {
			obj.Elements = append(obj.Elements[:i], obj.Elements[i+1:]...)
			break
		}
	}
	return old
}

func mapKeys(ip *vm.Interpreter, recv vm.Value) []vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil {
		return nil
	}
	keys := make([]vm.Value, 0, len(obj.Elements))
	for _, keyStr := range obj.Elements {
		keys = append(keys, obj.Fields["k:"+keyStr.S])
	}
	return keys
}

func mapValues(ip *vm.Interpreter, recv vm.Value) []vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil {
		return nil
	}
	values := make([]vm.Value, 0, len(obj.Elements))
	for _, keyStr := range obj.Elements {
		values = append(values, obj.Fields["v:"+keyStr.S])
	}
	return values
}

// newListLike allocates a fresh heap collection object (ArrayList/
// LinkedHashSet-shaped) seeded with elems, used for keySet/values/entrySet
// snapshots and any other method that materialises a derived collection.
func newListLike(ip *vm.Interpreter, className string, elems []vm.Value) vm.Value {
	obj := ip.State().Heap.NewObject(className)
	obj.Elements = append([]vm.Value(nil), elems...)
	return vm.RefValue(obj.ID)
}
