package vm

import "fmt"

// HeapObject is an allocated instance: either a plain object with
// duck-typed fields, or an array. Objects live for the whole session; there
// is no garbage collection, per spec.md §3 Non-goals.
type HeapObject struct {
	ID        int
	ClassName string
	Fields    map[string]Value

	IsArray       bool
	ArrayElemType string
	Elements      []Value
}

// ToStringDefault renders the object's default toString(), used by
// ValueToString and by string concatenation (coerceToString).
func (o *HeapObject) ToStringDefault() string {
	if o.IsArray {
		return fmt.Sprintf("[%s;@%d", o.ArrayElemType, o.ID)
	}
	return fmt.Sprintf("%s@%d", o.ClassName, o.ID)
}

func (o *HeapObject) clone() *HeapObject {
	clone := &HeapObject{ID: o.ID, ClassName: o.ClassName, IsArray: o.IsArray, ArrayElemType: o.ArrayElemType}
	if o.Fields != nil {
		clone.Fields = make(map[string]Value, len(o.Fields))
		for k, v := range o.Fields {
			clone.Fields[k] = v
		}
	}
	if o.Elements != nil {
		clone.Elements = make([]Value, len(o.Elements))
		copy(clone.Elements, o.Elements)
	}
	return clone
}

// Heap is the object arena: a map keyed by monotonically increasing id.
type Heap struct {
	Objects map[int]*HeapObject
	NextID  int
}

// NewHeap creates an empty heap; ids start at 1 so that 0 can mean "no
// reference" in a zero Value.
func NewHeap() *Heap {
	return &Heap{Objects: make(map[int]*HeapObject), NextID: 1}
}

// NewObject allocates a plain object of the given class with no fields yet.
func (h *Heap) NewObject(className string) *HeapObject {
	obj := &HeapObject{ID: h.NextID, ClassName: className, Fields: make(map[string]Value)}
	h.Objects[obj.ID] = obj
	h.NextID++
	return obj
}

// NewArray allocates a fixed-length array of elemType, filled with the zero
// value for that type.
func (h *Heap) NewArray(elemType string, length int) *HeapObject {
	obj := &HeapObject{ID: h.NextID, IsArray: true, ArrayElemType: elemType, Elements: make([]Value, length)}
	zero := zeroValueForType(elemType)
	for i := range obj.Elements {
		obj.Elements[i] = zero
	}
	h.Objects[obj.ID] = obj
	h.NextID++
	return obj
}

func zeroValueForType(typeName string) Value {
	switch typeName {
	case "int", "short", "byte":
		return IntValue(0)
	case "long":
		return LongValue(0)
	case "float":
		return FloatValue(0)
	case "double":
		return DoubleValue(0)
	case "boolean":
		return BoolValue(false)
	case "char":
		return CharValue(0)
	default:
		return NullValue()
	}
}

func (h *Heap) Clone() *Heap {
	clone := &Heap{Objects: make(map[int]*HeapObject, len(h.Objects)), NextID: h.NextID}
	for id, obj := range h.Objects {
		clone.Objects[id] = obj.clone()
	}
	return clone
}
