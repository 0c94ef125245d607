package vm

import (
	"fmt"

	"github.com/j8sim/engine/internal/bytecode"
)

// execNewArray implements NEWARRAY: pops instr.Dims size operands (pushed
// in declaration order, so the outermost dimension is popped last) and
// allocates a single-level array of that length, per spec.md §4.3's array
// lowering. Nested dimensions beyond the first are a documented
// simplification: inner elements start out null/zero rather than
// pre-allocated sub-arrays.
func (ip *Interpreter) execNewArray(frame *StackFrame, instr bytecode.Instruction) string {
	dims := instr.Dims
	if dims < 1 {
		dims = 1
	}
	sizes := make([]int64, dims)
	for i := dims - 1; i >= 0; i-- {
		sizes[i] = frame.Pop().AsInt64()
	}
	length := int(sizes[0])
	if length < 0 {
		length = 0
	}
	obj := ip.state.Heap.NewArray(instr.StrOperand, length)
	frame.Push(ArrayValue(obj.ID))
	frame.PC++
	return fmt.Sprintf("allocated a new %s[%d]", instr.StrOperand, length)
}

// execArrayLength implements ARRAYLENGTH: pops the array reference, pushes
// its element count.
func (ip *Interpreter) execArrayLength(frame *StackFrame) string {
	v := frame.Pop()
	length := 0
	if obj, ok := ip.state.Heap.Objects[v.Ref]; ok && obj.IsArray {
		length = len(obj.Elements)
	}
	frame.Push(IntValue(int64(length)))
	frame.PC++
	return "read array length"
}

// execArrayLoad implements ARRAYLOAD: stack is [...array, index], pushes
// the element, or null on an out-of-range index rather than throwing, per
// spec.md §9's panic-free evaluation stance.
func (ip *Interpreter) execArrayLoad(frame *StackFrame) string {
	index := frame.Pop()
	arr := frame.Pop()
	idx := int(index.AsInt64())
	result := NullValue()
	if obj, ok := ip.state.Heap.Objects[arr.Ref]; ok && obj.IsArray && idx >= 0 && idx < len(obj.Elements) {
		result = obj.Elements[idx]
	}
	frame.Push(result)
	frame.PC++
	return "read array element"
}

// execArrayStore implements ARRAYSTORE: stack is [...array, index, value].
// Out-of-range stores are silently dropped, the write analogue of
// execArrayLoad's out-of-range read.
func (ip *Interpreter) execArrayStore(frame *StackFrame) string {
	value := frame.Pop()
	index := frame.Pop()
	arr := frame.Pop()
	idx := int(index.AsInt64())
	if obj, ok := ip.state.Heap.Objects[arr.Ref]; ok && obj.IsArray && idx >= 0 && idx < len(obj.Elements) {
		obj.Elements[idx] = value
	}
	frame.PC++
	return "stored array element"
}

// execGetField implements GETFIELD: pops the receiver, pushes the named
// field, or the array's length for the synthetic "length" field, or null
// if the field has never been written (duck typing: fields are created
// lazily by the first PUTFIELD).
func (ip *Interpreter) execGetField(frame *StackFrame, instr bytecode.Instruction) string {
	recv := frame.Pop()
	obj, ok := ip.state.Heap.Objects[recv.Ref]
	if !ok {
		frame.Push(NullValue())
		frame.PC++
		return fmt.Sprintf("read field %s on a null reference", instr.StrOperand)
	}
	if obj.IsArray && instr.StrOperand == "length" {
		frame.Push(IntValue(int64(len(obj.Elements))))
		frame.PC++
		return "read array length"
	}
	v, found := obj.Fields[instr.StrOperand]
	if !found {
		v = NullValue()
	}
	frame.Push(v)
	frame.PC++
	return fmt.Sprintf("read field %s", instr.StrOperand)
}

// execPutField implements PUTFIELD: stack is [...receiver, value]; creates
// the field if it does not exist yet.
func (ip *Interpreter) execPutField(frame *StackFrame, instr bytecode.Instruction) string {
	value := frame.Pop()
	recv := frame.Pop()
	if obj, ok := ip.state.Heap.Objects[recv.Ref]; ok {
		if obj.Fields == nil {
			obj.Fields = make(map[string]Value)
		}
		obj.Fields[instr.StrOperand] = value
	}
	frame.PC++
	return fmt.Sprintf("set field %s", instr.StrOperand)
}

// execGetStatic implements GETSTATIC: no receiver on the stack, the owning
// class comes from the instruction itself.
func (ip *Interpreter) execGetStatic(frame *StackFrame, instr bytecode.Instruction) string {
	v := NullValue()
	if fields, ok := ip.state.StaticFields[instr.ClassName]; ok {
		if fv, ok := fields[instr.StrOperand]; ok {
			v = fv
		}
	}
	frame.Push(v)
	frame.PC++
	return fmt.Sprintf("read static %s.%s", instr.ClassName, instr.StrOperand)
}

func (ip *Interpreter) execPutStatic(frame *StackFrame, instr bytecode.Instruction) string {
	value := frame.Pop()
	fields, ok := ip.state.StaticFields[instr.ClassName]
	if !ok {
		fields = make(map[string]Value)
		ip.state.StaticFields[instr.ClassName] = fields
	}
	fields[instr.StrOperand] = value
	frame.PC++
	return fmt.Sprintf("set static %s.%s", instr.ClassName, instr.StrOperand)
}

// execInstanceOf implements INSTANCEOF, walking the superclass/interface
// chain via CompiledProgram.IsSubclassOf; arrays only match "Object".
func (ip *Interpreter) execInstanceOf(frame *StackFrame, instr bytecode.Instruction) string {
	v := frame.Pop()
	result := false
	switch v.Kind {
	case KindRef:
		if obj, ok := ip.state.Heap.Objects[v.Ref]; ok {
			result = ip.state.Program.IsSubclassOf(obj.ClassName, instr.StrOperand)
		}
	case KindArray:
		result = instr.StrOperand == "Object"
	}
	frame.Push(BoolValue(result))
	frame.PC++
	return fmt.Sprintf("instanceof %s", instr.StrOperand)
}
