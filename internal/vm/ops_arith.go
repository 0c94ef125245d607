package vm

import (
	"fmt"

	"github.com/j8sim/engine/internal/bytecode"
)

// execArith implements ADD/SUB/MUL/DIV/MOD, per spec.md §4.4.1: pop b then
// a; string concatenation when either side is a string; integer DIV/MOD
// truncate toward zero and never fail on divide-by-zero.
func (ip *Interpreter) execArith(frame *StackFrame, op bytecode.OpCode) {
	b := frame.Pop()
	a := frame.Pop()

	if op == bytecode.ADD && (a.Kind == KindString || b.Kind == KindString) {
		frame.Push(StringValue(coerceToString(a, ip.state.Heap) + coerceToString(b, ip.state.Heap)))
		return
	}

	floating := a.IsFloatingKind() || b.IsFloatingKind()
	if floating {
		frame.Push(arithFloat(op, a.AsFloat64(), b.AsFloat64()))
		return
	}
	frame.Push(arithInt(op, a.AsInt64(), b.AsInt64()))
}

func coerceToString(v Value, heap *Heap) string {
	if v.Kind == KindRef || v.Kind == KindArray {
		if heap != nil {
			if obj, ok := heap.Objects[v.Ref]; ok {
				return obj.ToStringDefault()
			}
		}
		return fmt.Sprintf("ref@%d", v.Ref)
	}
	return ValueToString(v, heap)
}

func arithFloat(op bytecode.OpCode, a, b float64) Value {
	switch op {
	case bytecode.ADD:
		return DoubleValue(a + b)
	case bytecode.SUB:
		return DoubleValue(a - b)
	case bytecode.MUL:
		return DoubleValue(a * b)
	case bytecode.DIV:
		if b == 0 {
			return DoubleValue(0)
		}
		return DoubleValue(a / b)
	case bytecode.MOD:
		if b == 0 {
			return DoubleValue(0)
		}
		r := a - b*float64(int64(a/b))
		return DoubleValue(r)
	default:
		return DoubleValue(0)
	}
}

func arithInt(op bytecode.OpCode, a, b int64) Value {
	switch op {
	case bytecode.ADD:
		return IntValue(a + b)
	case bytecode.SUB:
		return IntValue(a - b)
	case bytecode.MUL:
		return IntValue(a * b)
	case bytecode.DIV:
		if b == 0 {
			return IntValue(0)
		}
		return IntValue(a / b) // Go's integer division already truncates toward zero.
	case bytecode.MOD:
		if b == 0 {
			return IntValue(0)
		}
		return IntValue(a % b)
	default:
		return IntValue(0)
	}
}

func negate(v Value) Value {
	if v.IsFloatingKind() {
		return DoubleValue(-v.F)
	}
	return IntValue(-v.AsInt64())
}

// execCompare implements CMP_EQ/NE/LT/LE/GT/GE, per spec.md §4.4.1: pop b
// then a; reference == / != compare object ids; other reference
// comparisons are false.
func (ip *Interpreter) execCompare(frame *StackFrame, op bytecode.OpCode) {
	b := frame.Pop()
	a := frame.Pop()

	var result bool
	switch op {
	case bytecode.CMP_EQ:
		result = ValuesEqual(a, b)
	case bytecode.CMP_NE:
		result = !ValuesEqual(a, b)
	case bytecode.CMP_LT, bytecode.CMP_LE, bytecode.CMP_GT, bytecode.CMP_GE:
		result = ordinalCompare(op, a, b)
	}
	frame.Push(BoolValue(result))
}

func ordinalCompare(op bytecode.OpCode, a, b Value) bool {
	if a.Kind == KindString && b.Kind == KindString {
		switch op {
		case bytecode.CMP_LT:
			return a.S < b.S
		case bytecode.CMP_LE:
			return a.S <= b.S
		case bytecode.CMP_GT:
			return a.S > b.S
		case bytecode.CMP_GE:
			return a.S >= b.S
		}
		return false
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return false
	}
	af, bf := a.AsFloat64(), b.AsFloat64()
	switch op {
	case bytecode.CMP_LT:
		return af < bf
	case bytecode.CMP_LE:
		return af <= bf
	case bytecode.CMP_GT:
		return af > bf
	case bytecode.CMP_GE:
		return af >= bf
	default:
		return false
	}
}
