package vm

import (
	"fmt"

	"github.com/j8sim/engine/internal/bytecode"
)

// StdlibInvoker intercepts INVOKE_* before user-defined method lookup, per
// spec.md §4.4.1/§4.5. The engine package wires internal/stdlib's registry
// in through this interface to avoid a package import cycle. Implementers
// must return NullValue() as ret for a void call rather than a zero Value,
// since execInvoke pushes ret onto the caller's stack for every call other
// than <init>.
type StdlibInvoker interface {
	Invoke(ip *Interpreter, thread *ThreadState, receiverClass, methodName string, args []Value, receiver Value, isStatic bool) (handled bool, ret Value, desc string)
}

// SetStdlib installs the standard-library emulation registry.
func (ip *Interpreter) SetStdlib(s StdlibInvoker) { ip.stdlib = s }

// execute dispatches a single instruction and returns its description,
// implementing spec.md §4.4 step 6 and §4.4.1's opcode semantics. Every
// opcode advances frame.PC itself (Step never does), per-opcode, to keep
// GOTO/IF_*/INVOKE_*/RETURN_VALUE's special pc rules local to their own
// cases.
func (ip *Interpreter) execute(thread *ThreadState, frame *StackFrame, instr bytecode.Instruction) string {
	st := ip.state

	switch instr.Op {
	case bytecode.NOP, bytecode.LINE:
		frame.PC++
		return instr.String()

	case bytecode.LOAD_CONST:
		frame.Push(loadConst(instr))
		frame.PC++
		return "pushed a constant"

	case bytecode.PUSH_NULL:
		frame.Push(NullValue())
		frame.PC++
		return "pushed null"

	case bytecode.LOAD_LOCAL:
		idx := int(instr.IntOperand)
		if idx >= 0 && idx < len(frame.Locals) {
			frame.Push(frame.Locals[idx])
		} else {
			frame.Push(NullValue())
		}
		frame.PC++
		return fmt.Sprintf("loaded local %s", instr.LocalName)

	case bytecode.STORE_LOCAL:
		idx := int(instr.IntOperand)
		v := frame.Pop()
		for idx >= len(frame.Locals) {
			frame.Locals = append(frame.Locals, NullValue())
		}
		frame.Locals[idx] = v
		frame.PC++
		return fmt.Sprintf("stored local %s", instr.LocalName)

	case bytecode.DUP:
		frame.Push(frame.Peek())
		frame.PC++
		return "duplicated top of stack"

	case bytecode.DUP_X1:
		top := frame.Pop()
		second := frame.Pop()
		frame.Push(top)
		frame.Push(second)
		frame.Push(top)
		frame.PC++
		return "duplicated and inserted"

	case bytecode.POP:
		frame.Pop()
		frame.PC++
		return "popped"

	case bytecode.SWAP:
		a := frame.Pop()
		b := frame.Pop()
		frame.Push(a)
		frame.Push(b)
		frame.PC++
		return "swapped"

	case bytecode.ADD, bytecode.SUB, bytecode.MUL, bytecode.DIV, bytecode.MOD:
		ip.execArith(frame, instr.Op)
		frame.PC++
		return instr.Op.String()

	case bytecode.NEG:
		v := frame.Pop()
		frame.Push(negate(v))
		frame.PC++
		return "negated"

	case bytecode.CMP_EQ, bytecode.CMP_NE, bytecode.CMP_LT, bytecode.CMP_LE, bytecode.CMP_GT, bytecode.CMP_GE:
		ip.execCompare(frame, instr.Op)
		frame.PC++
		return instr.Op.String()

	case bytecode.AND:
		b := frame.Pop()
		a := frame.Pop()
		frame.Push(BoolValue(truthy(a) && truthy(b)))
		frame.PC++
		return "logical and"

	case bytecode.OR:
		b := frame.Pop()
		a := frame.Pop()
		frame.Push(BoolValue(truthy(a) || truthy(b)))
		frame.PC++
		return "logical or"

	case bytecode.NOT:
		a := frame.Pop()
		frame.Push(BoolValue(!truthy(a)))
		frame.PC++
		return "logical not"

	case bytecode.GOTO:
		frame.PC = int(instr.IntOperand)
		return "jumped"

	case bytecode.IF_TRUE:
		cond := frame.Pop()
		if truthy(cond) {
			frame.PC = int(instr.IntOperand)
		} else {
			frame.PC++
		}
		return "conditional jump"

	case bytecode.IF_FALSE:
		cond := frame.Pop()
		if !truthy(cond) {
			frame.PC = int(instr.IntOperand)
		} else {
			frame.PC++
		}
		return "conditional jump"

	case bytecode.NEW:
		obj := st.Heap.NewObject(instr.StrOperand)
		frame.Push(RefValue(obj.ID))
		frame.PC++
		return fmt.Sprintf("allocated a new %s", instr.StrOperand)

	case bytecode.NEWARRAY:
		return ip.execNewArray(frame, instr)

	case bytecode.ARRAYLENGTH:
		return ip.execArrayLength(frame)

	case bytecode.ARRAYLOAD:
		return ip.execArrayLoad(frame)

	case bytecode.ARRAYSTORE:
		return ip.execArrayStore(frame)

	case bytecode.GETFIELD:
		return ip.execGetField(frame, instr)

	case bytecode.PUTFIELD:
		return ip.execPutField(frame, instr)

	case bytecode.GETSTATIC:
		return ip.execGetStatic(frame, instr)

	case bytecode.PUTSTATIC:
		return ip.execPutStatic(frame, instr)

	case bytecode.CHECKCAST:
		// soft cast: the emulator does not enforce type compatibility.
		frame.PC++
		return fmt.Sprintf("cast to %s", instr.StrOperand)

	case bytecode.INSTANCEOF:
		return ip.execInstanceOf(frame, instr)

	case bytecode.INVOKE_VIRTUAL, bytecode.INVOKE_INTERFACE, bytecode.INVOKE_SPECIAL, bytecode.INVOKE_STATIC:
		return ip.execInvoke(thread, frame, instr)

	case bytecode.RETURN:
		returning := thread.PopFrame()
		if caller := thread.TopFrame(); caller != nil && returning != nil && !returning.ConstructorCall {
			caller.Push(NullValue())
		}
		return "returned"

	case bytecode.RETURN_VALUE:
		v := frame.Pop()
		thread.PopFrame()
		if caller := thread.TopFrame(); caller != nil {
			caller.Push(v)
		}
		return "returned a value"

	case bytecode.LAMBDA_CREATE:
		frame.Push(Value{Kind: KindLambda, Lambda: &LambdaInfo{BodyMarker: instr.StrOperand}})
		frame.PC++
		return "created a lambda"

	case bytecode.LAMBDA_INVOKE:
		// spec.md §9: lambda bodies are never executed.
		frame.Pop()
		frame.Push(NullValue())
		frame.PC++
		return "lambda invocation is a no-op"

	case bytecode.PRINT:
		v := frame.Pop()
		s := ValueToString(v, st.Heap)
		n := len(st.Output)
		st.Output[n-1] += s
		if instr.BoolOp {
			st.Output = append(st.Output, "")
		}
		frame.PC++
		return "printed output"

	case bytecode.THROW:
		v := frame.Pop()
		className := "Exception"
		message := ValueToString(v, st.Heap)
		if v.Kind == KindRef {
			if obj, ok := st.Heap.Objects[v.Ref]; ok {
				className = obj.ClassName
				if msgVal, ok := obj.Fields["message"]; ok {
					message = ValueToString(msgVal, st.Heap)
				}
			}
		}
		st.Error = fmt.Sprintf("%s: %s", className, message)
		st.Status = RunError
		return "uncaught throw"

	case bytecode.MONITORENTER:
		return ip.execMonitorEnter(thread, frame)

	case bytecode.MONITOREXIT:
		return ip.execMonitorExit(thread, frame)

	default:
		frame.PC++
		return fmt.Sprintf("unrecognised opcode %s", instr.Op)
	}
}

func loadConst(instr bytecode.Instruction) Value {
	switch instr.ConstKind {
	case "string":
		return StringValue(instr.StrOperand)
	case "float":
		return DoubleValue(instr.FloatOp)
	case "bool":
		return BoolValue(instr.BoolOp)
	default:
		return IntValue(instr.IntOperand)
	}
}

func truthy(v Value) bool {
	switch v.Kind {
	case KindBoolean:
		return v.B
	case KindNull:
		return false
	default:
		return v.AsInt64() != 0
	}
}
