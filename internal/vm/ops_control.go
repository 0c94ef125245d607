package vm

import (
	"fmt"
	"strings"

	"github.com/j8sim/engine/internal/bytecode"
)

// execInvoke implements INVOKE_VIRTUAL/INVOKE_INTERFACE/INVOKE_SPECIAL/
// INVOKE_STATIC, per spec.md §4.4.1: the stdlib registry gets first refusal,
// then dispatch walks the superclass chain from the runtime (not static)
// receiver class. A method that resolves to nothing is a logged no-op
// rather than a crash, consistent with the interpreter's panic-free
// evaluation stance. Every call other than <init> pushes exactly one value
// onto the caller (null for void methods), matching compileStatement's
// unconditional POP after an expression statement. An <init> call pushes
// nothing, so the reference left by NEW; DUP is the expression's value.
func (ip *Interpreter) execInvoke(thread *ThreadState, frame *StackFrame, instr bytecode.Instruction) string {
	st := ip.state
	argc := instr.ArgCount
	args := make([]Value, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = frame.Pop()
	}

	isStatic := instr.Op == bytecode.INVOKE_STATIC
	var receiver Value
	if !isStatic {
		receiver = frame.Pop()
	}

	targetClass := ip.resolveTargetClass(frame, instr, receiver, isStatic)
	isInit := strings.HasPrefix(instr.StrOperand, "<init>")

	if ip.stdlib != nil {
		methodName := instr.StrOperand
		if i := strings.IndexByte(methodName, '('); i >= 0 {
			methodName = methodName[:i]
		}
		if handled, ret, desc := ip.stdlib.Invoke(ip, thread, targetClass, methodName, args, receiver, isStatic); handled {
			if !isInit {
				frame.Push(ret)
			}
			frame.PC++
			return desc
		}
	}

	method, owner := st.Program.LookupMethod(targetClass, instr.StrOperand)
	if method == nil || method.IsAbstract {
		if !isInit {
			frame.Push(NullValue())
		}
		frame.PC++
		return fmt.Sprintf("method %s not found on %s; treated as a no-op", instr.StrOperand, targetClass)
	}

	callee := NewFrame(owner, method.Signature, method.StartIndex, method.NumLocals)
	callee.ConstructorCall = method.IsConstructor
	slot := 0
	if !isStatic {
		if len(callee.Locals) > 0 {
			callee.Locals[0] = receiver
		}
		slot = 1
	}
	for i, a := range args {
		if slot+i < len(callee.Locals) {
			callee.Locals[slot+i] = a
		}
	}
	thread.PushFrame(callee)
	frame.PC++
	return fmt.Sprintf("invoked %s.%s", targetClass, instr.StrOperand)
}

// resolveTargetClass determines which class's method table INVOKE_* should
// search: the instruction's own ClassName for INVOKE_STATIC and explicit
// constructor calls, the current frame's superclass for an unqualified
// super.method() INVOKE_SPECIAL, and the receiver's runtime class for
// virtual/interface dispatch.
func (ip *Interpreter) resolveTargetClass(frame *StackFrame, instr bytecode.Instruction, receiver Value, isStatic bool) string {
	switch instr.Op {
	case bytecode.INVOKE_STATIC:
		return instr.ClassName
	case bytecode.INVOKE_SPECIAL:
		if instr.ClassName != "" {
			return instr.ClassName
		}
		if class, ok := ip.state.Program.Classes[frame.ClassName]; ok {
			return class.SuperClass
		}
		return ""
	default:
		switch receiver.Kind {
		case KindRef, KindArray:
			if obj, ok := ip.state.Heap.Objects[receiver.Ref]; ok {
				return obj.ClassName
			}
		case KindString:
			return "String"
		}
		return ""
	}
}

// execMonitorEnter implements MONITORENTER, per spec.md §4.4.1/§9:
// reentrant acquisition by set membership. A failed acquisition blocks the
// thread without advancing pc or consuming the stacked reference, so the
// same instruction retries once the monitor is released.
func (ip *Interpreter) execMonitorEnter(thread *ThreadState, frame *StackFrame) string {
	v := frame.Peek()
	if v.Kind != KindRef && v.Kind != KindArray {
		frame.Pop()
		frame.PC++
		return "monitorenter on a non-reference value ignored"
	}
	if ip.state.AcquireMonitor(v.Ref, thread.ID) {
		frame.Pop()
		frame.PC++
		return "acquired monitor"
	}
	thread.Status = StatusBlocked
	thread.WaitingOnMonitor = v.Ref
	return "blocked waiting for monitor"
}

// execMonitorExit implements MONITOREXIT: releases ownership and wakes
// exactly one BLOCKED waiter.
func (ip *Interpreter) execMonitorExit(thread *ThreadState, frame *StackFrame) string {
	v := frame.Pop()
	if v.Kind == KindRef || v.Kind == KindArray {
		ip.state.ReleaseMonitor(v.Ref, thread.ID)
	}
	frame.PC++
	return "released monitor"
}
