package stdlib

import "github.com/j8sim/engine/internal/vm"

// exceptionFamily implements spec.md §4.5's exception bullet: a closed
// whitelist of JDK exception constructors, recording the message argument
// in a message field so getMessage/toString and THROW can read it back.
func exceptionFamily() *family {
	f := newFamily("Exception", exactly(
		"Exception", "RuntimeException", "Error", "Throwable",
		"IllegalArgumentException", "IllegalStateException",
		"NullPointerException", "ArrayIndexOutOfBoundsException",
		"IndexOutOfBoundsException", "ArithmeticException",
		"ClassCastException", "NumberFormatException",
		"UnsupportedOperationException", "ConcurrentModificationException",
		"NoSuchElementException", "InterruptedException", "IOException",
		"CloneNotSupportedException",
	))

	f.on("<init>", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		setMessage(ip, recv, "")
		return voidVal(), "Exception.<init>"
	})
	f.on("<init>", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		setMessage(ip, recv, str(args[0], ip))
		return voidVal(), "Exception.<init>"
	})
	f.on("<init>", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		setMessage(ip, recv, str(args[0], ip))
		return voidVal(), "Exception.<init>(message, cause)"
	})
	f.on("getMessage", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return getMessage(ip, recv), "Exception.getMessage"
	})
	f.on("getLocalizedMessage", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return getMessage(ip, recv), "Exception.getLocalizedMessage"
	})
	f.on("toString", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		name := "Exception"
		if obj != nil {
			name = obj.ClassName
		}
		msg := getMessage(ip, recv)
		if msg.Kind == vm.KindNull {
			return vm.StringValue(name), "Exception.toString"
		}
		return vm.StringValue(name + ": " + msg.S), "Exception.toString"
	})
	return f
}

func setMessage(ip *vm.Interpreter, recv vm.Value, msg string) {
	if obj := heapObj(ip, recv); obj != nil {
		if obj.Fields == nil {
			obj.Fields = make(map[string]vm.Value)
		}
		obj.Fields["message"] = vm.StringValue(msg)
	}
}

func getMessage(ip *vm.Interpreter, recv vm.Value) vm.Value {
	obj := heapObj(ip, recv)
	if obj == nil {
		return vm.NullValue()
	}
	if v, ok := obj.Fields["message"]; ok {
		return v
	}
	return vm.NullValue()
}
