package stdlib

import "github.com/j8sim/engine/internal/vm"

// scannerFamily implements spec.md §4.5's Scanner bullet: no stdin is
// wired up, so every read reports end-of-input rather than blocking.
func scannerFamily() *family {
	f := newFamily("Scanner", exactly("Scanner"))

	f.on("<init>", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return voidVal(), "Scanner.<init>"
	})
	for _, name := range []string{"hasNext", "hasNextInt", "hasNextLong", "hasNextDouble", "hasNextLine"} {
		name := name
		f.on(name, 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			return boolVal(false), "Scanner." + name + " always false: no stdin is attached"
		})
	}
	f.on("nextInt", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(0), "Scanner.nextInt: no stdin is attached"
	})
	f.on("nextLong", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.LongValue(0), "Scanner.nextLong: no stdin is attached"
	})
	f.on("nextDouble", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(0), "Scanner.nextDouble: no stdin is attached"
	})
	f.on("next", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(""), "Scanner.next: no stdin is attached"
	})
	f.on("nextLine", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(""), "Scanner.nextLine: no stdin is attached"
	})
	f.on("close", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return voidVal(), "Scanner.close"
	})
	return f
}
