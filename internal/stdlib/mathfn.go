package stdlib

import (
	"math"
	"math/rand"

	"github.com/j8sim/engine/internal/vm"
)

// mathFamily implements spec.md §4.5's Math bullet.
func mathFamily() *family {
	f := newFamily("Math", exactly("Math"))

	f.on("abs", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		v := args[0]
		if v.IsFloatingKind() {
			return vm.DoubleValue(math.Abs(v.AsFloat64())), "Math.abs"
		}
		n := v.AsInt64()
		if n < 0 {
			n = -n
		}
		return vm.IntValue(n), "Math.abs"
	})
	f.on("max", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return numericMax(args[0], args[1]), "Math.max"
	})
	f.on("min", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return numericMin(args[0], args[1]), "Math.min"
	})
	f.on("sqrt", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Sqrt(argFloat(args, 0))), "Math.sqrt"
	})
	f.on("pow", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Pow(argFloat(args, 0), argFloat(args, 1))), "Math.pow"
	})
	f.on("floor", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Floor(argFloat(args, 0))), "Math.floor"
	})
	f.on("ceil", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Ceil(argFloat(args, 0))), "Math.ceil"
	})
	f.on("round", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.LongValue(int64(math.Floor(argFloat(args, 0) + 0.5))), "Math.round"
	})
	f.on("random", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(rand.Float64()), "Math.random"
	})
	f.on("log", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Log(argFloat(args, 0))), "Math.log"
	})
	f.on("sin", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Sin(argFloat(args, 0))), "Math.sin"
	})
	f.on("cos", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Cos(argFloat(args, 0))), "Math.cos"
	})
	f.on("PI", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.DoubleValue(math.Pi), "Math.PI"
	})
	return f
}
