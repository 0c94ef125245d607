package stdlib

import (
	"strconv"
	"unicode"

	"github.com/j8sim/engine/internal/vm"
)

// numberFamily implements spec.md §4.5's Character/Integer/Long/Double/
// Float/Number bullet. All of these are invoked as INVOKE_STATIC on the
// wrapper class name (e.g. Integer.parseInt(s)); boxed instance-style calls
// (intValue/compareTo on a boxed wrapper object) are not modelled, since
// this interpreter never boxes a primitive into a wrapper object — a
// documented simplification.
func numberFamily() *family {
	f := newFamily("Number", exactly("Integer", "Long", "Double", "Float", "Character", "Number", "Byte", "Short"))

	parseInt := func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		n, _ := strconv.ParseInt(argStr(args, 0, ip), 10, 64)
		return vm.IntValue(n), "Integer.parseInt"
	}
	f.on("parseInt", 1, parseInt)
	f.on("parseLong", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		n, _ := strconv.ParseInt(argStr(args, 0, ip), 10, 64)
		return vm.LongValue(n), "Long.parseLong"
	})
	f.on("parseDouble", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		n, _ := strconv.ParseFloat(argStr(args, 0, ip), 64)
		return vm.DoubleValue(n), "Double.parseDouble"
	})
	f.on("parseFloat", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		n, _ := strconv.ParseFloat(argStr(args, 0, ip), 64)
		return vm.FloatValue(n), "Float.parseFloat"
	})
	f.on("valueOf", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return args[0], "Number.valueOf"
	})
	f.on("toString", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(str(args[0], ip)), "Number.toString"
	})
	f.on("max", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return numericMax(args[0], args[1]), "Number.max"
	})
	f.on("min", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return numericMin(args[0], args[1]), "Number.min"
	})
	f.on("compare", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(compareNumeric(args[0], args[1])), "Number.compare"
	})

	// Character predicates and case conversion.
	f.on("isDigit", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(unicode.IsDigit(rune(argInt(args, 0)))), "Character.isDigit"
	})
	f.on("isLetter", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(unicode.IsLetter(rune(argInt(args, 0)))), "Character.isLetter"
	})
	f.on("isLetterOrDigit", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r := rune(argInt(args, 0))
		return boolVal(unicode.IsLetter(r) || unicode.IsDigit(r)), "Character.isLetterOrDigit"
	})
	f.on("isAlphabetic", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(unicode.IsLetter(rune(argInt(args, 0)))), "Character.isAlphabetic"
	})
	f.on("isUpperCase", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(unicode.IsUpper(rune(argInt(args, 0)))), "Character.isUpperCase"
	})
	f.on("isLowerCase", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(unicode.IsLower(rune(argInt(args, 0)))), "Character.isLowerCase"
	})
	f.on("isWhitespace", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(unicode.IsSpace(rune(argInt(args, 0)))), "Character.isWhitespace"
	})
	f.on("toUpperCase", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.CharValue(unicode.ToUpper(rune(argInt(args, 0)))), "Character.toUpperCase"
	})
	f.on("toLowerCase", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.CharValue(unicode.ToLower(rune(argInt(args, 0)))), "Character.toLowerCase"
	})
	f.on("getNumericValue", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r := rune(argInt(args, 0))
		if unicode.IsDigit(r) {
			return intVal(int(r - '0')), "Character.getNumericValue"
		}
		return intVal(-1), "Character.getNumericValue"
	})
	return f
}

func numericMax(a, b vm.Value) vm.Value {
	if compareNumeric(a, b) >= 0 {
		return a
	}
	return b
}

func numericMin(a, b vm.Value) vm.Value {
	if compareNumeric(a, b) <= 0 {
		return a
	}
	return b
}

func compareNumeric(a, b vm.Value) int {
	if a.IsFloatingKind() || b.IsFloatingKind() {
		af, bf := a.AsFloat64(), b.AsFloat64()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	ai, bi := a.AsInt64(), b.AsInt64()
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}
