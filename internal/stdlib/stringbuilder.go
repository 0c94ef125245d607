package stdlib

import (
	"strings"

	"github.com/j8sim/engine/internal/vm"
)

const sbField = "$sb"

// stringBuilderFamily implements spec.md §4.5's StringBuilder/StringBuffer
// bullet: a single $sb field holds the backing primitive string.
func stringBuilderFamily() *family {
	f := newFamily("StringBuilder", exactly("StringBuilder", "StringBuffer"))

	setSB := func(ip *vm.Interpreter, recv vm.Value, s string) {
		if obj := heapObj(ip, recv); obj != nil {
			if obj.Fields == nil {
				obj.Fields = make(map[string]vm.Value)
			}
			obj.Fields[sbField] = vm.StringValue(s)
		}
	}
	getSB := func(ip *vm.Interpreter, recv vm.Value) string {
		obj := heapObj(ip, recv)
		if obj == nil {
			return ""
		}
		if v, ok := obj.Fields[sbField]; ok {
			return v.S
		}
		return ""
	}

	f.on("<init>", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		setSB(ip, recv, "")
		return voidVal(), "StringBuilder.<init>"
	})
	f.on("<init>", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if args[0].Kind == vm.KindString {
			setSB(ip, recv, args[0].S)
		} else {
			setSB(ip, recv, "")
		}
		return voidVal(), "StringBuilder.<init>"
	})
	f.on("append", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		setSB(ip, recv, getSB(ip, recv)+str(args[0], ip))
		return recv, "StringBuilder.append"
	})
	f.on("toString", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(getSB(ip, recv)), "StringBuilder.toString"
	})
	f.on("length", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(len([]rune(getSB(ip, recv)))), "StringBuilder.length"
	})
	f.on("reverse", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r := []rune(getSB(ip, recv))
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		setSB(ip, recv, string(r))
		return recv, "StringBuilder.reverse"
	})
	f.on("delete", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		s := getSB(ip, recv)
		setSB(ip, recv, substring(s, 0, int(argInt(args, 0)))+substring(s, int(argInt(args, 1)), -1))
		return recv, "StringBuilder.delete"
	})
	f.on("insert", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		s := getSB(ip, recv)
		at := int(argInt(args, 0))
		var sb strings.Builder
		sb.WriteString(substring(s, 0, at))
		sb.WriteString(str(args[1], ip))
		sb.WriteString(substring(s, at, -1))
		setSB(ip, recv, sb.String())
		return recv, "StringBuilder.insert"
	})
	f.on("charAt", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r := []rune(getSB(ip, recv))
		i := int(argInt(args, 0))
		if i < 0 || i >= len(r) {
			return vm.CharValue(0), "StringBuilder.charAt out of range"
		}
		return vm.CharValue(r[i]), "StringBuilder.charAt"
	})
	return f
}
