package stdlib

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/j8sim/engine/internal/vm"
)

// stringFamily implements spec.md §4.5's String bullet: length, charAt,
// case conversion (Unicode-correct via golang.org/x/text/cases), trimming,
// search, comparison, hashCode's exact Java fold, split, and format.
func stringFamily() *family {
	f := newFamily("String", exactly("String"))

	f.on("length", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(len([]rune(str(recv, ip)))), "String.length"
	})
	f.on("isEmpty", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(str(recv, ip) == ""), "String.isEmpty"
	})
	f.on("isBlank", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(strings.TrimSpace(str(recv, ip)) == ""), "String.isBlank"
	})
	f.on("charAt", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r := []rune(str(recv, ip))
		i := int(argInt(args, 0))
		if i < 0 || i >= len(r) {
			return vm.CharValue(0), "String.charAt out of range"
		}
		return vm.CharValue(r[i]), "String.charAt"
	})
	f.on("codePointAt", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r := []rune(str(recv, ip))
		i := int(argInt(args, 0))
		if i < 0 || i >= len(r) {
			return vm.IntValue(0), "String.codePointAt out of range"
		}
		return vm.IntValue(int64(r[i])), "String.codePointAt"
	})
	f.on("substring", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(substring(str(recv, ip), int(argInt(args, 0)), -1)), "String.substring"
	})
	f.on("substring", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(substring(str(recv, ip), int(argInt(args, 0)), int(argInt(args, 1)))), "String.substring"
	})
	f.on("indexOf", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(runeIndex(str(recv, ip), argStr(args, 0, ip), 0)), "String.indexOf"
	})
	f.on("indexOf", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(runeIndex(str(recv, ip), argStr(args, 0, ip), int(argInt(args, 1)))), "String.indexOf"
	})
	f.on("lastIndexOf", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r, sub := []rune(str(recv, ip)), argStr(args, 0, ip)
		idx := strings.LastIndex(string(r), sub)
		if idx < 0 {
			return intVal(-1), "String.lastIndexOf"
		}
		return intVal(len([]rune(string(r)[:idx]))), "String.lastIndexOf"
	})
	f.on("contains", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(strings.Contains(str(recv, ip), argStr(args, 0, ip))), "String.contains"
	})
	f.on("startsWith", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(strings.HasPrefix(str(recv, ip), argStr(args, 0, ip))), "String.startsWith"
	})
	f.on("endsWith", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(strings.HasSuffix(str(recv, ip), argStr(args, 0, ip))), "String.endsWith"
	})
	f.on("toLowerCase", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(cases.Lower(language.Und).String(str(recv, ip))), "String.toLowerCase"
	})
	f.on("toUpperCase", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(cases.Upper(language.Und).String(str(recv, ip))), "String.toUpperCase"
	})
	f.on("trim", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(strings.TrimSpace(str(recv, ip))), "String.trim"
	})
	f.on("strip", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(strings.TrimSpace(str(recv, ip))), "String.strip"
	})
	f.on("stripLeading", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(strings.TrimLeft(str(recv, ip), " \t\n\r")), "String.stripLeading"
	})
	f.on("stripTrailing", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(strings.TrimRight(str(recv, ip), " \t\n\r")), "String.stripTrailing"
	})
	f.on("repeat", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		n := int(argInt(args, 0))
		if n < 0 {
			n = 0
		}
		return vm.StringValue(strings.Repeat(str(recv, ip), n)), "String.repeat"
	})
	f.on("concat", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(str(recv, ip) + argStr(args, 0, ip)), "String.concat"
	})
	f.on("replace", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(strings.ReplaceAll(str(recv, ip), argStr(args, 0, ip), argStr(args, 1, ip))), "String.replace"
	})
	f.on("replaceAll", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		re, err := regexp.Compile(argStr(args, 0, ip))
		if err != nil {
			return vm.StringValue(str(recv, ip)), "String.replaceAll: invalid regex"
		}
		return vm.StringValue(re.ReplaceAllString(str(recv, ip), javaReplacement(argStr(args, 1, ip)))), "String.replaceAll"
	})
	f.on("replaceFirst", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		re, err := regexp.Compile(argStr(args, 0, ip))
		if err != nil {
			return vm.StringValue(str(recv, ip)), "String.replaceFirst: invalid regex"
		}
		s := str(recv, ip)
		loc := re.FindStringIndex(s)
		if loc == nil {
			return vm.StringValue(s), "String.replaceFirst"
		}
		replaced := re.ReplaceAllString(s[loc[0]:loc[1]], javaReplacement(argStr(args, 1, ip)))
		return vm.StringValue(s[:loc[0]] + replaced + s[loc[1]:]), "String.replaceFirst"
	})
	f.on("matches", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		re, err := regexp.Compile("^(?:" + argStr(args, 0, ip) + ")$")
		if err != nil {
			return boolVal(false), "String.matches: invalid regex"
		}
		return boolVal(re.MatchString(str(recv, ip))), "String.matches"
	})
	f.on("equals", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return boolVal(str(recv, ip) == argStr(args, 0, ip)), "String.equals"
	})
	f.on("equalsIgnoreCase", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		fold := cases.Fold()
		return boolVal(fold.String(str(recv, ip)) == fold.String(argStr(args, 0, ip))), "String.equalsIgnoreCase"
	})
	f.on("compareTo", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(strings.Compare(str(recv, ip), argStr(args, 0, ip))), "String.compareTo"
	})
	f.on("compareToIgnoreCase", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		fold := cases.Fold()
		return intVal(strings.Compare(fold.String(str(recv, ip)), fold.String(argStr(args, 0, ip)))), "String.compareToIgnoreCase"
	})
	f.on("hashCode", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return intVal(int(javaStringHash(str(recv, ip)))), "String.hashCode"
	})
	f.on("toString", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(str(recv, ip)), "String.toString"
	})
	f.on("intern", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(str(recv, ip)), "String.intern"
	})
	f.on("toCharArray", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		r := []rune(str(recv, ip))
		obj := ip.State().Heap.NewArray("char", len(r))
		for i, c := range r {
			obj.Elements[i] = vm.CharValue(c)
		}
		return vm.ArrayValue(obj.ID), "String.toCharArray"
	})
	f.on("split", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return splitString(ip, str(recv, ip), argStr(args, 0, ip), -1), "String.split"
	})
	f.on("split", 2, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return splitString(ip, str(recv, ip), argStr(args, 0, ip), int(argInt(args, 1))), "String.split"
	})
	f.on("valueOf", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(str(args[0], ip)), "String.valueOf"
	})
	f.on("copyValueOf", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, args[0])
		if obj == nil || !obj.IsArray {
			return vm.StringValue(""), "String.copyValueOf"
		}
		var sb strings.Builder
		for _, e := range obj.Elements {
			sb.WriteRune(rune(e.I))
		}
		return vm.StringValue(sb.String()), "String.copyValueOf"
	})
	f.on("format", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return vm.StringValue(javaFormat(argStr(args, 0, ip), nil, ip)), "String.format"
	})
	f.on("getBytes", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		bs := []byte(str(recv, ip))
		obj := ip.State().Heap.NewArray("byte", len(bs))
		for i, b := range bs {
			obj.Elements[i] = vm.IntValue(int64(int8(b)))
		}
		return vm.ArrayValue(obj.ID), "String.getBytes"
	})
	// String.format/join/valueOf with variable extra args handled generically
	// by variadic-friendly registration below, since the dispatch key only
	// encodes arity: register the common 2..4-arg format/join shapes.
	for n := 2; n <= 5; n++ {
		n := n
		f.on("format", n, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			return vm.StringValue(javaFormat(argStr(args, 0, ip), args[1:], ip)), "String.format"
		})
		f.on("join", n, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
			parts := make([]string, 0, len(args)-1)
			for _, a := range args[1:] {
				parts = append(parts, str(a, ip))
			}
			return vm.StringValue(strings.Join(parts, argStr(args, 0, ip))), "String.join"
		})
	}
	return f
}

func substring(s string, from, to int) string {
	r := []rune(s)
	if from < 0 {
		from = 0
	}
	if from > len(r) {
		from = len(r)
	}
	end := to
	if end < 0 || end > len(r) {
		end = len(r)
	}
	if end < from {
		end = from
	}
	return string(r[from:end])
}

func runeIndex(s, sub string, fromRune int) int {
	r := []rune(s)
	if fromRune < 0 {
		fromRune = 0
	}
	if fromRune > len(r) {
		return -1
	}
	idx := strings.Index(string(r[fromRune:]), sub)
	if idx < 0 {
		return -1
	}
	return fromRune + len([]rune(string(r[fromRune:])[:idx]))
}

// javaStringHash implements Java's String.hashCode(): h = 31*h + c, folded
// as a 32-bit signed integer, per spec.md §4.5/§8.
func javaStringHash(s string) int32 {
	var h int32
	for _, c := range s {
		h = 31*h + c
	}
	return h
}

func javaReplacement(repl string) string {
	return strings.ReplaceAll(repl, "$", "$$")
}

func splitString(ip *vm.Interpreter, s, pattern string, limit int) vm.Value {
	re, err := regexp.Compile(pattern)
	var parts []string
	if err != nil {
		parts = strings.Split(s, pattern)
	} else if limit > 0 {
		parts = re.Split(s, limit)
	} else {
		parts = re.Split(s, -1)
		if limit == 0 {
			for len(parts) > 0 && parts[len(parts)-1] == "" {
				parts = parts[:len(parts)-1]
			}
		}
	}
	obj := ip.State().Heap.NewArray("String", len(parts))
	for i, p := range parts {
		obj.Elements[i] = vm.StringValue(p)
	}
	return vm.ArrayValue(obj.ID)
}

// javaFormat implements the format-specifier subset named in spec.md §4.5:
// %d %i %o %u %x %X %e %f %g %s %c %b %n.
func javaFormat(pattern string, args []vm.Value, ip *vm.Interpreter) string {
	var out strings.Builder
	argi := 0
	next := func() vm.Value {
		if argi < len(args) {
			v := args[argi]
			argi++
			return v
		}
		return vm.NullValue()
	}
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if c != '%' || i+1 >= len(pattern) {
			out.WriteByte(c)
			i++
			continue
		}
		j := i + 1
		for j < len(pattern) && strings.ContainsRune("0123456789.-+ ", rune(pattern[j])) {
			j++
		}
		if j >= len(pattern) {
			out.WriteByte(c)
			i++
			continue
		}
		verb := pattern[j]
		switch verb {
		case 'd', 'i':
			fmt.Fprintf(&out, "%d", next().AsInt64())
		case 'o':
			fmt.Fprintf(&out, "%o", next().AsInt64())
		case 'u':
			fmt.Fprintf(&out, "%d", next().AsInt64())
		case 'x':
			fmt.Fprintf(&out, "%x", next().AsInt64())
		case 'X':
			fmt.Fprintf(&out, "%X", next().AsInt64())
		case 'e':
			fmt.Fprintf(&out, "%e", next().AsFloat64())
		case 'f':
			fmt.Fprintf(&out, "%f", next().AsFloat64())
		case 'g':
			fmt.Fprintf(&out, "%g", next().AsFloat64())
		case 's':
			out.WriteString(str(next(), ip))
		case 'c':
			out.WriteRune(rune(next().AsInt64()))
		case 'b':
			v := next()
			fmt.Fprintf(&out, "%t", v.Kind == vm.KindBoolean && v.B)
		case 'n':
			out.WriteByte('\n')
		case '%':
			out.WriteByte('%')
		default:
			out.WriteString(pattern[i : j+1])
		}
		i = j + 1
	}
	return out.String()
}
