// Package vm implements the stepping interpreter described by spec.md
// §4.4: the Value model, heap, stack frames, thread scheduler, monitor
// table, and the step algorithm that ties them together.
package vm

import (
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value, per spec.md §4.4 ("tagged Value
// variant: Primitive/Reference/Array/Lambda").
type Kind string

const (
	KindInt     Kind = "int"
	KindLong    Kind = "long"
	KindFloat   Kind = "float"
	KindDouble  Kind = "double"
	KindBoolean Kind = "boolean"
	KindChar    Kind = "char"
	KindString  Kind = "string"
	KindNull    Kind = "null"
	KindRef     Kind = "ref"    // object reference, Ref is a heap id
	KindArray   Kind = "array"  // array reference, Ref is a heap id
	KindLambda  Kind = "lambda" // Lambda carries a descriptor, no heap id
)

// LambdaInfo is the descriptor recorded by LAMBDA_CREATE; its body is never
// executed, per spec.md §4.3/§9.
type LambdaInfo struct {
	Params     []string
	BodyMarker string
}

// Value is the tagged union every local slot, operand-stack cell, and
// field holds.
type Value struct {
	Kind   Kind
	I      int64  // int, long, char (as a Unicode code point)
	F      float64 // float, double
	B      bool    // boolean
	S      string  // string
	Ref    int     // ref, array: heap object id
	Lambda *LambdaInfo
}

func IntValue(i int64) Value     { return Value{Kind: KindInt, I: i} }
func LongValue(i int64) Value    { return Value{Kind: KindLong, I: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, F: f} }
func DoubleValue(f float64) Value{ return Value{Kind: KindDouble, F: f} }
func BoolValue(b bool) Value     { return Value{Kind: KindBoolean, B: b} }
func CharValue(c rune) Value     { return Value{Kind: KindChar, I: int64(c)} }
func StringValue(s string) Value { return Value{Kind: KindString, S: s} }
func NullValue() Value           { return Value{Kind: KindNull} }
func RefValue(id int) Value      { return Value{Kind: KindRef, Ref: id} }
func ArrayValue(id int) Value    { return Value{Kind: KindArray, Ref: id} }

// IsNumeric reports whether v participates in arithmetic directly.
func (v Value) IsNumeric() bool {
	switch v.Kind {
	case KindInt, KindLong, KindFloat, KindDouble, KindChar:
		return true
	default:
		return false
	}
}

// AsFloat64 returns v's numeric value as a float64, for mixed-type
// arithmetic; non-numeric values return 0.
func (v Value) AsFloat64() float64 {
	switch v.Kind {
	case KindFloat, KindDouble:
		return v.F
	case KindInt, KindLong, KindChar:
		return float64(v.I)
	default:
		return 0
	}
}

// AsInt64 returns v's numeric value truncated to an int64.
func (v Value) AsInt64() int64 {
	switch v.Kind {
	case KindFloat, KindDouble:
		return int64(v.F)
	case KindInt, KindLong, KindChar:
		return v.I
	default:
		return 0
	}
}

// IsFloatingKind reports whether v's kind is float or double, used to
// decide whether an arithmetic result should be floating.
func (v Value) IsFloatingKind() bool {
	return v.Kind == KindFloat || v.Kind == KindDouble
}

// ValueToString renders any Value as its Java-ish textual form. Total: it
// never panics, per spec.md §8's testable properties.
func ValueToString(v Value, heap *Heap) string {
	switch v.Kind {
	case KindInt, KindLong:
		return strconv.FormatInt(v.I, 10)
	case KindChar:
		return string(rune(v.I))
	case KindFloat, KindDouble:
		return formatJavaFloat(v.F)
	case KindBoolean:
		return strconv.FormatBool(v.B)
	case KindString:
		return v.S
	case KindNull:
		return "null"
	case KindLambda:
		return "<lambda>"
	case KindRef, KindArray:
		if heap != nil {
			if obj, ok := heap.Objects[v.Ref]; ok {
				return obj.ToStringDefault()
			}
		}
		return fmt.Sprintf("ref@%d", v.Ref)
	default:
		return ""
	}
}

func formatJavaFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return s
		}
	}
	return s + ".0"
}

// ValuesEqual implements reference `==`/`!=` (compare object ids) and
// primitive equality, per spec.md §4.4.1.
func ValuesEqual(a, b Value) bool {
	if a.Kind == KindNull || b.Kind == KindNull {
		return a.Kind == b.Kind
	}
	if (a.Kind == KindRef || a.Kind == KindArray) && (b.Kind == KindRef || b.Kind == KindArray) {
		return a.Ref == b.Ref
	}
	if a.IsNumeric() && b.IsNumeric() {
		if a.IsFloatingKind() || b.IsFloatingKind() {
			return a.AsFloat64() == b.AsFloat64()
		}
		return a.AsInt64() == b.AsInt64()
	}
	if a.Kind == KindBoolean && b.Kind == KindBoolean {
		return a.B == b.B
	}
	if a.Kind == KindString && b.Kind == KindString {
		return a.S == b.S
	}
	return false
}
