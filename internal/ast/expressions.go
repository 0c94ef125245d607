package ast

import (
	"bytes"
	"strings"

	"github.com/j8sim/engine/internal/lexer"
)

// IntegerLiteral is an integer literal; a trailing L/l suffix is accepted by
// the lexer and ignored, per spec.md §4.1.
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (n *IntegerLiteral) expressionNode()      {}
func (n *IntegerLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *IntegerLiteral) String() string       { return n.Token.Literal }
func (n *IntegerLiteral) Pos() lexer.Position  { return n.Token.Pos }

// FloatLiteral is a floating-point literal (double by default; an f/F
// suffix marks it float, per spec.md §4.1 — the distinction is cosmetic,
// both are stored as float64).
type FloatLiteral struct {
	Token lexer.Token
	Value float64
	IsF32 bool
}

func (n *FloatLiteral) expressionNode()      {}
func (n *FloatLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *FloatLiteral) String() string       { return n.Token.Literal }
func (n *FloatLiteral) Pos() lexer.Position  { return n.Token.Pos }

// StringLiteral is a "..." literal with escapes already expanded.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StringLiteral) String() string       { return "\"" + n.Value + "\"" }
func (n *StringLiteral) Pos() lexer.Position  { return n.Token.Pos }

// CharLiteral is a 'c' literal with escapes already expanded.
type CharLiteral struct {
	Token lexer.Token
	Value rune
}

func (n *CharLiteral) expressionNode()      {}
func (n *CharLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *CharLiteral) String() string       { return "'" + string(n.Value) + "'" }
func (n *CharLiteral) Pos() lexer.Position  { return n.Token.Pos }

// BooleanLiteral is the `true`/`false` literal.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (n *BooleanLiteral) expressionNode()      {}
func (n *BooleanLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *BooleanLiteral) String() string       { return n.Token.Literal }
func (n *BooleanLiteral) Pos() lexer.Position  { return n.Token.Pos }

// NullLiteral is the `null` literal.
type NullLiteral struct{ Token lexer.Token }

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) String() string       { return "null" }
func (n *NullLiteral) Pos() lexer.Position  { return n.Token.Pos }

// ThisExpr is the `this` reference.
type ThisExpr struct{ Token lexer.Token }

func (n *ThisExpr) expressionNode()      {}
func (n *ThisExpr) TokenLiteral() string { return n.Token.Literal }
func (n *ThisExpr) String() string       { return "this" }
func (n *ThisExpr) Pos() lexer.Position  { return n.Token.Pos }

// SuperExpr is the `super` reference, used as a call target or prefix.
type SuperExpr struct{ Token lexer.Token }

func (n *SuperExpr) expressionNode()      {}
func (n *SuperExpr) TokenLiteral() string { return n.Token.Literal }
func (n *SuperExpr) String() string       { return "super" }
func (n *SuperExpr) Pos() lexer.Position  { return n.Token.Pos }

// AssignExpr is `target op= value`; Op is one of "=", "+=", "-=", "*=", "/=".
type AssignExpr struct {
	Token  lexer.Token
	Target Expression
	Op     string
	Value  Expression
}

func (n *AssignExpr) expressionNode()      {}
func (n *AssignExpr) TokenLiteral() string { return n.Token.Literal }
func (n *AssignExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *AssignExpr) String() string {
	return "(" + n.Target.String() + " " + n.Op + " " + n.Value.String() + ")"
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Token lexer.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (n *TernaryExpr) expressionNode()      {}
func (n *TernaryExpr) TokenLiteral() string { return n.Token.Literal }
func (n *TernaryExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *TernaryExpr) String() string {
	return "(" + n.Cond.String() + " ? " + n.Then.String() + " : " + n.Else.String() + ")"
}

// BinaryExpr is `left op right` for every infix operator in spec.md §4.2's
// precedence table (||, &&, ==, !=, <, <=, >, >=, instanceof, +, -, *, /, %).
type BinaryExpr struct {
	Token lexer.Token
	Left  Expression
	Op    string
	Right Expression
}

func (n *BinaryExpr) expressionNode()      {}
func (n *BinaryExpr) TokenLiteral() string { return n.Token.Literal }
func (n *BinaryExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

// UnaryExpr is a prefix (!x, -x, ++x, --x) or postfix (x++, x--) operator.
type UnaryExpr struct {
	Token   lexer.Token
	Op      string
	Operand Expression
	Prefix  bool
}

func (n *UnaryExpr) expressionNode()      {}
func (n *UnaryExpr) TokenLiteral() string { return n.Token.Literal }
func (n *UnaryExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *UnaryExpr) String() string {
	if n.Prefix {
		return "(" + n.Op + n.Operand.String() + ")"
	}
	return "(" + n.Operand.String() + n.Op + ")"
}

// InstanceOfExpr is `expr instanceof Type`.
type InstanceOfExpr struct {
	Token lexer.Token
	Expr  Expression
	Type  *TypeNode
}

func (n *InstanceOfExpr) expressionNode()      {}
func (n *InstanceOfExpr) TokenLiteral() string { return n.Token.Literal }
func (n *InstanceOfExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *InstanceOfExpr) String() string {
	return "(" + n.Expr.String() + " instanceof " + n.Type.String() + ")"
}

// CastExpr is `(Type) expr`.
type CastExpr struct {
	Token lexer.Token
	Type  *TypeNode
	Expr  Expression
}

func (n *CastExpr) expressionNode()      {}
func (n *CastExpr) TokenLiteral() string { return n.Token.Literal }
func (n *CastExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *CastExpr) String() string       { return "((" + n.Type.String() + ")" + n.Expr.String() + ")" }

// NewObjectExpr is `new ClassName(args...)`.
type NewObjectExpr struct {
	Token     lexer.Token
	ClassName string
	Args      []Expression
}

func (n *NewObjectExpr) expressionNode()      {}
func (n *NewObjectExpr) TokenLiteral() string { return n.Token.Literal }
func (n *NewObjectExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *NewObjectExpr) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return "new " + n.ClassName + "(" + strings.Join(args, ", ") + ")"
}

// NewArrayExpr is `new Type[dim]...` or `new Type[]{elem, ...}`.
type NewArrayExpr struct {
	Token    lexer.Token
	ElemType *TypeNode
	Dims     []Expression  // evaluated dimension sizes, outermost first
	Elements []Expression  // literal initializer elements (nil unless `{...}` form)
}

func (n *NewArrayExpr) expressionNode()      {}
func (n *NewArrayExpr) TokenLiteral() string { return n.Token.Literal }
func (n *NewArrayExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *NewArrayExpr) String() string {
	var out bytes.Buffer
	out.WriteString("new " + n.ElemType.String() + "[]")
	return out.String()
}

// FieldAccessExpr is `object.field`.
type FieldAccessExpr struct {
	Token  lexer.Token
	Object Expression
	Name   string
}

func (n *FieldAccessExpr) expressionNode()      {}
func (n *FieldAccessExpr) TokenLiteral() string { return n.Token.Literal }
func (n *FieldAccessExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *FieldAccessExpr) String() string       { return n.Object.String() + "." + n.Name }

// IndexExpr is `array[index]`.
type IndexExpr struct {
	Token lexer.Token
	Array Expression
	Index Expression
}

func (n *IndexExpr) expressionNode()      {}
func (n *IndexExpr) TokenLiteral() string { return n.Token.Literal }
func (n *IndexExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *IndexExpr) String() string       { return n.Array.String() + "[" + n.Index.String() + "]" }

// CallExpr is `callee(args...)`; Callee is usually a FieldAccessExpr (a
// method call) or an Identifier (a bare function-style call).
type CallExpr struct {
	Token  lexer.Token
	Callee Expression
	Args   []Expression
}

func (n *CallExpr) expressionNode()      {}
func (n *CallExpr) TokenLiteral() string { return n.Token.Literal }
func (n *CallExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *CallExpr) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// MethodRefExpr is `Object::method`, a bound or unbound method reference.
type MethodRefExpr struct {
	Token  lexer.Token
	Object Expression
	Method string
}

func (n *MethodRefExpr) expressionNode()      {}
func (n *MethodRefExpr) TokenLiteral() string { return n.Token.Literal }
func (n *MethodRefExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *MethodRefExpr) String() string       { return n.Object.String() + "::" + n.Method }

// LambdaExpr is `(params) -> body`, where Body is either an Expression or a
// *BlockStmt. LAMBDA_CREATE only ever records its descriptor; the body is
// never executed (spec.md §9 "Lambda bodies").
type LambdaExpr struct {
	Token  lexer.Token
	Params []string
	Body   Node
}

func (n *LambdaExpr) expressionNode()      {}
func (n *LambdaExpr) TokenLiteral() string { return n.Token.Literal }
func (n *LambdaExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *LambdaExpr) String() string {
	return "(" + strings.Join(n.Params, ", ") + ") -> " + n.Body.String()
}
