package bytecode

import (
	"fmt"

	"github.com/j8sim/engine/internal/ast"
)

func (mc *methodCompiler) compileExpr(e ast.Expression) {
	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		mc.emit(Instruction{Op: LOAD_CONST, IntOperand: ex.Value, ConstKind: "int"})
	case *ast.FloatLiteral:
		mc.emit(Instruction{Op: LOAD_CONST, FloatOp: ex.Value, ConstKind: "float"})
	case *ast.StringLiteral:
		mc.emit(Instruction{Op: LOAD_CONST, StrOperand: ex.Value, ConstKind: "string"})
	case *ast.CharLiteral:
		mc.emit(Instruction{Op: LOAD_CONST, IntOperand: int64(ex.Value), ConstKind: "int"})
	case *ast.BooleanLiteral:
		mc.emit(Instruction{Op: LOAD_CONST, BoolOp: ex.Value, IntOperand: boolToInt(ex.Value), ConstKind: "bool"})
	case *ast.NullLiteral:
		mc.emit(Instruction{Op: PUSH_NULL})
	case *ast.ThisExpr:
		mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: 0, LocalName: "this"})
	case *ast.SuperExpr:
		mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: 0, LocalName: "this"})
	case *ast.Identifier:
		mc.compileIdentifierLoad(ex)
	case *ast.AssignExpr:
		mc.compileAssign(ex)
	case *ast.TernaryExpr:
		mc.compileTernary(ex)
	case *ast.BinaryExpr:
		mc.compileBinary(ex)
	case *ast.UnaryExpr:
		mc.compileUnary(ex)
	case *ast.InstanceOfExpr:
		mc.compileExpr(ex.Expr)
		mc.emit(Instruction{Op: INSTANCEOF, StrOperand: ex.Type.Name})
	case *ast.CastExpr:
		mc.compileExpr(ex.Expr)
		mc.emit(Instruction{Op: CHECKCAST, StrOperand: ex.Type.Name})
	case *ast.NewObjectExpr:
		mc.compileNewObject(ex)
	case *ast.NewArrayExpr:
		mc.compileNewArray(ex)
	case *ast.FieldAccessExpr:
		mc.compileStaticMemberAccess(ex)
	case *ast.IndexExpr:
		mc.compileExpr(ex.Array)
		mc.compileExpr(ex.Index)
		mc.emit(Instruction{Op: ARRAYLOAD})
	case *ast.CallExpr:
		mc.compileCall(ex)
	case *ast.MethodRefExpr:
		mc.compileExpr(ex.Object)
		mc.emit(Instruction{Op: LAMBDA_CREATE, StrOperand: ex.Method})
	case *ast.LambdaExpr:
		mc.emit(Instruction{Op: LAMBDA_CREATE, StrOperand: lambdaDescriptor(ex)})
	default:
		mc.c.errorf(e.Pos().Line, "unsupported expression %T", e)
		mc.emit(Instruction{Op: PUSH_NULL})
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func lambdaDescriptor(l *ast.LambdaExpr) string {
	return fmt.Sprintf("(%d params)", len(l.Params))
}

// isClassName reports whether name refers to a well-known static-utility
// class or a user-declared class, used to tell a static member call from an
// instance call on a same-named local, per spec.md §4.3.
func (mc *methodCompiler) isClassName(name string) bool {
	if staticUtilityClasses[name] {
		return true
	}
	_, ok := mc.c.prog.Classes[name]
	return ok
}

func (mc *methodCompiler) compileIdentifierLoad(id *ast.Identifier) {
	if slot, ok := mc.resolveLocal(id.Value); ok {
		mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: int64(slot), LocalName: id.Value})
		return
	}
	if mc.isClassName(id.Value) {
		// A bare class name used as an expression (e.g. the receiver of a
		// static call) carries no runtime value of its own; callers that
		// need static dispatch inspect the AST node directly rather than
		// relying on this load.
		mc.emit(Instruction{Op: PUSH_NULL})
		return
	}
	// Implicit field access on `this`.
	mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: 0, LocalName: "this"})
	mc.emit(Instruction{Op: GETFIELD, StrOperand: id.Value})
}

// compileStaticMemberAccess handles a FieldAccessExpr whose object is a
// static-utility class name, e.g. `Math.PI`: the stdlib registers these as
// 0-arg INVOKE_STATIC handlers (mathfn.go's Math.PI), not ordinary
// instance fields, so a plain GETFIELD against that class name would hit a
// null receiver instead. Ordinary field access falls through unchanged.
func (mc *methodCompiler) compileStaticMemberAccess(ex *ast.FieldAccessExpr) {
	if id, ok := ex.Object.(*ast.Identifier); ok {
		if _, isLocal := mc.resolveLocal(id.Value); !isLocal && staticUtilityClasses[id.Value] {
			mc.emit(Instruction{
				Op: INVOKE_STATIC, StrOperand: fmt.Sprintf("%s(0)", ex.Name),
				ArgCount: 0, ClassName: id.Value,
			})
			return
		}
	}
	mc.compileExpr(ex.Object)
	mc.emit(Instruction{Op: GETFIELD, StrOperand: ex.Name})
}

func (mc *methodCompiler) compileBinary(ex *ast.BinaryExpr) {
	mc.compileExpr(ex.Left)
	mc.compileExpr(ex.Right)
	switch ex.Op {
	case "+":
		mc.emit(Instruction{Op: ADD})
	case "-":
		mc.emit(Instruction{Op: SUB})
	case "*":
		mc.emit(Instruction{Op: MUL})
	case "/":
		mc.emit(Instruction{Op: DIV})
	case "%":
		mc.emit(Instruction{Op: MOD})
	case "==":
		mc.emit(Instruction{Op: CMP_EQ})
	case "!=":
		mc.emit(Instruction{Op: CMP_NE})
	case "<":
		mc.emit(Instruction{Op: CMP_LT})
	case "<=":
		mc.emit(Instruction{Op: CMP_LE})
	case ">":
		mc.emit(Instruction{Op: CMP_GT})
	case ">=":
		mc.emit(Instruction{Op: CMP_GE})
	case "&&":
		mc.emit(Instruction{Op: AND})
	case "||":
		mc.emit(Instruction{Op: OR})
	default:
		mc.c.errorf(ex.Pos().Line, "unsupported binary operator %q", ex.Op)
	}
}

func (mc *methodCompiler) compileUnary(ex *ast.UnaryExpr) {
	switch ex.Op {
	case "++", "--":
		mc.compileIncDec(ex)
	case "!":
		mc.compileExpr(ex.Operand)
		mc.emit(Instruction{Op: NOT})
	case "-":
		mc.compileExpr(ex.Operand)
		mc.emit(Instruction{Op: NEG})
	case "+":
		mc.compileExpr(ex.Operand)
	default:
		mc.c.errorf(ex.Pos().Line, "unsupported unary operator %q", ex.Op)
	}
}

// compileIncDec lowers x++/x--/++x/--x per spec.md §4.3's load/dup/const1
// sequence. Only Identifier and FieldAccessExpr lvalues are supported,
// which covers every increment target the grammar produces.
func (mc *methodCompiler) compileIncDec(ex *ast.UnaryExpr) {
	op := ADD
	if ex.Op == "--" {
		op = SUB
	}

	if slot, name, ok := mc.asLocalTarget(ex.Operand); ok {
		if ex.Prefix {
			mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: int64(slot), LocalName: name})
			mc.emit(Instruction{Op: LOAD_CONST, IntOperand: 1})
			mc.emit(Instruction{Op: op})
			mc.emit(Instruction{Op: DUP})
			mc.emit(Instruction{Op: STORE_LOCAL, IntOperand: int64(slot), LocalName: name})
		} else {
			mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: int64(slot), LocalName: name})
			mc.emit(Instruction{Op: DUP})
			mc.emit(Instruction{Op: LOAD_CONST, IntOperand: 1})
			mc.emit(Instruction{Op: op})
			mc.emit(Instruction{Op: STORE_LOCAL, IntOperand: int64(slot), LocalName: name})
		}
		return
	}

	fieldName, objExpr := mc.asFieldTarget(ex.Operand)
	if ex.Prefix {
		mc.compileExpr(objExpr)
		mc.emit(Instruction{Op: DUP})
		mc.emit(Instruction{Op: GETFIELD, StrOperand: fieldName})
		mc.emit(Instruction{Op: LOAD_CONST, IntOperand: 1})
		mc.emit(Instruction{Op: op})
		mc.emit(Instruction{Op: DUP_X1})
		mc.emit(Instruction{Op: PUTFIELD, StrOperand: fieldName})
	} else {
		mc.compileExpr(objExpr)
		mc.emit(Instruction{Op: DUP})
		mc.emit(Instruction{Op: GETFIELD, StrOperand: fieldName})
		mc.emit(Instruction{Op: DUP_X1})
		mc.emit(Instruction{Op: LOAD_CONST, IntOperand: 1})
		mc.emit(Instruction{Op: op})
		mc.emit(Instruction{Op: PUTFIELD, StrOperand: fieldName})
	}
}

// asLocalTarget reports whether expr names a resolvable local variable
// (directly, or via a bare identifier that isn't a class name or field).
func (mc *methodCompiler) asLocalTarget(expr ast.Expression) (int, string, bool) {
	id, ok := expr.(*ast.Identifier)
	if !ok {
		return 0, "", false
	}
	slot, ok := mc.resolveLocal(id.Value)
	return slot, id.Value, ok
}

// asFieldTarget resolves expr to a field name and the object expression it
// is read from, defaulting a bare identifier to an implicit `this`.
func (mc *methodCompiler) asFieldTarget(expr ast.Expression) (string, ast.Expression) {
	switch ex := expr.(type) {
	case *ast.FieldAccessExpr:
		return ex.Name, ex.Object
	case *ast.Identifier:
		return ex.Value, &ast.ThisExpr{Token: ex.Token}
	default:
		return "", &ast.ThisExpr{}
	}
}

func (mc *methodCompiler) compileAssign(ex *ast.AssignExpr) {
	op := binaryOpForCompound(ex.Op)

	if slot, name, ok := mc.asLocalTarget(ex.Target); ok {
		if op != NOP {
			mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: int64(slot), LocalName: name})
			mc.compileExpr(ex.Value)
			mc.emit(Instruction{Op: op})
		} else {
			mc.compileExpr(ex.Value)
		}
		mc.emit(Instruction{Op: DUP})
		mc.emit(Instruction{Op: STORE_LOCAL, IntOperand: int64(slot), LocalName: name})
		return
	}

	if idx, ok := ex.Target.(*ast.IndexExpr); ok {
		mc.compileExpr(idx.Array)
		mc.compileExpr(idx.Index)
		if op != NOP {
			mc.emit(Instruction{Op: DUP_X1})
			mc.emit(Instruction{Op: SWAP})
			mc.c.errorf(ex.Pos().Line, "compound assignment to array elements is not supported")
		}
		mc.compileExpr(ex.Value)
		mc.emit(Instruction{Op: ARRAYSTORE})
		return
	}

	fieldName, objExpr := mc.asFieldTarget(ex.Target)
	mc.compileExpr(objExpr)
	if op != NOP {
		mc.emit(Instruction{Op: DUP})
		mc.emit(Instruction{Op: GETFIELD, StrOperand: fieldName})
		mc.compileExpr(ex.Value)
		mc.emit(Instruction{Op: op})
		mc.emit(Instruction{Op: DUP_X1})
		mc.emit(Instruction{Op: PUTFIELD, StrOperand: fieldName})
	} else {
		mc.compileExpr(ex.Value)
		mc.emit(Instruction{Op: DUP_X1})
		mc.emit(Instruction{Op: PUTFIELD, StrOperand: fieldName})
	}
}

func binaryOpForCompound(op string) OpCode {
	switch op {
	case "+=":
		return ADD
	case "-=":
		return SUB
	case "*=":
		return MUL
	case "/=":
		return DIV
	default:
		return NOP
	}
}

// compileTernary shares the IF_FALSE/GOTO pattern used for if/else, per
// spec.md §4.3.
func (mc *methodCompiler) compileTernary(ex *ast.TernaryExpr) {
	mc.compileExpr(ex.Cond)
	elseLabel := mc.newLabel()
	endLabel := mc.newLabel()
	mc.emitJump(IF_FALSE, elseLabel)
	mc.compileExpr(ex.Then)
	mc.emitJump(GOTO, endLabel)
	mc.placeLabel(elseLabel)
	mc.compileExpr(ex.Else)
	mc.placeLabel(endLabel)
}

func (mc *methodCompiler) compileNewObject(ex *ast.NewObjectExpr) {
	mc.emit(Instruction{Op: NEW, StrOperand: ex.ClassName})
	mc.emit(Instruction{Op: DUP})
	for _, a := range ex.Args {
		mc.compileExpr(a)
	}
	mc.emit(Instruction{
		Op: INVOKE_SPECIAL, StrOperand: fmt.Sprintf("<init>(%d)", len(ex.Args)),
		ArgCount: len(ex.Args), ClassName: ex.ClassName,
	})
}

// compileNewArray handles both `new Type[n]` (NEWARRAY after the size is
// pushed) and `new Type[]{...}` (explicit element initialisation), per
// spec.md §4.3.
func (mc *methodCompiler) compileNewArray(ex *ast.NewArrayExpr) {
	if len(ex.Elements) > 0 {
		mc.emit(Instruction{Op: LOAD_CONST, IntOperand: int64(len(ex.Elements))})
		mc.emit(Instruction{Op: NEWARRAY, StrOperand: ex.ElemType.Name, Dims: 1})
		for i, el := range ex.Elements {
			mc.emit(Instruction{Op: DUP})
			mc.emit(Instruction{Op: LOAD_CONST, IntOperand: int64(i)})
			mc.compileExpr(el)
			mc.emit(Instruction{Op: ARRAYSTORE})
		}
		return
	}
	for _, d := range ex.Dims {
		mc.compileExpr(d)
	}
	mc.emit(Instruction{Op: NEWARRAY, StrOperand: ex.ElemType.Name, Dims: len(ex.Dims)})
}

// compileCall dispatches a call expression to the System.out print
// peephole, a static-utility call, or an ordinary instance/bare call, per
// spec.md §4.3.
func (mc *methodCompiler) compileCall(ex *ast.CallExpr) {
	if fa, ok := ex.Callee.(*ast.FieldAccessExpr); ok {
		if mc.isSystemOutPrint(fa) {
			if len(ex.Args) == 0 {
				mc.emit(Instruction{Op: LOAD_CONST, StrOperand: "", ConstKind: "string"})
			} else {
				mc.compileExpr(ex.Args[0])
			}
			mc.emit(Instruction{Op: PRINT, BoolOp: fa.Name == "println"})
			return
		}
		mc.compileMemberCall(fa, ex.Args)
		return
	}

	if id, ok := ex.Callee.(*ast.Identifier); ok {
		mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: 0, LocalName: "this"})
		for _, a := range ex.Args {
			mc.compileExpr(a)
		}
		mc.emit(Instruction{
			Op: INVOKE_VIRTUAL, StrOperand: fmt.Sprintf("%s(%d)", id.Value, len(ex.Args)),
			ArgCount: len(ex.Args),
		})
		return
	}

	mc.c.errorf(ex.Pos().Line, "unsupported call target %T", ex.Callee)
}

func (mc *methodCompiler) isSystemOutPrint(fa *ast.FieldAccessExpr) bool {
	if fa.Name != "print" && fa.Name != "println" {
		return false
	}
	outer, ok := fa.Object.(*ast.FieldAccessExpr)
	if !ok || outer.Name != "out" {
		return false
	}
	id, ok := outer.Object.(*ast.Identifier)
	return ok && id.Value == "System"
}

func (mc *methodCompiler) compileMemberCall(fa *ast.FieldAccessExpr, args []ast.Expression) {
	if id, ok := fa.Object.(*ast.Identifier); ok {
		if _, isLocal := mc.resolveLocal(id.Value); !isLocal && mc.isClassName(id.Value) {
			for _, a := range args {
				mc.compileExpr(a)
			}
			mc.emit(Instruction{
				Op: INVOKE_STATIC, StrOperand: fmt.Sprintf("%s(%d)", fa.Name, len(args)),
				ArgCount: len(args), ClassName: id.Value,
			})
			return
		}
	}

	if _, ok := fa.Object.(*ast.SuperExpr); ok {
		mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: 0, LocalName: "this"})
		for _, a := range args {
			mc.compileExpr(a)
		}
		mc.emit(Instruction{
			Op: INVOKE_SPECIAL, StrOperand: fmt.Sprintf("%s(%d)", fa.Name, len(args)),
			ArgCount: len(args),
		})
		return
	}

	mc.compileExpr(fa.Object)
	for _, a := range args {
		mc.compileExpr(a)
	}
	mc.emit(Instruction{
		Op: INVOKE_VIRTUAL, StrOperand: fmt.Sprintf("%s(%d)", fa.Name, len(args)),
		ArgCount: len(args),
	})
}
