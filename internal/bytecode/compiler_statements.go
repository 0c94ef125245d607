package bytecode

import (
	"fmt"

	"github.com/j8sim/engine/internal/ast"
)

func (mc *methodCompiler) compileBlock(b *ast.BlockStmt) {
	for _, s := range b.Statements {
		mc.compileStatement(s)
	}
}

func (mc *methodCompiler) compileStatement(s ast.Statement) {
	mc.emitLine(s.Pos().Line)
	switch st := s.(type) {
	case *ast.BlockStmt:
		mc.compileBlock(st)
	case *ast.ExprStmt:
		mc.compileExpr(st.Expr)
		mc.emit(Instruction{Op: POP})
	case *ast.VarDeclStmt:
		mc.compileVarDecl(st)
	case *ast.IfStmt:
		mc.compileIf(st)
	case *ast.WhileStmt:
		mc.compileWhile(st)
	case *ast.ForStmt:
		mc.compileFor(st)
	case *ast.ForEachStmt:
		mc.compileForEach(st)
	case *ast.ReturnStmt:
		mc.compileReturn(st)
	case *ast.BreakStmt:
		if loop, ok := mc.currentLoop(); ok {
			mc.emitJump(GOTO, loop.breakLabel)
		}
	case *ast.ContinueStmt:
		if loop, ok := mc.currentLoop(); ok {
			mc.emitJump(GOTO, loop.continueLabel)
		}
	case *ast.ThrowStmt:
		mc.compileExpr(st.Value)
		mc.emit(Instruction{Op: THROW})
	case *ast.TryStmt:
		mc.compileTry(st)
	case *ast.SynchronizedStmt:
		// spec.md §9 Open Questions: the lock expression is evaluated for
		// side effects (matching its presence in source) but no
		// MONITORENTER/MONITOREXIT is emitted around the body.
		mc.compileExpr(st.Lock)
		mc.emit(Instruction{Op: POP})
		mc.compileBlock(st.Body)
	case *ast.SwitchStmt:
		mc.compileSwitch(st)
	default:
		mc.c.errorf(s.Pos().Line, "unsupported statement %T", s)
	}
}

func (mc *methodCompiler) compileVarDecl(st *ast.VarDeclStmt) {
	slot := mc.allocLocal(st.Name)
	if st.Init != nil {
		mc.compileExpr(st.Init)
	} else {
		mc.emit(Instruction{Op: PUSH_NULL})
	}
	mc.emit(Instruction{Op: STORE_LOCAL, IntOperand: int64(slot), LocalName: st.Name})
}

// compileIf emits the canonical IF_FALSE/GOTO pattern shared with ternary,
// per spec.md §4.3.
func (mc *methodCompiler) compileIf(st *ast.IfStmt) {
	mc.compileExpr(st.Cond)
	elseLabel := mc.newLabel()
	endLabel := mc.newLabel()
	mc.emitJump(IF_FALSE, elseLabel)
	mc.compileStatement(st.Then)
	if st.Else != nil {
		mc.emitJump(GOTO, endLabel)
	}
	mc.placeLabel(elseLabel)
	if st.Else != nil {
		mc.compileStatement(st.Else)
		mc.placeLabel(endLabel)
	}
}

func (mc *methodCompiler) compileWhile(st *ast.WhileStmt) {
	headLabel := mc.newLabel()
	condLabel := mc.newLabel()
	endLabel := mc.newLabel()

	if st.DoWhile {
		mc.placeLabel(headLabel)
		mc.pushLoop(condLabel, endLabel)
		mc.compileStatement(st.Body)
		mc.popLoop()
		mc.placeLabel(condLabel)
		mc.compileExpr(st.Cond)
		mc.emitJump(IF_TRUE, headLabel)
		mc.placeLabel(endLabel)
		return
	}

	mc.placeLabel(condLabel)
	mc.compileExpr(st.Cond)
	mc.emitJump(IF_FALSE, endLabel)
	mc.pushLoop(condLabel, endLabel)
	mc.compileStatement(st.Body)
	mc.popLoop()
	mc.emitJump(GOTO, condLabel)
	mc.placeLabel(endLabel)
}

func (mc *methodCompiler) compileFor(st *ast.ForStmt) {
	if st.Init != nil {
		mc.compileStatement(st.Init)
	}
	condLabel := mc.newLabel()
	postLabel := mc.newLabel()
	endLabel := mc.newLabel()

	mc.placeLabel(condLabel)
	if st.Cond != nil {
		mc.compileExpr(st.Cond)
		mc.emitJump(IF_FALSE, endLabel)
	}
	mc.pushLoop(postLabel, endLabel)
	mc.compileStatement(st.Body)
	mc.popLoop()
	mc.placeLabel(postLabel)
	if st.Post != nil {
		mc.compileStatement(st.Post)
	}
	mc.emitJump(GOTO, condLabel)
	mc.placeLabel(endLabel)
}

// compileForEach lowers the enhanced for to iterator-protocol calls, per
// spec.md §4.3.
func (mc *methodCompiler) compileForEach(st *ast.ForEachStmt) {
	mc.compileExpr(st.Iterable)
	mc.emit(Instruction{Op: INVOKE_INTERFACE, StrOperand: "iterator()", ArgCount: 0})
	iterSlot := mc.allocLocal(fmt.Sprintf("$iterator%d", mc.newLabel()))
	mc.emit(Instruction{Op: STORE_LOCAL, IntOperand: int64(iterSlot), LocalName: "$iterator"})

	headLabel := mc.newLabel()
	endLabel := mc.newLabel()
	mc.placeLabel(headLabel)
	mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: int64(iterSlot), LocalName: "$iterator"})
	mc.emit(Instruction{Op: INVOKE_INTERFACE, StrOperand: "hasNext()", ArgCount: 0})
	mc.emitJump(IF_FALSE, endLabel)

	mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: int64(iterSlot), LocalName: "$iterator"})
	mc.emit(Instruction{Op: INVOKE_INTERFACE, StrOperand: "next()", ArgCount: 0})
	varSlot := mc.allocLocal(st.VarName)
	mc.emit(Instruction{Op: STORE_LOCAL, IntOperand: int64(varSlot), LocalName: st.VarName})

	mc.pushLoop(headLabel, endLabel)
	mc.compileStatement(st.Body)
	mc.popLoop()
	mc.emitJump(GOTO, headLabel)
	mc.placeLabel(endLabel)
}

func (mc *methodCompiler) compileReturn(st *ast.ReturnStmt) {
	if st.Value != nil {
		mc.compileExpr(st.Value)
		mc.emit(Instruction{Op: RETURN_VALUE})
	} else {
		mc.emit(Instruction{Op: RETURN})
	}
}

// compileTry runs the try body unconditionally, skips catch bodies (parsed
// only, per spec.md §7), and always runs finally afterward.
func (mc *methodCompiler) compileTry(st *ast.TryStmt) {
	mc.compileBlock(st.Body)
	if st.Finally != nil {
		mc.compileBlock(st.Finally)
	}
}

// compileSwitch lowers to a chain of equality tests against the subject,
// preserving Java's fallthrough: each case's statements are emitted in
// sequence and a case without an explicit break falls into the next.
func (mc *methodCompiler) compileSwitch(st *ast.SwitchStmt) {
	endLabel := mc.newLabel()
	mc.pushLoop(endLabel, endLabel) // break targets endLabel; continue is unused in a switch
	subjSlot := mc.allocLocal(fmt.Sprintf("$switch%d", mc.newLabel()))
	mc.compileExpr(st.Subject)
	mc.emit(Instruction{Op: STORE_LOCAL, IntOperand: int64(subjSlot), LocalName: "$switch"})

	caseLabels := make([]int, len(st.Cases))
	defaultLabel := endLabel
	for i, c := range st.Cases {
		caseLabels[i] = mc.newLabel()
		if c.IsDefault {
			defaultLabel = caseLabels[i]
		}
	}

	for i, c := range st.Cases {
		if c.IsDefault {
			continue
		}
		for _, v := range c.Values {
			mc.emit(Instruction{Op: LOAD_LOCAL, IntOperand: int64(subjSlot), LocalName: "$switch"})
			mc.compileExpr(v)
			mc.emit(Instruction{Op: CMP_EQ})
			mc.emitJump(IF_TRUE, caseLabels[i])
		}
	}
	mc.emitJump(GOTO, defaultLabel)

	for i, c := range st.Cases {
		mc.placeLabel(caseLabels[i])
		for _, s := range c.Statements {
			mc.compileStatement(s)
		}
	}
	mc.placeLabel(endLabel)
	mc.popLoop()
}
