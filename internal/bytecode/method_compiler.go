package bytecode

import "github.com/j8sim/engine/internal/ast"

// methodCompiler accumulates one method's instructions with method-local
// label offsets, resolved and shifted to global indices by finalize, per
// spec.md §4.3 ("Labels are allocated per method... then shifted by the
// method's starting global index").
type methodCompiler struct {
	c     *Compiler
	class *ast.ClassDecl

	code []Instruction

	locals     map[string]int
	localNames []string
	localTypes []string
	nextSlot   int

	nextLabel int
	labelPos  map[int]int
	patches   []labelPatch

	loopStack []loopLabels
	curLine   int
}

type labelPatch struct {
	idx   int
	label int
}

type loopLabels struct {
	continueLabel int
	breakLabel    int
}

func newMethodCompiler(c *Compiler, class *ast.ClassDecl) *methodCompiler {
	return &methodCompiler{
		c: c, class: class,
		locals:   make(map[string]int),
		labelPos: make(map[int]int),
	}
}

func (mc *methodCompiler) allocLocal(name string) int {
	slot := mc.nextSlot
	mc.locals[name] = slot
	mc.localNames = append(mc.localNames, name)
	mc.nextSlot++
	return slot
}

// resolveLocal looks up name in this method's locals, returning the slot
// and true if found. Shadowing in nested blocks is not modelled distinctly
// from a fresh declaration — re-declaring a name allocates a new slot and
// overwrites the lookup entry, per spec.md §4.3 ("the model does not
// reclaim slots on block exit").
func (mc *methodCompiler) resolveLocal(name string) (int, bool) {
	slot, ok := mc.locals[name]
	return slot, ok
}

func (mc *methodCompiler) emit(in Instruction) int {
	if in.Line == 0 {
		in.Line = mc.curLine
	}
	mc.code = append(mc.code, in)
	return len(mc.code) - 1
}

func (mc *methodCompiler) emitLine(line int) {
	mc.curLine = line
	mc.emit(Instruction{Op: LINE, IntOperand: int64(line), Line: line})
}

func (mc *methodCompiler) newLabel() int {
	mc.nextLabel++
	return mc.nextLabel
}

func (mc *methodCompiler) placeLabel(label int) {
	mc.labelPos[label] = len(mc.code)
}

func (mc *methodCompiler) emitJump(op OpCode, label int) {
	idx := mc.emit(Instruction{Op: op})
	mc.patches = append(mc.patches, labelPatch{idx: idx, label: label})
}

// finalize resolves this method's label patches to local offsets, appends
// the code to the program's flat instruction vector, and shifts every
// control-flow operand by the method's global starting index.
func (mc *methodCompiler) finalize() int {
	for _, p := range mc.patches {
		mc.code[p.idx].IntOperand = int64(mc.labelPos[p.label])
	}

	start := len(mc.c.prog.Instructions)
	for i := range mc.code {
		switch mc.code[i].Op {
		case GOTO, IF_TRUE, IF_FALSE:
			mc.code[i].IntOperand += int64(start)
		}
	}
	mc.c.prog.Instructions = append(mc.c.prog.Instructions, mc.code...)
	return start
}

func (mc *methodCompiler) localTable() []LocalVar {
	vars := make([]LocalVar, len(mc.localNames))
	for i, name := range mc.localNames {
		vars[i] = LocalVar{Slot: i, Name: name}
	}
	return vars
}

func (mc *methodCompiler) pushLoop(continueLabel, breakLabel int) {
	mc.loopStack = append(mc.loopStack, loopLabels{continueLabel, breakLabel})
}

func (mc *methodCompiler) popLoop() {
	mc.loopStack = mc.loopStack[:len(mc.loopStack)-1]
}

func (mc *methodCompiler) currentLoop() (loopLabels, bool) {
	if len(mc.loopStack) == 0 {
		return loopLabels{}, false
	}
	return mc.loopStack[len(mc.loopStack)-1], true
}
