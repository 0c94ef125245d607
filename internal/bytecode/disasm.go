package bytecode

import (
	"fmt"
	"strings"
)

// Disassembler renders a CompiledProgram's instructions as readable text,
// grouped by class and method, for the `jvmsim compile --disasm` CLI
// output.
type Disassembler struct {
	prog *CompiledProgram
}

// NewDisassembler creates a Disassembler for prog.
func NewDisassembler(prog *CompiledProgram) *Disassembler {
	return &Disassembler{prog: prog}
}

// Disassemble renders the whole program.
func (d *Disassembler) Disassemble() string {
	var sb strings.Builder
	for _, name := range d.prog.ClassOrder {
		class := d.prog.Classes[name]
		fmt.Fprintf(&sb, "class %s", name)
		if class.SuperClass != "" {
			fmt.Fprintf(&sb, " extends %s", class.SuperClass)
		}
		sb.WriteString(" {\n")

		for _, ctor := range class.Constructors {
			d.writeMethod(&sb, ctor)
		}
		for _, sig := range sortedKeys(class.Methods) {
			d.writeMethod(&sb, class.Methods[sig])
		}
		sb.WriteString("}\n\n")
	}
	return sb.String()
}

func (d *Disassembler) writeMethod(sb *strings.Builder, m *CompiledMethod) {
	fmt.Fprintf(sb, "  %s  ; locals=%d start=%d\n", m.Signature, m.NumLocals, m.StartIndex)
	if m.IsAbstract || m.IsNative {
		sb.WriteString("    ; abstract/native, no body\n")
		return
	}
	end := d.methodEnd(m)
	for i := m.StartIndex; i < end; i++ {
		fmt.Fprintf(sb, "    %4d: %s\n", i, d.prog.Instructions[i].String())
	}
}

// methodEnd finds the instruction index one past the end of m's body by
// scanning forward to the next RETURN/RETURN_VALUE at call depth zero, or
// to the next method's start, whichever comes first.
func (d *Disassembler) methodEnd(m *CompiledMethod) int {
	nextStart := len(d.prog.Instructions)
	for _, off := range d.prog.MethodOffsets {
		if off > m.StartIndex && off < nextStart {
			nextStart = off
		}
	}
	for i := m.StartIndex; i < nextStart; i++ {
		op := d.prog.Instructions[i].Op
		if op == RETURN || op == RETURN_VALUE {
			return i + 1
		}
	}
	return nextStart
}

func sortedKeys(m map[string]*CompiledMethod) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
