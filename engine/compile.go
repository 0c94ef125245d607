// Package engine is the embedder-facing facade over the lexer, parser,
// bytecode compiler, and interpreter: compile(source) -> CompiledProgram,
// new_simulator(CompiledProgram) -> Simulator, per spec.md §6.
package engine

import (
	"fmt"

	"github.com/j8sim/engine/internal/bytecode"
	"github.com/j8sim/engine/internal/lexer"
	"github.com/j8sim/engine/internal/parser"
)

// Diagnostic is one lex, parse, or compile failure with a source position,
// normalised across the three front-end stages so a caller can render them
// uniformly, per spec.md §6/§7.
type Diagnostic struct {
	Stage   string // "lex", "parse", or "compile"
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("[%s] %s", d.Stage, d.Message)
	}
	return fmt.Sprintf("[%s] %s at %d:%d", d.Stage, d.Message, d.Line, d.Column)
}

// CompilationError aggregates every diagnostic produced while turning
// source into a CompiledProgram. The lexer is pulled token by token by the
// parser, so both run together; lex diagnostics are then reported in
// preference to parse diagnostics, and a program with either kind is never
// handed to the compiler.
type CompilationError struct {
	Diagnostics []Diagnostic
}

func (e *CompilationError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	msg := fmt.Sprintf("%d compilation error(s):", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		msg += "\n  " + d.String()
	}
	return msg
}

// Compile runs the full front end over source: lex, parse, and compile to
// bytecode, per spec.md §6's compile(source_code) -> Result<CompiledProgram,
// CompilationError>.
func Compile(source string) (*bytecode.CompiledProgram, error) {
	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		diags := make([]Diagnostic, len(lexErrs))
		for i, e := range lexErrs {
			diags[i] = Diagnostic{Stage: "lex", Message: e.Message, Line: e.Pos.Line, Column: e.Pos.Column}
		}
		return nil, &CompilationError{Diagnostics: diags}
	}

	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		diags := make([]Diagnostic, len(parseErrs))
		for i, e := range parseErrs {
			diags[i] = Diagnostic{Stage: "parse", Message: e.Message, Line: e.Pos.Line, Column: e.Pos.Column}
		}
		return nil, &CompilationError{Diagnostics: diags}
	}

	compiled, compileErrs := bytecode.Compile(prog)
	if len(compileErrs) > 0 {
		diags := make([]Diagnostic, len(compileErrs))
		for i, e := range compileErrs {
			if ce, ok := e.(*bytecode.CompileError); ok {
				diags[i] = Diagnostic{Stage: "compile", Message: ce.Message, Line: ce.Line}
			} else {
				diags[i] = Diagnostic{Stage: "compile", Message: e.Error()}
			}
		}
		return nil, &CompilationError{Diagnostics: diags}
	}

	return compiled, nil
}
