package bytecode

import (
	"fmt"

	"github.com/j8sim/engine/internal/ast"
)

// CompileError is a structured compilation failure, per spec.md §7
// ("CompileError... currently only propagated as a ParseError variant; the
// compiler itself is total"). In practice the compiler reports unsupported
// expressions, statements, operators and call targets, and compound
// assignment to an array element, as CompileError rather than panicking; an
// undeclared identifier compiles to an implicit this-field GETFIELD.
type CompileError struct {
	Message string
	Line    int
}

func (e *CompileError) Error() string { return fmt.Sprintf("%s (line %d)", e.Message, e.Line) }

// aritySig builds the "name(argc)" key used to index and call methods.
// Call sites do not carry static type information, so dispatch is by name
// and argument count rather than full overload resolution, per spec.md
// §4.3/§4.4.1.
func aritySig(name string, argc int) string {
	return fmt.Sprintf("%s(%d)", name, argc)
}

// staticUtilityClasses lists the well-known classes whose member calls are
// compiled as INVOKE_STATIC, per spec.md §4.3.
var staticUtilityClasses = map[string]bool{
	"Math": true, "Integer": true, "Long": true, "Double": true, "Float": true,
	"Character": true, "String": true, "Collections": true, "Arrays": true,
	"System": true, "Objects": true, "Boolean": true, "Byte": true, "Short": true,
}

// Compiler lowers a parsed ast.Program into a CompiledProgram.
type Compiler struct {
	prog       *CompiledProgram
	errs       []error
	classDecls map[string]*ast.ClassDecl
}

// Compile runs the AST-to-bytecode pass described in spec.md §4.3.
func Compile(file *ast.Program) (*CompiledProgram, []error) {
	c := &Compiler{prog: NewCompiledProgram()}

	for _, decl := range file.Declarations {
		switch d := decl.(type) {
		case *ast.ClassDecl:
			c.declareClass(d)
		case *ast.InterfaceDecl:
			c.declareInterface(d)
		}
	}

	for _, name := range c.prog.ClassOrder {
		if decl, ok := c.classDecls[name]; ok {
			c.compileClass(decl)
		}
	}

	for _, name := range c.prog.ClassOrder {
		class := c.classDecls[name]
		if class != nil && class.HasMain() {
			c.prog.MainClass = name
			break
		}
	}

	return c.prog, c.errs
}

func (c *Compiler) errorf(line int, format string, args ...any) {
	c.errs = append(c.errs, &CompileError{Message: fmt.Sprintf(format, args...), Line: line})
}

func (c *Compiler) declareClass(d *ast.ClassDecl) {
	if c.classDecls == nil {
		c.classDecls = make(map[string]*ast.ClassDecl)
	}
	c.classDecls[d.Name] = d

	cc := &CompiledClass{
		Name: d.Name, SuperClass: d.SuperClass, Interfaces: d.Interfaces,
		Methods: make(map[string]*CompiledMethod), IsAbstract: d.IsAbstract,
		FieldInits: make(map[string]int),
	}
	for _, f := range d.Fields {
		cc.FieldNames = append(cc.FieldNames, f.Name)
	}
	c.prog.addClass(cc)
}

func (c *Compiler) declareInterface(d *ast.InterfaceDecl) {
	cc := &CompiledClass{Name: d.Name, Methods: make(map[string]*CompiledMethod), IsAbstract: true}
	for _, iface := range d.Extends {
		cc.Interfaces = append(cc.Interfaces, iface)
	}
	c.prog.addClass(cc)
}

func (c *Compiler) compileClass(d *ast.ClassDecl) {
	cc := c.prog.Classes[d.Name]

	for _, ctor := range d.Constructors {
		c.compileMethod(d, cc, ctor, true)
	}
	if len(d.Constructors) == 0 {
		cc.Constructors = append(cc.Constructors, c.compileDefaultConstructor(d, cc))
	}
	for _, m := range d.Methods {
		c.compileMethod(d, cc, m, false)
	}
}

// compileDefaultConstructor emits an implicit no-arg constructor that simply
// returns. Field initializer expressions are not compiled, and NEW only
// allocates, so an instance field reads as null until its first PUTFIELD.
func (c *Compiler) compileDefaultConstructor(d *ast.ClassDecl, cc *CompiledClass) *CompiledMethod {
	mc := newMethodCompiler(c, d)
	mc.allocLocal("this")
	mc.emit(Instruction{Op: RETURN})
	start := mc.finalize()

	cm := &CompiledMethod{
		Name: "<init>", Signature: aritySig("<init>", 0), StartIndex: start,
		NumLocals: mc.nextSlot, Locals: mc.localTable(), IsConstructor: true,
	}
	cc.Methods[cm.Signature] = cm
	c.prog.MethodOffsets[d.Name+"."+cm.Signature] = start
	return cm
}

func (c *Compiler) compileMethod(d *ast.ClassDecl, cc *CompiledClass, m *ast.MethodDecl, isCtor bool) {
	mc := newMethodCompiler(c, d)
	isStatic := hasMod(m.Modifiers, "static")
	if !isStatic {
		mc.allocLocal("this")
	}
	for _, param := range m.Params {
		mc.allocLocal(param.Name)
	}

	name := m.Name
	if isCtor {
		name = "<init>"
	}
	sig := aritySig(name, len(m.Params))

	start := len(c.prog.Instructions)
	if m.Body != nil {
		mc.compileBlock(m.Body)
		mc.emit(Instruction{Op: RETURN})
		start = mc.finalize()
	}

	cm := &CompiledMethod{
		Name: name, Signature: sig, StartIndex: start, NumLocals: mc.nextSlot,
		Locals: mc.localTable(), IsStatic: isStatic,
		IsAbstract: hasMod(m.Modifiers, "abstract") || m.Body == nil,
		IsNative:   hasMod(m.Modifiers, "native"), IsConstructor: isCtor,
	}
	if isCtor {
		cc.Constructors = append(cc.Constructors, cm)
	}
	cc.Methods[sig] = cm
	c.prog.MethodOffsets[d.Name+"."+sig] = start
}

func hasMod(mods []string, name string) bool {
	for _, m := range mods {
		if m == name {
			return true
		}
	}
	return false
}
