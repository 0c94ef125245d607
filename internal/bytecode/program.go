package bytecode

// LocalVar describes one slot in a method's local-variable table, per
// spec.md §4.3 ("dense local slot allocation").
type LocalVar struct {
	Slot int
	Name string
	Type string
}

// CompiledMethod is one method or constructor's compiled body.
type CompiledMethod struct {
	Name        string
	Signature   string // "name(argc)"
	StartIndex  int    // absolute index into the program's Instructions
	NumLocals   int
	Locals      []LocalVar
	IsStatic    bool
	IsAbstract  bool
	IsNative    bool
	IsConstructor bool
}

// CompiledClass is one class's compiled shape: its fields and methods.
type CompiledClass struct {
	Name         string
	SuperClass   string
	Interfaces   []string
	FieldNames   []string
	FieldInits   map[string]int // field name -> instruction index of a static initializer run, if any
	Methods      map[string]*CompiledMethod // keyed by Signature "name(argc)"; constructors included as "<init>(argc)"
	Constructors []*CompiledMethod
	IsAbstract   bool
}

// CompiledProgram is the compiler's output, per spec.md §4.3.
type CompiledProgram struct {
	Classes       map[string]*CompiledClass
	ClassOrder    []string
	MainClass     string
	MainMethod    string
	Instructions  []Instruction
	MethodOffsets map[string]int // "class.signature" -> start_index
}

// NewCompiledProgram creates an empty program ready for the compiler to
// populate.
func NewCompiledProgram() *CompiledProgram {
	return &CompiledProgram{
		Classes:       make(map[string]*CompiledClass),
		MainMethod:    "main",
		MethodOffsets: make(map[string]int),
	}
}

func (p *CompiledProgram) addClass(c *CompiledClass) {
	p.Classes[c.Name] = c
	p.ClassOrder = append(p.ClassOrder, c.Name)
}

// LookupMethod walks the superclass chain from className looking for a
// method with the given signature, per spec.md §4.4.1's INVOKE_* dispatch.
func (p *CompiledProgram) LookupMethod(className, signature string) (*CompiledMethod, string) {
	for className != "" {
		class, ok := p.Classes[className]
		if !ok {
			return nil, ""
		}
		if m, ok := class.Methods[signature]; ok {
			return m, className
		}
		className = class.SuperClass
	}
	return nil, ""
}

// IsSubclassOf walks the superclass chain checking whether className is, or
// derives from, ancestor.
func (p *CompiledProgram) IsSubclassOf(className, ancestor string) bool {
	for className != "" {
		if className == ancestor {
			return true
		}
		class, ok := p.Classes[className]
		if !ok {
			return false
		}
		for _, iface := range class.Interfaces {
			if iface == ancestor {
				return true
			}
		}
		className = class.SuperClass
	}
	return false
}
