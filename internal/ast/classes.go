package ast

import (
	"strings"

	"github.com/j8sim/engine/internal/lexer"
)

// Param is one formal parameter of a method or constructor.
type Param struct {
	Type *TypeNode
	Name string
}

// FieldDecl is a class or interface field, with an optional initializer.
type FieldDecl struct {
	Token     lexer.Token
	Modifiers []string
	Type      *TypeNode
	Name      string
	Init      Expression // nil if uninitialised
}

func (n *FieldDecl) Pos() lexer.Position  { return n.Token.Pos }
func (n *FieldDecl) TokenLiteral() string { return n.Token.Literal }
func (n *FieldDecl) String() string {
	s := n.Type.String() + " " + n.Name
	if n.Init != nil {
		s += " = " + n.Init.String()
	}
	return s + ";"
}

// MethodDecl is a method, constructor, or interface method signature.
// IsConstructor is set when the parser recognises the name-equals-class-name
// pattern described in spec.md §4.2. Body is nil for abstract/native
// methods and interface signatures.
type MethodDecl struct {
	Token         lexer.Token
	Modifiers     []string
	ReturnType    *TypeNode // nil for constructors
	Name          string
	Params        []*Param
	Throws        []string
	Body          *BlockStmt
	IsConstructor bool
	IsAbstract    bool
	IsNative      bool
	IsDefault     bool // interface default method
}

func (n *MethodDecl) Pos() lexer.Position  { return n.Token.Pos }
func (n *MethodDecl) TokenLiteral() string { return n.Token.Literal }
func (n *MethodDecl) String() string {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Type.String() + " " + p.Name
	}
	ret := "void"
	if n.ReturnType != nil {
		ret = n.ReturnType.String()
	}
	s := ret + " " + n.Name + "(" + strings.Join(params, ", ") + ")"
	if n.Body != nil {
		s += " " + n.Body.String()
	} else {
		s += ";"
	}
	return s
}

// Signature returns the "name(T1,T2,...)" display form of the method,
// built from its parameter types. Dispatch does not use it: the bytecode
// compiler indexes methods by the arity key "name(argc)" instead.
func (n *MethodDecl) Signature() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.Type.String()
	}
	return n.Name + "(" + strings.Join(parts, ",") + ")"
}

// ClassDecl is `class Name [extends Super] [implements I1, I2] { ... }`.
type ClassDecl struct {
	Token        lexer.Token
	Name         string
	SuperClass   string // "" if none (implicitly Object)
	Interfaces   []string
	Fields       []*FieldDecl
	Methods      []*MethodDecl
	Constructors []*MethodDecl
	IsAbstract   bool
}

func (n *ClassDecl) declarationNode()     {}
func (n *ClassDecl) DeclName() string     { return n.Name }
func (n *ClassDecl) Pos() lexer.Position  { return n.Token.Pos }
func (n *ClassDecl) TokenLiteral() string { return n.Token.Literal }
func (n *ClassDecl) String() string {
	s := "class " + n.Name
	if n.SuperClass != "" {
		s += " extends " + n.SuperClass
	}
	if len(n.Interfaces) > 0 {
		s += " implements " + strings.Join(n.Interfaces, ", ")
	}
	return s + " { ... }"
}

// HasMain reports whether this class declares a method named main with
// exactly one parameter (the parameter's type is not checked), the marker
// spec.md §4.3 uses to select the program's main class.
func (n *ClassDecl) HasMain() bool {
	for _, m := range n.Methods {
		if m.Name == "main" && len(m.Params) == 1 {
			return true
		}
	}
	return false
}

// InterfaceDecl is `interface Name { ... }`.
type InterfaceDecl struct {
	Token   lexer.Token
	Name    string
	Extends []string
	Methods []*MethodDecl
	Fields  []*FieldDecl
}

func (n *InterfaceDecl) declarationNode()     {}
func (n *InterfaceDecl) DeclName() string     { return n.Name }
func (n *InterfaceDecl) Pos() lexer.Position  { return n.Token.Pos }
func (n *InterfaceDecl) TokenLiteral() string { return n.Token.Literal }
func (n *InterfaceDecl) String() string       { return "interface " + n.Name + " { ... }" }
