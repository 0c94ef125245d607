package ast

import (
	"bytes"

	"github.com/j8sim/engine/internal/lexer"
)

// BlockStmt is a `{ ... }` sequence of statements.
type BlockStmt struct {
	Token      lexer.Token
	Statements []Statement
}

func (n *BlockStmt) statementNode()       {}
func (n *BlockStmt) TokenLiteral() string { return n.Token.Literal }
func (n *BlockStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *BlockStmt) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range n.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// ExprStmt is a bare expression used as a statement (a call or assignment).
type ExprStmt struct {
	Token lexer.Token
	Expr  Expression
}

func (n *ExprStmt) statementNode()       {}
func (n *ExprStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ExprStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *ExprStmt) String() string       { return n.Expr.String() + ";" }

// VarDeclStmt is `Type name = init;` — one single-variable declaration. A
// source-level `int a = 1, b = 2;` is lowered by the parser to a block of
// these, per spec.md §4.2.
type VarDeclStmt struct {
	Token lexer.Token
	Type  *TypeNode
	Name  string
	Init  Expression // nil if uninitialised
}

func (n *VarDeclStmt) statementNode()       {}
func (n *VarDeclStmt) TokenLiteral() string { return n.Token.Literal }
func (n *VarDeclStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *VarDeclStmt) String() string {
	s := n.Type.String() + " " + n.Name
	if n.Init != nil {
		s += " = " + n.Init.String()
	}
	return s + ";"
}

// IfStmt is `if (cond) then [else else]`.
type IfStmt struct {
	Token lexer.Token
	Cond  Expression
	Then  Statement
	Else  Statement // nil if absent
}

func (n *IfStmt) statementNode()       {}
func (n *IfStmt) TokenLiteral() string { return n.Token.Literal }
func (n *IfStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *IfStmt) String() string {
	s := "if (" + n.Cond.String() + ") " + n.Then.String()
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s
}

// WhileStmt is `while (cond) body`; `do { body } while (cond);` is lowered
// to this with DoWhile set, per spec.md §4.2.
type WhileStmt struct {
	Token   lexer.Token
	Cond    Expression
	Body    Statement
	DoWhile bool
}

func (n *WhileStmt) statementNode()       {}
func (n *WhileStmt) TokenLiteral() string { return n.Token.Literal }
func (n *WhileStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *WhileStmt) String() string {
	if n.DoWhile {
		return "do " + n.Body.String() + " while (" + n.Cond.String() + ");"
	}
	return "while (" + n.Cond.String() + ") " + n.Body.String()
}

// ForStmt is the C-style `for (init; cond; post) body`.
type ForStmt struct {
	Token lexer.Token
	Init  Statement // VarDeclStmt or ExprStmt, may be nil
	Cond  Expression
	Post  Statement // ExprStmt, may be nil
	Body  Statement
}

func (n *ForStmt) statementNode()       {}
func (n *ForStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ForStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *ForStmt) String() string       { return "for (...) " + n.Body.String() }

// ForEachStmt is the enhanced for-each `for (Type name : iterable) body`,
// disambiguated from ForStmt by lookahead for ':' per spec.md §4.2.
type ForEachStmt struct {
	Token    lexer.Token
	VarType  *TypeNode
	VarName  string
	Iterable Expression
	Body     Statement
}

func (n *ForEachStmt) statementNode()       {}
func (n *ForEachStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ForEachStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *ForEachStmt) String() string {
	return "for (" + n.VarType.String() + " " + n.VarName + " : " + n.Iterable.String() + ") " + n.Body.String()
}

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Token lexer.Token
	Value Expression // nil for void returns
}

func (n *ReturnStmt) statementNode()       {}
func (n *ReturnStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ReturnStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *ReturnStmt) String() string {
	if n.Value == nil {
		return "return;"
	}
	return "return " + n.Value.String() + ";"
}

// BreakStmt is `break;`.
type BreakStmt struct{ Token lexer.Token }

func (n *BreakStmt) statementNode()       {}
func (n *BreakStmt) TokenLiteral() string { return n.Token.Literal }
func (n *BreakStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *BreakStmt) String() string       { return "break;" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Token lexer.Token }

func (n *ContinueStmt) statementNode()       {}
func (n *ContinueStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ContinueStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *ContinueStmt) String() string       { return "continue;" }

// ThrowStmt is `throw expr;`; it is terminal at run time (spec.md §7), never
// caught.
type ThrowStmt struct {
	Token lexer.Token
	Value Expression
}

func (n *ThrowStmt) statementNode()       {}
func (n *ThrowStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ThrowStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *ThrowStmt) String() string       { return "throw " + n.Value.String() + ";" }

// CatchClause is one `catch (Type name) { ... }` clause. Its Body is parsed
// but never executed (spec.md §7, §9).
type CatchClause struct {
	Token     lexer.Token
	ExcType   *TypeNode
	ExcName   string
	Body      *BlockStmt
}

func (n *CatchClause) Pos() lexer.Position { return n.Token.Pos }
func (n *CatchClause) String() string {
	return "catch (" + n.ExcType.String() + " " + n.ExcName + ") " + n.Body.String()
}

// TryStmt is `try block [catch...] [finally block]`. The try body always
// runs; catch bodies are parsed but skipped; finally always runs after the
// try body, per spec.md §7/§9.
type TryStmt struct {
	Token   lexer.Token
	Body    *BlockStmt
	Catches []*CatchClause
	Finally *BlockStmt // nil if absent
}

func (n *TryStmt) statementNode()       {}
func (n *TryStmt) TokenLiteral() string { return n.Token.Literal }
func (n *TryStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *TryStmt) String() string {
	var out bytes.Buffer
	out.WriteString("try " + n.Body.String())
	for _, c := range n.Catches {
		out.WriteString(" " + c.String())
	}
	if n.Finally != nil {
		out.WriteString(" finally " + n.Finally.String())
	}
	return out.String()
}

// SynchronizedStmt is `synchronized (lock) body`. Per spec.md §9 Open
// Questions, the parser records the lock expression but the compiler
// deliberately does not emit MONITORENTER/MONITOREXIT around it — the body
// compiles as a plain block, matching the source's documented deviation.
type SynchronizedStmt struct {
	Token lexer.Token
	Lock  Expression
	Body  *BlockStmt
}

func (n *SynchronizedStmt) statementNode()       {}
func (n *SynchronizedStmt) TokenLiteral() string { return n.Token.Literal }
func (n *SynchronizedStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *SynchronizedStmt) String() string {
	return "synchronized (" + n.Lock.String() + ") " + n.Body.String()
}

// SwitchCase is one `case value:` or `default:` arm of a SwitchStmt.
type SwitchCase struct {
	Values     []Expression // empty for the default arm
	IsDefault  bool
	Statements []Statement
}

// SwitchStmt is `switch (subject) { case ...: ... default: ... }`. Cases
// fall through to the next unless terminated by break/return, matching
// Java's own fallthrough semantics.
type SwitchStmt struct {
	Token   lexer.Token
	Subject Expression
	Cases   []*SwitchCase
}

func (n *SwitchStmt) statementNode()       {}
func (n *SwitchStmt) TokenLiteral() string { return n.Token.Literal }
func (n *SwitchStmt) Pos() lexer.Position  { return n.Token.Pos }
func (n *SwitchStmt) String() string       { return "switch (" + n.Subject.String() + ") { ... }" }
