// Package bytecode implements the stack-based instruction set produced by
// the compiler and executed by the interpreter, per spec.md §4.3/§4.4/§6.
package bytecode

import "fmt"

// OpCode is one instruction in the flat program vector.
type OpCode int

const (
	NOP OpCode = iota
	LINE
	LOAD_CONST
	PUSH_NULL
	LOAD_LOCAL
	STORE_LOCAL
	NEW
	NEWARRAY
	ARRAYLENGTH
	ARRAYLOAD
	ARRAYSTORE
	GETFIELD
	PUTFIELD
	GETSTATIC
	PUTSTATIC
	DUP
	DUP_X1
	POP
	SWAP
	ADD
	SUB
	MUL
	DIV
	MOD
	NEG
	CMP_EQ
	CMP_NE
	CMP_LT
	CMP_LE
	CMP_GT
	CMP_GE
	AND
	OR
	NOT
	GOTO
	IF_TRUE
	IF_FALSE
	INVOKE_VIRTUAL
	INVOKE_INTERFACE
	INVOKE_SPECIAL
	INVOKE_STATIC
	RETURN
	RETURN_VALUE
	CHECKCAST
	INSTANCEOF
	LAMBDA_CREATE
	LAMBDA_INVOKE
	PRINT
	THROW
	MONITORENTER
	MONITOREXIT
)

var opcodeNames = [...]string{
	NOP: "NOP", LINE: "LINE", LOAD_CONST: "LOAD_CONST", PUSH_NULL: "PUSH_NULL",
	LOAD_LOCAL: "LOAD_LOCAL", STORE_LOCAL: "STORE_LOCAL", NEW: "NEW", NEWARRAY: "NEWARRAY",
	ARRAYLENGTH: "ARRAYLENGTH", ARRAYLOAD: "ARRAYLOAD", ARRAYSTORE: "ARRAYSTORE",
	GETFIELD: "GETFIELD", PUTFIELD: "PUTFIELD", GETSTATIC: "GETSTATIC", PUTSTATIC: "PUTSTATIC",
	DUP: "DUP", DUP_X1: "DUP_X1", POP: "POP", SWAP: "SWAP",
	ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV", MOD: "MOD", NEG: "NEG",
	CMP_EQ: "CMP_EQ", CMP_NE: "CMP_NE", CMP_LT: "CMP_LT", CMP_LE: "CMP_LE", CMP_GT: "CMP_GT", CMP_GE: "CMP_GE",
	AND: "AND", OR: "OR", NOT: "NOT",
	GOTO: "GOTO", IF_TRUE: "IF_TRUE", IF_FALSE: "IF_FALSE",
	INVOKE_VIRTUAL: "INVOKE_VIRTUAL", INVOKE_INTERFACE: "INVOKE_INTERFACE",
	INVOKE_SPECIAL: "INVOKE_SPECIAL", INVOKE_STATIC: "INVOKE_STATIC",
	RETURN: "RETURN", RETURN_VALUE: "RETURN_VALUE",
	CHECKCAST: "CHECKCAST", INSTANCEOF: "INSTANCEOF",
	LAMBDA_CREATE: "LAMBDA_CREATE", LAMBDA_INVOKE: "LAMBDA_INVOKE",
	PRINT: "PRINT", THROW: "THROW", MONITORENTER: "MONITORENTER", MONITOREXIT: "MONITOREXIT",
}

func (op OpCode) String() string {
	if int(op) >= 0 && int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("OpCode(%d)", int(op))
}

// Instruction is one element of the flat program vector: an opcode, its
// operands, and the source line that produced it, per spec.md §6.
type Instruction struct {
	Op         OpCode
	IntOperand int64 // literal int, local slot, label target, argc
	FloatOp    float64
	StrOperand string // literal string, class/method/field name, type name
	BoolOp     bool   // literal boolean, is_println
	ConstKind  string // LOAD_CONST payload discriminator: "int"|"float"|"string"|"bool"
	ArgCount   int    // INVOKE_* argument count
	ClassName  string // INVOKE_STATIC / GETSTATIC / PUTSTATIC owning class
	LocalName  string // LOAD_LOCAL/STORE_LOCAL display name
	Dims       int    // NEWARRAY dimension count
	Line       int
	Comment    string
}

func (in Instruction) String() string {
	switch in.Op {
	case LINE:
		return fmt.Sprintf("LINE %d", in.IntOperand)
	case LOAD_CONST:
		if in.StrOperand != "" {
			return fmt.Sprintf("LOAD_CONST %q", in.StrOperand)
		}
		if in.FloatOp != 0 {
			return fmt.Sprintf("LOAD_CONST %v", in.FloatOp)
		}
		return fmt.Sprintf("LOAD_CONST %d", in.IntOperand)
	case LOAD_LOCAL, STORE_LOCAL:
		return fmt.Sprintf("%s %d (%s)", in.Op, in.IntOperand, in.LocalName)
	case NEW, CHECKCAST, INSTANCEOF:
		return fmt.Sprintf("%s %s", in.Op, in.StrOperand)
	case NEWARRAY:
		return fmt.Sprintf("NEWARRAY %s[%d]", in.StrOperand, in.Dims)
	case GETFIELD, PUTFIELD:
		return fmt.Sprintf("%s %s", in.Op, in.StrOperand)
	case GETSTATIC, PUTSTATIC:
		return fmt.Sprintf("%s %s.%s", in.Op, in.ClassName, in.StrOperand)
	case GOTO, IF_TRUE, IF_FALSE:
		return fmt.Sprintf("%s -> %d", in.Op, in.IntOperand)
	case INVOKE_VIRTUAL, INVOKE_INTERFACE, INVOKE_SPECIAL:
		return fmt.Sprintf("%s %s/%d", in.Op, in.StrOperand, in.ArgCount)
	case INVOKE_STATIC:
		return fmt.Sprintf("INVOKE_STATIC %s.%s/%d", in.ClassName, in.StrOperand, in.ArgCount)
	case PRINT:
		return fmt.Sprintf("PRINT println=%v", in.BoolOp)
	default:
		return in.Op.String()
	}
}
