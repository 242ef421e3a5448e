package compiler

import "fmt"

// Opcode identifies a single bytecode instruction. The set below is
// exactly the operation surface spec.md §4.5 describes: no jumps, no
// calls, just expressions, print, and global variables.
type Opcode byte

const (
	OpConstant Opcode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpReturn
)

// operandWidths gives the number of operand bytes following each
// opcode in the instruction stream. Every opcode not listed here takes
// no operand.
var operandWidths = map[Opcode]int{
	OpConstant:     1, // index into the chunk's constant pool (u8, ≤256 constants)
	OpDefineGlobal: 1,
	OpGetGlobal:    1,
	OpSetGlobal:    1,
}

var opcodeNames = map[Opcode]string{
	OpConstant: "OP_CONSTANT", OpNil: "OP_NIL", OpTrue: "OP_TRUE", OpFalse: "OP_FALSE",
	OpPop: "OP_POP", OpEqual: "OP_EQUAL", OpGreater: "OP_GREATER", OpLess: "OP_LESS",
	OpAdd: "OP_ADD", OpSubtract: "OP_SUBTRACT", OpMultiply: "OP_MULTIPLY", OpDivide: "OP_DIVIDE",
	OpNot: "OP_NOT", OpNegate: "OP_NEGATE", OpPrint: "OP_PRINT",
	OpDefineGlobal: "OP_DEFINE_GLOBAL", OpGetGlobal: "OP_GET_GLOBAL", OpSetGlobal: "OP_SET_GLOBAL",
	OpReturn: "OP_RETURN",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", byte(op))
}

// OperandWidth returns how many operand bytes follow op in the
// instruction stream.
func OperandWidth(op Opcode) int {
	return operandWidths[op]
}
