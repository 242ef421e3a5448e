package compiler

import (
	"fmt"
	"strings"

	"ember/value"
)

// run is one (line, length) pair in a RunTable.
type run struct {
	line   int
	length int
}

// RunTable is the run-length-encoded instruction-offset → source-line
// map spec.md §3 defines. Appending the same line repeatedly extends
// the last run instead of growing the table, so straight-line code
// costs one run per source line rather than one per byte.
type RunTable struct {
	runs []run
}

// Append records that the next instruction byte was emitted from line.
func (rt *RunTable) Append(line int) {
	if n := len(rt.runs); n > 0 && rt.runs[n-1].line == line {
		rt.runs[n-1].length++
		return
	}
	rt.runs = append(rt.runs, run{line: line, length: 1})
}

// Line returns the source line for instruction offset index: the
// first run whose cumulative length exceeds index.
func (rt *RunTable) Line(index int) int {
	acc := 0
	for _, r := range rt.runs {
		acc += r.length
		if acc > index {
			return r.line
		}
	}
	// An index past the end of every run means the caller passed an
	// offset the compiler never emitted into — a programming error in
	// this package, not a user-facing condition.
	panic(fmt.Sprintf("compiler: no line recorded for instruction offset %d", index))
}

// maxConstants is the largest number of entries a chunk's constant
// pool may hold — the pool is addressed by a single operand byte.
const maxConstants = 256

// Chunk is a self-contained compilation unit: a byte-vector of
// opcodes and inline operands, a constant pool, and a RunTable. It is
// append-only during compilation; the compiler never edits or
// back-patches an already-written byte (there are no jump opcodes to
// patch, per spec.md's non-goals).
type Chunk struct {
	Code      []byte
	Constants []value.Value
	Lines     RunTable
}

// NewChunk returns an empty chunk ready for a single compile.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Write appends a single instruction byte (an opcode or an operand
// byte), recording line in the RunTable in lockstep.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines.Append(line)
}

// AddConstant appends value to the constant pool and returns its
// index, or an error if the pool is already full: it holds at most 256
// constants (indices 0-255), so a 257th is a compile error.
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1, nil
}

// Disassemble renders the chunk as a human-readable instruction
// listing, one line per instruction: offset, source line (or "|" when
// it repeats the previous instruction's line, and omitted entirely
// when showLines is false), mnemonic, and operand. This is the
// out-of-scope "debug disassembler" spec.md §1 treats as an external
// collaborator; ember keeps a minimal version for the `disasm` CLI
// subcommand's `-line-numbers` flag to toggle.
func (c *Chunk) Disassemble(name string, showLines bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	offset := 0
	lastLine := -1
	for offset < len(c.Code) {
		next, text := c.disassembleInstruction(offset, &lastLine, showLines)
		b.WriteString(text)
		offset = next
	}
	return b.String()
}

func (c *Chunk) disassembleInstruction(offset int, lastLine *int, showLines bool) (int, string) {
	op := Opcode(c.Code[offset])
	lineCol := ""
	if showLines {
		line := c.Lines.Line(offset)
		if line == *lastLine {
			lineCol = "   | "
		} else {
			lineCol = fmt.Sprintf("%4d ", line)
			*lastLine = line
		}
	}

	width := OperandWidth(op)
	switch width {
	case 0:
		return offset + 1, fmt.Sprintf("%04d %s%s\n", offset, lineCol, op)
	case 1:
		index := int(c.Code[offset+1])
		var operandDesc string
		if index < len(c.Constants) {
			operandDesc = fmt.Sprintf("%4d '%s'", index, c.Constants[index])
		} else {
			operandDesc = fmt.Sprintf("%4d <out of range>", index)
		}
		return offset + 2, fmt.Sprintf("%04d %s%-16s %s\n", offset, lineCol, op, operandDesc)
	default:
		return offset + 1 + width, fmt.Sprintf("%04d %s%s <unsupported operand width>\n", offset, lineCol, op)
	}
}
