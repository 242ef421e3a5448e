package compiler

import (
	"strings"
	"testing"

	"ember/value"
)

func TestRunTableCollapsesRepeatedLines(t *testing.T) {
	var rt RunTable
	rt.Append(1)
	rt.Append(1)
	rt.Append(1)
	rt.Append(2)

	if got := rt.Line(0); got != 1 {
		t.Errorf("Line(0) = %d, want 1", got)
	}
	if got := rt.Line(2); got != 1 {
		t.Errorf("Line(2) = %d, want 1", got)
	}
	if got := rt.Line(3); got != 2 {
		t.Errorf("Line(3) = %d, want 2", got)
	}
	if len(rt.runs) != 2 {
		t.Errorf("expected the three same-line appends to collapse into one run, got %d runs", len(rt.runs))
	}
}

func TestRunTableLineOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Line to panic on an offset past every run")
		}
	}()
	var rt RunTable
	rt.Append(1)
	rt.Line(5)
}

func TestAddConstantReturnsIndex(t *testing.T) {
	c := NewChunk()
	i0, err := c.AddConstant(value.Number(1))
	if err != nil || i0 != 0 {
		t.Fatalf("AddConstant = %d, %v; want 0, nil", i0, err)
	}
	i1, err := c.AddConstant(value.Number(2))
	if err != nil || i1 != 1 {
		t.Fatalf("AddConstant = %d, %v; want 1, nil", i1, err)
	}
}

func TestAddConstantOverflows(t *testing.T) {
	c := NewChunk()
	for i := 0; i < maxConstants; i++ {
		if _, err := c.AddConstant(value.Number(float64(i))); err != nil {
			t.Fatalf("unexpected error adding constant %d: %v", i, err)
		}
	}
	if _, err := c.AddConstant(value.Number(999)); err == nil {
		t.Error("expected an error adding the 257th constant")
	}
}

func TestDisassembleIncludesMnemonics(t *testing.T) {
	c := NewChunk()
	idx, _ := c.AddConstant(value.Number(7))
	c.Write(byte(OpConstant), 1)
	c.Write(byte(idx), 1)
	c.Write(byte(OpReturn), 1)

	out := c.Disassemble("test", true)
	if !strings.Contains(out, "OP_CONSTANT") {
		t.Errorf("disassembly missing OP_CONSTANT: %q", out)
	}
	if !strings.Contains(out, "OP_RETURN") {
		t.Errorf("disassembly missing OP_RETURN: %q", out)
	}
}

func TestDisassembleOmitsLineNumbersWhenDisabled(t *testing.T) {
	c := NewChunk()
	idx, _ := c.AddConstant(value.Number(7))
	c.Write(byte(OpConstant), 1)
	c.Write(byte(idx), 1)
	c.Write(byte(OpReturn), 1)

	withLines := c.Disassemble("test", true)
	withoutLines := c.Disassemble("test", false)
	if !strings.Contains(withLines, "   1 ") {
		t.Errorf("expected a line-number column when showLines is true: %q", withLines)
	}
	if strings.Contains(withoutLines, "   1 ") {
		t.Errorf("line-number column should be absent when showLines is false: %q", withoutLines)
	}
}
