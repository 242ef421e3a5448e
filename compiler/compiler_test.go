package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/compiler"
	"ember/interner"
)

func compile(t *testing.T, source string) *compiler.Chunk {
	t.Helper()
	chunk, errs := compiler.Compile(source, interner.New())
	require.Empty(t, errs, "unexpected compile errors for %q: %v", source, errs)
	return chunk
}

func TestCompileSimpleExpressionStatement(t *testing.T) {
	chunk := compile(t, "1 + 2;")
	assert.Contains(t, chunk.Code, byte(compiler.OpAdd))
	assert.Contains(t, chunk.Code, byte(compiler.OpPop))
	assert.Contains(t, chunk.Code, byte(compiler.OpReturn))
}

func TestCompilePrintStatement(t *testing.T) {
	chunk := compile(t, "print 1;")
	assert.Contains(t, chunk.Code, byte(compiler.OpPrint))
}

func TestCompileVarDeclarationWithoutInitializerEmitsNil(t *testing.T) {
	chunk := compile(t, "var a;")
	assert.Contains(t, chunk.Code, byte(compiler.OpNil))
	assert.Contains(t, chunk.Code, byte(compiler.OpDefineGlobal))
}

func TestCompileLessEqualDesugarsToGreaterNot(t *testing.T) {
	chunk := compile(t, "1 <= 2;")
	idx := indexOf(chunk.Code, byte(compiler.OpGreater))
	require.GreaterOrEqual(t, idx, 0)
	require.Less(t, idx+1, len(chunk.Code))
	assert.Equal(t, byte(compiler.OpNot), chunk.Code[idx+1])
}

func TestCompileStringLiteralIsInterned(t *testing.T) {
	strings := interner.New()
	chunk, errs := compiler.Compile(`"hi"; "hi";`, strings)
	require.Empty(t, errs)
	require.Len(t, chunk.Constants, 2)
	assert.Equal(t, chunk.Constants[0].AsObject(), chunk.Constants[1].AsObject())
}

func TestCompileTernaryIsRejected(t *testing.T) {
	_, errs := compiler.Compile("1 ? 2 : 3;", interner.New())
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "Ternary")
}

func TestCompileConstantPoolOverflow(t *testing.T) {
	source := ""
	for i := 0; i < 300; i++ {
		source += "1;\n"
	}
	_, errs := compiler.Compile(source, interner.New())
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "too many constants") {
			found = true
		}
	}
	assert.True(t, found, "expected a too-many-constants error, got %v", errs)
}

func TestCompileMissingSemicolonReportsErrorAndRecovers(t *testing.T) {
	_, errs := compiler.Compile("print 1 print 2;", interner.New())
	require.NotEmpty(t, errs)
	assert.Equal(t, 1, errs[0].Line)
	// After synchronizing at the second `print`, `print 2;` compiles
	// cleanly, so no follow-on error is reported.
	assert.Len(t, errs, 1)
}

func TestCompileInvalidAssignmentTarget(t *testing.T) {
	_, errs := compiler.Compile("1 + 2 = 3;", interner.New())
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "Invalid assignment target") {
			found = true
		}
	}
	assert.True(t, found)
}

func indexOf(code []byte, b byte) int {
	for i, c := range code {
		if c == b {
			return i
		}
	}
	return -1
}
