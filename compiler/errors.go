package compiler

import "fmt"

// CompileError reports one syntax or semantic problem found while
// compiling. A single compile can accumulate several of these — the
// Pratt parser keeps going after an error by synchronizing at the
// next statement boundary, per spec.md §4.2/§7 — so Compile returns a
// slice rather than stopping at the first one.
type CompileError struct {
	Line    int
	At      string // the offending lexeme, "end", or "" for a scanner error token (its text is in Message)
	Message string
}

func (e CompileError) Error() string {
	if e.At == "" {
		return fmt.Sprintf("💥 CompileError: [line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("💥 CompileError: [line %d] Error at '%s': %s", e.Line, e.At, e.Message)
}
