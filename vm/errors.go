package vm

import "fmt"

// RuntimeError is a type mismatch, undefined variable, or other
// failure detected while executing a chunk. Error() renders it the
// way spec.md §4.5/§7 specifies: the message, then the source line on
// its own line, matching what a REPL or script runner writes to
// stderr before resetting for the next input.
type RuntimeError struct {
	Line    int
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s\n[line %d] in script", e.Message, e.Line)
}
