// Package interner holds the two structures spec.md §3/§5 says the
// compiler and the VM must share: the heap-allocated object list and
// the string-intern table. Both the compiler (for string literals and
// global-variable names) and the VM (for runtime string concatenation)
// route every string creation through the same Strings instance, so
// that the interning invariant — equal bytes always means the same
// object — holds across an entire compile+run cycle, and across
// however many cycles a REPL session chains together.
package interner

import (
	"ember/table"
	"ember/value"
)

// Strings is the VM-owned pair of (object heap, intern set) that
// spec.md's "Shared state" section (§5) describes as conceptually
// belonging to a single VM instance.
type Strings struct {
	heap  *value.Heap
	table *table.Table
}

// New creates an empty interner.
func New() *Strings {
	return &Strings{heap: value.NewHeap(), table: table.New()}
}

// Intern returns the canonical String object for s, allocating and
// linking a new one into the heap only if an equal string isn't
// already interned. This is the single chokepoint every string
// creation (literals, identifiers, concatenation results) must pass
// through to uphold the interning invariant.
func (s *Strings) Intern(chars string) *value.Obj {
	hash := table.FNV1a(chars)
	if existing, ok := s.table.FindString(chars, hash); ok {
		return existing
	}
	obj := s.heap.NewString(chars, hash)
	s.table.Set(obj, value.Nil())
	return obj
}

// Heap exposes the underlying object heap, e.g. for Release on
// teardown or for diagnostics.
func (s *Strings) Heap() *value.Heap { return s.heap }

// Count returns the number of distinct strings currently interned.
func (s *Strings) Count() int { return s.table.Count() }

// Release tears down the interner: every tracked object is dropped
// and the intern table reset, mirroring the VM teardown spec.md §5
// describes (freeing the object list also requires emptying the
// table, since its keys are reference-identical with list entries).
func (s *Strings) Release() {
	s.heap.Release()
	s.table = table.New()
}
