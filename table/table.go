// Package table implements the open-addressed hash table spec.md
// §4.4 describes. A single Table type serves double duty in ember,
// exactly as in the original: one instance holds the VM's global
// variables (keyed by interned string objects), and another holds the
// set of every interned string itself.
package table

import "ember/value"

const maxLoad = 0.75

// entry follows the spec's exact slot-state encoding: empty is
// key == nil with a nil value; a tombstone is key == nil with any
// non-nil value (ember uses Bool(true), matching the original).
type entry struct {
	key   *value.Obj
	value value.Value
}

func (e *entry) isEmpty() bool     { return e.key == nil && e.value.IsNil() }
func (e *entry) isTombstone() bool { return e.key == nil && !e.value.IsNil() }

// Table is an open-addressed map from interned string objects to
// Values, using linear probing and tombstone deletes.
type Table struct {
	entries []entry
	count   int // occupied slots + tombstones, per spec.md's resize bookkeeping
}

// New returns an empty table. The backing array grows lazily on
// first insert, starting at capacity 8.
func New() *Table {
	return &Table{}
}

// FNV1a hashes bytes the way spec.md §4.4 requires: 32-bit FNV-1a,
// offset basis 2166136261, prime 16777619.
func FNV1a(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func newEntries(capacity int) []entry {
	entries := make([]entry, capacity)
	for i := range entries {
		entries[i] = entry{key: nil, value: value.Nil()}
	}
	return entries
}

func (t *Table) grow(capacity int) {
	old := t.entries
	t.entries = newEntries(capacity)
	t.count = 0
	for _, e := range old {
		if e.key == nil {
			continue
		}
		dest := t.findEntry(e.key)
		dest.key = e.key
		dest.value = e.value
		t.count++
	}
}

// findEntry runs the probe sequence for key starting at key.Hash() mod
// capacity, returning the occupied slot matching key, or — failing
// that — the first tombstone seen (so inserts reuse it), or else the
// terminating empty slot.
func (t *Table) findEntry(key *value.Obj) *entry {
	capacity := len(t.entries)
	index := int(key.Hash()) % capacity
	var tombstone *entry
	for {
		e := &t.entries[index]
		if e.key == nil {
			if e.isEmpty() {
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			if tombstone == nil {
				tombstone = e
			}
		} else if e.key == key {
			return e
		}
		index = (index + 1) % capacity
	}
}

// Get looks up key and reports whether it was found.
func (t *Table) Get(key *value.Obj) (value.Value, bool) {
	if t.count == 0 {
		return value.Nil(), false
	}
	e := t.findEntry(key)
	if e.key == nil {
		return value.Nil(), false
	}
	return e.value, true
}

// Set inserts or overwrites a key's value, growing the table first if
// the load factor would exceed 0.75.
//
// Parameters:
//   - key: *value.Obj
//     The interned string object to use as the map key. Keys are
//     compared by pointer identity, not by content.
//   - v: value.Value
//     The value to store under key.
//
// Returns:
//   - bool: true if key was not already present (a fresh insert),
//     false if this call overwrote an existing entry.
func (t *Table) Set(key *value.Obj, v value.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		capacity := 8
		if len(t.entries) > 0 {
			capacity = len(t.entries) * 2
		}
		t.grow(capacity)
	}
	e := t.findEntry(key)
	isNewKey := e.key == nil
	// A reused tombstone is already counted; only a truly empty slot
	// adds to count.
	if isNewKey && e.isEmpty() {
		t.count++
	}
	e.key = key
	e.value = v
	return isNewKey
}

// Delete replaces key's slot with a tombstone. count is not
// decremented — tombstones count toward the load factor so they get
// amortized away by future resizes, per spec.md §4.4.
func (t *Table) Delete(key *value.Obj) bool {
	if t.count == 0 {
		return false
	}
	e := t.findEntry(key)
	if e.key == nil {
		return false
	}
	e.key = nil
	e.value = value.Bool(true)
	return true
}

// FindString implements the string-intern lookup spec.md §4.4
// requires: walk the probe sequence comparing length, then hash,
// then bytes, and return the interned object if one already exists.
func (t *Table) FindString(chars string, hash uint32) (*value.Obj, bool) {
	if len(t.entries) == 0 {
		return nil, false
	}
	capacity := len(t.entries)
	index := int(hash) % capacity
	for {
		e := &t.entries[index]
		if e.key == nil {
			if e.isEmpty() {
				return nil, false
			}
		} else if e.key.Len() == len(chars) && e.key.Hash() == hash && e.key.Chars() == chars {
			return e.key, true
		}
		index = (index + 1) % capacity
	}
}

// Count returns the number of occupied slots plus tombstones.
func (t *Table) Count() int { return t.count }

// Capacity returns the current backing array size (0 before first insert).
func (t *Table) Capacity() int { return len(t.entries) }
