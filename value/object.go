package value

// ObjType discriminates heap object variants. String is currently the
// only one the language supports.
type ObjType int

const (
	ObjString ObjType = iota
)

// Obj is the header every heap object embeds. Next links it into the
// VM's intrusive object list — the mechanism spec.md §3/§5 describes
// for whole-VM teardown. Go's own garbage collector reclaims the
// memory once nothing (including this list) references an Obj; the
// list exists to mirror the book-keeping a non-GC'd host would need;
// Heap.Count gives a precise object count for tests and diagnostics
// without walking the Go heap.
type Obj struct {
	Type ObjType
	Next *Obj

	str  string // valid when Type == ObjString
	hash uint32 // valid when Type == ObjString
}

// Hash returns the FNV-1a hash of a String object's bytes (computed
// once, at allocation time, per spec.md §4.4).
func (o *Obj) Hash() uint32 { return o.hash }

// Chars returns a String object's raw bytes.
func (o *Obj) Chars() string { return o.str }

// Len returns a String object's length in bytes.
func (o *Obj) Len() int { return len(o.str) }

func (o *Obj) String() string {
	switch o.Type {
	case ObjString:
		return o.str
	default:
		return "<obj>"
	}
}

// Heap owns every object allocated during a compile+run cycle,
// threading them into one intrusive linked list so Release can tear
// the whole generation down at once — the same lifetime spec.md §3
// describes ("from allocation to VM teardown; the VM owns every
// object exclusively").
type Heap struct {
	objects *Obj
	count   int
}

// NewHeap creates an empty object heap.
func NewHeap() *Heap {
	return &Heap{}
}

// NewString allocates a fresh String object (NOT checked against any
// intern table — that's the caller's job, per the interning
// invariant in spec.md §3) and links it into the heap.
func (h *Heap) NewString(s string, hash uint32) *Obj {
	obj := &Obj{Type: ObjString, str: s, hash: hash, Next: h.objects}
	h.objects = obj
	h.count++
	return obj
}

// Count returns the number of live objects tracked by this heap.
func (h *Heap) Count() int { return h.count }

// Release walks the object list and drops the heap's references to
// it. Go's garbage collector performs the actual reclamation once no
// other root (the value stack, the globals table, the intern table)
// still points at an object — there is no explicit free() to call,
// unlike the C original this design is ported from.
func (h *Heap) Release() {
	h.objects = nil
	h.count = 0
}
