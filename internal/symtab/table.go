// Package symtab implements the interning pool's published lookup table: an
// open-addressed, content-keyed hash table mapping a 64-bit hash to the
// arena address of the string record it identifies.
//
// A *Table is immutable once constructed. Readers call Probe concurrently,
// without any synchronization of their own, against whichever *Table the
// Interner has currently published — this is what makes the interner's
// read path lock-free. Writers never mutate a published table in place;
// WithInsert always returns a new table built from the old one plus the
// single new entry, which is the property that lets readers treat a table
// as a frozen snapshot.
//
// © 2025 strpool authors. MIT License.
package symtab

import (
	"bytes"
	"unsafe"

	"github.com/Voskan/strpool/internal/arena"
	"github.com/Voskan/strpool/internal/unsafehelpers"
)

// maxLoadFactor bounds slots-in-use / len(slots); WithInsert doubles
// capacity before it would be exceeded.
const maxLoadFactor = 0.75

// minCapacity is the smallest table ever built, chosen so early growth
// doesn't thrash on the first handful of inserts.
const minCapacity = 16

type slot struct {
	hash uint64
	ptr  unsafe.Pointer // arena address of the record's payload; nil = empty
}

// Table is an immutable open-addressed hash table from content hash to
// interned-record address.
type Table struct {
	slots []slot
	mask  uint64
	count int
}

// New returns an empty table. A nil *Table is also a valid, empty table —
// Probe and Len both treat it as containing zero entries — so the
// Interner's zero-value "no table published yet" state needs no special
// casing.
func New() *Table {
	return nil
}

// Len reports the number of entries in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Cap reports the number of slots backing the table.
func (t *Table) Cap() int {
	if t == nil {
		return 0
	}
	return len(t.slots)
}

// Probe looks up bytes by its precomputed hash. It never blocks, never
// allocates, and never mutates the table — any number of goroutines may
// call Probe on the same *Table concurrently, including while a writer is
// building a replacement table, since the replacement is a distinct value.
func (t *Table) Probe(hash uint64, b []byte) (unsafe.Pointer, bool) {
	if t == nil || len(t.slots) == 0 {
		return nil, false
	}
	idx := hash & t.mask
	for {
		s := t.slots[idx]
		if s.ptr == nil {
			return nil, false
		}
		if s.hash == hash && bytes.Equal(arena.BytesAt(s.ptr), b) {
			return s.ptr, true
		}
		idx = (idx + 1) & t.mask
	}
}

// WithInsert returns a new table containing every entry of t plus (hash,
// ptr). If the resulting load factor would exceed maxLoadFactor, the new
// table is built at doubled capacity (or minCapacity, whichever is
// larger) and every prior entry is rehashed into it.
func (t *Table) WithInsert(hash uint64, ptr unsafe.Pointer) *Table {
	newCount := t.Len() + 1
	capacity := t.Cap()
	if capacity == 0 {
		capacity = minCapacity
	}
	for float64(newCount)/float64(capacity) > maxLoadFactor {
		capacity *= 2
	}
	if !unsafehelpers.IsPowerOfTwo(uintptr(capacity)) {
		// Every growth step above starts from minCapacity (a power of two)
		// and only ever doubles, so this would mean the invariant the mask
		// probe sequence depends on has already broken.
		panic("symtab: capacity drifted off a power of two")
	}

	nt := &Table{
		slots: make([]slot, capacity),
		mask:  uint64(capacity - 1),
		count: newCount,
	}
	if t != nil {
		for _, s := range t.slots {
			if s.ptr != nil {
				nt.insert(s.hash, s.ptr)
			}
		}
	}
	nt.insert(hash, ptr)
	return nt
}

// insert places (hash, ptr) into an already-sized, not-yet-published table.
// Callers must guarantee the table has room; WithInsert's capacity loop
// above is what provides that guarantee.
func (t *Table) insert(hash uint64, ptr unsafe.Pointer) {
	idx := hash & t.mask
	for t.slots[idx].ptr != nil {
		idx = (idx + 1) & t.mask
	}
	t.slots[idx] = slot{hash: hash, ptr: ptr}
}

// LoadFactor reports the table's current slots-in-use / capacity ratio, for
// metrics and diagnostics. Returns 0 for an empty or nil table.
func (t *Table) LoadFactor() float64 {
	if t.Cap() == 0 {
		return 0
	}
	return float64(t.Len()) / float64(t.Cap())
}

// Each calls fn once for every occupied slot. Each operates on a single
// immutable snapshot of the table, so it is safe to call concurrently with
// probes against the same *Table; it must not be called against a table
// that is still being built by WithInsert.
func (t *Table) Each(fn func(hash uint64, ptr unsafe.Pointer)) {
	if t == nil {
		return
	}
	for _, s := range t.slots {
		if s.ptr != nil {
			fn(s.hash, s.ptr)
		}
	}
}
