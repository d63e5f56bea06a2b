// handle.go defines IStr, the opaque handle returned by Intern/TryLookup.
//
// An IStr is a single machine word: the address of a StringRecord's
// payload inside the Interner's arena. Equal handles mean equal bytes
// (the canonicalization invariant); there is no reference counting because
// the arena never frees what it allocates.
//
// © 2025 strpool authors. MIT License.
package intern

import (
	"unsafe"

	"github.com/Voskan/strpool/internal/arena"
	"github.com/Voskan/strpool/internal/unsafehelpers"
)

// IStr is an interned string handle. Its zero value is not a valid handle
// for any string — valid handles are only ever produced by Intern/TryLookup.
type IStr struct {
	p unsafe.Pointer
}

// IsZero reports whether h is the zero value (never produced by a
// successful Intern or TryLookup).
func (h IStr) IsZero() bool { return h.p == nil }

// Bytes returns the length-prefixed view of the interned string: exactly
// the bytes passed to Intern, with no trailing nul. The slice aliases
// immortal arena memory and must not be mutated.
func (h IStr) Bytes() []byte { return arena.BytesAt(h.p) }

// CString returns the nul-terminated view: the interned bytes followed by
// a single trailing zero byte. If the original bytes contained an interior
// nul, a C caller will see a truncated string; Bytes and String remain
// unaffected.
func (h IStr) CString() []byte { return arena.CStringAt(h.p) }

// String returns a zero-copy string view of the interned bytes. The
// returned string aliases arena memory, which is safe because arena
// records are immutable after being written.
func (h IStr) String() string { return unsafehelpers.BytesToString(h.Bytes()) }

// Hash returns the content hash of h's bytes, computed with the same
// function used to build the lookup table entry for h. It agrees with
// Hash(b) for any byte slice b equal to h's content, so an IStr can be used
// as a key in an external hash container alongside borrowed byte lookups.
func (h IStr) Hash() uint64 { return Hash(h.Bytes()) }

// Equal reports whether h and other identify the same interned string.
// Because interning canonicalizes, pointer equality is content equality.
func (h IStr) Equal(other IStr) bool { return h.p == other.p }

// Less imposes an arbitrary but stable total order over handles, based on
// their address. It has nothing to do with the interned strings' content
// ordering — spec's "no ordering of strings" non-goal is about content,
// not about giving handles *some* order so they can live in a sorted
// container (see DESIGN.md).
func (h IStr) Less(other IStr) bool { return uintptr(h.p) < uintptr(other.p) }
