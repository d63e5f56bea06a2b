// Package arena is an append-only, geometrically-growing page allocator for
// interned string records. Unlike the Go runtime's experimental `arena`
// package — which hands memory back all at once via Free() — the interning
// pool never frees: every record it stores must remain valid at a fixed
// address for the remaining lifetime of the process. This package gives the
// rest of strpool a single place that understands that layout, so nothing
// upstream has to reason about page boundaries directly.
//
// A record is laid out as:
//
//	[4 bytes: little-endian uint32 length] [length bytes: payload] [1 byte: 0x00]
//
// Push returns a pointer to the payload's first byte — that pointer, not the
// record header, is the handle address the rest of the package hands out.
// The four bytes immediately preceding it hold the length, and the byte
// immediately following the payload is always zero, so a caller can
// reconstruct either view (length-prefixed or nul-terminated) purely from
// the pointer Push returned.
//
// Concurrency
// -----------
// Arena has no internal locking. Push must only be called by the Interner's
// writer while it holds its own mutex. Readers never call into this package
// for anything but the record-view helpers (BytesAt, CStringAt, LenAt),
// which perform no writes and are safe for any number of concurrent callers
// once the pointer they're given has been published.
//
// © 2025 strpool authors. MIT License.
package arena

import (
	"encoding/binary"
	"errors"
	"math"
	"unsafe"

	"github.com/Voskan/strpool/internal/unsafehelpers"
)

// ErrTooLong is returned by Push when the payload exceeds the maximum
// length a record header can express.
var ErrTooLong = errors.New("arena: payload exceeds 4GiB record limit")

const (
	headerSize  = 4 // length prefix
	trailerSize = 1 // trailing nul

	// minPageSize is large enough to hold many small interned strings
	// before the first growth step.
	minPageSize = 4 << 10
)

type page struct {
	buf []byte // fixed-length backing array; never reallocated
	off int    // write cursor, bytes already committed
}

// Arena is an ordered list of pages. Earlier pages are never moved, resized
// or freed; new pages are appended to the tail as needed.
type Arena struct {
	pages []*page
}

// New returns an empty Arena ready for Push calls.
func New() *Arena {
	return &Arena{}
}

// Push copies b into the tail page (allocating a new page if necessary) and
// returns a stable pointer to the copied payload. The pointer remains valid
// for the lifetime of the process.
//
// Push must only be called while the caller holds whatever external lock
// serializes writers; it performs no synchronization of its own.
func (a *Arena) Push(b []byte) (unsafe.Pointer, error) {
	if len(b) > math.MaxUint32 {
		return nil, ErrTooLong
	}
	size := headerSize + len(b) + trailerSize

	tail := a.tail()
	if tail == nil || tail.off+size > len(tail.buf) {
		tail = a.grow(size)
	}

	start := tail.off
	binary.LittleEndian.PutUint32(tail.buf[start:], uint32(len(b)))
	copy(tail.buf[start+headerSize:], b)
	tail.buf[start+headerSize+len(b)] = 0x00
	tail.off = start + size

	return unsafe.Pointer(&tail.buf[start+headerSize]), nil
}

func (a *Arena) tail() *page {
	if len(a.pages) == 0 {
		return nil
	}
	return a.pages[len(a.pages)-1]
}

// grow appends a new page sized to the larger of the next geometric step
// (2x the previous page's capacity, minPageSize for the first page) and the
// size required for the record that triggered the growth.
func (a *Arena) grow(minSize int) *page {
	next := minPageSize
	if t := a.tail(); t != nil {
		next = 2 * len(t.buf)
	}
	if minSize > next {
		next = minSize
	}
	next = int(unsafehelpers.AlignUp(uintptr(next), 8))
	p := &page{buf: make([]byte, next)}
	a.pages = append(a.pages, p)
	return p
}

// PageCount reports how many pages have been allocated so far.
func (a *Arena) PageCount() int { return len(a.pages) }

// Bytes reports the total number of committed record bytes (header +
// payload + trailer) across all pages.
func (a *Arena) Bytes() int64 {
	var total int64
	for _, p := range a.pages {
		total += int64(p.off)
	}
	return total
}

// Capacity reports the total backing capacity across all pages, including
// unused tail space.
func (a *Arena) Capacity() int64 {
	var total int64
	for _, p := range a.pages {
		total += int64(len(p.buf))
	}
	return total
}

/* -------------------------------------------------------------------------
   Record views — shared layout knowledge used by symtab and the handle type.
   ------------------------------------------------------------------------- */

// LenAt reads the length prefix stored immediately before the record
// pointed to by p.
func LenAt(p unsafe.Pointer) uint32 {
	header := unsafe.Add(p, -headerSize)
	return binary.LittleEndian.Uint32(unsafe.Slice((*byte)(header), headerSize))
}

// BytesAt returns the length-prefixed payload view of the record at p. The
// returned slice aliases arena memory and must never be mutated by callers.
func BytesAt(p unsafe.Pointer) []byte {
	return unsafehelpers.ByteSliceFrom(p, uintptr(LenAt(p)))
}

// CStringAt returns the nul-terminated view of the record at p: the payload
// followed by its trailing zero byte.
func CStringAt(p unsafe.Pointer) []byte {
	return unsafehelpers.ByteSliceFrom(p, uintptr(LenAt(p))+trailerSize)
}
