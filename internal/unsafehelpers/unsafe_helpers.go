// Package unsafehelpers centralises **all** unavoidable usage of the
// `unsafe` standard library package so the rest of strpool stays clean and
// easy to audit. Every helper documents its pre/post-conditions.
//
// ⚠️  DISCLAIMER — these helpers deliberately step outside Go's memory
// safety model for the sake of zero-allocation conversions. Use ONLY
// inside this repository; they are not part of the public API and may
// change without notice. Misuse leads to subtle data races or garbage
// collector corruption.
//
// All functions are go:linkname-free, cgo-free, pure Go.
//
// © 2025 strpool authors. MIT License.
package unsafehelpers

import "unsafe"

/* -------------------------------------------------------------------------
   1. Zero-copy string/[]byte conversions
   ------------------------------------------------------------------------- */

// BytesToString converts a byte slice to a string without allocating. The
// caller must guarantee b is never modified for the lifetime of the
// resulting string, which is exactly the guarantee an interned record's
// arena storage provides: it is written once and never again.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// StringToBytes re-interprets string data as a byte slice without copying.
// The returned slice MUST remain read-only: writing to it mutates
// supposedly-immutable string storage. Used when hashing or interning a
// caller-supplied string without first copying it to a []byte.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	strHdr := (*[2]uintptr)(unsafe.Pointer(&s))
	return unsafe.Slice((*byte)(unsafe.Pointer(strHdr[0])), strHdr[1])
}

/* -------------------------------------------------------------------------
   2. Raw pointer -> []byte
   ------------------------------------------------------------------------- */

// ByteSliceFrom returns a []byte view of raw memory starting at ptr with
// the given length. The caller must ensure the memory block is at least
// length bytes and outlives the returned slice. This is the one place
// arena record views (length-prefixed and nul-terminated) bottom out into
// unsafe.Slice.
func ByteSliceFrom(ptr unsafe.Pointer, length uintptr) []byte {
	if length == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), length)
}

/* -------------------------------------------------------------------------
   3. Alignment helpers
   ------------------------------------------------------------------------- */

// AlignUp rounds x up to the nearest multiple of align, which must be a
// power of two. Used when sizing arena pages so record boundaries land on
// tidy offsets.
func AlignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}

// IsPowerOfTwo returns true if x has exactly one bit set. Used to assert
// that a lookup table's slot count never drifts off a power of two, which
// the table's masking probe sequence depends on.
func IsPowerOfTwo(x uintptr) bool {
	return x != 0 && (x&(x-1)) == 0
}
