// walk.go offers read-only iteration over every string currently
// interned, for debug tooling and the optional Badger snapshot export in
// internal/persist. It is not part of the core lookup/insert protocol:
// spec.md never requires enumerating the pool's contents, but a process
// that wants to persist a human-readable export of what it interned needs
// some way to walk the table.
//
// © 2025 strpool authors. MIT License.
package intern

import "unsafe"

// Each calls fn once for every string currently interned, in no particular
// order (spec.md explicitly leaves string ordering out of scope). It
// operates on a single snapshot of the published table taken at the start
// of the call; strings interned concurrently with Each may or may not be
// observed, but every string observed is a real, already-canonicalized
// entry.
func (in *Interner) Each(fn func(h IStr)) {
	tbl := in.published.Load()
	tbl.Each(func(_ uint64, ptr unsafe.Pointer) {
		fn(IStr{p: ptr})
	})
}
