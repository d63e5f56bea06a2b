// Package epoch implements the interning pool's reader-registration and
// drain protocol: the mechanism that lets a single writer retire a
// published LookupTable only after proving no reader can still be probing
// it, without readers ever taking a lock.
//
// Each registered counter is a single atomic.Uint64 whose value encodes a
// reader's state by parity:
//
//	0        — tombstone: the owner will never enter again
//	even > 0 — idle
//	odd      — inside a critical section (a probe)
//
// Go gives user code no hook that fires when a goroutine exits — goroutines
// are not OS threads and carry no destructor — so this package offers two
// ways to stay within the registry-size bound spec.md §9 calls out as an
// open, platform-dependent question:
//
//   - ReaderGuard, drawn from a sync.Pool keyed by nothing in particular:
//     short-lived callers (the common case — every call to the package-level
//     Intern/TryLookup) acquire one, use it for a single probe, and return
//     it to the pool instead of owning it for a goroutine's lifetime. There
//     is nothing to leak when the calling goroutine exits, because nothing
//     was ever tied to that goroutine.
//   - PersistentGuard, for callers that want to amortize registration
//     across many lookups from one long-lived goroutine. Its Close method
//     is the explicit deregistration entry point spec.md §9 asks
//     implementations to document when they can't rely on automatic
//     thread-exit hooks: a caller that forgets to Close leaks one counter
//     slot, exactly as the platform caveat describes.
//
// © 2025 strpool authors. MIT License.
package epoch

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Tombstone is the sentinel counter value meaning "owner gone, safe to
// reclaim".
const Tombstone uint64 = 0

type counter struct {
	v atomic.Uint64
}

// Registry is the writer-owned collection of live reader counters.
// Registration and reclamation mutate the backing slice under mu; reading
// a counter's value elsewhere never does.
type Registry struct {
	mu       sync.Mutex
	counters []*counter
	pool     sync.Pool
}

// NewRegistry returns an empty registry ready for use.
func NewRegistry() *Registry {
	r := &Registry{}
	r.pool.New = func() any {
		g := &ReaderGuard{reg: r, c: r.register()}
		// sync.Pool may drop an idle guard at any GC; tombstone its counter
		// once the guard is collected so the next Reclaim removes it.
		runtime.SetFinalizer(g, func(g *ReaderGuard) { g.c.v.Store(Tombstone) })
		return g
	}
	return r
}

// register allocates a fresh counter, initialized to idle (2, not 0, so it
// is never mistaken for a tombstone before its first use), and adds it to
// the registry.
func (r *Registry) register() *counter {
	c := &counter{}
	c.v.Store(2)
	r.mu.Lock()
	r.counters = append(r.counters, c)
	r.mu.Unlock()
	return c
}

// Size reports the number of counters currently tracked, live or
// tombstoned-but-not-yet-reclaimed. Intended for diagnostics and metrics,
// not the hot path.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.counters)
}

/* -------------------------------------------------------------------------
   ReaderGuard — pooled, per-probe
   ------------------------------------------------------------------------- */

// ReaderGuard brackets a single lockless read. Acquire draws one from the
// registry's pool (allocating and registering a counter only on a pool
// miss); Release returns it to the pool for reuse by any future caller on
// any goroutine, rather than tying it to this call's goroutine.
type ReaderGuard struct {
	reg *Registry
	c   *counter
}

// Acquire enters a reader's critical section. The fetch-add transitions
// the counter from idle (even) to reading (odd) with the read-modify-write
// ordering Go's memory model guarantees for atomic.Uint64.Add, which is
// sufficient to prevent a subsequent load of the published table from
// being reordered ahead of this call.
func (r *Registry) Acquire() *ReaderGuard {
	g := r.pool.Get().(*ReaderGuard)
	g.c.v.Add(1)
	return g
}

// Release leaves the critical section (odd -> even) and returns the guard
// to the pool.
func (g *ReaderGuard) Release() {
	g.c.v.Add(1)
	g.reg.pool.Put(g)
}

/* -------------------------------------------------------------------------
   PersistentGuard — long-lived, explicitly closed
   ------------------------------------------------------------------------- */

// PersistentGuard is a registry-tracked counter owned by a single caller
// across many Enter/Leave pairs. Close tombstones the counter; callers that
// skip Close leak one registry slot until the process exits.
type PersistentGuard struct {
	c *counter
}

// AcquirePersistent registers a new counter and returns a guard the caller
// owns until it calls Close.
func (r *Registry) AcquirePersistent() *PersistentGuard {
	return &PersistentGuard{c: r.register()}
}

// Enter opens a critical section (even -> odd).
func (g *PersistentGuard) Enter() { g.c.v.Add(1) }

// Leave closes a critical section (odd -> even).
func (g *PersistentGuard) Leave() { g.c.v.Add(1) }

// Close tombstones the counter so a subsequent writer Reclaim call can
// drop it from the registry. Close is idempotent.
func (g *PersistentGuard) Close() { g.c.v.Store(Tombstone) }

/* -------------------------------------------------------------------------
   Writer-side protocol: Reclaim and Drain
   ------------------------------------------------------------------------- */

// Reclaim drops every tombstoned counter from the registry and reports how
// many were removed. It is meant to be called opportunistically by the
// writer in passing (spec: "discovered in passing"), not as a dedicated
// sweep — missing a tombstone this round just means it's picked up next
// time.
func (r *Registry) Reclaim() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	live := r.counters[:0]
	removed := 0
	for _, c := range r.counters {
		if c.v.Load() == Tombstone {
			removed++
			continue
		}
		live = append(live, c)
	}
	r.counters = live
	return removed
}

// Drain blocks until it can prove that no reader registered at the time
// Drain was called can still be inside the critical section that observed
// the table being retired.
//
// For each counter it snapshots the value once: a tombstone or an even
// value proves the reader cannot currently hold a reference to the retired
// table. An odd value means the reader is mid-critical-section, so Drain
// waits for that counter to change at all — not necessarily to become
// even. A single change is sufficient proof: the reader's next critical
// section begins by reloading the published table pointer, so by the time
// its counter has moved even once past the value Drain observed, it is no
// longer capable of returning a reference to the table being retired.
//
// Counters registered after Drain takes its snapshot are not included:
// they could not have observed the table being retired, because it was
// already off the publish path before they existed.
func (r *Registry) Drain() {
	r.mu.Lock()
	snapshot := make([]*counter, len(r.counters))
	copy(snapshot, r.counters)
	r.mu.Unlock()

	for _, c := range snapshot {
		v := c.v.Load()
		if v == Tombstone || v%2 == 0 {
			continue
		}
		for c.v.Load() == v {
			runtime.Gosched()
		}
	}
}
