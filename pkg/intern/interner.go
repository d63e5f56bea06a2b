// interner.go implements the core lookup/insert protocol described by the
// interning pool's specification: a dual-state publish-and-drain scheme
// that lets any number of readers probe the currently published
// LookupTable without taking a lock, while a single writer mutex
// serializes every mutation (Arena, the published-table swap, reclaiming
// tombstoned counters, and discarding the retired table). The
// EpochRegistry guards its counter list with its own lock, so a reader
// registering a new counter never takes the writer mutex.
//
// © 2025 strpool authors. MIT License.
package intern

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Voskan/strpool/internal/arena"
	"github.com/Voskan/strpool/internal/epoch"
	"github.com/Voskan/strpool/internal/symtab"
)

// ErrTooLong is returned by Intern when the input exceeds the maximum
// length an arena record header can express.
var ErrTooLong = errors.New("intern: input exceeds 4GiB record limit")

// Interner is a string interning pool. The zero value is not usable; build
// one with New. A process-wide default instance is also available through
// the package-level Intern and TryLookup functions (see global.go).
type Interner struct {
	mu  sync.Mutex // writer mutex: serializes Arena, table swap, Reclaim and Drain
	ar  *arena.Arena
	reg *epoch.Registry

	published atomic.Pointer[symtab.Table]

	metrics metricsSink
	logger  *zap.Logger
	loaders *loaderGroup
}

// New constructs an independent Interner. Most programs should prefer the
// package-level Intern/TryLookup against the process-wide default; New
// exists for tests that need isolation and for embedding multiple pools in
// one process.
func New(opts ...Option) *Interner {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	return &Interner{
		ar:      arena.New(),
		reg:     epoch.NewRegistry(),
		metrics: newMetricsSink(cfg.registry),
		logger:  cfg.logger,
		loaders: newLoaderGroup(),
	}
}

// TryLookup probes the currently published table for b. It never blocks
// beyond the one-time, pool-amortized cost of acquiring a reader guard,
// never allocates, and never takes the writer mutex.
func (in *Interner) TryLookup(b []byte) (IStr, bool) {
	h := Hash(b)
	return in.tryLookupHashed(h, b)
}

func (in *Interner) tryLookupHashed(h uint64, b []byte) (IStr, bool) {
	g := in.reg.Acquire()
	tbl := in.published.Load()
	ptr, ok := tbl.Probe(h, b)
	g.Release()

	if !ok {
		in.metrics.incMiss()
		return IStr{}, false
	}
	in.metrics.incHit()
	return IStr{p: ptr}, true
}

// Intern returns the canonical handle for b, inserting it if this is the
// first time b has been seen. Repeated calls with byte-equal input always
// return handles with identical pointer identity.
func (in *Interner) Intern(b []byte) (IStr, error) {
	if len(b) > math.MaxUint32 {
		return IStr{}, ErrTooLong
	}

	h := Hash(b)

	// Fast path: never touches the writer mutex.
	if hs, ok := in.tryLookupHashed(h, b); ok {
		return hs, nil
	}

	// Slow path: coalesce concurrent misses on the same content, then fall
	// through to the writer-mutex re-probe regardless of whether this
	// goroutine actually ran the coalesced function or received a shared
	// result — coalescing is a performance optimization, not a substitute
	// for the mutex-protected re-probe that proves canonicalization. The
	// key must be the content itself: keying by hash would coalesce two
	// distinct strings that happen to collide, and the loser would never
	// reach the re-probe that tells them apart.
	return in.loaders.do(string(b), func() (IStr, error) {
		return in.insertLocked(h, b)
	})
}

// insertLocked implements steps 2-10 of the intern protocol. It must only
// be called with the writer mutex not yet held by the caller; it acquires
// and releases it itself.
func (in *Interner) insertLocked(h uint64, b []byte) (IStr, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	// Step 3: re-probe under the mutex. Another writer (for example a
	// singleflight call for the same content that finished just before
	// this one started) may have inserted the same string since the
	// fast-path lookup.
	current := in.published.Load()
	if ptr, ok := current.Probe(h, b); ok {
		return IStr{p: ptr}, nil
	}

	// Step 4: copy bytes into the arena.
	ptr, err := in.ar.Push(b)
	if err != nil {
		return IStr{}, err
	}

	// Step 5: build the replacement table wholesale.
	next := current.WithInsert(h, ptr)

	// Step 6: opportunistically reclaim tombstoned counters.
	if n := in.reg.Reclaim(); n > 0 {
		in.logger.Debug("reclaimed tombstoned epoch counters", zap.Int("count", n))
	}

	// Step 7: publish.
	in.published.Store(next)

	// Step 8: drain readers that might still be inside the retired table.
	in.reg.Drain()

	// Step 9: the retired table (`current`) is now unreachable by any
	// reader and becomes garbage once this function returns; Go's
	// collector reclaims it, there is nothing to free explicitly.

	in.logger.Debug("interned new string",
		zap.Int("len", len(b)),
		zap.Int("arena_pages", in.ar.PageCount()),
		zap.Float64("table_load_factor", next.LoadFactor()),
	)
	in.metrics.incIntern()
	in.metrics.incTableRebuild()
	in.metrics.setArenaBytes(in.ar.Bytes())
	in.metrics.setArenaPages(in.ar.PageCount())
	in.metrics.setRegistrySize(in.reg.Size())
	in.metrics.setTableLoadFactor(next.LoadFactor())

	return IStr{p: ptr}, nil
}

// Stats is a point-in-time snapshot of the interner's internal state,
// useful for debug endpoints and tests.
type Stats struct {
	ArenaBytes    int64
	ArenaPages    int
	TableEntries  int
	TableCapacity int
	LoadFactor    float64
	RegistrySize  int
}

// Stats returns a snapshot of the interner's current size. It takes no
// lock beyond what atomic.Pointer.Load and Registry.Size already use
// internally, so it may observe a table concurrently being replaced — the
// numbers are a best-effort snapshot, not a transaction.
func (in *Interner) Stats() Stats {
	tbl := in.published.Load()
	return Stats{
		ArenaBytes:    in.ar.Bytes(),
		ArenaPages:    in.ar.PageCount(),
		TableEntries:  tbl.Len(),
		TableCapacity: tbl.Cap(),
		LoadFactor:    tbl.LoadFactor(),
		RegistrySize:  in.reg.Size(),
	}
}
