// worker.go exposes internal/epoch's long-lived PersistentGuard to callers
// that want to amortize reader-registration across many lookups from one
// goroutine, instead of drawing a pooled guard on every call the way the
// package-level TryLookup/Intern do.
//
// © 2025 strpool authors. MIT License.
package intern

import "github.com/Voskan/strpool/internal/epoch"

// Worker is a long-lived lookup handle for a single goroutine. Create one
// with Interner.NewWorker and Close it when the goroutine is done with the
// pool; forgetting to Close leaks one epoch-registry slot for the life of
// the process, since Go gives no hook to reclaim it automatically (see
// internal/epoch's package documentation).
type Worker struct {
	in *Interner
	g  *epoch.PersistentGuard
}

// NewWorker registers a persistent reader slot for the calling goroutine
// to reuse across many lookups.
func (in *Interner) NewWorker() *Worker {
	return &Worker{in: in, g: in.reg.AcquirePersistent()}
}

// TryLookup probes the currently published table using this worker's own
// registered counter rather than a pooled one.
func (w *Worker) TryLookup(b []byte) (IStr, bool) {
	h := Hash(b)
	w.g.Enter()
	tbl := w.in.published.Load()
	ptr, ok := tbl.Probe(h, b)
	w.g.Leave()

	if !ok {
		w.in.metrics.incMiss()
		return IStr{}, false
	}
	w.in.metrics.incHit()
	return IStr{p: ptr}, true
}

// Close deregisters the worker's counter. After Close, the Worker must not
// be used again.
func (w *Worker) Close() { w.g.Close() }
