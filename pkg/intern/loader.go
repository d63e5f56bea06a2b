// loader.go wraps x/sync/singleflight to coalesce concurrent Intern misses
// for the same new byte string into a single arena write + table rebuild,
// the same way the teacher cache's loader.go coalesces concurrent
// GetOrLoad misses for the same key. This sits above, not in place of, the
// mandatory writer-mutex re-probe in intern's slow path (see interner.go):
// singleflight only collapses goroutines that happen to race on the exact
// same content at the same moment, while the re-probe is what actually
// proves the canonicalization invariant regardless of whether singleflight
// caught the race.
//
// The coalescing key must be the content itself, not its hash: two
// distinct byte strings whose hash collides would otherwise coalesce onto
// one singleflight call, and the loser would receive the winner's handle
// without ever reaching the re-probe that would have told them apart.
//
// © 2025 strpool authors. MIT License.
package intern

import "golang.org/x/sync/singleflight"

type loaderGroup struct {
	g singleflight.Group
}

func newLoaderGroup() *loaderGroup {
	return &loaderGroup{}
}

// do runs fn at most once per concurrently-racing content key; every
// caller racing on the same key receives the same (IStr, error) result.
func (lg *loaderGroup) do(key string, fn func() (IStr, error)) (IStr, error) {
	v, err, _ := lg.g.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return IStr{}, err
	}
	return v.(IStr), nil
}
