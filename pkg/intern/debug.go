// debug.go exposes an optional HTTP handler reporting an Interner's Stats
// as JSON, the same shape the teacher cache's /debug/arena-cache/snapshot
// endpoint serves, so cmd/intern-inspect can decode it by Stats field name.
//
// © 2025 strpool authors. MIT License.
package intern

import (
	"encoding/json"
	"net/http"
)

// SnapshotHandler returns an http.HandlerFunc that writes in.Stats() as
// JSON. Intended to be mounted at a debug path such as
// "/debug/intern/snapshot"; the path itself is the caller's choice.
func SnapshotHandler(in *Interner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(in.Stats())
	}
}
