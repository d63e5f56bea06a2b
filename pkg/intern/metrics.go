// metrics.go is a thin abstraction over Prometheus so the interning pool
// can be used with or without metrics. When the caller supplies a
// *prometheus.Registry via WithMetrics, unlabeled collectors are created and
// registered; otherwise a no-op sink is used and the hot path pays nothing
// for metric bookkeeping. Mirrors the teacher cache's metrics.go shape.
//
// © 2025 strpool authors. MIT License.
package intern

import "github.com/prometheus/client_golang/prometheus"

// metricsSink abstracts the concrete backend (Prometheus vs noop) away from
// the Interner, which only knows these methods.
type metricsSink interface {
	incHit()
	incMiss()
	incIntern()
	incTableRebuild()
	setArenaBytes(v int64)
	setArenaPages(v int)
	setRegistrySize(v int)
	setTableLoadFactor(v float64)
}

/* -------------------- no-op implementation -------------------- */

type noopMetrics struct{}

func (noopMetrics) incHit() {}
func (noopMetrics) incMiss() {}
func (noopMetrics) incIntern() {}
func (noopMetrics) incTableRebuild() {}
func (noopMetrics) setArenaBytes(int64) {}
func (noopMetrics) setArenaPages(int) {}
func (noopMetrics) setRegistrySize(int) {}
func (noopMetrics) setTableLoadFactor(float64) {}

/* -------------------- Prometheus implementation -------------------- */

type promMetrics struct {
	hits           prometheus.Counter
	misses         prometheus.Counter
	interns        prometheus.Counter
	tableRebuilds  prometheus.Counter
	arenaBytes     prometheus.Gauge
	arenaPages     prometheus.Gauge
	registrySize   prometheus.Gauge
	tableLoadRatio prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strpool", Name: "lookup_hits_total",
			Help: "Number of TryLookup/Intern fast-path hits.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strpool", Name: "lookup_misses_total",
			Help: "Number of TryLookup/Intern fast-path misses.",
		}),
		interns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strpool", Name: "intern_total",
			Help: "Number of new strings written to the arena.",
		}),
		tableRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strpool", Name: "table_rebuilds_total",
			Help: "Number of times the published lookup table was rebuilt wholesale.",
		}),
		arenaBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "strpool", Name: "arena_bytes",
			Help: "Committed record bytes across all arena pages.",
		}),
		arenaPages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "strpool", Name: "arena_pages",
			Help: "Number of arena pages allocated so far.",
		}),
		registrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "strpool", Name: "epoch_registry_size",
			Help: "Number of epoch counters currently tracked by the registry.",
		}),
		tableLoadRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "strpool", Name: "table_load_factor",
			Help: "Current published lookup table load factor.",
		}),
	}
	reg.MustRegister(pm.hits, pm.misses, pm.interns, pm.tableRebuilds,
		pm.arenaBytes, pm.arenaPages, pm.registrySize, pm.tableLoadRatio)
	return pm
}

func (m *promMetrics) incHit() { m.hits.Inc() }
func (m *promMetrics) incMiss() { m.misses.Inc() }
func (m *promMetrics) incIntern() { m.interns.Inc() }
func (m *promMetrics) incTableRebuild() { m.tableRebuilds.Inc() }
func (m *promMetrics) setArenaBytes(v int64) { m.arenaBytes.Set(float64(v)) }
func (m *promMetrics) setArenaPages(v int) { m.arenaPages.Set(float64(v)) }
func (m *promMetrics) setRegistrySize(v int) { m.registrySize.Set(float64(v)) }
func (m *promMetrics) setTableLoadFactor(v float64) { m.tableLoadRatio.Set(v) }

// newMetricsSink decides which implementation to use.
func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
