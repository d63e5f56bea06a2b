// Package intern is the public surface of strpool: a process-wide string
// interning pool built around a single writer-mutex-guarded Arena and
// EpochRegistry, and a published LookupTable that readers probe without
// taking any lock.
//
// config.go follows the same functional-options shape the teacher codebase
// uses for its cache: a private config struct filled in by defaults and
// then by user-supplied Option values, so the constructor signature never
// has to grow when a new knob is added.
//
// © 2025 strpool authors. MIT License.
package intern

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures an Interner at construction time.
type Option func(*config)

type config struct {
	logger   *zap.Logger
	registry *prometheus.Registry
}

func defaultConfig() *config {
	return &config{
		logger:   zap.NewNop(),
		registry: nil, // metrics are opt-in
	}
}

// WithLogger plugs an external zap.Logger. The interner never logs on the
// read path (TryLookup) or the common case of Intern's fast path; only
// slow events — table rebuilds, arena page growth, registry reclamation —
// are emitted, all at Debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection. Passing nil disables
// metrics (the default): the hot path pays nothing for metric updates when
// no registry is configured.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}
