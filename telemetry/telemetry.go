// Package telemetry exposes counters for the bounded retry loops and caches
// used during generation.
//
// All collectors are registered on Registry rather than the global default
// registry, so embedding programs decide whether to expose them.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector of this package.
var Registry = prometheus.NewRegistry()

var (
	// FilterMisses counts samples rejected by a filter predicate or by a
	// failing user constructor.
	FilterMisses = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "propcheck_filter_misses_total",
		Help: "Total samples rejected while filtering",
	})

	// UniqueRetries counts elements resampled because they collided with an
	// already accepted element.
	UniqueRetries = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "propcheck_unique_retries_total",
		Help: "Total elements resampled to satisfy uniqueness",
	})

	// EdgeCasesDropped counts edge cases silently removed by a filter.
	EdgeCasesDropped = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "propcheck_edge_cases_dropped_total",
		Help: "Total edge cases dropped because they no longer belong to the domain",
	})

	// CacheLookups counts memoized generator lookups by result.
	CacheLookups = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "propcheck_generator_cache_lookups_total",
		Help: "Total memoized generator lookups by result",
	}, []string{"result"}) // "hit" or "miss"

	// LazyShrinks counts shrink candidates produced by lazy domains by source.
	LazyShrinks = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "propcheck_lazy_shrink_candidates_total",
		Help: "Total shrink candidates offered by lazy domains by source",
	}, []string{"source"}) // "borrowed", "intrinsic" or "alternative"
)
