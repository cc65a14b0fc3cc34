package arbitraries

import (
	"golang.org/x/exp/constraints"

	"propcheck/config"
)

// Range is a numeric range with optional exclusive bounds and shrink target.
type Range[V constraints.Integer | constraints.Float] struct {
	Min, Max                 V
	MinExcluded, MaxExcluded bool
	// Target overrides the default shrink target when set.
	Target *V
}

// Closed is the inclusive range [min, max].
func Closed[V constraints.Integer | constraints.Float](min, max V) Range[V] {
	return Range[V]{Min: min, Max: max}
}

// Edge cases mixed into GeneratorWithEmbeddedEdgeCases.
const (
	embeddedEdgeCases           = config.DefaultMaxEdgeCases
	embeddedEdgeCaseProbability = config.DefaultEdgeCaseProbability
)
