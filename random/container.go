package random

import (
	"fmt"
	"math"
	"math/rand"

	"propcheck/shrink"
	"propcheck/telemetry"
)

// SizeDistribution picks a collection size in [min, max].
type SizeDistribution interface {
	Size(r *rand.Rand, min, max, genSize int) int
}

// BiasedSize prefers small collections. Most samples fall in a window of
// max(10, sqrt(genSize)) elements above min, skewed towards min; the rest are
// uniform over the whole range.
type BiasedSize struct{}

func (BiasedSize) Size(r *rand.Rand, min, max, genSize int) int {
	if max <= min {
		return min
	}
	window := int(math.Sqrt(float64(genSize)))
	if window < 10 {
		window = 10
	}
	cutoff := max
	if min+window < max {
		cutoff = min + window
	}
	if r.Float64() < 0.9 {
		f := r.Float64()
		return min + int(f*f*float64(cutoff-min+1))
	}
	return min + r.Intn(max-min+1)
}

// UniformSize picks every size in the range with equal probability.
type UniformSize struct{}

func (UniformSize) Size(r *rand.Rand, min, max, genSize int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Sizing holds the size constraints of a generated collection.
type Sizing struct {
	MinSize      int
	MaxSize      int
	GenSize      int
	Distribution SizeDistribution
	// MaxRetries bounds the resampling of one colliding element.
	MaxRetries int
}

// ChooseSize samples a size in [MinSize, MaxSize].
func (s Sizing) ChooseSize(r *rand.Rand) int {
	dist := s.Distribution
	if dist == nil {
		dist = BiasedSize{}
	}
	return dist.Size(r, s.MinSize, s.MaxSize, s.GenSize)
}

// UniqueElements samples n elements. When extractors are given, an element
// colliding with an accepted one is resampled up to maxRetries times before
// giving up with ErrUniqueExhausted.
func UniqueElements[E any](r *rand.Rand, element Generator[E], n, maxRetries int, extractors []shrink.FeatureExtractor[E]) ([]shrink.Shrinkable[E], error) {
	elements := make([]shrink.Shrinkable[E], 0, n)
	values := make([]E, 0, n)
	for len(elements) < n {
		accepted := false
		for attempt := 0; attempt <= maxRetries; attempt++ {
			s, err := element(r)
			if err != nil {
				return nil, err
			}
			if shrink.Collides(values, -1, s.Value(), extractors) {
				telemetry.UniqueRetries.Inc()
				continue
			}
			elements = append(elements, s)
			values = append(values, s.Value())
			accepted = true
			break
		}
		if !accepted {
			return nil, fmt.Errorf("%w: %d of %d elements after %d retries", ErrUniqueExhausted, len(elements), n, maxRetries)
		}
	}
	return elements, nil
}

// Container generates slices of element sized by sizing. The resulting
// shrinkable never drops below MinSize and keeps the elements unique under
// extractors.
func Container[E any](element Generator[E], sizing Sizing, extractors []shrink.FeatureExtractor[E]) Generator[[]E] {
	return func(r *rand.Rand) (shrink.Shrinkable[[]E], error) {
		size := sizing.ChooseSize(r)
		elements, err := UniqueElements(r, element, size, sizing.MaxRetries, extractors)
		if err != nil {
			return nil, err
		}
		return shrink.Container(elements, sizing.MinSize, extractors), nil
	}
}
