package arbitraries

import (
	"propcheck"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

// SetArbitrary generates sets of distinct elements.
type SetArbitrary[E comparable] struct {
	list ListArbitrary[E]
}

// Sets generates sets of element. The number of elements is capped at the
// size of the element domain when it can be enumerated.
func Sets[E comparable](element propcheck.Arbitrary[E]) SetArbitrary[E] {
	return SetArbitrary[E]{list: Lists(element).UniqueElements()}
}

func (s SetArbitrary[E]) OfMinSize(n int) SetArbitrary[E] {
	return SetArbitrary[E]{list: s.list.OfMinSize(n)}
}

func (s SetArbitrary[E]) OfMaxSize(n int) SetArbitrary[E] {
	return SetArbitrary[E]{list: s.list.OfMaxSize(n)}
}

func (s SetArbitrary[E]) OfSize(n int) SetArbitrary[E] {
	return SetArbitrary[E]{list: s.list.OfSize(n)}
}

func (s SetArbitrary[E]) WithSizeDistribution(dist random.SizeDistribution) SetArbitrary[E] {
	return SetArbitrary[E]{list: s.list.WithSizeDistribution(dist)}
}

func (s SetArbitrary[E]) WithUniqueRetries(n int) SetArbitrary[E] {
	return SetArbitrary[E]{list: s.list.WithUniqueRetries(n)}
}

// UniqueElements adds feature extractors elements must also be distinct
// under.
func (s SetArbitrary[E]) UniqueElements(extractors ...shrink.FeatureExtractor[E]) SetArbitrary[E] {
	if len(extractors) == 0 {
		return s
	}
	return SetArbitrary[E]{list: s.list.UniqueElements(extractors...)}
}

func (s SetArbitrary[E]) Validate() error {
	return s.list.Validate()
}

func toSet[E comparable](values []E) map[E]struct{} {
	set := make(map[E]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s SetArbitrary[E]) Generator(genSize int) (random.Generator[map[E]struct{}], error) {
	gen, err := s.list.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return random.Map(gen, toSet[E]), nil
}

func (s SetArbitrary[E]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[map[E]struct{}], error) {
	gen, err := s.list.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	return random.Map(gen, toSet[E]), nil
}

// Exhaustive enumerates every combination of distinct elements, smallest
// sets first. Repeated values of the element enumeration are enumerated once.
func (s SetArbitrary[E]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[map[E]struct{}], error) {
	maxSize, err := s.list.maxSize()
	if err != nil {
		return exhaustive.Generator[map[E]struct{}]{}, err
	}
	element, err := s.list.element.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[map[E]struct{}]{}, err
	}
	element, err = distinct(element, maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[map[E]struct{}]{}, err
	}
	combinations, err := exhaustive.Combinations(element, s.list.sizing.minSize, maxSize, maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[map[E]struct{}]{}, err
	}
	combinations = exhaustive.Filter(combinations, func(values []E) bool {
		return shrink.AreUnique(values, s.list.unique)
	})
	return exhaustive.Map(combinations, toSet[E]), nil
}

func (s SetArbitrary[E]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[map[E]struct{}], error) {
	edges, err := s.list.EdgeCases(maxEdgeCases)
	if err != nil {
		return edgecase.None[map[E]struct{}](), err
	}
	return edgecase.Map(edges, toSet[E]), nil
}

func (s SetArbitrary[E]) Memoizable() bool { return false }
