package arbitraries

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/slices"

	"propcheck"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

// ListArbitrary generates slices of an element domain.
type ListArbitrary[E any] struct {
	element propcheck.Arbitrary[E]
	sizing  sizing
	unique  []shrink.FeatureExtractor[E]
}

// Lists generates slices of element with up to DefaultMaxCollectionSize
// elements, preferring short slices.
func Lists[E any](element propcheck.Arbitrary[E]) ListArbitrary[E] {
	return ListArbitrary[E]{element: element, sizing: defaultSizing()}
}

func (l ListArbitrary[E]) OfMinSize(n int) ListArbitrary[E] {
	l.sizing = l.sizing.withMinSize(n)
	return l
}

func (l ListArbitrary[E]) OfMaxSize(n int) ListArbitrary[E] {
	l.sizing = l.sizing.withMaxSize(n)
	return l
}

// OfSize fixes the length of generated slices.
func (l ListArbitrary[E]) OfSize(n int) ListArbitrary[E] {
	return l.OfMinSize(n).OfMaxSize(n)
}

// WithSizeDistribution replaces the default distribution biased towards
// short slices.
func (l ListArbitrary[E]) WithSizeDistribution(dist random.SizeDistribution) ListArbitrary[E] {
	l.sizing.dist = dist
	return l
}

// WithUniqueRetries bounds how often one colliding element is resampled
// before generation fails.
func (l ListArbitrary[E]) WithUniqueRetries(n int) ListArbitrary[E] {
	if n < 0 {
		l.sizing.err = configErrorf("negative unique retries %d", n)
	}
	l.sizing.uniqueRetries = n
	return l
}

// UniqueElements makes every element of a slice distinct under each of the
// extractors. Without extractors the elements themselves must be distinct,
// which requires a comparable element type.
func (l ListArbitrary[E]) UniqueElements(extractors ...shrink.FeatureExtractor[E]) ListArbitrary[E] {
	if len(extractors) == 0 {
		extractors = []shrink.FeatureExtractor[E]{shrink.Identity[E]()}
	}
	unique := slices.Clone(l.unique)
	l.unique = append(unique, extractors...)
	return l
}

func (l ListArbitrary[E]) maxSize() (int, error) {
	return effectiveMaxSize(l.sizing, l.element, l.unique)
}

// Validate reports the first configuration mistake of the builder.
func (l ListArbitrary[E]) Validate() error {
	_, err := l.maxSize()
	return err
}

func (l ListArbitrary[E]) container(element random.Generator[E], genSize, maxSize int) random.Generator[[]E] {
	gen := random.Container(element, l.sizing.random(genSize, maxSize), l.unique)
	return func(r *rand.Rand) (shrink.Shrinkable[[]E], error) {
		s, err := gen(r)
		return s, asConfigurationError(err)
	}
}

func (l ListArbitrary[E]) Generator(genSize int) (random.Generator[[]E], error) {
	maxSize, err := l.maxSize()
	if err != nil {
		return nil, err
	}
	element, err := l.element.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return l.container(element, genSize, maxSize), nil
}

func (l ListArbitrary[E]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[[]E], error) {
	maxSize, err := l.maxSize()
	if err != nil {
		return nil, err
	}
	element, err := l.element.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	edges, err := l.EdgeCases(embeddedEdgeCases)
	if err != nil {
		return nil, err
	}
	return random.WithEdgeCases(l.container(element, genSize, maxSize), edges, embeddedEdgeCaseProbability), nil
}

func (l ListArbitrary[E]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[[]E], error) {
	maxSize, err := l.maxSize()
	if err != nil {
		return exhaustive.Generator[[]E]{}, err
	}
	element, err := l.element.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[[]E]{}, err
	}
	lists, err := exhaustive.Lists(element, l.sizing.minSize, maxSize, maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[[]E]{}, err
	}
	if len(l.unique) == 0 {
		return lists, nil
	}
	return exhaustive.Filter(lists, func(values []E) bool {
		return shrink.AreUnique(values, l.unique)
	}), nil
}

// EdgeCases are the empty slice, a singleton for every element edge case and,
// for a fixed size above one, the slice repeating one element edge case.
func (l ListArbitrary[E]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[[]E], error) {
	maxSize, err := l.maxSize()
	if err != nil {
		return edgecase.None[[]E](), err
	}
	elements, err := l.element.EdgeCases(maxEdgeCases)
	if err != nil {
		return edgecase.None[[]E](), err
	}
	minSize := l.sizing.minSize
	var suppliers []edgecase.Supplier[[]E]
	if minSize == 0 {
		suppliers = append(suppliers, edgecase.Supplier[[]E]{Get: func() shrink.Shrinkable[[]E] {
			return shrink.Container[E](nil, 0, l.unique)
		}})
	}
	if minSize <= 1 && maxSize >= 1 {
		for _, e := range elements.Suppliers() {
			suppliers = append(suppliers, edgecase.Supplier[[]E]{Get: func() shrink.Shrinkable[[]E] {
				return shrink.Container([]shrink.Shrinkable[E]{e.Get()}, minSize, l.unique)
			}})
		}
	}
	if minSize == maxSize && minSize > 1 && len(l.unique) == 0 {
		for _, e := range elements.Suppliers() {
			suppliers = append(suppliers, edgecase.Supplier[[]E]{Get: func() shrink.Shrinkable[[]E] {
				replicas := make([]shrink.Shrinkable[E], minSize)
				for i := range replicas {
					replicas[i] = e.Get()
				}
				return shrink.Container(replicas, minSize, l.unique)
			}})
		}
	}
	return edgecase.FromSuppliers(maxEdgeCases, suppliers...), nil
}

// Memoizable holds when the element can be fingerprinted and no feature
// extractor is involved, since functions cannot be part of a cache key.
func (l ListArbitrary[E]) Memoizable() bool {
	_, ok := l.element.(propcheck.Fingerprinter)
	return ok && l.element.Memoizable() && len(l.unique) == 0
}

func (l ListArbitrary[E]) Fingerprint() string {
	f, ok := l.element.(propcheck.Fingerprinter)
	if !ok {
		return ""
	}
	return fmt.Sprintf("list[%d,%d,%v] dist=%T retries=%d of %s",
		l.sizing.minSize, l.sizing.maxSize, l.sizing.maxSet, l.sizing.dist, l.sizing.uniqueRetries, f.Fingerprint())
}
