package arbitraries

import (
	"math/rand"

	"golang.org/x/exp/slices"

	"propcheck"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

// Entry is one key and value of a generated map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// MapArbitrary generates maps. Keys are generated as a set first, then one
// value per key.
type MapArbitrary[K comparable, V any] struct {
	keys        propcheck.Arbitrary[K]
	values      propcheck.Arbitrary[V]
	sizing      sizing
	keyUnique   []shrink.FeatureExtractor[K]
	valueUnique []shrink.FeatureExtractor[V]
}

// Maps generates maps from keys to values.
func Maps[K comparable, V any](keys propcheck.Arbitrary[K], values propcheck.Arbitrary[V]) MapArbitrary[K, V] {
	return MapArbitrary[K, V]{
		keys:      keys,
		values:    values,
		sizing:    defaultSizing(),
		keyUnique: []shrink.FeatureExtractor[K]{shrink.Identity[K]()},
	}
}

func (m MapArbitrary[K, V]) OfMinSize(n int) MapArbitrary[K, V] {
	m.sizing = m.sizing.withMinSize(n)
	return m
}

func (m MapArbitrary[K, V]) OfMaxSize(n int) MapArbitrary[K, V] {
	m.sizing = m.sizing.withMaxSize(n)
	return m
}

func (m MapArbitrary[K, V]) OfSize(n int) MapArbitrary[K, V] {
	return m.OfMinSize(n).OfMaxSize(n)
}

func (m MapArbitrary[K, V]) WithSizeDistribution(dist random.SizeDistribution) MapArbitrary[K, V] {
	m.sizing.dist = dist
	return m
}

func (m MapArbitrary[K, V]) WithUniqueRetries(n int) MapArbitrary[K, V] {
	if n < 0 {
		m.sizing.err = configErrorf("negative unique retries %d", n)
	}
	m.sizing.uniqueRetries = n
	return m
}

// UniqueKeys adds feature extractors keys must be distinct under, on top of
// the keys themselves.
func (m MapArbitrary[K, V]) UniqueKeys(extractors ...shrink.FeatureExtractor[K]) MapArbitrary[K, V] {
	m.keyUnique = append(slices.Clone(m.keyUnique), extractors...)
	return m
}

// UniqueValues makes values distinct under each of the extractors, or distinct
// themselves when no extractor is given.
func (m MapArbitrary[K, V]) UniqueValues(extractors ...shrink.FeatureExtractor[V]) MapArbitrary[K, V] {
	if len(extractors) == 0 {
		extractors = []shrink.FeatureExtractor[V]{shrink.Identity[V]()}
	}
	m.valueUnique = append(slices.Clone(m.valueUnique), extractors...)
	return m
}

func (m MapArbitrary[K, V]) maxSize() (int, error) {
	maxSize, err := effectiveMaxSize(m.sizing, m.keys, m.keyUnique)
	if err != nil || len(m.valueUnique) == 0 {
		return maxSize, err
	}
	valueMax, err := effectiveMaxSize(m.sizing, m.values, m.valueUnique)
	if err != nil {
		return 0, err
	}
	return min(maxSize, valueMax), nil
}

func (m MapArbitrary[K, V]) Validate() error {
	_, err := m.maxSize()
	return err
}

// entryExtractors lifts key and value extractors to entries, so shrinking the
// entry slice keeps both unique.
func (m MapArbitrary[K, V]) entryExtractors() []shrink.FeatureExtractor[Entry[K, V]] {
	var out []shrink.FeatureExtractor[Entry[K, V]]
	for _, extract := range m.keyUnique {
		out = append(out, func(e Entry[K, V]) any { return extract(e.Key) })
	}
	for _, extract := range m.valueUnique {
		out = append(out, func(e Entry[K, V]) any { return extract(e.Value) })
	}
	return out
}

func toEntry[K comparable, V any](parts []any) Entry[K, V] {
	k, _ := parts[0].(K)
	v, _ := parts[1].(V)
	return Entry[K, V]{Key: k, Value: v}
}

func toMap[K comparable, V any](entries []Entry[K, V]) map[K]V {
	out := make(map[K]V, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out
}

func (m MapArbitrary[K, V]) generator(keys random.Generator[K], values random.Generator[V], genSize, maxSize int) random.Generator[map[K]V] {
	sz := m.sizing.random(genSize, maxSize)
	extractors := m.entryExtractors()
	return func(r *rand.Rand) (shrink.Shrinkable[map[K]V], error) {
		size := sz.ChooseSize(r)
		ks, err := random.UniqueElements(r, keys, size, sz.MaxRetries, m.keyUnique)
		if err != nil {
			return nil, asConfigurationError(err)
		}
		vs, err := random.UniqueElements(r, values, size, sz.MaxRetries, m.valueUnique)
		if err != nil {
			return nil, asConfigurationError(err)
		}
		entries := make([]shrink.Shrinkable[Entry[K, V]], size)
		for i := range entries {
			entries[i] = shrink.Combine([]shrink.Shrinkable[any]{shrink.Erase(ks[i]), shrink.Erase(vs[i])}, toEntry[K, V])
		}
		return shrink.Map(shrink.Container(entries, sz.MinSize, extractors), toMap[K, V]), nil
	}
}

func (m MapArbitrary[K, V]) Generator(genSize int) (random.Generator[map[K]V], error) {
	maxSize, err := m.maxSize()
	if err != nil {
		return nil, err
	}
	keys, err := m.keys.Generator(genSize)
	if err != nil {
		return nil, err
	}
	values, err := m.values.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return m.generator(keys, values, genSize, maxSize), nil
}

func (m MapArbitrary[K, V]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[map[K]V], error) {
	maxSize, err := m.maxSize()
	if err != nil {
		return nil, err
	}
	keys, err := m.keys.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	values, err := m.values.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	edges, err := m.EdgeCases(embeddedEdgeCases)
	if err != nil {
		return nil, err
	}
	return random.WithEdgeCases(m.generator(keys, values, genSize, maxSize), edges, embeddedEdgeCaseProbability), nil
}

// Exhaustive enumerates every key set, smallest first, and for each key set
// every assignment of values.
func (m MapArbitrary[K, V]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[map[K]V], error) {
	maxSize, err := m.maxSize()
	if err != nil {
		return exhaustive.Generator[map[K]V]{}, err
	}
	keys, err := m.keys.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[map[K]V]{}, err
	}
	values, err := m.values.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[map[K]V]{}, err
	}
	keys, err = distinct(keys, maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[map[K]V]{}, err
	}
	keySets, err := exhaustive.Combinations(keys, m.sizing.minSize, maxSize, maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[map[K]V]{}, err
	}
	keySets = exhaustive.Filter(keySets, func(ks []K) bool { return shrink.AreUnique(ks, m.keyUnique) })
	return exhaustive.FlatMap(keySets, func(ks []K) (exhaustive.Generator[map[K]V], error) {
		assignments, err := exhaustive.Lists(values, len(ks), len(ks), maxNumberOfSamples)
		if err != nil {
			return exhaustive.Generator[map[K]V]{}, err
		}
		if len(m.valueUnique) > 0 {
			assignments = exhaustive.Filter(assignments, func(vs []V) bool { return shrink.AreUnique(vs, m.valueUnique) })
		}
		return exhaustive.Map(assignments, func(vs []V) map[K]V {
			out := make(map[K]V, len(ks))
			for i, k := range ks {
				out[k] = vs[i]
			}
			return out
		}), nil
	}, maxNumberOfSamples)
}

// EdgeCases are the empty map and single entry maps combining key and value
// edge cases.
func (m MapArbitrary[K, V]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[map[K]V], error) {
	maxSize, err := m.maxSize()
	if err != nil {
		return edgecase.None[map[K]V](), err
	}
	var parts []edgecase.EdgeCases[map[K]V]
	minSize := m.sizing.minSize
	if minSize == 0 {
		parts = append(parts, edgecase.FromShrinkables(1, shrink.Unshrinkable(map[K]V{})))
	}
	if minSize <= 1 && maxSize >= 1 {
		keys, err := m.keys.EdgeCases(maxEdgeCases)
		if err != nil {
			return edgecase.None[map[K]V](), err
		}
		values, err := m.values.EdgeCases(maxEdgeCases)
		if err != nil {
			return edgecase.None[map[K]V](), err
		}
		entries := edgecase.Product(maxEdgeCases, []edgecase.EdgeCases[any]{
			edgecase.Map(keys, func(k K) any { return k }),
			edgecase.Map(values, func(v V) any { return v }),
		}, toEntry[K, V])
		extractors := m.entryExtractors()
		singletons := make([]edgecase.Supplier[map[K]V], 0, entries.Len())
		for _, e := range entries.Suppliers() {
			singletons = append(singletons, edgecase.Supplier[map[K]V]{Get: func() shrink.Shrinkable[map[K]V] {
				entry := []shrink.Shrinkable[Entry[K, V]]{e.Get()}
				return shrink.Map(shrink.Container(entry, minSize, extractors), toMap[K, V])
			}})
		}
		parts = append(parts, edgecase.FromSuppliers(len(singletons), singletons...))
	}
	return edgecase.Truncate(edgecase.Concat(maxEdgeCases, parts...), maxEdgeCases), nil
}

func (m MapArbitrary[K, V]) Memoizable() bool { return false }
