package arbitraries

import (
	"errors"

	"propcheck"
	"propcheck/config"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

// sizing holds the size constraints every collection builder shares.
type sizing struct {
	minSize       int
	maxSize       int
	maxSet        bool
	dist          random.SizeDistribution
	uniqueRetries int
	err           error
}

func defaultSizing() sizing {
	return sizing{uniqueRetries: config.DefaultUniqueRetries}
}

func (s sizing) withMinSize(n int) sizing {
	if n < 0 {
		s.err = configErrorf("negative minimum size %d", n)
	}
	s.minSize = n
	return s
}

func (s sizing) withMaxSize(n int) sizing {
	if n < 0 {
		s.err = configErrorf("negative maximum size %d", n)
	}
	s.maxSize, s.maxSet = n, true
	return s
}

// maxOrDefault is the configured maximum, or DefaultMaxCollectionSize
// raised to twice the minimum when no maximum is set.
func (s sizing) maxOrDefault() int {
	if s.maxSet {
		return s.maxSize
	}
	return max(config.DefaultMaxCollectionSize, 2*s.minSize)
}

// effectiveMaxSize caps the maximum size at the number of distinct features
// of the element domain when elements must be unique under extractors. Only
// domains with at most maxSize values are enumerated; a larger domain can
// always fill maxSize distinct slots or fails while sampling.
func effectiveMaxSize[E any](s sizing, element propcheck.Arbitrary[E], extractors []shrink.FeatureExtractor[E]) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	maxSize := s.maxOrDefault()
	if maxSize < s.minSize {
		return 0, configErrorf("maximum size %d below minimum size %d", maxSize, s.minSize)
	}
	if len(extractors) == 0 {
		return maxSize, nil
	}
	gen, err := element.Exhaustive(int64(maxSize))
	switch {
	case err == nil:
		maxSize = min(maxSize, distinctFeatures(gen.Values(), extractors))
	case !errors.Is(err, exhaustive.ErrInfeasible):
		return 0, err
	}
	if maxSize < s.minSize {
		return 0, configErrorf("minimum size %d above the %d distinct elements available", s.minSize, maxSize)
	}
	return maxSize, nil
}

// distinctFeatures is the smallest number of distinct features values have
// under any of the extractors.
func distinctFeatures[E any](values []E, extractors []shrink.FeatureExtractor[E]) int {
	fewest := len(values)
	for _, extract := range extractors {
		seen := make(map[any]struct{}, len(values))
		for _, v := range values {
			seen[extract(v)] = struct{}{}
		}
		fewest = min(fewest, len(seen))
	}
	return fewest
}

// distinct enumerates the values of g without repetitions, keeping the first
// occurrence of each.
func distinct[E comparable](g exhaustive.Generator[E], maxNumberOfSamples int64) (exhaustive.Generator[E], error) {
	var values []E
	seen := make(map[E]struct{})
	for v := range g.All() {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return exhaustive.Choose(values, maxNumberOfSamples)
}

func (s sizing) random(genSize, maxSize int) random.Sizing {
	return random.Sizing{
		MinSize:      s.minSize,
		MaxSize:      maxSize,
		GenSize:      genSize,
		Distribution: s.dist,
		MaxRetries:   s.uniqueRetries,
	}
}
