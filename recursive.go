package propcheck

import (
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

// MaxEdgeCaseDepth is the deepest recursion for which Recursive computes edge
// cases.
const MaxEdgeCaseDepth = 100

type recursiveArbitrary[T any] struct {
	base               Arbitrary[T]
	step               func(Arbitrary[T]) Arbitrary[T]
	minDepth, maxDepth int
	err                error
}

// Recursive applies step to base a random number of times between minDepth
// and maxDepth. Samples shrink towards minDepth.
//
// The exhaustive enumeration is built one depth at a time and has no edge
// cases once maxDepth exceeds MaxEdgeCaseDepth.
func Recursive[T any](base Arbitrary[T], step func(Arbitrary[T]) Arbitrary[T], minDepth, maxDepth int) Arbitrary[T] {
	r := recursiveArbitrary[T]{base: base, step: step, minDepth: minDepth, maxDepth: maxDepth}
	if minDepth < 0 || maxDepth < minDepth {
		r.err = configErrorf("recursion depth [%d, %d] is empty", minDepth, maxDepth)
	}
	return r
}

func (r recursiveArbitrary[T]) unrolled(depth int) Arbitrary[T] {
	a := r.base
	for i := 0; i < depth; i++ {
		a = r.step(a)
	}
	return a
}

func (r recursiveArbitrary[T]) depths() []int {
	depths := make([]int, 0, r.maxDepth-r.minDepth+1)
	for d := r.minDepth; d <= r.maxDepth; d++ {
		depths = append(depths, d)
	}
	return depths
}

func (r recursiveArbitrary[T]) generator(genSize int, embedded bool) (random.Generator[T], error) {
	if r.err != nil {
		return nil, r.err
	}
	return random.FlatMap(random.Choose(r.depths()), func(depth int) (random.Generator[T], error) {
		if embedded {
			return r.unrolled(depth).GeneratorWithEmbeddedEdgeCases(genSize)
		}
		return r.unrolled(depth).Generator(genSize)
	}), nil
}

func (r recursiveArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	return r.generator(genSize, false)
}

func (r recursiveArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	return r.generator(genSize, true)
}

func (r recursiveArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	if r.err != nil {
		return exhaustive.Generator[T]{}, r.err
	}
	current, err := r.base.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[T]{}, err
	}
	var (
		levels []exhaustive.Generator[T]
		total  int64
	)
	for depth := 0; depth <= r.maxDepth; depth++ {
		if depth > 0 {
			current, err = r.step(enumerated[T]{gen: current}).Exhaustive(maxNumberOfSamples)
			if err != nil {
				return exhaustive.Generator[T]{}, err
			}
		}
		if depth < r.minDepth {
			continue
		}
		sum, ok := exhaustive.Add(total, current.MaxCount())
		if !ok {
			return exhaustive.Generator[T]{}, exhaustive.ErrTooLarge
		}
		if err := exhaustive.Check(sum, maxNumberOfSamples); err != nil {
			return exhaustive.Generator[T]{}, err
		}
		total = sum
		levels = append(levels, current)
	}
	return exhaustive.Concat(levels...), nil
}

func (r recursiveArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	if r.err != nil {
		return edgecase.None[T](), r.err
	}
	if r.maxDepth > MaxEdgeCaseDepth {
		return edgecase.None[T](), nil
	}
	return r.unrolled(r.minDepth).EdgeCases(maxEdgeCases)
}

func (r recursiveArbitrary[T]) Memoizable() bool { return false }

// enumerated exposes an already computed enumeration as an arbitrary, so one
// recursion step can be enumerated without expanding the levels below it.
type enumerated[T any] struct {
	gen exhaustive.Generator[T]
}

func (e enumerated[T]) Generator(genSize int) (random.Generator[T], error) {
	values := e.gen.Values()
	if len(values) == 0 {
		return nil, configErrorf("empty enumeration")
	}
	return random.Choose(values), nil
}

func (e enumerated[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	return e.Generator(genSize)
}

func (e enumerated[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	if err := exhaustive.Check(e.gen.MaxCount(), maxNumberOfSamples); err != nil {
		return exhaustive.Generator[T]{}, err
	}
	return e.gen, nil
}

func (e enumerated[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	return edgecase.None[T](), nil
}

func (e enumerated[T]) Memoizable() bool { return false }
