package propcheck

import (
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

// Weighted pairs an arbitrary with its relative selection weight.
type Weighted[T any] struct {
	Weight    int
	Arbitrary Arbitrary[T]
}

// WithWeight is a shorthand for building a Weighted choice.
func WithWeight[T any](weight int, a Arbitrary[T]) Weighted[T] {
	return Weighted[T]{Weight: weight, Arbitrary: a}
}

type frequencyArbitrary[T any] struct {
	choices []Weighted[T]
	err     error
}

// OneOf picks one of choices with equal probability.
func OneOf[T any](choices ...Arbitrary[T]) Arbitrary[T] {
	weighted := make([]Weighted[T], len(choices))
	for i, c := range choices {
		weighted[i] = Weighted[T]{Weight: 1, Arbitrary: c}
	}
	return Frequency(weighted...)
}

// Frequency picks one of choices with probability proportional to its
// weight. Choices with a weight of zero never contribute values.
//
// The exhaustive enumeration is the union of all choices and the edge cases
// are the deduplicated union of the choices' edge cases.
func Frequency[T any](choices ...Weighted[T]) Arbitrary[T] {
	var kept []Weighted[T]
	for _, c := range choices {
		if c.Weight < 0 {
			return frequencyArbitrary[T]{err: configErrorf("negative weight %d", c.Weight)}
		}
		if c.Weight > 0 {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return frequencyArbitrary[T]{err: configErrorf("no choice with a positive weight")}
	}
	return frequencyArbitrary[T]{choices: kept}
}

func (f frequencyArbitrary[T]) generator(genSize int, embedded bool) (random.Generator[T], error) {
	if f.err != nil {
		return nil, f.err
	}
	weighted := make([]random.Weighted[random.Generator[T]], len(f.choices))
	for i, c := range f.choices {
		var (
			gen random.Generator[T]
			err error
		)
		if embedded {
			gen, err = c.Arbitrary.GeneratorWithEmbeddedEdgeCases(genSize)
		} else {
			gen, err = c.Arbitrary.Generator(genSize)
		}
		if err != nil {
			return nil, err
		}
		weighted[i] = random.Weighted[random.Generator[T]]{Weight: c.Weight, Value: gen}
	}
	return random.Frequency(weighted), nil
}

func (f frequencyArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	return f.generator(genSize, false)
}

func (f frequencyArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	return f.generator(genSize, true)
}

func (f frequencyArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	if f.err != nil {
		return exhaustive.Generator[T]{}, f.err
	}
	var total int64
	parts := make([]exhaustive.Generator[T], len(f.choices))
	for i, c := range f.choices {
		gen, err := c.Arbitrary.Exhaustive(maxNumberOfSamples)
		if err != nil {
			return exhaustive.Generator[T]{}, err
		}
		sum, ok := exhaustive.Add(total, gen.MaxCount())
		if !ok {
			return exhaustive.Generator[T]{}, exhaustive.ErrTooLarge
		}
		if err := exhaustive.Check(sum, maxNumberOfSamples); err != nil {
			return exhaustive.Generator[T]{}, err
		}
		total = sum
		parts[i] = gen
	}
	return exhaustive.Concat(parts...), nil
}

func (f frequencyArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	if f.err != nil {
		return edgecase.None[T](), f.err
	}
	parts := make([]edgecase.EdgeCases[T], len(f.choices))
	for i, c := range f.choices {
		edges, err := c.Arbitrary.EdgeCases(maxEdgeCases)
		if err != nil {
			return edgecase.None[T](), err
		}
		parts[i] = edges
	}
	return edgecase.Dedupe(edgecase.Concat(maxEdgeCases, parts...)), nil
}

func (f frequencyArbitrary[T]) Memoizable() bool {
	if f.err != nil {
		return false
	}
	for _, c := range f.choices {
		if !c.Arbitrary.Memoizable() {
			return false
		}
	}
	return true
}
