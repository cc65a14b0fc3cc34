package propcheck

import (
	"fmt"

	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

type justArbitrary[T any] struct {
	value T
}

// Just is the domain holding only value.
func Just[T any](value T) Arbitrary[T] {
	return justArbitrary[T]{value: value}
}

func (j justArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	return random.Constant(j.value), nil
}

func (j justArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	return j.Generator(genSize)
}

func (j justArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	return exhaustive.Choose([]T{j.value}, maxNumberOfSamples)
}

func (j justArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	return edgecase.None[T](), nil
}

func (j justArbitrary[T]) Memoizable() bool { return false }

type ofArbitrary[T any] struct {
	values []T
	err    error
}

// Of picks one of values. Samples shrink towards the values listed first,
// and the first and last values are edge cases.
func Of[T any](values ...T) Arbitrary[T] {
	if len(values) == 0 {
		return ofArbitrary[T]{err: configErrorf("Of needs at least one value")}
	}
	return ofArbitrary[T]{values: append([]T(nil), values...)}
}

func (o ofArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	if o.err != nil {
		return nil, o.err
	}
	return random.Choose(o.values), nil
}

func (o ofArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	return embedEdgeCases[T](o, genSize)
}

func (o ofArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	if o.err != nil {
		return exhaustive.Generator[T]{}, o.err
	}
	return exhaustive.Choose(o.values, maxNumberOfSamples)
}

func (o ofArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	if o.err != nil {
		return edgecase.None[T](), o.err
	}
	first := shrink.Choice(o.values, 0)
	if len(o.values) == 1 {
		return edgecase.FromShrinkables(maxEdgeCases, first), nil
	}
	last := shrink.Choice(o.values, len(o.values)-1)
	return edgecase.FromShrinkables(maxEdgeCases, first, last), nil
}

func (o ofArbitrary[T]) Memoizable() bool { return true }

func (o ofArbitrary[T]) Fingerprint() string {
	return fmt.Sprintf("of%v", o.values)
}
