// Package random derives size-parameterized stochastic samplers.
//
// A Generator is a pure function of its random source: calling it twice with
// sources seeded alike yields equal values and equal shrink sequences.
package random

import (
	"errors"
	"fmt"
	"math/rand"

	"propcheck/edgecase"
	"propcheck/shrink"
	"propcheck/telemetry"
)

var (
	// ErrTooManyMisses is returned when a filter rejects maxMisses samples in
	// a row. The domain is too narrow for the predicate.
	ErrTooManyMisses = errors.New("random: too many filter misses")

	// ErrUniqueExhausted is returned when a collection cannot reach its size
	// because elements keep colliding under a uniqueness constraint.
	ErrUniqueExhausted = errors.New("random: could not generate enough unique elements")

	// ErrCollectOverflow is returned when a collect predicate is not satisfied
	// within the element limit.
	ErrCollectOverflow = errors.New("random: collect did not terminate")

	// ErrNoChoices is returned when a weighted choice has no positive weight.
	ErrNoChoices = errors.New("random: no choice with positive weight")
)

// Generator produces one shrinkable sample from a random source.
type Generator[T any] func(r *rand.Rand) (shrink.Shrinkable[T], error)

// Next draws one sample.
func (g Generator[T]) Next(r *rand.Rand) (shrink.Shrinkable[T], error) {
	return g(r)
}

// Constant always produces value, which cannot be shrunk.
func Constant[T any](value T) Generator[T] {
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		return shrink.Unshrinkable(value), nil
	}
}

// Map transforms generated values and their shrink candidates through f.
func Map[T, U any](g Generator[T], f func(T) U) Generator[U] {
	return func(r *rand.Rand) (shrink.Shrinkable[U], error) {
		s, err := g(r)
		if err != nil {
			return nil, err
		}
		return shrink.Map(s, f), nil
	}
}

// FlatMap draws a value from g, derives a second generator from it and draws
// the result from that generator using a recorded seed, so the result can be
// regenerated when the first value shrinks.
func FlatMap[T, U any](g Generator[T], f func(T) (Generator[U], error)) Generator[U] {
	return func(r *rand.Rand) (shrink.Shrinkable[U], error) {
		outer, err := g(r)
		if err != nil {
			return nil, err
		}
		seed := r.Int63()
		regenerate := func(v T) (shrink.Shrinkable[U], error) {
			inner, err := f(v)
			if err != nil {
				return nil, err
			}
			return inner(Replay(seed))
		}
		inner, err := regenerate(outer.Value())
		if err != nil {
			return nil, err
		}
		return shrink.FlatMap(outer, inner, regenerate), nil
	}
}

// Filter retries g until pred accepts a value. After maxMisses rejections in
// one call it fails with ErrTooManyMisses.
func Filter[T any](g Generator[T], pred func(T) bool, maxMisses int) Generator[T] {
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		for misses := 0; misses < maxMisses; misses++ {
			s, err := g(r)
			if err != nil {
				return nil, err
			}
			if pred(s.Value()) {
				return shrink.Filter(s, pred), nil
			}
			telemetry.FilterMisses.Inc()
		}
		return nil, fmt.Errorf("%w: %d samples rejected", ErrTooManyMisses, maxMisses)
	}
}

// WithEdgeCases mixes edge cases into g. With the given probability a sample
// is an edge case picked by weight instead of a regular sample.
func WithEdgeCases[T any](g Generator[T], edges edgecase.EdgeCases[T], probability float64) Generator[T] {
	if edges.IsEmpty() || probability <= 0 {
		return g
	}
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		if r.Float64() < probability {
			return edges.Pick(r), nil
		}
		return g(r)
	}
}

// Choose picks one of values uniformly. Samples shrink towards earlier
// values.
func Choose[T any](values []T) Generator[T] {
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		if len(values) == 0 {
			return nil, ErrNoChoices
		}
		return shrink.Choice(values, r.Intn(len(values))), nil
	}
}

// Weighted pairs a value with its selection weight.
type Weighted[T any] struct {
	Weight int
	Value  T
}

// Frequency picks one of the generators with probability proportional to its
// weight and samples it.
func Frequency[T any](choices []Weighted[Generator[T]]) Generator[T] {
	total := 0
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		if total == 0 {
			return nil, ErrNoChoices
		}
		n := r.Intn(total)
		for _, c := range choices {
			if c.Weight <= 0 {
				continue
			}
			n -= c.Weight
			if n < 0 {
				return c.Value(r)
			}
		}
		return nil, ErrNoChoices
	}
}

// Combine samples every part in order and applies combinator.
func Combine[T any](parts []Generator[any], combinator func([]any) T) Generator[T] {
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		values := make([]shrink.Shrinkable[any], len(parts))
		for i, p := range parts {
			s, err := p(r)
			if err != nil {
				return nil, err
			}
			values[i] = s
		}
		return shrink.Combine(values, combinator), nil
	}
}

// Erase converts g to a generator of untyped values.
func Erase[T any](g Generator[T]) Generator[any] {
	return Map(g, func(v T) any { return v })
}

// Collect appends samples of element until until accepts the collected
// values. The result cannot be shrunk: removing or shrinking elements could
// break the termination condition.
func Collect[T any](element Generator[T], until func([]T) bool, maxElements int) Generator[[]T] {
	return func(r *rand.Rand) (shrink.Shrinkable[[]T], error) {
		collected := []T{}
		for !until(collected) {
			if len(collected) >= maxElements {
				return nil, fmt.Errorf("%w: %d elements collected", ErrCollectOverflow, len(collected))
			}
			s, err := element(r)
			if err != nil {
				return nil, err
			}
			collected = append(collected, s.Value())
		}
		return shrink.Unshrinkable(collected), nil
	}
}
