// Package propcheck describes domains of values for property based testing.
//
// An Arbitrary is an immutable description of a domain. From it a test
// runner derives a random generator for a size hint, an exhaustive
// enumeration when the domain is small enough, and a budgeted list of edge
// cases. Every produced value is a shrink.Shrinkable the runner can walk to
// minimize a counterexample.
//
// Arbitraries are combined by wrapping: Map, FlatMap, Filter, Combine2,
// OneOf and friends each return a new Arbitrary around their operands.
package propcheck

import (
	"math/rand"

	"propcheck/config"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

// Arbitrary describes a domain of values of type T.
//
// Implementations must be safe for concurrent use: several workers may derive
// generators from the same Arbitrary at once.
type Arbitrary[T any] interface {
	// Generator derives a random generator. genSize biases magnitudes and
	// lengths, larger sizes produce larger values.
	Generator(genSize int) (random.Generator[T], error)

	// GeneratorWithEmbeddedEdgeCases is like Generator but mixes the edge
	// cases of every part of the domain into its samples.
	GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error)

	// Exhaustive derives an enumeration of the whole domain. It fails with an
	// error wrapping exhaustive.ErrInfeasible when the domain has more than
	// maxNumberOfSamples values or cannot be enumerated at all.
	Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error)

	// EdgeCases returns at most maxEdgeCases boundary values.
	EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error)

	// Memoizable reports whether derived generators only depend on the
	// derivation parameters, so a caller may cache them.
	Memoizable() bool
}

// Fingerprinter is implemented by memoizable arbitraries that can describe
// their configuration as a cache key.
type Fingerprinter interface {
	Fingerprint() string
}

// embedEdgeCases mixes the edge cases of a into its plain generator.
func embedEdgeCases[T any](a Arbitrary[T], genSize int) (random.Generator[T], error) {
	gen, err := a.Generator(genSize)
	if err != nil {
		return nil, err
	}
	edges, err := a.EdgeCases(config.DefaultMaxEdgeCases)
	if err != nil {
		return nil, err
	}
	return random.WithEdgeCases(gen, edges, config.DefaultEdgeCaseProbability), nil
}

// Sample draws one value of a using seed. It is meant for examples and
// debugging, tests should drive a Session instead.
func Sample[T any](a Arbitrary[T], genSize int, seed int64) (T, error) {
	var zero T
	gen, err := a.Generator(genSize)
	if err != nil {
		return zero, err
	}
	s, err := gen(rand.New(rand.NewSource(seed)))
	if err != nil {
		return zero, err
	}
	return s.Value(), nil
}

// Erase converts a to an arbitrary of untyped values, as used by CombineAll.
func Erase[T any](a Arbitrary[T]) Arbitrary[any] {
	return Map(a, func(v T) any { return v })
}

func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
