package propcheck

import (
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

type combineArbitrary[T any] struct {
	parts      []Arbitrary[any]
	combinator func([]any) T
}

// CombineAll draws one value from every part and combines them. Shrinking
// shrinks one part at a time, first part first, holding the others fixed.
// The exhaustive enumeration is the cartesian product of the parts.
func CombineAll[T any](parts []Arbitrary[any], combinator func([]any) T) Arbitrary[T] {
	return combineArbitrary[T]{parts: append([]Arbitrary[any](nil), parts...), combinator: combinator}
}

// Combine2 combines values of a and b through f.
func Combine2[A, B, R any](a Arbitrary[A], b Arbitrary[B], f func(A, B) R) Arbitrary[R] {
	return CombineAll([]Arbitrary[any]{Erase(a), Erase(b)}, func(v []any) R {
		return f(as[A](v[0]), as[B](v[1]))
	})
}

// Combine3 combines values of a, b and c through f.
func Combine3[A, B, C, R any](a Arbitrary[A], b Arbitrary[B], c Arbitrary[C], f func(A, B, C) R) Arbitrary[R] {
	return CombineAll([]Arbitrary[any]{Erase(a), Erase(b), Erase(c)}, func(v []any) R {
		return f(as[A](v[0]), as[B](v[1]), as[C](v[2]))
	})
}

// Combine4 combines values of a, b, c and d through f.
func Combine4[A, B, C, D, R any](a Arbitrary[A], b Arbitrary[B], c Arbitrary[C], d Arbitrary[D], f func(A, B, C, D) R) Arbitrary[R] {
	return CombineAll([]Arbitrary[any]{Erase(a), Erase(b), Erase(c), Erase(d)}, func(v []any) R {
		return f(as[A](v[0]), as[B](v[1]), as[C](v[2]), as[D](v[3]))
	})
}

// Pair is the value of Tuple2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Tuple2 combines a and b into pairs.
func Tuple2[A, B any](a Arbitrary[A], b Arbitrary[B]) Arbitrary[Pair[A, B]] {
	return Combine2(a, b, func(x A, y B) Pair[A, B] { return Pair[A, B]{First: x, Second: y} })
}

func (c combineArbitrary[T]) generators(genSize int, embedded bool) ([]random.Generator[any], error) {
	gens := make([]random.Generator[any], len(c.parts))
	for i, p := range c.parts {
		var (
			gen random.Generator[any]
			err error
		)
		if embedded {
			gen, err = p.GeneratorWithEmbeddedEdgeCases(genSize)
		} else {
			gen, err = p.Generator(genSize)
		}
		if err != nil {
			return nil, err
		}
		gens[i] = gen
	}
	return gens, nil
}

func (c combineArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	gens, err := c.generators(genSize, false)
	if err != nil {
		return nil, err
	}
	return random.Combine(gens, c.combinator), nil
}

func (c combineArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	gens, err := c.generators(genSize, true)
	if err != nil {
		return nil, err
	}
	return random.Combine(gens, c.combinator), nil
}

func (c combineArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	gens := make([]exhaustive.Generator[any], len(c.parts))
	for i, p := range c.parts {
		gen, err := p.Exhaustive(maxNumberOfSamples)
		if err != nil {
			return exhaustive.Generator[T]{}, err
		}
		gens[i] = gen
	}
	return exhaustive.Product(gens, c.combinator, maxNumberOfSamples)
}

func (c combineArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	parts := make([]edgecase.EdgeCases[any], len(c.parts))
	for i, p := range c.parts {
		edges, err := p.EdgeCases(maxEdgeCases)
		if err != nil {
			return edgecase.None[T](), err
		}
		parts[i] = edges
	}
	return edgecase.Product(maxEdgeCases, parts, c.combinator), nil
}

func (c combineArbitrary[T]) Memoizable() bool {
	for _, p := range c.parts {
		if !p.Memoizable() {
			return false
		}
	}
	return true
}
