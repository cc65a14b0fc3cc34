package shrink

import "iter"

type combined[T any] struct {
	parts      []Shrinkable[any]
	combinator func([]any) T
}

// Combine creates a shrinkable from independently shrinkable parts.
//
// Its distance is the sum of the part distances. Shrinking holds every part
// but one fixed and shrinks that part, trying parts in order.
func Combine[T any](parts []Shrinkable[any], combinator func([]any) T) Shrinkable[T] {
	return &combined[T]{parts: parts, combinator: combinator}
}

func (c *combined[T]) Value() T {
	values := make([]any, len(c.parts))
	for i, p := range c.parts {
		values[i] = p.Value()
	}
	return c.combinator(values)
}

func (c *combined[T]) Distance() Distance {
	distances := make([]Distance, len(c.parts))
	for i, p := range c.parts {
		distances[i] = p.Distance()
	}
	return Sum(distances...)
}

func (c *combined[T]) Shrink() iter.Seq[Shrinkable[T]] {
	return Bounded(c.Distance(), func(yield func(Shrinkable[T]) bool) {
		for i, part := range c.parts {
			for candidate := range part.Shrink() {
				replaced := make([]Shrinkable[any], len(c.parts))
				copy(replaced, c.parts)
				replaced[i] = candidate
				if !yield(Combine(replaced, c.combinator)) {
					return
				}
			}
		}
	})
}

type flatMapped[T, U any] struct {
	outer      Shrinkable[T]
	inner      Shrinkable[U]
	regenerate func(T) (Shrinkable[U], error)
}

// FlatMap creates a shrinkable whose value was generated from a value
// depending on outer.
//
// regenerate must deterministically recreate the inner shrinkable for a
// given outer value, usually by reusing a recorded seed. Outer candidates
// come first; candidates whose regeneration fails are skipped. Then the inner
// value is shrunk with the outer value held fixed.
func FlatMap[T, U any](outer Shrinkable[T], inner Shrinkable[U], regenerate func(T) (Shrinkable[U], error)) Shrinkable[U] {
	return &flatMapped[T, U]{outer: outer, inner: inner, regenerate: regenerate}
}

func (f *flatMapped[T, U]) Value() U {
	return f.inner.Value()
}

func (f *flatMapped[T, U]) Distance() Distance {
	return f.outer.Distance().Append(f.inner.Distance())
}

func (f *flatMapped[T, U]) Shrink() iter.Seq[Shrinkable[U]] {
	return Bounded(f.Distance(), func(yield func(Shrinkable[U]) bool) {
		if f.regenerate != nil {
			for candidate := range f.outer.Shrink() {
				inner, err := f.regenerate(candidate.Value())
				if err != nil {
					continue
				}
				if !yield(FlatMap(candidate, inner, f.regenerate)) {
					return
				}
			}
		}
		for candidate := range f.inner.Shrink() {
			if !yield(FlatMap(f.outer, candidate, f.regenerate)) {
				return
			}
		}
	})
}
