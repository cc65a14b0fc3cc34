package arbitraries

import (
	"iter"

	"propcheck"
)

// Streams generates sequences over the slices list generates. Every use of a
// generated value restarts the sequence.
func Streams[E any](list ListArbitrary[E]) propcheck.Arbitrary[iter.Seq[E]] {
	return propcheck.Map[[]E](list, func(values []E) iter.Seq[E] {
		return func(yield func(E) bool) {
			for _, v := range values {
				if !yield(v) {
					return
				}
			}
		}
	})
}

// Iterators generates pull iterators over the slices list generates. The
// iterator reports false once the elements are exhausted.
func Iterators[E any](list ListArbitrary[E]) propcheck.Arbitrary[func() (E, bool)] {
	return propcheck.Map[[]E](list, func(values []E) func() (E, bool) {
		next := 0
		return func() (E, bool) {
			if next >= len(values) {
				var zero E
				return zero, false
			}
			next++
			return values[next-1], true
		}
	})
}
