package shrink

import (
	"iter"
	"sync"
)

// Shrinkable is a generated value together with its distance and a lazy
// sequence of simpler candidates.
//
// Every candidate yielded by Shrink has a distance that does not exceed the
// distance of its parent. An empty sequence marks a local minimum. Shrink may
// be called any number of times and every call restarts the sequence.
type Shrinkable[T any] interface {
	Value() T
	Distance() Distance
	Shrink() iter.Seq[Shrinkable[T]]
}

type basic[T any] struct {
	value      T
	distance   Distance
	candidates func() iter.Seq[Shrinkable[T]]
}

// New creates a shrinkable from a value, its distance and a candidate
// producer. A nil producer makes the value terminal.
func New[T any](value T, distance Distance, candidates func() iter.Seq[Shrinkable[T]]) Shrinkable[T] {
	return &basic[T]{
		value:      value,
		distance:   distance,
		candidates: candidates,
	}
}

// Unshrinkable wraps a value that cannot be simplified.
func Unshrinkable[T any](value T) Shrinkable[T] {
	return New(value, Zero(), nil)
}

func (b *basic[T]) Value() T {
	return b.value
}

func (b *basic[T]) Distance() Distance {
	return b.distance
}

func (b *basic[T]) Shrink() iter.Seq[Shrinkable[T]] {
	if b.candidates == nil {
		return Empty[T]()
	}
	return Bounded(b.distance, b.candidates())
}

// Empty is the shrink sequence of a terminal value.
func Empty[T any]() iter.Seq[Shrinkable[T]] {
	return func(yield func(Shrinkable[T]) bool) {}
}

// Bounded drops every candidate whose distance exceeds parent.
func Bounded[T any](parent Distance, candidates iter.Seq[Shrinkable[T]]) iter.Seq[Shrinkable[T]] {
	return func(yield func(Shrinkable[T]) bool) {
		for c := range candidates {
			if !c.Distance().LessOrEqual(parent) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

type mapped[T, U any] struct {
	source Shrinkable[T]
	f      func(T) U
}

// Map transforms the value and every shrink candidate through f. The
// distance is preserved.
func Map[T, U any](s Shrinkable[T], f func(T) U) Shrinkable[U] {
	return &mapped[T, U]{source: s, f: f}
}

func (m *mapped[T, U]) Value() U {
	return m.f(m.source.Value())
}

func (m *mapped[T, U]) Distance() Distance {
	return m.source.Distance()
}

func (m *mapped[T, U]) Shrink() iter.Seq[Shrinkable[U]] {
	return func(yield func(Shrinkable[U]) bool) {
		for c := range m.source.Shrink() {
			if !yield(Map(c, m.f)) {
				return
			}
		}
	}
}

type filtered[T any] struct {
	source Shrinkable[T]
	pred   func(T) bool
}

// Filter restricts the shrink sequence of s to candidates satisfying pred.
// Rejected candidates are skipped, never surfaced.
func Filter[T any](s Shrinkable[T], pred func(T) bool) Shrinkable[T] {
	return &filtered[T]{source: s, pred: pred}
}

func (f *filtered[T]) Value() T {
	return f.source.Value()
}

func (f *filtered[T]) Distance() Distance {
	return f.source.Distance()
}

func (f *filtered[T]) Shrink() iter.Seq[Shrinkable[T]] {
	return func(yield func(Shrinkable[T]) bool) {
		for c := range f.source.Shrink() {
			if !f.pred(c.Value()) {
				continue
			}
			if !yield(Filter(c, f.pred)) {
				return
			}
		}
	}
}

type memoized[T any] struct {
	source Shrinkable[T]
	once   sync.Once
	value  T
}

// Memoize computes the value of s once and returns it on every later call.
// Shrink candidates are memoized too.
func Memoize[T any](s Shrinkable[T]) Shrinkable[T] {
	if m, ok := s.(*memoized[T]); ok {
		return m
	}
	return &memoized[T]{source: s}
}

func (m *memoized[T]) Value() T {
	m.once.Do(func() { m.value = m.source.Value() })
	return m.value
}

func (m *memoized[T]) Distance() Distance {
	return m.source.Distance()
}

func (m *memoized[T]) Shrink() iter.Seq[Shrinkable[T]] {
	return func(yield func(Shrinkable[T]) bool) {
		for c := range m.source.Shrink() {
			if !yield(Memoize(c)) {
				return
			}
		}
	}
}

// Erase converts a shrinkable to one producing untyped values.
func Erase[T any](s Shrinkable[T]) Shrinkable[any] {
	return Map(s, func(v T) any { return v })
}

// Values collects the values of a shrink sequence. Intended for inspection
// and tests; shrink sequences can be long.
func Values[T any](candidates iter.Seq[Shrinkable[T]]) []T {
	var out []T
	for c := range candidates {
		out = append(out, c.Value())
	}
	return out
}
