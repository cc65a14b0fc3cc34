package propcheck

import (
	"fmt"
	"math/rand"

	"propcheck/config"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

type mapArbitrary[T, U any] struct {
	inner Arbitrary[T]
	f     func(T) U
}

// Map transforms every value of a through f. Shrinking happens on the
// original values, so f never has to be inverted.
func Map[T, U any](a Arbitrary[T], f func(T) U) Arbitrary[U] {
	return mapArbitrary[T, U]{inner: a, f: f}
}

func (m mapArbitrary[T, U]) Generator(genSize int) (random.Generator[U], error) {
	gen, err := m.inner.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return random.Map(gen, m.f), nil
}

func (m mapArbitrary[T, U]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[U], error) {
	gen, err := m.inner.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	return random.Map(gen, m.f), nil
}

func (m mapArbitrary[T, U]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[U], error) {
	gen, err := m.inner.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[U]{}, err
	}
	return exhaustive.Map(gen, m.f), nil
}

func (m mapArbitrary[T, U]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[U], error) {
	edges, err := m.inner.EdgeCases(maxEdgeCases)
	if err != nil {
		return edgecase.None[U](), err
	}
	return edgecase.Map(edges, m.f), nil
}

func (m mapArbitrary[T, U]) Memoizable() bool { return false }

// TryMap is Map for conversions that can fail. Values for which f returns an
// error are treated as unusable samples and skipped like filtered values. f
// runs once per drawn value.
func TryMap[T, U any](a Arbitrary[T], f func(T) (U, error)) Arbitrary[U] {
	attempts := memoizedArbitrary[attempt[U]]{inner: Map(a, func(v T) attempt[U] {
		u, err := f(v)
		return attempt[U]{value: u, err: err}
	})}
	usable := Filter[attempt[U]](attempts, func(r attempt[U]) bool { return r.err == nil })
	return Map(usable, func(r attempt[U]) U { return r.value })
}

type attempt[U any] struct {
	value U
	err   error
}

// memoizedArbitrary computes the value of every random sample once.
type memoizedArbitrary[T any] struct {
	inner Arbitrary[T]
}

func memoizeSamples[T any](gen random.Generator[T]) random.Generator[T] {
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		s, err := gen(r)
		if err != nil {
			return nil, err
		}
		return shrink.Memoize(s), nil
	}
}

func (m memoizedArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	gen, err := m.inner.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return memoizeSamples(gen), nil
}

func (m memoizedArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	gen, err := m.inner.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	return memoizeSamples(gen), nil
}

func (m memoizedArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	return m.inner.Exhaustive(maxNumberOfSamples)
}

func (m memoizedArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	return m.inner.EdgeCases(maxEdgeCases)
}

func (m memoizedArbitrary[T]) Memoizable() bool { return false }

type filterArbitrary[T any] struct {
	inner     Arbitrary[T]
	pred      func(T) bool
	maxMisses int
}

// Filter keeps the values of a accepted by pred. Generation fails with
// ErrTooManyFilterMisses after config.DefaultMaxMisses rejections in a row.
func Filter[T any](a Arbitrary[T], pred func(T) bool) Arbitrary[T] {
	return FilterWithMaxMisses(a, pred, config.DefaultMaxMisses)
}

// FilterWithMaxMisses is Filter with an explicit miss budget per sample.
func FilterWithMaxMisses[T any](a Arbitrary[T], pred func(T) bool, maxMisses int) Arbitrary[T] {
	return filterArbitrary[T]{inner: a, pred: pred, maxMisses: maxMisses}
}

func (f filterArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	gen, err := f.inner.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return f.filtered(gen), nil
}

func (f filterArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	gen, err := f.inner.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	return f.filtered(gen), nil
}

func (f filterArbitrary[T]) filtered(gen random.Generator[T]) random.Generator[T] {
	filtered := random.Filter(gen, f.pred, f.maxMisses)
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		s, err := filtered(r)
		return s, asConfigurationError(err)
	}
}

func (f filterArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	gen, err := f.inner.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[T]{}, err
	}
	return exhaustive.Filter(gen, f.pred), nil
}

func (f filterArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	edges, err := f.inner.EdgeCases(maxEdgeCases)
	if err != nil {
		return edgecase.None[T](), err
	}
	return edgecase.Filter(edges, f.pred)
}

func (f filterArbitrary[T]) Memoizable() bool { return false }

type flatMapArbitrary[T, U any] struct {
	inner Arbitrary[T]
	f     func(T) Arbitrary[U]
}

// FlatMap draws a value of a and generates from the arbitrary f returns for
// it. When the first value shrinks the second is regenerated from the same
// seed.
func FlatMap[T, U any](a Arbitrary[T], f func(T) Arbitrary[U]) Arbitrary[U] {
	return flatMapArbitrary[T, U]{inner: a, f: f}
}

func (fm flatMapArbitrary[T, U]) Generator(genSize int) (random.Generator[U], error) {
	gen, err := fm.inner.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return random.FlatMap(gen, func(v T) (random.Generator[U], error) {
		return fm.f(v).Generator(genSize)
	}), nil
}

func (fm flatMapArbitrary[T, U]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[U], error) {
	gen, err := fm.inner.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	return random.FlatMap(gen, func(v T) (random.Generator[U], error) {
		return fm.f(v).GeneratorWithEmbeddedEdgeCases(genSize)
	}), nil
}

func (fm flatMapArbitrary[T, U]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[U], error) {
	gen, err := fm.inner.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[U]{}, err
	}
	return exhaustive.FlatMap(gen, func(v T) (exhaustive.Generator[U], error) {
		return fm.f(v).Exhaustive(maxNumberOfSamples)
	}, maxNumberOfSamples)
}

// flatMapEdgeSeed replays inner values of flat-mapped edge cases.
const flatMapEdgeSeed = 42

func (fm flatMapArbitrary[T, U]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[U], error) {
	edges, err := fm.inner.EdgeCases(maxEdgeCases)
	if err != nil {
		return edgecase.None[U](), err
	}
	regenerate := func(v T) (shrink.Shrinkable[U], error) {
		gen, err := fm.f(v).Generator(config.DefaultGenSize)
		if err != nil {
			return nil, err
		}
		return gen(random.Replay(flatMapEdgeSeed))
	}
	return edgecase.FlatMap(maxEdgeCases, edges, func(v T) (edgecase.EdgeCases[U], error) {
		return fm.f(v).EdgeCases(maxEdgeCases)
	}, regenerate)
}

func (fm flatMapArbitrary[T, U]) Memoizable() bool { return false }

type edgeCasesArbitrary[T any] struct {
	inner    Arbitrary[T]
	explicit []T
	keep     bool
}

// WithEdgeCases adds values as explicit edge cases in front of the edge
// cases of a. A later filter rejecting one of them is an error.
func WithEdgeCases[T any](a Arbitrary[T], values ...T) Arbitrary[T] {
	return edgeCasesArbitrary[T]{inner: a, explicit: append([]T(nil), values...), keep: true}
}

// WithoutEdgeCases removes every edge case of a.
func WithoutEdgeCases[T any](a Arbitrary[T]) Arbitrary[T] {
	return edgeCasesArbitrary[T]{inner: a}
}

func (e edgeCasesArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	return e.inner.Generator(genSize)
}

func (e edgeCasesArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	if !e.keep {
		return e.inner.Generator(genSize)
	}
	return embedEdgeCases[T](e, genSize)
}

func (e edgeCasesArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	return e.inner.Exhaustive(maxNumberOfSamples)
}

func (e edgeCasesArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	if !e.keep {
		return edgecase.None[T](), nil
	}
	suppliers := make([]edgecase.Supplier[T], len(e.explicit))
	for i, v := range e.explicit {
		suppliers[i] = edgecase.Supplier[T]{
			Get:      func() shrink.Shrinkable[T] { return shrink.Unshrinkable(v) },
			Explicit: true,
		}
	}
	explicit := edgecase.FromSuppliers(len(suppliers), suppliers...)
	rest, err := e.inner.EdgeCases(maxEdgeCases)
	if err != nil {
		return edgecase.None[T](), err
	}
	return edgecase.Truncate(edgecase.Concat(len(suppliers)+rest.Len(), explicit, rest), maxEdgeCases), nil
}

func (e edgeCasesArbitrary[T]) Memoizable() bool { return e.inner.Memoizable() }

type collectArbitrary[T any] struct {
	element     Arbitrary[T]
	until       func([]T) bool
	maxElements int
}

// Collect appends values of element until until accepts the collected slice.
// The result is never shrunk since a shorter slice may not satisfy until.
func Collect[T any](element Arbitrary[T], until func([]T) bool) Arbitrary[[]T] {
	return collectArbitrary[T]{element: element, until: until, maxElements: config.DefaultMaxMisses}
}

func (c collectArbitrary[T]) Generator(genSize int) (random.Generator[[]T], error) {
	gen, err := c.element.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return random.Collect(gen, c.until, c.maxElements), nil
}

func (c collectArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[[]T], error) {
	gen, err := c.element.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	return random.Collect(gen, c.until, c.maxElements), nil
}

func (c collectArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[[]T], error) {
	return exhaustive.Generator[[]T]{}, fmt.Errorf("%w: collected values", exhaustive.ErrNotEnumerable)
}

func (c collectArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[[]T], error) {
	return edgecase.None[[]T](), nil
}

func (c collectArbitrary[T]) Memoizable() bool { return false }
