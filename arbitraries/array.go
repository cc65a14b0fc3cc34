package arbitraries

import (
	"reflect"

	"propcheck"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

// ArrayArbitrary fills Go array types such as [4]int.
type ArrayArbitrary[A any, E any] struct {
	list ListArbitrary[E]
	err  error
}

// Arrays generates values of the array type A with elements of element. The
// element type of A must be E.
func Arrays[A any, E any](element propcheck.Arbitrary[E]) ArrayArbitrary[A, E] {
	t := reflect.TypeFor[A]()
	if t.Kind() != reflect.Array {
		return ArrayArbitrary[A, E]{err: configErrorf("%v is not an array type", t)}
	}
	if t.Elem() != reflect.TypeFor[E]() {
		return ArrayArbitrary[A, E]{err: configErrorf("%v does not hold %v elements", t, reflect.TypeFor[E]())}
	}
	return ArrayArbitrary[A, E]{list: Lists(element).OfSize(t.Len())}
}

// UniqueElements makes the array elements distinct, see
// ListArbitrary.UniqueElements.
func (a ArrayArbitrary[A, E]) UniqueElements(extractors ...shrink.FeatureExtractor[E]) ArrayArbitrary[A, E] {
	if a.err != nil {
		return a
	}
	return ArrayArbitrary[A, E]{list: a.list.UniqueElements(extractors...)}
}

func (a ArrayArbitrary[A, E]) WithUniqueRetries(n int) ArrayArbitrary[A, E] {
	if a.err != nil {
		return a
	}
	return ArrayArbitrary[A, E]{list: a.list.WithUniqueRetries(n)}
}

func (a ArrayArbitrary[A, E]) Validate() error {
	if a.err != nil {
		return a.err
	}
	return a.list.Validate()
}

func toArray[A any, E any](values []E) A {
	var out A
	v := reflect.ValueOf(&out).Elem()
	for i := range values {
		v.Index(i).Set(reflect.ValueOf(&values[i]).Elem())
	}
	return out
}

func (a ArrayArbitrary[A, E]) Generator(genSize int) (random.Generator[A], error) {
	if a.err != nil {
		return nil, a.err
	}
	gen, err := a.list.Generator(genSize)
	if err != nil {
		return nil, err
	}
	return random.Map(gen, toArray[A, E]), nil
}

func (a ArrayArbitrary[A, E]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[A], error) {
	if a.err != nil {
		return nil, a.err
	}
	gen, err := a.list.GeneratorWithEmbeddedEdgeCases(genSize)
	if err != nil {
		return nil, err
	}
	return random.Map(gen, toArray[A, E]), nil
}

func (a ArrayArbitrary[A, E]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[A], error) {
	if a.err != nil {
		return exhaustive.Generator[A]{}, a.err
	}
	gen, err := a.list.Exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[A]{}, err
	}
	return exhaustive.Map(gen, toArray[A, E]), nil
}

func (a ArrayArbitrary[A, E]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[A], error) {
	if a.err != nil {
		return edgecase.None[A](), a.err
	}
	edges, err := a.list.EdgeCases(maxEdgeCases)
	if err != nil {
		return edgecase.None[A](), err
	}
	return edgecase.Map(edges, toArray[A, E]), nil
}

func (a ArrayArbitrary[A, E]) Memoizable() bool {
	return a.err == nil && a.list.Memoizable()
}

func (a ArrayArbitrary[A, E]) Fingerprint() string {
	return reflect.TypeFor[A]().String() + " " + a.list.Fingerprint()
}
