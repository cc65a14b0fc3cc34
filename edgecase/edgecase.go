// Package edgecase holds budgeted, ordered lists of boundary values.
//
// Edge cases are kept as lazy suppliers so that expensive values are only
// built when a caller actually needs them.
package edgecase

import (
	"errors"
	"fmt"
	"iter"
	"math/rand"
	"reflect"

	"github.com/sirupsen/logrus"

	"propcheck/shrink"
	"propcheck/telemetry"
)

// ErrInvalidEdgeCase is returned when an explicitly added edge case does not
// belong to the domain it was added to.
var ErrInvalidEdgeCase = errors.New("edgecase: explicit edge case is outside the domain")

var log = logrus.WithField("component", "edgecase")

// Supplier lazily builds one edge case.
type Supplier[T any] struct {
	// Get builds the shrinkable edge case. It is called every time the edge
	// case is used.
	Get func() shrink.Shrinkable[T]
	// Weight biases random selection between edge cases. Zero counts as one.
	Weight int
	// Explicit marks edge cases added by the user. Filtering one of those out
	// is an error instead of a silent drop.
	Explicit bool
}

func (s Supplier[T]) weight() int {
	if s.Weight <= 0 {
		return 1
	}
	return s.Weight
}

// EdgeCases is an ordered list of suppliers. The zero value has no edge cases.
type EdgeCases[T any] struct {
	suppliers []Supplier[T]
}

// None returns an empty set of edge cases.
func None[T any]() EdgeCases[T] {
	return EdgeCases[T]{}
}

// FromSuppliers keeps at most max suppliers in the given order.
func FromSuppliers[T any](max int, suppliers ...Supplier[T]) EdgeCases[T] {
	if max <= 0 {
		return None[T]()
	}
	if len(suppliers) > max {
		suppliers = suppliers[:max]
	}
	out := make([]Supplier[T], len(suppliers))
	copy(out, suppliers)
	return EdgeCases[T]{suppliers: out}
}

// FromShrinkables creates unweighted suppliers for already built values.
func FromShrinkables[T any](max int, values ...shrink.Shrinkable[T]) EdgeCases[T] {
	suppliers := make([]Supplier[T], len(values))
	for i, v := range values {
		suppliers[i] = Supplier[T]{Get: func() shrink.Shrinkable[T] { return v }}
	}
	return FromSuppliers(max, suppliers...)
}

// Len returns the number of edge cases.
func (e EdgeCases[T]) Len() int {
	return len(e.suppliers)
}

// IsEmpty reports whether there are no edge cases.
func (e EdgeCases[T]) IsEmpty() bool {
	return len(e.suppliers) == 0
}

// Suppliers returns a copy of the suppliers.
func (e EdgeCases[T]) Suppliers() []Supplier[T] {
	out := make([]Supplier[T], len(e.suppliers))
	copy(out, e.suppliers)
	return out
}

// All builds every edge case in order.
func (e EdgeCases[T]) All() iter.Seq[shrink.Shrinkable[T]] {
	return func(yield func(shrink.Shrinkable[T]) bool) {
		for _, s := range e.suppliers {
			if !yield(s.Get()) {
				return
			}
		}
	}
}

// Values builds every edge case and returns the plain values.
func (e EdgeCases[T]) Values() []T {
	out := make([]T, 0, len(e.suppliers))
	for s := range e.All() {
		out = append(out, s.Value())
	}
	return out
}

// Pick selects one edge case at random, honoring supplier weights.
// It must not be called on an empty set.
func (e EdgeCases[T]) Pick(r *rand.Rand) shrink.Shrinkable[T] {
	total := 0
	for _, s := range e.suppliers {
		total += s.weight()
	}
	n := r.Intn(total)
	for _, s := range e.suppliers {
		n -= s.weight()
		if n < 0 {
			return s.Get()
		}
	}
	return e.suppliers[len(e.suppliers)-1].Get()
}

// Concat joins edge cases in order, truncated to max. Every part gets an equal
// share of the budget first; left over budget goes to the remaining suppliers
// in order.
func Concat[T any](max int, parts ...EdgeCases[T]) EdgeCases[T] {
	if max <= 0 || len(parts) == 0 {
		return None[T]()
	}
	share := max / len(parts)
	if share < 1 {
		share = 1
	}
	taken := make([]int, len(parts))
	total := 0
	for i, p := range parts {
		n := p.Len()
		if n > share {
			n = share
		}
		if total+n > max {
			n = max - total
		}
		taken[i] = n
		total += n
	}
	for i, p := range parts {
		for taken[i] < p.Len() && total < max {
			taken[i]++
			total++
		}
	}
	out := make([]Supplier[T], 0, total)
	for i, p := range parts {
		out = append(out, p.suppliers[:taken[i]]...)
	}
	return EdgeCases[T]{suppliers: out}
}

// Map transforms every edge case through f.
func Map[T, U any](e EdgeCases[T], f func(T) U) EdgeCases[U] {
	out := make([]Supplier[U], len(e.suppliers))
	for i, s := range e.suppliers {
		get := s.Get
		out[i] = Supplier[U]{
			Get:      func() shrink.Shrinkable[U] { return shrink.Map(get(), f) },
			Weight:   s.Weight,
			Explicit: s.Explicit,
		}
	}
	return EdgeCases[U]{suppliers: out}
}

// Filter keeps the edge cases satisfying pred. Implicit edge cases that fail
// are dropped; an explicit one fails with ErrInvalidEdgeCase.
func Filter[T any](e EdgeCases[T], pred func(T) bool) (EdgeCases[T], error) {
	out := make([]Supplier[T], 0, len(e.suppliers))
	for _, s := range e.suppliers {
		value := s.Get().Value()
		if !pred(value) {
			if s.Explicit {
				return None[T](), fmt.Errorf("%w: %v", ErrInvalidEdgeCase, value)
			}
			telemetry.EdgeCasesDropped.Inc()
			log.WithField("value", fmt.Sprintf("%v", value)).Debug("dropping edge case rejected by filter")
			continue
		}
		get := s.Get
		out = append(out, Supplier[T]{
			Get:      func() shrink.Shrinkable[T] { return shrink.Filter(get(), pred) },
			Weight:   s.Weight,
			Explicit: s.Explicit,
		})
	}
	return EdgeCases[T]{suppliers: out}, nil
}

// FlatMap derives inner edge cases from every outer edge case. regenerate
// recreates an inner value when the outer value shrinks; it may be nil.
func FlatMap[T, U any](
	max int,
	outer EdgeCases[T],
	inner func(T) (EdgeCases[U], error),
	regenerate func(T) (shrink.Shrinkable[U], error),
) (EdgeCases[U], error) {
	if max <= 0 {
		return None[U](), nil
	}
	out := make([]Supplier[U], 0, max)
	for _, s := range outer.suppliers {
		if len(out) >= max {
			break
		}
		outerValue := s.Get()
		innerCases, err := inner(outerValue.Value())
		if err != nil {
			return None[U](), err
		}
		for _, is := range innerCases.suppliers {
			if len(out) >= max {
				break
			}
			get := is.Get
			out = append(out, Supplier[U]{
				Get: func() shrink.Shrinkable[U] {
					return shrink.FlatMap(outerValue, get(), regenerate)
				},
				Weight:   is.Weight,
				Explicit: is.Explicit,
			})
		}
	}
	return EdgeCases[U]{suppliers: out}, nil
}

// Product combines one edge case from every part, first part varying
// slowest, stopping after max combinations.
func Product[T any](max int, parts []EdgeCases[any], combinator func([]any) T) EdgeCases[T] {
	if max <= 0 || len(parts) == 0 {
		return None[T]()
	}
	for _, p := range parts {
		if p.IsEmpty() {
			return None[T]()
		}
	}
	out := make([]Supplier[T], 0, max)
	indices := make([]int, len(parts))
	for len(out) < max {
		chosen := make([]Supplier[any], len(parts))
		for i, idx := range indices {
			chosen[i] = parts[i].suppliers[idx]
		}
		out = append(out, Supplier[T]{Get: func() shrink.Shrinkable[T] {
			values := make([]shrink.Shrinkable[any], len(chosen))
			for i, c := range chosen {
				values[i] = c.Get()
			}
			return shrink.Combine(values, combinator)
		}})
		if !advance(indices, parts) {
			break
		}
	}
	return EdgeCases[T]{suppliers: out}
}

func advance(indices []int, parts []EdgeCases[any]) bool {
	for i := len(indices) - 1; i >= 0; i-- {
		indices[i]++
		if indices[i] < parts[i].Len() {
			return true
		}
		indices[i] = 0
	}
	return false
}

// Dedupe removes edge cases whose value deeply equals an earlier one.
func Dedupe[T any](e EdgeCases[T]) EdgeCases[T] {
	var seen []T
	out := make([]Supplier[T], 0, len(e.suppliers))
	for _, s := range e.suppliers {
		v := s.Get().Value()
		duplicate := false
		for _, prev := range seen {
			if reflect.DeepEqual(prev, v) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		seen = append(seen, v)
		out = append(out, s)
	}
	return EdgeCases[T]{suppliers: out}
}

// Truncate keeps at most max edge cases.
func Truncate[T any](e EdgeCases[T], max int) EdgeCases[T] {
	return FromSuppliers(max, e.suppliers...)
}
