// Package exhaustive enumerates small domains completely.
//
// A Generator reports a MaxCount upper bound. Filtering may make the true
// number of values smaller without lowering the bound.
package exhaustive

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/big"
)

// MaxAcceptedCount is the largest enumeration ever offered, independent of
// the caller's sample budget.
const MaxAcceptedCount int64 = math.MaxInt32

var (
	// ErrInfeasible is the parent of every reason an exhaustive generator is
	// not available. Callers fall back to random generation on it.
	ErrInfeasible = errors.New("exhaustive: generation infeasible")

	// ErrTooLarge is returned when the number of values exceeds the budget or
	// MaxAcceptedCount, or cannot be represented.
	ErrTooLarge = fmt.Errorf("%w: too many values", ErrInfeasible)

	// ErrNotEnumerable is returned by domains that cannot be enumerated at all.
	ErrNotEnumerable = fmt.Errorf("%w: domain is not enumerable", ErrInfeasible)
)

// Generator is a restartable enumeration of a domain.
type Generator[T any] struct {
	maxCount int64
	all      iter.Seq[T]
}

// New creates a generator from a bound and a restartable sequence.
func New[T any](maxCount int64, all iter.Seq[T]) Generator[T] {
	return Generator[T]{maxCount: maxCount, all: all}
}

// MaxCount is an upper bound of the number of values.
func (g Generator[T]) MaxCount() int64 {
	return g.maxCount
}

// All enumerates the values. Each call restarts the enumeration.
func (g Generator[T]) All() iter.Seq[T] {
	if g.all == nil {
		return func(yield func(T) bool) {}
	}
	return g.all
}

// Values collects the enumeration.
func (g Generator[T]) Values() []T {
	capacity := g.maxCount
	if capacity > 1024 {
		capacity = 1024
	}
	out := make([]T, 0, capacity)
	for v := range g.All() {
		out = append(out, v)
	}
	return out
}

// Check returns ErrTooLarge unless count fits the budget and MaxAcceptedCount.
func Check(count int64, maxNumberOfSamples int64) error {
	if count < 0 || count > MaxAcceptedCount {
		return fmt.Errorf("%w: %d exceeds accepted maximum %d", ErrTooLarge, count, MaxAcceptedCount)
	}
	if count > maxNumberOfSamples {
		return fmt.Errorf("%w: %d exceeds budget %d", ErrTooLarge, count, maxNumberOfSamples)
	}
	return nil
}

// Mul multiplies two counts, reporting false on overflow.
func Mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// Add adds two counts, reporting false on overflow.
func Add(a, b int64) (int64, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

// Choose enumerates a fixed list of values in order.
func Choose[T any](values []T, maxNumberOfSamples int64) (Generator[T], error) {
	count := int64(len(values))
	if err := Check(count, maxNumberOfSamples); err != nil {
		return Generator[T]{}, err
	}
	return New(count, func(yield func(T) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}), nil
}

// Range enumerates the integers from min to max inclusive in ascending order.
func Range(min, max *big.Int, maxNumberOfSamples int64) (Generator[*big.Int], error) {
	size := new(big.Int).Sub(max, min)
	size.Add(size, big.NewInt(1))
	if !size.IsInt64() {
		return Generator[*big.Int]{}, fmt.Errorf("%w: range of %s values", ErrTooLarge, size)
	}
	count := size.Int64()
	if err := Check(count, maxNumberOfSamples); err != nil {
		return Generator[*big.Int]{}, err
	}
	lo := new(big.Int).Set(min)
	return New(count, func(yield func(*big.Int) bool) {
		for i := int64(0); i < count; i++ {
			v := new(big.Int).Add(lo, big.NewInt(i))
			if !yield(v) {
				return
			}
		}
	}), nil
}

// Map transforms every value. The count is unchanged.
func Map[T, U any](g Generator[T], f func(T) U) Generator[U] {
	return New(g.maxCount, func(yield func(U) bool) {
		for v := range g.All() {
			if !yield(f(v)) {
				return
			}
		}
	})
}

// Filter skips values failing pred. The count keeps the unfiltered bound.
func Filter[T any](g Generator[T], pred func(T) bool) Generator[T] {
	return New(g.maxCount, func(yield func(T) bool) {
		for v := range g.All() {
			if !pred(v) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	})
}

// FlatMap enumerates, for every outer value, the inner domain derived from
// it. The count is the sum of the inner counts. An inner domain that cannot
// be enumerated makes the whole composition infeasible.
func FlatMap[T, U any](outer Generator[T], f func(T) (Generator[U], error), maxNumberOfSamples int64) (Generator[U], error) {
	var (
		inners []Generator[U]
		total  int64
	)
	for v := range outer.All() {
		inner, err := f(v)
		if err != nil {
			return Generator[U]{}, err
		}
		sum, ok := Add(total, inner.MaxCount())
		if !ok {
			return Generator[U]{}, fmt.Errorf("%w: count overflow", ErrTooLarge)
		}
		total = sum
		if err := Check(total, maxNumberOfSamples); err != nil {
			return Generator[U]{}, err
		}
		inners = append(inners, inner)
	}
	return Concat(inners...), nil
}

// Concat enumerates the parts one after the other. The count is the sum of
// the part counts; callers check it against their budget.
func Concat[T any](parts ...Generator[T]) Generator[T] {
	var total int64
	for _, p := range parts {
		sum, ok := Add(total, p.MaxCount())
		if !ok {
			sum = math.MaxInt64
		}
		total = sum
	}
	return New(total, func(yield func(T) bool) {
		for _, p := range parts {
			for v := range p.All() {
				if !yield(v) {
					return
				}
			}
		}
	})
}

// Product enumerates every combination of one value per part, first part
// varying slowest. The count is the product of the part counts and is
// refused before anything is materialized if it overflows or exceeds the
// budget.
func Product[T any](parts []Generator[any], combinator func([]any) T, maxNumberOfSamples int64) (Generator[T], error) {
	count := int64(1)
	for _, p := range parts {
		product, ok := Mul(count, p.MaxCount())
		if !ok {
			return Generator[T]{}, fmt.Errorf("%w: product overflows", ErrTooLarge)
		}
		count = product
	}
	if err := Check(count, maxNumberOfSamples); err != nil {
		return Generator[T]{}, err
	}
	return New(count, func(yield func(T) bool) {
		values := make([][]any, len(parts))
		for i, p := range parts {
			values[i] = p.Values()
			if len(values[i]) == 0 {
				return
			}
		}
		odometer(values, func(combination []any) bool {
			return yield(combinator(combination))
		})
	}), nil
}

func odometer[T any](values [][]T, visit func([]T) bool) {
	indices := make([]int, len(values))
	for {
		combination := make([]T, len(values))
		for i, idx := range indices {
			combination[i] = values[i][idx]
		}
		if !visit(combination) {
			return
		}
		i := len(indices) - 1
		for ; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(values[i]) {
				break
			}
			indices[i] = 0
		}
		if i < 0 {
			return
		}
	}
}
