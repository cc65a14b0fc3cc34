package exhaustive

import "fmt"

// Lists enumerates every list of element values with a size between minSize
// and maxSize, shortest lists first.
func Lists[E any](element Generator[E], minSize, maxSize int, maxNumberOfSamples int64) (Generator[[]E], error) {
	var total int64
	for size := minSize; size <= maxSize; size++ {
		count, ok := power(element.MaxCount(), size)
		if !ok {
			return Generator[[]E]{}, fmt.Errorf("%w: lists of size %d overflow", ErrTooLarge, size)
		}
		sum, ok := Add(total, count)
		if !ok {
			return Generator[[]E]{}, fmt.Errorf("%w: count overflow", ErrTooLarge)
		}
		total = sum
		if err := Check(total, maxNumberOfSamples); err != nil {
			return Generator[[]E]{}, err
		}
	}
	return New(total, func(yield func([]E) bool) {
		values := element.Values()
		for size := minSize; size <= maxSize; size++ {
			if size == 0 {
				if !yield([]E{}) {
					return
				}
				continue
			}
			if len(values) == 0 {
				return
			}
			slots := make([][]E, size)
			for i := range slots {
				slots[i] = values
			}
			stopped := false
			odometer(slots, func(combination []E) bool {
				if !yield(combination) {
					stopped = true
					return false
				}
				return true
			})
			if stopped {
				return
			}
		}
	}), nil
}

// Combinations enumerates every selection of distinct positions of the
// element enumeration with a size between minSize and maxSize, smallest
// selections first. Elements keep their enumeration order.
func Combinations[E any](element Generator[E], minSize, maxSize int, maxNumberOfSamples int64) (Generator[[]E], error) {
	n := element.MaxCount()
	var total int64
	for size := minSize; size <= maxSize && int64(size) <= n; size++ {
		count, ok := binomial(n, int64(size))
		if !ok {
			return Generator[[]E]{}, fmt.Errorf("%w: combinations of size %d overflow", ErrTooLarge, size)
		}
		sum, ok := Add(total, count)
		if !ok {
			return Generator[[]E]{}, fmt.Errorf("%w: count overflow", ErrTooLarge)
		}
		total = sum
		if err := Check(total, maxNumberOfSamples); err != nil {
			return Generator[[]E]{}, err
		}
	}
	return New(total, func(yield func([]E) bool) {
		values := element.Values()
		for size := minSize; size <= maxSize && size <= len(values); size++ {
			if !choose(values, size, yield) {
				return
			}
		}
	}), nil
}

func choose[E any](values []E, size int, yield func([]E) bool) bool {
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	for {
		combination := make([]E, size)
		for i, idx := range indices {
			combination[i] = values[idx]
		}
		if !yield(combination) {
			return false
		}
		i := size - 1
		for i >= 0 && indices[i] == len(values)-size+i {
			i--
		}
		if i < 0 {
			return true
		}
		indices[i]++
		for j := i + 1; j < size; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}

func power(base int64, exp int) (int64, bool) {
	result := int64(1)
	for i := 0; i < exp; i++ {
		next, ok := Mul(result, base)
		if !ok {
			return 0, false
		}
		result = next
	}
	return result, true
}

func binomial(n, k int64) (int64, bool) {
	if k < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := int64(1); i <= k; i++ {
		next, ok := Mul(result, n-k+i)
		if !ok {
			return 0, false
		}
		result = next / i
	}
	return result, true
}
