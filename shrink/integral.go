package shrink

import (
	"iter"
	"math/big"
)

type integral struct {
	value  *big.Int
	target *big.Int
}

// Integral creates a shrinkable integer that shrinks towards target.
//
// Candidates always lie between value and target, so a value and target that
// both satisfy a range keep every candidate inside it. The candidate order is
// the target itself, then steps towards the target halving in size.
func Integral(value, target *big.Int) Shrinkable[*big.Int] {
	return &integral{value: value, target: target}
}

func (s *integral) Value() *big.Int {
	return new(big.Int).Set(s.value)
}

func (s *integral) Distance() Distance {
	diff := new(big.Int).Sub(s.value, s.target)
	return FromBig(diff.Abs(diff))
}

func (s *integral) Shrink() iter.Seq[Shrinkable[*big.Int]] {
	return func(yield func(Shrinkable[*big.Int]) bool) {
		diff := new(big.Int).Sub(s.value, s.target)
		if diff.Sign() == 0 {
			return
		}
		if !yield(Integral(s.target, s.target)) {
			return
		}
		step := new(big.Int).Abs(diff)
		step.Rsh(step, 1)
		for step.Sign() > 0 {
			candidate := new(big.Int)
			if diff.Sign() > 0 {
				candidate.Sub(s.value, step)
			} else {
				candidate.Add(s.value, step)
			}
			if !yield(Integral(candidate, s.target)) {
				return
			}
			step = new(big.Int).Rsh(step, 1)
		}
	}
}

// Choice creates a shrinkable picking values[index] that shrinks towards
// earlier elements of values.
func Choice[T any](values []T, index int) Shrinkable[T] {
	return New(values[index], Of(uint64(index)), func() iter.Seq[Shrinkable[T]] {
		return func(yield func(Shrinkable[T]) bool) {
			for i := 0; i < index; i++ {
				if !yield(Choice(values, i)) {
					return
				}
			}
		}
	})
}
