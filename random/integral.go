package random

import (
	"math"
	"math/big"
	"math/rand"

	"propcheck/shrink"
)

// Distribution picks an integral value in [min, max]. target is the shrink
// target and genSize the size hint of the current session.
type Distribution interface {
	Next(r *rand.Rand, min, max, target *big.Int, genSize int) *big.Int
}

// Integral generates values in [min, max] that shrink towards target.
func Integral(min, max, target *big.Int, genSize int, dist Distribution) Generator[*big.Int] {
	if dist == nil {
		dist = BiasedDistribution{}
	}
	return func(r *rand.Rand) (shrink.Shrinkable[*big.Int], error) {
		value := dist.Next(r, min, max, target, genSize)
		return shrink.Integral(value, target), nil
	}
}

// Partition is a sub-range of a numeric domain sampled with some weight.
type Partition struct {
	Min, Max *big.Int
	Weight   int
}

// BiasedDistribution concentrates samples around the shrink target. A small
// size hint keeps most of the mass close to the target, a large one widens
// the inner partitions towards the full range.
type BiasedDistribution struct{}

// Partitions returns the nested ranges the biased distribution samples from.
// Each partition is centred on target and clamped to [min, max]; its radius
// never shrinks when genSize grows.
func Partitions(min, max, target *big.Int, genSize int) []Partition {
	if genSize < 1 {
		genSize = 1
	}
	small := big.NewInt(int64(genSize))
	medium := new(big.Int).Mul(small, small)
	return []Partition{
		around(min, max, target, small, 5),
		around(min, max, target, medium, 3),
		{Min: min, Max: max, Weight: 2},
	}
}

func around(min, max, target, radius *big.Int, weight int) Partition {
	low := new(big.Int).Sub(target, radius)
	if low.Cmp(min) < 0 {
		low = min
	}
	high := new(big.Int).Add(target, radius)
	if high.Cmp(max) > 0 {
		high = max
	}
	return Partition{Min: low, Max: high, Weight: weight}
}

func (BiasedDistribution) Next(r *rand.Rand, min, max, target *big.Int, genSize int) *big.Int {
	partitions := Partitions(min, max, target, genSize)
	total := 0
	for _, p := range partitions {
		total += p.Weight
	}
	n := r.Intn(total)
	for _, p := range partitions {
		n -= p.Weight
		if n < 0 {
			return uniform(r, p.Min, p.Max)
		}
	}
	return uniform(r, min, max)
}

// UniformDistribution picks every value in the range with equal probability.
type UniformDistribution struct{}

func (UniformDistribution) Next(r *rand.Rand, min, max, target *big.Int, genSize int) *big.Int {
	return uniform(r, min, max)
}

// GaussianDistribution samples a normal distribution centred on the shrink
// target. Its standard deviation is a third of the distance from the target
// to the farther bound, values outside the range are clamped.
type GaussianDistribution struct{}

func (GaussianDistribution) Next(r *rand.Rand, min, max, target *big.Int, genSize int) *big.Int {
	spread := new(big.Int).Sub(max, target)
	if below := new(big.Int).Sub(target, min); below.Cmp(spread) > 0 {
		spread = below
	}
	sigma, _ := new(big.Float).SetInt(spread).Float64()
	offset := r.NormFloat64() * sigma / 3
	if math.IsInf(offset, 0) || math.IsNaN(offset) {
		return uniform(r, min, max)
	}
	delta, _ := big.NewFloat(math.Round(offset)).Int(nil)
	value := delta.Add(delta, target)
	if value.Cmp(min) < 0 {
		return new(big.Int).Set(min)
	}
	if value.Cmp(max) > 0 {
		return new(big.Int).Set(max)
	}
	return value
}

func uniform(r *rand.Rand, min, max *big.Int) *big.Int {
	span := new(big.Int).Sub(max, min)
	span.Add(span, big.NewInt(1))
	if span.Sign() <= 0 {
		return new(big.Int).Set(min)
	}
	v := new(big.Int).Rand(r, span)
	return v.Add(v, min)
}
