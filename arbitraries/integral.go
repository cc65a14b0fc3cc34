package arbitraries

import (
	"math/big"
	"unsafe"

	"golang.org/x/exp/constraints"

	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

// IntegralArbitrary generates integers of type T within a range.
type IntegralArbitrary[T constraints.Integer] struct {
	core integralCore
	err  error
}

// Integers covers every value of T and shrinks towards zero.
func Integers[T constraints.Integer]() IntegralArbitrary[T] {
	min, max := bounds[T]()
	return IntegralArbitrary[T]{core: integralCore{min: min, max: max}}
}

// bounds returns the smallest and largest value of T.
func bounds[T constraints.Integer]() (*big.Int, *big.Int) {
	var zero T
	bits := uint(unsafe.Sizeof(zero)) * 8
	one := big.NewInt(1)
	if ^zero < zero {
		limit := new(big.Int).Lsh(one, bits-1)
		return new(big.Int).Neg(limit), limit.Sub(limit, one)
	}
	limit := new(big.Int).Lsh(one, bits)
	return new(big.Int), limit.Sub(limit, one)
}

func toBig[T constraints.Integer](v T) *big.Int {
	var zero T
	if ^zero < zero {
		return big.NewInt(int64(v))
	}
	return new(big.Int).SetUint64(uint64(v))
}

func fromBig[T constraints.Integer](v *big.Int) T {
	if v.Sign() < 0 {
		return T(v.Int64())
	}
	return T(v.Uint64())
}

func (a IntegralArbitrary[T]) with(core integralCore, err error) IntegralArbitrary[T] {
	if a.err != nil {
		return a
	}
	return IntegralArbitrary[T]{core: core, err: err}
}

// Between restricts values to [min, max].
func (a IntegralArbitrary[T]) Between(min, max T) IntegralArbitrary[T] {
	return a.with(a.core.withRange(toBig(min), toBig(max)))
}

func (a IntegralArbitrary[T]) GreaterOrEqual(min T) IntegralArbitrary[T] {
	return a.with(a.core.withRange(toBig(min), a.core.max))
}

func (a IntegralArbitrary[T]) LessOrEqual(max T) IntegralArbitrary[T] {
	return a.with(a.core.withRange(a.core.min, toBig(max)))
}

// InRange restricts values to r, honouring exclusive bounds and the range's
// shrink target.
func (a IntegralArbitrary[T]) InRange(r Range[T]) IntegralArbitrary[T] {
	min, max := toBig(r.Min), toBig(r.Max)
	if r.MinExcluded {
		min.Add(min, big.NewInt(1))
	}
	if r.MaxExcluded {
		max.Sub(max, big.NewInt(1))
	}
	next := a.with(a.core.withRange(min, max))
	if r.Target != nil {
		next = next.ShrinkTowards(*r.Target)
	}
	return next
}

// ShrinkTowards shrinks values towards target instead of zero. The target
// and its neighbours become edge cases.
func (a IntegralArbitrary[T]) ShrinkTowards(target T) IntegralArbitrary[T] {
	return a.with(a.core.withTarget(toBig(target)), nil)
}

// WithDistribution replaces the default biased distribution.
func (a IntegralArbitrary[T]) WithDistribution(dist random.Distribution) IntegralArbitrary[T] {
	core := a.core
	core.dist = dist
	return a.with(core, nil)
}

// WithEdgeCases adds explicit edge cases. Values outside the range make the
// builder invalid.
func (a IntegralArbitrary[T]) WithEdgeCases(values ...T) IntegralArbitrary[T] {
	bigs := make([]*big.Int, len(values))
	for i, v := range values {
		bigs[i] = toBig(v)
	}
	return a.with(a.core.withExplicit(bigs...), nil)
}

// Validate reports the first configuration mistake of the builder.
func (a IntegralArbitrary[T]) Validate() error {
	if a.err != nil {
		return a.err
	}
	return a.core.validate()
}

func (a IntegralArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return random.Map(a.core.generator(genSize), fromBig[T]), nil
}

func (a IntegralArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	gen, err := a.Generator(genSize)
	if err != nil {
		return nil, err
	}
	edges, err := a.EdgeCases(embeddedEdgeCases)
	if err != nil {
		return nil, err
	}
	return random.WithEdgeCases(gen, edges, embeddedEdgeCaseProbability), nil
}

func (a IntegralArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	if err := a.Validate(); err != nil {
		return exhaustive.Generator[T]{}, err
	}
	gen, err := a.core.exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[T]{}, err
	}
	return exhaustive.Map(gen, fromBig[T]), nil
}

func (a IntegralArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	if err := a.Validate(); err != nil {
		return edgecase.None[T](), err
	}
	return edgecase.Map(a.core.edgeCases(maxEdgeCases), fromBig[T]), nil
}

func (a IntegralArbitrary[T]) Memoizable() bool { return true }

func (a IntegralArbitrary[T]) Fingerprint() string {
	return a.core.fingerprint()
}
