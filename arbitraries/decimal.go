package arbitraries

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"

	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

// DefaultScale is the number of fractional digits of generated decimals.
const DefaultScale = 2

// DecimalArbitrary generates floating point numbers with a fixed number of
// fractional digits. Generation, shrinking and edge cases work on the
// unscaled integer value × 10^scale.
type DecimalArbitrary[F constraints.Float] struct {
	min, max F

	// Exclusive bounds move inwards by one unit of the scale.
	minExcluded, maxExcluded bool

	target   *F
	scale    int
	dist     random.Distribution
	explicit []F
	err      error
}

// Floats covers every finite value of F with DefaultScale fractional digits.
func Floats[F constraints.Float]() DecimalArbitrary[F] {
	var zero F
	limit := math.MaxFloat64
	if unsafe.Sizeof(zero) == 4 {
		limit = math.MaxFloat32
	}
	max := F(limit)
	return DecimalArbitrary[F]{min: -max, max: max, scale: DefaultScale}
}

func (a DecimalArbitrary[F]) with(update func(*DecimalArbitrary[F])) DecimalArbitrary[F] {
	if a.err != nil {
		return a
	}
	next := a
	next.explicit = append([]F(nil), a.explicit...)
	update(&next)
	return next
}

// Between restricts values to [min, max].
func (a DecimalArbitrary[F]) Between(min, max F) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) {
		d.min, d.max = min, max
		d.minExcluded, d.maxExcluded = false, false
	})
}

func (a DecimalArbitrary[F]) GreaterOrEqual(min F) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) { d.min, d.minExcluded = min, false })
}

func (a DecimalArbitrary[F]) LessOrEqual(max F) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) { d.max, d.maxExcluded = max, false })
}

// InRange restricts values to r.
func (a DecimalArbitrary[F]) InRange(r Range[F]) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) {
		d.min, d.max = r.Min, r.Max
		d.minExcluded, d.maxExcluded = r.MinExcluded, r.MaxExcluded
		if r.Target != nil {
			t := *r.Target
			d.target = &t
		}
	})
}

// OfScale sets the number of fractional digits.
func (a DecimalArbitrary[F]) OfScale(scale int) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) {
		if scale < 0 {
			d.err = configErrorf("negative scale %d", scale)
			return
		}
		d.scale = scale
	})
}

func (a DecimalArbitrary[F]) ShrinkTowards(target F) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) { d.target = &target })
}

func (a DecimalArbitrary[F]) WithDistribution(dist random.Distribution) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) { d.dist = dist })
}

// WithEdgeCases adds explicit edge cases. They must lie in the range and be
// representable at the scale.
func (a DecimalArbitrary[F]) WithEdgeCases(values ...F) DecimalArbitrary[F] {
	return a.with(func(d *DecimalArbitrary[F]) { d.explicit = append(d.explicit, values...) })
}

// unscaled converts v to v × 10^scale, failing when v has more fractional
// digits than the scale allows. Values are read in their shortest decimal
// form for F's precision, so float32 values keep the digits they were
// written with.
func unscaled[F constraints.Float](v F, scale int) (*big.Int, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, configErrorf("%v is not a finite decimal", v)
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'f', -1, int(unsafe.Sizeof(v))*8))
	if !ok {
		return nil, configErrorf("cannot parse %v", v)
	}
	r.Mul(r, new(big.Rat).SetInt(pow10(scale)))
	if !r.IsInt() {
		return nil, configErrorf("%v cannot be represented with %d fractional digits", v, scale)
	}
	return new(big.Int).Set(r.Num()), nil
}

func pow10(scale int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
}

func (a DecimalArbitrary[F]) rescale() func(*big.Int) F {
	denominator := pow10(a.scale)
	return func(v *big.Int) F {
		f, _ := new(big.Rat).SetFrac(v, denominator).Float64()
		return F(f)
	}
}

// core converts the builder into its unscaled integral form. Every bound,
// target and edge case must be representable at the scale.
func (a DecimalArbitrary[F]) core() (integralCore, error) {
	if a.err != nil {
		return integralCore{}, a.err
	}
	min, err := unscaled(a.min, a.scale)
	if err != nil {
		return integralCore{}, err
	}
	max, err := unscaled(a.max, a.scale)
	if err != nil {
		return integralCore{}, err
	}
	if a.minExcluded {
		min.Add(min, big.NewInt(1))
	}
	if a.maxExcluded {
		max.Sub(max, big.NewInt(1))
	}
	core, err := integralCore{dist: a.dist, unit: pow10(a.scale)}.withRange(min, max)
	if err != nil {
		return integralCore{}, err
	}
	if a.target != nil {
		target, err := unscaled(*a.target, a.scale)
		if err != nil {
			return integralCore{}, err
		}
		core = core.withTarget(target)
	}
	for _, v := range a.explicit {
		u, err := unscaled(v, a.scale)
		if err != nil {
			return integralCore{}, err
		}
		core = core.withExplicit(u)
	}
	return core, core.validate()
}

// Validate reports the first configuration mistake of the builder.
func (a DecimalArbitrary[F]) Validate() error {
	_, err := a.core()
	return err
}

func (a DecimalArbitrary[F]) Generator(genSize int) (random.Generator[F], error) {
	core, err := a.core()
	if err != nil {
		return nil, err
	}
	return random.Map(core.generator(genSize), a.rescale()), nil
}

func (a DecimalArbitrary[F]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[F], error) {
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

func (a DecimalArbitrary[F]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[F], error) {
	core, err := a.core()
	if err != nil {
		return exhaustive.Generator[F]{}, err
	}
	gen, err := core.exhaustive(maxNumberOfSamples)
	if err != nil {
		return exhaustive.Generator[F]{}, err
	}
	return exhaustive.Map(gen, a.rescale()), nil
}

func (a DecimalArbitrary[F]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[F], error) {
	core, err := a.core()
	if err != nil {
		return edgecase.None[F](), err
	}
	return edgecase.Map(core.edgeCases(maxEdgeCases), a.rescale()), nil
}

func (a DecimalArbitrary[F]) Memoizable() bool { return true }

func (a DecimalArbitrary[F]) Fingerprint() string {
	core, err := a.core()
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("scale=%d %s", a.scale, core.fingerprint())
}
