// Package arbitraries provides the leaf domains of propcheck: numbers,
// runes, strings and collections.
//
// Builders are immutable values. Every configuration method returns a new
// builder; a mistake is remembered and reported by Validate and by every
// derivation of the builder.
package arbitraries

import (
	"errors"
	"fmt"
	"math/big"

	"propcheck"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", propcheck.ErrConfiguration, fmt.Sprintf(format, args...))
}

// asConfigurationError marks exhausted retry budgets as configuration errors.
func asConfigurationError(err error) error {
	if err == nil || errors.Is(err, propcheck.ErrConfiguration) {
		return err
	}
	if errors.Is(err, random.ErrUniqueExhausted) || errors.Is(err, random.ErrTooManyMisses) {
		return fmt.Errorf("%w: %w", propcheck.ErrConfiguration, err)
	}
	return err
}

// integralCore is the range logic shared by integral and decimal builders.
// Decimal builders keep their bounds as unscaled integers.
type integralCore struct {
	min, max *big.Int
	target   *big.Int // nil shrinks towards zero or the nearest bound
	dist     random.Distribution
	explicit []*big.Int
	// unit is the unscaled value of one, nil for integral domains.
	unit *big.Int
}

func (c integralCore) withRange(min, max *big.Int) (integralCore, error) {
	if min.Cmp(max) > 0 {
		return c, configErrorf("empty range [%s, %s]", min, max)
	}
	c.min, c.max = min, max
	return c, nil
}

func (c integralCore) withTarget(target *big.Int) integralCore {
	c.target = target
	return c
}

func (c integralCore) withExplicit(values ...*big.Int) integralCore {
	explicit := make([]*big.Int, 0, len(c.explicit)+len(values))
	explicit = append(explicit, c.explicit...)
	c.explicit = append(explicit, values...)
	return c
}

func (c integralCore) contains(v *big.Int) bool {
	return v.Cmp(c.min) >= 0 && v.Cmp(c.max) <= 0
}

// shrinkingTarget is the custom target or the value closest to zero.
func (c integralCore) shrinkingTarget() *big.Int {
	if c.target != nil {
		return c.target
	}
	zero := new(big.Int)
	switch {
	case c.contains(zero):
		return zero
	case c.min.Sign() > 0:
		return c.min
	default:
		return c.max
	}
}

func (c integralCore) validate() error {
	if c.target != nil && !c.contains(c.target) {
		return configErrorf("shrink target %s outside [%s, %s]", c.target, c.min, c.max)
	}
	for _, v := range c.explicit {
		if !c.contains(v) {
			return fmt.Errorf("%w: %w: %s outside [%s, %s]",
				propcheck.ErrConfiguration, edgecase.ErrInvalidEdgeCase, v, c.min, c.max)
		}
	}
	return nil
}

func (c integralCore) generator(genSize int) random.Generator[*big.Int] {
	return random.Integral(c.min, c.max, c.shrinkingTarget(), genSize, c.dist)
}

func (c integralCore) exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[*big.Int], error) {
	return exhaustive.Range(c.min, c.max, maxNumberOfSamples)
}

// edgeCases puts the explicit edge cases first, then zero (weighted three
// times), one, minus one, the smallest steps away from zero for scaled
// domains, both bounds and the neighbours of a custom target. Values outside
// the range and duplicates are left out.
func (c integralCore) edgeCases(maxEdgeCases int) edgecase.EdgeCases[*big.Int] {
	target := c.shrinkingTarget()
	var (
		suppliers []edgecase.Supplier[*big.Int]
		seen      []*big.Int
	)
	add := func(v *big.Int, weight int, explicit bool) {
		if !c.contains(v) {
			return
		}
		for _, s := range seen {
			if s.Cmp(v) == 0 {
				return
			}
		}
		seen = append(seen, v)
		suppliers = append(suppliers, edgecase.Supplier[*big.Int]{
			Get:      func() shrink.Shrinkable[*big.Int] { return shrink.Integral(v, target) },
			Weight:   weight,
			Explicit: explicit,
		})
	}
	for _, v := range c.explicit {
		add(v, 1, true)
	}
	one := big.NewInt(1)
	if c.unit != nil {
		one = c.unit
	}
	add(big.NewInt(0), 3, false)
	add(one, 1, false)
	add(new(big.Int).Neg(one), 1, false)
	add(big.NewInt(1), 1, false)
	add(big.NewInt(-1), 1, false)
	add(c.min, 1, false)
	add(c.max, 1, false)
	if c.target != nil {
		add(c.target, 1, false)
		add(new(big.Int).Sub(c.target, big.NewInt(1)), 1, false)
		add(new(big.Int).Add(c.target, big.NewInt(1)), 1, false)
	}
	return edgecase.FromSuppliers(maxEdgeCases, suppliers...)
}

func (c integralCore) fingerprint() string {
	return fmt.Sprintf("[%s,%s]->%v dist=%T explicit=%v", c.min, c.max, c.target, c.dist, c.explicit)
}
