package arbitraries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck"
)

func TestDecimalExhaustive(t *testing.T) {
	gen, err := Floats[float64]().Between(0, 1).Exhaustive(1000)
	require.NoError(t, err)
	values := gen.Values()
	require.Len(t, values, 101)
	for i, v := range values {
		assert.Equal(t, float64(i)/100, v)
	}

	tenths, err := Floats[float32]().Between(0.1, 0.5).OfScale(1).Exhaustive(100)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5}, tenths.Values(), 1e-7)

	excluded, err := Floats[float64]().InRange(Range[float64]{Min: 0, Max: 1, MinExcluded: true}).OfScale(1).Exhaustive(100)
	require.NoError(t, err)
	assert.Len(t, excluded.Values(), 10)
	assert.Equal(t, 0.1, excluded.Values()[0])
	assert.Equal(t, 1.0, excluded.Values()[9])
}

func TestDecimalConfiguration(t *testing.T) {
	tests := []struct {
		name string
		a    DecimalArbitrary[float64]
	}{
		{"bound finer than scale", Floats[float64]().Between(0, 0.001)},
		{"negative scale", Floats[float64]().OfScale(-1)},
		{"empty range", Floats[float64]().Between(1, 0)},
		{"target outside range", Floats[float64]().Between(0, 1).ShrinkTowards(2)},
		{"edge case finer than scale", Floats[float64]().Between(0, 1).WithEdgeCases(0.125)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.ErrorIs(t, test.a.Validate(), propcheck.ErrConfiguration)
			_, err := test.a.Generator(10)
			assert.ErrorIs(t, err, propcheck.ErrConfiguration)
		})
	}
}

func TestDecimalValuesAreRepresentable(t *testing.T) {
	a := Floats[float64]().Between(-1000, 1000)
	for _, s := range draw(t, a, 5, 100) {
		v := s.Value()
		assert.True(t, v >= -1000 && v <= 1000)
		_, err := unscaled(v, DefaultScale)
		assert.NoError(t, err, "%v has more than %d fractional digits", v, DefaultScale)
		checkShrinks(t, s, 5, func(c float64) bool {
			_, err := unscaled(c, DefaultScale)
			return err == nil && c >= -1000 && c <= 1000
		})
	}
}

func TestDecimalEdgeCases(t *testing.T) {
	edges, err := Floats[float64]().Between(-1.5, 2.25).EdgeCases(10)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, -1, 0.01, -0.01, -1.5, 2.25}, edges.Values())

	wide, err := Floats[float64]().Between(-10, 10).EdgeCases(20)
	require.NoError(t, err)
	assert.Subset(t, wide.Values(), []float64{0, 1, -1, -10, 10})

	whole, err := Floats[float64]().Between(-10, 10).OfScale(0).EdgeCases(20)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, -1, -10, 10}, whole.Values())
}

func TestDecimalShrinkTowards(t *testing.T) {
	a := Floats[float64]().Between(0, 10).ShrinkTowards(1.5)
	for _, s := range draw(t, a, 8, 20) {
		assert.Equal(t, 1.5, minimize(s))
	}
}
