package arbitraries

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"propcheck"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

func TestIntegersBetween(t *testing.T) {
	oneToTen := Integers[int]().Between(1, 10)
	inRange := func(v int) bool { return v >= 1 && v <= 10 }
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		for _, s := range draw(t, oneToTen, seed, 10) {
			if !inRange(s.Value()) {
				t.Fatalf("%d outside [1, 10]", s.Value())
			}
			checkShrinks(t, s, 10, inRange)
		}
	})

	edges, err := oneToTen.EdgeCases(10)
	require.NoError(t, err)
	assert.Contains(t, edges.Values(), 1)
	assert.Contains(t, edges.Values(), 10)
}

func TestIntegersStayInRange(t *testing.T) {
	distributions := []random.Distribution{nil, random.UniformDistribution{}, random.GaussianDistribution{}}
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("generated and shrunk values stay within bounds", prop.ForAll(
		func(low int64, width int32, pick uint8, seed int64) bool {
			high := low + int64(width&0x7fffffff)
			a := Integers[int64]().Between(low, high).WithDistribution(distributions[int(pick)%len(distributions)])
			g, err := a.Generator(100)
			if err != nil {
				return false
			}
			s, err := g(random.Replay(seed))
			if err != nil {
				return false
			}
			if s.Value() < low || s.Value() > high {
				return false
			}
			for c := range s.Shrink() {
				if c.Value() < low || c.Value() > high {
					return false
				}
			}
			return true
		},
		gen.Int64Range(-1<<50, 1<<50),
		gen.Int32(),
		gen.UInt8(),
		gen.Int64(),
	))
	properties.TestingRun(t)
}

func TestIntegralEdgeCases(t *testing.T) {
	edges, err := Integers[int8]().EdgeCases(10)
	require.NoError(t, err)
	assert.Equal(t, []int8{0, 1, -1, -128, 127}, edges.Values())
	assert.Equal(t, 3, edges.Suppliers()[0].Weight)

	targeted, err := Integers[int]().Between(0, 10).ShrinkTowards(5).EdgeCases(10)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 10, 5, 4, 6}, targeted.Values())

	explicit, err := Integers[int]().Between(0, 10).WithEdgeCases(7).EdgeCases(3)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 0, 1}, explicit.Values())

	err = Integers[int]().Between(0, 10).WithEdgeCases(42).Validate()
	assert.ErrorIs(t, err, propcheck.ErrConfiguration)
	assert.ErrorIs(t, err, edgecase.ErrInvalidEdgeCase)
}

func TestIntegralShrinkTarget(t *testing.T) {
	tests := []struct {
		name string
		a    IntegralArbitrary[int]
		want int
	}{
		{"zero in range", Integers[int]().Between(-50, 50), 0},
		{"positive range", Integers[int]().Between(5, 50), 5},
		{"negative range", Integers[int]().Between(-50, -5), -5},
		{"custom target", Integers[int]().Between(0, 50).ShrinkTowards(20), 20},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, s := range draw(t, test.a, 3, 20) {
				assert.Equal(t, test.want, minimize(s))
			}
		})
	}
}

func TestIntegralConfiguration(t *testing.T) {
	assert.ErrorIs(t, Integers[int]().Between(10, 1).Validate(), propcheck.ErrConfiguration)
	assert.ErrorIs(t, Integers[int]().Between(0, 10).ShrinkTowards(11).Validate(), propcheck.ErrConfiguration)

	// A mistake sticks even when a later call would be valid.
	sticky := Integers[int]().Between(10, 1).Between(1, 10)
	_, err := sticky.Generator(10)
	assert.ErrorIs(t, err, propcheck.ErrConfiguration)
}

func TestIntegralExhaustive(t *testing.T) {
	small, err := Integers[int]().Between(1, 3).Exhaustive(10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, small.Values())

	bytes, err := Integers[uint8]().Exhaustive(1000)
	require.NoError(t, err)
	values := bytes.Values()
	require.Len(t, values, 256)
	assert.Equal(t, uint8(255), values[255])

	_, err = Integers[int64]().Exhaustive(exhaustive.MaxAcceptedCount)
	assert.True(t, errors.Is(err, exhaustive.ErrTooLarge))

	excluded, err := Integers[int]().InRange(Range[int]{Min: 0, Max: 10, MinExcluded: true, MaxExcluded: true}).Exhaustive(100)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, excluded.Values())
}

func TestUnsignedExtremes(t *testing.T) {
	for _, s := range draw(t, Integers[uint64]().GreaterOrEqual(1<<63), 1, 50) {
		assert.GreaterOrEqual(t, s.Value(), uint64(1<<63))
		assert.Equal(t, uint64(1<<63), minimize(s))
	}
}

func TestIntegralFingerprint(t *testing.T) {
	a := Integers[int]().Between(0, 10)
	assert.True(t, a.Memoizable())
	assert.Equal(t, a.Fingerprint(), Integers[int]().Between(0, 10).Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), Integers[int]().Between(0, 11).Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), a.WithDistribution(random.UniformDistribution{}).Fingerprint())
}
