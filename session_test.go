package propcheck

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/config"
	"propcheck/exhaustive"
)

func newSession(t *testing.T, opts ...config.Option) *Session {
	t.Helper()
	s, err := NewSession(opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNewSessionValidates(t *testing.T) {
	_, err := NewSession(Tries(0))
	assert.ErrorIs(t, err, config.ErrInvalidParameters)
	_, err = NewSession(EdgeCaseProbability(2))
	assert.ErrorIs(t, err, config.ErrInvalidParameters)

	s := newSession(t)
	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.NotZero(t, s.Seed())
	assert.Equal(t, config.Default(), s.Parameters())
}

func TestSessionEnumeratesSmallDomains(t *testing.T) {
	s := newSession(t)
	samples, err := Generate(s, digits)
	require.NoError(t, err)
	assert.Equal(t, config.GenerationExhaustive, samples.Mode())
	assert.Equal(t, int64(10), samples.Count())
	values, err := samples.Values()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, values)
}

func TestSessionSamplesLargeDomains(t *testing.T) {
	s := newSession(t, Tries(50), Seed(3))
	samples, err := Generate(s, Tuple2(digits, digits))
	require.NoError(t, err)
	assert.Equal(t, config.GenerationRandom, samples.Mode())
	values, err := samples.Values()
	require.NoError(t, err)
	assert.Len(t, values, 50)

	again, err := samples.Values()
	require.NoError(t, err)
	assert.Equal(t, values, again)

	other, err := Generate(newSession(t, Tries(50), Seed(3)), Tuple2(digits, digits))
	require.NoError(t, err)
	otherValues, err := other.Values()
	require.NoError(t, err)
	assert.Equal(t, values, otherValues)

	_, err = Generate(newSession(t, Tries(50), ExhaustiveGeneration()), Tuple2(digits, digits))
	assert.ErrorIs(t, err, exhaustive.ErrTooLarge)
}

func TestSessionEdgeCasesFirst(t *testing.T) {
	s := newSession(t, RandomGeneration(), EdgeCasesFirst(), Tries(5), Seed(1))
	samples, err := Generate(s, digits)
	require.NoError(t, err)
	values, err := samples.Values()
	require.NoError(t, err)
	require.Len(t, values, 5)
	assert.Equal(t, []int{0, 9}, values[:2])

	s = newSession(t, RandomGeneration(), EdgeCasesFirst(), Tries(1))
	samples, err = Generate(s, digits)
	require.NoError(t, err)
	values, err = samples.Values()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, values)
}

func TestSessionEdgeCasesMixin(t *testing.T) {
	s := newSession(t, RandomGeneration(), EdgeCaseProbability(1), Tries(20))
	samples, err := Generate(s, digits)
	require.NoError(t, err)
	values, err := samples.Values()
	require.NoError(t, err)
	for _, v := range values {
		assert.Contains(t, []int{0, 9}, v)
	}

	s = newSession(t, RandomGeneration(), EdgeCaseProbability(1), NoEdgeCases(), Tries(200), Seed(5))
	samples, err = Generate(s, digits)
	require.NoError(t, err)
	values, err = samples.Values()
	require.NoError(t, err)
	inner := 0
	for _, v := range values {
		if v != 0 && v != 9 {
			inner++
		}
	}
	assert.Greater(t, inner, 0)
}

func TestSessionReportsConfigurationErrors(t *testing.T) {
	s := newSession(t)
	_, err := Generate(s, Of[int]())
	assert.ErrorIs(t, err, ErrConfiguration)

	s = newSession(t, RandomGeneration(), NoEdgeCases(), Tries(3))
	samples, err := Generate(s, FilterWithMaxMisses(Of(1), func(v int) bool { return v%2 == 0 }, 100))
	require.NoError(t, err)
	_, err = samples.Values()
	assert.ErrorIs(t, err, ErrTooManyFilterMisses)
}

func TestSessionCachesMemoizableGenerators(t *testing.T) {
	s := newSession(t, RandomGeneration(), Tries(5))
	for i := 0; i < 3; i++ {
		_, err := Generate(s, Of(1, 2, 3))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, s.cache.Len())

	_, err := Generate(s, Map(digits, func(v int) int { return v }))
	require.NoError(t, err)
	assert.Equal(t, 1, s.cache.Len())
}

func TestSessionCloseDropsLazyDefinitions(t *testing.T) {
	s, err := NewSession(Tries(10))
	require.NoError(t, err)
	samples, err := Generate(s, trees())
	require.NoError(t, err)
	assert.Equal(t, config.GenerationRandom, samples.Mode())
	_, err = samples.Values()
	require.NoError(t, err)

	s.Close()
	lazyRegistry.Lock()
	defer lazyRegistry.Unlock()
	assert.Empty(t, lazyRegistry.definitions)
}

func TestSessionWithParameters(t *testing.T) {
	p := config.New(config.TriesOption{Tries: 7})
	s := newSession(t, WithParameters(p), RandomGeneration())
	samples, err := Generate(s, digits)
	require.NoError(t, err)
	assert.Equal(t, int64(7), samples.Count())
}
