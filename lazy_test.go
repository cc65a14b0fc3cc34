package propcheck

import (
	"slices"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/exhaustive"
	"propcheck/shrink"
	"propcheck/telemetry"
)

type tree struct {
	value    int
	children []*tree
}

func leaf(v int) *tree { return &tree{value: v} }

func node(l, r *tree) *tree { return &tree{children: []*tree{l, r}} }

func (t *tree) valid() bool {
	if len(t.children) == 0 {
		return t.value >= 0 && t.value <= 9
	}
	return len(t.children) == 2 && t.children[0].valid() && t.children[1].valid()
}

// trees picks a leaf two times out of three, so generated trees stay finite.
func trees() Arbitrary[*tree] {
	return LazyOf(
		func() Arbitrary[*tree] { return Map(digits, leaf) },
		func() Arbitrary[*tree] { return Map(Of(0, 1, 2), leaf) },
		func() Arbitrary[*tree] { return Combine2(trees(), trees(), node) },
	)
}

func TestLazyOfIsOneDefinition(t *testing.T) {
	ResetLazyDefinitions()
	t.Cleanup(ResetLazyDefinitions)
	assert.True(t, trees() == trees())

	ResetLazyDefinitions()
	first := trees()
	ResetLazyDefinitions()
	assert.False(t, first == trees())
}

func TestLazyOfGeneratesTrees(t *testing.T) {
	ResetLazyDefinitions()
	t.Cleanup(ResetLazyDefinitions)
	for _, s := range draw(t, trees(), 1, 200) {
		assert.True(t, s.Value().valid())
	}
	_, err := trees().Exhaustive(1000)
	assert.ErrorIs(t, err, exhaustive.ErrNotEnumerable)
	edges, err := trees().EdgeCases(10)
	require.NoError(t, err)
	assert.True(t, edges.IsEmpty())
}

func TestLazyOfShrinking(t *testing.T) {
	ResetLazyDefinitions()
	t.Cleanup(ResetLazyDefinitions)
	samples := draw(t, trees(), 2, 30)
	for _, s := range samples[:5] {
		checkShrinks(t, s, 8, (*tree).valid)
	}

	largest := slices.MaxFunc(samples, func(a, b shrink.Shrinkable[*tree]) int {
		return a.Distance().Compare(b.Distance())
	})
	borrowed := testutil.ToFloat64(telemetry.LazyShrinks.WithLabelValues("borrowed"))
	for c := range largest.Shrink() {
		assert.True(t, c.Distance().LessOrEqual(largest.Distance()))
	}
	assert.Greater(t, testutil.ToFloat64(telemetry.LazyShrinks.WithLabelValues("borrowed")), borrowed)
}

func TestLazyOfTriesOtherAlternatives(t *testing.T) {
	ResetLazyDefinitions()
	t.Cleanup(ResetLazyDefinitions)
	choice := LazyOfKeyed("alternatives",
		func() Arbitrary[int] { return Of(10, 11) },
		func() Arbitrary[int] { return Just(0) },
	)
	var eleven shrink.Shrinkable[int]
	for _, s := range draw(t, choice, 3, 200) {
		if s.Value() == 11 {
			eleven = s
			break
		}
	}
	require.NotNil(t, eleven)

	alternatives := testutil.ToFloat64(telemetry.LazyShrinks.WithLabelValues("alternative"))
	values := shrink.Values(eleven.Shrink())
	assert.Contains(t, values, 10)
	assert.Contains(t, values, 0)
	assert.Equal(t, alternatives+1, testutil.ToFloat64(telemetry.LazyShrinks.WithLabelValues("alternative")))
}

func TestLazyOfConcurrentUse(t *testing.T) {
	ResetLazyDefinitions()
	t.Cleanup(ResetLazyDefinitions)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			gen, err := trees().Generator(50)
			if !assert.NoError(t, err) {
				return
			}
			r := source(seed)
			for j := 0; j < 20; j++ {
				s, err := gen(r)
				if !assert.NoError(t, err) {
					return
				}
				assert.True(t, s.Value().valid())
				for range s.Shrink() {
				}
			}
		}(int64(i))
	}
	wg.Wait()
}

func TestLazySelfReference(t *testing.T) {
	prepend := func(head int, tail []int) []int { return append([]int{head}, tail...) }
	var lists Arbitrary[[]int]
	lists = OneOf(Just([]int{}), Lazy(func() Arbitrary[[]int] { return Combine2(digits, lists, prepend) }))

	for _, s := range draw(t, lists, 4, 100) {
		for _, v := range s.Value() {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 9)
		}
		checkShrinks(t, s, 10, nil)
	}
	_, err := lists.Exhaustive(1000)
	assert.ErrorIs(t, err, exhaustive.ErrInfeasible)
}

func TestLazyOfWithoutAlternatives(t *testing.T) {
	_, err := LazyOf[int]().Generator(10)
	assert.ErrorIs(t, err, ErrConfiguration)
}
