package edgecase

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"propcheck/shrink"
	"propcheck/telemetry"
)

func values(vs ...int) EdgeCases[int] {
	out := make([]shrink.Shrinkable[int], len(vs))
	for i, v := range vs {
		out[i] = shrink.Unshrinkable(v)
	}
	return FromShrinkables(len(vs), out...)
}

func TestFromSuppliersTruncates(t *testing.T) {
	e := FromShrinkables(2, shrink.Unshrinkable(1), shrink.Unshrinkable(2), shrink.Unshrinkable(3))
	assert.Equal(t, []int{1, 2}, e.Values())
	assert.True(t, FromShrinkables(0, shrink.Unshrinkable(1)).IsEmpty())
	assert.True(t, None[int]().IsEmpty())
}

func TestConcatSharesBudget(t *testing.T) {
	tests := []struct {
		name  string
		max   int
		parts []EdgeCases[int]
		want  []int
	}{
		{"everything fits", 10, []EdgeCases[int]{values(1, 2), values(3)}, []int{1, 2, 3}},
		{"equal shares", 4, []EdgeCases[int]{values(1, 2, 3), values(4, 5, 6)}, []int{1, 2, 4, 5}},
		{"left over goes to first parts", 5, []EdgeCases[int]{values(1, 2, 3, 4), values(5)}, []int{1, 2, 3, 4, 5}},
		{"short part leaves room", 4, []EdgeCases[int]{values(1), values(2, 3, 4, 5)}, []int{1, 2, 3, 4}},
		{"no budget", 0, []EdgeCases[int]{values(1)}, []int{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Concat(test.max, test.parts...).Values())
		})
	}
}

func TestConcatNeverExceedsBudget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(0, 20).Draw(t, "max")
		sizes := rapid.SliceOfN(rapid.IntRange(0, 10), 0, 5).Draw(t, "sizes")
		parts := make([]EdgeCases[int], len(sizes))
		available := 0
		for i, n := range sizes {
			parts[i] = values(make([]int, n)...)
			available += n
		}
		got := Concat(max, parts...).Len()
		if got > max {
			t.Fatalf("got %d edge cases with a budget of %d", got, max)
		}
		if got < min(max, available) {
			t.Fatalf("got %d edge cases, %d were available within budget %d", got, available, max)
		}
	})
}

func TestFilterDropsImplicitEdgeCases(t *testing.T) {
	before := testutil.ToFloat64(telemetry.EdgeCasesDropped)
	e, err := Filter(values(1, 2, 3, 4), func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, e.Values())
	assert.Equal(t, before+2, testutil.ToFloat64(telemetry.EdgeCasesDropped))
}

func TestFilterRejectsExplicitEdgeCases(t *testing.T) {
	explicit := FromSuppliers(3, Supplier[int]{
		Get:      func() shrink.Shrinkable[int] { return shrink.Unshrinkable(7) },
		Explicit: true,
	})
	_, err := Filter(explicit, func(v int) bool { return v < 5 })
	assert.True(t, errors.Is(err, ErrInvalidEdgeCase), "got %v", err)
}

func TestMapKeepsFlags(t *testing.T) {
	e := FromSuppliers(2, Supplier[int]{
		Get:      func() shrink.Shrinkable[int] { return shrink.Unshrinkable(2) },
		Weight:   3,
		Explicit: true,
	})
	mapped := Map(e, func(v int) string { return string(rune('a' + v)) })
	assert.Equal(t, []string{"c"}, mapped.Values())
	assert.Equal(t, 3, mapped.Suppliers()[0].Weight)
	assert.True(t, mapped.Suppliers()[0].Explicit)
}

func TestProductOrder(t *testing.T) {
	parts := []EdgeCases[any]{
		Map(values(1, 2), func(v int) any { return v }),
		Map(values(10, 20), func(v int) any { return v }),
	}
	sum := func(v []any) int { return v[0].(int) + v[1].(int) }
	assert.Equal(t, []int{11, 21, 12, 22}, Product(10, parts, sum).Values())
	assert.Equal(t, []int{11, 21, 12}, Product(3, parts, sum).Values())

	withEmpty := []EdgeCases[any]{parts[0], None[any]()}
	assert.True(t, Product(10, withEmpty, sum).IsEmpty())
}

func TestFlatMapRespectsBudget(t *testing.T) {
	inner := func(v int) (EdgeCases[int], error) {
		return values(v*10, v*10+1), nil
	}
	e, err := FlatMap(3, values(1, 2, 3), inner, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11, 20}, e.Values())

	e, err = FlatMap(0, values(1), inner, nil)
	require.NoError(t, err)
	assert.True(t, e.IsEmpty())
}

func TestDedupeAndPick(t *testing.T) {
	e := Dedupe(values(1, 2, 1, 3, 2))
	assert.Equal(t, []int{1, 2, 3}, e.Values())

	weighted := FromSuppliers(2,
		Supplier[int]{Get: func() shrink.Shrinkable[int] { return shrink.Unshrinkable(0) }, Weight: 1000},
		Supplier[int]{Get: func() shrink.Shrinkable[int] { return shrink.Unshrinkable(1) }, Weight: 1},
	)
	r := rand.New(rand.NewSource(1))
	zeros := 0
	for i := 0; i < 100; i++ {
		if weighted.Pick(r).Value() == 0 {
			zeros++
		}
	}
	assert.Greater(t, zeros, 80)
}
