package shrink

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDistanceCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Distance
		want int
	}{
		{"equal", Of(1, 2), Of(1, 2), 0},
		{"first component decides", Of(1, 9), Of(2, 0), -1},
		{"second component decides", Of(2, 3), Of(2, 1), 1},
		{"missing components are zero", Of(3), Of(3, 0), 0},
		{"longer with positive tail", Of(3), Of(3, 1), -1},
		{"zero", Zero(), Of(0, 0), 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.a.Compare(test.b))
			assert.Equal(t, -test.want, test.b.Compare(test.a))
		})
	}
}

func TestDistanceSaturates(t *testing.T) {
	d := Of(math.MaxUint64 - 1).Plus(Of(5))
	assert.Equal(t, []uint64{math.MaxUint64}, d.Dims())

	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	assert.Equal(t, []uint64{math.MaxUint64}, FromBig(huge).Dims())
	assert.True(t, FromBig(big.NewInt(-3)).IsZero())
}

func TestDistanceSumAndCollection(t *testing.T) {
	assert.Equal(t, []uint64{4, 6}, Sum(Of(1, 2), Of(3), Of(0, 4)).Dims())
	assert.Equal(t, []uint64{2, 5}, ForCollection(2, []Distance{Of(2), Of(3)}).Dims())
	assert.Equal(t, "[1,2]", Of(1, 2).String())
}

func TestDistanceOrderIsTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := Of(rapid.SliceOfN(rapid.Uint64(), 0, 4).Draw(t, "a")...)
		b := Of(rapid.SliceOfN(rapid.Uint64(), 0, 4).Draw(t, "b")...)
		c := Of(rapid.SliceOfN(rapid.Uint64(), 0, 4).Draw(t, "c")...)

		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("compare is not antisymmetric for %v and %v", a, b)
		}
		if a.LessOrEqual(b) && b.LessOrEqual(c) && !a.LessOrEqual(c) {
			t.Fatalf("compare is not transitive for %v, %v and %v", a, b, c)
		}
		if !a.LessOrEqual(a.Plus(b)) {
			t.Fatalf("adding %v made %v smaller", b, a)
		}
	})
}
