package propcheck

import (
	"math/rand"

	"propcheck/shrink"
)

var digits = Of(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

func source(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// draw samples n values of a from seed.
func draw[T any](t fataler, a Arbitrary[T], seed int64, n int) []shrink.Shrinkable[T] {
	t.Helper()
	gen, err := a.Generator(100)
	if err != nil {
		t.Fatalf("deriving generator: %v", err)
	}
	r := source(seed)
	out := make([]shrink.Shrinkable[T], n)
	for i := range out {
		s, err := gen(r)
		if err != nil {
			t.Fatalf("sampling: %v", err)
		}
		out[i] = s
	}
	return out
}

// checkShrinks walks up to limit nodes of the shrink tree of s breadth first
// and fails on a candidate farther from the target than its parent, or one
// rejected by valid.
func checkShrinks[T any](t fataler, s shrink.Shrinkable[T], limit int, valid func(T) bool) {
	t.Helper()
	queue := []shrink.Shrinkable[T]{s}
	for visited := 0; len(queue) > 0 && visited < limit; visited++ {
		parent := queue[0]
		queue = queue[1:]
		taken := 0
		for c := range parent.Shrink() {
			if !c.Distance().LessOrEqual(parent.Distance()) {
				t.Fatalf("candidate %v at %v is farther than parent %v at %v", c.Value(), c.Distance(), parent.Value(), parent.Distance())
			}
			if valid != nil && !valid(c.Value()) {
				t.Fatalf("invalid candidate %v", c.Value())
			}
			if taken < 4 {
				queue = append(queue, c)
				taken++
			}
		}
	}
}
