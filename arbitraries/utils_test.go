package arbitraries

import (
	"math/rand"

	"propcheck"
	"propcheck/shrink"
)

func source(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func draw[T any](t fataler, a propcheck.Arbitrary[T], seed int64, n int) []shrink.Shrinkable[T] {
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

// checkShrinks walks up to limit nodes of the shrink tree of s and fails on a
// candidate farther from the target than its parent or rejected by valid.
func checkShrinks[T any](t fataler, s shrink.Shrinkable[T], limit int, valid func(T) bool) {
	t.Helper()
	queue := []shrink.Shrinkable[T]{s}
	for visited := 0; len(queue) > 0 && visited < limit; visited++ {
		parent := queue[0]
		queue = queue[1:]
		taken := 0
		for c := range parent.Shrink() {
			if !c.Distance().LessOrEqual(parent.Distance()) {
				t.Fatalf("candidate %v is farther than parent %v", c.Value(), parent.Value())
			}
			if !valid(c.Value()) {
				t.Fatalf("invalid candidate %v of %v", c.Value(), parent.Value())
			}
			if taken < 3 {
				queue = append(queue, c)
				taken++
			}
		}
	}
}

// minimize follows the first shrink candidate until none is left.
func minimize[T any](s shrink.Shrinkable[T]) T {
	for {
		next, ok := first(s)
		if !ok {
			return s.Value()
		}
		s = next
	}
}

func first[T any](s shrink.Shrinkable[T]) (shrink.Shrinkable[T], bool) {
	for c := range s.Shrink() {
		return c, true
	}
	return nil, false
}
