package random

import (
	"math/rand"
	"time"
)

// NewSource creates a seeded random source. A seed of zero picks a seed from
// the clock; resolve it with SeedOrNow first when it must be reported.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(SeedOrNow(seed)))
}

// SeedOrNow returns seed, or a clock based seed when seed is zero.
func SeedOrNow(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// Derive draws a seed from r and returns it with an independent source
// seeded by it. Re-creating a source from the returned seed replays the same
// values, which is how flat-mapped and lazy values are regenerated while
// shrinking.
func Derive(r *rand.Rand) (int64, *rand.Rand) {
	seed := r.Int63()
	return seed, rand.New(rand.NewSource(seed))
}

// Replay creates the source Derive returned for seed.
func Replay(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
