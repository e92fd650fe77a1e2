package engine

import "math/rand"

// SeededRandom returns a deterministic Random for the given seed. The same
// seed always yields the same deal.
func SeededRandom(seed int64) Random {
	rng := rand.New(rand.NewSource(seed))
	return rng.Float64
}
