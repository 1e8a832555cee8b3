package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call so two engines built from the same
// seed can be checked for lockstep.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Shuffle permutes n elements through swap. It counts as one call.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.pos++
	r.src.Shuffle(n, swap)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
