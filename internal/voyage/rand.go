package voyage

import "math/rand/v2"

// Rand is the randomness the engine draws from.
// *rand.Rand satisfies it; tests script the draws.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
