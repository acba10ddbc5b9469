package engine

import "math/rand/v2"

// Rand is the randomness capability handed to generator engines
// (uuid fallback, password, random number, team split). Tests substitute
// a fixed-seed generator without touching the dispatcher's control flow.
type Rand interface {
	// IntN returns a uniform int in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// SystemRand returns the process-wide generator.
func SystemRand() Rand {
	return systemRand{}
}

type systemRand struct{}

func (systemRand) IntN(n int) int { return rand.IntN(n) }

// SeededRand returns a deterministic generator for tests.
// *rand.Rand satisfies Rand directly.
func SeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
