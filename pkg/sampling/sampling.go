// Package sampling provides the explicitly owned random source used by the
// concealment engine, plus sampling without replacement.
package sampling

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness the engine consumes. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0.0, 1.0)
	Float64() float64
	// IntN returns a uniform value in [0, n); panics if n <= 0
	IntN(n int) int
}

// New returns a PCG-backed source. A zero seed derives one from the clock.
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample draws min(k, len(population)) distinct elements uniformly at random.
// The population is not modified.
func Sample[T any](src Source, population []T, k int) []T {
	n := len(population)
	if k > n {
		k = n
	}
	if k <= 0 {
		return []T{}
	}

	pool := make([]T, n)
	copy(pool, population)

	// Partial Fisher-Yates: the first k slots become the sample
	for i := 0; i < k; i++ {
		j := i + src.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
