package simulator

import (
	"math/rand"
	"sync"
)

// Rand is the randomness seam for the simulator. Rider actors run on their
// own goroutines, so implementations must be safe for concurrent use.
type Rand interface {
	// IntBetween returns a uniform integer in the inclusive range [min, max].
	IntBetween(min, max int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
	// Between returns a uniform float in [min, max).
	Between(min, max float64) float64
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a seeded Rand safe for use across rider goroutines.
func NewRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) IntBetween(min, max int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Between(min, max float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Float64()*(max-min)
}
