package mathutil

import "math/rand"

// SeededRand adapts *rand.Rand to the Rand interface. A zero-value
// SeededRand is not usable; construct one with NewSeededRand.
type SeededRand struct {
	r *rand.Rand
}

// NewSeededRand builds a deterministic RNG from seed. Tests pass a
// fixed seed; the CLI seeds from the wall clock.
func NewSeededRand(seed int64) *SeededRand {
	return &SeededRand{r: rand.New(rand.NewSource(seed))}
}

func (s *SeededRand) Float64() float64 { return s.r.Float64() }
func (s *SeededRand) Intn(n int) int   { return s.r.Intn(n) }
