package board

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// Source is the randomness a Board draws spawns from.
// *rand.Rand from math/rand/v2 satisfies it; tests supply scripted sources.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a source seeded from the operating system.
func NewRandomSource() Source {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}
