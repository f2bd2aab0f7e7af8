package seed

import (
	"math/rand"
	"time"
)

// NewSeededRNG returns a deterministic generator for seed, or a time-seeded one
// when seed is 0. The seed actually used is returned so runs can be replayed.
func NewSeededRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
