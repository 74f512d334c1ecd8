package dataset

import (
	"math/rand"

	"github.com/DonaldWhyte/mdsearch/core"
)

// RNG encapsulates a seeded random number generator so test datasets
// are reproducible.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// RandomPoints generates num uniformly distributed points with
// coordinates in [minVal, maxVal).
func RandomPoints[T core.Number](r *RNG, num, dims int, minVal, maxVal T) []core.Point[T] {
	span := float64(maxVal - minVal)
	points := make([]core.Point[T], num)
	for i := range points {
		p := make(core.Point[T], dims)
		for d := range p {
			p[d] = minVal + T(r.rand.Float64()*span)
		}
		points[i] = p
	}
	return points
}
