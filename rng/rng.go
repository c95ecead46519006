// Package rng provides the seeded random source shared by every part of the
// simulation. A fixed seed reproduces a run exactly, so nothing in the engine
// may draw from the global math/rand functions.
package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the single random stream of a simulation. It is passed by pointer;
// copying a Source by value would fork the stream.
type Source struct {
	seed uint64
	src  *rand.PCG
	r    *rand.Rand
}

// New creates a source seeded from seed.
func New(seed uint64) *Source {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Source{
		seed: seed,
		src:  src,
		r:    rand.New(src),
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Intn returns a uniform integer in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	return s.r.IntN(n)
}

// Normal returns a normally distributed value. The draw advances the same
// underlying generator as Intn and Perm.
func (s *Source) Normal(mean, stddev float64) float64 {
	if stddev == 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: stddev, Src: s.src}.Rand()
}

// Perm returns a uniformly random permutation of [0, n).
func (s *Source) Perm(n int) []int {
	return s.r.Perm(n)
}
