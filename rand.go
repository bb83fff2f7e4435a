package pswarm

import "math/rand"

// Rng is the source of randomness used for seeding particles and drawing the
// per-dimension acceleration weights during moves.
type Rng interface {
	Float64() float64
}

// Rand is the default random number stream.  A swarm and all of its
// particles share one stream; with a fixed seed the draw order (seeding
// first, then dimension-major, term-major draws during each move) makes runs
// reproducible.
var Rand Rng = rand.New(rand.NewSource(1))
