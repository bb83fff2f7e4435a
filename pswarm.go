// Package pswarm implements a particle swarm optimizer over box-bounded
// objective functions.  The swarm maximizes: a particle's fitness is the
// objective value at its position, and the engine tracks the best fitness
// seen by each particle and by the swarm as a whole.
package pswarm

import (
	"database/sql"
	"fmt"
	"io"
	"math"
	"sync"
)

// Swarm is a particle swarm optimizer.  One call to Step runs one
// generation; an external driver loop is expected to alternate Step and Done
// checks.  Step is guarded by a mutex scoped around the whole call, but a
// Swarm is otherwise not safe for concurrent use.
type Swarm struct {
	prm Params
	fn  Func
	rng Rng

	pop   []*Particle
	gbest Point
	seeds [][]float64

	iter   int
	consts int
	valid  bool

	db *sql.DB

	mu sync.Mutex
}

// Option configures a Swarm at construction time.
type Option func(*Swarm)

// WithRng replaces the package-level Rand as the swarm's random stream.
func WithRng(rng Rng) Option {
	return func(s *Swarm) { s.rng = rng }
}

// Positions seeds the first len(points) particles at the given positions
// instead of uniformly at random.  Initial velocities are still drawn
// randomly and any remaining particles are seeded as usual.
func Positions(points [][]float64) Option {
	return func(s *Swarm) { s.seeds = points }
}

// New creates a swarm over fn.  The function and parameters can be swapped
// later via SetFunc and SetParams; either swap discards all progress.
func New(fn Func, prm Params, opts ...Option) *Swarm {
	s := &Swarm{
		prm: prm,
		fn:  fn,
		rng: Rand,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetFunc replaces the objective and marks the swarm stale; the next
// operation that needs swarm state re-seeds the population from scratch.
func (s *Swarm) SetFunc(fn Func) {
	s.fn = fn
	s.valid = false
}

// SetParams replaces the parameters and marks the swarm stale.
func (s *Swarm) SetParams(prm Params) {
	s.prm = prm
	s.valid = false
}

// Params returns the swarm's current parameters (clamped into their valid
// ranges if the swarm has been validated since they were set).
func (s *Swarm) Params() Params { return s.prm }

// Validate (re)builds the swarm if it is stale: clamps the parameters,
// allocates and seeds a fresh population, evaluates every particle, records
// the best as the global best, and zeroes the counters.  It is idempotent
// and panics if no objective function has been set.
func (s *Swarm) Validate() {
	if s.valid {
		return
	}
	if s.fn == nil {
		panic("pswarm: objective function must be set before validating")
	}
	s.prm.Check()

	s.pop = make([]*Particle, s.prm.NumParticles)
	ibest := 0
	for i := range s.pop {
		s.pop[i] = newParticle(i, s.fn, s.prm, s.rng)
		if i < len(s.seeds) {
			copy(s.pop[i].Pos, s.seeds[i])
			s.pop[i].val = s.fn.Objective(s.pop[i].Pos)
			s.pop[i].best = s.pop[i].snapshot()
		}
		if s.pop[i].Fitness(s.fn) > s.pop[ibest].Fitness(s.fn) {
			ibest = i
		}
	}
	s.gbest = s.pop[ibest].snapshot()
	s.valid = true
	s.Reset()

	s.initdb()
}

// Invalidate marks the swarm stale.  The next operation that needs swarm
// state triggers a full re-seed, losing all progress.
func (s *Swarm) Invalidate() { s.valid = false }

// Reset zeroes the iteration and stagnation counters without touching the
// particle population or the global best.
func (s *Swarm) Reset() {
	s.iter = 0
	s.consts = 0
}

// Step runs one generation: every particle moves (reading the current
// global best, which updates immediately as earlier particles in the same
// step improve it) and the stagnation counter is updated.  Particles that
// left the box are skipped for the global-best comparison.  Step panics if
// the end condition already holds.
func (s *Swarm) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Validate()
	if s.Done() {
		panic("pswarm: Step called after end condition reached")
	}
	s.iter++

	improved := false
	for _, p := range s.pop {
		p.Move(s.fn, s.prm, s.gbest, s.rng)
		if p.OutOfBox() {
			continue
		}
		if p.Fitness(s.fn) > s.gbest.Val {
			s.gbest = p.snapshot()
			improved = true
		}
	}

	if improved {
		s.consts = 0
	} else {
		s.consts++
	}

	s.record()
}

// Done reports whether the swarm has hit its iteration cap or its global
// best has stagnated for MaxConstIter consecutive iterations.
func (s *Swarm) Done() bool {
	return s.iter >= s.prm.MaxIter || s.consts >= s.prm.MaxConstIter
}

// Progress returns the number of iterations completed so far.
func (s *Swarm) Progress() int { return s.iter }

// MaxProgress returns the configured iteration cap.
func (s *Swarm) MaxProgress() int { return s.prm.MaxIter }

// Best returns a snapshot of the best state found by any particle to date.
func (s *Swarm) Best() Point {
	s.Validate()
	return s.gbest
}

// Optimum returns the position of the global best, or nil if none exists.
func (s *Swarm) Optimum() []float64 {
	s.Validate()
	if s.gbest.Len() == 0 {
		return nil
	}
	return s.gbest.Pos()
}

// Value returns the fitness of the global best.
func (s *Swarm) Value() float64 {
	s.Validate()
	return s.gbest.Val
}

// WriteState writes one tab-separated line per particle in population order:
// ordinal index, score, then the position vector.  The score is the negated
// fitness so exported values follow the usual minimization convention.
// Particles currently outside the box have no defined fitness and export
// NaN.
func (s *Swarm) WriteState(w io.Writer) error {
	s.Validate()
	for i, p := range s.pop {
		score := math.NaN()
		if !p.OutOfBox() {
			score = -p.Fitness(s.fn)
		}
		if _, err := fmt.Fprintf(w, "%v\t%v", i, score); err != nil {
			return err
		}
		for _, x := range p.Pos {
			if _, err := fmt.Fprintf(w, "\t%v", x); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
