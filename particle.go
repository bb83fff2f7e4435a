package pswarm

import "math"

// Particle is a single member of the swarm.  Pos and Vel are live state;
// fitness is cached lazily and invalidated whenever the position changes.
type Particle struct {
	Id  int
	Pos []float64
	Vel []float64

	val      float64
	valid    bool
	outOfBox bool

	best Point
}

// newParticle seeds a particle uniformly inside fn's bounds with a random
// initial velocity in [-MaxV, MaxV], evaluates its fitness, and records the
// seeded state as its initial personal best.
func newParticle(id int, fn Func, prm Params, rng Rng) *Particle {
	low, up := fn.Bounds()
	p := &Particle{
		Id:  id,
		Pos: make([]float64, len(low)),
		Vel: make([]float64, len(low)),
	}

	for i := range p.Pos {
		p.Pos[i] = low[i] + rng.Float64()*(up[i]-low[i])
	}
	for i := range p.Vel {
		p.Vel[i] = prm.MaxV * (1 - 2*rng.Float64())
	}

	p.val = fn.Objective(p.Pos)
	p.valid = true
	p.best = p.snapshot()
	return p
}

// Fitness returns the objective value at the particle's current position,
// evaluating fn only if the cached value is stale.  It panics if the
// particle is currently outside the bounding box - such a particle has no
// defined fitness.
func (p *Particle) Fitness(fn Func) float64 {
	if p.outOfBox {
		panic("pswarm: fitness requested for out-of-box particle")
	}
	if !p.valid {
		p.val = fn.Objective(p.Pos)
		p.valid = true
	}
	return p.val
}

// OutOfBox reports whether the particle's last move left the bounding box
// (only possible with Params.Reflect disabled).
func (p *Particle) OutOfBox() bool { return p.outOfBox }

// Best returns the best state this particle has ever attained.
func (p *Particle) Best() Point { return p.best }

func (p *Particle) snapshot() Point { return newSnap(p.Pos, p.Vel, p.val) }

// Move advances the particle one step toward gbest and its own best.
// Velocity updates are normalized by each dimension's bounded range so that
// MaxV and the acceleration constants apply uniformly across differently
// scaled dimensions.  Degenerate dimensions (zero range) are held fixed.
func (p *Particle) Move(fn Func, prm Params, gbest Point, rng Rng) {
	low, up := fn.Bounds()
	p.outOfBox = false

	for i := range p.Vel {
		d := up[i] - low[i]
		if d <= 0 {
			p.Vel[i] = 0
			continue
		}

		// r1 and r2 MUST be drawn fresh for every dimension.
		r1 := rng.Float64()
		r2 := rng.Float64()
		accel := prm.CGlobal*r1*(gbest.At(i)-p.Pos[i]) +
			prm.CLocal*r2*(p.best.At(i)-p.Pos[i])
		v := p.Vel[i] + accel/d
		p.Vel[i] = restrict(v, -prm.MaxV, prm.MaxV)

		p.Pos[i] += p.Vel[i] * d

		if p.Pos[i] < low[i] {
			if prm.Reflect {
				p.Pos[i] = low[i]
				p.Vel[i] = math.Abs(p.Vel[i])
			} else {
				p.outOfBox = true
			}
		} else if p.Pos[i] > up[i] {
			if prm.Reflect {
				p.Pos[i] = up[i]
				p.Vel[i] = -math.Abs(p.Vel[i])
			} else {
				p.outOfBox = true
			}
		}
	}

	p.valid = false

	// Out-of-box particles sit at an undefined-fitness point until a later
	// move brings them back inside - no evaluation, no best update.
	if !p.outOfBox {
		if p.Fitness(fn) > p.best.Val {
			p.best = p.snapshot()
		}
	}
}
