package pswarm

// Params controls swarm size and motion dynamics.  The zero value is not
// useful - start from DefaultParams and adjust.
type Params struct {
	// NumParticles is the size of the swarm.
	NumParticles int
	// CGlobal and CLocal are the acceleration constants toward the swarm's
	// global best and a particle's own best respectively.
	CGlobal float64
	CLocal  float64
	// MaxV is the per-dimension speed limit in normalized units - a value of
	// 1.0 allows a particle to traverse a dimension's full bounded range in
	// a single step.
	MaxV float64
	// MaxIter caps the total number of iterations.
	MaxIter int
	// MaxConstIter is the number of consecutive iterations without
	// improvement of the global best before the swarm is considered
	// converged.
	MaxConstIter int
	// Reflect bounces particles off the bounding box.  If false, particles
	// leaving the box are flagged and sit at an undefined-fitness point
	// until a later move brings them back inside.
	Reflect bool
}

func DefaultParams() Params {
	return Params{
		NumParticles: 30,
		CGlobal:      1.0,
		CLocal:       0.5,
		MaxV:         0.05,
		MaxIter:      200,
		MaxConstIter: 25,
		Reflect:      true,
	}
}

// Check clamps every field into its valid range in place and reports whether
// the configuration was already fully valid.  MaxConstIter is clamped
// against the already-clamped MaxIter, so field order matters.
func (p *Params) Check() bool {
	valid := true

	if n := restricti(p.NumParticles, 1, 1000); n != p.NumParticles {
		p.NumParticles = n
		valid = false
	}
	if v := restrict(p.CGlobal, 0.0, 2.0); v != p.CGlobal {
		p.CGlobal = v
		valid = false
	}
	if v := restrict(p.CLocal, 0.0, 2.0); v != p.CLocal {
		p.CLocal = v
		valid = false
	}
	if v := restrict(p.MaxV, 1e-6, 1.0); v != p.MaxV {
		p.MaxV = v
		valid = false
	}
	if n := restricti(p.MaxIter, 1, 10000); n != p.MaxIter {
		p.MaxIter = n
		valid = false
	}
	if n := restricti(p.MaxConstIter, 2, p.MaxIter); n != p.MaxConstIter {
		p.MaxConstIter = n
		valid = false
	}

	return valid
}

func restrict(v, low, up float64) float64 {
	if v < low {
		return low
	} else if v > up {
		return up
	}
	return v
}

func restricti(v, low, up int) int {
	if v < low {
		return low
	} else if v > up {
		return up
	}
	return v
}
