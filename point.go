package pswarm

// Point is an immutable snapshot of a location in the search space together
// with its objective value and (optionally) the velocity the particle had
// when it was there.  Points are used for local/global best bookkeeping and
// never alias live particle state.
type Point struct {
	pos []float64
	vel []float64
	Val float64
}

// NewPoint deep-copies pos into a velocity-less Point with the given value.
func NewPoint(pos []float64, val float64) Point {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	return Point{pos: cpos, Val: val}
}

func newSnap(pos, vel []float64, val float64) Point {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	cvel := make([]float64, len(vel))
	copy(cvel, vel)
	return Point{pos: cpos, vel: cvel, Val: val}
}

func (p Point) At(i int) float64 { return p.pos[i] }

func (p Point) Len() int { return len(p.pos) }

func (p Point) Pos() []float64 {
	pos := make([]float64, len(p.pos))
	copy(pos, p.pos)
	return pos
}

func (p Point) Vel() []float64 {
	vel := make([]float64, len(p.vel))
	copy(vel, p.vel)
	return vel
}
