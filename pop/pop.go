// Package pop generates starting positions for swarm populations - plain
// uniform box seeding plus a rejection-based seeder for linearly constrained
// problems.
package pop

import (
	"math/rand"

	"github.com/petar/GoLLRB/llrb"
	"gonum.org/v1/gonum/mat"
)

var Rand Rng = rand.New(rand.NewSource(1))

type Rng interface {
	Float64() float64
}

// New generates n random positions uniformly distributed in the boxed
// bounds defined by low and up.  The number of dimensions is equal to
// len(low).
func New(n int, low, up []float64) [][]float64 {
	if len(low) != len(up) {
		panic("low and up vectors are not same length")
	}

	points := make([][]float64, n)
	for i := range points {
		pos := make([]float64, len(low))
		for j := range pos {
			pos[j] = low[j] + Rand.Float64()*(up[j]-low[j])
		}
		points[i] = pos
	}
	return points
}

type item struct {
	pos    []float64
	howbad float64
}

func (p1 item) Less(than llrb.Item) bool {
	p2 := than.(item)
	return p1.howbad < p2.howbad
}

// StackConstr converts the two-sided linear constraints "low <= Ax <= up"
// into the one-sided system "stackA * x <= b".  ranges holds each stacked
// row's low-up spread for normalizing violation magnitudes.
func StackConstr(low, A, up *mat.Dense) (stackA, b *mat.Dense, ranges []float64) {
	m, n := A.Dims()

	data := make([]float64, 0, 2*m*n)
	bdata := make([]float64, 0, 2*m)
	ranges = make([]float64, 0, 2*m)
	for i := 0; i < m; i++ {
		data = append(data, mat.Row(nil, i, A)...)
		bdata = append(bdata, up.At(i, 0))
		ranges = append(ranges, up.At(i, 0)-low.At(i, 0))
	}
	for i := 0; i < m; i++ {
		for _, v := range mat.Row(nil, i, A) {
			data = append(data, -v)
		}
		bdata = append(bdata, -low.At(i, 0))
		ranges = append(ranges, up.At(i, 0)-low.At(i, 0))
	}

	stackA = mat.NewDense(2*m, n, data)
	b = mat.NewDense(2*m, 1, bdata)
	return stackA, b, ranges
}

// NewConstr tries to generate a random population of n feasible points
// satisfying the linear constraints "low <= Ax <= up".  lb and ub define
// lower and upper box bounds for the variables.  NewConstr generates random
// points within the box bounds and keeps all feasible points.  It queues up
// the least unfavorable infeasible points in case n feasible ones cannot be
// found within maxiter.
func NewConstr(n, maxiter int, lb, ub []float64, low, A, up *mat.Dense) (points [][]float64, nbad, iter int) {
	stackA, b, ranges := StackConstr(low, A, up)
	_, ndims := A.Dims()

	violaters := llrb.New()
	points = make([][]float64, 0, n)
	for i := 0; i < maxiter; i++ {
		pos := make([]float64, ndims)
		for j := range pos {
			l, u := lb[j], ub[j]
			pos[j] = l + Rand.Float64()*(u-l)
		}

		// check for constraint violations
		ax := &mat.Dense{}
		ax.Mul(stackA, mat.NewDense(ndims, 1, pos))
		m, _ := ax.Dims()
		howbad := 0.0
		for r := 0; r < m; r++ {
			if diff := ax.At(r, 0) - b.At(r, 0); diff > 0 {
				howbad += diff / ranges[r]
				break
			}
		}

		if howbad == 0 {
			points = append(points, pos)
			if len(points) == n {
				return points, 0, i
			}
		} else {
			violaters.InsertNoReplace(item{pos, howbad})
			for violaters.Len() > n-len(points) {
				violaters.DeleteMax()
			}
		}
	}

	nbad = n - len(points)
	for len(points) < n {
		p := violaters.DeleteMin().(item)
		points = append(points, p.pos)
	}

	return points, nbad, maxiter
}
