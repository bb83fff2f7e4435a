// Package bench provides benchmark objective functions adapted from
// http://en.wikipedia.org/wiki/Test_functions_for_optimization for testing
// the swarm.  The functions are framed so that higher values are better -
// i.e. classic minimization benchmarks are negated.
package bench

import (
	"fmt"
	"math"

	pswarm "github.com/rwcarlsen/gopswarm"
)

var (
	sin  = math.Sin
	cos  = math.Cos
	abs  = math.Abs
	exp  = math.Exp
	sqrt = math.Sqrt
)

var AllFuncs = []Func{
	Ackley{},
	CrossTray{},
	Eggholder{},
	HolderTable{},
	Schaffer2{},
	Styblinski{NDim: 1},
	Styblinski{NDim: 10},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
}

// Func is a benchmark objective with known optima.  Every Func also
// satisfies the pswarm.Func interface.
type Func interface {
	Objective(v []float64) float64
	Bounds() (low, up []float64)
	Optima() []pswarm.Point
	Name() string
}

// Benchmark steps s until its end condition holds or its best value comes
// within tol (relative to the known optimum, floored at 0.001 absolute) of
// fn's optimum.  It reports the best point found, the number of iterations
// run, and whether the optimum was reached.
func Benchmark(s *pswarm.Swarm, fn Func, tol float64) (best pswarm.Point, niter int, ok bool) {
	optimum := fn.Optima()[0].Val
	thresh := tol * abs(optimum)
	if thresh < 0.001 {
		thresh = 0.001
	}

	for !s.Done() {
		s.Step()
		if abs(optimum-s.Value()) < thresh {
			break
		}
	}
	return s.Best(), s.Progress(), abs(optimum-s.Value()) < thresh
}

func InsideBounds(p []float64, fn Func) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}

type Ackley struct{}

func (fn Ackley) Name() string { return "Ackley" }

func (fn Ackley) Objective(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(-1)
	}

	x := v[0]
	y := v[1]
	return -(-20*math.Exp(-0.2*math.Sqrt(0.5*(x*x+y*y))) -
		math.Exp(0.5*(math.Cos(2*math.Pi*x)+math.Cos(2*math.Pi*y))) +
		20 + math.E)
}

func (fn Ackley) Bounds() (low, up []float64) {
	return []float64{-5, -5}, []float64{5, 5}
}

func (fn Ackley) Optima() []pswarm.Point {
	return []pswarm.Point{
		pswarm.NewPoint([]float64{0, 0}, 0),
	}
}

type CrossTray struct{}

func (fn CrossTray) Name() string { return "CrossTray" }

func (fn CrossTray) Objective(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(-1)
	}

	x := v[0]
	y := v[1]
	return .0001 * math.Pow(abs(sin(x)*sin(y)*exp(abs(100-sqrt(x*x+y*y)/math.Pi)))+1, 0.1)
}

func (fn CrossTray) Bounds() (low, up []float64) {
	return []float64{-10, -10}, []float64{10, 10}
}

func (fn CrossTray) Optima() []pswarm.Point {
	return []pswarm.Point{
		pswarm.NewPoint([]float64{1.34941, -1.34941}, 2.06261),
		pswarm.NewPoint([]float64{1.34941, 1.34941}, 2.06261),
		pswarm.NewPoint([]float64{-1.34941, 1.34941}, 2.06261),
		pswarm.NewPoint([]float64{-1.34941, -1.34941}, 2.06261),
	}
}

type Eggholder struct{}

func (fn Eggholder) Name() string { return "Eggholder" }

func (fn Eggholder) Objective(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(-1)
	}

	x := v[0]
	y := v[1]
	return (y+47)*sin(sqrt(abs(y+x/2+47))) + x*sin(sqrt(abs(x-(y+47))))
}

func (fn Eggholder) Bounds() (low, up []float64) {
	return []float64{-512, -512}, []float64{512, 512}
}

func (fn Eggholder) Optima() []pswarm.Point {
	return []pswarm.Point{
		pswarm.NewPoint([]float64{512, 404.2319}, 959.6407),
	}
}

type HolderTable struct{}

func (fn HolderTable) Name() string { return "HolderTable" }

func (fn HolderTable) Objective(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(-1)
	}

	x := v[0]
	y := v[1]
	return abs(sin(x) * cos(y) * exp(abs(1-sqrt(x*x+y*y)/math.Pi)))
}

func (fn HolderTable) Bounds() (low, up []float64) {
	return []float64{-10, -10}, []float64{10, 10}
}

func (fn HolderTable) Optima() []pswarm.Point {
	return []pswarm.Point{
		pswarm.NewPoint([]float64{8.05502, 9.66459}, 19.2085),
		pswarm.NewPoint([]float64{-8.05502, 9.66459}, 19.2085),
		pswarm.NewPoint([]float64{8.05502, -9.66459}, 19.2085),
		pswarm.NewPoint([]float64{-8.05502, -9.66459}, 19.2085),
	}
}

type Schaffer2 struct{}

func (fn Schaffer2) Name() string { return "Schaffer2" }

func (fn Schaffer2) Objective(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(-1)
	}

	x := v[0]
	y := v[1]
	return -(0.5 + (math.Pow(sin(x*x-y*y), 2)-0.5)/math.Pow(1+.0001*(x*x+y*y), 2))
}

func (fn Schaffer2) Bounds() (low, up []float64) {
	return []float64{-100, -100}, []float64{100, 100}
}

func (fn Schaffer2) Optima() []pswarm.Point {
	return []pswarm.Point{
		pswarm.NewPoint([]float64{0, 0}, 0),
	}
}

type Styblinski struct {
	NDim int
}

func (fn Styblinski) Name() string { return fmt.Sprintf("Styblinski_%vD", fn.NDim) }

func (fn Styblinski) Objective(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(-1)
	}

	tot := 0.0
	for _, v := range x {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return -tot / 2
}

func (fn Styblinski) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -5
		up[i] = 5
	}
	return low, up
}

func (fn Styblinski) Optima() []pswarm.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = -2.903534
	}
	return []pswarm.Point{
		pswarm.NewPoint(pos, 39.16599*float64(fn.NDim)),
	}
}

type Rosenbrock struct {
	NDim int
}

func (fn Rosenbrock) Name() string { return fmt.Sprintf("Rosenbrock_%vD", fn.NDim) }

func (fn Rosenbrock) Objective(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(-1)
	}

	tot := 0.0
	for i := 0; i < fn.NDim-1; i++ {
		tot += 100*math.Pow(x[i+1]-x[i]*x[i], 2) + math.Pow(x[i]-1, 2)
	}
	return -tot
}

func (fn Rosenbrock) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -1000
		up[i] = 1000
	}
	return low, up
}

func (fn Rosenbrock) Optima() []pswarm.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = 1
	}
	return []pswarm.Point{
		pswarm.NewPoint(pos, 0),
	}
}
