package pswarm

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
)

// Func is a box-bounded objective function.  The objective must be framed so
// that higher values are better.  The core always evaluates sequentially -
// Objective is never called concurrently on the same Func.
type Func interface {
	// Bounds returns the per-dimension lower and upper bound vectors.  The
	// vectors must be the same length (the problem dimensionality) and
	// satisfy low[i] <= up[i]; equal bounds mark a degenerate dimension that
	// is held fixed.
	Bounds() (low, up []float64)
	// Objective evaluates the objective at v, len(v) equal to the problem
	// dimensionality.
	Objective(v []float64) float64
}

// SimpleFunc adapts a bare closure and bound vectors into a Func.
type SimpleFunc struct {
	Low, Up []float64
	F       func([]float64) float64
}

func (f SimpleFunc) Bounds() (low, up []float64) { return f.Low, f.Up }

func (f SimpleFunc) Objective(v []float64) float64 { return f.F(v) }

func hashPos(pos []float64) [sha1.Size]byte {
	data := make([]byte, len(pos)*8)
	for i, x := range pos {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(x))
	}
	return sha1.Sum(data)
}

// CacheFunc wraps a Func and memoizes objective values by position so
// revisited points cost nothing.
type CacheFunc struct {
	Func
	cache map[[sha1.Size]byte]float64
}

func NewCacheFunc(fn Func) *CacheFunc {
	return &CacheFunc{
		Func:  fn,
		cache: map[[sha1.Size]byte]float64{},
	}
}

func (cf *CacheFunc) Objective(v []float64) float64 {
	h := hashPos(v)
	if val, ok := cf.cache[h]; ok {
		return val
	}
	val := cf.Func.Objective(v)
	cf.cache[h] = val
	return val
}

// FuncCounter wraps a Func and counts objective evaluations.
type FuncCounter struct {
	Func
	Count int
}

func NewFuncCounter(fn Func) *FuncCounter { return &FuncCounter{Func: fn} }

func (fc *FuncCounter) Objective(v []float64) float64 {
	fc.Count++
	return fc.Func.Objective(v)
}

// FuncPrinter wraps a Func and prints every evaluation - input vector and
// value - prefixed by a running count.
type FuncPrinter struct {
	Func
	Count int
}

func NewFuncPrinter(fn Func) *FuncPrinter { return &FuncPrinter{Func: fn} }

func (fp *FuncPrinter) Objective(v []float64) float64 {
	val := fp.Func.Objective(v)

	fp.Count++
	fmt.Print(fp.Count, " ")
	for _, x := range v {
		fmt.Print(x, " ")
	}
	fmt.Println("    ", val)

	return val
}
