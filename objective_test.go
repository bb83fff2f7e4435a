package pswarm

import "testing"

func TestCacheFunc(t *testing.T) {
	fc := NewFuncCounter(parabola())
	cf := NewCacheFunc(fc)

	v1 := cf.Objective([]float64{0.3})
	v2 := cf.Objective([]float64{0.3})
	if fc.Count != 1 {
		t.Errorf("expected 1 underlying evaluation, got %v", fc.Count)
	}
	if v1 != v2 {
		t.Errorf("cached value changed: %v != %v", v1, v2)
	}

	cf.Objective([]float64{0.4})
	if fc.Count != 2 {
		t.Errorf("expected 2 underlying evaluations, got %v", fc.Count)
	}
}

func TestCacheFuncBounds(t *testing.T) {
	fn := parabola()
	cf := NewCacheFunc(fn)
	low, up := cf.Bounds()
	if low[0] != fn.Low[0] || up[0] != fn.Up[0] {
		t.Errorf("bounds not passed through: got [%v,%v]", low[0], up[0])
	}
}
