package pswarm

import (
	"bytes"
	"database/sql"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func testrng(seed int64) Rng { return rand.New(rand.NewSource(seed)) }

func parabola() SimpleFunc {
	return SimpleFunc{
		Low: []float64{0},
		Up:  []float64{1},
		F: func(v []float64) float64 {
			return -(v[0] - 0.7) * (v[0] - 0.7)
		},
	}
}

func bowl2d() SimpleFunc {
	return SimpleFunc{
		Low: []float64{-1, -1},
		Up:  []float64{1, 1},
		F: func(v []float64) float64 {
			return -(v[0]*v[0] + v[1]*v[1])
		},
	}
}

func constfn() SimpleFunc {
	return SimpleFunc{
		Low: []float64{0},
		Up:  []float64{1},
		F:   func(v []float64) float64 { return 1.0 },
	}
}

func TestValidateInitialBest(t *testing.T) {
	s := New(parabola(), DefaultParams(), WithRng(testrng(42)))
	s.Validate()

	max := math.Inf(-1)
	for _, p := range s.pop {
		if f := p.Fitness(s.fn); f > max {
			max = f
		}
	}
	if s.Value() != max {
		t.Errorf("global best: expected max initial fitness %v, got %v", max, s.Value())
	}
	if s.Done() {
		t.Error("end condition true immediately after validation")
	}
	if s.Progress() != 0 {
		t.Errorf("progress: expected 0, got %v", s.Progress())
	}
}

func TestValidateNoFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Validate did not panic without an objective function")
		}
	}()
	s := New(nil, DefaultParams())
	s.Validate()
}

func TestValidateIdempotent(t *testing.T) {
	s := New(parabola(), DefaultParams(), WithRng(testrng(42)))
	s.Validate()
	p0 := s.pop[0]
	s.Validate()
	if s.pop[0] != p0 {
		t.Error("second Validate re-seeded an already-valid swarm")
	}
}

func TestStepMonotonicInBounds(t *testing.T) {
	prm := DefaultParams()
	prm.NumParticles = 20
	prm.MaxIter = 50
	prm.MaxConstIter = 50
	s := New(parabola(), prm, WithRng(testrng(1)))

	low, up := s.fn.Bounds()
	prev := math.Inf(-1)
	for !s.Done() {
		s.Step()
		if s.Value() < prev {
			t.Fatalf("iter %v: global best decreased from %v to %v", s.Progress(), prev, s.Value())
		}
		prev = s.Value()

		for _, p := range s.pop {
			if p.OutOfBox() {
				continue
			}
			for i, x := range p.Pos {
				if x < low[i] || x > up[i] {
					t.Fatalf("iter %v: particle %v dim %v out of bounds: %v", s.Progress(), p.Id, i, x)
				}
			}
		}
	}
}

func TestEndConditionIterCap(t *testing.T) {
	prm := DefaultParams()
	prm.NumParticles = 5
	prm.MaxIter = 10
	prm.MaxConstIter = 10
	s := New(constfn(), prm, WithRng(testrng(2)))

	n := 0
	for !s.Done() {
		s.Step()
		n++
	}
	if n > prm.MaxIter {
		t.Errorf("ran %v iterations past the cap of %v", n, prm.MaxIter)
	}
	if s.Progress() != n {
		t.Errorf("progress: expected %v, got %v", n, s.Progress())
	}

	defer func() {
		if recover() == nil {
			t.Error("Step did not panic after the end condition was reached")
		}
	}()
	s.Step()
}

func TestEndConditionStagnation(t *testing.T) {
	// a constant objective never improves, so the stagnation cap fires
	prm := DefaultParams()
	prm.NumParticles = 5
	prm.MaxIter = 100
	prm.MaxConstIter = 5
	s := New(constfn(), prm, WithRng(testrng(2)))

	for !s.Done() {
		s.Step()
	}
	if s.Progress() != 5 {
		t.Errorf("expected stagnation after 5 iterations, stopped at %v", s.Progress())
	}
}

func TestReset(t *testing.T) {
	prm := DefaultParams()
	prm.NumParticles = 10
	s := New(parabola(), prm, WithRng(testrng(5)))
	for i := 0; i < 3; i++ {
		s.Step()
	}

	val := s.Value()
	p0 := s.pop[0]
	s.Reset()

	if s.Progress() != 0 {
		t.Errorf("progress after Reset: expected 0, got %v", s.Progress())
	}
	if s.Done() {
		t.Error("end condition true after Reset")
	}
	if s.pop[0] != p0 {
		t.Error("Reset discarded the particle population")
	}
	if s.Value() != val {
		t.Errorf("Reset changed the global best: %v != %v", s.Value(), val)
	}
}

func TestInvalidate(t *testing.T) {
	prm := DefaultParams()
	prm.NumParticles = 10
	s := New(parabola(), prm, WithRng(testrng(5)))
	s.Step()

	p0 := s.pop[0]
	s.Invalidate()
	s.Validate()

	if s.pop[0] == p0 {
		t.Error("Invalidate did not discard the particle population")
	}
	if s.Progress() != 0 {
		t.Errorf("progress after re-validation: expected 0, got %v", s.Progress())
	}
}

func TestSetParamsInvalidates(t *testing.T) {
	s := New(parabola(), DefaultParams(), WithRng(testrng(5)))
	s.Step()

	prm := DefaultParams()
	prm.NumParticles = 5
	s.SetParams(prm)
	s.Validate()

	if len(s.pop) != 5 {
		t.Errorf("population size: expected 5, got %v", len(s.pop))
	}
	if s.Progress() != 0 {
		t.Errorf("progress: expected 0, got %v", s.Progress())
	}
}

func TestOutOfBoxExcluded(t *testing.T) {
	prm := DefaultParams()
	prm.NumParticles = 10
	prm.MaxV = 1.0
	prm.CGlobal = 2.0
	prm.MaxIter = 30
	prm.MaxConstIter = 30
	prm.Reflect = false
	s := New(parabola(), prm, WithRng(testrng(9)))

	outSeen := false
	prev := math.Inf(-1)
	for !s.Done() {
		s.Step()
		for _, p := range s.pop {
			if p.OutOfBox() {
				outSeen = true
			}
		}
		if math.IsNaN(s.Value()) || s.Value() < prev {
			t.Fatalf("iter %v: global best corrupted: %v (prev %v)", s.Progress(), s.Value(), prev)
		}
		prev = s.Value()
	}

	if !outSeen {
		t.Error("no particle ever left the box - test exercised nothing")
	}
}

func TestConvergesParabola(t *testing.T) {
	prm := DefaultParams()
	prm.NumParticles = 20
	prm.MaxIter = 100
	prm.MaxConstIter = 100
	s := New(parabola(), prm, WithRng(testrng(7)))

	for !s.Done() {
		s.Step()
	}

	opt := s.Optimum()
	if math.Abs(opt[0]-0.7) > 0.01 {
		t.Errorf("optimum: expected within 0.01 of 0.7, got %v (val %v)", opt[0], s.Value())
	} else {
		t.Logf("[pass] %v iters: optimum 0.7, got %v (val %v)", s.Progress(), opt[0], s.Value())
	}
}

func TestWriteState(t *testing.T) {
	prm := DefaultParams()
	prm.NumParticles = 3
	s := New(bowl2d(), prm, WithRng(testrng(11)))
	s.Step()

	var buf bytes.Buffer
	if err := s.WriteState(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", len(lines))
	}
	for i, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			t.Fatalf("line %v: expected 4 tab-separated fields, got %v: %q", i, len(fields), line)
		}
		if fields[0] != strconv.Itoa(i) {
			t.Errorf("line %v: index field is %q", i, fields[0])
		}

		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			t.Fatalf("line %v: bad score field %q: %v", i, fields[1], err)
		}
		if want := -s.pop[i].Fitness(s.fn); score != want {
			t.Errorf("line %v: score: expected %v (negated fitness), got %v", i, want, score)
		}

		for j := 0; j < 2; j++ {
			x, err := strconv.ParseFloat(fields[2+j], 64)
			if err != nil {
				t.Fatalf("line %v: bad position field %q: %v", i, fields[2+j], err)
			}
			if x != s.pop[i].Pos[j] {
				t.Errorf("line %v: position dim %v: expected %v, got %v", i, j, s.pop[i].Pos[j], x)
			}
		}
	}
}

func TestDb(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	prm := DefaultParams()
	prm.NumParticles = 5
	prm.MaxIter = 10
	prm.MaxConstIter = 10
	s := New(parabola(), prm, WithRng(testrng(3)), DB(db))

	for !s.Done() {
		s.Step()
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblParticles).Scan(&count)
	if err != nil {
		t.Errorf("particles table query failed: %v", err)
	} else if count != 5*s.Progress() {
		t.Errorf("particles table: expected %v rows, got %v", 5*s.Progress(), count)
	}

	count = 0
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblParticlesBest).Scan(&count)
	if err != nil {
		t.Errorf("particle bests table query failed: %v", err)
	} else if count == 0 {
		t.Errorf("particle bests table has no rows")
	}

	count = 0
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblBest).Scan(&count)
	if err != nil {
		t.Errorf("best table query failed: %v", err)
	} else if count != s.Progress() {
		t.Errorf("best table: expected %v rows, got %v", s.Progress(), count)
	}
}
