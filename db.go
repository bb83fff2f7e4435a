package pswarm

import (
	"database/sql"
	"fmt"
)

const (
	// TblParticles is the name of the sql database table that contains
	// positions and fitness values for all particles at each iteration.
	TblParticles = "swarmparticles"
	// TblParticlesBest is the name of the sql database table that contains
	// each particle's personal best position at each iteration.
	TblParticlesBest = "swarmparticlesbest"
	// TblBest is the name of the sql database table that contains the best
	// position for the entire swarm at each iteration.
	TblBest = "swarmbest"
)

// DB records per-iteration particle state into db.  Particles outside the
// box at the end of an iteration have their fitness recorded as NULL.
func DB(db *sql.DB) Option {
	return func(s *Swarm) { s.db = db }
}

func (s *Swarm) initdb() {
	if s.db == nil {
		return
	}

	q := "CREATE TABLE IF NOT EXISTS " + TblParticles + " (particle INTEGER, iter INTEGER, val REAL"
	q += s.xdbsql("define")
	q += ");"
	_, err := s.db.Exec(q)
	panicif(err)

	q = "CREATE TABLE IF NOT EXISTS " + TblParticlesBest + " (particle INTEGER, iter INTEGER, best REAL"
	q += s.xdbsql("define")
	q += ");"
	_, err = s.db.Exec(q)
	panicif(err)

	q = "CREATE TABLE IF NOT EXISTS " + TblBest + " (iter INTEGER, val REAL"
	q += s.xdbsql("define")
	q += ");"
	_, err = s.db.Exec(q)
	panicif(err)
}

func (s *Swarm) xdbsql(op string) string {
	q := ""
	for i := range s.pop[0].Pos {
		switch op {
		case "?":
			q += ",?"
		case "define":
			q += fmt.Sprintf(",x%v REAL", i)
		case "x":
			q += fmt.Sprintf(",x%v", i)
		default:
			panic("invalid db op " + op)
		}
	}
	return q
}

func pos2iface(pos []float64) []interface{} {
	iface := []interface{}{}
	for _, x := range pos {
		iface = append(iface, x)
	}
	return iface
}

func (s *Swarm) record() {
	if s.db == nil {
		return
	}

	tx, err := s.db.Begin()
	panicif(err)
	defer tx.Commit()

	q0 := "INSERT INTO " + TblParticles + " (particle,iter,val" + s.xdbsql("x") + ") VALUES (?,?,?" + s.xdbsql("?") + ");"
	q1 := "INSERT INTO " + TblParticlesBest + " (particle,iter,best" + s.xdbsql("x") + ") VALUES (?,?,?" + s.xdbsql("?") + ");"
	for _, p := range s.pop {
		var val interface{}
		if !p.OutOfBox() {
			val = p.Fitness(s.fn)
		}
		args := []interface{}{p.Id, s.iter, val}
		args = append(args, pos2iface(p.Pos)...)
		_, err := tx.Exec(q0, args...)
		panicif(err)

		args = []interface{}{p.Id, s.iter, p.best.Val}
		args = append(args, pos2iface(p.best.Pos())...)
		_, err = tx.Exec(q1, args...)
		panicif(err)
	}

	q2 := "INSERT INTO " + TblBest + " (iter,val" + s.xdbsql("x") + ") VALUES (?,?" + s.xdbsql("?") + ");"
	args := []interface{}{s.iter, s.gbest.Val}
	args = append(args, pos2iface(s.gbest.Pos())...)
	_, err = tx.Exec(q2, args...)
	panicif(err)
}

func panicif(err error) {
	if err != nil {
		panic(err.Error())
	}
}
