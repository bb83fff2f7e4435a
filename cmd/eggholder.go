// Command eggholder runs repeated swarm searches of the Eggholder benchmark
// function, reporting the success rate and optionally recording per-iteration
// particle state into a sqlite database.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gonum.org/v1/gonum/floats"

	pswarm "github.com/rwcarlsen/gopswarm"
	"github.com/rwcarlsen/gopswarm/bench"
)

var (
	trials = flag.Int("trials", 20, "number of independent swarm runs")
	dbpath = flag.String("db", "", "sqlite file for recording particle state (empty disables)")
	state  = flag.Bool("state", false, "dump final particle state to stdout")
)

func main() {
	flag.Parse()
	pswarm.Rand = rand.New(rand.NewSource(time.Now().Unix()))

	fn := bench.Eggholder{}
	optimum := fn.Optima()[0]

	var db *sql.DB
	if *dbpath != "" {
		os.Remove(*dbpath)
		var err error
		db, err = sql.Open("sqlite3", *dbpath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
	}

	prm := pswarm.DefaultParams()
	prm.NumParticles = 50
	prm.MaxV = 0.1
	prm.MaxIter = 2000
	prm.MaxConstIter = 200

	var opts []pswarm.Option
	if db != nil {
		opts = append(opts, pswarm.DB(db))
	}

	nsuccess := 0
	var last *pswarm.Swarm
	for i := 0; i < *trials; i++ {
		s := pswarm.New(fn, prm, opts...)
		best, niter, ok := bench.Benchmark(s, fn, .01)
		dist := floats.Distance(best.Pos(), optimum.Pos(), 2)
		if ok {
			nsuccess++
			fmt.Printf("trial %v: converged after %v iters (dist to optimum %.4g)\n", i, niter, dist)
		} else {
			fmt.Printf("trial %v: stopped at %v after %v iters (dist to optimum %.4g)\n", i, best.Val, niter, dist)
		}
		last = s
	}
	fmt.Printf("%v%% succeeded\n", float64(nsuccess)/float64(*trials)*100)

	if *state && last != nil {
		if err := last.WriteState(os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
}
