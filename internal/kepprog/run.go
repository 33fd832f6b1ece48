// Public domain.

package kepprog

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	"github.com/soniakeys/kep/epoch"
	"github.com/soniakeys/kep/planet"
)

type epochSeq struct {
	ep  epoch.Epoch
	rch chan string
}

// run evaluates bodies at each epoch read from r and writes results to w
// in input order.  An error reading r or writing w stops output and is
// returned.  Goroutines started by run exit once it returns, except that
// a splitter blocked in a read of r exits when the read completes.
func run(r io.Reader, w io.Writer, bodies []*planet.Planet, opt *outputOptions) error {
	done := make(chan struct{})
	defer close(done)

	// epCh is fed by splitter.  a read error goes to errCh and ends input.
	epCh := make(chan epoch.Epoch)
	errCh := make(chan error)
	go splitter(r, epCh, errCh, done)

	// prCh holds result channels in submission order.  it must buffer at
	// least maxWorkers so a fast worker can drop off a result without
	// waiting on workers ahead of it.
	maxWorkers := runtime.GOMAXPROCS(0)
	prCh := make(chan chan string, maxWorkers*2)
	jobs := make(chan *epochSeq)

	// dispatcher.  each epoch gets a result channel, a ticket for picking
	// up the result.  the job goes to a worker and the ticket to the
	// print queue.
	go func() {
		defer close(prCh)
		defer close(jobs)
		for ep := range epCh {
			rch := make(chan string, 1)
			select {
			case jobs <- &epochSeq{ep, rch}:
			case <-done:
				return
			}
			select {
			case prCh <- rch:
			case <-done:
				return
			}
		}
	}()

	// workers are started as jobs arrive, up to maxWorkers.
	go func() {
		for n := 0; n < maxWorkers; n++ {
			j, ok := <-jobs
			if !ok {
				return
			}
			go worker(j, jobs, bodies, opt)
		}
	}()

	printHeadings(w, bodies, opt)

	for {
		select {
		case err := <-errCh:
			return err
		case rch, ok := <-prCh:
			if !ok {
				return nil
			}
			select {
			case err := <-errCh:
				return err
			case s := <-rch:
				if _, err := io.WriteString(w, s); err != nil {
					return err
				}
			}
		}
	}
}

// splitter sends one epoch per input line.  Blank lines and lines
// starting with # are skipped, unparseable lines are logged and skipped.
// It stops early when done is closed.
func splitter(r io.Reader, epCh chan epoch.Epoch, errCh chan error, done chan struct{}) {
	defer close(epCh)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		l := strings.TrimSpace(sc.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		ep, err := parseEpoch(l)
		if err != nil {
			log.Printf("line %d: %v", n, err)
			continue
		}
		select {
		case epCh <- ep:
		case <-done:
			return
		}
	}
	if err := sc.Err(); err != nil {
		select {
		case errCh <- err:
		case <-done:
		}
	}
}

// worker evaluates j, then further jobs until jobs is closed.
func worker(j *epochSeq, jobs chan *epochSeq, bodies []*planet.Planet, opt *outputOptions) {
	for ok := true; ok; j, ok = <-jobs {
		j.rch <- evaluate(j.ep, bodies, opt) // buffered
	}
}

// evaluate formats one line per body.  Provider errors are reported in
// place of the values.
func evaluate(ep epoch.Epoch, bodies []*planet.Planet, opt *outputOptions) string {
	var b strings.Builder
	for _, p := range bodies {
		fmt.Fprintf(&b, "%s %-12s", ep, p.Name())
		var v [6]float64
		var err error
		if opt.elements {
			v, err = p.Elements(ep, opt.elType)
		} else {
			var s planet.State
			s, err = p.Eph(ep)
			for i := 0; i < 3; i++ {
				v[i] = s.R[i] / opt.units.r
				v[i+3] = s.V[i] / opt.units.v
			}
		}
		if err != nil {
			fmt.Fprintf(&b, " error: %v\n", err)
			continue
		}
		for _, x := range v {
			fmt.Fprintf(&b, " %16.9g", x)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func printHeadings(w io.Writer, bodies []*planet.Planet, opt *outputOptions) {
	if !opt.headings {
		return
	}
	fmt.Fprintln(w, versionString)
	fmt.Fprintf(w, "%-26s %-12s", "Epoch (UTC)", "Body")
	if opt.elements {
		fmt.Fprintf(w, " %s elements\n", opt.elType)
		return
	}
	r, v := opt.units.rvLabels[0], opt.units.rvLabels[1]
	for _, c := range []string{"x", "y", "z"} {
		fmt.Fprintf(w, " %16s", c+" ("+r+")")
	}
	for _, c := range []string{"vx", "vy", "vz"} {
		fmt.Fprintf(w, " %16s", c+" ("+v+")")
	}
	fmt.Fprintln(w)
}
