// Public domain.

package kepprog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/soniakeys/kep/epoch"
	"github.com/soniakeys/kep/planet"
)

func testBodies(t *testing.T, names ...string) []*planet.Planet {
	t.Helper()
	c := &config{}
	for _, n := range names {
		c.Bodies = append(c.Bodies, bodyConfig{JPLLP: n})
	}
	ps, err := c.planets()
	if err != nil {
		t.Fatal(err)
	}
	return ps
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRunOrder(t *testing.T) {
	bodies := testBodies(t, "earth", "jupiter")
	opt := &outputOptions{units: unitTable["au"]}
	var in strings.Builder
	var want strings.Builder
	for i := 0; i < 200; i++ {
		ep := epoch.FromCalendar(2020, 1, 1, 0, 0, 0, 0).Add(float64(i) * 1.5)
		fmt.Fprintln(&in, ep)
		if i%50 == 0 {
			fmt.Fprintln(&in, "# comment")
			fmt.Fprintln(&in)
			fmt.Fprintln(&in, "not an epoch")
		}
		want.WriteString(evaluate(ep, bodies, opt))
	}
	var out bytes.Buffer
	if err := run(strings.NewReader(in.String()), &out, bodies, opt); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != want.String() {
		t.Fatalf("output out of order or incomplete:\n%.400s", got)
	}
	if n := strings.Count(out.String(), "\n"); n != 400 {
		t.Fatal(n, "lines")
	}
}

func TestRunHeadings(t *testing.T) {
	bodies := testBodies(t, "mars")
	opt := &outputOptions{headings: true, units: unitTable["km"]}
	var out bytes.Buffer
	if err := run(strings.NewReader("JD 2451545\n"), &out, bodies, opt); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatal(lines)
	}
	if lines[0] != versionString {
		t.Error(lines[0])
	}
	if !strings.Contains(lines[1], "x (km)") || !strings.Contains(lines[1], "vz (km/s)") {
		t.Error(lines[1])
	}
	if !strings.HasPrefix(lines[2], "2000-01-01T12:00:00.000000 mars ") {
		t.Error(lines[2])
	}
	if f := strings.Fields(lines[2]); len(f) != 8 {
		t.Error(len(f), "fields")
	}
}

func TestEvaluate(t *testing.T) {
	bodies := testBodies(t, "mars")
	opt := &outputOptions{units: unitTable["m"]}

	s := evaluate(epoch.FromCalendar(1700, 1, 1, 0, 0, 0, 0), bodies, opt)
	if !strings.Contains(s, " error: mars: ") {
		t.Error(s)
	}

	ep := epoch.FromCalendar(2010, 5, 6, 0, 0, 0, 0)
	st, err := bodies[0].Eph(ep)
	if err != nil {
		t.Fatal(err)
	}
	var x float64
	s = evaluate(ep, bodies, opt)
	if _, err := fmt.Sscanf(s[len(ep.String())+14:], "%g", &x); err != nil {
		t.Fatal(err, s)
	}
	if math.Abs(x-st.R[0]) > 1e-8*math.Abs(st.R[0]) {
		t.Error(x, st.R[0])
	}

	opt.elements = true
	s = evaluate(ep, bodies, opt)
	if f := strings.Fields(s); len(f) != 8 || f[1] != "mars" {
		t.Error(s)
	}
}

func TestRunReadError(t *testing.T) {
	boom := errors.New("boom")
	opt := &outputOptions{units: unitTable["au"]}
	err := run(iotest.ErrReader(boom), io.Discard, testBodies(t, "venus"), opt)
	if !errors.Is(err, boom) {
		t.Fatal(err)
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

// A write error ends run while epochs are still queued.  The splitter,
// dispatcher and workers must not be left blocked.
func TestRunWriteError(t *testing.T) {
	bodies := testBodies(t, "venus")
	opt := &outputOptions{units: unitTable["au"]}
	var in strings.Builder
	for i := 0; i < 2000; i++ {
		fmt.Fprintln(&in, 8000+i)
	}
	before := runtime.NumGoroutine()
	boom := errors.New("disk full")
	err := run(strings.NewReader(in.String()), failWriter{boom}, bodies, opt)
	if !errors.Is(err, boom) {
		t.Fatal(err)
	}
	for deadline := time.Now().Add(5 * time.Second); runtime.NumGoroutine() > before; {
		if time.Now().After(deadline) {
			t.Fatal(runtime.NumGoroutine()-before, "goroutines left running")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
