// Public domain.

package udpla

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"golang.org/x/sync/errgroup"

	"github.com/soniakeys/kep/epoch"
	"github.com/soniakeys/kep/internal/sgp4"
	"github.com/soniakeys/kep/planet"
)

// TLE propagates a two line element set with SGP4, WGS72 constants.
// States are in the TEME frame of the element set.
type TLE struct {
	line1, line2 string
	satnum       string
	ref          epoch.Epoch
	prop         *sgp4.Propagator
}

// sgp4 epochs count days from 1949 December 31 0h.
var sgp4Epoch0 = epoch.FromCalendar(1949, 12, 31, 0, 0, 0, 0)

// NewTLE parses and initializes an element set.  Lines are checked for
// length, line number and matching catalog numbers, and every numeric
// field must parse.  Errors wrap ErrTLEFormat or ErrPropagation.
func NewTLE(line1, line2 string) (*TLE, error) {
	line1 = strings.TrimRight(line1, " \r\n")
	line2 = strings.TrimRight(line2, " \r\n")
	if err := checkTLE(line1, line2); err != nil {
		return nil, err
	}
	ref, err := tleEpoch(line1[18:32])
	if err != nil {
		return nil, err
	}
	el, err := tleElements(line1, line2)
	if err != nil {
		return nil, err
	}
	el.Epoch = ref.Sub(sgp4Epoch0)
	prop, err := sgp4.New(el)
	if err != nil {
		return nil, fmt.Errorf("%w: sgp4 init: %v", ErrPropagation, err)
	}
	return &TLE{
		line1:  line1,
		line2:  line2,
		satnum: strings.TrimSpace(line1[2:7]),
		ref:    ref,
		prop:   prop,
	}, nil
}

func checkTLE(line1, line2 string) error {
	for i, l := range []string{line1, line2} {
		if len(l) != 69 {
			return fmt.Errorf("%w: line %d length %d, want 69", ErrTLEFormat, i+1, len(l))
		}
		if l[0] != byte('1'+i) || l[1] != ' ' {
			return fmt.Errorf("%w: line %d starts %q", ErrTLEFormat, i+1, l[:2])
		}
	}
	if line1[2:7] != line2[2:7] {
		return fmt.Errorf("%w: catalog numbers %q and %q differ",
			ErrTLEFormat, line1[2:7], line2[2:7])
	}
	return nil
}

// tleEpoch parses the YYDDD.DDDDDDDD epoch field of line 1.  The eight
// digit day fraction is a whole number of 864 microsecond units, so the
// result is exact.
func tleEpoch(f string) (epoch.Epoch, error) {
	bad := fmt.Errorf("%w: epoch %q", ErrTLEFormat, f)
	yy, err := strconv.Atoi(strings.TrimLeft(f[:2], " "))
	if err != nil || yy < 0 {
		return 0, bad
	}
	ds, frac, _ := strings.Cut(f[2:], ".")
	doy, err := strconv.Atoi(strings.TrimLeft(ds, " "))
	if err != nil || doy < 1 || doy > 366 || len(frac) > 8 {
		return 0, bad
	}
	var us int64
	if frac > "" {
		n, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, bad
		}
		us = int64(n) * 864
		for i := len(frac); i < 8; i++ {
			us *= 10
		}
	}
	y := 1900 + yy
	if yy < 57 {
		y += 100
	}
	return epoch.FromCalendar(y, 1, 1, 0, 0, 0, 0).
		Add(float64(doy - 1)).
		AddDuration(time.Duration(us) * time.Microsecond), nil
}

// tleField parses a blank padded decimal field.
func tleField(line string, lo, hi int, name string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(line[lo:hi]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrTLEFormat, name, line[lo:hi])
	}
	return x, nil
}

// tleExpField parses an assumed decimal point field with exponent, as
// " 12345-3" for .12345e-3.
func tleExpField(line string, lo int, name string) (float64, error) {
	f := line[lo : lo+8]
	sign := strings.TrimSpace(f[:1])
	x, err := strconv.ParseFloat(sign+"."+f[1:6]+"e"+strings.TrimSpace(f[6:]), 64)
	if err != nil || strings.Trim(f[1:6], "0123456789") > "" {
		return 0, fmt.Errorf("%w: %s %q", ErrTLEFormat, name, f)
	}
	return x, nil
}

// tleElements parses mean elements.  First and second derivatives of
// mean motion are checked but not used by SGP4.
func tleElements(line1, line2 string) (el sgp4.Elements, err error) {
	if _, err = tleField(line1, 33, 43, "ndot"); err != nil {
		return
	}
	if _, err = tleExpField(line1, 44, "nddot"); err != nil {
		return
	}
	if el.Bstar, err = tleExpField(line1, 53, "bstar"); err != nil {
		return
	}
	var deg [5]float64
	for i, c := range []struct {
		lo, hi int
		name   string
	}{{8, 16, "inclination"}, {17, 25, "node"}, {34, 42, "perigee"},
		{43, 51, "mean anomaly"}, {52, 63, "mean motion"}} {
		if deg[i], err = tleField(line2, c.lo, c.hi, c.name); err != nil {
			return
		}
	}
	e := line2[26:33]
	if strings.Trim(e, "0123456789") > "" {
		return el, fmt.Errorf("%w: eccentricity %q", ErrTLEFormat, e)
	}
	if el.Ecc, err = tleField("."+e, 0, 8, "eccentricity"); err != nil {
		return
	}
	const d2r = math.Pi / 180
	el.Incl = deg[0] * d2r
	el.Node = deg[1] * d2r
	el.ArgP = deg[2] * d2r
	el.M = deg[3] * d2r
	el.N = deg[4] * 2 * math.Pi / 1440 // rev/day to rad/min
	return el, nil
}

// RefEpoch returns the epoch of the element set.
func (t *TLE) RefEpoch() epoch.Epoch { return t.ref }

// propagate returns TEME position and velocity at ep, km and km/s.
func (t *TLE) propagate(ep epoch.Epoch) (r, v [3]float64, err error) {
	r, v, err = t.prop.Propagate(float64(ep-t.ref) / 60e6)
	if err == nil && !(finite(r) && finite(v)) {
		err = errors.New("non-finite state")
	}
	if err != nil {
		err = fmt.Errorf("%w: %s at %s: %v", ErrPropagation, t.satnum, ep, err)
	}
	return
}

func finite(v [3]float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Eph returns the state at ep in metres and metres per second.
func (t *TLE) Eph(ep epoch.Epoch) (planet.State, error) {
	r, v, err := t.propagate(ep)
	if err != nil {
		return planet.State{}, err
	}
	return planet.State{
		R: [3]float64{r[0] * 1e3, r[1] * 1e3, r[2] * 1e3},
		V: [3]float64{v[0] * 1e3, v[1] * 1e3, v[2] * 1e3},
	}, nil
}

// EphV evaluates epochs concurrently.  The result is in the order of eps.
func (t *TLE) EphV(eps []epoch.Epoch) ([]planet.State, error) {
	out := make([]planet.State, len(eps))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ep := range eps {
		g.Go(func() (err error) {
			out[i], err = t.Eph(ep)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ECEF returns the earth fixed position at ep, in metres.
func (t *TLE) ECEF(ep epoch.Epoch) ([3]float64, error) {
	r, _, err := t.propagate(ep)
	if err != nil {
		return [3]float64{}, err
	}
	gmst := satellite.ThetaG_JD(ep.JD())
	p := satellite.ECIToECEF(satellite.Vector3{X: r[0], Y: r[1], Z: r[2]}, gmst)
	return [3]float64{p.X * 1e3, p.Y * 1e3, p.Z * 1e3}, nil
}

func (t *TLE) Name() string           { return t.satnum + " - SGP4" }
func (t *TLE) MuCentralBody() float64 { return MuEarth }
func (t *TLE) Radius() float64        { return EarthRad }

func (t *TLE) ExtraInfo() string {
	return "TLE line1: " + t.line1 + "\nTLE line2: " + t.line2
}
