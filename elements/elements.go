// Public domain.

// Package elements converts between Cartesian state vectors and osculating
// orbital element sets.
//
// Element sets are positional six-tuples.  Angles are in radians, lengths
// and the gravitational parameter mu in any consistent units.  Hyperbolic
// orbits carry a negative semimajor axis.  Parabolic orbits, e == 1, have no
// finite semimajor axis and are rejected.
package elements

import (
	"fmt"
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/kep/anomaly"
)

// Type identifies the layout of an element set.
type Type int

const (
	KepF   Type = iota // a, e, i, W, w, f   true anomaly
	KepM               // a, e, i, W, w, M   mean anomaly, N if hyperbolic
	Mee                // p, f, g, h, k, L   modified equinoctial
	MeeR               // p, f, g, h, k, L   retrograde modified equinoctial
	PosVel             // x, y, z, vx, vy, vz
)

var typeNames = [...]string{"KEP_F", "KEP_M", "MEE", "MEE_R", "POSVEL"}

func (t Type) valid() bool { return t >= 0 && int(t) < len(typeNames) }

func (t Type) String() string {
	if !t.valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func unknownType(t Type) error {
	return fmt.Errorf("elements: unknown element type %d", int(t))
}

// ParseType parses the names returned by Type.String, case sensitive.
func ParseType(s string) (Type, error) {
	for t, n := range typeNames {
		if n == s {
			return Type(t), nil
		}
	}
	return 0, fmt.Errorf("elements: unknown element type %q", s)
}

func badInput(what string, v float64) error {
	return fmt.Errorf("%w: elements: %s (got %g)", anomaly.ErrDomain, what, v)
}

func checkMu(mu float64) error {
	if !(mu > 0) || math.IsInf(mu, 1) {
		return badInput("mu must be positive", mu)
	}
	return nil
}

func cart(a [3]float64) coord.Cart { return coord.Cart{X: a[0], Y: a[1], Z: a[2]} }

func arr(c *coord.Cart) [3]float64 { return [3]float64{c.X, c.Y, c.Z} }

// IC2Par computes Keplerian elements, KepF layout, from position r and
// velocity v.  W and w are in [0, 2π), f in [-π, π].  For equatorial orbits
// the node is taken on the x axis, for circular orbits the pericenter is
// taken at the node.
func IC2Par(r, v [3]float64, mu float64) (el [6]float64, err error) {
	if err = checkMu(mu); err != nil {
		return
	}
	rc, vc := cart(r), cart(v)
	R := math.Sqrt(rc.Square())
	if !(R > 0) {
		return el, badInput("zero position vector", R)
	}
	var h coord.Cart
	h.Cross(&rc, &vc)
	hm := math.Sqrt(h.Square())
	if !(hm > 0) {
		return el, badInput("rectilinear orbit, zero angular momentum", hm)
	}
	// eccentricity vector ((v² - mu/R) r - (r·v) v) / mu
	rv := rc.Dot(&vc)
	var ev, t coord.Cart
	ev.MulScalar(&rc, vc.Square()-mu/R)
	t.MulScalar(&vc, rv)
	ev.Sub(&ev, &t)
	ev.MulScalar(&ev, 1/mu)
	e := math.Sqrt(ev.Square())
	if e == 1 {
		return el, badInput("parabolic orbit", e)
	}
	a := 1 / (2/R - vc.Square()/mu)

	// in-plane basis: p toward the ascending node, q = h × p
	var hu, p, q coord.Cart
	hu.MulScalar(&h, 1/hm)
	p = coord.Cart{X: -h.Y, Y: h.X}
	if pm := math.Hypot(p.X, p.Y); pm > 1e-15*hm {
		p.MulScalar(&p, 1/pm)
	} else {
		p = coord.Cart{X: 1}
	}
	q.Cross(&hu, &p)

	i := math.Acos(math.Max(-1, math.Min(1, hu.Z)))
	W := unit.Angle(math.Atan2(p.Y, p.X)).Mod1().Rad()
	var w, u float64 // u, argument of latitude
	u = math.Atan2(rc.Dot(&q), rc.Dot(&p))
	if e > 1e-15 {
		w = math.Atan2(ev.Dot(&q), ev.Dot(&p))
	}
	f := math.Remainder(u-w, 2*math.Pi)
	w = unit.Angle(w).Mod1().Rad()
	return [6]float64{a, e, i, W, w, f}, nil
}

// Par2IC computes position and velocity from Keplerian elements in KepF
// layout.
func Par2IC(el [6]float64, mu float64) (r, v [3]float64, err error) {
	if err = checkMu(mu); err != nil {
		return
	}
	a, e, i, W, w, f := el[0], el[1], el[2], el[3], el[4], el[5]
	if !(e >= 0) || e == 1 || math.IsInf(e, 1) {
		return r, v, badInput("eccentricity", e)
	}
	p := a * (1 - e*e)
	if !(p > 0) || math.IsInf(p, 1) {
		return r, v, badInput("semilatus rectum, sign of a must match e", p)
	}
	sf, cf := math.Sincos(f)
	den := 1 + e*cf
	if !(den > 0) {
		return r, v, badInput("true anomaly beyond asymptote", f)
	}
	rm := p / den
	vs := math.Sqrt(mu / p)
	// perifocal frame
	X, Y := rm*cf, rm*sf
	VX, VY := -vs*sf, vs*(e+cf)

	sW, cW := math.Sincos(W)
	sw, cw := math.Sincos(w)
	si, ci := math.Sincos(i)
	pp := coord.Cart{X: cW*cw - sW*sw*ci, Y: sW*cw + cW*sw*ci, Z: sw * si}
	qq := coord.Cart{X: -cW*sw - sW*cw*ci, Y: -sW*sw + cW*cw*ci, Z: cw * si}

	var rc, vc, t coord.Cart
	rc.MulScalar(&pp, X)
	t.MulScalar(&qq, Y)
	rc.Add(&rc, &t)
	vc.MulScalar(&pp, VX)
	t.MulScalar(&qq, VY)
	vc.Add(&vc, &t)
	return arr(&rc), arr(&vc), nil
}

// Period computes the orbital period from the energy of a state.  Unbound
// states return an error wrapping anomaly.ErrDomain.
func Period(r, v [3]float64, mu float64) (float64, error) {
	if err := checkMu(mu); err != nil {
		return 0, err
	}
	rc, vc := cart(r), cart(v)
	R := math.Sqrt(rc.Square())
	if !(R > 0) {
		return 0, badInput("zero position vector", R)
	}
	en := vc.Square()/2 - mu/R
	if !(en < 0) {
		return 0, badInput("orbit is not bound, energy", en)
	}
	a := -mu / (2 * en)
	return 2 * math.Pi * math.Sqrt(a*a*a/mu), nil
}
