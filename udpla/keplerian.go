// Public domain.

package udpla

import (
	"fmt"
	"math"
	"strings"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/kep/anomaly"
	"github.com/soniakeys/kep/elements"
	"github.com/soniakeys/kep/epoch"
	"github.com/soniakeys/kep/planet"
)

// BodyParams are optional physical parameters of a body.  Nil *BodyParams
// arguments mean name "Unknown" and -1 for each number.
type BodyParams struct {
	Name       string
	MuSelf     float64
	Radius     float64
	SafeRadius float64
}

func (bp *BodyParams) orDefault() BodyParams {
	if bp == nil {
		return BodyParams{Name: "Unknown", MuSelf: -1, Radius: -1, SafeRadius: -1}
	}
	return *bp
}

// Keplerian propagates a body on a fixed conic around a central body.
// Values are immutable after construction and safe for concurrent use.
type Keplerian struct {
	bp    BodyParams
	ref   epoch.Epoch
	mu    float64
	el    [6]float64 // KepF at ref
	r, v  [3]float64 // state at ref
	anom0 float64    // mean anomaly, hyperbolic mean anomaly if e > 1, at ref
	n     float64    // mean motion, rad/s
}

// NewKeplerian constructs a Keplerian from elements of type t at epoch ref.
// mu is the gravitational parameter of the central body.
func NewKeplerian(ref epoch.Epoch, el [6]float64, t elements.Type, mu float64,
	bp *BodyParams) (*Keplerian, error) {
	r, v, err := elements.ToState(el, t, mu)
	if err != nil {
		return nil, err
	}
	kep, err := elements.IC2Par(r, v, mu)
	if err != nil {
		return nil, err
	}
	k := &Keplerian{bp: bp.orDefault(), ref: ref, mu: mu, el: kep, r: r, v: v}
	a, e, f := kep[0], kep[1], kep[5]
	k.n = math.Sqrt(mu / math.Abs(a*a*a))
	if e < 1 {
		k.anom0, err = anomaly.F2M(f, e)
	} else {
		k.anom0, err = anomaly.F2N(f, e)
	}
	if err != nil {
		return nil, err
	}
	return k, nil
}

// NewKeplerianPosVel constructs a Keplerian from a state at epoch ref.
func NewKeplerianPosVel(ref epoch.Epoch, r, v [3]float64, mu float64,
	bp *BodyParams) (*Keplerian, error) {
	return NewKeplerian(ref, [6]float64{r[0], r[1], r[2], v[0], v[1], v[2]},
		elements.PosVel, mu, bp)
}

// kepF returns KepF elements at ep.
func (k *Keplerian) kepF(ep epoch.Epoch) (el [6]float64, err error) {
	el = k.el
	e := el[1]
	M := k.anom0 + k.n*ep.Sub(k.ref)*DaySec
	if e < 1 {
		el[5], err = anomaly.M2F(unit.Angle(M).Mod1().Rad(), e)
	} else {
		el[5], err = anomaly.N2F(M, e)
	}
	return
}

// Eph returns the state at ep.
func (k *Keplerian) Eph(ep epoch.Epoch) (planet.State, error) {
	if ep == k.ref {
		return planet.State{R: k.r, V: k.v}, nil
	}
	el, err := k.kepF(ep)
	if err != nil {
		return planet.State{}, err
	}
	r, v, err := elements.Par2IC(el, k.mu)
	return planet.State{R: r, V: v}, err
}

// Elements returns elements of type t at ep.
func (k *Keplerian) Elements(ep epoch.Epoch, t elements.Type) ([6]float64, error) {
	el, err := k.kepF(ep)
	if err != nil {
		return el, err
	}
	return elements.Convert(el, elements.KepF, t, k.mu)
}

// Period returns the orbital period in seconds.  It is the same at every
// epoch.  Hyperbolic orbits return an error wrapping anomaly.ErrDomain.
func (k *Keplerian) Period(epoch.Epoch) (float64, error) {
	if k.el[1] >= 1 {
		return 0, fmt.Errorf("%w: hyperbolic orbit, e = %g", anomaly.ErrDomain, k.el[1])
	}
	return 2 * math.Pi / k.n, nil
}

func (k *Keplerian) Name() string          { return k.bp.Name }
func (k *Keplerian) MuCentralBody() float64 { return k.mu }
func (k *Keplerian) MuSelf() float64        { return k.bp.MuSelf }
func (k *Keplerian) Radius() float64        { return k.bp.Radius }
func (k *Keplerian) SafeRadius() float64    { return k.bp.SafeRadius }

// RefEpoch returns the epoch of the elements given to the constructor.
func (k *Keplerian) RefEpoch() epoch.Epoch { return k.ref }

// ExtraInfo lists the elements at the reference epoch.
func (k *Keplerian) ExtraInfo() string {
	a, e := k.el[0], k.el[1]
	var b strings.Builder
	fmt.Fprintln(&b, "Keplerian planet elements:")
	fmt.Fprintf(&b, "Semi major axis (m): %.16g\n", a)
	fmt.Fprintf(&b, "Semi major axis (AU): %.16g\n", a/AU)
	fmt.Fprintf(&b, "Eccentricity: %.16g\n", e)
	fmt.Fprintf(&b, "Inclination: %.3d\n", sexa.FmtAngle(unit.Angle(k.el[2])))
	fmt.Fprintf(&b, "Longitude of ascending node: %.3d\n", sexa.FmtAngle(unit.Angle(k.el[3])))
	fmt.Fprintf(&b, "Argument of pericenter: %.3d\n", sexa.FmtAngle(unit.Angle(k.el[4])))
	fmt.Fprintf(&b, "True anomaly: %.3d\n", sexa.FmtAngle(unit.Angle(k.el[5])))
	if e < 1 {
		fmt.Fprintf(&b, "Mean anomaly: %.3d\n", sexa.FmtAngle(unit.Angle(k.anom0)))
		fmt.Fprintf(&b, "Period (days): %.16g\n", 2*math.Pi/k.n/DaySec)
	} else {
		fmt.Fprintf(&b, "Hyperbolic mean anomaly: %.16g\n", k.anom0)
	}
	fmt.Fprintf(&b, "Reference epoch (MJD2000): %.16g\n", k.ref.MJD2000())
	fmt.Fprintf(&b, "Reference epoch: %s\n", k.ref)
	fmt.Fprintf(&b, "r at ref: %v\n", k.r)
	fmt.Fprintf(&b, "v at ref: %v", k.v)
	return b.String()
}
