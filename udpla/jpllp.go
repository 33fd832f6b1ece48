// Public domain.

package udpla

import (
	"fmt"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/kep/anomaly"
	"github.com/soniakeys/kep/elements"
	"github.com/soniakeys/kep/epoch"
	"github.com/soniakeys/kep/planet"
)

// Keplerian elements and rates from JPL's "Approximate Positions of the
// Planets", table 1, valid 1800 AD to 2050 AD.
//
// a (AU), e, i (deg), mean longitude L (deg), longitude of perihelion
// (deg), longitude of ascending node (deg); rates per Julian century.
type lpData struct {
	el, rate   [6]float64
	radius     float64 // m
	safeFactor float64 // safe radius in radii
	muSelf     float64
}

var lpPlanets = map[string]*lpData{
	"mercury": {
		[6]float64{0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593},
		[6]float64{0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081},
		2440000, 1.1, 22032e9,
	},
	"venus": {
		[6]float64{0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255},
		[6]float64{0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418},
		6052000, 1.1, 324859e9,
	},
	"earth": { // earth-moon barycenter
		[6]float64{1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0},
		[6]float64{0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0},
		6378000, 1.1, 398600.4418e9,
	},
	"mars": {
		[6]float64{1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891},
		[6]float64{0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343},
		3397000, 1.1, 42828e9,
	},
	"jupiter": {
		[6]float64{5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909},
		[6]float64{-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106},
		71492000, 9, 126686534e9,
	},
	"saturn": {
		[6]float64{9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448},
		[6]float64{-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794},
		60330000, 1.1, 37931187e9,
	},
	"uranus": {
		[6]float64{19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503},
		[6]float64{-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589},
		25362000, 1.1, 5793939e9,
	},
	"neptune": {
		[6]float64{30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574},
		[6]float64{0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664},
		24622000, 1.1, 6836529e9,
	},
}

// validity of the table, [lpFirst, lpLast)
var (
	lpFirst = epoch.FromCalendar(1800, 1, 1, 0, 0, 0, 0)
	lpLast  = epoch.FromCalendar(2051, 1, 1, 0, 0, 0, 0)
)

// JPLLP gives heliocentric positions of a major planet in the ecliptic
// J2000 frame from linearly varying elements.  Accuracy is of order
// arc minutes.
type JPLLP struct {
	name string
	d    *lpData
}

// NewJPLLP returns the provider for a planet, mercury through neptune,
// case insensitive.
func NewJPLLP(name string) (*JPLLP, error) {
	d, ok := lpPlanets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanet, name)
	}
	return &JPLLP{name: name, d: d}, nil
}

// kepF returns KepF elements at ep, semimajor axis in metres.
func (j *JPLLP) kepF(ep epoch.Epoch) (el [6]float64, err error) {
	if ep.Before(lpFirst) || !ep.Before(lpLast) {
		return el, fmt.Errorf("%w: %s: %s outside 1800-2050", ErrEpochRange, j.name, ep)
	}
	T := (ep.JD() - 2451545) / Century
	var x [6]float64
	for i := range x {
		x[i] = j.d.el[i] + j.d.rate[i]*T
	}
	e := x[1]
	W := unit.AngleFromDeg(x[5])
	w := unit.AngleFromDeg(x[4] - x[5])
	M := unit.AngleFromDeg(x[3] - x[4])
	E, err := anomaly.M2E(M.Mod1().Rad(), e)
	if err != nil {
		return
	}
	f, err := anomaly.E2F(E, e)
	if err != nil {
		return
	}
	return [6]float64{x[0] * AU, e, unit.AngleFromDeg(x[2]).Rad(),
		W.Mod1().Rad(), w.Mod1().Rad(), f}, nil
}

// Eph returns the state at ep.  Epochs outside 1800 to 2050 return
// ErrEpochRange.
func (j *JPLLP) Eph(ep epoch.Epoch) (planet.State, error) {
	el, err := j.kepF(ep)
	if err != nil {
		return planet.State{}, err
	}
	r, v, err := elements.Par2IC(el, MuSun)
	return planet.State{R: r, V: v}, err
}

// Elements returns elements of type t at ep.
func (j *JPLLP) Elements(ep epoch.Epoch, t elements.Type) ([6]float64, error) {
	el, err := j.kepF(ep)
	if err != nil {
		return el, err
	}
	return elements.Convert(el, elements.KepF, t, MuSun)
}

func (j *JPLLP) Name() string           { return j.name }
func (j *JPLLP) MuCentralBody() float64 { return MuSun }
func (j *JPLLP) MuSelf() float64        { return j.d.muSelf }
func (j *JPLLP) Radius() float64        { return j.d.radius }
func (j *JPLLP) SafeRadius() float64    { return j.d.radius * j.d.safeFactor }

func (j *JPLLP) ExtraInfo() string {
	var b strings.Builder
	fmt.Fprintln(&b, "JPL low precision ephemeris, valid 1800-2050.")
	fmt.Fprintf(&b, "Elements at J2000: %v\n", j.d.el)
	fmt.Fprintf(&b, "Rates per century: %v", j.d.rate)
	return b.String()
}
