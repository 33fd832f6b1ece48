// Public domain.

package elements

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/kep/anomaly"
)

// FromState computes elements of type t from a state.
func FromState(r, v [3]float64, mu float64, t Type) ([6]float64, error) {
	if t == PosVel {
		return [6]float64{r[0], r[1], r[2], v[0], v[1], v[2]}, nil
	}
	kep, err := IC2Par(r, v, mu)
	if err != nil {
		return kep, err
	}
	return fromKepF(kep, t, mu)
}

// ToState computes a state from elements of type t.
func ToState(el [6]float64, t Type, mu float64) (r, v [3]float64, err error) {
	if t == PosVel {
		return [3]float64{el[0], el[1], el[2]}, [3]float64{el[3], el[4], el[5]}, nil
	}
	kep, err := toKepF(el, t)
	if err != nil {
		return
	}
	return Par2IC(kep, mu)
}

// Convert converts an element set between types.  mu is needed only for
// conversions to or from PosVel.
func Convert(el [6]float64, from, to Type, mu float64) ([6]float64, error) {
	if !from.valid() {
		return el, unknownType(from)
	}
	if from == to {
		return el, nil
	}
	if from == PosVel {
		return FromState([3]float64{el[0], el[1], el[2]},
			[3]float64{el[3], el[4], el[5]}, mu, to)
	}
	kep, err := toKepF(el, from)
	if err != nil {
		return kep, err
	}
	if to == PosVel {
		r, v, err := Par2IC(kep, mu)
		return [6]float64{r[0], r[1], r[2], v[0], v[1], v[2]}, err
	}
	return fromKepF(kep, to, mu)
}

// fromKepF converts KepF elements to any type other than PosVel.
func fromKepF(kep [6]float64, t Type, mu float64) (el [6]float64, err error) {
	a, e, i, W, w, f := kep[0], kep[1], kep[2], kep[3], kep[4], kep[5]
	switch t {
	case KepF:
		return kep, nil
	case KepM:
		var M float64
		if e < 1 {
			M, err = anomaly.F2M(f, e)
		} else {
			M, err = anomaly.F2N(f, e)
		}
		return [6]float64{a, e, i, W, w, M}, err
	case Mee, MeeR:
		p := a * (1 - e*e)
		var lp, ti float64 // longitude of pericenter, tangent of half inclination
		if t == Mee {
			lp, ti = W+w, math.Tan(i/2)
		} else {
			lp, ti = w-W, 1/math.Tan(i/2)
		}
		sW, cW := math.Sincos(W)
		slp, clp := math.Sincos(lp)
		L := unit.Angle(lp + f).Mod1().Rad()
		return [6]float64{p, e * clp, e * slp, ti * cW, ti * sW, L}, nil
	case PosVel:
		r, v, err := Par2IC(kep, mu)
		return [6]float64{r[0], r[1], r[2], v[0], v[1], v[2]}, err
	}
	return el, unknownType(t)
}

// toKepF converts elements of any type other than PosVel to KepF.
func toKepF(el [6]float64, t Type) (kep [6]float64, err error) {
	switch t {
	case KepF:
		return el, nil
	case KepM:
		a, e, i, W, w, M := el[0], el[1], el[2], el[3], el[4], el[5]
		var f float64
		switch {
		case e < 1:
			f, err = anomaly.M2F(M, e)
		case e > 1:
			f, err = anomaly.N2F(M, e)
		default:
			err = badInput("parabolic orbit", e)
		}
		return [6]float64{a, e, i, W, w, f}, err
	case Mee, MeeR:
		p, ef, eg, h, k, L := el[0], el[1], el[2], el[3], el[4], el[5]
		e := math.Hypot(ef, eg)
		if e == 1 {
			return kep, badInput("parabolic orbit", e)
		}
		lp := math.Atan2(eg, ef)
		W := math.Atan2(k, h)
		i := 2 * math.Atan(math.Hypot(h, k))
		w := lp - W
		if t == MeeR {
			i = math.Pi - i
			w = lp + W
		}
		f := math.Remainder(L-lp, 2*math.Pi)
		return [6]float64{p / (1 - e*e), e, i,
			unit.Angle(W).Mod1().Rad(), unit.Angle(w).Mod1().Rad(), f}, nil
	}
	return kep, unknownType(t)
}
