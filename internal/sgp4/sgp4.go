// Public domain.

// Package sgp4 implements the SGP4/SDP4 propagation model for two line
// element sets, as revised by Vallado, Crawford, Hujsak and Kelso,
// "Revisiting Spacetrack Report #3", AIAA 2006-6753.
//
// Constants are WGS72 and the operation mode is "improved".  Time since
// epoch is in fractional minutes, positions in km and velocities in km/s,
// TEME frame.
package sgp4

import (
	"errors"
	"math"
)

// WGS72 constants.
const (
	Mu            = 398600.8 // km³/s²
	EarthRadiusKm = 6378.135
	j2            = 0.001082616
	j3            = -0.00000253881
	j4            = -0.00000165597
	j3oj2         = j3 / j2
)

var (
	xke       = 60 / math.Sqrt(EarthRadiusKm*EarthRadiusKm*EarthRadiusKm/Mu)
	vkmpersec = EarthRadiusKm * xke / 60
)

const (
	twoPi = 2 * math.Pi
	x2o3  = 2. / 3
	temp4 = 1.5e-12
)

// Elements are the mean elements of a two line element set.
type Elements struct {
	Epoch float64 // days from 1949 December 31 0h UT, JD - 2433281.5
	Bstar float64 // drag term, per earth radius
	Incl  float64 // radians
	Node  float64 // right ascension of ascending node, radians
	Ecc   float64
	ArgP  float64 // argument of perigee, radians
	M     float64 // mean anomaly, radians
	N     float64 // Kozai mean motion, radians per minute
}

// Error is a propagation failure, numbered as in the reference code.
type Error int

var errText = [...]string{
	1: "mean eccentricity not in [0, 1)",
	2: "mean motion negative",
	3: "perturbed eccentricity not in [0, 1]",
	4: "semilatus rectum negative",
	6: "satellite has decayed",
}

func (e Error) Error() string {
	if e > 0 && int(e) < len(errText) && errText[e] > "" {
		return "sgp4: " + errText[e]
	}
	return "sgp4: error"
}

// ErrElements is returned by New for elements SGP4 cannot represent.
var ErrElements = errors.New("sgp4: invalid elements")

// Propagator holds the initialized model.  It is immutable after New and
// safe for concurrent use.
type Propagator struct {
	el    Elements
	no    float64 // un-Kozai'd mean motion
	deep  bool
	isimp bool

	gsto, con41, x1mth2, x7thm1           float64
	cc1, cc4, cc5, d2, d3, d4, delmo, eta float64
	mdot, argpdot, nodedot, nodecf        float64
	omgcof, xmcof, sinmao, aycof, xlcof   float64
	t2cof, t3cof, t4cof, t5cof            float64

	ds *deepSpace
}

// New initializes the model.  Errors are ErrElements or an Error from
// evaluation at epoch.
func New(el Elements) (*Propagator, error) {
	if !(el.Ecc >= 0 && el.Ecc < 1) || !(el.N > 0) {
		return nil, ErrElements
	}
	p := &Propagator{el: el}

	// initl
	ecco := el.Ecc
	eccsq := ecco * ecco
	omeosq := 1 - eccsq
	rteosq := math.Sqrt(omeosq)
	cosio := math.Cos(el.Incl)
	cosio2 := cosio * cosio
	ak := math.Pow(xke/el.N, x2o3)
	d1 := .75 * j2 * (3*cosio2 - 1) / (rteosq * omeosq)
	del := d1 / (ak * ak)
	adel := ak * (1 - del*del - del*(1./3+134*del*del/81))
	del = d1 / (adel * adel)
	p.no = el.N / (1 + del)
	ao := math.Pow(xke/p.no, x2o3)
	sinio := math.Sin(el.Incl)
	po := ao * omeosq
	con42 := 1 - 5*cosio2
	p.con41 = -con42 - cosio2 - cosio2
	posq := po * po
	rp := ao * (1 - ecco)
	p.gsto = gstime(el.Epoch + 2433281.5)

	if rp < 220/EarthRadiusKm+1 {
		p.isimp = true
	}
	sfour := 78/EarthRadiusKm + 1
	qzms24 := math.Pow((120-78)/EarthRadiusKm, 4)
	perige := (rp - 1) * EarthRadiusKm
	if perige < 156 {
		sfour = perige - 78
		if perige < 98 {
			sfour = 20
		}
		qzms24 = math.Pow((120-sfour)/EarthRadiusKm, 4)
		sfour = sfour/EarthRadiusKm + 1
	}
	pinvsq := 1 / posq
	tsi := 1 / (ao - sfour)
	p.eta = ao * ecco * tsi
	etasq := p.eta * p.eta
	eeta := ecco * p.eta
	psisq := math.Abs(1 - etasq)
	coef := qzms24 * math.Pow(tsi, 4)
	coef1 := coef / math.Pow(psisq, 3.5)
	cc2 := coef1 * p.no * (ao*(1+1.5*etasq+eeta*(4+etasq)) +
		.375*j2*tsi/psisq*p.con41*(8+3*etasq*(8+etasq)))
	p.cc1 = el.Bstar * cc2
	cc3 := 0.
	if ecco > 1e-4 {
		cc3 = -2 * coef * tsi * j3oj2 * p.no * sinio / ecco
	}
	p.x1mth2 = 1 - cosio2
	p.cc4 = 2 * p.no * coef1 * ao * omeosq *
		(p.eta*(2+.5*etasq) + ecco*(.5+2*etasq) -
			j2*tsi/(ao*psisq)*(-3*p.con41*(1-2*eeta+etasq*(1.5-.5*eeta))+
				.75*p.x1mth2*(2*etasq-eeta*(1+etasq))*math.Cos(2*el.ArgP)))
	p.cc5 = 2 * coef1 * ao * omeosq * (1 + 2.75*(etasq+eeta) + eeta*etasq)
	cosio4 := cosio2 * cosio2
	temp1 := 1.5 * j2 * pinvsq * p.no
	temp2 := .5 * temp1 * j2 * pinvsq
	temp3 := -.46875 * j4 * pinvsq * pinvsq * p.no
	p.mdot = p.no + .5*temp1*rteosq*p.con41 +
		.0625*temp2*rteosq*(13-78*cosio2+137*cosio4)
	p.argpdot = -.5*temp1*con42 + .0625*temp2*(7-114*cosio2+395*cosio4) +
		temp3*(3-36*cosio2+49*cosio4)
	xhdot1 := -temp1 * cosio
	p.nodedot = xhdot1 + (.5*temp2*(4-19*cosio2)+2*temp3*(3-7*cosio2))*cosio
	xpidot := p.argpdot + p.nodedot
	p.omgcof = el.Bstar * cc3 * math.Cos(el.ArgP)
	if ecco > 1e-4 {
		p.xmcof = -x2o3 * coef * el.Bstar / eeta
	}
	p.nodecf = 3.5 * omeosq * xhdot1 * p.cc1
	p.t2cof = 1.5 * p.cc1
	p.aycof, p.xlcof = lcof(sinio, cosio)
	delmotemp := 1 + p.eta*math.Cos(el.M)
	p.delmo = delmotemp * delmotemp * delmotemp
	p.sinmao = math.Sin(el.M)
	p.x7thm1 = 7*cosio2 - 1

	if twoPi/p.no >= 225 {
		p.deep = true
		p.isimp = true
		p.ds = p.initDeep(eccsq, xpidot)
	}

	if !p.isimp {
		cc1sq := p.cc1 * p.cc1
		p.d2 = 4 * ao * tsi * cc1sq
		temp := p.d2 * tsi * p.cc1 / 3
		p.d3 = (17*ao + sfour) * temp
		p.d4 = .5 * temp * ao * tsi * (221*ao + 31*sfour) * p.cc1
		p.t3cof = p.d2 + 2*cc1sq
		p.t4cof = .25 * (3*p.d3 + p.cc1*(12*p.d2+10*cc1sq))
		p.t5cof = .2 * (3*p.d4 + 12*p.cc1*p.d3 + 6*p.d2*p.d2 +
			15*cc1sq*(2*p.d2+cc1sq))
	}

	if _, _, err := p.Propagate(0); err != nil {
		return nil, err
	}
	return p, nil
}

func lcof(sinio, cosio float64) (aycof, xlcof float64) {
	aycof = -.5 * j3oj2 * sinio
	den := 1 + cosio
	if math.Abs(den) <= 1.5e-12 {
		den = temp4
	}
	xlcof = -.25 * j3oj2 * sinio * (3 + 5*cosio) / den
	return
}

// gstime returns Greenwich sidereal time, IAU-82, radians.
func gstime(jdut1 float64) float64 {
	tut1 := (jdut1 - 2451545) / 36525
	t := -6.2e-6*tut1*tut1*tut1 + .093104*tut1*tut1 +
		(876600*3600+8640184.812866)*tut1 + 67310.54841
	t = math.Mod(t*math.Pi/180/240, twoPi)
	if t < 0 {
		t += twoPi
	}
	return t
}

// Propagate returns position and velocity tsince minutes from epoch.
func (p *Propagator) Propagate(tsince float64) (r, v [3]float64, err error) {
	el := &p.el
	t := tsince

	xmdf := el.M + p.mdot*t
	argpdf := el.ArgP + p.argpdot*t
	nodedf := el.Node + p.nodedot*t
	argpm := argpdf
	mm := xmdf
	t2 := t * t
	nodem := nodedf + p.nodecf*t2
	tempa := 1 - p.cc1*t
	tempe := el.Bstar * p.cc4 * t
	templ := p.t2cof * t2

	if !p.isimp {
		delomg := p.omgcof * t
		delmtemp := 1 + p.eta*math.Cos(xmdf)
		delm := p.xmcof * (delmtemp*delmtemp*delmtemp - p.delmo)
		temp := delomg + delm
		mm = xmdf + temp
		argpm = argpdf - temp
		t3 := t2 * t
		t4 := t3 * t
		tempa -= p.d2*t2 + p.d3*t3 + p.d4*t4
		tempe += el.Bstar * p.cc5 * (math.Sin(mm) - p.sinmao)
		templ += p.t3cof*t3 + t4*(p.t4cof+t*p.t5cof)
	}

	nm := p.no
	em := el.Ecc
	inclm := el.Incl
	if p.deep {
		em, argpm, inclm, mm, nodem, nm = p.ds.secular(p, t, em, argpm, inclm, mm, nodem)
	}
	if nm <= 0 {
		return r, v, Error(2)
	}
	am := math.Pow(xke/nm, x2o3) * tempa * tempa
	nm = xke / math.Pow(am, 1.5)
	em -= tempe
	if em >= 1 || em < -.001 {
		return r, v, Error(1)
	}
	if em < 1e-6 {
		em = 1e-6
	}
	mm += p.no * templ
	xlm := mm + argpm + nodem
	nodem = math.Mod(nodem, twoPi)
	argpm = math.Mod(argpm, twoPi)
	xlm = math.Mod(xlm, twoPi)
	mm = math.Mod(xlm-argpm-nodem, twoPi)

	ep, xincp, argpp, nodep, mp := em, inclm, argpm, nodem, mm
	sinip, cosip := math.Sin(inclm), math.Cos(inclm)
	aycof, xlcof := p.aycof, p.xlcof
	con41, x1mth2, x7thm1 := p.con41, p.x1mth2, p.x7thm1
	if p.deep {
		ep, xincp, nodep, argpp, mp = p.ds.periodics(t, ep, xincp, nodep, argpp, mp)
		if xincp < 0 {
			xincp = -xincp
			nodep += math.Pi
			argpp -= math.Pi
		}
		if ep < 0 || ep > 1 {
			return r, v, Error(3)
		}
		sinip, cosip = math.Sin(xincp), math.Cos(xincp)
		aycof, xlcof = lcof(sinip, cosip)
		cosisq := cosip * cosip
		con41 = 3*cosisq - 1
		x1mth2 = 1 - cosisq
		x7thm1 = 7*cosisq - 1
	}

	// long period periodics
	axnl := ep * math.Cos(argpp)
	temp := 1 / (am * (1 - ep*ep))
	aynl := ep*math.Sin(argpp) + temp*aycof
	xl := mp + argpp + nodep + temp*xlcof*axnl

	// Kepler's equation
	u := math.Mod(xl-nodep, twoPi)
	eo1 := u
	var sineo1, coseo1 float64
	for tem5, ktr := 9999.9, 1; math.Abs(tem5) >= 1e-12 && ktr <= 10; ktr++ {
		sineo1 = math.Sin(eo1)
		coseo1 = math.Cos(eo1)
		tem5 = 1 - coseo1*axnl - sineo1*aynl
		tem5 = (u - aynl*coseo1 + axnl*sineo1 - eo1) / tem5
		if math.Abs(tem5) >= .95 {
			tem5 = math.Copysign(.95, tem5)
		}
		eo1 += tem5
	}

	// short period preliminary quantities
	ecose := axnl*coseo1 + aynl*sineo1
	esine := axnl*sineo1 - aynl*coseo1
	el2 := axnl*axnl + aynl*aynl
	pl := am * (1 - el2)
	if pl < 0 {
		return r, v, Error(4)
	}
	rl := am * (1 - ecose)
	rdotl := math.Sqrt(am) * esine / rl
	rvdotl := math.Sqrt(pl) / rl
	betal := math.Sqrt(1 - el2)
	temp = esine / (1 + betal)
	sinu := am / rl * (sineo1 - aynl - axnl*temp)
	cosu := am / rl * (coseo1 - axnl + aynl*temp)
	su := math.Atan2(sinu, cosu)
	sin2u := (cosu + cosu) * sinu
	cos2u := 1 - 2*sinu*sinu
	temp = 1 / pl
	temp1 := .5 * j2 * temp
	temp2 := temp1 * temp

	// update for short period periodics
	mrt := rl*(1-1.5*temp2*betal*con41) + .5*temp1*x1mth2*cos2u
	su -= .25 * temp2 * x7thm1 * sin2u
	xnode := nodep + 1.5*temp2*cosip*sin2u
	xinc := xincp + 1.5*temp2*cosip*sinip*cos2u
	mvt := rdotl - nm*temp1*x1mth2*sin2u/xke
	rvdot := rvdotl + nm*temp1*(x1mth2*cos2u+1.5*con41)/xke

	// orientation vectors
	sinsu, cossu := math.Sin(su), math.Cos(su)
	snod, cnod := math.Sin(xnode), math.Cos(xnode)
	sini, cosi := math.Sin(xinc), math.Cos(xinc)
	xmx := -snod * cosi
	xmy := cnod * cosi
	ux := [3]float64{xmx*sinsu + cnod*cossu, xmy*sinsu + snod*cossu, sini * sinsu}
	vx := [3]float64{xmx*cossu - cnod*sinsu, xmy*cossu - snod*sinsu, sini * cossu}
	for i := range ux {
		r[i] = mrt * ux[i] * EarthRadiusKm
		v[i] = (mvt*ux[i] + rvdot*vx[i]) * vkmpersec
	}
	if mrt < 1 {
		return r, v, Error(6)
	}
	return r, v, nil
}
