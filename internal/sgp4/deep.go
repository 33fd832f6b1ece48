// Public domain.

package sgp4

import "math"

// lunar-solar and resonance constants
const (
	zns   = 1.19459e-5
	zes   = .01675
	znl   = 1.5835218e-4
	zel   = .05490
	rptim = 4.37526908801129966e-3 // earth rotation, rad/min

	q22    = 1.7891679e-6
	q31    = 2.1460748e-6
	q33    = 2.2123015e-7
	root22 = 1.7891679e-6
	root32 = 3.7393792e-7
	root44 = 7.3636953e-9
	root52 = 1.1428639e-7
	root54 = 2.1765803e-9

	fasx2 = .13130908
	fasx4 = 2.8843198
	fasx6 = .37448087
	g22   = 5.7686396
	g32   = .95240898
	g44   = 1.8014998
	g52   = 1.0508330
	g54   = 4.4108898

	stepp = 720.
	step2 = stepp * stepp / 2
)

// deepSpace holds SDP4 coefficients for orbits with periods of 225
// minutes or more.
type deepSpace struct {
	// lunar-solar periodics
	zmos, zmol                 float64
	se2, se3, si2, si3         float64
	sl2, sl3, sl4              float64
	sgh2, sgh3, sgh4, sh2, sh3 float64
	ee2, e3, xi2, xi3          float64
	xl2, xl3, xl4              float64
	xgh2, xgh3, xgh4, xh2, xh3 float64

	// secular rates
	dedt, didt, dmdt, dnodt, domdt float64

	// resonance, 0 none, 1 one day, 2 half day
	irez                           int
	d2201, d2211, d3210, d3222     float64
	d4410, d4422, d5220, d5232     float64
	d5421, d5433, del1, del2, del3 float64
	xfact, xlamo                   float64
}

// lunarSolarTerms are the s and z coefficients of one perturbing body.
type lunarSolarTerms struct {
	s1, s2, s3, s4, s5, s6, s7 float64
	z1, z2, z3                 float64
	z11, z12, z13              float64
	z21, z22, z23              float64
	z31, z32, z33              float64
}

func lunarSolar(cc, xnoi, em, sinim, cosim, sinomm, cosomm,
	zcosg, zsing, zcosi, zsini, zcosh, zsinh float64) (l lunarSolarTerms) {
	emsq := em * em
	betasq := 1 - emsq
	rtemsq := math.Sqrt(betasq)
	a1 := zcosg*zcosh + zsing*zcosi*zsinh
	a3 := -zsing*zcosh + zcosg*zcosi*zsinh
	a7 := -zcosg*zsinh + zsing*zcosi*zcosh
	a8 := zsing * zsini
	a9 := zsing*zsinh + zcosg*zcosi*zcosh
	a10 := zcosg * zsini
	a2 := cosim*a7 + sinim*a8
	a4 := cosim*a9 + sinim*a10
	a5 := -sinim*a7 + cosim*a8
	a6 := -sinim*a9 + cosim*a10

	x1 := a1*cosomm + a2*sinomm
	x2 := a3*cosomm + a4*sinomm
	x3 := -a1*sinomm + a2*cosomm
	x4 := -a3*sinomm + a4*cosomm
	x5 := a5 * sinomm
	x6 := a6 * sinomm
	x7 := a5 * cosomm
	x8 := a6 * cosomm

	l.z31 = 12*x1*x1 - 3*x3*x3
	l.z32 = 24*x1*x2 - 6*x3*x4
	l.z33 = 12*x2*x2 - 3*x4*x4
	l.z1 = 3*(a1*a1+a2*a2) + l.z31*emsq
	l.z2 = 6*(a1*a3+a2*a4) + l.z32*emsq
	l.z3 = 3*(a3*a3+a4*a4) + l.z33*emsq
	l.z11 = -6*a1*a5 + emsq*(-24*x1*x7-6*x3*x5)
	l.z12 = -6*(a1*a6+a3*a5) + emsq*(-24*(x2*x7+x1*x8)-6*(x3*x6+x4*x5))
	l.z13 = -6*a3*a6 + emsq*(-24*x2*x8-6*x4*x6)
	l.z21 = 6*a2*a5 + emsq*(24*x1*x5-6*x3*x7)
	l.z22 = 6*(a4*a5+a2*a6) + emsq*(24*(x2*x5+x1*x6)-6*(x4*x7+x3*x8))
	l.z23 = 6*a4*a6 + emsq*(24*x2*x6-6*x4*x8)
	l.z1 = l.z1 + l.z1 + betasq*l.z31
	l.z2 = l.z2 + l.z2 + betasq*l.z32
	l.z3 = l.z3 + l.z3 + betasq*l.z33
	l.s3 = cc * xnoi
	l.s2 = -.5 * l.s3 / rtemsq
	l.s4 = l.s3 * rtemsq
	l.s1 = -15 * em * l.s4
	l.s5 = x1*x3 + x2*x4
	l.s6 = x2*x3 + x1*x4
	l.s7 = x2*x4 - x1*x3
	return
}

// initDeep computes the deep space coefficients.  It runs during New,
// after the near earth coefficients are set.
func (p *Propagator) initDeep(eccsq, xpidot float64) *deepSpace {
	el := &p.el
	d := &deepSpace{}
	em := el.Ecc
	emsq := eccsq
	snodm, cnodm := math.Sincos(el.Node)
	sinomm, cosomm := math.Sincos(el.ArgP)
	sinim, cosim := math.Sincos(el.Incl)

	day := el.Epoch + 18261.5
	xnodce := math.Mod(4.5236020-9.2422029e-4*day, twoPi)
	stem, ctem := math.Sincos(xnodce)
	zcosil := .91375164 - .03568096*ctem
	zsinil := math.Sqrt(1 - zcosil*zcosil)
	zsinhl := .089683511 * stem / zsinil
	zcoshl := math.Sqrt(1 - zsinhl*zsinhl)
	gam := 5.8351514 + .0019443680*day
	zx := math.Atan2(.39785416*stem/zsinil, zcoshl*ctem+.91744867*zsinhl*stem)
	zx = gam + zx - xnodce
	zsingl, zcosgl := math.Sincos(zx)

	xnoi := 1 / p.no
	sol := lunarSolar(2.9864797e-6, xnoi, em, sinim, cosim, sinomm, cosomm,
		.1945905, -.98088458, .91744867, .39785416, cnodm, snodm)
	lun := lunarSolar(4.7968065e-7, xnoi, em, sinim, cosim, sinomm, cosomm,
		zcosgl, zsingl, zcosil, zsinil,
		zcoshl*cnodm+zsinhl*snodm, snodm*zcoshl-cnodm*zsinhl)

	d.zmol = math.Mod(4.7199672+.22997150*day-gam, twoPi)
	d.zmos = math.Mod(6.2565837+.017201977*day, twoPi)

	d.se2 = 2 * sol.s1 * sol.s6
	d.se3 = 2 * sol.s1 * sol.s7
	d.si2 = 2 * sol.s2 * sol.z12
	d.si3 = 2 * sol.s2 * (sol.z13 - sol.z11)
	d.sl2 = -2 * sol.s3 * sol.z2
	d.sl3 = -2 * sol.s3 * (sol.z3 - sol.z1)
	d.sl4 = -2 * sol.s3 * (-21 - 9*emsq) * zes
	d.sgh2 = 2 * sol.s4 * sol.z32
	d.sgh3 = 2 * sol.s4 * (sol.z33 - sol.z31)
	d.sgh4 = -18 * sol.s4 * zes
	d.sh2 = -2 * sol.s2 * sol.z22
	d.sh3 = -2 * sol.s2 * (sol.z23 - sol.z21)

	d.ee2 = 2 * lun.s1 * lun.s6
	d.e3 = 2 * lun.s1 * lun.s7
	d.xi2 = 2 * lun.s2 * lun.z12
	d.xi3 = 2 * lun.s2 * (lun.z13 - lun.z11)
	d.xl2 = -2 * lun.s3 * lun.z2
	d.xl3 = -2 * lun.s3 * (lun.z3 - lun.z1)
	d.xl4 = -2 * lun.s3 * (-21 - 9*emsq) * zel
	d.xgh2 = 2 * lun.s4 * lun.z32
	d.xgh3 = 2 * lun.s4 * (lun.z33 - lun.z31)
	d.xgh4 = -18 * lun.s4 * zel
	d.xh2 = -2 * lun.s2 * lun.z22
	d.xh3 = -2 * lun.s2 * (lun.z23 - lun.z21)

	// secular rates
	nm := p.no
	if 0.0034906585 < nm && nm < 0.0052359877 {
		d.irez = 1
	}
	if 8.26e-3 <= nm && nm <= 9.24e-3 && em >= .5 {
		d.irez = 2
	}
	polar := el.Incl < 5.2359877e-2 || el.Incl > math.Pi-5.2359877e-2

	ses := sol.s1 * zns * sol.s5
	sis := sol.s2 * zns * (sol.z11 + sol.z13)
	sls := -zns * sol.s3 * (sol.z1 + sol.z3 - 14 - 6*emsq)
	sghs := sol.s4 * zns * (sol.z31 + sol.z33 - 6)
	shs := -zns * sol.s2 * (sol.z21 + sol.z23)
	if polar {
		shs = 0
	}
	if sinim != 0 {
		shs /= sinim
	}
	sgs := sghs - cosim*shs

	d.dedt = ses + lun.s1*znl*lun.s5
	d.didt = sis + lun.s2*znl*(lun.z11+lun.z13)
	d.dmdt = sls - znl*lun.s3*(lun.z1+lun.z3-14-6*emsq)
	sghl := lun.s4 * znl * (lun.z31 + lun.z33 - 6)
	shll := -znl * lun.s2 * (lun.z21 + lun.z23)
	if polar {
		shll = 0
	}
	d.domdt = sgs + sghl
	d.dnodt = shs
	if sinim != 0 {
		d.domdt -= cosim / sinim * shll
		d.dnodt += shll / sinim
	}

	if d.irez == 0 {
		return d
	}
	theta := math.Mod(p.gsto, twoPi)
	aonv := math.Pow(nm/xke, x2o3)
	if d.irez == 2 {
		cosisq := cosim * cosim
		eoc := em * emsq
		g201 := -.306 - (em-.64)*.440
		var g211, g310, g322, g410, g422, g520, g521, g532, g533 float64
		if em <= .65 {
			g211 = 3.616 - 13.2470*em + 16.2900*emsq
			g310 = -19.302 + 117.3900*em - 228.4190*emsq + 156.5910*eoc
			g322 = -18.9068 + 109.7927*em - 214.6334*emsq + 146.5816*eoc
			g410 = -41.122 + 242.6940*em - 471.0940*emsq + 313.9530*eoc
			g422 = -146.407 + 841.8800*em - 1629.014*emsq + 1083.4350*eoc
			g520 = -532.114 + 3017.977*em - 5740.032*emsq + 3708.2760*eoc
		} else {
			g211 = -72.099 + 331.819*em - 508.738*emsq + 266.724*eoc
			g310 = -346.844 + 1582.851*em - 2415.925*emsq + 1246.113*eoc
			g322 = -342.585 + 1554.908*em - 2366.899*emsq + 1215.972*eoc
			g410 = -1052.797 + 4758.686*em - 7193.992*emsq + 3651.957*eoc
			g422 = -3581.690 + 16178.110*em - 24462.770*emsq + 12422.520*eoc
			if em > .715 {
				g520 = -5149.66 + 29936.92*em - 54087.36*emsq + 31324.56*eoc
			} else {
				g520 = 1464.74 - 4664.75*em + 3763.64*emsq
			}
		}
		if em < .7 {
			g533 = -919.22770 + 4988.6100*em - 9064.7700*emsq + 5542.21*eoc
			g521 = -822.71072 + 4568.6173*em - 8491.4146*emsq + 5337.524*eoc
			g532 = -853.66600 + 4690.2500*em - 8624.7700*emsq + 5341.4*eoc
		} else {
			g533 = -37995.780 + 161616.52*em - 229838.20*emsq + 109377.94*eoc
			g521 = -51752.104 + 218913.95*em - 309468.16*emsq + 146349.42*eoc
			g532 = -40023.880 + 170470.89*em - 242699.48*emsq + 115605.82*eoc
		}
		sini2 := sinim * sinim
		f220 := .75 * (1 + 2*cosim + cosisq)
		f221 := 1.5 * sini2
		f321 := 1.875 * sinim * (1 - 2*cosim - 3*cosisq)
		f322 := -1.875 * sinim * (1 + 2*cosim - 3*cosisq)
		f441 := 35 * sini2 * f220
		f442 := 39.3750 * sini2 * sini2
		f522 := 9.84375 * sinim * (sini2*(1-2*cosim-5*cosisq) +
			.33333333*(-2+4*cosim+6*cosisq))
		f523 := sinim * (4.92187512*sini2*(-2-4*cosim+10*cosisq) +
			6.56250012*(1+2*cosim-3*cosisq))
		f542 := 29.53125 * sinim * (2 - 8*cosim + cosisq*(-12+8*cosim+10*cosisq))
		f543 := 29.53125 * sinim * (-2 - 8*cosim + cosisq*(12+8*cosim-10*cosisq))
		temp1 := 3 * nm * nm * aonv * aonv
		temp := temp1 * root22
		d.d2201 = temp * f220 * g201
		d.d2211 = temp * f221 * g211
		temp1 *= aonv
		temp = temp1 * root32
		d.d3210 = temp * f321 * g310
		d.d3222 = temp * f322 * g322
		temp1 *= aonv
		temp = 2 * temp1 * root44
		d.d4410 = temp * f441 * g410
		d.d4422 = temp * f442 * g422
		temp1 *= aonv
		temp = temp1 * root52
		d.d5220 = temp * f522 * g520
		d.d5232 = temp * f523 * g532
		temp = 2 * temp1 * root54
		d.d5421 = temp * f542 * g521
		d.d5433 = temp * f543 * g533
		d.xlamo = math.Mod(el.M+el.Node+el.Node-theta-theta, twoPi)
		d.xfact = p.mdot + d.dmdt + 2*(p.nodedot+d.dnodt-rptim) - p.no
	} else {
		g200 := 1 + emsq*(-2.5+.8125*emsq)
		g310 := 1 + 2*emsq
		g300 := 1 + emsq*(-6+6.60937*emsq)
		f220 := .75 * (1 + cosim) * (1 + cosim)
		f311 := .9375*sinim*sinim*(1+3*cosim) - .75*(1+cosim)
		f330 := 1 + cosim
		f330 = 1.875 * f330 * f330 * f330
		del1 := 3 * nm * nm * aonv * aonv
		d.del2 = 2 * del1 * f220 * g200 * q22
		d.del3 = 3 * del1 * f330 * g300 * q33 * aonv
		d.del1 = del1 * f311 * g310 * q31 * aonv
		d.xlamo = math.Mod(el.M+el.Node+el.ArgP-theta, twoPi)
		d.xfact = p.mdot + xpidot - rptim + d.dmdt + d.domdt + d.dnodt - p.no
	}
	return d
}

// secular applies lunar-solar secular rates and integrates resonance
// effects from epoch.  The integrator restarts at epoch on every call so
// the propagator carries no state between calls.
func (d *deepSpace) secular(p *Propagator, t, em, argpm, inclm, mm, nodem float64) (
	emOut, argpmOut, inclmOut, mmOut, nodemOut, nm float64) {
	nm = p.no
	em += d.dedt * t
	inclm += d.didt * t
	argpm += d.domdt * t
	nodem += d.dnodt * t
	mm += d.dmdt * t
	if d.irez == 0 {
		return em, argpm, inclm, mm, nodem, nm
	}
	theta := math.Mod(p.gsto+t*rptim, twoPi)
	delt := stepp
	if t < 0 {
		delt = -stepp
	}
	atime := 0.
	xni := p.no
	xli := d.xlamo
	var xndt, xldot, xnddt, ft float64
	for {
		if d.irez != 2 {
			xndt = d.del1*math.Sin(xli-fasx2) +
				d.del2*math.Sin(2*(xli-fasx4)) +
				d.del3*math.Sin(3*(xli-fasx6))
			xldot = xni + d.xfact
			xnddt = d.del1*math.Cos(xli-fasx2) +
				2*d.del2*math.Cos(2*(xli-fasx4)) +
				3*d.del3*math.Cos(3*(xli-fasx6))
			xnddt *= xldot
		} else {
			xomi := p.el.ArgP + p.argpdot*atime
			x2omi := xomi + xomi
			x2li := xli + xli
			xndt = d.d2201*math.Sin(x2omi+xli-g22) + d.d2211*math.Sin(xli-g22) +
				d.d3210*math.Sin(xomi+xli-g32) + d.d3222*math.Sin(-xomi+xli-g32) +
				d.d4410*math.Sin(x2omi+x2li-g44) + d.d4422*math.Sin(x2li-g44) +
				d.d5220*math.Sin(xomi+xli-g52) + d.d5232*math.Sin(-xomi+xli-g52) +
				d.d5421*math.Sin(xomi+x2li-g54) + d.d5433*math.Sin(-xomi+x2li-g54)
			xldot = xni + d.xfact
			xnddt = d.d2201*math.Cos(x2omi+xli-g22) + d.d2211*math.Cos(xli-g22) +
				d.d3210*math.Cos(xomi+xli-g32) + d.d3222*math.Cos(-xomi+xli-g32) +
				d.d5220*math.Cos(xomi+xli-g52) + d.d5232*math.Cos(-xomi+xli-g52) +
				2*(d.d4410*math.Cos(x2omi+x2li-g44)+d.d4422*math.Cos(x2li-g44)+
					d.d5421*math.Cos(xomi+x2li-g54)+d.d5433*math.Cos(-xomi+x2li-g54))
			xnddt *= xldot
		}
		if math.Abs(t-atime) < stepp {
			ft = t - atime
			break
		}
		xli += xldot*delt + xndt*step2
		xni += xndt*delt + xnddt*step2
		atime += delt
	}
	nm = xni + xndt*ft + xnddt*ft*ft*.5
	xl := xli + xldot*ft + xndt*ft*ft*.5
	if d.irez != 1 {
		mm = xl - 2*nodem + 2*theta
	} else {
		mm = xl - nodem - argpm + theta
	}
	return em, argpm, inclm, mm, nodem, nm
}

// periodics applies lunar-solar long period periodics.
func (d *deepSpace) periodics(t, ep, inclp, nodep, argpp, mp float64) (
	epOut, inclpOut, nodepOut, argppOut, mpOut float64) {
	zm := d.zmos + zns*t
	zf := zm + 2*zes*math.Sin(zm)
	sinzf, coszf := math.Sincos(zf)
	f2 := .5*sinzf*sinzf - .25
	f3 := -.5 * sinzf * coszf
	ses := d.se2*f2 + d.se3*f3
	sis := d.si2*f2 + d.si3*f3
	sls := d.sl2*f2 + d.sl3*f3 + d.sl4*sinzf
	sghs := d.sgh2*f2 + d.sgh3*f3 + d.sgh4*sinzf
	shs := d.sh2*f2 + d.sh3*f3

	zm = d.zmol + znl*t
	zf = zm + 2*zel*math.Sin(zm)
	sinzf, coszf = math.Sincos(zf)
	f2 = .5*sinzf*sinzf - .25
	f3 = -.5 * sinzf * coszf
	sel := d.ee2*f2 + d.e3*f3
	sil := d.xi2*f2 + d.xi3*f3
	sll := d.xl2*f2 + d.xl3*f3 + d.xl4*sinzf
	sghl := d.xgh2*f2 + d.xgh3*f3 + d.xgh4*sinzf
	shll := d.xh2*f2 + d.xh3*f3

	pe := ses + sel
	pinc := sis + sil
	pl := sls + sll
	pgh := sghs + sghl
	ph := shs + shll

	inclp += pinc
	ep += pe
	sinip, cosip := math.Sincos(inclp)
	if inclp >= .2 {
		ph /= sinip
		pgh -= cosip * ph
		argpp += pgh
		nodep += ph
		mp += pl
		return ep, inclp, nodep, argpp, mp
	}
	// Lyddane modification for low inclination
	sinop, cosop := math.Sincos(nodep)
	alfdp := sinip*sinop + ph*cosop + pinc*cosip*sinop
	betdp := sinip*cosop - ph*sinop + pinc*cosip*cosop
	nodep = math.Mod(nodep, twoPi)
	xls := mp + argpp + pl + pgh + (cosip-pinc*sinip)*nodep
	xnoh := nodep
	nodep = math.Atan2(alfdp, betdp)
	if math.Abs(xnoh-nodep) > math.Pi {
		if nodep < xnoh {
			nodep += twoPi
		} else {
			nodep -= twoPi
		}
	}
	mp += pl
	argpp = xls - mp - cosip*nodep
	return ep, inclp, nodep, argpp, mp
}
