// Public domain.

package anomaly

import "math"

// H2N converts hyperbolic anomaly to hyperbolic mean anomaly,
// N = e sinh H - H.  Requires ecc > 1.
func H2N(H, ecc float64) (float64, error) {
	if err := checkHyperbolic("H2N", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("H2N", "H", H); err != nil {
		return 0, err
	}
	return ecc*math.Sinh(H) - H, nil
}

// N2H converts hyperbolic mean anomaly to hyperbolic anomaly by solving
// the hyperbolic Kepler equation.  Requires ecc > 1.
func N2H(N, ecc float64) (H float64, err error) {
	if err = checkHyperbolic("N2H", ecc); err != nil {
		return
	}
	if err = checkFinite("N2H", "N", N); err != nil {
		return
	}
	H = math.Asinh(N / ecc)
	if ecc < 1.6 && math.Abs(N) < math.Pi {
		// near parabolic the cubic term dominates: e sinh H - H ~ H³/6
		H = math.Cbrt(6 * N)
	}
	last := math.Inf(1)
	for i := 1; i <= maxIter; i++ {
		d := (ecc*math.Sinh(H) - H - N) / (ecc*math.Cosh(H) - 1)
		H -= d
		ad, scale := math.Abs(d), math.Max(1, math.Abs(H))
		// done at the tolerance, or when steps stop shrinking at the
		// rounding floor of a nearly flat derivative.
		if ad <= tol*scale || ad >= last && ad <= floor*scale {
			return H, nil
		}
		last = ad
	}
	return 0, &ConvergenceError{Func: "N2H", X: N, Ecc: ecc, Iter: maxIter, Last: H}
}

// H2F converts hyperbolic anomaly to true anomaly.  Requires ecc > 1.
func H2F(H, ecc float64) (float64, error) {
	if err := checkHyperbolic("H2F", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("H2F", "H", H); err != nil {
		return 0, err
	}
	return 2 * math.Atan(math.Sqrt((ecc+1)/(ecc-1))*math.Tanh(H/2)), nil
}

// F2H converts true anomaly to hyperbolic anomaly.  Requires ecc > 1 and
// |f| below the asymptote angle acos(-1/ecc).
func F2H(f, ecc float64) (float64, error) {
	if err := checkHyperbolic("F2H", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("F2H", "f", f); err != nil {
		return 0, err
	}
	t := math.Sqrt((ecc-1)/(ecc+1)) * math.Tan(wrapPi(f)/2)
	if math.Abs(t) >= 1 {
		return 0, domainErr("F2H", "true anomaly beyond asymptote", f)
	}
	return 2 * math.Atanh(t), nil
}

// F2N converts true anomaly to hyperbolic mean anomaly.
func F2N(f, ecc float64) (float64, error) {
	H, err := F2H(f, ecc)
	if err != nil {
		return 0, err
	}
	return H2N(H, ecc)
}

// N2F converts hyperbolic mean anomaly to true anomaly.
func N2F(N, ecc float64) (float64, error) {
	H, err := N2H(N, ecc)
	if err != nil {
		return 0, err
	}
	return H2F(H, ecc)
}

// Zeta2F converts the Gudermannian ζ = gd(H) to true anomaly, see Battin,
// "An Introduction to the Mathematics and Methods of Astrodynamics".
// Requires ecc > 1 and |ζ| < π/2.
func Zeta2F(zeta, ecc float64) (float64, error) {
	if err := checkHyperbolic("Zeta2F", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("Zeta2F", "zeta", zeta); err != nil {
		return 0, err
	}
	if math.Abs(zeta) >= math.Pi/2 {
		return 0, domainErr("Zeta2F", "zeta outside (-π/2, π/2)", zeta)
	}
	return 2 * math.Atan(math.Sqrt((1+ecc)/(ecc-1))*math.Tan(zeta/2)), nil
}

// F2Zeta converts true anomaly to the Gudermannian ζ.  Requires ecc > 1
// and |f| below the asymptote angle acos(-1/ecc).
func F2Zeta(f, ecc float64) (float64, error) {
	if err := checkHyperbolic("F2Zeta", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("F2Zeta", "f", f); err != nil {
		return 0, err
	}
	t := math.Sqrt((ecc-1)/(1+ecc)) * math.Tan(wrapPi(f)/2)
	if math.Abs(t) >= 1 {
		return 0, domainErr("F2Zeta", "true anomaly beyond asymptote", f)
	}
	return 2 * math.Atan(t), nil
}
