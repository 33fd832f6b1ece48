// Public domain.

package anomaly

import "math"

// E2M converts eccentric anomaly E to mean anomaly, Kepler's equation
// M = E - e sin E.  Requires 0 <= ecc < 1.
func E2M(E, ecc float64) (float64, error) {
	if err := checkElliptic("E2M", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("E2M", "E", E); err != nil {
		return 0, err
	}
	return E - ecc*math.Sin(E), nil
}

// M2E converts mean anomaly M to eccentric anomaly by solving Kepler's
// equation.  The result is in [-π, π].  Requires 0 <= ecc < 1.
func M2E(M, ecc float64) (E float64, err error) {
	if err = checkElliptic("M2E", ecc); err != nil {
		return
	}
	if err = checkFinite("M2E", "M", M); err != nil {
		return
	}
	M = wrapPi(M)
	// starting value M + e sin M is good to O(e²).  at high eccentricity
	// start from ±π, where Newton's method converges for every M.
	E = M + ecc*math.Sin(M)
	if ecc > .8 {
		E = math.Copysign(math.Pi, M)
	}
	last := math.Inf(1)
	for i := 1; i <= maxIter; i++ {
		d := (E - ecc*math.Sin(E) - M) / (1 - ecc*math.Cos(E))
		E -= d
		ad, scale := math.Abs(d), math.Max(1, math.Abs(E))
		// done at the tolerance, or when steps stop shrinking at the
		// rounding floor of a nearly flat derivative.
		if ad <= tol*scale || ad >= last && ad <= floor*scale {
			return E, nil
		}
		last = ad
	}
	return 0, &ConvergenceError{Func: "M2E", X: M, Ecc: ecc, Iter: maxIter, Last: E}
}

// E2F converts eccentric anomaly to true anomaly in [-π, π].
// Requires 0 <= ecc < 1.
func E2F(E, ecc float64) (float64, error) {
	if err := checkElliptic("E2F", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("E2F", "E", E); err != nil {
		return 0, err
	}
	return 2 * math.Atan(math.Sqrt((1+ecc)/(1-ecc))*math.Tan(wrapPi(E)/2)), nil
}

// F2E converts true anomaly to eccentric anomaly in [-π, π].
// Requires 0 <= ecc < 1.
func F2E(f, ecc float64) (float64, error) {
	if err := checkElliptic("F2E", ecc); err != nil {
		return 0, err
	}
	if err := checkFinite("F2E", "f", f); err != nil {
		return 0, err
	}
	return 2 * math.Atan(math.Sqrt((1-ecc)/(1+ecc))*math.Tan(wrapPi(f)/2)), nil
}

// F2M converts true anomaly to mean anomaly in [-π, π].
func F2M(f, ecc float64) (float64, error) {
	E, err := F2E(f, ecc)
	if err != nil {
		return 0, err
	}
	return E2M(E, ecc)
}

// M2F converts mean anomaly to true anomaly in [-π, π].
func M2F(M, ecc float64) (float64, error) {
	E, err := M2E(M, ecc)
	if err != nil {
		return 0, err
	}
	return E2F(E, ecc)
}
