// Public domain.

package anomaly

import "math"

// Parabolic orbits, eccentricity exactly 1, form their own regime.  The
// elliptic and hyperbolic functions reject ecc == 1 and these functions
// take no eccentricity at all.
//
// Barker's equation relates D = tan(f/2) to the parabolic mean anomaly
//
//	MP = D + D³/3,  MP = sqrt(μ/(2q³)) (t - T)
//
// with q the pericenter distance and T the time of pericenter passage.

// F2D converts true anomaly to Barker's anomaly D = tan(f/2).  f must be
// strictly inside (-π, π).
func F2D(f float64) (float64, error) {
	if err := checkFinite("F2D", "f", f); err != nil {
		return 0, err
	}
	if !(math.Abs(f) < math.Pi) {
		return 0, domainErr("F2D", "requires |f| < π", f)
	}
	return math.Tan(f / 2), nil
}

// D2F converts Barker's anomaly to true anomaly.
func D2F(D float64) (float64, error) {
	if math.IsNaN(D) {
		return 0, domainErr("D2F", "D is NaN", D)
	}
	return 2 * math.Atan(D), nil
}

// D2MP evaluates Barker's equation.
func D2MP(D float64) (float64, error) {
	if err := checkFinite("D2MP", "D", D); err != nil {
		return 0, err
	}
	return D + D*D*D/3, nil
}

// MP2D inverts Barker's equation in closed form.
//
// With D = 2 sinh s, D³ + 3D = 2 sinh 3s, so s = asinh(3MP/2)/3.
func MP2D(MP float64) (float64, error) {
	if err := checkFinite("MP2D", "MP", MP); err != nil {
		return 0, err
	}
	return 2 * math.Sinh(math.Asinh(1.5*MP)/3), nil
}

// F2MP converts true anomaly to parabolic mean anomaly.
func F2MP(f float64) (float64, error) {
	D, err := F2D(f)
	if err != nil {
		return 0, err
	}
	return D2MP(D)
}

// MP2F converts parabolic mean anomaly to true anomaly.
func MP2F(MP float64) (float64, error) {
	D, err := MP2D(MP)
	if err != nil {
		return 0, err
	}
	return D2F(D)
}
