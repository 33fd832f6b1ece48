// Public domain.

// Package anomaly converts between the anomalies locating a body on a conic
// orbit.
//
// Function names follow the usual one letter abbreviations:
//
//	M  mean anomaly               (ellipse)
//	E  eccentric anomaly          (ellipse)
//	F  true anomaly               (any conic)
//	N  hyperbolic mean anomaly    (hyperbola)
//	H  hyperbolic anomaly         (hyperbola)
//	Zeta  Gudermannian of H       (hyperbola)
//	D  Barker's anomaly tan(f/2)  (parabola)
//	MP parabolic mean anomaly     (parabola)
//
// All angles are in radians.  Each function validates the eccentricity
// regime it is defined for and returns an error wrapping ErrDomain for input
// outside it.  The two transcendental inverses, M2E and N2H, are solved by
// Newton-Raphson iteration capped at MaxIter steps; failing to converge
// returns a *ConvergenceError rather than the last iterate.
package anomaly

import (
	"errors"
	"fmt"
	"math"
)

// MaxIter is the iteration cap for the Newton-Raphson solvers.
const MaxIter = 50

var (
	// ErrDomain is wrapped by errors for input outside the valid domain of
	// a conversion, for example an eccentricity >= 1 passed to M2E.
	ErrDomain = errors.New("anomaly: input outside domain")

	// ErrNoConverge is wrapped by *ConvergenceError.
	ErrNoConverge = errors.New("anomaly: no convergence")
)

// ConvergenceError reports an iterative solve that exhausted its iteration
// cap.  Last holds the final iterate for diagnostics only; it is not a
// solution.
type ConvergenceError struct {
	Func   string  // function name, "M2E" or "N2H"
	X, Ecc float64 // arguments
	Iter   int     // iterations performed
	Last   float64 // last iterate
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("anomaly: %s(%g, %g) did not converge in %d iterations (last %g)",
		e.Func, e.X, e.Ecc, e.Iter, e.Last)
}

// Unwrap returns ErrNoConverge.
func (e *ConvergenceError) Unwrap() error { return ErrNoConverge }

// iteration cap actually used.  tests lower it to exercise failure.
var maxIter = MaxIter

// step tolerance for Newton-Raphson, a few ulps relative to the root.
const tol = 4 * 2.220446049250313e-16

// steps this small that fail to shrink are rounding noise.
const floor = 1e-12

func domainErr(fn, what string, v float64) error {
	return fmt.Errorf("%w: %s: %s (got %g)", ErrDomain, fn, what, v)
}

func checkElliptic(fn string, ecc float64) error {
	if !(ecc >= 0 && ecc < 1) {
		return domainErr(fn, "requires 0 <= ecc < 1", ecc)
	}
	return nil
}

func checkHyperbolic(fn string, ecc float64) error {
	if !(ecc > 1) || math.IsInf(ecc, 1) {
		return domainErr(fn, "requires ecc > 1", ecc)
	}
	return nil
}

func checkFinite(fn, name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return domainErr(fn, name+" must be finite", x)
	}
	return nil
}

// wrapPi reduces an angle to [-π, π].
func wrapPi(x float64) float64 {
	return math.Remainder(x, 2*math.Pi)
}
