// Public domain.

package anomaly

import "fmt"

// Vectorized conversions.
//
// Each takes a slice of anomalies and a slice of eccentricities.  The
// eccentricity slice must either match the anomaly slice in length or have
// length 1, in which case the single value applies to every anomaly.  The
// first failing element aborts the conversion; its index is in the error.

func vectorize(name string, fn func(x, ecc float64) (float64, error),
	xs, eccs []float64) ([]float64, error) {
	if len(eccs) != 1 && len(eccs) != len(xs) {
		return nil, fmt.Errorf("anomaly: %s: %d eccentricities for %d anomalies",
			name, len(eccs), len(xs))
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		ecc := eccs[0]
		if len(eccs) > 1 {
			ecc = eccs[i]
		}
		y, err := fn(x, ecc)
		if err != nil {
			return nil, fmt.Errorf("%s element %d: %w", name, i, err)
		}
		out[i] = y
	}
	return out, nil
}

// M2EV is the vectorized M2E.
func M2EV(Ms, eccs []float64) ([]float64, error) { return vectorize("M2EV", M2E, Ms, eccs) }

// E2MV is the vectorized E2M.
func E2MV(Es, eccs []float64) ([]float64, error) { return vectorize("E2MV", E2M, Es, eccs) }

// M2FV is the vectorized M2F.
func M2FV(Ms, eccs []float64) ([]float64, error) { return vectorize("M2FV", M2F, Ms, eccs) }

// F2MV is the vectorized F2M.
func F2MV(fs, eccs []float64) ([]float64, error) { return vectorize("F2MV", F2M, fs, eccs) }

// E2FV is the vectorized E2F.
func E2FV(Es, eccs []float64) ([]float64, error) { return vectorize("E2FV", E2F, Es, eccs) }

// F2EV is the vectorized F2E.
func F2EV(fs, eccs []float64) ([]float64, error) { return vectorize("F2EV", F2E, fs, eccs) }

// N2HV is the vectorized N2H.
func N2HV(Ns, eccs []float64) ([]float64, error) { return vectorize("N2HV", N2H, Ns, eccs) }

// H2NV is the vectorized H2N.
func H2NV(Hs, eccs []float64) ([]float64, error) { return vectorize("H2NV", H2N, Hs, eccs) }

// N2FV is the vectorized N2F.
func N2FV(Ns, eccs []float64) ([]float64, error) { return vectorize("N2FV", N2F, Ns, eccs) }

// F2NV is the vectorized F2N.
func F2NV(fs, eccs []float64) ([]float64, error) { return vectorize("F2NV", F2N, fs, eccs) }

// H2FV is the vectorized H2F.
func H2FV(Hs, eccs []float64) ([]float64, error) { return vectorize("H2FV", H2F, Hs, eccs) }

// F2HV is the vectorized F2H.
func F2HV(fs, eccs []float64) ([]float64, error) { return vectorize("F2HV", F2H, fs, eccs) }

// Zeta2FV is the vectorized Zeta2F.
func Zeta2FV(zetas, eccs []float64) ([]float64, error) {
	return vectorize("Zeta2FV", Zeta2F, zetas, eccs)
}

// F2ZetaV is the vectorized F2Zeta.
func F2ZetaV(fs, eccs []float64) ([]float64, error) {
	return vectorize("F2ZetaV", F2Zeta, fs, eccs)
}
