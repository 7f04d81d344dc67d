package limiter

import "math"

// WENO blends the constant (phi=0) and linear (phi=1) reconstructions
// with nonlinear weights driven by a smoothness indicator on the
// extrapolated overshoot, the same essential idea as unstructured WENO
// limiters (e.g. Zhu & Qiu): candidates that oscillate more across the
// stencil are down-weighted relative to the smooth one.
type WENO struct {
	// Epsilon avoids division by zero in flat regions; Gamma is the
	// linear-candidate's optimal (unlimited) weight.
	Epsilon, Gamma float64
}

func (WENO) Name() string { return "weno" }

func (w WENO) Coefficient(uC, uMin, uMax float64, faces []Face) float64 {
	eps := w.Epsilon
	if eps == 0 {
		eps = 1e-6
	}
	gamma := w.Gamma
	if gamma == 0 {
		gamma = 0.999
	}

	beta0 := 0.0 // the constant candidate never oscillates
	var beta1 float64
	for _, f := range faces {
		d := f.Extrapolated - uC
		beta1 += d * d
	}

	w0 := (1 - gamma) / math.Pow(eps+beta0, 2)
	w1 := gamma / math.Pow(eps+beta1, 2)
	return w1 / (w0 + w1)
}
