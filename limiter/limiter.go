// Package limiter implements spec §4.5's slope limiters: None (fully
// unlimited MUSCL), WENO, Van Albada, Barth-Jespersen, and
// Venkatakrishnan. Every variant reduces to a single scalar
// coefficient per cell per variable that scales the reconstructed
// gradient before face extrapolation — the same per-cell-coefficient
// formulation used by Barth-Jespersen and Venkatakrishnan in their
// original unstructured form, generalized here to cover all five
// variants with one interface.
package limiter

import "fmt"

// Face is one face of a cell's stencil: the extrapolated
// (unlimited, phi=1) face value u_c + grad.dr, and the cell-to-face
// distance used by length-scale-dependent variants.
type Face struct {
	Extrapolated float64
	Dist         float64
}

// Limiter computes the scalar coefficient phi in [0,1] that scales a
// cell's reconstructed gradient.
type Limiter interface {
	Name() string
	// Coefficient returns phi given the cell average uC, the min/max of
	// uC over its stencil (including uC itself), and its faces'
	// unlimited extrapolated values.
	Coefficient(uC, uMin, uMax float64, faces []Face) float64
}

// New returns the Limiter named by name: "none", "weno", "van-albada",
// "barth-jespersen", or "venkatakrishnan".
func New(name string) (Limiter, error) {
	switch name {
	case "none":
		return None{}, nil
	case "weno":
		return WENO{}, nil
	case "van-albada":
		return VanAlbada{}, nil
	case "barth-jespersen":
		return BarthJespersen{}, nil
	case "venkatakrishnan":
		return Venkatakrishnan{K: 0.3}, nil
	default:
		return nil, fmt.Errorf("limiter: unknown variant %q", name)
	}
}

// None never limits: phi=1 always, the full-order unlimited MUSCL
// reconstruction.
type None struct{}

func (None) Name() string { return "none" }
func (None) Coefficient(uC, uMin, uMax float64, faces []Face) float64 { return 1 }
