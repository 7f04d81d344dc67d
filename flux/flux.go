// Package flux implements the numerical-flux variants of spec §4.3:
// LLF, Van Leer, HLL, HLLC, and Roe, each exposing a conservative
// normal flux and a flux Jacobian pair for implicit assembly: closed
// form for LLF and Roe (Roe holding |A_Roe| fixed), central differences
// of Eval for Van Leer, HLL and HLLC. Flux is a small capability interface (design notes §9)
// rather than an open class hierarchy, with a factory selecting the
// variant from a configuration string.
package flux

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// Flux is the contract every numerical-flux variant satisfies.
type Flux interface {
	// Name returns the configuration name of the variant.
	Name() string
	// Eval returns the conservative normal flux across a face of unit
	// normal n, given left/right states uL, uR.
	Eval(uL, uR []float64, n [2]float64, gas physics.Gas) []float64
	// Jacobian returns (dF/duL, dF/duR), the flux Jacobians with
	// respect to the left and right states (see the package doc for
	// which variants are closed form and which are differenced).
	Jacobian(uL, uR []float64, n [2]float64, gas physics.Gas) (dL, dR *mat.Dense)
}

// New returns the Flux variant named by name (case-insensitive):
// "LLF", "VanLeer", "HLL", "HLLC", or "Roe".
func New(name string) (Flux, error) {
	switch normalizeName(name) {
	case "llf":
		return LLF{}, nil
	case "vanleer":
		return VanLeer{}, nil
	case "hll":
		return HLL{}, nil
	case "hllc":
		return HLLC{}, nil
	case "roe":
		return Roe{}, nil
	default:
		return nil, fmt.Errorf("flux: unknown variant %q", name)
	}
}

// NewJacobianFlux resolves the Jacobian_inviscid_flux configuration
// option: any flux name, or the sentinel "consistent" which maps the
// Jacobian flux to match the residual flux.
func NewJacobianFlux(name string, residualFlux Flux) (Flux, error) {
	if normalizeName(name) == "consistent" {
		return residualFlux, nil
	}
	return New(name)
}

func normalizeName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
