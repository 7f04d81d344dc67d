// Package recon implements spec §4.4's gradient-reconstruction
// variants: piecewise-constant (no gradient), weighted least-squares,
// and Green-Gauss. Every variant produces one gradient per cell per
// conserved variable, tagged with the variable space (conservative or
// primitive) it was computed in, per the variable-space Open Question
// decision recorded in the project's grounding ledger.
package recon

import (
	"fmt"

	"github.com/strandscfd/strands2d/mesh"
)

// Space names the variable space a Reconstructor's gradients are
// computed in. spatial always converts face-extrapolated values back
// to conservative variables before invoking a flux.
type Space int

const (
	// Conservative gradients are computed directly on (rho, rho*vx, rho*vy, rho*E).
	Conservative Space = iota
	// Primitive gradients are computed on (rho, vx, vy, T) and
	// converted back to conservative at the face.
	Primitive
)

// Gradients holds, for one cell, the x- and y-gradient of each of the
// nvars state components.
type Gradients struct {
	DX, DY []float64
}

// Neighbor is one stencil member contributing to a cell's gradient:
// its position (a real cell centroid or a reflected ghost center), its
// state (already converted to the Reconstructor's variable space), and
// the shared face's outward normal/length for Green-Gauss.
type Neighbor struct {
	Pos          [2]float64
	State        []float64
	FaceNormal   [2]float64
	FaceLength   float64
}

// Reconstructor computes cell gradients from cell-averaged state and
// mesh connectivity. spatial resolves each cell's stencil (including
// ghost reflection across boundary faces) since only it knows how to
// evaluate a ghost state; recon only consumes the resolved stencil.
type Reconstructor interface {
	// Name returns the configuration name of the variant.
	Name() string
	// Space reports the variable space these gradients are computed in.
	Space() Space
	// Compute returns one Gradients per cell, given each cell's own
	// position/state and its resolved stencil of neighbors.
	Compute(v mesh.View, nvars int, cellPos func(c int) [2]float64, cellState func(c int) []float64, stencil func(c int) []Neighbor) []Gradients
}

// New returns the Reconstructor named by name: "none", "lsq", or
// "green-gauss", in the requested variable space.
func New(name string, space Space) (Reconstructor, error) {
	switch name {
	case "none", "constant":
		return None{}, nil
	case "lsq", "weighted-lsq":
		return LeastSquares{Space_: space}, nil
	case "green-gauss":
		return GreenGauss{Space_: space}, nil
	default:
		return nil, fmt.Errorf("recon: unknown variant %q", name)
	}
}

// None is the piecewise-constant (zero-gradient) reconstruction.
type None struct{}

func (None) Name() string { return "none" }
func (None) Space() Space { return Conservative }
func (None) Compute(v mesh.View, nvars int, cellPos func(c int) [2]float64, cellState func(c int) []float64, stencil func(c int) []Neighbor) []Gradients {
	out := make([]Gradients, v.NumCells())
	for c := range out {
		out[c] = Gradients{DX: make([]float64, nvars), DY: make([]float64, nvars)}
	}
	return out
}
