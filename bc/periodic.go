package bc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// Periodic is a marker-registry placeholder: periodic faces are paired
// directly to a real interior cell during mesh preprocessing (see
// internal/meshio), so spatial never calls GhostState/GhostJacobian for
// them — the paired cell's own state and an identity Jacobian serve
// that role. Periodic exists only so periodic markers resolve through
// the same bc.New factory as every other marker kind.
type Periodic struct{}

func (Periodic) Name() string { return "periodic" }

func (Periodic) GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64 {
	return append([]float64(nil), uL...)
}

func (Periodic) GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	return identity(len(uL))
}
