package bc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// SlipWall is the inviscid reflective wall: the ghost state mirrors the
// interior's normal velocity component, leaving density, tangential
// velocity, and energy unchanged. Because reflection preserves speed,
// the ghost energy equals the interior energy exactly.
type SlipWall struct{}

func (SlipWall) Name() string { return "slip-wall" }

func (SlipWall) GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64 {
	ndotm := uL[1]*n[0] + uL[2]*n[1]
	return []float64{
		uL[0],
		uL[1] - 2*n[0]*ndotm,
		uL[2] - 2*n[1]*ndotm,
		uL[3],
	}
}

// GhostJacobian is the exact, constant reflection matrix
// I - 2*n*n^T applied to the momentum block; density and energy rows
// are the identity.
func (SlipWall) GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	nx, ny := n[0], n[1]
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1 - 2*nx*nx, -2 * nx * ny, 0,
		0, -2 * nx * ny, 1 - 2*ny*ny, 0,
		0, 0, 0, 1,
	})
}
