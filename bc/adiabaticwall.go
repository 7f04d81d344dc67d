package bc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// AdiabaticWall is the viscous no-slip, zero-heat-flux wall: the ghost
// velocity is the negative of the interior velocity (so the
// face-averaged velocity vanishes) and the ghost temperature equals
// the interior temperature (so dT/dn = 0 at the face). Energy is
// unaffected by the velocity sign flip, so the ghost energy equals the
// interior energy exactly.
type AdiabaticWall struct{}

func (AdiabaticWall) Name() string { return "adiabatic-wall" }

func (AdiabaticWall) GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64 {
	return []float64{uL[0], -uL[1], -uL[2], uL[3]}
}

func (AdiabaticWall) GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, -1, 0,
		0, 0, 0, 1,
	})
}
