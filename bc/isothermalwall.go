package bc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// IsothermalWall is the viscous no-slip wall with a prescribed wall
// temperature Tw: velocity mirrors as in AdiabaticWall, and the ghost
// temperature is chosen by linear extrapolation through the wall
// (T_g = 2*Tw - T_L) so the face-averaged temperature equals Tw.
// Pressure is extrapolated with a zero gradient (p_g = p_L), the
// standard closure for the missing thermodynamic degree of freedom.
type IsothermalWall struct {
	Tw float64
}

func (IsothermalWall) Name() string { return "isothermal-wall" }

func (w IsothermalWall) GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64 {
	_, vx, vy, TL := gas.ToPrimitive(uL)
	p := gas.Pressure(uL)
	Tg := 2*w.Tw - TL
	rhoG := p * gas.Gamma * gas.MInf * gas.MInf / Tg
	return gas.ToConservative(rhoG, -vx, -vy, Tg)
}

func (w IsothermalWall) GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	return fdGhostJacobian(func(u []float64) []float64 { return w.GhostState(u, n, gas) }, uL)
}
