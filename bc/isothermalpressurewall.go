package bc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// IsothermalPressureWall extends IsothermalWall with a prescribed wall
// pressure Pw, extrapolating both temperature and pressure linearly
// through the wall instead of holding pressure at its interior value.
type IsothermalPressureWall struct {
	Tw, Pw float64
}

func (IsothermalPressureWall) Name() string { return "isothermal-pressure-wall" }

func (w IsothermalPressureWall) GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64 {
	_, vx, vy, TL := gas.ToPrimitive(uL)
	pL := gas.Pressure(uL)
	Tg := 2*w.Tw - TL
	pg := 2*w.Pw - pL
	rhoG := pg * gas.Gamma * gas.MInf * gas.MInf / Tg
	return gas.ToConservative(rhoG, -vx, -vy, Tg)
}

func (w IsothermalPressureWall) GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	return fdGhostJacobian(func(u []float64) []float64 { return w.GhostState(u, n, gas) }, uL)
}
