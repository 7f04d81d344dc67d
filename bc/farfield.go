package bc

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// FarField is the inflow/outflow far-field closure: the ghost state is
// the free-stream state UInf, independent of the interior state, so its
// Jacobian with respect to the interior state is zero.
type FarField struct {
	UInf []float64
}

func (FarField) Name() string { return "far-field" }

func (f FarField) GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64 {
	return append([]float64(nil), f.UInf...)
}

func (f FarField) GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	return mat.NewDense(len(uL), len(uL), nil)
}

// riemannBoundaryState implements the Riemann-invariant boundary state
// (one characteristic carrying interior information out, one carrying
// free-stream information in, entropy and tangential velocity taken
// from the upwind side, e.g. Blazek, CFD Principles, sec. 8.5) that
// Characteristic uses on subsonic faces.
func riemannBoundaryState(uL, uInf []float64, n [2]float64, gas physics.Gas) []float64 {
	t := [2]float64{-n[1], n[0]}

	rhoL, vxL, vyL, _ := gas.ToPrimitive(uL)
	cL := gas.SoundSpeed(uL)
	vnL := vxL*n[0] + vyL*n[1]

	rhoInf, vxInf, vyInf, _ := gas.ToPrimitive(uInf)
	cInf := gas.SoundSpeed(uInf)
	vnInf := vxInf*n[0] + vyInf*n[1]

	g := gas.Gamma
	rPlus := vnL + 2*cL/(g-1)
	rMinus := vnInf - 2*cInf/(g-1)

	vnB := 0.5 * (rPlus + rMinus)
	cB := (g - 1) / 4 * (rPlus - rMinus)

	var rho, vx, vy, s float64
	var vt float64
	if vnL >= 0 {
		// outflow: entropy and tangential velocity come from the interior
		s = gas.Pressure(uL) / math.Pow(rhoL, g)
		vt = vxL*t[0] + vyL*t[1]
	} else {
		// inflow: entropy and tangential velocity come from freestream
		s = gas.Pressure(uInf) / math.Pow(rhoInf, g)
		vt = vxInf*t[0] + vyInf*t[1]
	}

	rho = math.Pow(cB*cB/(g*s), 1/(g-1))
	p := rho * cB * cB / g
	vx = vnB*n[0] + vt*t[0]
	vy = vnB*n[1] + vt*t[1]
	T := p * g * gas.MInf * gas.MInf / rho

	return gas.ToConservative(rho, vx, vy, T)
}
