package flux

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// LLF is the local Lax-Friedrichs (Rusanov) flux: the cheapest and
// most diffusive variant, and a cheap Jacobian flux for implicit runs
// paired with a sharper residual flux (spec §4.3).
type LLF struct{}

func (LLF) Name() string { return "LLF" }

func (LLF) Eval(uL, uR []float64, n [2]float64, gas physics.Gas) []float64 {
	fl := physicalFlux(uL, n, gas)
	fr := physicalFlux(uR, n, gas)
	smax := maxWaveSpeed(uL, uR, n, gas)
	out := make([]float64, len(uL))
	for i := range out {
		out[i] = 0.5*(fl[i]+fr[i]) - 0.5*smax*(uR[i]-uL[i])
	}
	return out
}

// Jacobian differentiates the Rusanov flux in closed form, including
// smax's own dependence on the state that attains it (the right state
// on a tie, as in maxWaveSpeed).
func (LLF) Jacobian(uL, uR []float64, n [2]float64, gas physics.Gas) (*mat.Dense, *mat.Dense) {
	smax := maxWaveSpeed(uL, uR, n, gas)
	al := physicalFluxJacobian(uL, n, gas)
	ar := physicalFluxJacobian(uR, n, gas)
	id := identity(len(uL))

	dL := scaleDense(0.5, al)
	dL = addDense(dL, scaleDense(0.5*smax, id))

	dR := scaleDense(0.5, ar)
	dR = addDense(dR, scaleDense(-0.5*smax, id))

	// d(smax)/du of |v.n|+c on the attaining side adds -0.5*(uR-uL) (outer) ds.
	side, u := dR, uR
	if maxWaveSpeed(uL, uL, n, gas) > maxWaveSpeed(uR, uR, n, gas) {
		side, u = dL, uL
	}
	rho, vx, vy, _ := gas.ToPrimitive(u)
	vn, c, p, gm1 := vx*n[0]+vy*n[1], gas.SoundSpeed(u), gas.Pressure(u), gas.Gamma-1
	sg, k := math.Copysign(1/rho, vn), gas.Gamma/(2*c*rho)
	ds := []float64{-sg*vn + k*(0.5*gm1*(vx*vx+vy*vy)-p/rho), sg*n[0] - k*gm1*vx, sg*n[1] - k*gm1*vy, k * gm1}
	for i := range u {
		for j := range ds {
			side.Set(i, j, side.At(i, j)-0.5*(uR[i]-uL[i])*ds[j])
		}
	}
	return dL, dR
}

func maxWaveSpeed(uL, uR []float64, n [2]float64, gas physics.Gas) float64 {
	vnL := (uL[1]*n[0] + uL[2]*n[1]) / uL[0]
	vnR := (uR[1]*n[0] + uR[2]*n[1]) / uR[0]
	sL := math.Abs(vnL) + gas.SoundSpeed(uL)
	sR := math.Abs(vnR) + gas.SoundSpeed(uR)
	if sL > sR {
		return sL
	}
	return sR
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
