package flux

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// HLLC is the three-wave Harten-Lax-van Leer-Contact flux, restoring
// the contact/shear wave HLL discards.
type HLLC struct{}

func (HLLC) Name() string { return "HLLC" }

func (HLLC) Eval(uL, uR []float64, n [2]float64, gas physics.Gas) []float64 {
	sl, sr := hllWaveSpeeds(uL, uR, n, gas)

	wL := toNormalTangential(uL, n)
	wR := toNormalTangential(uR, n)
	rhoL, vnL, vtL, pL := rotatedPrimitive(wL, gas)
	rhoR, vnR, vtR, pR := rotatedPrimitive(wR, gas)

	sStar := (pR - pL + rhoL*vnL*(sl-vnL) - rhoR*vnR*(sr-vnR)) /
		(rhoL*(sl-vnL) - rhoR*(sr-vnR))

	switch {
	case sl >= 0:
		return physicalFlux(uL, n, gas)
	case sr <= 0:
		return physicalFlux(uR, n, gas)
	case sStar >= 0:
		wStar := hllcStar(wL, rhoL, vnL, vtL, pL, sl, sStar)
		fL := rotatedFlux(wL, gas)
		out := make([]float64, 4)
		for i := range out {
			out[i] = fL[i] + sl*(wStar[i]-wL[i])
		}
		return fromNormalTangential(out, n)
	default:
		wStar := hllcStar(wR, rhoR, vnR, vtR, pR, sr, sStar)
		fR := rotatedFlux(wR, gas)
		out := make([]float64, 4)
		for i := range out {
			out[i] = fR[i] + sr*(wStar[i]-wR[i])
		}
		return fromNormalTangential(out, n)
	}
}

func (h HLLC) Jacobian(uL, uR []float64, n [2]float64, gas physics.Gas) (*mat.Dense, *mat.Dense) {
	return fdFluxJacobian(func(a, b []float64) []float64 { return h.Eval(a, b, n, gas) }, uL, uR)
}

// hllcStar returns the rotated star-state conservative vector on side
// K (Toro, Riemann Solvers, eq. 10.73).
func hllcStar(wK []float64, rhoK, vnK, vtK, pK, sK, sStar float64) []float64 {
	rhoE := wK[3]
	factor := rhoK * (sK - vnK) / (sK - sStar)
	energyPerMass := rhoE/rhoK + (sStar-vnK)*(sStar+pK/(rhoK*(sK-vnK)))
	return []float64{
		factor,
		factor * sStar,
		factor * vtK,
		factor * energyPerMass,
	}
}

// toNormalTangential rotates a conservative state into the (normal,
// tangential) face frame: (rho, rho*vn, rho*vt, rho*E).
func toNormalTangential(u []float64, n [2]float64) []float64 {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	t := [2]float64{-n[1], n[0]}
	vn := vx*n[0] + vy*n[1]
	vt := vx*t[0] + vy*t[1]
	return []float64{rho, rho * vn, rho * vt, u[3]}
}

// fromNormalTangential rotates a rotated-frame conservative vector
// back into (x, y) conservative components.
func fromNormalTangential(w []float64, n [2]float64) []float64 {
	rho := w[0]
	vn, vt := w[1]/rho, w[2]/rho
	t := [2]float64{-n[1], n[0]}
	vx := vn*n[0] + vt*t[0]
	vy := vn*n[1] + vt*t[1]
	return []float64{rho, rho * vx, rho * vy, w[3]}
}

// rotatedPrimitive returns (rho, vn, vt, p) from a rotated-frame
// conservative vector.
func rotatedPrimitive(w []float64, gas physics.Gas) (rho, vn, vt, p float64) {
	rho = w[0]
	vn, vt = w[1]/rho, w[2]/rho
	p = (gas.Gamma - 1) * (w[3] - 0.5*rho*(vn*vn+vt*vt))
	return
}

// rotatedFlux is the 1D Euler flux of a rotated-frame conservative
// vector, treating the normal direction as the 1D flow axis.
func rotatedFlux(w []float64, gas physics.Gas) []float64 {
	rho, vn, vt, p := rotatedPrimitive(w, gas)
	rhoE := w[3]
	return []float64{
		rho * vn,
		rho*vn*vn + p,
		rho * vn * vt,
		vn * (rhoE + p),
	}
}
