package flux

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// VanLeer is Van Leer's flux-vector splitting: each side's flux is
// split into a purely-convected (upwind) part and a pressure part,
// blended smoothly through the subsonic range |M| < 1.
type VanLeer struct{}

func (VanLeer) Name() string { return "VanLeer" }

func (VanLeer) Eval(uL, uR []float64, n [2]float64, gas physics.Gas) []float64 {
	fp := vanLeerSplit(uL, n, gas, +1)
	fm := vanLeerSplit(uR, n, gas, -1)
	out := make([]float64, len(uL))
	for i := range out {
		out[i] = fp[i] + fm[i]
	}
	return out
}

func (v VanLeer) Jacobian(uL, uR []float64, n [2]float64, gas physics.Gas) (*mat.Dense, *mat.Dense) {
	return fdFluxJacobian(func(a, b []float64) []float64 { return v.Eval(a, b, n, gas) }, uL, uR)
}

// vanLeerSplit returns the positive (sign=+1) or negative (sign=-1)
// split flux of state u across a face of normal n. t is the
// tangential direction (-ny, nx).
func vanLeerSplit(u []float64, n [2]float64, gas physics.Gas, sign float64) []float64 {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	c := gas.SoundSpeed(u)
	vn := vx*n[0] + vy*n[1]
	t := [2]float64{-n[1], n[0]}
	vt := vx*t[0] + vy*t[1]
	M := vn / c
	g := gas.Gamma

	switch {
	case sign > 0 && M >= 1:
		return physicalFlux(u, n, gas)
	case sign > 0 && M <= -1:
		return make([]float64, len(u))
	case sign < 0 && M <= -1:
		return physicalFlux(u, n, gas)
	case sign < 0 && M >= 1:
		return make([]float64, len(u))
	}

	fMass := sign * rho * c * (M+sign)*(M+sign) / 4
	fMomN := fMass * ((-vn+sign*2*c)/g + vn)
	fMomT := fMass * vt
	fEnergy := fMass * (math.Pow((g-1)*vn+sign*2*c, 2)/(2*(g*g-1)) + 0.5*vt*vt)

	return []float64{
		fMass,
		fMomN*n[0] - fMomT*n[1],
		fMomN*n[1] + fMomT*n[0],
		fEnergy,
	}
}
