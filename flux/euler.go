package flux

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// physicalFlux returns the exact normal physical flux F(u).n for the
// 2D compressible Euler system, used as the consistency reference
// every variant's Eval(u, u, n) must reduce to.
func physicalFlux(u []float64, n [2]float64, gas physics.Gas) []float64 {
	rho, ux, uy := u[0], u[1]/u[0], u[2]/u[0]
	p := gas.Pressure(u)
	rhoE := u[3]
	vn := ux*n[0] + uy*n[1]
	return []float64{
		rho * vn,
		u[1]*vn + p*n[0],
		u[2]*vn + p*n[1],
		vn * (rhoE + p),
	}
}

// physicalFluxJacobian returns A(u,n) = d(F(u).n)/du, assembled as
// nx*Ax + ny*Ay from the textbook x/y Euler flux Jacobians (Toro,
// Riemann Solvers and Numerical Methods for Fluid Dynamics, ch. 3).
func physicalFluxJacobian(u []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	g := gas.Gamma
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	q2 := vx*vx + vy*vy
	p := gas.Pressure(u)
	E := u[3] / rho
	H := E + p/rho
	gm1 := g - 1

	ax := mat.NewDense(4, 4, []float64{
		0, 1, 0, 0,
		gm1*q2/2 - vx*vx, (3 - g) * vx, -gm1 * vy, gm1,
		-vx * vy, vy, vx, 0,
		vx * (gm1*q2/2 - H), H - gm1*vx*vx, -gm1 * vx * vy, g * vx,
	})
	ay := mat.NewDense(4, 4, []float64{
		0, 0, 1, 0,
		-vx * vy, vy, vx, 0,
		gm1*q2/2 - vy*vy, -gm1 * vx, (3 - g) * vy, gm1,
		vy * (gm1*q2/2 - H), -gm1 * vx * vy, H - gm1*vy*vy, g * vy,
	})

	var a mat.Dense
	a.Scale(n[0], ax)
	var ayScaled mat.Dense
	ayScaled.Scale(n[1], ay)
	a.Add(&a, &ayScaled)
	return &a
}

// roeAverage computes the Roe-averaged state (vx, vy, H, c) from left
// and right conservative states, the standard density-weighted average
// used by both the Roe and HLLC variants.
func roeAverage(uL, uR []float64, gas physics.Gas) (vx, vy, H, c float64) {
	rhoL, rhoR := uL[0], uR[0]
	sqL, sqR := math.Sqrt(rhoL), math.Sqrt(rhoR)
	wL, wR := sqL/(sqL+sqR), sqR/(sqL+sqR)

	vxL, vyL := uL[1]/rhoL, uL[2]/rhoL
	vxR, vyR := uR[1]/rhoR, uR[2]/rhoR
	pL, pR := gas.Pressure(uL), gas.Pressure(uR)
	HL := (uL[3] + pL) / rhoL
	HR := (uR[3] + pR) / rhoR

	vx = wL*vxL + wR*vxR
	vy = wL*vyL + wR*vyR
	H = wL*HL + wR*HR
	q2 := vx*vx + vy*vy
	c = math.Sqrt((gas.Gamma - 1) * (H - 0.5*q2))
	return
}

func addDense(a, b *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Add(a, b)
	return &out
}

func scaleDense(s float64, a *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Scale(s, a)
	return &out
}

// fdFluxJacobian differentiates an Eval function by central
// differences (gonum/diff/fd), applied per-face for the variants whose
// closed-form flux Jacobian is impractical to hand derive (Van Leer,
// HLL, HLLC). The matrix-free Jacobian-vector product of spec §4.7 is a
// separate, one-sided difference of the whole residual. LLF and Roe
// build their Jacobians in closed form and do not call this.
func fdFluxJacobian(eval func(uL, uR []float64) []float64, uL, uR []float64) (dL, dR *mat.Dense) {
	nvars := len(uL)
	settings := &fd.JacobianSettings{Formula: fd.Central}

	jl := mat.NewDense(nvars, nvars, nil)
	fd.Jacobian(jl, func(y, x []float64) {
		copy(y, eval(x, uR))
	}, append([]float64(nil), uL...), settings)

	jr := mat.NewDense(nvars, nvars, nil)
	fd.Jacobian(jr, func(y, x []float64) {
		copy(y, eval(uL, x))
	}, append([]float64(nil), uR...), settings)

	return jl, jr
}
