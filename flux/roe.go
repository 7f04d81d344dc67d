package flux

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// Roe is the approximate Riemann solver built from the Roe-averaged
// Jacobian's eigen-decomposition, resolving all four waves
// (Toro, Riemann Solvers, ch. 11.3).
type Roe struct{}

func (Roe) Name() string { return "Roe" }

func (Roe) Eval(uL, uR []float64, n [2]float64, gas physics.Gas) []float64 {
	fl := physicalFlux(uL, n, gas)
	fr := physicalFlux(uR, n, gas)
	diss := roeDissipation(uL, uR, n, gas)

	out := make([]float64, len(uL))
	for i := range out {
		out[i] = 0.5*(fl[i]+fr[i]) - 0.5*diss[i]
	}
	return out
}

// Jacobian freezes the Roe matrix |A_Roe| under differentiation: the
// dissipation matrix is evaluated once at the current uL, uR and held
// constant while differentiating the central term exactly.
func (Roe) Jacobian(uL, uR []float64, n [2]float64, gas physics.Gas) (*mat.Dense, *mat.Dense) {
	absA := roeAbsJacobian(uL, uR, n, gas)
	al := physicalFluxJacobian(uL, n, gas)
	ar := physicalFluxJacobian(uR, n, gas)

	dL := scaleDense(0.5, al)
	dL = addDense(dL, scaleDense(0.5, absA))

	dR := scaleDense(0.5, ar)
	dR = addDense(dR, scaleDense(-0.5, absA))
	return dL, dR
}

// entropyFixDelta is the Harten entropy-fix threshold fraction of the
// Roe-averaged sound speed.
const entropyFixDelta = 0.1

func roeDissipation(uL, uR []float64, n [2]float64, gas physics.Gas) []float64 {
	absA := roeAbsJacobian(uL, uR, n, gas)
	du := make([]float64, len(uL))
	for i := range du {
		du[i] = uR[i] - uL[i]
	}
	duVec := mat.NewVecDense(len(du), du)
	var result mat.VecDense
	result.MulVec(absA, duVec)

	out := make([]float64, len(uL))
	for i := range out {
		out[i] = result.AtVec(i)
	}
	return out
}

// roeAbsJacobian assembles |A_Roe| = R * diag(|lambda|) * L, the
// characteristic-decomposed dissipation matrix, from the closed-form
// 2D Euler eigenvectors in the rotated (normal, tangential) frame.
func roeAbsJacobian(uL, uR []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	vx, vy, H, c := roeAverage(uL, uR, gas)
	t := [2]float64{-n[1], n[0]}
	vn := vx*n[0] + vy*n[1]
	vt := vx*t[0] + vy*t[1]
	q2 := vx*vx + vy*vy
	g := gas.Gamma

	lambda := [4]float64{vn - c, vn, vn, vn + c}
	eps := entropyFixDelta * c
	for i, l := range lambda {
		if math.Abs(l) < eps {
			lambda[i] = (l*l + eps*eps) / (2 * eps)
		} else {
			lambda[i] = math.Abs(l)
		}
	}

	// Right eigenvectors as columns, in (rho, rho*vx, rho*vy, rho*E).
	r1 := []float64{1, vx - c*n[0], vy - c*n[1], H - vn*c}
	r2 := []float64{1, vx, vy, 0.5 * q2}
	r3 := []float64{0, t[0], t[1], vt}
	r4 := []float64{1, vx + c*n[0], vy + c*n[1], H + vn*c}
	R := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		R.Set(i, 0, r1[i])
		R.Set(i, 1, r2[i])
		R.Set(i, 2, r3[i])
		R.Set(i, 3, r4[i])
	}

	gm1 := g - 1
	phi := 0.5 * gm1 * q2

	// Wave-strength row operators (left eigenvectors), expressed as
	// linear functionals of the conservative increment Δu via the
	// standard primitive-increment identities
	// Δp = (γ-1)(Δ(ρE) - ρ vx Δ(ρvx)/ρ - ρ vy Δ(ρvy)/ρ + 0.5|v|^2 Δρ),
	// Δvn = (n . Δ(ρv) - vn Δρ)/ρ, Δvt = (t . Δ(ρv) - vt Δρ)/ρ.
	l1 := []float64{
		(phi + c*vn) / (2 * c * c),
		(-gm1*vx - c*n[0]) / (2 * c * c),
		(-gm1*vy - c*n[1]) / (2 * c * c),
		gm1 / (2 * c * c),
	}
	l4 := []float64{
		(phi - c*vn) / (2 * c * c),
		(-gm1*vx + c*n[0]) / (2 * c * c),
		(-gm1*vy + c*n[1]) / (2 * c * c),
		gm1 / (2 * c * c),
	}
	l2 := []float64{
		1 - phi/(c*c),
		gm1 * vx / (c * c),
		gm1 * vy / (c * c),
		-gm1 / (c * c),
	}
	l3 := []float64{-vt, t[0], t[1], 0}

	L := mat.NewDense(4, 4, nil)
	for j := 0; j < 4; j++ {
		L.Set(0, j, l1[j])
		L.Set(1, j, l2[j])
		L.Set(2, j, l3[j])
		L.Set(3, j, l4[j])
	}

	lambdaScaledR := mat.NewDense(4, 4, nil)
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			lambdaScaledR.Set(i, j, R.At(i, j)*lambda[j])
		}
	}

	var absA mat.Dense
	absA.Mul(lambdaScaledR, L)
	return &absA
}
