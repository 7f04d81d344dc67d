package bc

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// fdGhostJacobian differentiates a ghost-state map by central
// differences, for the rules whose closure is nonlinear in the
// interior state (isothermal and isothermal-pressure walls, and the
// characteristic inflow/outflow rule) where a hand-derived closed form
// isn't worth the complexity it would add. Slip and adiabatic walls use
// exact closed forms instead, since reflection there is already linear;
// the far-field ghost is constant, so its Jacobian is zero.
func fdGhostJacobian(ghost func(u []float64) []float64, uL []float64) *mat.Dense {
	nvars := len(uL)
	jac := mat.NewDense(nvars, nvars, nil)
	fd.Jacobian(jac, func(y, x []float64) {
		copy(y, ghost(x))
	}, append([]float64(nil), uL...), &fd.JacobianSettings{Formula: fd.Central})
	return jac
}
