package spatial

import (
	"math"
	"testing"

	"github.com/strandscfd/strands2d/bc"
	"github.com/strandscfd/strands2d/flux"
	"github.com/strandscfd/strands2d/limiter"
	"github.com/strandscfd/strands2d/linop"
	"github.com/strandscfd/strands2d/physics"
	"github.com/strandscfd/strands2d/recon"
)

// TestJacobianVectorProductMatchesAssembledJacobian checks
// JacobianVectorProduct's finite-difference approximation of J*v
// against the same action computed from the analytically-assembled
// Jacobian (AssembleJacobian + linop.Operator.Apply), on the single-
// interior-face fixture also used to check Jacobian conservation.
func TestJacobianVectorProductMatchesAssembledJacobian(t *testing.T) {
	m := twoCellSingleFaceMesh()
	f, err := flux.New("LLF")
	if err != nil {
		t.Fatal(err)
	}
	d := New(m, testGas, physics.NVarsEuler, f, f, recon.None{}, limiter.None{}, map[int]bc.Rule{})

	uL := testGas.Freestream(0.05)
	uR := testGas.Freestream(-0.05)
	u := [][]float64{uL, uR}

	r0, err := d.Residual(u)
	if err != nil {
		t.Fatal(err)
	}

	op := linop.New(m, physics.NVarsEuler)
	d.AssembleJacobian(u, op)

	v := [][]float64{{1, 0.1, -0.2, 0.3}, {-0.5, 0.2, 0.1, -0.4}}

	jv, err := d.JacobianVectorProduct(u, v, r0)
	if err != nil {
		t.Fatal(err)
	}

	flatV := make([]float64, 0, 2*physics.NVarsEuler)
	for _, row := range v {
		flatV = append(flatV, row...)
	}
	applied := op.Apply(flatV)

	for c := 0; c < 2; c++ {
		for k := 0; k < physics.NVarsEuler; k++ {
			want := applied[c*physics.NVarsEuler+k]
			got := jv[c][k]
			tol := 1e-3*math.Abs(want) + 1e-6
			if math.Abs(got-want) > tol {
				t.Errorf("cell %d var %d: JacobianVectorProduct = %g, analytic J*v = %g", c, k, got, want)
			}
		}
	}
}

// TestJacobianVectorProductZeroDirection checks the v==0 short-circuit
// returns an exact zero without evaluating the residual at a
// perturbed (here, unchanged) state.
func TestJacobianVectorProductZeroDirection(t *testing.T) {
	m := twoCellSingleFaceMesh()
	f, err := flux.New("LLF")
	if err != nil {
		t.Fatal(err)
	}
	d := New(m, testGas, physics.NVarsEuler, f, f, recon.None{}, limiter.None{}, map[int]bc.Rule{})

	u := [][]float64{testGas.Freestream(0), testGas.Freestream(0)}
	r0, err := d.Residual(u)
	if err != nil {
		t.Fatal(err)
	}
	v := [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}}

	jv, err := d.JacobianVectorProduct(u, v, r0)
	if err != nil {
		t.Fatal(err)
	}
	for c := range jv {
		for k := range jv[c] {
			if jv[c][k] != 0 {
				t.Errorf("cell %d var %d: expected exact zero for v=0, got %g", c, k, jv[c][k])
			}
		}
	}
}

