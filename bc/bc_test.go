package bc

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

var testGas = physics.Gas{Gamma: 1.4, MInf: 0.5}

func sampleInterior() []float64 {
	return testGas.ToConservative(1.1, 0.4, -0.15, 1.02)
}

func TestSlipWallPreservesSpeedAndDensity(t *testing.T) {
	uL := sampleInterior()
	n := [2]float64{0.6, 0.8}
	ug := SlipWall{}.GhostState(uL, n, testGas)

	if ug[0] != uL[0] {
		t.Errorf("density changed: %g vs %g", ug[0], uL[0])
	}
	if ug[3] != uL[3] {
		t.Errorf("energy changed: %g vs %g", ug[3], uL[3])
	}
	speedL := math.Hypot(uL[1]/uL[0], uL[2]/uL[0])
	speedG := math.Hypot(ug[1]/ug[0], ug[2]/ug[0])
	if math.Abs(speedL-speedG) > 1e-12 {
		t.Errorf("speed not preserved: %g vs %g", speedL, speedG)
	}
}

func TestSlipWallNormalVelocityFlips(t *testing.T) {
	uL := sampleInterior()
	n := [2]float64{1, 0}
	ug := SlipWall{}.GhostState(uL, n, testGas)
	vnL := uL[1]*n[0] + uL[2]*n[1]
	vnG := ug[1]*n[0] + ug[2]*n[1]
	if math.Abs(vnL+vnG) > 1e-12 {
		t.Errorf("normal velocity did not flip sign: vnL=%g vnG=%g", vnL, vnG)
	}
}

// TestGhostJacobiansMatchFiniteDifference checks every rule's analytic
// GhostJacobian against central differences of its own GhostState.
func TestGhostJacobiansMatchFiniteDifference(t *testing.T) {
	uL := sampleInterior()
	n := normalize([2]float64{0.3, 0.95})

	rules := []Rule{
		SlipWall{},
		AdiabaticWall{},
		IsothermalWall{Tw: 1.1},
		IsothermalPressureWall{Tw: 1.1, Pw: 0.9},
		FarField{UInf: testGas.Freestream(0.05)},
		Characteristic{UInf: testGas.Freestream(0.05)},
	}

	for _, r := range rules {
		jac := r.GhostJacobian(uL, n, testGas)
		fdJac := mat.NewDense(4, 4, nil)
		fd.Jacobian(fdJac, func(y, x []float64) {
			copy(y, r.GhostState(x, n, testGas))
		}, append([]float64(nil), uL...), &fd.JacobianSettings{Formula: fd.Central})

		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				if math.Abs(jac.At(i, j)-fdJac.At(i, j)) > 1e-4 {
					t.Errorf("%s: jac[%d][%d] = %g, fd = %g", r.Name(), i, j, jac.At(i, j), fdJac.At(i, j))
				}
			}
		}
	}
}

func TestCharacteristicGatedByDefault(t *testing.T) {
	_, err := New(Config{Kind: "characteristic"}, testGas)
	if err == nil {
		t.Fatal("expected characteristic boundary to be refused without the experimental flag")
	}
	_, err = New(Config{Kind: "characteristic", AllowExperimentalCharacteristic: true}, testGas)
	if err != nil {
		t.Fatalf("unexpected error with flag set: %v", err)
	}
}

func normalize(n [2]float64) [2]float64 {
	l := math.Hypot(n[0], n[1])
	return [2]float64{n[0] / l, n[1] / l}
}
