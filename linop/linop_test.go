package linop

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/mesh"
)

func twoCellMesh() *mesh.Static {
	return &mesh.Static{
		NCells:       2,
		FaceCellsArr: [][2]int{{0, 1}},
	}
}

func TestApplyDiagonalOnly(t *testing.T) {
	v := twoCellMesh()
	o := New(v, 2)
	o.UpdateDiagBlock(0, mat.NewDense(2, 2, []float64{2, 0, 0, 2}))
	o.UpdateDiagBlock(1, mat.NewDense(2, 2, []float64{3, 0, 0, 3}))

	y := o.Apply([]float64{1, 1, 1, 1})
	want := []float64{2, 2, 3, 3}
	for i := range want {
		if math.Abs(y[i]-want[i]) > 1e-12 {
			t.Errorf("y[%d] = %g, want %g", i, y[i], want[i])
		}
	}
}

func TestSubmitFaceBlockConservesAcrossCells(t *testing.T) {
	v := twoCellMesh()
	o := New(v, 2)
	dRdL := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	dRdR := mat.NewDense(2, 2, []float64{0.5, 0, 0, 0.5})
	o.SubmitFaceBlock(0, dRdL, dRdR)

	// The right cell's row-1 contribution from the left cell's block
	// must be the exact negative of the left cell's row-0 contribution.
	if o.off[1][0].At(0, 0) != -1 {
		t.Fatalf("right-from-left block = %g, want -1", o.off[1][0].At(0, 0))
	}
	if o.diag[1].At(0, 0) != -0.5 {
		t.Fatalf("right diag contribution = %g, want -0.5", o.diag[1].At(0, 0))
	}
}
