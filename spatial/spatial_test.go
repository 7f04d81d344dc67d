package spatial

import (
	"math"
	"testing"

	"github.com/strandscfd/strands2d/bc"
	"github.com/strandscfd/strands2d/flux"
	"github.com/strandscfd/strands2d/limiter"
	"github.com/strandscfd/strands2d/linop"
	"github.com/strandscfd/strands2d/mesh"
	"github.com/strandscfd/strands2d/physics"
	"github.com/strandscfd/strands2d/recon"
)

var testGas = physics.Gas{Gamma: 1.4, MInf: 0.3}

// twoCellMesh builds two unit-area square cells sharing a vertical
// interior face, with a slip-wall boundary on every exterior face.
func twoCellMesh() *mesh.Static {
	return &mesh.Static{
		NCells:         2,
		NBoundaryFaces: 6,
		FaceCellsArr: [][2]int{
			{0, 2}, {0, 2}, {0, 2},
			{1, 2}, {1, 2}, {1, 2},
			{0, 1},
		},
		FaceNormalArr: [][2]float64{
			{-1, 0}, {0, 1}, {0, -1},
			{1, 0}, {0, 1}, {0, -1},
			{1, 0},
		},
		FaceLengthArr:   []float64{1, 1, 1, 1, 1, 1, 1},
		FaceMarkerArr:   []int{0, 0, 0, 0, 0, 0, mesh.InteriorMarker},
		CellAreaArr:     []float64{1, 1},
		CellCentroidArr: [][2]float64{{0.5, 0.5}, {1.5, 0.5}},
		FaceNodesArr:    [][2]int{{0, 1}, {1, 2}, {0, 3}, {2, 4}, {4, 5}, {1, 5}, {1, 2}},
		NodeCoordArr:    [][2]float64{{0, 0}, {0, 1}, {1, 1}, {0, 0}, {2, 1}, {2, 0}},
	}
}

func newDiscretization(t *testing.T) (*Discretization, *mesh.Static) {
	t.Helper()
	m := twoCellMesh()
	f, err := flux.New("LLF")
	if err != nil {
		t.Fatal(err)
	}
	lim := limiter.None{}
	rec := recon.None{}
	wall, err := bc.New(bc.Config{Kind: "slip-wall"}, testGas)
	if err != nil {
		t.Fatal(err)
	}
	markers := map[int]bc.Rule{0: wall}
	d := New(m, testGas, physics.NVarsEuler, f, f, rec, lim, markers)
	return d, m
}

func TestResidualRejectsNonPhysicalState(t *testing.T) {
	d, _ := newDiscretization(t)
	u := [][]float64{{-1, 0, 0, 1}, {1, 0, 0, 3}}
	if _, err := d.Residual(u); err == nil {
		t.Fatal("expected a NumericError for a negative-density state")
	}
}

func TestResidualRunsOnUniformState(t *testing.T) {
	d, _ := newDiscretization(t)
	uinf := testGas.Freestream(0)
	u := [][]float64{uinf, uinf}
	res, err := d.Residual(u)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 residual rows, got %d", len(res))
	}
}

// twoCellSingleFaceMesh is a minimal 2-cell mesh with exactly one
// face (the shared interior face, no boundary faces at all), isolating
// a single face's Jacobian contribution from any boundary-rule terms
// so it can be checked exactly.
func twoCellSingleFaceMesh() *mesh.Static {
	return &mesh.Static{
		NCells:          2,
		NBoundaryFaces:  0,
		FaceCellsArr:    [][2]int{{0, 1}},
		FaceNormalArr:   [][2]float64{{1, 0}},
		FaceLengthArr:   []float64{1},
		FaceMarkerArr:   []int{mesh.InteriorMarker},
		CellAreaArr:     []float64{1, 1},
		CellCentroidArr: [][2]float64{{0, 0.5}, {1, 0.5}},
		FaceNodesArr:    [][2]int{{0, 1}},
		NodeCoordArr:    [][2]float64{{0, 0}, {0, 1}},
	}
}

func TestJacobianAssemblyConservesAcrossInteriorFace(t *testing.T) {
	m := twoCellSingleFaceMesh()
	f, err := flux.New("LLF")
	if err != nil {
		t.Fatal(err)
	}
	d := New(m, testGas, physics.NVarsEuler, f, f, recon.None{}, limiter.None{}, map[int]bc.Rule{})

	uL := testGas.Freestream(0.05)
	uR := testGas.Freestream(-0.05)
	u := [][]float64{uL, uR}
	op := linop.New(m, physics.NVarsEuler)
	d.AssembleJacobian(u, op)

	// Cell 0's diagonal block is this face's entire -length/area*dFdL
	// contribution (no boundary faces to add more); cell 1's
	// off-diagonal block w.r.t. cell 0 is the same dFdL scaled by
	// +length/area. With equal areas the two must be exact negatives.
	diag0 := op.DiagBlock(0)
	off10 := op.OffBlock(1, 0)
	if off10 == nil {
		t.Fatal("expected a (1,0) off-diagonal block")
	}
	n, _ := diag0.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(diag0.At(i, j)+off10.At(i, j)) > 1e-12 {
				t.Errorf("diag(0)[%d][%d]=%g should be -off(1,0)[%d][%d]=%g", i, j, diag0.At(i, j), i, j, off10.At(i, j))
			}
		}
	}

	// Symmetric check for the dFdR half: cell 1's diagonal block vs.
	// cell 0's off-diagonal block w.r.t. cell 1.
	diag1 := op.DiagBlock(1)
	off01 := op.OffBlock(0, 1)
	if off01 == nil {
		t.Fatal("expected a (0,1) off-diagonal block")
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(diag1.At(i, j)+off01.At(i, j)) > 1e-12 {
				t.Errorf("diag(1)[%d][%d]=%g should be -off(0,1)[%d][%d]=%g", i, j, diag1.At(i, j), i, j, off01.At(i, j))
			}
		}
	}
}
