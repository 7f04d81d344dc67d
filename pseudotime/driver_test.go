package pseudotime

import (
	"testing"

	"github.com/strandscfd/strands2d/bc"
	"github.com/strandscfd/strands2d/flux"
	"github.com/strandscfd/strands2d/limiter"
	"github.com/strandscfd/strands2d/linop"
	"github.com/strandscfd/strands2d/mesh"
	"github.com/strandscfd/strands2d/physics"
	"github.com/strandscfd/strands2d/recon"
	"github.com/strandscfd/strands2d/spatial"
)

// twoCellSlipWallMesh is the same two-square-cells-sharing-an-interior-
// face layout spatial's own tests use: every exterior face is a slip
// wall, the one interior face couples the two cells.
func twoCellSlipWallMesh() *mesh.Static {
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

func newTestDriver(t *testing.T, gas physics.Gas, starter, main Stage) (*Driver, *mesh.Static) {
	t.Helper()
	m := twoCellSlipWallMesh()
	f, err := flux.New("LLF")
	if err != nil {
		t.Fatal(err)
	}
	wall, err := bc.New(bc.Config{Kind: "slip-wall"}, gas)
	if err != nil {
		t.Fatal(err)
	}
	markers := map[int]bc.Rule{0: wall}
	disc := spatial.New(m, gas, physics.NVarsEuler, f, f, recon.None{}, limiter.None{}, markers)
	op := linop.New(m, physics.NVarsEuler)
	return NewDriver(disc, op, starter, main), m
}

// TestDriverConvergesOnFirstStep picks a convergence tolerance above 1
// so the ratio check at step 0 (resNorm/firstNorm == 1) always
// satisfies it, deterministically exercising the "tolerance met" exit
// without depending on how fast the residual actually decays.
func TestDriverConvergesOnFirstStep(t *testing.T) {
	gas := physics.Gas{Gamma: 1.4, MInf: 0.3}
	main := Stage{Name: "main", MaxIters: 5, CFLStart: 0.05, CFLMax: 0.05, ConvergenceTol: 2.0}
	d, _ := newTestDriver(t, gas, Stage{}, main)

	u0 := [][]float64{gas.Freestream(0), gas.Freestream(0.1)}
	_, err := d.Run(u0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Phase != Converged {
		t.Errorf("Phase = %v, want Converged", d.Phase)
	}
	if d.Timing.Steps != 1 {
		t.Errorf("Steps = %d, want 1 (should stop at the first step)", d.Timing.Steps)
	}
}

// TestDriverReportsConvergedWithWarningOnZeroResidual uses a uniform
// state at rest, identical in both cells: every ghost reflection leaves
// velocity at zero and the interior face sees equal left/right states,
// so each face carries only the pressure flux p*n and the residual of
// each closed cell is exactly zero from step 0. The tolerance check's
// firstNorm>0 guard then never fires, so the stage always exhausts
// MaxIters.
func TestDriverReportsConvergedWithWarningOnZeroResidual(t *testing.T) {
	gas := physics.Gas{Gamma: 1.4, MInf: 0.3}
	main := Stage{Name: "main", MaxIters: 3, CFLStart: 0.1, CFLMax: 0.1, ConvergenceTol: 1e-10}
	d, _ := newTestDriver(t, gas, Stage{}, main)

	rest := gas.ToConservative(1, 0, 0, 1)
	u0 := [][]float64{rest, append([]float64(nil), rest...)}
	_, err := d.Run(u0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Phase != ConvergedWithWarning {
		t.Errorf("Phase = %v, want ConvergedWithWarning", d.Phase)
	}
	if d.Timing.Steps != 3 {
		t.Errorf("Steps = %d, want 3 (MaxIters exhausted)", d.Timing.Steps)
	}
}

// TestMatrixFreeImplicitStageRunsOnZeroResidual exercises the
// matrix-free implicit path (Stage.Implicit && Stage.MatrixFree, which
// drives JacobianVectorProduct through matrixFreeImplicitStep instead
// of AssembleJacobian/SolveBlockJacobi) on the same zero-residual state
// as above: every sweep's direction starts at v=0, for which
// JacobianVectorProduct short-circuits to an exact zero, so du stays
// zero and the state never changes.
func TestMatrixFreeImplicitStageRunsOnZeroResidual(t *testing.T) {
	gas := physics.Gas{Gamma: 1.4, MInf: 0.3}
	main := Stage{Name: "main", MaxIters: 3, CFLStart: 0.1, CFLMax: 0.1, ConvergenceTol: 1e-10, Implicit: true, MatrixFree: true}
	d, _ := newTestDriver(t, gas, Stage{}, main)

	rest := gas.ToConservative(1, 0, 0, 1)
	u0 := [][]float64{rest, append([]float64(nil), rest...)}
	u, err := d.Run(u0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Phase != ConvergedWithWarning {
		t.Errorf("Phase = %v, want ConvergedWithWarning", d.Phase)
	}
	for c := range u {
		for k := range u[c] {
			if u[c][k] != u0[c][k] {
				t.Errorf("cell %d var %d: u = %g, want unchanged %g", c, k, u[c][k], u0[c][k])
			}
		}
	}
}

// TestMatrixFreeImplicitStepOneSweepMatchesExplicitUpdate checks the
// first Richardson sweep's ingredients directly: JacobianVectorProduct
// of du_0=0 is exactly zero, so that sweep's update dt*(res + J*du_0)
// equals the explicit dt*residual update.
func TestMatrixFreeImplicitStepOneSweepMatchesExplicitUpdate(t *testing.T) {
	gas := physics.Gas{Gamma: 1.4, MInf: 0.3}
	main := Stage{Name: "main", MaxIters: 1, CFLStart: 0.05, CFLMax: 0.05}
	d, _ := newTestDriver(t, gas, Stage{}, main)

	u := [][]float64{gas.Freestream(0), gas.Freestream(0.1)}
	res, err := d.Disc.Residual(u)
	if err != nil {
		t.Fatal(err)
	}
	dt := d.Disc.LocalTimeStep(u, main.CFL(0))

	zero := [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}}
	jv, err := d.Disc.JacobianVectorProduct(u, zero, res)
	if err != nil {
		t.Fatal(err)
	}
	for c := range jv {
		for k := range jv[c] {
			if jv[c][k] != 0 {
				t.Fatalf("cell %d var %d: J*0 = %g, want exactly 0", c, k, jv[c][k])
			}
			want := dt[c] * (res[c][k] + jv[c][k])
			got := dt[c] * res[c][k]
			if want != got {
				t.Fatalf("cell %d var %d: one-sweep update %g != explicit update %g", c, k, want, got)
			}
		}
	}
}
