package recon

import (
	"math"
	"testing"

	"github.com/strandscfd/strands2d/mesh"
)

// a 2x2 grid of unit-square cells, used to check that least-squares
// recovers a perfectly linear field exactly.
func squareMesh() (*mesh.Static, [][2]float64) {
	pos := [][2]float64{{0.5, 0.5}, {1.5, 0.5}, {0.5, 1.5}, {1.5, 1.5}}
	m := &mesh.Static{NCells: 4, CellAreaArr: []float64{1, 1, 1, 1}, CellCentroidArr: pos}
	return m, pos
}

func linearField(pos [2]float64) []float64 {
	return []float64{2 + 3*pos[0] - 1.5*pos[1]}
}

func buildStencils(pos [][2]float64) func(c int) []Neighbor {
	// Cell 0:(0,0) neighbors 1:(1,0) and 2:(0,1); symmetric for others,
	// each contributing a unit-length face with the appropriate normal.
	adj := map[int][]struct {
		j          int
		nx, ny, len float64
	}{
		0: {{1, 1, 0, 1}, {2, 0, 1, 1}},
		1: {{0, -1, 0, 1}, {3, 0, 1, 1}},
		2: {{0, 0, -1, 1}, {3, 1, 0, 1}},
		3: {{1, 0, -1, 1}, {2, -1, 0, 1}},
	}
	return func(c int) []Neighbor {
		var out []Neighbor
		for _, a := range adj[c] {
			out = append(out, Neighbor{
				Pos:        pos[a.j],
				State:      linearField(pos[a.j]),
				FaceNormal: [2]float64{a.nx, a.ny},
				FaceLength: a.len,
			})
		}
		return out
	}
}

func TestLeastSquaresRecoversLinearField(t *testing.T) {
	m, pos := squareMesh()
	lsq := LeastSquares{Space_: Conservative}
	grads := lsq.Compute(m, 1, func(c int) [2]float64 { return pos[c] },
		func(c int) []float64 { return linearField(pos[c]) }, buildStencils(pos))

	for c, g := range grads {
		if math.Abs(g.DX[0]-3) > 1e-9 {
			t.Errorf("cell %d: dX = %g, want 3", c, g.DX[0])
		}
		if math.Abs(g.DY[0]+1.5) > 1e-9 {
			t.Errorf("cell %d: dY = %g, want -1.5", c, g.DY[0])
		}
	}
}

func TestNoneReconstructionIsZero(t *testing.T) {
	m, pos := squareMesh()
	none := None{}
	grads := none.Compute(m, 1, func(c int) [2]float64 { return pos[c] }, func(c int) []float64 { return nil }, func(c int) []Neighbor { return nil })
	for _, g := range grads {
		if g.DX[0] != 0 || g.DY[0] != 0 {
			t.Fatal("expected zero gradient for None reconstruction")
		}
	}
}
