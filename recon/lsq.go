package recon

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/mesh"
)

// LeastSquares is the inverse-distance-weighted least-squares
// gradient reconstruction: for each cell, the gradient minimizes the
// weighted sum of squared first-order Taylor mismatches against its
// stencil neighbors.
type LeastSquares struct {
	Space_ Space
}

func (LeastSquares) Name() string   { return "lsq" }
func (l LeastSquares) Space() Space { return l.Space_ }

func (l LeastSquares) Compute(v mesh.View, nvars int, cellPos func(c int) [2]float64, cellState func(c int) []float64, stencil func(c int) []Neighbor) []Gradients {
	out := make([]Gradients, v.NumCells())
	for c := 0; c < v.NumCells(); c++ {
		pos := cellPos(c)
		state := cellState(c)
		nb := stencil(c)

		var g11, g12, g22 float64
		rhs := make([][2]float64, nvars)

		for _, n := range nb {
			dx, dy := n.Pos[0]-pos[0], n.Pos[1]-pos[1]
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				continue
			}
			w := 1 / dist
			w2 := w * w
			g11 += w2 * dx * dx
			g12 += w2 * dx * dy
			g22 += w2 * dy * dy
			for k := 0; k < nvars; k++ {
				du := n.State[k] - state[k]
				rhs[k][0] += w2 * dx * du
				rhs[k][1] += w2 * dy * du
			}
		}

		G := mat.NewDense(2, 2, []float64{g11, g12, g12, g22})
		dx := make([]float64, nvars)
		dy := make([]float64, nvars)
		var Ginv mat.Dense
		if err := Ginv.Inverse(G); err == nil {
			for k := 0; k < nvars; k++ {
				b := mat.NewVecDense(2, []float64{rhs[k][0], rhs[k][1]})
				var grad mat.VecDense
				grad.MulVec(&Ginv, b)
				dx[k] = grad.AtVec(0)
				dy[k] = grad.AtVec(1)
			}
		}
		out[c] = Gradients{DX: dx, DY: dy}
	}
	return out
}
