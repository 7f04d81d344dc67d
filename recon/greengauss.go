package recon

import (
	"github.com/strandscfd/strands2d/mesh"
)

// GreenGauss is the Green-Gauss (face-averaged) gradient
// reconstruction: the divergence theorem applied to a cell's control
// volume, approximating the face value as the average of the two
// cell-centered states it separates.
type GreenGauss struct {
	Space_ Space
}

func (GreenGauss) Name() string   { return "green-gauss" }
func (g GreenGauss) Space() Space { return g.Space_ }

func (g GreenGauss) Compute(v mesh.View, nvars int, cellPos func(c int) [2]float64, cellState func(c int) []float64, stencil func(c int) []Neighbor) []Gradients {
	out := make([]Gradients, v.NumCells())
	for c := 0; c < v.NumCells(); c++ {
		state := cellState(c)
		nb := stencil(c)
		area := v.CellArea(c)

		dx := make([]float64, nvars)
		dy := make([]float64, nvars)
		if area == 0 || len(nb) == 0 {
			out[c] = Gradients{DX: dx, DY: dy}
			continue
		}

		for _, n := range nb {
			nx, ny := n.FaceNormal[0]*n.FaceLength, n.FaceNormal[1]*n.FaceLength
			for k := 0; k < nvars; k++ {
				faceVal := 0.5 * (state[k] + n.State[k])
				dx[k] += faceVal * nx
				dy[k] += faceVal * ny
			}
		}
		for k := 0; k < nvars; k++ {
			dx[k] /= area
			dy[k] /= area
		}
		out[c] = Gradients{DX: dx, DY: dy}
	}
	return out
}
