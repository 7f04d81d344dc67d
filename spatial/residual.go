package spatial

import (
	"math"

	"github.com/strandscfd/strands2d/internal/errs"
	"github.com/strandscfd/strands2d/limiter"
	"github.com/strandscfd/strands2d/recon"
)

// Residual evaluates spec §4.7's residual operator: gradient
// reconstruction, limiting, per-face numerical flux, and accumulation
// into each cell's residual, scaled by 1/area so the result is a rate
// of change of the cell average. Returns a NumericError if any cell's
// current state is non-physical before assembly even starts (callers
// are expected to have already validated/rejected such states via the
// pseudo-time retry policy).
func (d *Discretization) Residual(u [][]float64) ([][]float64, error) {
	d.ensureCellFaces()
	nCells := d.Mesh.NumCells()

	for c := 0; c < nCells; c++ {
		if !d.Gas.Valid(u[c]) {
			return nil, errs.New(errs.Numeric, "non-physical state entering residual assembly")
		}
	}

	stencil := d.buildStencils(u)
	cellPos := func(c int) [2]float64 { return d.Mesh.CellCentroid(c) }
	grads := d.Recon.Compute(d.Mesh, d.NVars, cellPos, func(c int) []float64 { return d.toReconSpace(u[c]) }, stencil)
	limCoef := d.computeLimiterCoefficients(u, grads, stencil)

	res := make([][]float64, nCells)
	for c := range res {
		res[c] = make([]float64, d.NVars)
	}

	parallelOverCells(nCells, func(c int) {
		area := d.Mesh.CellArea(c)
		for _, fr := range d.cellFaces[c] {
			contrib := d.faceFluxForCell(fr.face, fr.isLeft, u, grads, limCoef)
			for k := 0; k < d.NVars; k++ {
				res[c][k] -= contrib[k] * d.Mesh.FaceLength(fr.face) / area
			}
		}
	})
	return res, nil
}

// faceFluxForCell returns the flux contribution to cell c's residual
// from face f, already oriented outward from c (negated internally if
// c is the face's right cell).
func (d *Discretization) faceFluxForCell(f int, isLeft bool, u [][]float64, grads []recon.Gradients, limCoef [][]float64) []float64 {
	left, right := d.Mesh.FaceCells(f)
	n := d.Mesh.FaceNormal(f)

	uL, uR := d.extrapolateFace(f, left, right, u, grads, limCoef)
	fl := d.NumFlux.Eval(uL, uR, n, d.Gas)
	if isLeft {
		return fl
	}
	out := make([]float64, len(fl))
	for i := range out {
		out[i] = -fl[i]
	}
	return out
}

// extrapolateFace returns the limited, conservative-variable left and
// right face states for face f.
func (d *Discretization) extrapolateFace(f, left, right int, u [][]float64, grads []recon.Gradients, limCoef [][]float64) ([]float64, []float64) {
	mid := d.Mesh.FaceMidpoint(f)
	uL := d.fromReconSpace(d.extrapolate(left, mid, d.toReconSpace(u[left]), grads[left], limCoef[left]))

	var uR []float64
	if right < d.Mesh.NumCells() {
		uR = d.fromReconSpace(d.extrapolate(right, mid, d.toReconSpace(u[right]), grads[right], limCoef[right]))
	} else {
		uR = d.ghostState(f, u[left])
	}
	return uL, uR
}

// extrapolate reconstructs cell c's state at position pos from its
// cell average uc (already in the Reconstructor's variable space), its
// gradient, and its limiter coefficient.
func (d *Discretization) extrapolate(c int, pos [2]float64, uc []float64, g recon.Gradients, phi []float64) []float64 {
	centroid := d.Mesh.CellCentroid(c)
	dx, dy := pos[0]-centroid[0], pos[1]-centroid[1]
	out := make([]float64, d.NVars)
	for k := 0; k < d.NVars; k++ {
		out[k] = uc[k] + phi[k]*(g.DX[k]*dx+g.DY[k]*dy)
	}
	return out
}

// computeLimiterCoefficients returns, per cell per variable, the
// limiter.Limiter's scalar coefficient, derived from each cell's
// stencil min/max and its own unlimited face extrapolation.
func (d *Discretization) computeLimiterCoefficients(u [][]float64, grads []recon.Gradients, stencil func(c int) []recon.Neighbor) [][]float64 {
	nCells := d.Mesh.NumCells()
	out := make([][]float64, nCells)
	for c := range out {
		out[c] = make([]float64, d.NVars)
	}

	parallelOverCells(nCells, func(c int) {
		uc := d.toReconSpace(u[c])
		nb := stencil(c)
		centroid := d.Mesh.CellCentroid(c)
		for k := 0; k < d.NVars; k++ {
			uMin, uMax := uc[k], uc[k]
			for _, nbr := range nb {
				if nbr.State[k] < uMin {
					uMin = nbr.State[k]
				}
				if nbr.State[k] > uMax {
					uMax = nbr.State[k]
				}
			}
			faces := make([]limiter.Face, len(nb))
			for i := range nb {
				mid := d.Mesh.FaceMidpoint(d.cellFaces[c][i].face)
				dx, dy := mid[0]-centroid[0], mid[1]-centroid[1]
				faces[i] = limiter.Face{
					Extrapolated: uc[k] + grads[c].DX[k]*dx + grads[c].DY[k]*dy,
					Dist:         math.Hypot(dx, dy),
				}
			}
			out[c][k] = d.Limiter.Coefficient(uc[k], uMin, uMax, faces)
		}
	})
	return out
}
