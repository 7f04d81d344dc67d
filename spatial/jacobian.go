package spatial

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/linop"
)

// AssembleJacobian builds the analytic flux Jacobian into op, using
// cell-average states directly at each face (the usual first-order
// Jacobian / higher-order-residual split most unstructured implicit
// solvers make, since differentiating the full limited reconstruction
// stencil is rarely worth its cost). Boundary faces fold the ghost
// rule's own Jacobian in by the chain rule (GhostJacobian). Periodic
// faces never reach the ghost-chain-rule branch: internal/meshio's
// preprocessing already rewrites a periodic face's right-cell slot to
// its partner's real interior cell index, so they take the ordinary
// interior-face branch above instead.
func (d *Discretization) AssembleJacobian(u [][]float64, op *linop.Operator) {
	d.ensureCellFaces()
	op.Reset()

	for f := 0; f < d.Mesh.NumFaces(); f++ {
		left, right := d.Mesh.FaceCells(f)
		n := d.Mesh.FaceNormal(f)
		length := d.Mesh.FaceLength(f)
		areaLeft := d.Mesh.CellArea(left)

		uL := u[left]

		switch {
		case right < d.Mesh.NumCells():
			uR := u[right]
			dFdL, dFdR := d.JacobianFlux.Jacobian(uL, uR, n, d.Gas)
			areaRight := d.Mesh.CellArea(right)

			op.SubmitBlock(left, left, scaleMat(-length/areaLeft, dFdL))
			op.SubmitBlock(left, right, scaleMat(-length/areaLeft, dFdR))
			op.SubmitBlock(right, left, scaleMat(length/areaRight, dFdL))
			op.SubmitBlock(right, right, scaleMat(length/areaRight, dFdR))

		default:
			marker := d.Mesh.FaceMarker(f)
			rule, ok := d.Markers[marker]
			if !ok {
				continue
			}
			uGhost := rule.GhostState(uL, n, d.Gas)
			dFdL, dFdR := d.JacobianFlux.Jacobian(uL, uGhost, n, d.Gas)
			G := rule.GhostJacobian(uL, n, d.Gas)

			var chained mat.Dense
			chained.Mul(dFdR, G)
			chained.Add(&chained, dFdL)

			op.SubmitBlock(left, left, scaleMat(-length/areaLeft, &chained))
		}
	}
}

func scaleMat(s float64, m *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Scale(s, m)
	return &out
}
