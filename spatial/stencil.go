package spatial

import "github.com/strandscfd/strands2d/recon"

// buildStencils returns, for each cell, its recon.Neighbor list: one
// entry per incident face, with position/state resolved through
// ghosts and periodic pairing, and the face normal reoriented to point
// outward from the cell (stored normals always point from a face's
// left cell to its right cell).
func (d *Discretization) buildStencils(u [][]float64) func(c int) []recon.Neighbor {
	nCells := d.Mesh.NumCells()

	return func(c int) []recon.Neighbor {
		refs := d.cellFaces[c]
		out := make([]recon.Neighbor, len(refs))
		for i, fr := range refs {
			n := d.Mesh.FaceNormal(fr.face)
			length := d.Mesh.FaceLength(fr.face)
			if fr.isLeft {
				_, right := d.Mesh.FaceCells(fr.face)
				if right < nCells {
					out[i] = recon.Neighbor{
						Pos:        d.Mesh.CellCentroid(right),
						State:      d.toReconSpace(u[right]),
						FaceNormal: n,
						FaceLength: length,
					}
				} else {
					out[i] = recon.Neighbor{
						Pos:        d.ghostCenter(fr.face, d.Mesh.CellCentroid(c)),
						State:      d.toReconSpace(d.ghostState(fr.face, u[c])),
						FaceNormal: n,
						FaceLength: length,
					}
				}
			} else {
				left, _ := d.Mesh.FaceCells(fr.face)
				out[i] = recon.Neighbor{
					Pos:        d.Mesh.CellCentroid(left),
					State:      d.toReconSpace(u[left]),
					FaceNormal: [2]float64{-n[0], -n[1]},
					FaceLength: length,
				}
			}
		}
		return out
	}
}
