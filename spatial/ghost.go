package spatial

import "github.com/strandscfd/strands2d/mesh"

// ghostState returns the ghost conservative state for boundary face f,
// given the left cell's state uL. Periodic faces never reach here:
// internal/meshio's preprocessing already rewrites a periodic face's
// right-cell slot to its partner's real interior cell index, so
// extrapolateFace/buildStencils take the ordinary interior-neighbor
// path for them instead.
func (d *Discretization) ghostState(f int, uL []float64) []float64 {
	marker := d.Mesh.FaceMarker(f)
	rule, ok := d.Markers[marker]
	if !ok {
		return append([]float64(nil), uL...)
	}
	n := d.Mesh.FaceNormal(f)
	return rule.GhostState(uL, n, d.Gas)
}

// ghostCenter returns the reflected ghost center for boundary face f
// under the default midpoint-reflection policy. Periodic faces never
// reach here, for the same reason noted on ghostState above.
func (d *Discretization) ghostCenter(f int, rL [2]float64) [2]float64 {
	return mesh.GhostCenter(d.Mesh, f, rL)
}
