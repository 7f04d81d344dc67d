// Package mesh defines the read-only mesh view that every other
// component of strands2d depends on: cell/face adjacency and geometry.
// Mesh I/O and topology preprocessing are external collaborators
// (internal/meshio builds a View from a Gmsh file); this package only
// defines and serves the query surface.
package mesh

import "github.com/ctessum/geom"

// InteriorMarker is the sentinel boundary marker for interior faces.
const InteriorMarker = -1

// View is the read-only adjacency and geometry contract consumed by the
// rest of the solver. Implementations own no mutable state reachable by
// callers; all coordinate and index arithmetic is precomputed at
// construction time (see internal/meshio).
//
// Boundary faces occupy indices [0, NumBoundaryFaces), interior faces
// occupy [NumBoundaryFaces, NumFaces). For a boundary face f, RightCell
// is a ghost slot: FaceCells(f) returns a right index >= NumCells, and
// callers must never index the cell array with it directly.
type View interface {
	NumCells() int
	NumBoundaryFaces() int
	NumFaces() int

	// FaceCells returns the left and right cell indices of face f. Left
	// is always an interior cell. Right is interior iff f is an
	// interior face (f >= NumBoundaryFaces) or a periodic pairing has
	// linked it to one; otherwise it is a ghost slot index.
	FaceCells(f int) (left, right int)
	// FaceNodes returns the two endpoint node indices of face f.
	FaceNodes(f int) (n0, n1 int)
	// FaceNormal returns the unit normal of face f, pointing from its
	// left cell to its right cell.
	FaceNormal(f int) [2]float64
	// FaceLength returns the length of face f.
	FaceLength(f int) float64
	// FaceMarker returns the boundary marker of face f, or
	// InteriorMarker if f is an interior face.
	FaceMarker(f int) int
	// FaceMidpoint returns the midpoint of face f.
	FaceMidpoint(f int) [2]float64
	// IsPeriodic reports whether face f was linked to a periodic
	// partner during preprocessing (its right cell is a real interior
	// cell even though f < NumBoundaryFaces might suggest otherwise).
	IsPeriodic(f int) bool

	// CellArea returns the area of cell c.
	CellArea(c int) float64
	// CellCentroid returns the centroid of cell c.
	CellCentroid(c int) [2]float64
	// CellNodes returns the node indices bounding cell c, in order.
	CellNodes(c int) []int
	// CellPolygon returns the geometry of cell c.
	CellPolygon(c int) geom.Polygon

	// NodeCoord returns the coordinates of node n.
	NodeCoord(n int) [2]float64
}

// GhostCenter computes the reflected cell center r_g for a boundary face
// under the default midpoint-reflection policy: r_g + r_L = 2*midpoint.
func GhostCenter(v View, f int, rL [2]float64) [2]float64 {
	mid := v.FaceMidpoint(f)
	return [2]float64{2*mid[0] - rL[0], 2*mid[1] - rL[1]}
}

// GhostCenterPlane computes the reflected cell center by reflecting rL
// about the face's supporting line rather than its midpoint, the
// alternate ghost-placement policy named in the data model.
func GhostCenterPlane(v View, f int, rL [2]float64) [2]float64 {
	n0, n1 := v.FaceNodes(f)
	p0, p1 := v.NodeCoord(n0), v.NodeCoord(n1)
	// Project rL onto the line through p0,p1 and reflect across it.
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return GhostCenter(v, f, rL)
	}
	t := ((rL[0]-p0[0])*dx + (rL[1]-p0[1])*dy) / lenSq
	foot := [2]float64{p0[0] + t*dx, p0[1] + t*dy}
	return [2]float64{2*foot[0] - rL[0], 2*foot[1] - rL[1]}
}

// GaussPoints returns the n strictly-interior Gauss points of the
// segment from p0 to p1, at parameters (i+1)/(n+1).
func GaussPoints(p0, p1 [2]float64, n int) [][2]float64 {
	pts := make([][2]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n+1)
		pts[i] = [2]float64{
			p0[0] + t*(p1[0]-p0[0]),
			p0[1] + t*(p1[1]-p0[1]),
		}
	}
	return pts
}

// FaceEndpoints is a convenience wrapper returning the two node
// coordinates of a face in one call.
func FaceEndpoints(v View, f int) (p0, p1 [2]float64) {
	n0, n1 := v.FaceNodes(f)
	return v.NodeCoord(n0), v.NodeCoord(n1)
}
