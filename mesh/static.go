package mesh

import "github.com/ctessum/geom"

// Static is a plain in-memory View over precomputed adjacency and
// geometry arrays. internal/meshio builds one of these from a Gmsh
// file; tests build them directly for small synthetic meshes.
type Static struct {
	NCells           int
	NBoundaryFaces   int
	FaceCellsArr     [][2]int
	FaceNodesArr     [][2]int
	FaceNormalArr    [][2]float64
	FaceLengthArr    []float64
	FaceMarkerArr    []int
	FacePeriodicArr  []bool
	CellAreaArr      []float64
	CellCentroidArr  [][2]float64
	CellNodesArr     [][]int
	CellPolygonArr   []geom.Polygon
	NodeCoordArr     [][2]float64
}

var _ View = (*Static)(nil)

func (m *Static) NumCells() int         { return m.NCells }
func (m *Static) NumBoundaryFaces() int { return m.NBoundaryFaces }
func (m *Static) NumFaces() int         { return len(m.FaceCellsArr) }

func (m *Static) FaceCells(f int) (int, int) {
	c := m.FaceCellsArr[f]
	return c[0], c[1]
}

func (m *Static) FaceNodes(f int) (int, int) {
	n := m.FaceNodesArr[f]
	return n[0], n[1]
}

func (m *Static) FaceNormal(f int) [2]float64 { return m.FaceNormalArr[f] }
func (m *Static) FaceLength(f int) float64    { return m.FaceLengthArr[f] }
func (m *Static) FaceMarker(f int) int        { return m.FaceMarkerArr[f] }
func (m *Static) IsPeriodic(f int) bool {
	if m.FacePeriodicArr == nil {
		return false
	}
	return m.FacePeriodicArr[f]
}

func (m *Static) FaceMidpoint(f int) [2]float64 {
	p0, p1 := FaceEndpoints(m, f)
	return [2]float64{(p0[0] + p1[0]) / 2, (p0[1] + p1[1]) / 2}
}

func (m *Static) CellArea(c int) float64          { return m.CellAreaArr[c] }
func (m *Static) CellCentroid(c int) [2]float64   { return m.CellCentroidArr[c] }
func (m *Static) CellNodes(c int) []int           { return m.CellNodesArr[c] }
func (m *Static) CellPolygon(c int) geom.Polygon  { return m.CellPolygonArr[c] }
func (m *Static) NodeCoord(n int) [2]float64      { return m.NodeCoordArr[n] }
