package meshio

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/strandscfd/strands2d/internal/errs"
	"github.com/strandscfd/strands2d/mesh"
)

// edgeKey canonically identifies an undirected mesh edge by its two
// node indices.
type edgeKey struct{ a, b int }

func newEdgeKey(n0, n1 int) edgeKey {
	if n0 > n1 {
		n0, n1 = n1, n0
	}
	return edgeKey{n0, n1}
}

// edgeTouch records, for one edge, the cells and local edge index that
// touch it (at most two for a conforming mesh).
type edgeTouch struct {
	cells    []int
	edgeIdxs []int // local edge index within the cell's node list
}

// PeriodicPair names two boundary markers whose faces should be paired
// as periodic partners, related by a uniform translation vector.
type PeriodicPair struct {
	MarkerA, MarkerB int
	Translation      [2]float64
	Tolerance        float64
}

type faceBuild struct {
	left, right int // right is a ghost slot until periodic pairing runs
	n0, n1      int
	marker      int
}

// Preprocess turns a parsed Gmsh file into a mesh.Static: builds cell
// geometry, detects shared edges to form the face list (boundary faces
// first, per mesh.View's ordering invariant), and pairs periodic
// boundary faces via a spatial index. Pairing rewrites a periodic
// face's right-cell slot in place to its partner's real interior cell,
// so spatial's residual/Jacobian assembly needs no periodic-specific
// branch of its own; Preprocess also returns the face-index pairing
// map (periodic face -> partner face) for callers that want it.
func Preprocess(f *gmshFile, periodic []PeriodicPair) (*mesh.Static, map[int]int, error) {
	if len(f.cells) == 0 {
		return nil, nil, errs.New(errs.Mesh, "mesh has no cell elements")
	}

	m := &mesh.Static{
		NCells:          len(f.cells),
		CellNodesArr:    make([][]int, len(f.cells)),
		CellAreaArr:     make([]float64, len(f.cells)),
		CellCentroidArr: make([][2]float64, len(f.cells)),
		CellPolygonArr:  make([]geom.Polygon, len(f.cells)),
		NodeCoordArr:    make([][2]float64, len(f.nodes)),
	}
	for i, p := range f.nodes {
		m.NodeCoordArr[i] = [2]float64{p.X, p.Y}
	}

	edges := make(map[edgeKey]*edgeTouch)
	for c, cell := range f.cells {
		m.CellNodesArr[c] = cell.nodes
		poly := cellPolygon(f.nodes, cell.nodes)
		m.CellPolygonArr[c] = poly
		area := poly.Area()
		if area <= 0 {
			return nil, nil, errs.New(errs.Mesh, fmt.Sprintf("cell %d has non-positive area %g; check node winding", c, area))
		}
		m.CellAreaArr[c] = area
		centroid := poly.Centroid()
		m.CellCentroidArr[c] = [2]float64{centroid.X, centroid.Y}

		nv := len(cell.nodes)
		for e := 0; e < nv; e++ {
			n0, n1 := cell.nodes[e], cell.nodes[(e+1)%nv]
			key := newEdgeKey(n0, n1)
			t := edges[key]
			if t == nil {
				t = &edgeTouch{}
				edges[key] = t
			}
			t.cells = append(t.cells, c)
			t.edgeIdxs = append(t.edgeIdxs, e)
		}
	}

	lineMarker := make(map[edgeKey]int)
	for _, l := range f.lines {
		lineMarker[newEdgeKey(l.n0, l.n1)] = l.marker
	}

	var boundary, interior []faceBuild
	for key, t := range edges {
		switch len(t.cells) {
		case 1:
			marker, ok := lineMarker[key]
			if !ok {
				return nil, nil, errs.New(errs.Mesh, fmt.Sprintf("boundary edge (%d,%d) has no physical-group marker", key.a, key.b))
			}
			n0, n1 := orientedEdge(f.cells[t.cells[0]].nodes, t.edgeIdxs[0])
			boundary = append(boundary, faceBuild{left: t.cells[0], right: -1, n0: n0, n1: n1, marker: marker})
		case 2:
			n0, n1 := orientedEdge(f.cells[t.cells[0]].nodes, t.edgeIdxs[0])
			interior = append(interior, faceBuild{left: t.cells[0], right: t.cells[1], n0: n0, n1: n1, marker: mesh.InteriorMarker})
		default:
			return nil, nil, errs.New(errs.Mesh, fmt.Sprintf("edge (%d,%d) touches %d cells, expected 1 or 2", key.a, key.b, len(t.cells)))
		}
	}

	allFaces := make([]faceBuild, 0, len(boundary)+len(interior))
	allFaces = append(allFaces, boundary...)
	allFaces = append(allFaces, interior...)
	m.NBoundaryFaces = len(boundary)
	buildFaceArrays(m, allFaces)

	partners, err := pairPeriodicFaces(m, periodic)
	if err != nil {
		return nil, nil, err
	}
	return m, partners, nil
}

// orientedEdge returns the edge's node pair in the cell's own winding
// order, so the face normal derived from it ends up consistently
// outward for a boundary face and left-to-right for an interior one.
func orientedEdge(nodes []int, edgeIdx int) (int, int) {
	nv := len(nodes)
	return nodes[edgeIdx], nodes[(edgeIdx+1)%nv]
}

func cellPolygon(nodes []geom.Point, idxs []int) geom.Polygon {
	ring := make([]geom.Point, len(idxs)+1)
	for i, idx := range idxs {
		ring[i] = nodes[idx]
	}
	ring[len(idxs)] = nodes[idxs[0]]
	return geom.Polygon{ring}
}

func buildFaceArrays(m *mesh.Static, faces []faceBuild) {
	n := len(faces)
	m.FaceCellsArr = make([][2]int, n)
	m.FaceNodesArr = make([][2]int, n)
	m.FaceNormalArr = make([][2]float64, n)
	m.FaceLengthArr = make([]float64, n)
	m.FaceMarkerArr = make([]int, n)
	m.FacePeriodicArr = make([]bool, n)

	for i, fb := range faces {
		p0, p1 := m.NodeCoordArr[fb.n0], m.NodeCoordArr[fb.n1]
		dx, dy := p1[0]-p0[0], p1[1]-p0[1]
		length := math.Hypot(dx, dy)
		// rotate the edge tangent -90deg to get the left-to-right normal
		nx, ny := dy/length, -dx/length

		right := fb.right
		if right < 0 {
			right = m.NCells + i // ghost slot, unique per boundary face
		}
		m.FaceCellsArr[i] = [2]int{fb.left, right}
		m.FaceNodesArr[i] = [2]int{fb.n0, fb.n1}
		m.FaceNormalArr[i] = [2]float64{nx, ny}
		m.FaceLengthArr[i] = length
		m.FaceMarkerArr[i] = fb.marker
	}
}

// facePoint is the rtree payload used to spatially match periodic
// boundary-face midpoints: the embedded Point promotes Bounds(),
// satisfying whatever geometry interface Insert/SearchIntersect need.
type facePoint struct {
	geom.Point
	face int
}

// pairPeriodicFaces matches boundary faces carrying a periodic pair's
// two markers by midpoint after translation (the first partner whose
// midpoint falls inside the tolerance box is taken), using an rtree so
// matching stays near-linear instead of quadratic in boundary face
// count. It mutates m's FaceCellsArr/FacePeriodicArr in place so each
// matched face's right slot points at its partner's real left cell,
// and returns the face->partner index map.
func pairPeriodicFaces(m *mesh.Static, pairs []PeriodicPair) (map[int]int, error) {
	partners := make(map[int]int)
	if len(pairs) == 0 {
		return partners, nil
	}

	for _, pp := range pairs {
		tol := pp.Tolerance
		if tol <= 0 {
			tol = 1e-6
		}

		tree := rtree.NewTree(25, 50)
		var facesB []int
		for f := 0; f < m.NBoundaryFaces; f++ {
			if m.FaceMarkerArr[f] != pp.MarkerB {
				continue
			}
			mid := m.FaceMidpoint(f)
			tree.Insert(facePoint{Point: geom.Point{X: mid[0], Y: mid[1]}, face: f})
			facesB = append(facesB, f)
		}

		for f := 0; f < m.NBoundaryFaces; f++ {
			if m.FaceMarkerArr[f] != pp.MarkerA {
				continue
			}
			mid := m.FaceMidpoint(f)
			target := geom.Point{X: mid[0] + pp.Translation[0], Y: mid[1] + pp.Translation[1]}
			box := rtree.ToRect(target, tol)
			hits := tree.SearchIntersect(box)
			if len(hits) == 0 {
				return nil, errs.New(errs.Mesh, fmt.Sprintf("periodic face %d (marker %d) has no partner near (%g,%g)", f, pp.MarkerA, target.X, target.Y))
			}
			partnerFace := hits[0].(facePoint).face

			leftA, _ := m.FaceCells(f)
			leftB, _ := m.FaceCells(partnerFace)
			m.FaceCellsArr[f] = [2]int{leftA, leftB}
			m.FaceCellsArr[partnerFace] = [2]int{leftB, leftA}
			m.FacePeriodicArr[f] = true
			m.FacePeriodicArr[partnerFace] = true
			partners[f] = partnerFace
			partners[partnerFace] = f
		}
	}
	return partners, nil
}
