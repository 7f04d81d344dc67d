package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/strandscfd/strands2d/mesh"
	"github.com/strandscfd/strands2d/physics"
)

var testGas = physics.Gas{Gamma: 1.4, MInf: 0.5}

// oneTriangleMesh builds a minimal single-cell mesh.Static sufficient
// to exercise the output writers' mesh.View usage (node/cell/face
// queries only; no gradient or flux assembly happens here).
func oneTriangleMesh() *mesh.Static {
	m := &mesh.Static{
		NCells:         1,
		NBoundaryFaces: 3,
		NodeCoordArr:   [][2]float64{{0, 0}, {1, 0}, {0, 1}},
		CellNodesArr:   [][]int{{0, 1, 2}},
		FaceCellsArr:   [][2]int{{0, 1}, {0, 2}, {0, 3}},
		FaceNodesArr:   [][2]int{{0, 1}, {1, 2}, {2, 0}},
		FaceNormalArr:  [][2]float64{{0, -1}, {0.7071067811865475, 0.7071067811865475}, {-1, 0}},
		FaceLengthArr:  []float64{1, 1.4142135623730951, 1},
		FaceMarkerArr:  []int{10, 20, 30},
	}
	return m
}

func TestWriteVTUProducesWellFormedSections(t *testing.T) {
	m := oneTriangleMesh()
	u := [][]float64{testGas.ToConservative(1, 0.5, 0, 1)}

	var buf bytes.Buffer
	if err := WriteVTU(&buf, m, testGas, u); err != nil {
		t.Fatalf("WriteVTU: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `NumberOfPoints="3"`) {
		t.Errorf("missing point count: %s", out)
	}
	if !strings.Contains(out, `NumberOfCells="1"`) {
		t.Errorf("missing cell count: %s", out)
	}
	if !strings.Contains(out, `Name="density"`) {
		t.Errorf("missing density array: %s", out)
	}
	if !strings.Contains(out, `Name="velocity"`) {
		t.Errorf("missing velocity array: %s", out)
	}
}

func TestWriteSurfaceCoefficientsOneMarker(t *testing.T) {
	m := oneTriangleMesh()
	u := [][]float64{testGas.ToConservative(1, 0.5, 0, 1)}

	var buf bytes.Buffer
	if err := WriteSurfaceCoefficients(&buf, m, testGas, u, 0, 10); err != nil {
		t.Fatalf("WriteSurfaceCoefficients: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "10 ") {
		t.Errorf("missing marker 10 row: %s", out)
	}
}

func TestTlogWriterWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTlogWriter(&buf)
	tw.Step(0, 1.0, 1.0)
	tw.Step(1, 2.0, 0.5)

	out := buf.String()
	if strings.Count(out, "# step") != 1 {
		t.Errorf("header written more than once: %s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 steps): %v", len(lines), lines)
	}
}
