package output

import (
	"fmt"
	"io"

	"github.com/strandscfd/strands2d/mesh"
	"github.com/strandscfd/strands2d/physics"
)

// vtkTriangle and vtkQuad are the VTK cell-type codes for a 3-node and
// 4-node 2D element, the only two cell shapes the mesh reader produces.
const (
	vtkTriangle = 5
	vtkQuad     = 9
)

// WriteVTU writes the volume solution as an ASCII VTK UnstructuredGrid
// (.vtu): node coordinates, cell connectivity, and point data
// (density, Mach number, pressure, velocity) averaged from each node's
// incident cells. u is the cell-average conservative state array.
func WriteVTU(w io.Writer, v mesh.View, gas physics.Gas, u [][]float64) error {
	nCells := v.NumCells()
	nNodes := nodeCount(v)
	samples := nodeSamples(v, gas, u, nNodes)

	fmt.Fprintln(w, `<?xml version="1.0"?>`)
	fmt.Fprintln(w, `<VTKFile type="UnstructuredGrid" version="0.1" byte_order="LittleEndian">`)
	fmt.Fprintln(w, `  <UnstructuredGrid>`)
	fmt.Fprintf(w, "    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nNodes, nCells)

	if err := writePointData(w, samples); err != nil {
		return err
	}
	if err := writePoints(w, v, nNodes); err != nil {
		return err
	}
	if err := writeCells(w, v); err != nil {
		return err
	}

	fmt.Fprintln(w, `    </Piece>`)
	fmt.Fprintln(w, `  </UnstructuredGrid>`)
	fmt.Fprintln(w, `</VTKFile>`)
	return nil
}

func nodeCount(v mesh.View) int {
	max := -1
	for c := 0; c < v.NumCells(); c++ {
		for _, n := range v.CellNodes(c) {
			if n > max {
				max = n
			}
		}
	}
	return max + 1
}

// nodeSamples averages each node's incident cells' conservative state
// into one VolumeSample, the simplest cell-to-point recovery that
// needs no extra reconstruction machinery.
func nodeSamples(v mesh.View, gas physics.Gas, u [][]float64, nNodes int) []VolumeSample {
	sums := make([]VolumeSample, nNodes)
	counts := make([]int, nNodes)
	for c := 0; c < v.NumCells(); c++ {
		s := sampleFrom(gas, u[c])
		for _, n := range v.CellNodes(c) {
			sums[n].Density += s.Density
			sums[n].Mach += s.Mach
			sums[n].Pressure += s.Pressure
			sums[n].VelocityX += s.VelocityX
			sums[n].VelocityY += s.VelocityY
			counts[n]++
		}
	}
	for n := range sums {
		if counts[n] == 0 {
			continue
		}
		k := float64(counts[n])
		sums[n].Density /= k
		sums[n].Mach /= k
		sums[n].Pressure /= k
		sums[n].VelocityX /= k
		sums[n].VelocityY /= k
	}
	return sums
}

func writePointData(w io.Writer, samples []VolumeSample) error {
	fmt.Fprintln(w, `      <PointData>`)
	for _, f := range volumeFields() {
		if f.Name == "velocity_x" || f.Name == "velocity_y" {
			continue // folded into the single "velocity" vector array below
		}
		fmt.Fprintf(w, "        <DataArray type=\"Float64\" Name=\"%s\" units=\"%s\" format=\"ascii\">\n", f.Name, f.Units)
		for _, s := range samples {
			fmt.Fprintf(w, "%g\n", s.value(f.Index))
		}
		fmt.Fprintln(w, `        </DataArray>`)
	}
	fmt.Fprintln(w, `        <DataArray type="Float64" Name="velocity" NumberOfComponents="3" format="ascii">`)
	for _, s := range samples {
		fmt.Fprintf(w, "%g %g 0\n", s.VelocityX, s.VelocityY)
	}
	fmt.Fprintln(w, `        </DataArray>`)
	fmt.Fprintln(w, `      </PointData>`)
	return nil
}

func writePoints(w io.Writer, v mesh.View, nNodes int) error {
	fmt.Fprintln(w, `      <Points>`)
	fmt.Fprintln(w, `        <DataArray type="Float64" NumberOfComponents="3" format="ascii">`)
	for n := 0; n < nNodes; n++ {
		p := v.NodeCoord(n)
		fmt.Fprintf(w, "%g %g 0\n", p[0], p[1])
	}
	fmt.Fprintln(w, `        </DataArray>`)
	fmt.Fprintln(w, `      </Points>`)
	return nil
}

func writeCells(w io.Writer, v mesh.View) error {
	nCells := v.NumCells()
	fmt.Fprintln(w, `      <Cells>`)

	fmt.Fprintln(w, `        <DataArray type="Int32" Name="connectivity" format="ascii">`)
	for c := 0; c < nCells; c++ {
		nodes := v.CellNodes(c)
		for i, n := range nodes {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%d", n)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, `        </DataArray>`)

	fmt.Fprintln(w, `        <DataArray type="Int32" Name="offsets" format="ascii">`)
	offset := 0
	for c := 0; c < nCells; c++ {
		offset += len(v.CellNodes(c))
		fmt.Fprintln(w, offset)
	}
	fmt.Fprintln(w, `        </DataArray>`)

	fmt.Fprintln(w, `        <DataArray type="UInt8" Name="types" format="ascii">`)
	for c := 0; c < nCells; c++ {
		switch len(v.CellNodes(c)) {
		case 3:
			fmt.Fprintln(w, vtkTriangle)
		case 4:
			fmt.Fprintln(w, vtkQuad)
		default:
			return fmt.Errorf("output: cell %d has %d nodes, expected 3 or 4", c, len(v.CellNodes(c)))
		}
	}
	fmt.Fprintln(w, `        </DataArray>`)

	fmt.Fprintln(w, `      </Cells>`)
	return nil
}
