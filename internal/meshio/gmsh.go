// Package meshio reads Gmsh v2 ASCII mesh files and preprocesses them
// into a mesh.Static: shared-edge face/cell adjacency, boundary-faces-
// first ordering, and periodic face pairing via a spatial index, the
// same shape preproc.go builds a runnable domain from raw shapefile
// geometry before the rest of the solver ever sees it.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ctessum/geom"

	"github.com/strandscfd/strands2d/internal/errs"
)

// gmshLine is a 2-node line element (elemType 1): a boundary edge
// tagged with a physical-group marker.
type gmshLine struct {
	marker   int
	n0, n1   int
}

// gmshCell is a 3- or 4-node surface element (elemType 2 or 3).
type gmshCell struct {
	nodes []int
}

type gmshFile struct {
	nodes []geom.Point
	lines []gmshLine
	cells []gmshCell
}

// ReadGmsh parses a Gmsh v2 ASCII mesh file.
func ReadGmsh(r io.Reader) (*gmshFile, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	f := &gmshFile{}

	for sc.Scan() {
		section := strings.TrimSpace(sc.Text())
		switch section {
		case "$Nodes":
			if err := readNodes(sc, f); err != nil {
				return nil, err
			}
		case "$Elements":
			if err := readElements(sc, f); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.IO, "reading gmsh mesh", err)
	}
	return f, nil
}

func readNodes(sc *bufio.Scanner, f *gmshFile) error {
	if !sc.Scan() {
		return errs.New(errs.Mesh, "truncated $Nodes section")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return errs.Wrap(errs.Mesh, "parsing node count", err)
	}
	f.nodes = make([]geom.Point, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return errs.New(errs.Mesh, "truncated node list")
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return errs.New(errs.Mesh, fmt.Sprintf("malformed node line %q", sc.Text()))
		}
		x, err1 := strconv.ParseFloat(fields[1], 64)
		y, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			return errs.New(errs.Mesh, fmt.Sprintf("malformed node coordinates %q", sc.Text()))
		}
		f.nodes[i] = geom.Point{X: x, Y: y}
	}
	sc.Scan() // $EndNodes
	return nil
}

func readElements(sc *bufio.Scanner, f *gmshFile) error {
	if !sc.Scan() {
		return errs.New(errs.Mesh, "truncated $Elements section")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return errs.Wrap(errs.Mesh, "parsing element count", err)
	}
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return errs.New(errs.Mesh, "truncated element list")
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 5 {
			continue
		}
		elemType, _ := strconv.Atoi(fields[1])
		numTags, _ := strconv.Atoi(fields[2])
		physicalTag := 0
		if numTags > 0 {
			physicalTag, _ = strconv.Atoi(fields[3])
		}
		nodeFields := fields[3+numTags:]
		nodes := make([]int, len(nodeFields))
		for j, s := range nodeFields {
			idx, _ := strconv.Atoi(s)
			nodes[j] = idx - 1 // Gmsh node ids are 1-based
		}

		switch elemType {
		case 1: // 2-node line
			if len(nodes) != 2 {
				return errs.New(errs.Mesh, "line element without 2 nodes")
			}
			f.lines = append(f.lines, gmshLine{marker: physicalTag, n0: nodes[0], n1: nodes[1]})
		case 2, 3: // 3-node triangle, 4-node quad
			f.cells = append(f.cells, gmshCell{nodes: nodes})
		}
	}
	sc.Scan() // $EndElements
	return nil
}
