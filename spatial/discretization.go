// Package spatial ties mesh, physics, flux, recon, limiter, and bc
// together into the residual operator spec §4.7 describes: gradient
// reconstruction, limiting, per-face numerical flux, and the
// analytic/matrix-free Jacobian the implicit pseudo-time driver needs.
// Face work is data-parallel across a GOMAXPROCS-strided worker pool,
// the same concurrency shape framework.go's RunParallel uses, adapted
// here from a grid-cell stride to a cell-owned-face-list stride so
// that no two goroutines ever write the same cell's residual slot.
package spatial

import (
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/strandscfd/strands2d/bc"
	"github.com/strandscfd/strands2d/flux"
	"github.com/strandscfd/strands2d/limiter"
	"github.com/strandscfd/strands2d/mesh"
	"github.com/strandscfd/strands2d/physics"
	"github.com/strandscfd/strands2d/recon"
)

// Discretization owns the mesh and numerics configuration needed to
// evaluate a residual and its Jacobian.
type Discretization struct {
	Mesh         mesh.View
	Gas          physics.Gas
	Viscous      *physics.ViscousConfig // not read by Residual or the Jacobians: both are inviscid whether or not it is set
	NumFlux      flux.Flux
	JacobianFlux flux.Flux
	Recon        recon.Reconstructor
	Limiter      limiter.Limiter
	NVars        int

	// Markers maps a boundary marker id to its ghost-state rule.
	Markers map[int]bc.Rule

	Log logrus.FieldLogger

	cellFaces [][]faceRef // built lazily by ensureCellFaces
}

type faceRef struct {
	face   int
	isLeft bool
}

// New constructs a Discretization whose Log is a new standard logrus
// logger; callers may replace Log afterwards.
func New(v mesh.View, gas physics.Gas, nvars int, numFlux, jacFlux flux.Flux, rec recon.Reconstructor, lim limiter.Limiter, markers map[int]bc.Rule) *Discretization {
	d := &Discretization{
		Mesh: v, Gas: gas, NVars: nvars,
		NumFlux: numFlux, JacobianFlux: jacFlux,
		Recon: rec, Limiter: lim, Markers: markers,
		Log: logrus.New(),
	}
	return d
}

// ensureCellFaces lazily builds, once, the per-cell list of incident
// faces and which side the cell is on — the partition that lets the
// residual and Jacobian assembly stride over cells race-free.
func (d *Discretization) ensureCellFaces() {
	if d.cellFaces != nil {
		return
	}
	n := d.Mesh.NumCells()
	out := make([][]faceRef, n)
	for f := 0; f < d.Mesh.NumFaces(); f++ {
		left, right := d.Mesh.FaceCells(f)
		out[left] = append(out[left], faceRef{face: f, isLeft: true})
		if right < n {
			out[right] = append(out[right], faceRef{face: f, isLeft: false})
		}
	}
	d.cellFaces = out
}

// parallelOverCells runs fn(c) for every cell, striding work across
// GOMAXPROCS goroutines the way framework.go's domain manipulators do.
func parallelOverCells(nCells int, fn func(c int)) {
	nprocs := runtime.GOMAXPROCS(-1)
	if nprocs > nCells {
		nprocs = nCells
	}
	if nprocs < 1 {
		nprocs = 1
	}
	var wg sync.WaitGroup
	for p := 0; p < nprocs; p++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for c := start; c < nCells; c += nprocs {
				fn(c)
			}
		}(p)
	}
	wg.Wait()
}
