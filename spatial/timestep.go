package spatial

import "math"

// isolatedCellTimeStepCap scales the time step assigned to a cell with
// no incident faces (denom == 0 below): a large multiple of the cell's
// own characteristic length, still proportional to cfl so a CFL-halving
// retry actually shrinks it instead of leaving an unbounded Inf*0==NaN
// update on the table.
const isolatedCellTimeStepCap = 1e8

// LocalTimeStep returns, per cell, the explicit stability-limited
// pseudo-time step at the given CFL number: dt_c = CFL * area_c /
// (sum over incident faces of (|v.n|+c) * face length), the standard
// local time-stepping formula for cell-centered finite-volume schemes.
func (d *Discretization) LocalTimeStep(u [][]float64, cfl float64) []float64 {
	d.ensureCellFaces()
	nCells := d.Mesh.NumCells()
	dt := make([]float64, nCells)

	parallelOverCells(nCells, func(c int) {
		var denom float64
		uc := u[c]
		vx, vy := d.Gas.Velocity(uc)
		cSound := d.Gas.SoundSpeed(uc)
		for _, fr := range d.cellFaces[c] {
			n := d.Mesh.FaceNormal(fr.face)
			if !fr.isLeft {
				n = [2]float64{-n[0], -n[1]}
			}
			vn := vx*n[0] + vy*n[1]
			denom += (math.Abs(vn) + cSound) * d.Mesh.FaceLength(fr.face)
		}
		if denom == 0 {
			dt[c] = isolatedCellTimeStepCap * cfl * math.Sqrt(d.Mesh.CellArea(c))
			return
		}
		dt[c] = cfl * d.Mesh.CellArea(c) / denom
	})
	return dt
}
