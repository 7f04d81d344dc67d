// Package linop implements the block-sparse linear operator spatial
// assembles its flux Jacobian into: one nvars x nvars diagonal block
// per cell plus a row-indexed map of off-diagonal blocks, with Apply
// (a product with the stored blocks) and a block-Jacobi solve for the
// pseudo-time linear system.
package linop

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/mesh"
)

// Operator is a cell-block-sparse linear operator over an nvars-wide
// state space: one block per cell pair with a nonzero coupling.
type Operator struct {
	v       mesh.View
	nvars   int
	diag    []*mat.Dense
	off     []map[int]*mat.Dense
}

// New returns an Operator with zeroed blocks for v's cells.
func New(v mesh.View, nvars int) *Operator {
	n := v.NumCells()
	o := &Operator{v: v, nvars: nvars, diag: make([]*mat.Dense, n), off: make([]map[int]*mat.Dense, n)}
	for c := 0; c < n; c++ {
		o.diag[c] = mat.NewDense(nvars, nvars, nil)
		o.off[c] = make(map[int]*mat.Dense)
	}
	return o
}

// Type names the operator's storage representation.
func (o *Operator) Type() string { return "block-sparse" }

// NumCells returns the number of diagonal blocks (cells).
func (o *Operator) NumCells() int { return len(o.diag) }

// NVars returns the block width.
func (o *Operator) NVars() int { return o.nvars }

// DiagBlock returns cell's diagonal block.
func (o *Operator) DiagBlock(cell int) *mat.Dense { return o.diag[cell] }

// OffBlock returns the (row, col) off-diagonal block, or nil if no
// face submission has ever coupled the two cells.
func (o *Operator) OffBlock(row, col int) *mat.Dense { return o.off[row][col] }

// Reset zeroes every block, for reuse across pseudo-time steps.
func (o *Operator) Reset() {
	for c := range o.diag {
		o.diag[c].Zero()
		o.off[c] = make(map[int]*mat.Dense)
	}
}

// UpdateDiagBlock accumulates block into cell's diagonal block.
func (o *Operator) UpdateDiagBlock(cell int, block *mat.Dense) {
	o.diag[cell].Add(o.diag[cell], block)
}

// SubmitBlock is the general row/col-indexed submission flavor:
// accumulate block into the (row, col) off-diagonal entry (row != col),
// or into the diagonal if row == col.
func (o *Operator) SubmitBlock(row, col int, block *mat.Dense) {
	if row == col {
		o.UpdateDiagBlock(row, block)
		return
	}
	if existing, ok := o.off[row][col]; ok {
		existing.Add(existing, block)
		return
	}
	cp := mat.NewDense(o.nvars, o.nvars, nil)
	cp.Copy(block)
	o.off[row][col] = cp
}

// SubmitFaceBlock is the "d" (dense, face-indexed) submission flavor:
// given a face's residual-Jacobian pair (dR/duLeft, dR/duRight), it
// routes the four resulting blocks to the operator by conservation —
// the left cell's residual gets +dRdL, +dRdR; the right cell's
// residual gets the exact negatives, since the face flux enters the
// right cell's residual with opposite sign.
func (o *Operator) SubmitFaceBlock(face int, dRdL, dRdR *mat.Dense) {
	left, right := o.v.FaceCells(face)
	o.SubmitBlock(left, left, dRdL)
	o.SubmitBlock(left, right, dRdR)
	if right < o.NumCells() {
		neg := mat.NewDense(o.nvars, o.nvars, nil)
		neg.Scale(-1, dRdL)
		o.SubmitBlock(right, left, neg)
		neg2 := mat.NewDense(o.nvars, o.nvars, nil)
		neg2.Scale(-1, dRdR)
		o.SubmitBlock(right, right, neg2)
	}
}

// Negate returns a copy of o with every block negated, used by the
// implicit pseudo-time stage to turn the residual Jacobian J into -J
// before forming the augmented backward-Euler system.
func (o *Operator) Negate() *Operator {
	neg := New(o.v, o.nvars)
	for c := range o.diag {
		neg.diag[c].Scale(-1, o.diag[c])
		for col, block := range o.off[c] {
			var nb mat.Dense
			nb.Scale(-1, block)
			neg.off[c][col] = &nb
		}
	}
	return neg
}

// SolveBlockJacobi approximately solves (A + diag(1/dt))*x = rhs by a
// fixed number of block-Jacobi relaxation sweeps over the assembled
// blocks, the implicit smoother the pseudo-time driver uses for its backward-Euler
// stage: each sweep inverts the augmented diagonal block exactly and
// treats the off-diagonal coupling explicitly from the previous
// iterate.
func (o *Operator) SolveBlockJacobi(rhs []float64, dt []float64, sweeps int) []float64 {
	n := o.NumCells()
	x := make([]float64, n*o.nvars)

	augInv := make([]*mat.Dense, n)
	for c := 0; c < n; c++ {
		aug := mat.NewDense(o.nvars, o.nvars, nil)
		aug.Copy(o.diag[c])
		for k := 0; k < o.nvars; k++ {
			aug.Set(k, k, aug.At(k, k)+1/dt[c])
		}
		var inv mat.Dense
		if err := inv.Inverse(aug); err == nil {
			augInv[c] = &inv
		} else {
			augInv[c] = mat.NewDense(o.nvars, o.nvars, nil)
		}
	}

	for sweep := 0; sweep < sweeps; sweep++ {
		next := make([]float64, n*o.nvars)
		for c := 0; c < n; c++ {
			b := mat.NewVecDense(o.nvars, append([]float64(nil), rhs[c*o.nvars:(c+1)*o.nvars]...))
			for col, block := range o.off[c] {
				xcol := mat.NewVecDense(o.nvars, x[col*o.nvars:(col+1)*o.nvars])
				var contrib mat.VecDense
				contrib.MulVec(block, xcol)
				b.SubVec(b, &contrib)
			}
			var xc mat.VecDense
			xc.MulVec(augInv[c], b)
			copy(next[c*o.nvars:(c+1)*o.nvars], xc.RawVector().Data)
		}
		x = next
	}
	return x
}

// Apply computes y = A*x for the block-sparse operator, x and y laid
// out as nvars-wide segments per cell.
func (o *Operator) Apply(x []float64) []float64 {
	n := o.NumCells()
	y := make([]float64, n*o.nvars)
	for c := 0; c < n; c++ {
		xc := mat.NewVecDense(o.nvars, x[c*o.nvars:(c+1)*o.nvars])
		var yc mat.VecDense
		yc.MulVec(o.diag[c], xc)
		for col, block := range o.off[c] {
			xcol := mat.NewVecDense(o.nvars, x[col*o.nvars:(col+1)*o.nvars])
			var contrib mat.VecDense
			contrib.MulVec(block, xcol)
			yc.AddVec(&yc, &contrib)
		}
		copy(y[c*o.nvars:(c+1)*o.nvars], yc.RawVector().Data)
	}
	return y
}
