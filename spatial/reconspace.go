package spatial

import "github.com/strandscfd/strands2d/recon"

// toReconSpace converts a conservative state to the Reconstructor's
// variable space. For the scalar verification system (NVars==1) the
// two spaces coincide.
func (d *Discretization) toReconSpace(u []float64) []float64 {
	if u == nil || d.Recon.Space() == recon.Conservative || d.NVars != 4 {
		return u
	}
	rho, vx, vy, T := d.Gas.ToPrimitive(u)
	return []float64{rho, vx, vy, T}
}

// fromReconSpace converts a Reconstructor-space state back to
// conservative, the state every flux.Flux implementation expects.
func (d *Discretization) fromReconSpace(w []float64) []float64 {
	if d.Recon.Space() == recon.Conservative || d.NVars != 4 {
		return w
	}
	return d.Gas.ToConservative(w[0], w[1], w[2], w[3])
}
