package bc

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// Characteristic is the full characteristic inflow/outflow closure,
// chosen by the interior normal Mach number: supersonic inflow takes
// the free-stream state, supersonic outflow extrapolates the interior
// state, and subsonic faces use the Riemann-invariant mix of
// riemannBoundaryState. It is a separately gated rule for internal
// inflow/outflow markers (e.g. duct boundaries close to the
// computational domain), and strands2d treats it as experimental until
// validated against a supersonic/subsonic duct case.
type Characteristic struct {
	UInf []float64
}

func (Characteristic) Name() string { return "characteristic" }

func (c Characteristic) GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64 {
	vx, vy := uL[1]/uL[0], uL[2]/uL[0]
	mn := (vx*n[0] + vy*n[1]) / gas.SoundSpeed(uL)
	switch {
	case mn <= -1: // supersonic inflow: every characteristic enters
		return append([]float64(nil), c.UInf...)
	case mn >= 1: // supersonic outflow: every characteristic leaves
		return append([]float64(nil), uL...)
	}
	return riemannBoundaryState(uL, c.UInf, n, gas)
}

func (c Characteristic) GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense {
	return fdGhostJacobian(func(u []float64) []float64 { return c.GhostState(u, n, gas) }, uL)
}
