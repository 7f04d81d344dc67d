package flux

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// HLL is the two-wave Harten-Lax-van Leer flux: a single intermediate
// state between the fastest left- and right-running waves, with no
// resolution of the contact/shear wave (see HLLC for that).
type HLL struct{}

func (HLL) Name() string { return "HLL" }

func (HLL) Eval(uL, uR []float64, n [2]float64, gas physics.Gas) []float64 {
	sl, sr := hllWaveSpeeds(uL, uR, n, gas)
	fl := physicalFlux(uL, n, gas)
	fr := physicalFlux(uR, n, gas)

	out := make([]float64, len(uL))
	switch {
	case sl >= 0:
		copy(out, fl)
	case sr <= 0:
		copy(out, fr)
	default:
		for i := range out {
			out[i] = (sr*fl[i] - sl*fr[i] + sl*sr*(uR[i]-uL[i])) / (sr - sl)
		}
	}
	return out
}

func (h HLL) Jacobian(uL, uR []float64, n [2]float64, gas physics.Gas) (*mat.Dense, *mat.Dense) {
	return fdFluxJacobian(func(a, b []float64) []float64 { return h.Eval(a, b, n, gas) }, uL, uR)
}

// hllWaveSpeeds returns the Davis estimate of the fastest left- and
// right-running signal speeds, bracketed by the Roe-averaged speed.
func hllWaveSpeeds(uL, uR []float64, n [2]float64, gas physics.Gas) (sl, sr float64) {
	vnL := (uL[1]*n[0] + uL[2]*n[1]) / uL[0]
	vnR := (uR[1]*n[0] + uR[2]*n[1]) / uR[0]
	cL := gas.SoundSpeed(uL)
	cR := gas.SoundSpeed(uR)
	vnRoe, cRoe := roeNormalSpeed(uL, uR, n, gas)

	sl = math.Min(vnL-cL, vnRoe-cRoe)
	sr = math.Max(vnR+cR, vnRoe+cRoe)
	return
}

// roeNormalSpeed returns the Roe-averaged normal velocity and sound
// speed for a face of normal n.
func roeNormalSpeed(uL, uR []float64, n [2]float64, gas physics.Gas) (vn, c float64) {
	vx, vy, _, c := roeAverage(uL, uR, gas)
	vn = vx*n[0] + vy*n[1]
	return vn, c
}
