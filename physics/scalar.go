package physics

// Scalar is a trivial one-equation physics variant carrying a single
// conserved scalar (e.g. passive-tracer concentration) at constant
// advection velocity and diffusivity. It is a standalone type: no flux
// variant, reconstruction, limiter, spatial code or test in strands2d
// uses it.
type Scalar struct {
	VelX, VelY float64
	Diffusivity float64
}

// NVarsScalar is the conservative-state width of the scalar system.
const NVarsScalar = 1

// FluxX returns the x-direction advective flux of the scalar state.
func (s Scalar) FluxX(u []float64) []float64 { return []float64{s.VelX * u[0]} }

// FluxY returns the y-direction advective flux of the scalar state.
func (s Scalar) FluxY(u []float64) []float64 { return []float64{s.VelY * u[0]} }

// WaveSpeed returns the single eigenvalue of the scalar advection
// operator along normal n: v.n.
func (s Scalar) WaveSpeed(n [2]float64) float64 { return s.VelX*n[0] + s.VelY*n[1] }
