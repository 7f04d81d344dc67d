// Package physics implements the pure gas-dynamics relations the rest
// of the solver is built on: conservative/primitive conversions,
// pressure/temperature/sound-speed/entropy, and free-stream
// nondimensionalization. Every function here is pure — no cell, no
// mesh, no hidden state — the way science.go's per-cell physics
// functions take values in and return values out.
package physics

import "math"

// NVarsEuler is the conservative-state width for the 2D compressible
// Euler/Navier-Stokes system: (rho, rho*vx, rho*vy, rho*E).
const NVarsEuler = 4

// Gas holds the two nondimensional parameters the equation of state
// needs: the ratio of specific heats and the free-stream Mach number
// (the latter enters because pressure and temperature are both
// nondimensionalized against free-stream conditions: p = rho*T/(gamma*Minf^2)).
type Gas struct {
	Gamma float64
	MInf  float64
}

// Pressure returns p = (gamma-1)*(rho*E - 1/2*rho*|v|^2) from a
// conservative state u = (rho, rho*vx, rho*vy, rho*E).
func (g Gas) Pressure(u []float64) float64 {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	rhoE := u[3]
	return (g.Gamma - 1) * (rhoE - 0.5*rho*(vx*vx+vy*vy))
}

// Temperature returns the nondimensional temperature T = p*gamma*Minf^2/rho
// consistent with the equation of state p = rho*T/(gamma*Minf^2).
func (g Gas) Temperature(u []float64) float64 {
	p := g.Pressure(u)
	return p * g.Gamma * g.MInf * g.MInf / u[0]
}

// SoundSpeed returns c = sqrt(gamma*p/rho).
func (g Gas) SoundSpeed(u []float64) float64 {
	p := g.Pressure(u)
	return math.Sqrt(g.Gamma * p / u[0])
}

// Entropy returns s = p/rho^gamma.
func (g Gas) Entropy(u []float64) float64 {
	p := g.Pressure(u)
	return p / math.Pow(u[0], g.Gamma)
}

// Mach returns the local Mach number |v|/c.
func (g Gas) Mach(u []float64) float64 {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	speed := math.Hypot(vx, vy)
	return speed / g.SoundSpeed(u)
}

// Velocity returns (vx, vy) from a conservative state.
func (g Gas) Velocity(u []float64) (vx, vy float64) {
	return u[1] / u[0], u[2] / u[0]
}

// ToPrimitive converts a conservative state to primitive (rho, vx, vy, T).
func (g Gas) ToPrimitive(u []float64) (rho, vx, vy, T float64) {
	rho = u[0]
	vx, vy = g.Velocity(u)
	T = g.Temperature(u)
	return
}

// EnergyFromPrimitive returns rho*E given primitive variables
// (rho, vx, vy, T), using p = rho*T/(gamma*Minf^2) and
// E = p/((gamma-1)*rho) + 1/2*|v|^2.
func (g Gas) EnergyFromPrimitive(rho, vx, vy, T float64) float64 {
	p := rho * T / (g.Gamma * g.MInf * g.MInf)
	E := p/((g.Gamma-1)*rho) + 0.5*(vx*vx+vy*vy)
	return rho * E
}

// ToConservative converts primitive variables (rho, vx, vy, T) to a
// conservative state (rho, rho*vx, rho*vy, rho*E).
func (g Gas) ToConservative(rho, vx, vy, T float64) []float64 {
	return []float64{rho, rho * vx, rho * vy, g.EnergyFromPrimitive(rho, vx, vy, T)}
}

// PressureFromPrimitive returns p = rho*T/(gamma*Minf^2).
func (g Gas) PressureFromPrimitive(rho, T float64) float64 {
	return rho * T / (g.Gamma * g.MInf * g.MInf)
}

// Freestream returns the nondimensional reference conservative state
// u_inf for an angle of attack alpha (radians): rho_inf=1,
// v_inf=(cos(alpha), sin(alpha)), p_inf = 1/(gamma*Minf^2), so that
// E_inf = 1/((gamma-1)*gamma*Minf^2) + 1/2.
func (g Gas) Freestream(alpha float64) []float64 {
	vx, vy := math.Cos(alpha), math.Sin(alpha)
	p := 1 / (g.Gamma * g.MInf * g.MInf)
	E := p/(g.Gamma-1) + 0.5*(vx*vx+vy*vy)
	return []float64{1, vx, vy, E}
}

// Valid reports whether a conservative state has positive density and
// pressure. Mid-iteration transients are allowed to violate this; only
// converged/accepted states are expected to satisfy it (see spec §3).
func (g Gas) Valid(u []float64) bool {
	if u[0] <= 0 {
		return false
	}
	p := g.Pressure(u)
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}
