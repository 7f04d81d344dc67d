// Package verify is a test-only harness for the solver's quantified
// testable properties (§8): it is never imported by cmd/strands2d.
// This file supplies the supersonic-vortex analytic case's exact
// solution; slope.go fits the mesh-refinement entropy-error slope.
package verify

import "math"

// VortexParams describes the supersonic-vortex analytic case: a
// potential vortex around Center with inner radius RInner, isentropic
// from the inner-radius state (rho=1, p=1, Mach=MachInner).
type VortexParams struct {
	Center          [2]float64
	RInner          float64
	MachInner       float64
	Gamma           float64
}

// ExactPrimitive returns the analytic (rho, p, vx, vy) at pos, derived
// from conservation of angular momentum (V*r = const) and the
// isentropic relation between radius and stagnation enthalpy.
func (v VortexParams) ExactPrimitive(pos [2]float64) (rho, p, vx, vy float64) {
	dx, dy := pos[0]-v.Center[0], pos[1]-v.Center[1]
	r := math.Hypot(dx, dy)
	theta := math.Atan2(dy, dx)

	cInner := math.Sqrt(v.Gamma) // sound speed at the inner radius, rho_i=p_i=1
	speedInner := v.MachInner * cInner

	speed := speedInner * v.RInner / r
	gm1 := v.Gamma - 1
	// isentropic relation along a streamline: T + (gm1/2)*V^2 = const,
	// with T = c^2 here since rho_i=1 => c_i^2 = gamma*p_i/rho_i = gamma.
	cInnerSq := v.Gamma
	cSq := cInnerSq + 0.5*gm1*(speedInner*speedInner-speed*speed)

	rho = math.Pow(cSq/cInnerSq, 1/gm1)
	p = rho * cSq / v.Gamma

	// Tangential velocity: counter-clockwise flow around Center.
	vx = -speed * math.Sin(theta)
	vy = speed * math.Cos(theta)
	return
}

// ExactState returns the conservative state (rho, rho*vx, rho*vy,
// rho*E) at pos.
func (v VortexParams) ExactState(pos [2]float64) []float64 {
	rho, p, vx, vy := v.ExactPrimitive(pos)
	rhoE := p/(v.Gamma-1) + 0.5*rho*(vx*vx+vy*vy)
	return []float64{rho, rho * vx, rho * vy, rhoE}
}
