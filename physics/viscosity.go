package physics

import "math"

// sutherlandConstant is Sutherland's constant for air, in Kelvin.
const sutherlandConstant = 110.4

// ViscousConfig holds the Navier-Stokes-only reference quantities: the
// free-stream Reynolds number, the Prandtl number, the dimensional
// free-stream temperature (needed to nondimensionalize Sutherland's
// law), and whether to bypass Sutherland's law with a constant
// nondimensional viscosity of 1.
type ViscousConfig struct {
	ReInf            float64
	Pr               float64
	TInf             float64 // Kelvin, dimensional
	UseConstViscosity bool
}

// DynamicViscosity returns the nondimensional laminar dynamic viscosity
// at nondimensional temperature T (normalized by free-stream T), via
// Sutherland's law, or 1 if UseConstViscosity is set.
func (v ViscousConfig) DynamicViscosity(T float64) float64 {
	if v.UseConstViscosity {
		return 1
	}
	Sstar := sutherlandConstant / v.TInf
	return math.Pow(T, 1.5) * (1 + Sstar) / (T + Sstar)
}

// ThermalConductivity returns the nondimensional laminar thermal
// conductivity consistent with a constant Prandtl number:
// k = mu / ((gamma-1)*M_inf^2*Pr) in the nondimensionalization of Gas.
func (v ViscousConfig) ThermalConductivity(gas Gas, mu float64) float64 {
	return mu / ((gas.Gamma - 1) * gas.MInf * gas.MInf * v.Pr)
}
