// Package bc implements spec §4.6's ghost-cell boundary closures, one
// per marker kind: slip wall, adiabatic wall, isothermal wall,
// isothermal-pressure wall, far-field, characteristic inflow/outflow
// (gated behind an experimental flag), and periodic. Each Rule exposes
// both the ghost state itself and its Jacobian with respect to the
// interior state it mirrors (closed form for slip and adiabatic walls
// and far-field, central differences for the others), per the boundary ghost-Jacobian
// folding decision recorded in the project's grounding ledger.
package bc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/strandscfd/strands2d/physics"
)

// Rule is one marker's ghost-state closure.
type Rule interface {
	// Name returns the configuration name of the rule.
	Name() string
	// GhostState returns the ghost conservative state u_g mirrored
	// across a boundary face of outward unit normal n (pointing out of
	// the domain, from the interior cell toward the ghost).
	GhostState(uL []float64, n [2]float64, gas physics.Gas) []float64
	// GhostJacobian returns d(u_g)/d(u_L).
	GhostJacobian(uL []float64, n [2]float64, gas physics.Gas) *mat.Dense
}

// Config is the set of marker-indexed parameters control files bind.
type Config struct {
	Kind string

	// IsothermalWall / IsothermalPressureWall
	WallTemperature float64
	// IsothermalPressureWall
	WallPressure float64

	// FarField / Characteristic
	FreestreamAlpha float64

	// AllowExperimentalCharacteristic gates the Characteristic rule;
	// it is otherwise refused by New.
	AllowExperimentalCharacteristic bool
}

// New builds the Rule named by cfg.Kind: "slip-wall", "adiabatic-wall",
// "isothermal-wall", "isothermal-pressure-wall", "far-field",
// "characteristic", or "periodic".
func New(cfg Config, gas physics.Gas) (Rule, error) {
	switch cfg.Kind {
	case "slip-wall":
		return SlipWall{}, nil
	case "adiabatic-wall":
		return AdiabaticWall{}, nil
	case "isothermal-wall":
		return IsothermalWall{Tw: cfg.WallTemperature}, nil
	case "isothermal-pressure-wall":
		return IsothermalPressureWall{Tw: cfg.WallTemperature, Pw: cfg.WallPressure}, nil
	case "far-field":
		return FarField{UInf: gas.Freestream(cfg.FreestreamAlpha)}, nil
	case "characteristic":
		if !cfg.AllowExperimentalCharacteristic {
			return nil, fmt.Errorf("bc: characteristic boundary is experimental; set AllowExperimentalCharacteristic to enable")
		}
		return Characteristic{UInf: gas.Freestream(cfg.FreestreamAlpha)}, nil
	case "periodic":
		return Periodic{}, nil
	default:
		return nil, fmt.Errorf("bc: unknown marker kind %q", cfg.Kind)
	}
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
