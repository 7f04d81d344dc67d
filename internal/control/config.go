// Package control implements a small lexer/parser for the solver's
// nested `{ }`-block control-file grammar (§6.1: braces, `;;` line
// comments, quoted strings, `#include "path"` textual inclusion) and
// decodes it into the configuration records the rest of the solver
// consumes: FlowPhysicsConfig, FlowNumericsConfig, and the per-marker
// boundary-condition table, bundled into a RunConfig.
package control

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/strandscfd/strands2d/bc"
	"github.com/strandscfd/strands2d/internal/errs"
	"github.com/strandscfd/strands2d/physics"
	"github.com/strandscfd/strands2d/pseudotime"
)

// IOConfig is the decoded `io` block.
type IOConfig struct {
	MeshFile                  string
	MeshFileFromCmd            bool
	SolutionOutputFile         string
	LogFilePrefix              string
	ConvergenceHistoryRequired bool
}

// FlowPhysicsConfig is the decoded `flow_conditions` block plus the
// boundary-marker table that parameterizes it (§6.1's bc.* options).
// Immutable after Load returns.
type FlowPhysicsConfig struct {
	Viscous bool

	Gas     physics.Gas
	Alpha   float64 // radians
	Viscosity physics.ViscousConfig

	AllowExperimentalCharacteristic bool

	// Markers maps a boundary marker ID (as it appears in the mesh
	// file) to its ghost-state rule configuration.
	Markers map[int]bc.Config

	SurfaceOutputFilePrefix string
	OutputWallMarkers       []int
	OutputOtherMarkers      []int

	// PeriodicPairs names the marker pairs (§6.2: "a compatible marker
	// plus an axis label", here a translation vector) internal/meshio
	// pairs into periodic face couplings during preprocessing.
	PeriodicPairs []PeriodicPairConfig
}

// PeriodicPairConfig is one periodic marker pairing, decoded from the
// bc block's periodic_pairs sub-block.
type PeriodicPairConfig struct {
	MarkerA, MarkerB int
	Translation      [2]float64
	Tolerance        float64
}

// FlowNumericsConfig is the decoded `spatial_discretization` block
// plus the loose `Jacobian_inviscid_flux` key.
type FlowNumericsConfig struct {
	InviscidFlux     string
	JacobianFlux     string // flux name, or "consistent"
	GradientMethod   string
	Limiter          string
	LimiterParameter float64
	SecondOrder      bool
}

// PseudotimeConfig is the decoded `pseudotime` block.
type PseudotimeConfig struct {
	Implicit bool
	// MatrixFree selects the matrix-free stationary Jacobian-vector-
	// product sweep over the assembled-block solve; only meaningful
	// when Implicit is set (pseudotime_stepping_type =
	// "implicit_matrix_free").
	MatrixFree bool
	Starter    pseudotime.Stage
	Main       pseudotime.Stage
}

// RunConfig bundles every decoded block a run needs.
type RunConfig struct {
	IO         IOConfig
	Physics    FlowPhysicsConfig
	Numerics   FlowNumericsConfig
	Pseudotime PseudotimeConfig
}

// Load reads, resolves #includes, parses, and decodes a control file
// at path.
func Load(path string) (*RunConfig, error) {
	text, err := resolveIncludes(path, 0)
	if err != nil {
		return nil, err
	}
	toks, err := lex(text)
	if err != nil {
		return nil, errs.Wrap(errs.Config, fmt.Sprintf("lexing control file %q", path), err)
	}
	root, err := parse(toks)
	if err != nil {
		return nil, errs.Wrap(errs.Config, fmt.Sprintf("parsing control file %q", path), err)
	}
	return decode(root)
}

func decode(root Block) (*RunConfig, error) {
	cfg := &RunConfig{}

	ioBlock, err := root.Sub("io")
	if err != nil {
		return nil, err
	}
	if err := decodeIO(ioBlock, &cfg.IO); err != nil {
		return nil, err
	}

	flowBlock, err := root.Sub("flow_conditions")
	if err != nil {
		return nil, err
	}
	if err := decodeFlowConditions(flowBlock, &cfg.Physics); err != nil {
		return nil, err
	}

	bcBlock, err := root.Sub("bc")
	if err != nil {
		return nil, err
	}
	if err := decodeBC(bcBlock, &cfg.Physics); err != nil {
		return nil, err
	}

	spatialBlock, err := root.Sub("spatial_discretization")
	if err != nil {
		return nil, err
	}
	decodeSpatialDiscretization(spatialBlock, &cfg.Numerics)
	cfg.Numerics.JacobianFlux = root.StringOr("Jacobian_inviscid_flux", "consistent")

	pseudoBlock, err := root.Sub("pseudotime")
	if err != nil {
		return nil, err
	}
	if err := decodePseudotime(pseudoBlock, &cfg.Pseudotime); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decodeIO(b Block, out *IOConfig) error {
	mesh, err := b.String("mesh_file")
	if err != nil {
		return err
	}
	if mesh == "from-cmd" {
		out.MeshFileFromCmd = true
	} else {
		out.MeshFile = mesh
	}
	out.SolutionOutputFile = b.StringOr("solution_output_file", "")
	out.LogFilePrefix = b.StringOr("log_file_prefix", "strands2d")
	out.ConvergenceHistoryRequired = b.Bool("convergence_history_required", false)
	return nil
}

func decodeFlowConditions(b Block, out *FlowPhysicsConfig) error {
	flowType := strings.ToLower(b.StringOr("flow_type", "euler"))
	out.Viscous = flowType == "navierstokes"

	gamma := b.FloatOr("adiabatic_index", 1.4)
	minf, err := b.Float("freestream_Mach_number")
	if err != nil {
		return err
	}
	out.Gas = physics.Gas{Gamma: gamma, MInf: minf}
	out.Alpha = b.FloatOr("angle_of_attack", 0) * math.Pi / 180

	if out.Viscous {
		out.Viscosity = physics.ViscousConfig{
			ReInf:             b.FloatOr("freestream_Reynolds_number", 1e6),
			Pr:                b.FloatOr("Prandtl_number", 0.72),
			TInf:              b.FloatOr("freestream_temperature", 288.15),
			UseConstViscosity: b.Bool("use_constant_viscosity", false),
		}
	}
	return nil
}

// decodeBC decodes the `bc` block: each key that is itself a nested
// block and whose name parses as an integer is a marker entry; the
// remaining loose keys configure surface output.
func decodeBC(b Block, out *FlowPhysicsConfig) error {
	out.AllowExperimentalCharacteristic = b.Bool("allow_experimental_characteristic", false)
	out.Markers = make(map[int]bc.Config)
	for key, v := range b {
		markerID, err := strconv.Atoi(key)
		if err != nil {
			continue // a loose key, handled below
		}
		sub, ok := v.(Block)
		if !ok {
			return errs.New(errs.Config, fmt.Sprintf("bc marker %q must be a block", key))
		}
		mc, err := decodeMarker(sub, out)
		if err != nil {
			return err
		}
		out.Markers[markerID] = mc
	}

	out.SurfaceOutputFilePrefix = b.StringOr("surface_output_file_prefix", "")
	out.OutputWallMarkers = parseIntList(b.StringOr("listof_output_wall_boundaries", ""))
	out.OutputOtherMarkers = parseIntList(b.StringOr("listof_output_other_boundaries", ""))

	if pairs, err := b.Sub("periodic_pairs"); err == nil {
		for key, v := range pairs {
			sub, ok := v.(Block)
			if !ok {
				return errs.New(errs.Config, fmt.Sprintf("periodic_pairs entry %q must be a block", key))
			}
			pp, err := decodePeriodicPair(sub)
			if err != nil {
				return err
			}
			out.PeriodicPairs = append(out.PeriodicPairs, pp)
		}
	}
	return nil
}

func decodePeriodicPair(b Block) (PeriodicPairConfig, error) {
	markerA, err := b.Float("marker_a")
	if err != nil {
		return PeriodicPairConfig{}, err
	}
	markerB, err := b.Float("marker_b")
	if err != nil {
		return PeriodicPairConfig{}, err
	}
	return PeriodicPairConfig{
		MarkerA:     int(markerA),
		MarkerB:     int(markerB),
		Translation: [2]float64{b.FloatOr("translation_x", 0), b.FloatOr("translation_y", 0)},
		Tolerance:   b.FloatOr("tolerance", 0),
	}, nil
}

func decodeMarker(b Block, flow *FlowPhysicsConfig) (bc.Config, error) {
	kind, err := b.String("kind")
	if err != nil {
		return bc.Config{}, err
	}
	mc := bc.Config{
		Kind:                            kind,
		WallTemperature:                 b.FloatOr("wall_temperature", 0),
		WallPressure:                    b.FloatOr("wall_pressure", 0),
		FreestreamAlpha:                 flow.Alpha,
		AllowExperimentalCharacteristic: flow.AllowExperimentalCharacteristic,
	}
	return mc, nil
}

func parseIntList(s string) []int {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		if v, err := strconv.Atoi(f); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func decodeSpatialDiscretization(b Block, out *FlowNumericsConfig) {
	out.InviscidFlux = b.StringOr("inviscid_flux", "Roe")
	out.GradientMethod = b.StringOr("gradient_method", "leastSquares")
	out.Limiter = b.StringOr("limiter", "none")
	out.LimiterParameter = b.FloatOr("limiter_parameter", 5.0)
	out.SecondOrder = strings.ToLower(out.GradientMethod) != "none"
}

func decodePseudotime(b Block, out *PseudotimeConfig) error {
	steppingType := strings.ToLower(b.StringOr("pseudotime_stepping_type", "explicit"))
	out.Implicit = steppingType == "implicit" || steppingType == "implicit_matrix_free"
	out.MatrixFree = steppingType == "implicit_matrix_free"

	if init, err := b.Sub("initialization"); err == nil {
		out.Starter = decodeStage("initialization", init)
	}
	main, err := b.Sub("main")
	if err != nil {
		return err
	}
	out.Main = decodeStage("main", main)
	out.Main.Implicit = out.Implicit
	out.Main.MatrixFree = out.MatrixFree
	return nil
}

func decodeStage(name string, b Block) pseudotime.Stage {
	rampStart := b.FloatOr("ramp_start", 0)
	rampEnd, hasRampEnd := b["ramp_end"].(float64)
	maxIters := int(b.FloatOr("max_timesteps", 0))

	rampIters := maxIters
	if hasRampEnd {
		rampIters = int(rampEnd - rampStart)
	}
	if rampIters < 0 {
		rampIters = 0
	}

	return pseudotime.Stage{
		Name:           name,
		MaxIters:       maxIters,
		CFLStart:       b.FloatOr("cfl_min", 1),
		CFLMax:         b.FloatOr("cfl_max", 1),
		CFLRampIters:   rampIters,
		ConvergenceTol: b.FloatOr("tolerance", 0),
	}
}
