package control

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleBC = `
bc {
	1 { kind slip-wall }
	2 { kind far-field }
	listof_output_wall_boundaries "1"
	surface_output_file_prefix "wall"
}
`

const sampleMain = `
io {
	mesh_file "airfoil.msh"
	log_file_prefix "run"
	convergence_history_required true
}
flow_conditions {
	flow_type euler
	adiabatic_index 1.4
	angle_of_attack 2.0
	freestream_Mach_number 0.8
}
#include "bc.ctl"
spatial_discretization {
	inviscid_flux Roe
	gradient_method leastSquares
	limiter VanAlbada
	limiter_parameter 5.0
}
Jacobian_inviscid_flux consistent
pseudotime {
	pseudotime_stepping_type implicit
	initialization {
		cfl_min 0.1
		cfl_max 1.0
		max_timesteps 50
	}
	main {
		cfl_min 1.0
		cfl_max 200.0
		tolerance 1e-10
		max_timesteps 2000
		ramp_start 0
		ramp_end 200
	}
}
`

func writeTestFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.ctl"), []byte(sampleMain), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bc.ctl"), []byte(sampleBC), 0o644); err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, "main.ctl")
}

func TestLoadDecodesFullControlFile(t *testing.T) {
	path := writeTestFiles(t)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.IO.MeshFile != "airfoil.msh" {
		t.Errorf("MeshFile = %q", cfg.IO.MeshFile)
	}
	if !cfg.IO.ConvergenceHistoryRequired {
		t.Error("ConvergenceHistoryRequired = false, want true")
	}
	if cfg.Physics.Viscous {
		t.Error("Viscous = true, want false for flow_type euler")
	}
	if cfg.Physics.Gas.Gamma != 1.4 || cfg.Physics.Gas.MInf != 0.8 {
		t.Errorf("Gas = %+v", cfg.Physics.Gas)
	}
	if len(cfg.Physics.Markers) != 2 {
		t.Fatalf("Markers = %v, want 2 entries", cfg.Physics.Markers)
	}
	if cfg.Physics.Markers[1].Kind != "slip-wall" {
		t.Errorf("marker 1 kind = %q", cfg.Physics.Markers[1].Kind)
	}
	if cfg.Physics.Markers[2].Kind != "far-field" {
		t.Errorf("marker 2 kind = %q", cfg.Physics.Markers[2].Kind)
	}
	if len(cfg.Physics.OutputWallMarkers) != 1 || cfg.Physics.OutputWallMarkers[0] != 1 {
		t.Errorf("OutputWallMarkers = %v", cfg.Physics.OutputWallMarkers)
	}

	if cfg.Numerics.InviscidFlux != "Roe" {
		t.Errorf("InviscidFlux = %q", cfg.Numerics.InviscidFlux)
	}
	if cfg.Numerics.JacobianFlux != "consistent" {
		t.Errorf("JacobianFlux = %q", cfg.Numerics.JacobianFlux)
	}
	if !cfg.Numerics.SecondOrder {
		t.Error("SecondOrder = false, want true for gradient_method leastSquares")
	}

	if !cfg.Pseudotime.Implicit {
		t.Error("Implicit = false, want true")
	}
	if cfg.Pseudotime.Starter.MaxIters != 50 {
		t.Errorf("Starter.MaxIters = %d", cfg.Pseudotime.Starter.MaxIters)
	}
	if cfg.Pseudotime.Main.CFLRampIters != 200 {
		t.Errorf("Main.CFLRampIters = %d", cfg.Pseudotime.Main.CFLRampIters)
	}
	if !cfg.Pseudotime.Main.Implicit {
		t.Error("Main.Implicit = false, want true")
	}
}

func TestLoadDecodesMatrixFreeSteppingType(t *testing.T) {
	src := `
io { mesh_file "airfoil.msh" }
flow_conditions { flow_type euler adiabatic_index 1.4 freestream_Mach_number 0.5 }
#include "bc.ctl"
spatial_discretization { }
pseudotime {
	pseudotime_stepping_type implicit_matrix_free
	main {
		cfl_max 10.0
		max_timesteps 100
	}
}
`
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.ctl"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bc.ctl"), []byte(sampleBC), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(dir, "main.ctl"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Pseudotime.Implicit {
		t.Error("Implicit = false, want true for implicit_matrix_free")
	}
	if !cfg.Pseudotime.MatrixFree {
		t.Error("MatrixFree = false, want true for implicit_matrix_free")
	}
	if !cfg.Pseudotime.Main.MatrixFree {
		t.Error("Main.MatrixFree = false, want true")
	}
}

func TestLexSkipsCommentsAndHandlesStrings(t *testing.T) {
	src := `a 1 ;; a trailing comment
b "quoted string" { }`
	toks, err := lex(src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if len(toks) != 6 {
		t.Fatalf("got %d tokens, want 6: %+v", len(toks), toks)
	}
	if toks[2].text != "b" || toks[3].kind != tokenString || toks[3].text != "quoted string" {
		t.Errorf("unexpected tokens: %+v", toks[2:4])
	}
}

func TestParseRejectsUnbalancedBraces(t *testing.T) {
	toks, err := lex("a { b 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parse(toks); err == nil {
		t.Fatal("parse succeeded on unbalanced input")
	}
}
