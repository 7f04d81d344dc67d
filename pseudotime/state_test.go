package pseudotime

import (
	"math"
	"testing"
)

func TestStageCFLRampsThenHolds(t *testing.T) {
	s := Stage{CFLStart: 1, CFLMax: 5, CFLRampIters: 4}
	if s.CFL(0) != 1 {
		t.Fatalf("CFL(0) = %g, want 1", s.CFL(0))
	}
	if math.Abs(s.CFL(2)-3) > 1e-12 {
		t.Fatalf("CFL(2) = %g, want 3", s.CFL(2))
	}
	if s.CFL(10) != 5 {
		t.Fatalf("CFL(10) = %g, want 5 (held at max)", s.CFL(10))
	}
}

func TestPhaseString(t *testing.T) {
	if Converged.String() != "converged" {
		t.Fatalf("Converged.String() = %q", Converged.String())
	}
	if ConvergedWithWarning.String() != "converged-with-warning" {
		t.Fatalf("ConvergedWithWarning.String() = %q", ConvergedWithWarning.String())
	}
}
