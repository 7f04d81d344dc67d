package limiter

import "testing"

func TestNoneAlwaysUnity(t *testing.T) {
	n := None{}
	if got := n.Coefficient(1, 0, 2, []Face{{Extrapolated: 5, Dist: 1}}); got != 1 {
		t.Fatalf("None.Coefficient = %g, want 1", got)
	}
}

func TestBarthJespersenClampsOvershoot(t *testing.T) {
	bj := BarthJespersen{}
	// uC=1, stencil bound [0,2], extrapolated face value overshoots to 3:
	// allowed range is (2-1)=1, overshoot is (3-1)=2, so phi=0.5.
	got := bj.Coefficient(1, 0, 2, []Face{{Extrapolated: 3}})
	if got != 0.5 {
		t.Fatalf("phi = %g, want 0.5", got)
	}
}

func TestBarthJespersenWithinBoundsIsUnlimited(t *testing.T) {
	bj := BarthJespersen{}
	got := bj.Coefficient(1, 0, 2, []Face{{Extrapolated: 1.5}})
	if got != 1 {
		t.Fatalf("phi = %g, want 1 for in-bounds extrapolation", got)
	}
}

func TestVanAlbadaZeroAtSignChange(t *testing.T) {
	va := VanAlbada{}
	got := va.Coefficient(1, 1, 2, []Face{{Extrapolated: 0.5}})
	if got != 0 {
		t.Fatalf("phi = %g, want 0 when extrapolation crosses the cell average toward a lower bound violation", got)
	}
}

func TestVenkatakrishnanApproachesOneForSmallOvershoot(t *testing.T) {
	vk := Venkatakrishnan{K: 0.3}
	got := vk.Coefficient(1, 0.99, 1.01, []Face{{Extrapolated: 1.001, Dist: 0.1}})
	if got < 0.5 || got > 1.0001 {
		t.Fatalf("phi = %g, want close to 1 for a small overshoot", got)
	}
}

func TestWENOFavorsConstantUnderLargeOscillation(t *testing.T) {
	w := WENO{}
	smooth := w.Coefficient(1, 0, 2, []Face{{Extrapolated: 1.001}})
	rough := w.Coefficient(1, 0, 2, []Face{{Extrapolated: 100}})
	if !(smooth > rough) {
		t.Fatalf("expected smooth-stencil weight %g > rough-stencil weight %g", smooth, rough)
	}
}
