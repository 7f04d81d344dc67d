package output

import (
	"fmt"
	"io"
	"math"

	"github.com/strandscfd/strands2d/mesh"
	"github.com/strandscfd/strands2d/physics"
)

// WriteSurfaceCoefficients integrates pressure over the boundary faces
// carrying the given marker and writes the resulting lift/drag
// coefficients (wind-axis, freestream at angle alpha radians) as a
// one-line plain-text table: marker CL CD. The caller writes one file
// per marker, named "<prefix>-<marker>.dat" per §6.3.
//
// The pressure force on the body is the integral of p*n over the
// wall, n being the face normal this package receives from mesh.View
// (pointing out of the fluid domain, i.e. into the solid) — so it
// already points the way a pressure load acts on the wall.
func WriteSurfaceCoefficients(w io.Writer, v mesh.View, gas physics.Gas, u [][]float64, alpha float64, marker int) error {
	uInf := gas.Freestream(alpha)
	pInf := gas.Pressure(uInf)
	q := 0.5 * uInf[0] * (uInf[1]*uInf[1] + uInf[2]*uInf[2]) // 0.5*rho_inf*|v_inf|^2

	windX, windY := math.Cos(alpha), math.Sin(alpha)

	var fx, fy float64
	for f := 0; f < v.NumBoundaryFaces(); f++ {
		if v.FaceMarker(f) != marker {
			continue
		}
		left, _ := v.FaceCells(f)
		p := gas.Pressure(u[left]) - pInf
		n := v.FaceNormal(f)
		length := v.FaceLength(f)
		fx += p * n[0] * length
		fy += p * n[1] * length
	}
	cd := (fx*windX + fy*windY) / q
	cl := (-fx*windY + fy*windX) / q

	fmt.Fprintln(w, "# marker  CL  CD")
	fmt.Fprintf(w, "%d %g %g\n", marker, cl, cd)
	return nil
}
