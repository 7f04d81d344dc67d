package verify

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/strandscfd/strands2d/mesh"
	"github.com/strandscfd/strands2d/physics"
)

// EntropyError returns the area-weighted L2 norm of the relative
// entropy error against the vortex's exact solution, over every cell
// of v: sqrt(sum_i area_i*((s_i - s_exact_i)/s_exact_i)^2 / sum_i area_i).
func EntropyError(v mesh.View, gas physics.Gas, u [][]float64, vortex VortexParams) float64 {
	var num, denom float64
	for c := 0; c < v.NumCells(); c++ {
		area := v.CellArea(c)
		sExact := entropy(vortex.ExactState(v.CellCentroid(c)), vortex.Gamma)
		s := gas.Entropy(u[c])
		rel := (s - sExact) / sExact
		num += area * rel * rel
		denom += area
	}
	return math.Sqrt(num / denom)
}

func entropy(u []float64, gamma float64) float64 {
	rho := u[0]
	vx, vy := u[1]/rho, u[2]/rho
	rhoE := u[3]
	p := (gamma - 1) * (rhoE - 0.5*rho*(vx*vx+vy*vy))
	return p / math.Pow(rho, gamma)
}

// ConvergenceSlope fits log(errs) against log(meshSizes) by ordinary
// least squares and returns the fitted slope, i.e. the observed order
// of convergence in mesh size h (about +2 for a second-order scheme).
func ConvergenceSlope(meshSizes, errs []float64) float64 {
	logH := make([]float64, len(meshSizes))
	logErr := make([]float64, len(errs))
	for i := range meshSizes {
		logH[i] = math.Log(meshSizes[i])
		logErr[i] = math.Log(errs[i])
	}
	_, slope := stat.LinearRegression(logH, logErr, nil, false)
	return slope
}
