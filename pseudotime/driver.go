package pseudotime

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/strandscfd/strands2d/internal/errs"
	"github.com/strandscfd/strands2d/linop"
	"github.com/strandscfd/strands2d/spatial"
)

// blockJacobiSweeps is the fixed sweep count for the implicit stage's
// assembled block-Jacobi linear solve, reused as the Richardson sweep
// count of the matrix-free implicit step.
const blockJacobiSweeps = 5

// maxCFLRetries bounds the negative-pressure retry policy: on a failed
// step the driver halves its effective CFL and retries, surfacing a
// NumericError once this bound is exceeded.
const maxCFLRetries = 5

// Driver runs a Discretization through the starter/main staged
// pseudo-time continuation spec §4.9 describes.
type Driver struct {
	Disc          *spatial.Discretization
	Op            *linop.Operator
	Starter, Main Stage
	Log           logrus.FieldLogger

	Phase  Phase
	Timing TimingData
}

// NewDriver builds a Driver whose Log is a new standard logrus logger;
// callers may replace Log afterwards.
func NewDriver(disc *spatial.Discretization, op *linop.Operator, starter, main Stage) *Driver {
	return &Driver{Disc: disc, Op: op, Starter: starter, Main: main, Log: logrus.New(), Phase: Idle}
}

// Run executes the starter stage (if MaxIters > 0) followed by the
// main stage, returning the final cell-average state.
func (d *Driver) Run(u0 [][]float64) ([][]float64, error) {
	u := u0
	var err error

	if d.Starter.MaxIters > 0 {
		d.Phase = StarterRunning
		u, _, err = d.runStage(d.Starter, u)
		if err != nil {
			d.Phase = Diverged
			return nil, err
		}
	}

	d.Phase = MainRunning
	var converged bool
	u, converged, err = d.runStage(d.Main, u)
	if err != nil {
		d.Phase = Diverged
		return nil, err
	}
	if converged {
		d.Phase = Converged
	} else {
		d.Phase = ConvergedWithWarning
		d.Log.WithFields(logrus.Fields{"stage": d.Main.Name, "max_iters": d.Main.MaxIters}).
			Warn("max_iter reached before convergence tolerance was met")
	}
	return u, nil
}

// runStage advances u for up to stage.MaxIters steps, returning
// whether the loop ended via the convergence-tolerance check (true)
// or ran out of MaxIters first (false).
func (d *Driver) runStage(stage Stage, u [][]float64) ([][]float64, bool, error) {
	var firstNorm float64
	for step := 0; step < stage.MaxIters; step++ {
		cfl := stage.CFL(step)
		var next [][]float64
		var resNorm float64
		var err error

		for retry := 0; retry <= maxCFLRetries; retry++ {
			next, resNorm, err = d.tryStep(stage, u, cfl)
			if err == nil {
				break
			}
			cfl /= 2
			d.Log.WithFields(logrus.Fields{"stage": stage.Name, "step": step, "retry": retry, "cfl": cfl}).
				Warn("non-physical state; halving CFL and retrying")
			if retry == maxCFLRetries {
				return nil, false, errs.Wrap(errs.Numeric, "exceeded CFL retry bound", err)
			}
		}

		u = next
		d.Timing.Steps++
		d.Timing.ResidualHistory = append(d.Timing.ResidualHistory, resNorm)
		d.Log.WithFields(logrus.Fields{"stage": stage.Name, "step": step, "cfl": cfl, "residual": resNorm}).Info("pseudo-time step")

		if step == 0 {
			firstNorm = resNorm
		}
		if stage.ConvergenceTol > 0 && firstNorm > 0 && resNorm/firstNorm < stage.ConvergenceTol {
			return u, true, nil
		}
	}
	return u, false, nil
}

// tryStep advances u by one pseudo-time step at the given CFL,
// returning the new state and the L2 residual norm used for both
// convergence tracking and logging.
func (d *Driver) tryStep(stage Stage, u [][]float64, cfl float64) ([][]float64, float64, error) {
	res, err := d.Disc.Residual(u)
	if err != nil {
		return nil, 0, err
	}
	resNorm := residualNorm(res)
	dt := d.Disc.LocalTimeStep(u, cfl)

	var du [][]float64
	if stage.Implicit && stage.MatrixFree {
		mfDu, mfErr := d.matrixFreeImplicitStep(u, res, dt)
		if mfErr != nil {
			return nil, 0, mfErr
		}
		du = mfDu
	} else if stage.Implicit {
		d.Disc.AssembleJacobian(u, d.Op)
		rhs := flatten(res)
		// negate J so the augmented system solves (I/dt - J)*du = res:
		// SolveBlockJacobi solves (A + diag(1/dt))x = rhs with A = -J.
		negJ := d.Op.Negate()
		x := negJ.SolveBlockJacobi(rhs, dt, blockJacobiSweeps)
		du = unflatten(x, len(u), d.Disc.NVars)
	} else {
		du = make([][]float64, len(u))
		for c := range du {
			du[c] = make([]float64, d.Disc.NVars)
			for k := range du[c] {
				du[c][k] = dt[c] * res[c][k]
			}
		}
	}

	next := make([][]float64, len(u))
	for c := range next {
		next[c] = make([]float64, d.Disc.NVars)
		for k := range next[c] {
			next[c][k] = u[c][k] + du[c][k]
		}
	}
	for c := range next {
		if !d.Disc.Gas.Valid(next[c]) {
			return nil, 0, errs.New(errs.Numeric, "negative density or pressure after step")
		}
	}
	return next, resNorm, nil
}

// matrixFreeImplicitStep solves the augmented backward-Euler system
// (I/dt - J)*du = res by a fixed number of stationary (Richardson)
// sweeps du_{k+1} = dt * (res + J*du_k), each sweep's J*du_k formed
// on the fly by spatial.JacobianVectorProduct instead of an assembled
// operator — the genuinely matrix-free counterpart to
// SolveBlockJacobi's assembled-block smoother.
func (d *Driver) matrixFreeImplicitStep(u, res [][]float64, dt []float64) ([][]float64, error) {
	nCells := len(u)
	du := make([][]float64, nCells)
	for c := range du {
		du[c] = make([]float64, d.Disc.NVars)
	}
	for sweep := 0; sweep < blockJacobiSweeps; sweep++ {
		jv, err := d.Disc.JacobianVectorProduct(u, du, res)
		if err != nil {
			return nil, err
		}
		next := make([][]float64, nCells)
		for c := range next {
			next[c] = make([]float64, d.Disc.NVars)
			for k := range next[c] {
				next[c][k] = dt[c] * (res[c][k] + jv[c][k])
			}
		}
		du = next
	}
	return du, nil
}

func residualNorm(res [][]float64) float64 {
	var acc float64
	for _, r := range res {
		acc += floats.Dot(r, r)
	}
	return math.Sqrt(acc)
}

func flatten(u [][]float64) []float64 {
	if len(u) == 0 {
		return nil
	}
	nvars := len(u[0])
	out := make([]float64, len(u)*nvars)
	for c, row := range u {
		copy(out[c*nvars:(c+1)*nvars], row)
	}
	return out
}

func unflatten(x []float64, nCells, nvars int) [][]float64 {
	out := make([][]float64, nCells)
	for c := range out {
		out[c] = append([]float64(nil), x[c*nvars:(c+1)*nvars]...)
	}
	return out
}
