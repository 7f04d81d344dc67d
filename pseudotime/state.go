// Package pseudotime implements spec §4.9's explicit/implicit
// pseudo-time continuation driver: CFL ramping, starter/main staging,
// and convergence tracking, built the way run.go's RunInfo/Log drivers
// report step-by-step progress through structured logging rather than
// bare stdout prints.
package pseudotime

// Phase is the driver's coarse state-machine stage.
type Phase int

const (
	Idle Phase = iota
	StarterRunning
	MainRunning
	Converged
	// ConvergedWithWarning means the main stage ran out max_iter
	// timesteps without its residual ratio dropping below
	// ConvergenceTol (§4.9, §7: "max_iter reached -> return current u
	// with 'not converged' status"). u is still the best available
	// state; the run did not diverge.
	ConvergedWithWarning
	Diverged
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case StarterRunning:
		return "starter-running"
	case MainRunning:
		return "main-running"
	case Converged:
		return "converged"
	case ConvergedWithWarning:
		return "converged-with-warning"
	case Diverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Stage configures one leg (starter or main) of the continuation.
type Stage struct {
	Name string
	// MaxIters bounds how many steps this stage runs before handing
	// off (starter) or declaring non-convergence (main).
	MaxIters int
	// CFLStart/CFLMax/CFLRampIters ramp the CFL number linearly from
	// CFLStart to CFLMax over CFLRampIters steps, then hold.
	CFLStart, CFLMax float64
	CFLRampIters     int
	// Implicit selects backward-Euler over forward-Euler for this
	// stage.
	Implicit bool
	// MatrixFree selects a matrix-free stationary (Richardson) sweep
	// driven entirely by JacobianVectorProduct over the block-Jacobi
	// solve that assembles and inverts the analytic Jacobian's diagonal
	// blocks. Only meaningful when Implicit is set.
	MatrixFree bool
	// ConvergenceTol is the relative residual-norm drop (L2, against
	// the stage's first-step norm) that ends the stage successfully.
	ConvergenceTol float64
}

// CFL returns the ramped CFL number for step (0-indexed) within the
// stage.
func (s Stage) CFL(step int) float64 {
	if s.CFLRampIters <= 0 || step >= s.CFLRampIters {
		return s.CFLMax
	}
	frac := float64(step) / float64(s.CFLRampIters)
	return s.CFLStart + frac*(s.CFLMax-s.CFLStart)
}

// TimingData accumulates simple step-rate statistics for reporting,
// the pseudo-time equivalent of run.go's RunInfo wall-clock fields.
type TimingData struct {
	Steps           int
	ResidualHistory []float64
}
