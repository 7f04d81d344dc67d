package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/strandscfd/strands2d/bc"
	"github.com/strandscfd/strands2d/flux"
	"github.com/strandscfd/strands2d/internal/control"
	"github.com/strandscfd/strands2d/internal/errs"
	"github.com/strandscfd/strands2d/internal/meshio"
	"github.com/strandscfd/strands2d/internal/output"
	"github.com/strandscfd/strands2d/limiter"
	"github.com/strandscfd/strands2d/linop"
	"github.com/strandscfd/strands2d/pseudotime"
	"github.com/strandscfd/strands2d/recon"
	"github.com/strandscfd/strands2d/spatial"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a steady-state case from a control file",
	Long:  "run reads a control file, preprocesses its mesh, and advances the pseudo-time continuation to convergence.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCase(configFile, meshFileOverride)
	},
}

func runCase(configPath, meshOverride string) error {
	cfg, err := control.Load(configPath)
	if err != nil {
		return err
	}

	meshPath := cfg.IO.MeshFile
	if cfg.IO.MeshFileFromCmd {
		if meshOverride == "" {
			return errs.New(errs.Config, "io.mesh_file is \"from-cmd\" but --mesh was not given")
		}
		meshPath = meshOverride
	}

	f, err := os.Open(meshPath)
	if err != nil {
		return errs.Wrap(errs.IO, fmt.Sprintf("opening mesh file %q", meshPath), err)
	}
	defer f.Close()

	gmsh, err := meshio.ReadGmsh(f)
	if err != nil {
		return err
	}

	periodic := make([]meshio.PeriodicPair, len(cfg.Physics.PeriodicPairs))
	for i, pp := range cfg.Physics.PeriodicPairs {
		periodic[i] = meshio.PeriodicPair{
			MarkerA: pp.MarkerA, MarkerB: pp.MarkerB,
			Translation: pp.Translation, Tolerance: pp.Tolerance,
		}
	}

	m, _, err := meshio.Preprocess(gmsh, periodic)
	if err != nil {
		return err
	}

	gas := cfg.Physics.Gas

	markers := make(map[int]bc.Rule, len(cfg.Physics.Markers))
	for id, mc := range cfg.Physics.Markers {
		rule, err := bc.New(mc, gas)
		if err != nil {
			return errs.Wrap(errs.Config, fmt.Sprintf("boundary marker %d", id), err)
		}
		markers[id] = rule
	}

	numFlux, err := flux.New(cfg.Numerics.InviscidFlux)
	if err != nil {
		return err
	}
	jacFlux, err := flux.NewJacobianFlux(cfg.Numerics.JacobianFlux, numFlux)
	if err != nil {
		return err
	}

	reconName := mapGradientMethod(cfg.Numerics.GradientMethod)
	rec, err := recon.New(reconName, recon.Primitive)
	if err != nil {
		return err
	}

	lim, err := newLimiter(cfg.Numerics.Limiter, cfg.Numerics.LimiterParameter)
	if err != nil {
		return err
	}

	const nvars = 4
	disc := spatial.New(m, gas, nvars, numFlux, jacFlux, rec, lim, markers)

	op := linop.New(m, nvars)
	driver := pseudotime.NewDriver(disc, op, cfg.Pseudotime.Starter, cfg.Pseudotime.Main)

	var tlog *output.TlogWriter
	if cfg.IO.ConvergenceHistoryRequired {
		logFile, err := os.Create(cfg.IO.LogFilePrefix + ".tlog")
		if err != nil {
			return errs.Wrap(errs.IO, "creating convergence history file", err)
		}
		defer logFile.Close()
		tlog = output.NewTlogWriter(logFile)
		driver.Log.(*logrus.Logger).AddHook(newTlogHook(tlog))
	}

	freestream := gas.Freestream(cfg.Physics.Alpha)
	u0 := make([][]float64, m.NumCells())
	for c := range u0 {
		u0[c] = append([]float64(nil), freestream...)
	}

	u, err := driver.Run(u0)
	if err != nil {
		return err
	}
	if driver.Phase == pseudotime.ConvergedWithWarning {
		fmt.Fprintln(os.Stderr, "strands2d: max_iter reached before the convergence tolerance was met; writing current state")
	}

	if cfg.IO.SolutionOutputFile != "" {
		outFile, err := os.Create(cfg.IO.SolutionOutputFile)
		if err != nil {
			return errs.Wrap(errs.IO, "creating solution output file", err)
		}
		defer outFile.Close()
		if err := output.WriteVTU(outFile, m, gas, u); err != nil {
			return err
		}
	}

	for _, marker := range cfg.Physics.OutputWallMarkers {
		if cfg.Physics.SurfaceOutputFilePrefix == "" {
			break
		}
		path := fmt.Sprintf("%s-%d.dat", cfg.Physics.SurfaceOutputFilePrefix, marker)
		surfFile, err := os.Create(path)
		if err != nil {
			return errs.Wrap(errs.IO, fmt.Sprintf("creating surface coefficient file %q", path), err)
		}
		err = output.WriteSurfaceCoefficients(surfFile, m, gas, u, cfg.Physics.Alpha, marker)
		surfFile.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// mapGradientMethod translates the control file's camelCase gradient-
// method spellings ("leastSquares", "greenGauss", "none") to recon's
// factory names.
func mapGradientMethod(s string) string {
	switch strings.ToLower(s) {
	case "leastsquares":
		return "lsq"
	case "greengauss":
		return "green-gauss"
	default:
		return strings.ToLower(s)
	}
}

// newLimiter translates the control file's limiter spelling to
// limiter's factory name and, for Venkatakrishnan, constructs it
// directly so limiter_parameter overrides the factory's fixed default.
func newLimiter(name string, param float64) (limiter.Limiter, error) {
	mapped := mapLimiterName(name)
	if mapped == "venkatakrishnan" && param > 0 {
		return limiter.Venkatakrishnan{K: param}, nil
	}
	return limiter.New(mapped)
}

func mapLimiterName(s string) string {
	switch strings.ToLower(s) {
	case "vanalbada":
		return "van-albada"
	case "barthjespersen":
		return "barth-jespersen"
	default:
		return strings.ToLower(s)
	}
}
