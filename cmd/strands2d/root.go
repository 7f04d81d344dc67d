// Package main is the command-line interface for the strands2d
// unstructured finite-volume solver.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the solver's release version, set by the release build
// process the way inmap's root command reports its own Version const.
const Version = "0.1.0"

var configFile string
var meshFileOverride string

// RootCmd is the solver's top-level command.
var RootCmd = &cobra.Command{
	Use:   "strands2d",
	Short: "A 2D unstructured finite-volume compressible-flow solver.",
	Long: `strands2d solves the 2D compressible Euler/Navier-Stokes equations
on unstructured triangle/quad meshes by a cell-centered finite-volume
method with explicit or implicit pseudo-time continuation.
Use the subcommands below to run a case or check the version.`,
}

func init() {
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(versionCmd)

	RootCmd.PersistentFlags().StringVar(&configFile, "config", "./strands2d.cfg", "control file location")
	runCmd.Flags().StringVar(&meshFileOverride, "mesh", "", "mesh file path, overriding io.mesh_file when it is set to from-cmd")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this build of strands2d.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("strands2d v%s\n", Version)
	},
}
