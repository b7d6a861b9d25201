// Package main is the entry point for the geostack application.
package main

import (
	"io"
	"os"
	"runtime/debug"

	"github.com/geostack-dev/geostack/internal/buildmeta"
	"github.com/geostack-dev/geostack/pkg/cli/cmd"
	"github.com/geostack-dev/geostack/pkg/utils/notify"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and converts errors and panics into an exit code.
//
//nolint:nonamedreturns // Named return lets the recover path set the exit code.
func run(args []string, out, errOut io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.Errorf(errOut, "panic recovered: %v\n%s", r, debug.Stack())

			exitCode = 1
		}
	}()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := cmd.Execute(rootCmd)
	if err != nil {
		notify.Errorf(errOut, "%v", err)

		return 1
	}

	return 0
}
