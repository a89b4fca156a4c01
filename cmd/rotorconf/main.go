// rotorconf validates rotator controller configuration files against
// feature dependency rules and per-board pin capability tables, and can
// apply unambiguous automatic fixes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/k3ng-tools/rotorconf-go/internal/cmd"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// Build information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, gitCommit, buildTime)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrValidationFailed) {
			os.Exit(exitValidation)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCommandError)
	}
	os.Exit(exitSuccess)
}
