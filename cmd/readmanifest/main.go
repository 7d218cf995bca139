package main

import (
	"context"
	"errors"
	"os"

	"github.com/indaco/readmanifest/internal/cli"
	"github.com/indaco/readmanifest/internal/printer"
	urfavecli "github.com/urfave/cli/v3"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		reportError(err)
		os.Exit(exitCode(err))
	}
}

// runCLI builds the root command and runs it with args.
func runCLI(args []string) error {
	return cli.New().Run(context.Background(), args)
}

// suggester is implemented by errors that carry a remediation hint.
type suggester interface {
	Suggestion() string
}

func reportError(err error) {
	printer.PrintError(err.Error())

	var s suggester
	if errors.As(err, &s) {
		printer.FprintHint(os.Stderr, s.Suggestion())
	}
}

// exitCode returns the status carried by err, or 1.
func exitCode(err error) int {
	var coder urfavecli.ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() != 0 {
		return coder.ExitCode()
	}
	return 1
}
