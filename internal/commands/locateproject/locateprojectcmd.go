// Package locateproject implements the "locate-project" command.
package locateproject

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/readmanifest/internal/core"
	"github.com/indaco/readmanifest/internal/locator"
	"github.com/indaco/readmanifest/internal/operations"
	"github.com/indaco/readmanifest/internal/report"
	"github.com/urfave/cli/v3"
)

// Run returns the "locate-project" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:  "locate-project",
		Usage: "Print the path of the manifest that would be read",
		UsageText: `readmanifest locate-project [options]

Prints {"root": "<path>"} for the Cargo.toml found in the current directory
or the nearest parent, or the one named by --manifest-path.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print the bare path instead of JSON",
			},
		},
		Action: runLocateProjectCmd,
	}
}

func runLocateProjectCmd(ctx context.Context, cmd *cli.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	path, err := operations.LocateProject(ctx, core.NewOSFileSystem(), manifestHint(cmd), cwd)
	if err != nil {
		return err
	}
	return report.WriteLocation(cmd.Root().Writer, path, cmd.Bool("plain"))
}

// manifestHint returns the --manifest-path value, keeping an explicitly
// empty flag distinct from an absent one.
func manifestHint(cmd *cli.Command) string {
	if !cmd.IsSet("manifest-path") {
		return ""
	}
	return locator.ExplicitHint(cmd.String("manifest-path"))
}
