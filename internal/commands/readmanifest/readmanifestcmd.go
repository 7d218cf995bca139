// Package readmanifest implements the "read-manifest" command.
package readmanifest

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/readmanifest/internal/config"
	"github.com/indaco/readmanifest/internal/core"
	"github.com/indaco/readmanifest/internal/locator"
	"github.com/indaco/readmanifest/internal/operations"
	"github.com/indaco/readmanifest/internal/report"
	"github.com/urfave/cli/v3"
)

// Options selects how the descriptor is rendered.
type Options struct {
	Format report.Format
	All    bool
}

// Run returns the "read-manifest" command. cfg is shared with the root
// command and is populated before any action runs.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "read-manifest",
		Usage: "Print the package descriptor of the current manifest",
		UsageText: `readmanifest read-manifest [options]

Locates Cargo.toml in the current directory or the nearest parent (or at
--manifest-path), reads the package declared there and prints it.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, yaml, text",
				Value:   string(report.FormatJSON),
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Also print packages found in subdirectories",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runReadManifestCmd(ctx, cmd, cfg)
		},
	}
}

func runReadManifestCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	format, err := report.ParseFormat(cmd.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return Execute(ctx, cmd, cfg, Options{Format: format, All: cmd.Bool("all")})
}

// Execute reads the root package and writes it to the root command's
// writer. The root command's default action calls it directly.
func Execute(ctx context.Context, cmd *cli.Command, cfg *config.Config, opts Options) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	op := operations.NewReadManifestOperation(core.NewOSFileSystem(), cfg)
	op.All = opts.All

	res, err := op.Execute(ctx, manifestHint(cmd), cwd)
	if err != nil {
		return err
	}

	w := report.NewWriter(opts.Format)
	out := cmd.Root().Writer
	if opts.All {
		return w.WritePackages(out, res.Packages)
	}
	return w.WritePackage(out, res.Package)
}

// manifestHint returns the --manifest-path value, keeping an explicitly
// empty flag distinct from an absent one.
func manifestHint(cmd *cli.Command) string {
	if !cmd.IsSet("manifest-path") {
		return ""
	}
	return locator.ExplicitHint(cmd.String("manifest-path"))
}
