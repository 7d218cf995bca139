// Package cli assembles the readmanifest root command.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/readmanifest/internal/commands/locateproject"
	"github.com/indaco/readmanifest/internal/commands/readmanifest"
	"github.com/indaco/readmanifest/internal/config"
	"github.com/indaco/readmanifest/internal/logging"
	"github.com/indaco/readmanifest/internal/printer"
	"github.com/indaco/readmanifest/internal/report"
	urfavecli "github.com/urfave/cli/v3"
)

// Version is the release version, overridden at build time with -ldflags.
var Version = "0.1.0"

func init() {
	// -v is taken by --verbose.
	urfavecli.VersionFlag = &urfavecli.BoolFlag{
		Name:        "version",
		Aliases:     []string{"V"},
		Usage:       "print the version",
		HideDefault: true,
		Local:       true,
	}
}

// New builds and returns the root CLI command. The configuration is loaded
// in the Before hook, after flags are parsed, and shared with every
// subcommand through cfg.
func New() *urfavecli.Command {
	cfg := config.Default()

	return &urfavecli.Command{
		Name:    "readmanifest",
		Version: fmt.Sprintf("v%s", Version),
		Usage:   "Locate and read Cargo package manifests",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:  "manifest-path",
				Usage: "Path to Cargo.toml or to the directory containing it",
			},
			&urfavecli.StringFlag{
				Name:        "color",
				Usage:       "Coloring: auto, always, never",
				DefaultText: string(config.ColorAuto),
			},
			&urfavecli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Print diagnostic logs to stderr",
			},
			&urfavecli.StringFlag{
				Name:  "config",
				Usage: fmt.Sprintf("Path to a configuration file (default: %s in the working directory)", config.ConfigFileName),
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			return ctx, setup(cmd, cfg)
		},
		// Errors are reported by main, which owns the exit status.
		ExitErrHandler: func(context.Context, *urfavecli.Command, error) {},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return readmanifest.Execute(ctx, cmd, cfg, readmanifest.Options{Format: report.FormatJSON})
		},
		Commands: []*urfavecli.Command{
			readmanifest.Run(cfg),
			locateproject.Run(),
		},
	}
}

// setup loads the configuration, applies flag overrides, then configures
// styling and logging from the result.
func setup(cmd *urfavecli.Command, cfg *config.Config) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	loaded, err := config.LoadFn(cwd, cmd.String("config"))
	if err != nil {
		return err
	}
	*cfg = *loaded

	if cmd.IsSet("color") {
		choice, err := config.ParseColorChoice(cmd.String("color"))
		if err != nil {
			return urfavecli.Exit(err.Error(), 1)
		}
		cfg.Color = choice
	}
	if cmd.Bool("verbose") {
		cfg.Verbose = true
	}

	printer.ApplyColorChoice(cfg.Color)
	logging.Configure(logging.Options{
		Level:   cfg.Log.Level,
		Verbose: cfg.Verbose,
		NoColor: !printer.StderrColorEnabled(),
		Out:     cmd.Root().ErrWriter,
	})
	return nil
}
