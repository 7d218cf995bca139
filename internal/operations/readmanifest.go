// Package operations provides the end-to-end flows behind the CLI commands.
package operations

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/readmanifest/internal/config"
	"github.com/indaco/readmanifest/internal/core"
	"github.com/indaco/readmanifest/internal/locator"
	"github.com/indaco/readmanifest/internal/manifest"
	"github.com/indaco/readmanifest/internal/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of a read-manifest run.
type Result struct {
	// ManifestPath is the root manifest that was resolved.
	ManifestPath string

	// Source identifies the source the package was read from.
	Source source.ID

	// Package is the root package descriptor.
	Package *manifest.Package

	// Packages holds every package found under the root. It is only
	// populated when ReadManifestOperation.All is set.
	Packages []*manifest.Package
}

// ReadManifestOperation resolves a manifest and reads its root package.
type ReadManifestOperation struct {
	fs     core.FileSystem
	cfg    *config.Config
	logger zerolog.Logger

	// All also lists the nested packages below the root.
	All bool
}

// NewReadManifestOperation creates a new read-manifest operation. A nil cfg
// selects config.Default().
func NewReadManifestOperation(fs core.FileSystem, cfg *config.Config) *ReadManifestOperation {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ReadManifestOperation{fs: fs, cfg: cfg, logger: log.Logger}
}

// WithLogger replaces the logger used for step diagnostics.
func (op *ReadManifestOperation) WithLogger(logger zerolog.Logger) *ReadManifestOperation {
	op.logger = logger
	return op
}

// Execute locates the root manifest from hint and cwd, opens a path source
// at its directory, updates it and returns the root package.
func (op *ReadManifestOperation) Execute(ctx context.Context, hint, cwd string) (*Result, error) {
	manifestPath, err := locator.FindRootManifest(ctx, op.fs, hint, cwd)
	if err != nil {
		return nil, err
	}
	op.logger.Debug().Str("manifest", manifestPath).Msg("located root manifest")

	root := filepath.Dir(manifestPath)
	src, err := source.ForPath(ctx, op.fs, root, op.cfg, source.WithLogger(op.logger))
	if err != nil {
		return nil, err
	}
	op.logger.Debug().Str("source", src.ID().String()).Msg("opened source")

	if err := src.Update(ctx); err != nil {
		return nil, err
	}

	pkg, err := src.RootPackage()
	if err != nil {
		return nil, err
	}
	op.logger.Debug().Str("package", pkg.ID).Msg("read root package")

	res := &Result{
		ManifestPath: manifestPath,
		Source:       src.ID(),
		Package:      pkg,
	}
	if op.All {
		pkgs, err := src.Packages()
		if err != nil {
			return nil, fmt.Errorf("list packages: %w", err)
		}
		res.Packages = pkgs
	}
	return res, nil
}

// ReadManifest is a convenience wrapper around ReadManifestOperation.
func ReadManifest(ctx context.Context, fs core.FileSystem, cfg *config.Config, hint, cwd string) (*Result, error) {
	return NewReadManifestOperation(fs, cfg).Execute(ctx, hint, cwd)
}

// LocateProject returns the absolute path of the root manifest that
// read-manifest would use, without reading it.
func LocateProject(ctx context.Context, fs core.FileSystem, hint, cwd string) (string, error) {
	path, err := locator.FindRootManifest(ctx, fs, hint, cwd)
	if err != nil {
		return "", err
	}
	log.Debug().Str("manifest", path).Msg("located project")
	return path, nil
}
