package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/readmanifest/internal/config"
	"github.com/indaco/readmanifest/internal/core"
	"github.com/indaco/readmanifest/internal/manifest"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// skipDirs are never descended into while scanning for nested packages.
var skipDirs = []string{"target", "node_modules"}

// loaded is one manifest found during a scan.
type loaded struct {
	path string
	pkg  *manifest.Package
	err  error
}

// PathSource is a Source backed by a local directory tree.
type PathSource struct {
	fs     core.FileSystem
	root   string
	cfg    *config.Config
	logger zerolog.Logger

	updated  bool
	rootPkg  *loaded
	packages []*loaded
}

// Option configures a PathSource.
type Option func(*PathSource)

// WithLogger sets the logger used for scan diagnostics. The default is the
// global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *PathSource) { s.logger = logger }
}

var _ Source = (*PathSource)(nil)

// ForPath binds a new PathSource to root. It fails with a ConstructionError
// if root cannot be accessed, is not a directory, or cannot be listed. A nil cfg selects
// config.Default().
func ForPath(ctx context.Context, fsys core.FileSystem, root string, cfg *config.Config, opts ...Option) (*PathSource, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	root = filepath.Clean(root)

	info, err := fsys.Stat(ctx, root)
	if err != nil {
		return nil, &ConstructionError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ConstructionError{Path: root, Err: errors.New("not a directory")}
	}
	// Stat succeeds on a directory without read permission.
	if _, err := fsys.ReadDir(ctx, root); err != nil {
		return nil, &ConstructionError{Path: root, Err: err}
	}

	s := &PathSource{
		fs:     fsys,
		root:   root,
		cfg:    cfg,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the directory the source is bound to.
func (s *PathSource) Root() string { return s.root }

// ID implements Source.
func (s *PathSource) ID() ID { return PathID(s.root) }

// Update implements Source. It reads the root manifest, then walks the tree
// below the root for nested manifests. Any I/O failure aborts the scan and
// leaves the previous inventory in place.
func (s *PathSource) Update(ctx context.Context) error {
	s.logger.Debug().Str("root", s.root).Msg("scanning path source")

	rootManifest := filepath.Join(s.root, core.ManifestFileName)
	rootPkg, err := s.load(ctx, rootManifest)
	if err != nil {
		return err
	}

	excludes := slices.Clone(s.cfg.Discovery.Exclude)
	if rootPkg != nil && rootPkg.pkg != nil {
		excludes = append(excludes, rootPkg.pkg.Exclude...)
	}

	var nested []*loaded
	seen := make(map[string]string)
	if rootPkg != nil && rootPkg.pkg != nil {
		seen[rootPkg.pkg.Name] = rootPkg.path
	}

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := s.fs.ReadDir(ctx, dir)
		if err != nil {
			return &SourceError{Op: "read directory", Path: dir, Err: err}
		}

		for _, entry := range entries {
			name := entry.Name()
			path := filepath.Join(dir, name)

			if !entry.IsDir() {
				if name != core.ManifestFileName || dir == s.root {
					continue
				}
				found, err := s.load(ctx, path)
				if err != nil {
					return err
				}
				if found == nil {
					continue
				}
				if found.err != nil {
					s.logger.Warn().Err(found.err).Str("manifest", path).Msg("skipping nested package with invalid manifest")
				} else if prev, dup := seen[found.pkg.Name]; dup {
					s.logger.Warn().Str("package", found.pkg.Name).Str("manifest", path).Str("first", prev).
						Msg("skipping duplicate package")
					continue
				} else {
					seen[found.pkg.Name] = path
				}
				nested = append(nested, found)
				continue
			}

			if depth+1 > s.cfg.Discovery.MaxDepth || s.shouldSkip(name, path, excludes) {
				continue
			}
			if err := walk(path, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(s.root, 0); err != nil {
		return err
	}

	s.rootPkg = rootPkg
	s.packages = nested
	s.updated = true

	s.logger.Debug().Str("root", s.root).Bool("root_manifest", rootPkg != nil).
		Int("nested", len(nested)).Msg("path source updated")
	return nil
}

// load reads and parses the manifest at path. It returns nil when no
// manifest file exists there, and a SourceError for I/O failures. Parse
// failures are recorded on the result, not returned.
func (s *PathSource) load(ctx context.Context, path string) (*loaded, error) {
	info, err := s.fs.Stat(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &SourceError{Op: "stat", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, nil
	}

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, &SourceError{Op: "read", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	layout, err := manifest.DetectLayout(ctx, s.fs, dir)
	if err != nil {
		return nil, &SourceError{Op: "scan targets in", Path: dir, Err: err}
	}

	pkg, err := manifest.Parse(data, manifest.ParseOptions{
		ManifestPath: path,
		SourceID:     PathID(dir).String(),
		Layout:       layout,
	})
	if err != nil {
		return &loaded{path: path, err: err}, nil
	}
	s.logger.Debug().Str("manifest", path).Str("package", pkg.ID).Msg("loaded manifest")
	return &loaded{path: path, pkg: pkg}, nil
}

// shouldSkip reports whether a directory is left out of the scan.
func (s *PathSource) shouldSkip(name, path string, excludes []string) bool {
	if strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name) {
		return true
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range excludes {
		pattern = strings.TrimSuffix(strings.TrimPrefix(pattern, "/"), "/")
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Packages implements Source. The root package comes first, nested packages
// follow in scan order.
func (s *PathSource) Packages() ([]*manifest.Package, error) {
	if !s.updated {
		return nil, fmt.Errorf("packages: %w", ErrNotUpdated)
	}

	out := make([]*manifest.Package, 0, len(s.packages)+1)
	if s.rootPkg != nil && s.rootPkg.pkg != nil {
		out = append(out, s.rootPkg.pkg.Clone())
	}
	for _, l := range s.packages {
		if l.pkg != nil {
			out = append(out, l.pkg.Clone())
		}
	}
	return out, nil
}

// RootPackage implements Source.
func (s *PathSource) RootPackage() (*manifest.Package, error) {
	if !s.updated {
		return nil, fmt.Errorf("root package: %w", ErrNotUpdated)
	}

	path := filepath.Join(s.root, core.ManifestFileName)
	switch {
	case s.rootPkg == nil:
		return nil, &PackageError{Kind: PackageNotFound, Path: path}
	case s.rootPkg.err != nil:
		return nil, &PackageError{Kind: PackageInvalid, Path: path, Err: s.rootPkg.err}
	default:
		return s.rootPkg.pkg.Clone(), nil
	}
}
