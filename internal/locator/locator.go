// Package locator resolves the manifest a command operates on, either from an
// explicit path hint or by searching upward from the working directory.
package locator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/readmanifest/internal/core"
)

// NotFoundError is returned when no manifest exists in the starting
// directory or any of its ancestors.
type NotFoundError struct {
	// Start is the directory the upward search began in.
	Start string

	// Filename is the manifest filename that was searched for.
	Filename string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find `%s` in `%s` or any parent directory", e.Filename, e.Start)
}

// ExitCode returns the process exit status for this error.
func (e *NotFoundError) ExitCode() int { return 1 }

// Suggestion returns a hint on how to point the command at a manifest.
func (e *NotFoundError) Suggestion() string {
	return fmt.Sprintf("run the command from a directory containing `%s`, or pass --manifest-path", e.Filename)
}

// FindRootManifest returns the absolute path of the manifest to operate on.
//
// A non-empty hint is normalized without touching the filesystem: a path that
// already names the manifest file is used as-is, anything else is treated as
// a directory and gets the manifest filename appended. Relative hints are
// resolved against cwd. Whether the file exists is left to whoever opens it.
//
// An empty hint searches cwd and then each parent directory.
func FindRootManifest(ctx context.Context, fsys core.FileSystem, hint, cwd string) (string, error) {
	if hint != "" {
		return NormalizeHint(hint, cwd), nil
	}
	return FindProjectManifest(ctx, fsys, cwd, core.ManifestFileName)
}

// ExplicitHint returns the hint for a manifest path the user passed
// explicitly. An empty path names the manifest in the working directory
// rather than falling back to the upward search.
func ExplicitHint(path string) string {
	if path == "" {
		return "."
	}
	return path
}

// NormalizeHint turns a manifest path or a directory hint into an absolute,
// cleaned manifest path.
func NormalizeHint(hint, cwd string) string {
	path := hint
	if filepath.Base(filepath.Clean(path)) != core.ManifestFileName {
		path = filepath.Join(path, core.ManifestFileName)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path)
}

// FindProjectManifest walks from dir up to the filesystem root and returns
// the first path named filename that exists and is not a directory.
func FindProjectManifest(ctx context.Context, fsys core.FileSystem, dir, filename string) (string, error) {
	start := filepath.Clean(dir)
	for current := start; ; {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := filepath.Join(current, filename)
		if info, err := fsys.Stat(ctx, candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", &NotFoundError{Start: start, Filename: filename}
}
