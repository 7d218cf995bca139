package manifest

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/indaco/readmanifest/internal/core"
)

// DetectLayout reports which conventional target files exist under the
// package root dir. Missing directories are not an error.
func DetectLayout(ctx context.Context, fsys core.FileSystem, dir string) (*Layout, error) {
	layout := &Layout{}

	exists := func(rel string) (bool, error) {
		info, err := fsys.Stat(ctx, filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}
			return false, err
		}
		return !info.IsDir(), nil
	}

	var err error
	if layout.Lib, err = exists("src/lib.rs"); err != nil {
		return nil, err
	}
	if layout.Main, err = exists("src/main.rs"); err != nil {
		return nil, err
	}
	if layout.Build, err = exists("build.rs"); err != nil {
		return nil, err
	}

	for _, d := range []struct {
		rel string
		dst *[]string
	}{
		{"src/bin", &layout.Bins},
		{"examples", &layout.Examples},
		{"tests", &layout.Tests},
		{"benches", &layout.Benches},
	} {
		found, err := scanTargetDir(ctx, fsys, dir, d.rel)
		if err != nil {
			return nil, err
		}
		*d.dst = found
	}

	return layout, nil
}

// scanTargetDir lists "<rel>/*.rs" files and "<rel>/*/main.rs" entries.
func scanTargetDir(ctx context.Context, fsys core.FileSystem, root, rel string) ([]string, error) {
	entries, err := fsys.ReadDir(ctx, filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var found []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.IsDir() {
			if strings.HasSuffix(name, ".rs") {
				found = append(found, path.Join(rel, name))
			}
			continue
		}
		mainRel := path.Join(rel, name, "main.rs")
		info, err := fsys.Stat(ctx, filepath.Join(root, filepath.FromSlash(mainRel)))
		if err == nil && !info.IsDir() {
			found = append(found, mainRel)
		}
	}
	return found, nil
}
