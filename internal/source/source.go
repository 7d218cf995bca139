// Package source defines the Source abstraction: a handle over some storage
// of packages that can be refreshed and queried. PathSource is the
// local-directory implementation.
package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/readmanifest/internal/manifest"
)

// Kind names the storage backend of a source.
type Kind string

const (
	KindPath     Kind = "path"
	KindRegistry Kind = "registry"
	KindGit      Kind = "git"
)

// ID identifies a source by backend and location.
type ID struct {
	Kind     Kind
	Location string
}

// PathID returns the ID of a local directory source.
func PathID(dir string) ID {
	return ID{Kind: KindPath, Location: filepath.ToSlash(filepath.Clean(dir))}
}

// String renders the ID as "<kind>+<url>", e.g. "path+file:///proj".
func (id ID) String() string {
	if id.Kind == KindPath {
		loc := id.Location
		if len(loc) > 0 && loc[0] != '/' {
			loc = "/" + loc
		}
		return fmt.Sprintf("%s+file://%s", id.Kind, loc)
	}
	return fmt.Sprintf("%s+%s", id.Kind, id.Location)
}

// Source is a refreshable handle over the packages stored at one location.
//
// Update must be called before any query. Query methods return descriptors
// owned by the caller.
type Source interface {
	// ID identifies the source.
	ID() ID

	// Update (re)scans the underlying storage. It is safe to call more
	// than once.
	Update(ctx context.Context) error

	// Packages lists every valid package reachable from the source.
	Packages() ([]*manifest.Package, error)

	// RootPackage returns the package whose manifest sits at the source root.
	RootPackage() (*manifest.Package, error)
}
