// Package core holds the filesystem abstraction and shared constants used by
// the locator, the manifest parser and the package sources.
package core

import (
	"context"
	"io/fs"
	"os"
)

// ManifestFileName is the reserved manifest filename searched for at each
// directory level.
const ManifestFileName = "Cargo.toml"

// MaxDiscoveryDepth bounds how deep a path source descends below its root
// when scanning for nested packages.
const MaxDiscoveryDepth = 10

// FileSystem abstracts the read-only filesystem operations used while
// locating and loading manifests.
type FileSystem interface {
	Stat(ctx context.Context, name string) (fs.FileInfo, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
	ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error)
}

// OSFileSystem is the production implementation of FileSystem.
type OSFileSystem struct{}

// NewOSFileSystem creates an OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for name.
func (o *OSFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(name)
}

// ReadFile reads the whole file at name.
func (o *OSFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

// ReadDir lists the entries of directory name sorted by filename.
func (o *OSFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadDir(name)
}
