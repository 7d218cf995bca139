package operations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/readmanifest/internal/core"
	"github.com/indaco/readmanifest/internal/locator"
	"github.com/indaco/readmanifest/internal/logging"
	"github.com/indaco/readmanifest/internal/source"
)

const validManifest = `[package]
name = "demo"
version = "0.4.2"
edition = "2021"

[dependencies]
serde = "1.0"
`

func newOp(fs core.FileSystem) *ReadManifestOperation {
	return NewReadManifestOperation(fs, nil).WithLogger(logging.Discard())
}

func TestReadManifest_FromSubdirectory(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/Cargo.toml", []byte(validManifest))
	fs.SetFile("/proj/src/lib.rs", []byte(""))

	res, err := newOp(fs).Execute(context.Background(), "", "/proj/src")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.ManifestPath != "/proj/Cargo.toml" {
		t.Errorf("ManifestPath = %q, want /proj/Cargo.toml", res.ManifestPath)
	}
	if res.Source.String() != "path+file:///proj" {
		t.Errorf("Source = %q", res.Source)
	}
	if res.Package.Name != "demo" || res.Package.Version != "0.4.2" {
		t.Errorf("package = %s %s, want demo 0.4.2", res.Package.Name, res.Package.Version)
	}
	if len(res.Package.Dependencies) != 1 || res.Package.Dependencies[0].Name != "serde" {
		t.Errorf("Dependencies = %+v", res.Package.Dependencies)
	}
	if res.Packages != nil {
		t.Errorf("Packages = %v, want nil without All", res.Packages)
	}
}

func TestReadManifest_NoManifestAnywhere(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetDir("/proj")

	_, err := ReadManifest(context.Background(), fs, nil, "", "/proj")

	var nf *locator.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v (%T), want *locator.NotFoundError", err, err)
	}
	if nf.Start != "/proj" {
		t.Errorf("Start = %q, want /proj", nf.Start)
	}
}

func TestReadManifest_InvalidManifest(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/Cargo.toml", []byte("[package]\nname = \"demo\"\nversion = \n"))

	_, err := newOp(fs).Execute(context.Background(), "", "/proj")
	if !source.IsInvalid(err) {
		t.Fatalf("error = %v, want PackageError Invalid", err)
	}
	if source.IsNotFound(err) {
		t.Error("Invalid reported as NotFound")
	}
}

func TestReadManifest_Hint(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/work/crate/Cargo.toml", []byte(validManifest))

	tests := []struct {
		name string
		hint string
		cwd  string
	}{
		{"directory hint", "crate", "/work"},
		{"file hint", "/work/crate/Cargo.toml", "/elsewhere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newOp(fs).Execute(context.Background(), tt.hint, tt.cwd)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if res.ManifestPath != "/work/crate/Cargo.toml" {
				t.Errorf("ManifestPath = %q", res.ManifestPath)
			}
		})
	}
}

func TestReadManifest_HintToMissingDirectory(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetDir("/work")

	_, err := newOp(fs).Execute(context.Background(), "/work/missing", "/work")

	var cerr *source.ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v (%T), want *source.ConstructionError", err, err)
	}
	if cerr.Path != "/work/missing" {
		t.Errorf("Path = %q, want /work/missing", cerr.Path)
	}
}

func TestReadManifest_HintToDirectoryWithoutManifest(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetDir("/work/empty")

	_, err := newOp(fs).Execute(context.Background(), "/work/empty", "/")
	if !source.IsNotFound(err) {
		t.Fatalf("error = %v, want PackageError NotFound", err)
	}
}

func TestReadManifest_All(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/Cargo.toml", []byte(validManifest))
	fs.SetFile("/proj/crates/helper/Cargo.toml", []byte("[package]\nname = \"helper\"\nversion = \"0.1.0\"\n"))

	op := newOp(fs)
	op.All = true
	res, err := op.Execute(context.Background(), "", "/proj")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Packages) != 2 || res.Packages[0].Name != "demo" || res.Packages[1].Name != "helper" {
		t.Errorf("Packages = %+v", res.Packages)
	}
}

func TestReadManifest_OSFileSystem(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(validManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "main.rs"), []byte("fn main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newOp(core.NewOSFileSystem()).Execute(context.Background(), "", filepath.Join(root, "src"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.ManifestPath != filepath.Join(root, "Cargo.toml") {
		t.Errorf("ManifestPath = %q", res.ManifestPath)
	}
	if len(res.Package.Targets) != 1 || res.Package.Targets[0].Name != "demo" {
		t.Errorf("Targets = %+v", res.Package.Targets)
	}
}

func TestLocateProject(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/Cargo.toml", []byte(validManifest))
	fs.SetDir("/proj/src/nested")

	got, err := LocateProject(context.Background(), fs, "", "/proj/src/nested")
	if err != nil {
		t.Fatalf("LocateProject: %v", err)
	}
	if got != "/proj/Cargo.toml" {
		t.Errorf("LocateProject = %q, want /proj/Cargo.toml", got)
	}

	if _, err := LocateProject(context.Background(), core.NewMockFileSystem(), "", "/tmp"); err == nil {
		t.Error("expected error for missing manifest")
	}
}
