package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/indaco/readmanifest/internal/manifest"
	"github.com/indaco/readmanifest/internal/printer"
)

func samplePackage() *manifest.Package {
	return &manifest.Package{
		Name:         "demo",
		Version:      "0.4.2",
		ID:           "demo 0.4.2 (path+file:///proj)",
		Edition:      "2021",
		License:      "MIT",
		ManifestPath: "/proj/Cargo.toml",
		Dependencies: []manifest.Dependency{
			{Name: "serde", Req: "^1.0", UsesDefaultFeatures: true},
			{Name: "tempfile", Req: "^3", Kind: manifest.KindDev, UsesDefaultFeatures: true},
		},
		Targets: []manifest.Target{
			{Kind: []string{"bin"}, CrateTypes: []string{"bin"}, Name: "demo", SrcPath: "/proj/src/main.rs", Edition: "2021"},
		},
		Features: map[string][]string{"default": {"std"}, "std": nil},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"text", FormatText, false},
		{"toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWritePackage_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatJSON).WritePackage(&buf, samplePackage()); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if doc["name"] != "demo" || doc["version"] != "0.4.2" {
		t.Errorf("name/version = %v/%v", doc["name"], doc["version"])
	}
	if doc["manifest_path"] != "/proj/Cargo.toml" {
		t.Errorf("manifest_path = %v", doc["manifest_path"])
	}
	if authors, ok := doc["authors"].([]any); !ok || len(authors) != 0 {
		t.Errorf("authors = %#v, want empty array", doc["authors"])
	}
	if doc["publish"] != nil {
		t.Errorf("publish = %v, want null", doc["publish"])
	}
	deps, _ := doc["dependencies"].([]any)
	if len(deps) != 2 {
		t.Fatalf("dependencies = %v", doc["dependencies"])
	}
	if first := deps[0].(map[string]any); first["features"] == nil {
		t.Error("dependency features encoded as null")
	}
}

func TestWritePackage_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatYAML).WritePackage(&buf, samplePackage()); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if doc["name"] != "demo" || doc["id"] != "demo 0.4.2 (path+file:///proj)" {
		t.Errorf("doc = %v", doc)
	}
}

func TestWritePackage_Text(t *testing.T) {
	printer.SetNoColor(true)

	pkg := samplePackage()
	pkg.Publish = []string{}

	var buf bytes.Buffer
	if err := NewWriter(FormatText).WritePackage(&buf, pkg); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"demo 0.4.2\n",
		"/proj/Cargo.toml",
		"MIT",
		"disabled",
		"targets:",
		"/proj/src/main.rs",
		"serde ^1.0\n",
		"tempfile ^3 (dev)",
		"default = [std]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "default =") > strings.Index(out, "std =") {
		t.Errorf("features not sorted:\n%s", out)
	}
}

func TestWritePackages(t *testing.T) {
	other := samplePackage()
	other.Name = "helper"

	var buf bytes.Buffer
	if err := NewWriter(FormatJSON).WritePackages(&buf, []*manifest.Package{samplePackage(), other}); err != nil {
		t.Fatalf("WritePackages: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(docs) != 2 || docs[1]["name"] != "helper" {
		t.Errorf("docs = %v", docs)
	}
}

func TestWritePackage_DoesNotMutateInput(t *testing.T) {
	pkg := samplePackage()
	pkg.Features = nil

	var buf bytes.Buffer
	if err := NewWriter(FormatJSON).WritePackage(&buf, pkg); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	if pkg.Features != nil || pkg.Authors != nil {
		t.Error("WritePackage modified its input")
	}
}

func TestWriteLocation(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		plain bool
		want  string
	}{
		{"json", "/proj/Cargo.toml", false, `{"root":"/proj/Cargo.toml"}` + "\n"},
		{"json escapes", `/we "ird"/Cargo.toml`, false, `{"root":"/we \"ird\"/Cargo.toml"}` + "\n"},
		{"plain", "/proj/Cargo.toml", true, "/proj/Cargo.toml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteLocation(&buf, tt.path, tt.plain); err != nil {
				t.Fatalf("WriteLocation: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
