package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/readmanifest/internal/manifest"
	"github.com/indaco/readmanifest/internal/printer"
)

// Writer encodes package descriptors in one format.
type Writer struct {
	format Format
}

// NewWriter creates a new Writer for the given format.
func NewWriter(format Format) *Writer {
	return &Writer{format: format}
}

// WritePackage encodes a single package descriptor.
func (w *Writer) WritePackage(out io.Writer, pkg *manifest.Package) error {
	doc := normalize(pkg)
	switch w.format {
	case FormatYAML:
		return writeYAML(out, doc)
	case FormatText:
		_, err := io.WriteString(out, formatText(doc))
		return err
	default:
		return writeJSON(out, doc)
	}
}

// WritePackages encodes a list of descriptors: a JSON array, a YAML
// sequence, or text blocks separated by blank lines.
func (w *Writer) WritePackages(out io.Writer, pkgs []*manifest.Package) error {
	docs := make([]*manifest.Package, 0, len(pkgs))
	for _, p := range pkgs {
		docs = append(docs, normalize(p))
	}

	switch w.format {
	case FormatYAML:
		return writeYAML(out, docs)
	case FormatText:
		blocks := make([]string, 0, len(docs))
		for _, d := range docs {
			blocks = append(blocks, formatText(d))
		}
		_, err := io.WriteString(out, strings.Join(blocks, "\n"))
		return err
	default:
		return writeJSON(out, docs)
	}
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

func writeYAML(out io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// normalize returns a copy of pkg whose list and map fields are never nil,
// so encoders emit [] and {} instead of null. Publish keeps its nil meaning.
func normalize(pkg *manifest.Package) *manifest.Package {
	p := pkg.Clone()
	p.Authors = orEmpty(p.Authors)
	p.Keywords = orEmpty(p.Keywords)
	p.Categories = orEmpty(p.Categories)
	if p.Dependencies == nil {
		p.Dependencies = []manifest.Dependency{}
	}
	for i := range p.Dependencies {
		p.Dependencies[i].Features = orEmpty(p.Dependencies[i].Features)
	}
	if p.Targets == nil {
		p.Targets = []manifest.Target{}
	}
	if p.Features == nil {
		p.Features = map[string][]string{}
	}
	return p
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// formatText renders a descriptor as aligned key/value lines.
func formatText(p *manifest.Package) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", printer.Bold(p.Name), printer.Success(p.Version))
	sb.WriteString(printer.Field("id", p.ID) + "\n")
	sb.WriteString(printer.Field("edition", p.Edition) + "\n")
	sb.WriteString(printer.Field("manifest", p.ManifestPath) + "\n")

	optional := []struct{ key, value string }{
		{"description", p.Description},
		{"license", p.License},
		{"repository", p.Repository},
		{"rust-version", p.RustVersion},
	}
	for _, f := range optional {
		if f.value != "" {
			sb.WriteString(printer.Field(f.key, f.value) + "\n")
		}
	}
	if len(p.Authors) > 0 {
		sb.WriteString(printer.Field("authors", strings.Join(p.Authors, ", ")) + "\n")
	}
	switch {
	case p.Publish == nil:
	case len(p.Publish) == 0:
		sb.WriteString(printer.Field("publish", printer.Warning("disabled")) + "\n")
	default:
		sb.WriteString(printer.Field("publish", strings.Join(p.Publish, ", ")) + "\n")
	}

	if len(p.Targets) > 0 {
		sb.WriteString(printer.Info("targets:") + "\n")
		for _, t := range p.Targets {
			fmt.Fprintf(&sb, "  %-12s %s %s\n", strings.Join(t.Kind, ","), t.Name, printer.Faint(t.SrcPath))
		}
	}

	if len(p.Dependencies) > 0 {
		sb.WriteString(printer.Info("dependencies:") + "\n")
		for _, d := range p.Dependencies {
			fmt.Fprintf(&sb, "  %s %s%s\n", d.Name, d.Req, printer.Faint(dependencyNote(d)))
		}
	}

	if len(p.Features) > 0 {
		sb.WriteString(printer.Info("features:") + "\n")
		names := make([]string, 0, len(p.Features))
		for name := range p.Features {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  %s = [%s]\n", name, strings.Join(p.Features[name], ", "))
		}
	}

	return sb.String()
}

func dependencyNote(d manifest.Dependency) string {
	var notes []string
	if d.Kind != manifest.KindNormal {
		notes = append(notes, string(d.Kind))
	}
	if d.Target != "" {
		notes = append(notes, d.Target)
	}
	if d.Optional {
		notes = append(notes, "optional")
	}
	switch {
	case d.Path != "":
		notes = append(notes, "path: "+d.Path)
	case d.Git != "":
		notes = append(notes, "git: "+d.Git)
	}
	if len(notes) == 0 {
		return ""
	}
	return " (" + strings.Join(notes, "; ") + ")"
}
