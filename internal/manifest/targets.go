package manifest

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

type targetFlags struct {
	test, doctest, bench, doc bool
}

// targetKind describes one [[bin]]-style array of tables and where inferred
// targets of that kind live.
type targetKind struct {
	kind     string
	dir      string
	explicit []tomlTarget
	auto     *bool
	found    []string
	flags    targetFlags
}

type targetBuilder struct {
	root    string
	edition string
	pkgName string
	layout  *Layout
	targets []Target
}

func buildTargets(raw *tomlManifest, meta *tomlPackage, edition, manifestPath string, layout *Layout) ([]Target, error) {
	if layout == nil {
		layout = &Layout{}
	}
	root := ""
	if manifestPath != "" {
		root = filepath.Dir(manifestPath)
	}
	b := &targetBuilder{root: root, edition: edition, pkgName: meta.Name, layout: layout}

	if raw.Lib != nil || layout.Lib {
		var spec tomlTarget
		if raw.Lib != nil {
			spec = *raw.Lib
		}
		name := spec.Name
		if name == "" {
			name = strings.ReplaceAll(meta.Name, "-", "_")
		}
		rel := spec.Path
		if rel == "" {
			rel = "src/lib.rs"
		}
		crateTypes := spec.crateTypes()
		switch {
		case spec.procMacro():
			crateTypes = []string{"proc-macro"}
		case len(crateTypes) == 0:
			crateTypes = []string{"lib"}
		}
		b.add(crateTypes, crateTypes, name, rel, targetFlags{test: true, doctest: true, bench: true, doc: true}, spec)
	}

	kinds := []targetKind{
		{kind: "bin", dir: "src/bin", explicit: raw.Bin, auto: meta.Autobins, found: layout.Bins,
			flags: targetFlags{test: true, bench: true, doc: true}},
		{kind: "example", dir: "examples", explicit: raw.Example, auto: meta.Autoexamples, found: layout.Examples},
		{kind: "test", dir: "tests", explicit: raw.Test, auto: meta.Autotests, found: layout.Tests,
			flags: targetFlags{test: true}},
		{kind: "bench", dir: "benches", explicit: raw.Bench, auto: meta.Autobenches, found: layout.Benches,
			flags: targetFlags{bench: true}},
	}
	for _, k := range kinds {
		if err := b.addKind(k); err != nil {
			return nil, err
		}
	}

	if script, ok, err := buildScript(meta.Build, layout); err != nil {
		return nil, err
	} else if ok {
		b.add([]string{"custom-build"}, []string{"bin"}, "build-script-build", script, targetFlags{}, tomlTarget{})
	}

	if b.targets == nil {
		b.targets = []Target{}
	}
	return b.targets, nil
}

func (b *targetBuilder) addKind(k targetKind) error {
	names := make(map[string]bool)
	paths := make(map[string]bool)

	crateTypes := func(spec tomlTarget) []string {
		if ct := spec.crateTypes(); len(ct) > 0 && k.kind == "example" {
			return ct
		}
		return []string{"bin"}
	}

	for _, spec := range k.explicit {
		if spec.Name == "" {
			return fmt.Errorf("%s target must have a `name`", k.kind)
		}
		if names[spec.Name] {
			return fmt.Errorf("found duplicate %s name %q", k.kind, spec.Name)
		}
		rel := spec.Path
		if rel == "" {
			rel = b.defaultPath(k, spec.Name)
		}
		names[spec.Name] = true
		paths[path.Clean(filepath.ToSlash(rel))] = true
		b.add([]string{k.kind}, crateTypes(spec), spec.Name, rel, k.flags, spec)
	}

	if k.auto != nil && !*k.auto {
		return nil
	}

	var inferred []string
	if k.kind == "bin" && b.layout.Main {
		inferred = append(inferred, "src/main.rs")
	}
	inferred = append(inferred, k.found...)

	for _, rel := range inferred {
		name := inferredName(rel)
		if rel == "src/main.rs" {
			name = b.pkgName
		}
		if names[name] || paths[path.Clean(rel)] {
			continue
		}
		names[name] = true
		paths[path.Clean(rel)] = true
		b.add([]string{k.kind}, []string{"bin"}, name, rel, k.flags, tomlTarget{})
	}
	return nil
}

// defaultPath picks the conventional source file of an explicitly declared
// target that did not set `path`.
func (b *targetBuilder) defaultPath(k targetKind, name string) string {
	if k.kind == "bin" && name == b.pkgName && b.layout.Main {
		return "src/main.rs"
	}
	nested := path.Join(k.dir, name, "main.rs")
	if slices.Contains(k.found, nested) {
		return nested
	}
	return path.Join(k.dir, name+".rs")
}

func (b *targetBuilder) add(kind, crateTypes []string, name, rel string, flags targetFlags, spec tomlTarget) {
	t := Target{
		Kind:             kind,
		CrateTypes:       crateTypes,
		Name:             name,
		SrcPath:          b.srcPath(rel),
		Edition:          b.edition,
		Test:             flags.test,
		Doctest:          flags.doctest,
		Bench:            flags.bench,
		Doc:              flags.doc,
		RequiredFeatures: spec.RequiredFeatures,
	}
	if spec.Edition != "" {
		t.Edition = spec.Edition
	}
	for _, o := range []struct {
		src *bool
		dst *bool
	}{
		{spec.Test, &t.Test},
		{spec.Doctest, &t.Doctest},
		{spec.Bench, &t.Bench},
		{spec.Doc, &t.Doc},
	} {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	b.targets = append(b.targets, t)
}

func (b *targetBuilder) srcPath(rel string) string {
	p := filepath.FromSlash(rel)
	if b.root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.root, p)
}

// inferredName derives a target name from its source file:
// "src/bin/foo.rs" and "src/bin/foo/main.rs" both yield "foo".
func inferredName(rel string) string {
	base := path.Base(rel)
	if base == "main.rs" {
		return path.Base(path.Dir(rel))
	}
	return strings.TrimSuffix(base, ".rs")
}

func buildScript(v any, layout *Layout) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "build.rs", layout.Build, nil
	case bool:
		if val {
			return "build.rs", true, nil
		}
		return "", false, nil
	case string:
		return val, val != "", nil
	default:
		return "", false, fmt.Errorf("`build` must be a path or a boolean, found %T", v)
	}
}
