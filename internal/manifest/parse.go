package manifest

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/indaco/readmanifest/internal/semver"
	"github.com/pelletier/go-toml/v2"
)

const defaultEdition = "2015"

var knownEditions = []string{"2015", "2018", "2021", "2024"}

// Parse decodes and validates manifest contents. Every failure is returned
// as a *ParseError.
func Parse(data []byte, opts ParseOptions) (*Package, error) {
	path := opts.ManifestPath

	var raw tomlManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		perr := &ParseError{Path: path, Msg: "invalid TOML", Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	meta := raw.Package
	if meta == nil {
		meta = raw.Project
	}
	if meta == nil {
		if raw.Workspace != nil {
			return nil, &ParseError{Path: path, Err: ErrVirtualManifest}
		}
		return nil, invalidf(path, "no `package` section found")
	}

	if err := validateName(meta.Name); err != nil {
		return nil, &ParseError{Path: path, Msg: "invalid package name", Err: err}
	}
	if meta.Version == "" {
		return nil, invalidf(path, "missing field `version` in [package]")
	}
	if _, err := semver.ParseVersion(meta.Version); err != nil {
		return nil, &ParseError{Path: path, Msg: "invalid package version", Err: err}
	}

	edition := meta.Edition
	if edition == "" {
		edition = defaultEdition
	}
	if !slices.Contains(knownEditions, edition) {
		return nil, invalidf(path, "unsupported edition %q", edition)
	}

	publish, err := normalizePublish(meta.Publish)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	readme, err := normalizeReadme(meta.Readme)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	deps, err := collectDependencies(&raw)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "invalid dependency", Err: err}
	}

	pkg := &Package{
		Name:          meta.Name,
		Version:       meta.Version,
		Authors:       nonNil(meta.Authors),
		Description:   meta.Description,
		Edition:       edition,
		License:       meta.License,
		LicenseFile:   meta.LicenseFile,
		Repository:    meta.Repository,
		Homepage:      meta.Homepage,
		Documentation: meta.Documentation,
		Readme:        readme,
		Keywords:      nonNil(meta.Keywords),
		Categories:    nonNil(meta.Categories),
		Links:         meta.Links,
		RustVersion:   meta.RustVersion,
		DefaultRun:    meta.DefaultRun,
		Include:       meta.Include,
		Exclude:       meta.Exclude,
		Publish:       publish,
		Dependencies:  deps,
		Features:      raw.Features,
		Metadata:      meta.Metadata,
		ManifestPath:  path,
	}
	if pkg.Features == nil {
		pkg.Features = map[string][]string{}
	}
	pkg.ID = fmt.Sprintf("%s %s", pkg.Name, pkg.Version)
	if opts.SourceID != "" {
		pkg.ID = fmt.Sprintf("%s (%s)", pkg.ID, opts.SourceID)
	}

	if raw.Workspace != nil {
		pkg.Workspace = &Workspace{
			Members:        nonNil(raw.Workspace.Members),
			Exclude:        raw.Workspace.Exclude,
			DefaultMembers: raw.Workspace.DefaultMembers,
			Resolver:       raw.Workspace.Resolver,
		}
	}

	targets, err := buildTargets(&raw, meta, edition, path, opts.Layout)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "invalid target", Err: err}
	}
	pkg.Targets = targets

	return pkg, nil
}

// validateName checks a package name the way the registry does: non-empty,
// ASCII alphanumerics plus '-' and '_', not starting with a digit.
func validateName(name string) error {
	if name == "" {
		return errors.New("missing field `name` in [package]")
	}
	if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("%q starts with a digit", name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%q contains invalid character %q", name, r)
		}
	}
	return nil
}

func normalizePublish(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if val {
			return nil, nil
		}
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("`publish` registries must be strings, found %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("`publish` must be a boolean or a list of registries, found %T", v)
	}
}

func normalizeReadme(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		// `readme = false` disables the readme; `true` means the default file.
		if val {
			return "README.md", nil
		}
		return "", nil
	default:
		return "", fmt.Errorf("`readme` must be a string or a boolean, found %T", v)
	}
}

func collectDependencies(raw *tomlManifest) ([]Dependency, error) {
	var deps []Dependency

	add := func(table map[string]any, kind DependencyKind, platform string) error {
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			dep, err := parseDependency(name, table[name])
			if err != nil {
				return err
			}
			dep.Kind = kind
			dep.Target = platform
			deps = append(deps, dep)
		}
		return nil
	}

	if err := add(raw.Dependencies, KindNormal, ""); err != nil {
		return nil, err
	}
	if err := add(mergeTables(raw.DevDependencies, raw.DevDependencies2), KindDev, ""); err != nil {
		return nil, err
	}
	if err := add(mergeTables(raw.BuildDependencies, raw.BuildDependencies2), KindBuild, ""); err != nil {
		return nil, err
	}

	platforms := make([]string, 0, len(raw.Target))
	for p := range raw.Target {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	for _, p := range platforms {
		t := raw.Target[p]
		if err := add(t.Dependencies, KindNormal, p); err != nil {
			return nil, err
		}
		if err := add(mergeTables(t.DevDependencies, t.DevDependencies2), KindDev, p); err != nil {
			return nil, err
		}
		if err := add(mergeTables(t.BuildDependencies, t.BuildDependencies2), KindBuild, p); err != nil {
			return nil, err
		}
	}

	if deps == nil {
		deps = []Dependency{}
	}
	return deps, nil
}

// parseDependency accepts either the `name = "req"` shorthand or a table.
func parseDependency(name string, value any) (Dependency, error) {
	dep := Dependency{Name: name, Req: "*", UsesDefaultFeatures: true, Features: []string{}}

	switch val := value.(type) {
	case string:
		dep.Req = val
		return dep, nil
	case map[string]any:
		return parseDependencyTable(dep, val)
	default:
		return Dependency{}, fmt.Errorf("`%s`: expected a version string or a table, found %T", name, value)
	}
}

func parseDependencyTable(dep Dependency, table map[string]any) (Dependency, error) {
	name := dep.Name
	str := func(key string) (string, error) {
		v, ok := table[key]
		if !ok {
			return "", nil
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("`%s`: field `%s` must be a string, found %T", name, key, v)
		}
		return s, nil
	}
	boolean := func(keys ...string) (*bool, error) {
		for _, key := range keys {
			v, ok := table[key]
			if !ok {
				continue
			}
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("`%s`: field `%s` must be a boolean, found %T", name, key, v)
			}
			return &b, nil
		}
		return nil, nil
	}

	fields := []struct {
		key string
		dst *string
	}{
		{"version", &dep.Req},
		{"path", &dep.Path},
		{"git", &dep.Git},
		{"branch", &dep.Branch},
		{"tag", &dep.Tag},
		{"rev", &dep.Rev},
		{"registry", &dep.Registry},
	}
	hasVersion := false
	for _, f := range fields {
		s, ferr := str(f.key)
		if ferr != nil {
			return Dependency{}, ferr
		}
		if s != "" {
			*f.dst = s
			if f.key == "version" {
				hasVersion = true
			}
		}
	}

	renamed, err := str("package")
	if err != nil {
		return Dependency{}, err
	}
	if renamed != "" && renamed != name {
		dep.Rename = name
		dep.Name = renamed
	}

	if optional, err := boolean("optional"); err != nil {
		return Dependency{}, err
	} else if optional != nil {
		dep.Optional = *optional
	}
	if defaults, err := boolean("default-features", "default_features"); err != nil {
		return Dependency{}, err
	} else if defaults != nil {
		dep.UsesDefaultFeatures = *defaults
	}
	if inherited, err := boolean("workspace"); err != nil {
		return Dependency{}, err
	} else if inherited != nil {
		dep.Inherited = *inherited
	}

	if raw, ok := table["features"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return Dependency{}, fmt.Errorf("`%s`: field `features` must be a list, found %T", name, raw)
		}
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return Dependency{}, fmt.Errorf("`%s`: features must be strings, found %T", name, item)
			}
			dep.Features = append(dep.Features, s)
		}
	}

	if !hasVersion && dep.Path == "" && dep.Git == "" && !dep.Inherited {
		return Dependency{}, fmt.Errorf("`%s`: specified without providing a local path, Git repository, or version", name)
	}

	refs := 0
	for _, r := range []string{dep.Branch, dep.Tag, dep.Rev} {
		if r != "" {
			refs++
		}
	}
	if refs > 0 && dep.Git == "" {
		return Dependency{}, fmt.Errorf("`%s`: branch, tag or rev given without a `git` source", name)
	}
	if refs > 1 {
		return Dependency{}, fmt.Errorf("`%s`: only one of `branch`, `tag` or `rev` is allowed", name)
	}

	return dep, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
