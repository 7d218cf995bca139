package manifest

// DependencyKind distinguishes runtime, development and build-script
// dependencies. Normal dependencies use the empty kind.
type DependencyKind string

const (
	KindNormal DependencyKind = ""
	KindDev    DependencyKind = "dev"
	KindBuild  DependencyKind = "build"
)

// Package is the loaded, validated representation of one manifest.
type Package struct {
	Name          string              `json:"name"`
	Version       string              `json:"version"`
	ID            string              `json:"id"`
	Authors       []string            `json:"authors"`
	Description   string              `json:"description,omitempty"`
	Edition       string              `json:"edition"`
	License       string              `json:"license,omitempty"`
	LicenseFile   string              `json:"license_file,omitempty"`
	Repository    string              `json:"repository,omitempty"`
	Homepage      string              `json:"homepage,omitempty"`
	Documentation string              `json:"documentation,omitempty"`
	Readme        string              `json:"readme,omitempty"`
	Keywords      []string            `json:"keywords"`
	Categories    []string            `json:"categories"`
	Links         string              `json:"links,omitempty"`
	RustVersion   string              `json:"rust_version,omitempty"`
	DefaultRun    string              `json:"default_run,omitempty"`
	Include       []string            `json:"include,omitempty"`
	Exclude       []string            `json:"exclude,omitempty"`
	Dependencies  []Dependency        `json:"dependencies"`
	Targets       []Target            `json:"targets"`
	Features      map[string][]string `json:"features"`
	Workspace     *Workspace          `json:"workspace,omitempty"`
	Metadata      map[string]any      `json:"metadata,omitempty"`
	ManifestPath  string              `json:"manifest_path"`

	// Publish lists the registries the package may be published to.
	// nil means any registry; an empty list means publishing is disabled.
	Publish []string `json:"publish"`
}

// Dependency is one entry of a [dependencies], [dev-dependencies] or
// [build-dependencies] table, possibly scoped to a target platform.
type Dependency struct {
	// Name is the name of the package depended on, after resolving any
	// `package = "..."` rename.
	Name string `json:"name"`

	// Rename is the key the dependency was declared under when it differs
	// from Name.
	Rename string `json:"rename,omitempty"`

	Req                 string         `json:"req"`
	Kind                DependencyKind `json:"kind,omitempty"`
	Target              string         `json:"target,omitempty"`
	Optional            bool           `json:"optional"`
	UsesDefaultFeatures bool           `json:"uses_default_features"`
	Features            []string       `json:"features"`
	Path                string         `json:"path,omitempty"`
	Git                 string         `json:"git,omitempty"`
	Branch              string         `json:"branch,omitempty"`
	Tag                 string         `json:"tag,omitempty"`
	Rev                 string         `json:"rev,omitempty"`
	Registry            string         `json:"registry,omitempty"`
	Inherited           bool           `json:"inherited,omitempty"`
}

// Target is a buildable unit of a package: a library, binary, example,
// test, bench or build script.
type Target struct {
	Kind             []string `json:"kind"`
	CrateTypes       []string `json:"crate_types"`
	Name             string   `json:"name"`
	SrcPath          string   `json:"src_path"`
	Edition          string   `json:"edition"`
	Test             bool     `json:"test"`
	Doctest          bool     `json:"doctest"`
	Bench            bool     `json:"bench"`
	Doc              bool     `json:"doc"`
	RequiredFeatures []string `json:"required-features,omitempty"`
}

// Workspace captures the [workspace] table of a root manifest.
type Workspace struct {
	Members        []string `json:"members"`
	Exclude        []string `json:"exclude,omitempty"`
	DefaultMembers []string `json:"default_members,omitempty"`
	Resolver       string   `json:"resolver,omitempty"`
}

// Layout lists conventional target files present next to a manifest. Paths
// are relative to the package root and use forward slashes.
type Layout struct {
	Lib      bool
	Main     bool
	Build    bool
	Bins     []string
	Examples []string
	Tests    []string
	Benches  []string
}

// ParseOptions carries the context a manifest is parsed in.
type ParseOptions struct {
	// ManifestPath is the absolute path of the manifest file.
	ManifestPath string

	// SourceID identifies the source the package was loaded from.
	SourceID string

	// Layout drives target inference. A nil Layout disables inference and
	// only explicitly declared targets are reported.
	Layout *Layout
}

// Clone returns a deep copy of p.
func (p *Package) Clone() *Package {
	if p == nil {
		return nil
	}
	out := *p
	out.Authors = cloneStrings(p.Authors)
	out.Keywords = cloneStrings(p.Keywords)
	out.Categories = cloneStrings(p.Categories)
	out.Include = cloneStrings(p.Include)
	out.Exclude = cloneStrings(p.Exclude)
	out.Publish = cloneStrings(p.Publish)

	if p.Dependencies != nil {
		out.Dependencies = make([]Dependency, len(p.Dependencies))
		for i, d := range p.Dependencies {
			d.Features = cloneStrings(d.Features)
			out.Dependencies[i] = d
		}
	}
	if p.Targets != nil {
		out.Targets = make([]Target, len(p.Targets))
		for i, t := range p.Targets {
			t.Kind = cloneStrings(t.Kind)
			t.CrateTypes = cloneStrings(t.CrateTypes)
			t.RequiredFeatures = cloneStrings(t.RequiredFeatures)
			out.Targets[i] = t
		}
	}
	if p.Features != nil {
		out.Features = make(map[string][]string, len(p.Features))
		for k, v := range p.Features {
			out.Features[k] = cloneStrings(v)
		}
	}
	if p.Workspace != nil {
		ws := *p.Workspace
		ws.Members = cloneStrings(ws.Members)
		ws.Exclude = cloneStrings(ws.Exclude)
		ws.DefaultMembers = cloneStrings(ws.DefaultMembers)
		out.Workspace = &ws
	}
	if p.Metadata != nil {
		out.Metadata = cloneValue(p.Metadata).(map[string]any)
	}
	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
