package manifest

// tomlManifest mirrors the on-disk layout of a Cargo.toml. Fields that accept
// more than one TOML type are decoded as `any` and normalized in Parse.
type tomlManifest struct {
	Package            *tomlPackage            `toml:"package"`
	Project            *tomlPackage            `toml:"project"`
	Lib                *tomlTarget             `toml:"lib"`
	Bin                []tomlTarget            `toml:"bin"`
	Example            []tomlTarget            `toml:"example"`
	Test               []tomlTarget            `toml:"test"`
	Bench              []tomlTarget            `toml:"bench"`
	Dependencies       map[string]any          `toml:"dependencies"`
	DevDependencies    map[string]any          `toml:"dev-dependencies"`
	DevDependencies2   map[string]any          `toml:"dev_dependencies"`
	BuildDependencies  map[string]any          `toml:"build-dependencies"`
	BuildDependencies2 map[string]any          `toml:"build_dependencies"`
	Target             map[string]tomlPlatform `toml:"target"`
	Features           map[string][]string     `toml:"features"`
	Workspace          *tomlWorkspace          `toml:"workspace"`
}

type tomlPackage struct {
	Name          string         `toml:"name"`
	Version       string         `toml:"version"`
	Authors       []string       `toml:"authors"`
	Edition       string         `toml:"edition"`
	Description   string         `toml:"description"`
	License       string         `toml:"license"`
	LicenseFile   string         `toml:"license-file"`
	Repository    string         `toml:"repository"`
	Homepage      string         `toml:"homepage"`
	Documentation string         `toml:"documentation"`
	Readme        any            `toml:"readme"`
	Keywords      []string       `toml:"keywords"`
	Categories    []string       `toml:"categories"`
	Publish       any            `toml:"publish"`
	Include       []string       `toml:"include"`
	Exclude       []string       `toml:"exclude"`
	Build         any            `toml:"build"`
	Links         string         `toml:"links"`
	RustVersion   string         `toml:"rust-version"`
	DefaultRun    string         `toml:"default-run"`
	Autobins      *bool          `toml:"autobins"`
	Autoexamples  *bool          `toml:"autoexamples"`
	Autotests     *bool          `toml:"autotests"`
	Autobenches   *bool          `toml:"autobenches"`
	Metadata      map[string]any `toml:"metadata"`
}

type tomlTarget struct {
	Name             string   `toml:"name"`
	Path             string   `toml:"path"`
	CrateType        []string `toml:"crate-type"`
	CrateType2       []string `toml:"crate_type"`
	Test             *bool    `toml:"test"`
	Doctest          *bool    `toml:"doctest"`
	Bench            *bool    `toml:"bench"`
	Doc              *bool    `toml:"doc"`
	Harness          *bool    `toml:"harness"`
	ProcMacro        *bool    `toml:"proc-macro"`
	ProcMacro2       *bool    `toml:"proc_macro"`
	Edition          string   `toml:"edition"`
	RequiredFeatures []string `toml:"required-features"`
}

type tomlPlatform struct {
	Dependencies       map[string]any `toml:"dependencies"`
	DevDependencies    map[string]any `toml:"dev-dependencies"`
	DevDependencies2   map[string]any `toml:"dev_dependencies"`
	BuildDependencies  map[string]any `toml:"build-dependencies"`
	BuildDependencies2 map[string]any `toml:"build_dependencies"`
}

type tomlWorkspace struct {
	Members        []string `toml:"members"`
	Exclude        []string `toml:"exclude"`
	DefaultMembers []string `toml:"default-members"`
	Resolver       string   `toml:"resolver"`
}

func (t *tomlTarget) crateTypes() []string {
	if len(t.CrateType) > 0 {
		return t.CrateType
	}
	return t.CrateType2
}

func (t *tomlTarget) procMacro() bool {
	if t.ProcMacro != nil {
		return *t.ProcMacro
	}
	return t.ProcMacro2 != nil && *t.ProcMacro2
}

func mergeTables(primary, alias map[string]any) map[string]any {
	if len(alias) == 0 {
		return primary
	}
	out := make(map[string]any, len(primary)+len(alias))
	for k, v := range alias {
		out[k] = v
	}
	for k, v := range primary {
		out[k] = v
	}
	return out
}
