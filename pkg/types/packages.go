package types

// PackageOutcome is the result of ensuring one package.
type PackageOutcome string

const (
	PackageAlreadyPresent PackageOutcome = "already-present"
	PackageInstalled      PackageOutcome = "installed"
	PackageFailedSkipped  PackageOutcome = "failed-skipped"
)

// PackageResult records the outcome for one package.
type PackageResult struct {
	Name    string         `json:"name" yaml:"name"`
	Outcome PackageOutcome `json:"outcome" yaml:"outcome"`
	Err     error          `json:"-" yaml:"-"`
}

// AudioDecision is the single audio-stack branch taken during a run.
type AudioDecision string

const (
	AudioModern    AudioDecision = "modern"
	AudioLegacy    AudioDecision = "legacy"
	AudioSatisfied AudioDecision = "satisfied"
)

// AudioStacks describes the two mutually exclusive audio stacks and the
// probes used to choose between them.
type AudioStacks struct {
	ServerProcess string   `koanf:"server_process" toml:"server_process"`
	ControlClient string   `koanf:"control_client" toml:"control_client"`
	Modern        []string `koanf:"modern" toml:"modern"`
	Legacy        []string `koanf:"legacy" toml:"legacy"`
}

// PackageCatalog is the fixed ordered set of packages to provision.
// Names holds per-manager renames keyed by manager, then by catalog name.
// An empty replacement drops the package for that manager.
type PackageCatalog struct {
	Packages []string
	Audio    AudioStacks
	Names    map[string]map[string]string
}

// For returns the catalog with every package name translated for the
// given manager.
func (c PackageCatalog) For(manager string) PackageCatalog {
	names := c.Names[manager]
	out := PackageCatalog{
		Packages: renamePackages(c.Packages, names),
		Audio:    c.Audio,
		Names:    c.Names,
	}
	out.Audio.Modern = renamePackages(c.Audio.Modern, names)
	out.Audio.Legacy = renamePackages(c.Audio.Legacy, names)
	return out
}

func renamePackages(pkgs []string, names map[string]string) []string {
	out := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		if renamed, ok := names[pkg]; ok {
			if renamed == "" {
				continue
			}
			pkg = renamed
		}
		out = append(out, pkg)
	}
	return out
}
