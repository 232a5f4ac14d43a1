package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotrig/pkg/config"
	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// EnvDotfilesRoot names the source tree when no flag or config is given
const EnvDotfilesRoot = "DOTFILES_ROOT"

// ConfigToken at the start of a configured destination stands for the
// invoking user's config home, so links and the WM config file agree when
// XDG_CONFIG_HOME is not ~/.config.
const ConfigToken = "$config"

// FindSourceRoot determines the source tree root. explicit wins when set.
func FindSourceRoot(explicit, home string) (string, error) {
	root := explicit
	if root == "" {
		root = os.Getenv(EnvDotfilesRoot)
	}
	if root == "" {
		if gitRoot, err := findGitRoot(); err == nil {
			root = gitRoot
		}
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		root = cwd
	}

	abs, err := filepath.Abs(ExpandHome(root, home))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", root)
	}
	return abs, nil
}

// ConfigHome returns the invoking user's config home.
func ConfigHome(identity types.Identity, elevated bool) string {
	if !elevated {
		return xdg.ConfigHome
	}
	if env := os.Getenv("XDG_CONFIG_HOME"); env != "" && IsWithin(env, identity.Home) {
		return filepath.Clean(env)
	}
	return filepath.Join(identity.Home, ".config")
}

// Resolve derives the paths every stage uses.
func Resolve(identity types.Identity, configHome, sourceRoot string, cfg *config.Config) types.ResolvedPaths {
	wmDir := filepath.Join(configHome, cfg.WM.ConfigDir)
	return types.ResolvedPaths{
		Home:         identity.Home,
		ConfigHome:   configHome,
		SourceRoot:   sourceRoot,
		WMConfigDir:  wmDir,
		WMConfigFile: filepath.Join(wmDir, cfg.WM.ConfigFile),
		FragmentPath: filepath.Join(sourceRoot, "config", cfg.WM.ConfigDir, cfg.WM.Fragment),
	}
}

// LinkSpecs turns configured links into absolute LinkSpecs. Sources are
// relative to the source root; destinations to the home directory.
func LinkSpecs(links []config.Link, p types.ResolvedPaths) []types.LinkSpec {
	specs := make([]types.LinkSpec, 0, len(links))
	for _, l := range links {
		specs = append(specs, types.LinkSpec{
			Source:      InSource(p, l.Source),
			Destination: InHome(p, l.Destination),
			Kind:        types.LinkKind(l.Kind),
		})
	}
	return specs
}

// InSource resolves rel against the source root.
func InSource(p types.ResolvedPaths, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.SourceRoot, rel)
}

// InHome resolves rel against the home directory, expanding a leading ~
// or ConfigToken.
func InHome(p types.ResolvedPaths, rel string) string {
	if rest, ok := cutConfigToken(rel); ok {
		return filepath.Join(p.ConfigHome, rest)
	}
	rel = ExpandHome(rel, p.Home)
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.Home, rel)
}

// ExpandDirective replaces ConfigToken in a WM directive with the config
// home, written as ~/... when it lies inside the home directory.
func ExpandDirective(directive string, p types.ResolvedPaths) string {
	configHome := p.ConfigHome
	if IsWithin(configHome, p.Home) {
		rel, _ := filepath.Rel(p.Home, configHome)
		configHome = "~/" + filepath.ToSlash(rel)
		if rel == "." {
			configHome = "~"
		}
	}
	return strings.ReplaceAll(directive, ConfigToken, configHome)
}

func cutConfigToken(rel string) (string, bool) {
	if rel == ConfigToken {
		return "", true
	}
	if rest, ok := strings.CutPrefix(rel, ConfigToken+"/"); ok {
		return rest, true
	}
	return "", false
}

// ExpandHome expands a leading ~ to home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// IsWithin reports whether path is dir or lies below it.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, "../"))
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}
