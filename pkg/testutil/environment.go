package testutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// TestEnvironment provides an isolated source tree and home directory.
type TestEnvironment struct {
	Root       string
	SourceRoot string
	HomeDir    string
	Identity   types.Identity

	t *testing.T
}

// NewTestEnvironment creates a new test environment and points HOME and the
// XDG variables at it for the duration of the test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:       root,
		SourceRoot: filepath.Join(root, "dotfiles"),
		HomeDir:    filepath.Join(root, "home"),
		t:          t,
	}
	for _, dir := range []string{env.SourceRoot, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	// Registered first so it runs after the variables are restored
	t.Cleanup(xdg.Reload)
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(env.HomeDir, ".local", "share"))
	xdg.Reload()

	env.Identity = types.Identity{
		Username: currentUsername(),
		UID:      os.Getuid(),
		GID:      os.Getgid(),
		Home:     env.HomeDir,
	}
	return env
}

// SourcePath joins elements onto the source root.
func (env *TestEnvironment) SourcePath(elem ...string) string {
	return filepath.Join(append([]string{env.SourceRoot}, elem...)...)
}

// HomePath joins elements onto the home directory.
func (env *TestEnvironment) HomePath(elem ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, elem...)...)
}

// WriteSource creates a file in the source tree, creating parents.
func (env *TestEnvironment) WriteSource(rel, content string) string {
	env.t.Helper()
	return env.write(env.SourcePath(rel), content)
}

// WriteHome creates a file in the home directory, creating parents.
func (env *TestEnvironment) WriteHome(rel, content string) string {
	env.t.Helper()
	return env.write(env.HomePath(rel), content)
}

// MkdirSource creates a directory in the source tree.
func (env *TestEnvironment) MkdirSource(rel string) string {
	env.t.Helper()
	dir := env.SourcePath(rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		env.t.Fatalf("Failed to create %s: %v", dir, err)
	}
	return dir
}

// Paths returns ResolvedPaths for an i3 layout rooted in this environment.
func (env *TestEnvironment) Paths() types.ResolvedPaths {
	configHome := env.HomePath(".config")
	return types.ResolvedPaths{
		Home:         env.HomeDir,
		ConfigHome:   configHome,
		SourceRoot:   env.SourceRoot,
		WMConfigDir:  filepath.Join(configHome, "i3"),
		WMConfigFile: filepath.Join(configHome, "i3", "config"),
		FragmentPath: env.SourcePath("config", "i3", "controls.conf"),
	}
}

func (env *TestEnvironment) write(path, content string) string {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func currentUsername() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return strconv.Itoa(os.Getuid())
}
