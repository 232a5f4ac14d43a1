package packages

import (
	"context"
	"sort"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/executor"
)

// Manager is the package-manager collaborator.
type Manager interface {
	Name() string
	IsInstalled(ctx context.Context, pkg string) (bool, error)
	Install(ctx context.Context, pkg string) error
}

// commandSet describes how a package manager is driven from the shell.
type commandSet struct {
	binary  string
	query   []string
	install []string
}

var commandSets = map[string]commandSet{
	"pacman": {
		binary:  "pacman",
		query:   []string{"pacman", "-Q"},
		install: []string{"pacman", "-S", "--needed", "--noconfirm"},
	},
	"apt": {
		binary:  "apt-get",
		query:   []string{"dpkg", "-s"},
		install: []string{"apt-get", "install", "-y"},
	},
	"dnf": {
		binary:  "dnf",
		query:   []string{"rpm", "-q"},
		install: []string{"dnf", "install", "-y"},
	},
}

// SupportedManagers lists the package managers dotrig can drive.
func SupportedManagers() []string {
	names := make([]string, 0, len(commandSets))
	for name := range commandSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// commandManager implements Manager on top of a Runner. Queries and installs
// may use different runners so that only installs stream their output.
type commandManager struct {
	name    string
	cmds    commandSet
	query   executor.Runner
	install executor.Runner
}

// NewManager returns the named command-backed manager.
func NewManager(name string, query, install executor.Runner) (Manager, error) {
	cmds, ok := commandSets[name]
	if !ok {
		return nil, errors.Newf(errors.ErrNoPackageMgr, "unsupported package manager %q", name).
			WithDetail("supported", SupportedManagers())
	}
	if install == nil {
		install = query
	}
	return &commandManager{name: name, cmds: cmds, query: query, install: install}, nil
}

func (m *commandManager) Name() string { return m.name }

// IsInstalled treats a non-zero exit of the query command as "not
// installed". Any other failure is returned as ErrPackageQuery.
func (m *commandManager) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	args := append(append([]string(nil), m.cmds.query[1:]...), pkg)
	_, err := m.query.Run(ctx, m.cmds.query[0], args...)
	if err == nil {
		return true, nil
	}
	if _, exited := executor.ExitCode(err); exited {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrPackageQuery, "failed to query %s", pkg).
		WithDetail("manager", m.name)
}

func (m *commandManager) Install(ctx context.Context, pkg string) error {
	args := append(append([]string(nil), m.cmds.install[1:]...), pkg)
	if _, err := m.install.Run(ctx, m.cmds.install[0], args...); err != nil {
		return errors.Wrapf(err, errors.ErrPackageInstall, "failed to install %s", pkg).
			WithDetail("manager", m.name)
	}
	return nil
}
