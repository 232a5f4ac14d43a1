package privilege

import (
	"os"
	"os/exec"
	"os/user"
	"strconv"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
	"golang.org/x/sys/unix"
)

// EnvSudoUser is set by sudo to the name of the invoking user
const EnvSudoUser = "SUDO_USER"

// IsElevated reports whether the effective uid is root.
func IsElevated() bool {
	return unix.Geteuid() == 0
}

// Elevate replaces the current process with `sudo -E <self> args...` unless
// it is already elevated, in which case it returns nil and the caller
// carries on. On success it never returns.
func Elevate(args []string) error {
	if IsElevated() {
		return nil
	}

	self, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, errors.ErrElevate, "failed to locate own executable")
	}
	sudo, err := exec.LookPath("sudo")
	if err != nil {
		return errors.Wrap(err, errors.ErrElevate, "sudo is required to provision packages")
	}

	argv := append([]string{"sudo", "-E", self}, args...)
	logger := logging.GetLogger("privilege")
	logger.Info().Strs("argv", argv).Msg("Re-executing with elevated privileges")

	if err := unix.Exec(sudo, argv, os.Environ()); err != nil {
		return errors.Wrapf(err, errors.ErrElevate, "failed to exec %s", sudo)
	}
	return nil
}

// Resolver finds the invoking user. Its hooks default to the process
// environment and os/user.
type Resolver struct {
	Getenv  func(string) string
	Lookup  func(string) (*user.User, error)
	Current func() (*user.User, error)
}

// NewResolver creates a Resolver backed by the real environment.
func NewResolver() *Resolver {
	return &Resolver{
		Getenv:  os.Getenv,
		Lookup:  user.Lookup,
		Current: currentUser,
	}
}

// currentUser is user.Current with HomeDir taken from $HOME when it is set,
// so an unprivileged run provisions the home the user is actually in.
func currentUser() (*user.User, error) {
	u, err := user.Current()
	if err != nil {
		return nil, err
	}
	if home := os.Getenv("HOME"); home != "" {
		u.HomeDir = home
	}
	return u, nil
}

// ResolveInvoker returns the identity whose home directory is provisioned.
// override wins over SUDO_USER. When elevated, one of them must name a real
// non-root user; when not elevated the current user is used as a fallback.
// Every failure is an ErrConfiguration.
func (r *Resolver) ResolveInvoker(override string, elevated bool) (types.Identity, error) {
	logger := logging.GetLogger("privilege")

	name := override
	if name == "" {
		name = r.Getenv(EnvSudoUser)
	}

	var (
		u   *user.User
		err error
	)
	switch {
	case name != "":
		u, err = r.Lookup(name)
		if err != nil {
			return types.Identity{}, errors.Wrapf(err, errors.ErrConfiguration,
				"cannot resolve invoking user %q", name).WithDetail("user", name)
		}
	case elevated:
		return types.Identity{}, errors.Newf(errors.ErrConfiguration,
			"%s is not set: cannot tell whose home directory to provision", EnvSudoUser)
	default:
		u, err = r.Current()
		if err != nil {
			return types.Identity{}, errors.Wrap(err, errors.ErrConfiguration, "cannot resolve current user")
		}
	}

	identity, err := toIdentity(u)
	if err != nil {
		return types.Identity{}, err
	}
	if elevated && identity.UID == 0 {
		return types.Identity{}, errors.New(errors.ErrConfiguration,
			"refusing to provision root's home directory; run dotrig through sudo from your own account")
	}

	logger.Debug().
		Str("user", identity.Username).
		Int("uid", identity.UID).
		Str("home", identity.Home).
		Msg("Resolved invoking user")
	return identity, nil
}

func toIdentity(u *user.User) (types.Identity, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return types.Identity{}, errors.Wrapf(err, errors.ErrConfiguration, "invalid uid %q for %s", u.Uid, u.Username)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return types.Identity{}, errors.Wrapf(err, errors.ErrConfiguration, "invalid gid %q for %s", u.Gid, u.Username)
	}
	if u.HomeDir == "" {
		return types.Identity{}, errors.Newf(errors.ErrConfiguration, "user %s has no home directory", u.Username)
	}
	return types.Identity{
		Username: u.Username,
		UID:      uid,
		GID:      gid,
		Home:     u.HomeDir,
	}, nil
}
