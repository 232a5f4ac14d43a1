package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// ChownFunc changes the ownership of a path without following symlinks.
type ChownFunc func(path string, uid, gid int) error

// ownedFS hands every entry it creates to a single owner.
type ownedFS struct {
	types.FS
	owner  types.Identity
	lchown ChownFunc
	logger zerolog.Logger
}

// NewOwned wraps base so that files, directories and symlinks it creates
// belong to owner. When chown is false (dotrig is not elevated, so the
// process already runs as owner) base is returned unchanged.
func NewOwned(base types.FS, owner types.Identity, chown bool) types.FS {
	if !chown {
		return base
	}
	return NewOwnedWithChown(base, owner, unix.Lchown)
}

// NewOwnedWithChown is NewOwned with an explicit chown implementation.
func NewOwnedWithChown(base types.FS, owner types.Identity, lchown ChownFunc) types.FS {
	return &ownedFS{
		FS:     base,
		owner:  owner,
		lchown: lchown,
		logger: logging.GetLogger("filesystem.owned"),
	}
}

func (o *ownedFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(name)
	created, err := o.missingAncestors(dir)
	if err != nil {
		return err
	}
	// Parents are created like MkdirAll would, then handed over with the file
	if len(created) > 0 {
		if err := o.FS.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := o.FS.WriteFile(name, data, perm); err != nil {
		return err
	}
	return o.chown(append(created, name)...)
}

func (o *ownedFS) MkdirAll(path string, perm fs.FileMode) error {
	created, err := o.missingAncestors(path)
	if err != nil {
		return err
	}
	if err := o.FS.MkdirAll(path, perm); err != nil {
		return err
	}
	return o.chown(created...)
}

func (o *ownedFS) Symlink(oldname, newname string) error {
	if err := o.FS.Symlink(oldname, newname); err != nil {
		return err
	}
	return o.chown(newname)
}

// missingAncestors lists path and its parents that do not exist yet,
// outermost first, so that MkdirAll's newly created directories can be
// handed over afterwards.
func (o *ownedFS) missingAncestors(path string) ([]string, error) {
	var missing []string
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		_, err := o.FS.Lstat(p)
		if err == nil {
			break
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
		missing = append([]string{p}, missing...)
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	return missing, nil
}

func (o *ownedFS) chown(paths ...string) error {
	for _, p := range paths {
		if err := o.lchown(p, o.owner.UID, o.owner.GID); err != nil {
			return errors.Wrapf(err, errors.ErrChown, "failed to hand %s to %s", p, o.owner.Username).
				WithDetail("path", p)
		}
		o.logger.Trace().Str("path", p).Int("uid", o.owner.UID).Msg("Ownership transferred")
	}
	return nil
}
