package linker

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Inspect returns the current state of spec's destination. It is computed
// fresh on every call.
func Inspect(fs types.FS, spec types.LinkSpec) (types.DestinationState, error) {
	info, err := fs.Lstat(spec.Destination)
	if err != nil {
		if os.IsNotExist(err) {
			return types.StateAbsent, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", spec.Destination)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return types.StateRealEntry, nil
	}

	target, err := fs.Readlink(spec.Destination)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", spec.Destination)
	}
	if sameTarget(target, spec) {
		return types.StateSymlinkCorrect, nil
	}
	return types.StateSymlinkStale, nil
}

// sameTarget compares a link target with the spec's source. Relative
// targets are resolved against the link's directory.
func sameTarget(target string, spec types.LinkSpec) bool {
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(spec.Destination), target)
	}
	return filepath.Clean(target) == filepath.Clean(spec.Source)
}
