package linker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/rs/zerolog"
)

// WarnLinkFailed marks a LinkSpec that could not be converged
const WarnLinkFailed = "link-failed"

// BackupSuffix is appended to a destination that is moved aside
const BackupSuffix = ".backup"

// Linker applies LinkSpecs through a filesystem.
type Linker struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// New creates a Linker. In dry-run mode nothing is mutated and every spec
// that would change is reported as skipped with ReasonDryRun.
func New(fsys types.FS, dryRun bool) *Linker {
	return &Linker{
		fs:     fsys,
		dryRun: dryRun,
		logger: logging.GetLogger("linker"),
	}
}

// Converge makes spec.Destination a symbolic link to spec.Source.
func (l *Linker) Converge(spec types.LinkSpec) types.LinkResult {
	result := types.LinkResult{Spec: spec, Outcome: types.OutcomeSkipped}
	logger := l.logger.With().Str("destination", spec.Destination).Logger()

	if _, err := l.fs.Stat(spec.Source); err != nil {
		result.Reason = types.ReasonNoSource
		logger.Debug().Str("source", spec.Source).Msg("Source missing, skipping")
		return result
	}

	state, err := Inspect(l.fs, spec)
	if err != nil {
		return l.fail(result, err)
	}
	result.State = state

	if spec.Kind == types.LinkScript && !l.dryRun {
		if err := l.ensureExecutable(spec.Source); err != nil {
			logger.Warn().Err(err).Msg("Cannot mark script executable")
		}
	}

	switch state {
	case types.StateSymlinkCorrect:
		result.Reason = types.ReasonAlreadyCorrect
		logger.Debug().Msg("Already linked")
		return result
	case types.StateAbsent:
		if l.dryRun {
			result.Reason = types.ReasonDryRun
			logger.Info().Msg("Would link")
			return result
		}
		// Create parent directories
		if err := l.fs.MkdirAll(filepath.Dir(spec.Destination), 0755); err != nil {
			return l.fail(result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", spec.Destination))
		}
		if err := l.fs.Symlink(spec.Source, spec.Destination); err != nil {
			return l.fail(result, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", spec.Destination))
		}
		result.Outcome = types.OutcomeApplied
		result.Reason = types.ReasonLinked
		logger.Info().Str("source", spec.Source).Msg("Linked")
		return result
	}

	// Stale link or real entry: move it aside, then link.
	backup, err := NextBackupPath(l.fs, spec.Destination)
	if err != nil {
		return l.fail(result, err)
	}
	if l.dryRun {
		result.Reason = types.ReasonDryRun
		result.Backup = backup
		logger.Info().Str("backup", backup).Msg("Would back up and link")
		return result
	}
	if err := l.fs.Rename(spec.Destination, backup); err != nil {
		return l.fail(result, errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", spec.Destination))
	}
	if err := l.fs.Symlink(spec.Source, spec.Destination); err != nil {
		// Restore the original entry
		if restoreErr := l.fs.Rename(backup, spec.Destination); restoreErr != nil {
			logger.Error().Err(restoreErr).Str("backup", backup).Msg("Failed to restore backup")
			result.Backup = backup
		}
		return l.fail(result, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", spec.Destination))
	}

	result.Outcome = types.OutcomeApplied
	result.Reason = types.ReasonReplaced
	result.Backup = backup
	logger.Info().Str("source", spec.Source).Str("backup", backup).Str("previous", string(state)).Msg("Replaced")
	return result
}

// ConvergeAll applies specs in order.
func (l *Linker) ConvergeAll(specs []types.LinkSpec) []types.LinkResult {
	done := logging.LogOperationStart(l.logger, "converge links")
	defer done()

	results := make([]types.LinkResult, 0, len(specs))
	for _, spec := range specs {
		results = append(results, l.Converge(spec))
	}
	return results
}

func (l *Linker) fail(result types.LinkResult, err error) types.LinkResult {
	result.Outcome = types.OutcomeSkipped
	result.Reason = types.ReasonFailed
	result.Err = err
	logging.Warning(l.logger, WarnLinkFailed).Err(err).Str("destination", result.Spec.Destination).Msg("Link failed, skipping")
	return result
}

func (l *Linker) ensureExecutable(path string) error {
	info, err := l.fs.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	// Already executable for everyone
	if mode&0111 == 0111 {
		return nil
	}
	return l.fs.Chmod(path, mode|0111)
}

// NextBackupPath returns the first unused backup name for dest.
func NextBackupPath(fsys types.FS, dest string) (string, error) {
	candidate := dest + BackupSuffix
	for n := 1; ; n++ {
		_, err := fsys.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrBackup, "failed to check backup %s", candidate)
		}
		candidate = fmt.Sprintf("%s%s.%d", dest, BackupSuffix, n)
	}
}

// FanOut builds one script LinkSpec per regular file directly under
// srcDir, linked under dstDir by base name. A missing srcDir yields none.
func FanOut(fsys types.FS, srcDir, dstDir string) ([]types.LinkSpec, error) {
	entries, err := fsys.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read scripts in %s", srcDir)
	}

	// Collect regular files, sorted for a stable link order
	var names []string
	for _, e := range entries {
		if isRegular(fsys, filepath.Join(srcDir, e.Name()), e) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	specs := make([]types.LinkSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, types.LinkSpec{
			Source:      filepath.Join(srcDir, name),
			Destination: filepath.Join(dstDir, name),
			Kind:        types.LinkScript,
		})
	}
	return specs, nil
}

// isRegular follows symlinks in the scripts directory.
func isRegular(fsys types.FS, path string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
