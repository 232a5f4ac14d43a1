package assets

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/rs/zerolog"
)

// CopyStats counts the outcome of a CopyTree.
type CopyStats struct {
	Copied int `json:"copied" yaml:"copied"`
	Failed int `json:"failed" yaml:"failed"`
}

// CopyTree recursively copies regular files from src into dst, keeping
// their permission bits. A missing src copies nothing. Failures are logged
// and counted; the copy goes on with the next entry.
func CopyTree(fs types.FS, src, dst string, logger zerolog.Logger) CopyStats {
	var stats CopyStats
	copyDir(fs, src, dst, &stats, logger)
	return stats
}

func copyDir(fs types.FS, src, dst string, stats *CopyStats, logger zerolog.Logger) {
	entries, err := fs.ReadDir(src)
	if err != nil {
		if !os.IsNotExist(err) {
			stats.Failed++
			logger.Warn().Err(err).Str("dir", src).Msg("Cannot read directory")
		}
		return
	}
	if err := fs.MkdirAll(dst, 0755); err != nil {
		stats.Failed++
		logger.Warn().Err(err).Str("dir", dst).Msg("Cannot create directory")
		return
	}

	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())

		info, err := fs.Stat(from)
		if err != nil {
			stats.Failed++
			logger.Warn().Err(err).Str("path", from).Msg("Cannot stat entry")
			continue
		}
		switch {
		case info.IsDir():
			copyDir(fs, from, to, stats, logger)
		case info.Mode().IsRegular():
			if err := CopyFile(fs, from, to, info.Mode().Perm()); err != nil {
				stats.Failed++
				logger.Warn().Err(err).Str("path", from).Msg("Copy failed")
				continue
			}
			stats.Copied++
		}
	}
}

// CopyFile copies one file, overwriting dst.
func CopyFile(fs types.FS, src, dst string, perm os.FileMode) error {
	data, err := fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src)
	}
	if err := fs.WriteFile(dst, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", dst)
	}
	return nil
}
