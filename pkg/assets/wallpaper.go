package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Warning markers
const (
	WarnNoWallpaper          = "no-wallpaper"
	WarnWallpaperApplyFailed = "wallpaper-apply-failed"
)

// WallpaperOptions locate the wallpaper source and destinations.
type WallpaperOptions struct {
	SourceRoot string
	// Subdir is the dedicated wallpaper directory, relative to SourceRoot
	Subdir     string
	Dest       string
	Script     string
	Extensions []string
	DryRun     bool
	// Getenv looks up DISPLAY and WAYLAND_DISPLAY. Nil uses os.Getenv.
	Getenv func(string) string
}

// WallpaperReport summarises wallpaper installation.
type WallpaperReport struct {
	Selected  string `json:"selected,omitempty" yaml:"selected,omitempty"`
	Installed string `json:"installed,omitempty" yaml:"installed,omitempty"`
	Applied   bool   `json:"applied" yaml:"applied"`
	Script    string `json:"script,omitempty" yaml:"script,omitempty"`
	// Failed is set when the wallpaper could not be installed or applied
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// IsImage reports whether name has one of exts, case-insensitively.
// Extensions are given without the leading dot.
func IsImage(name string, exts []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(strings.TrimPrefix(e, "."), ext) {
			return true
		}
	}
	return false
}

// SelectWallpaper returns the first image, by name, in root/subdir, or
// failing that directly under root. The boolean is false when there is
// none.
func SelectWallpaper(fs types.FS, root, subdir string, exts []string) (string, bool) {
	dirs := []string{root}
	if subdir != "" {
		dirs = []string{filepath.Join(root, subdir), root}
	}
	for _, dir := range dirs {
		if path, ok := firstImage(fs, dir, exts); ok {
			return path, true
		}
	}
	return "", false
}

func firstImage(fs types.FS, dir string, exts []string) (string, bool) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name(), exts) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), true
}

// ReapplyScript returns the launcher that sets path as the wallpaper.
func ReapplyScript(path string) []byte {
	quoted := "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
	return []byte(fmt.Sprintf("#!/bin/sh\nexec feh --bg-fill %s\n", quoted))
}

// InstallWallpaper copies the selected wallpaper into opts.Dest, applies
// it when a display server is reachable and writes the reapply script.
func InstallWallpaper(ctx context.Context, fs types.FS, runner executor.Runner, opts WallpaperOptions) WallpaperReport {
	logger := logging.GetLogger("assets.wallpaper")
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	var report WallpaperReport

	selected, ok := SelectWallpaper(fs, opts.SourceRoot, opts.Subdir, opts.Extensions)
	if !ok {
		logging.Warning(logger, WarnNoWallpaper).Str("source", opts.SourceRoot).Msg("No wallpaper found")
		return report
	}
	report.Selected = selected
	installed := filepath.Join(opts.Dest, filepath.Base(selected))

	if opts.DryRun {
		logger.Info().Str("wallpaper", selected).Str("dest", installed).Msg("Would install wallpaper")
		return report
	}

	if err := installWallpaperFile(fs, selected, installed); err != nil {
		logging.Warning(logger, WarnWallpaperApplyFailed).Err(err).Msg("Cannot install wallpaper")
		report.Failed = true
		return report
	}
	report.Installed = installed

	if getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != "" {
		if _, err := runner.Run(ctx, "feh", "--bg-fill", installed); err != nil {
			logging.Warning(logger, WarnWallpaperApplyFailed).Err(err).Msg("Cannot apply wallpaper")
			report.Failed = true
		} else {
			report.Applied = true
		}
	} else {
		logger.Debug().Msg("No display server, wallpaper will apply on next login")
	}

	if err := writeScript(fs, opts.Script, ReapplyScript(installed)); err != nil {
		logger.Warn().Err(err).Str("script", opts.Script).Msg("Cannot write wallpaper script")
	} else {
		report.Script = opts.Script
	}

	logger.Info().Str("wallpaper", installed).Bool("applied", report.Applied).Msg("Wallpaper installed")
	return report
}

func installWallpaperFile(fs types.FS, src, dst string) error {
	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dst))
	}
	return CopyFile(fs, src, dst, 0644)
}

func writeScript(fs types.FS, path string, content []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := fs.WriteFile(path, content, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	// WriteFile keeps the mode of an existing file
	if err := fs.Chmod(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to mark %s executable", path)
	}
	return nil
}
