package assets

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/fontconfig"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// WarnFontCopyFailed marks fonts that could not be installed
const WarnFontCopyFailed = "font-copy-failed"

// FontOptions locate the font source and destinations.
type FontOptions struct {
	Source     string
	Dest       string
	Fontconfig string
	DryRun     bool
}

// FontReport summarises font installation.
type FontReport struct {
	Skipped           bool      `json:"skipped" yaml:"skipped"`
	Stats             CopyStats `json:"stats" yaml:"stats"`
	FontconfigChanged bool      `json:"fontconfig_changed" yaml:"fontconfig_changed"`
	CacheRefreshed    bool      `json:"cache_refreshed" yaml:"cache_refreshed"`
}

// InstallFonts copies the font tree, registers the destination with
// fontconfig and refreshes the font cache as the user behind runner.
func InstallFonts(ctx context.Context, fs types.FS, runner executor.Runner, opts FontOptions) FontReport {
	logger := logging.GetLogger("assets.fonts")
	var report FontReport

	if info, err := fs.Stat(opts.Source); err != nil || !info.IsDir() {
		logger.Debug().Str("source", opts.Source).Msg("No fonts to install")
		report.Skipped = true
		return report
	}

	if opts.DryRun {
		logger.Info().Str("source", opts.Source).Str("dest", opts.Dest).Msg("Would install fonts")
		return report
	}

	report.Stats = CopyTree(fs, opts.Source, opts.Dest, logger)
	if report.Stats.Failed > 0 {
		logging.Warning(logger, WarnFontCopyFailed).
			Int("failed", report.Stats.Failed).
			Int("copied", report.Stats.Copied).
			Msg("Some fonts could not be copied")
	}
	if opts.Fontconfig != "" {
		changed, err := fontconfig.EnsureDir(fs, opts.Fontconfig, opts.Dest, false)
		if err != nil {
			logger.Warn().Err(err).Msg("Cannot register font directory with fontconfig")
		}
		report.FontconfigChanged = changed
	}

	if _, err := runner.Run(ctx, "fc-cache", "-f", opts.Dest); err != nil {
		logger.Warn().Err(err).Msg("Font cache refresh failed")
	} else {
		report.CacheRefreshed = true
	}

	logger.Info().Int("copied", report.Stats.Copied).Str("dest", opts.Dest).Msg("Fonts installed")
	return report
}
