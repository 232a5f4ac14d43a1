package provision

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/assets"
	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/fragment"
	"github.com/arthur-debert/dotrig/pkg/hardware"
	"github.com/arthur-debert/dotrig/pkg/linker"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/packages"
	"github.com/arthur-debert/dotrig/pkg/paths"
	"github.com/arthur-debert/dotrig/pkg/textedit"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/rs/zerolog"
)

// Stage names, in execution order
const (
	StagePackages = "Packages"
	StageHardware = "Hardware"
	StageLinks    = "Links"
	StageAssets   = "Fonts & wallpaper"
)

// Deps are the collaborators a run talks to.
type Deps struct {
	// FS is the unowned base filesystem
	FS types.FS
	// Runner runs system commands with the process's own privileges
	Runner executor.Runner
	// Installer runs package installs. Nil uses Runner.
	Installer executor.Runner
	// UserRunner runs commands as the invoking user
	UserRunner executor.Runner
	// Prober probes hardware. Nil uses a SystemProber over Runner and FS.
	Prober hardware.Prober
	// Progress shows package progress. May be nil.
	Progress packages.Progress
	// OnStage is called as each stage starts. May be nil.
	OnStage func(name string)
	// OSRelease overrides /etc/os-release
	OSRelease string
	// Getenv overrides os.Getenv for display detection
	Getenv func(string) string
}

// RunOptions select what a run does.
type RunOptions struct {
	DryRun       bool
	SkipPackages bool
}

// Run executes stages 2 to 4 for plan. It does not fail: every problem is
// logged and reflected in the Report.
func Run(ctx context.Context, plan *Plan, deps Deps, opts RunOptions) *Report {
	logger := logging.GetLogger("provision")
	done := logging.LogOperationStart(logger, "provision")
	defer done()

	report := &Report{
		Identity: plan.Identity,
		Paths:    plan.Paths,
		DryRun:   opts.DryRun,
	}
	owned := filesystem.NewOwned(deps.FS, plan.Identity, plan.Elevated)

	stage := func(name string) {
		logger.Debug().Str("stage", name).Msg("Stage started")
		if deps.OnStage != nil {
			deps.OnStage(name)
		}
	}

	if !opts.SkipPackages {
		stage(StagePackages)
		report.Packages = provisionPackages(ctx, plan, deps, opts, logger)
	}

	stage(StageHardware)
	prober := deps.Prober
	if prober == nil {
		prober = hardware.NewSystemProber(deps.Runner, deps.FS, plan.Config.Hardware.BacklightDir)
	}
	report.Hardware = hardware.Detect(ctx, prober)
	report.Fragment = plan.Paths.FragmentPath
	report.FragmentWritten = writeFragment(owned, plan, report.Hardware, opts.DryRun, logger)

	stage(StageLinks)
	specs, err := plan.LinkSpecs(deps.FS)
	if err != nil {
		logger.Warn().Err(err).Msg("Scripts skipped")
	}
	report.Links = linker.New(owned, opts.DryRun).ConvergeAll(specs)

	wm := plan.Config.WM
	directive := paths.ExpandDirective(wm.Directive, plan.Paths)
	report.Include, err = textedit.EnsureDirective(owned, plan.Paths.WMConfigFile, wm.Marker, directive, wm.Anchor, opts.DryRun)
	switch {
	case err != nil:
		logging.Warning(logger, textedit.WarnIncludeFailed).Err(err).Msg("Cannot add include directive")
	case report.Include == textedit.MissingFile:
		logging.Warning(logger, textedit.WarnIncludeFailed).
			Str("path", plan.Paths.WMConfigFile).
			Msg("Window manager config not found, include directive not added")
	}

	stage(StageAssets)
	fontSrc, fontDst, fontconfigPath := plan.fontDirs()
	report.Fonts = assets.InstallFonts(ctx, owned, deps.UserRunner, assets.FontOptions{
		Source:     fontSrc,
		Dest:       fontDst,
		Fontconfig: fontconfigPath,
		DryRun:     opts.DryRun,
	})

	wpDst, wpScript := plan.wallpaperDirs()
	report.Wallpaper = assets.InstallWallpaper(ctx, owned, deps.UserRunner, assets.WallpaperOptions{
		SourceRoot: plan.Paths.SourceRoot,
		Subdir:     plan.Config.Wallpaper.Source,
		Dest:       wpDst,
		Script:     wpScript,
		Extensions: plan.Config.Wallpaper.Extensions,
		DryRun:     opts.DryRun,
		Getenv:     deps.Getenv,
	})

	logger.Info().
		Int("links", len(report.Links)).
		Int("mutations", report.Mutations()).
		Strs("warnings", report.Warnings()).
		Msg("Provisioning finished")
	return report
}

func provisionPackages(ctx context.Context, plan *Plan, deps Deps, opts RunOptions, logger zerolog.Logger) *packages.Report {
	osRelease := deps.OSRelease
	if osRelease == "" {
		osRelease = packages.OSReleasePath
	}
	name, err := packages.DetectManagerName(plan.Config.Packages.Manager, osRelease, deps.Runner)
	if err != nil {
		logging.Warning(logger, packages.WarnPackageFailed).Err(err).Msg("No package manager, skipping packages")
		return nil
	}

	catalog := plan.Config.Catalog()
	if opts.DryRun {
		logger.Info().Str("manager", name).Int("packages", len(catalog.Packages)).Msg("Would provision packages")
		return &packages.Report{Manager: name}
	}

	installer := deps.Installer
	if installer == nil {
		installer = deps.Runner
	}
	manager, err := packages.NewManager(name, deps.Runner, installer)
	if err != nil {
		logging.Warning(logger, packages.WarnPackageFailed).Err(err).Msg("Cannot drive package manager, skipping packages")
		return nil
	}
	return packages.NewProvisioner(manager, deps.Runner, deps.Progress).Provision(ctx, catalog)
}

func writeFragment(fs types.FS, plan *Plan, profile types.HardwareProfile, dryRun bool, logger zerolog.Logger) bool {
	frag, err := fragment.Generate(profile, plan.Paths.FragmentPath, fragment.Options{
		StatusRefresh: plan.Config.WM.StatusRefresh,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot render control bindings")
		return false
	}
	if dryRun {
		logger.Info().Str("path", frag.Path).Msg("Would write control bindings")
		return false
	}
	if err := fragment.Write(fs, frag); err != nil {
		logger.Warn().Err(err).Msg("Cannot write control bindings")
		return false
	}
	return true
}
