package packages

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/rs/zerolog"
)

// WarnPackageFailed marks a package that could not be installed
const WarnPackageFailed = "package-failed"

// Progress receives one step per package handled.
type Progress interface {
	Start(total int)
	Step(name string)
	Stop()
}

type noProgress struct{}

func (noProgress) Start(int)   {}
func (noProgress) Step(string) {}
func (noProgress) Stop()       {}

// Report summarises a provisioning pass.
type Report struct {
	Manager string                `json:"manager" yaml:"manager"`
	Audio   types.AudioDecision   `json:"audio" yaml:"audio"`
	Results []types.PackageResult `json:"results" yaml:"results"`
}

// Count returns how many results have the given outcome.
func (r *Report) Count(outcome types.PackageOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Provisioner installs packages with a Manager and probes the system with a
// Runner.
type Provisioner struct {
	manager  Manager
	runner   executor.Runner
	progress Progress
	logger   zerolog.Logger
}

// NewProvisioner creates a Provisioner. progress may be nil.
func NewProvisioner(manager Manager, runner executor.Runner, progress Progress) *Provisioner {
	if progress == nil {
		progress = noProgress{}
	}
	return &Provisioner{
		manager:  manager,
		runner:   runner,
		progress: progress,
		logger:   logging.GetLogger("packages.provisioner"),
	}
}

// EnsureInstalled installs pkg unless it is already present. A query error
// is logged and the install attempted anyway.
func (p *Provisioner) EnsureInstalled(ctx context.Context, pkg string) types.PackageResult {
	installed, err := p.manager.IsInstalled(ctx, pkg)
	if err != nil {
		p.logger.Warn().Err(err).Str("package", pkg).Msg("Could not query package, installing anyway")
	} else if installed {
		p.logger.Debug().Str("package", pkg).Msg("Package already present")
		return types.PackageResult{Name: pkg, Outcome: types.PackageAlreadyPresent}
	}

	if err := p.manager.Install(ctx, pkg); err != nil {
		logging.Warning(p.logger, WarnPackageFailed).Err(err).Str("package", pkg).Msg("Package install failed, skipping")
		return types.PackageResult{Name: pkg, Outcome: types.PackageFailedSkipped, Err: err}
	}

	p.logger.Info().Str("package", pkg).Msg("Package installed")
	return types.PackageResult{Name: pkg, Outcome: types.PackageInstalled}
}

// SelectAudio decides which audio stack, if any, to install.
func (p *Provisioner) SelectAudio(ctx context.Context, stacks types.AudioStacks) types.AudioDecision {
	if stacks.ServerProcess != "" {
		if _, err := p.runner.Run(ctx, "pgrep", "-x", stacks.ServerProcess); err == nil {
			p.logger.Debug().Str("process", stacks.ServerProcess).Msg("Media server running, using modern audio stack")
			return types.AudioModern
		}
	}
	if stacks.ControlClient != "" {
		if _, err := p.runner.LookPath(stacks.ControlClient); err != nil {
			p.logger.Debug().Str("client", stacks.ControlClient).Msg("Audio control client missing, using legacy audio stack")
			return types.AudioLegacy
		}
	}
	p.logger.Debug().Msg("Audio already satisfied")
	return types.AudioSatisfied
}

// Provision ensures every catalog package and then the selected audio
// stack. It never fails; per-package failures are in the report.
// Catalog names are translated for the manager first.
func (p *Provisioner) Provision(ctx context.Context, catalog types.PackageCatalog) *Report {
	report := &Report{Manager: p.manager.Name()}
	catalog = catalog.For(p.manager.Name())
	report.Audio = p.SelectAudio(ctx, catalog.Audio)

	pkgs := append([]string(nil), catalog.Packages...)
	switch report.Audio {
	case types.AudioModern:
		pkgs = append(pkgs, catalog.Audio.Modern...)
	case types.AudioLegacy:
		pkgs = append(pkgs, catalog.Audio.Legacy...)
	}

	done := logging.LogOperationStart(p.logger, "provision packages")
	defer done()

	p.progress.Start(len(pkgs))
	defer p.progress.Stop()

	for _, pkg := range pkgs {
		if ctx.Err() != nil {
			p.logger.Warn().Err(ctx.Err()).Msg("Package provisioning interrupted")
			break
		}
		p.progress.Step(pkg)
		report.Results = append(report.Results, p.EnsureInstalled(ctx, pkg))
	}
	return report
}
