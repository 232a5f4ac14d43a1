package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/pterm/pterm"
)

// PackageProgress shows a pterm progress bar while packages are handled.
// It implements packages.Progress.
type PackageProgress struct {
	out io.Writer
	bar *pterm.ProgressbarPrinter
}

// NewPackageProgress returns a progress bar writing to stderr, or nil when
// stderr is not a terminal. A nil *PackageProgress is a silent no-op.
func NewPackageProgress() *PackageProgress {
	if !IsTerminal(os.Stderr) {
		return nil
	}
	return &PackageProgress{out: os.Stderr}
}

func (p *PackageProgress) Start(total int) {
	if p == nil || total == 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Packages").
		WithWriter(p.out).
		Start()
	if err != nil {
		logger := logging.GetLogger("ui")
		logger.Debug().Err(err).Msg("Progress bar unavailable")
		return
	}
	p.bar = bar
}

func (p *PackageProgress) Step(name string) {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.UpdateTitle(name)
	p.bar.Increment()
}

func (p *PackageProgress) Stop() {
	if p == nil || p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
	p.bar = nil
}

// Section prints a stage heading. Headings are only shown on terminals.
func Section(w io.Writer, title string, styled bool) {
	if !styled {
		return
	}
	fmt.Fprint(w, pterm.DefaultSection.Sprint(title))
}
