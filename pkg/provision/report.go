package provision

import (
	"github.com/arthur-debert/dotrig/pkg/assets"
	"github.com/arthur-debert/dotrig/pkg/hardware"
	"github.com/arthur-debert/dotrig/pkg/linker"
	"github.com/arthur-debert/dotrig/pkg/packages"
	"github.com/arthur-debert/dotrig/pkg/textedit"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Report records the outcome of every stage of a run.
type Report struct {
	Identity types.Identity      `json:"identity" yaml:"identity"`
	Paths    types.ResolvedPaths `json:"paths" yaml:"paths"`
	DryRun   bool                `json:"dry_run" yaml:"dry_run"`

	// Packages is nil when package provisioning did not run
	Packages *packages.Report `json:"packages,omitempty" yaml:"packages,omitempty"`

	Hardware        types.HardwareProfile `json:"hardware" yaml:"hardware"`
	Fragment        string                `json:"fragment" yaml:"fragment"`
	FragmentWritten bool                  `json:"fragment_written" yaml:"fragment_written"`

	Links     []types.LinkResult     `json:"links" yaml:"links"`
	Include   textedit.Result        `json:"include" yaml:"include"`
	Fonts     assets.FontReport      `json:"fonts" yaml:"fonts"`
	Wallpaper assets.WallpaperReport `json:"wallpaper" yaml:"wallpaper"`
}

// LinkCounts tallies link results by reason.
func (r *Report) LinkCounts() map[types.Reason]int {
	counts := make(map[types.Reason]int)
	for _, l := range r.Links {
		counts[l.Reason]++
	}
	return counts
}

// Mutations counts link results that changed the filesystem.
func (r *Report) Mutations() int {
	n := 0
	for _, l := range r.Links {
		if l.Mutated() {
			n++
		}
	}
	return n
}

// Warnings lists the recoverable conditions hit during the run, one marker
// per occurrence, in stage order.
func (r *Report) Warnings() []string {
	var out []string
	if r.Packages != nil {
		for _, p := range r.Packages.Results {
			if p.Outcome == types.PackageFailedSkipped {
				out = append(out, packages.WarnPackageFailed)
			}
		}
	}
	if r.Hardware.Chipset == types.ChipsetUnknown {
		out = append(out, hardware.WarnUnknownVendor)
	}
	if !r.Hardware.HasDevice() {
		out = append(out, hardware.WarnNoBacklight)
	}
	for _, l := range r.Links {
		if l.Reason == types.ReasonFailed {
			out = append(out, linker.WarnLinkFailed)
		}
	}
	if r.Include == textedit.MissingFile || r.Include == "" {
		out = append(out, textedit.WarnIncludeFailed)
	}
	if r.Fonts.Stats.Failed > 0 {
		out = append(out, assets.WarnFontCopyFailed)
	}
	if r.Wallpaper.Selected == "" {
		out = append(out, assets.WarnNoWallpaper)
	} else if r.Wallpaper.Failed {
		out = append(out, assets.WarnWallpaperApplyFailed)
	}
	return out
}
