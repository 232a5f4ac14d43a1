package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/provision"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// RenderResult implements Renderer.
func (r *textRenderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *provision.Report:
		r.writeReport(&b, v)
	case types.HardwareProfile:
		r.writeProfile(&b, v)
	case []provision.StatusEntry:
		r.writeStatus(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := fmt.Fprint(r.out, b.String())
	return err
}

func (r *textRenderer) line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", r.paint("Label", fmt.Sprintf("%-10s", label)), value)
}

func (r *textRenderer) header(b *strings.Builder, title string) {
	fmt.Fprintln(b, r.paint("Header", title))
}

func (r *textRenderer) writeProfile(b *strings.Builder, p types.HardwareProfile) {
	r.line(b, "chipset", string(p.Chipset))
	r.line(b, "backlight", p.DeviceLabel())
	r.line(b, "method", string(p.Method))
}

func (r *textRenderer) writeReport(b *strings.Builder, rep *provision.Report) {
	title := "dotrig"
	if rep.DryRun {
		title += " (dry run)"
	}
	r.header(b, title)
	r.line(b, "user", fmt.Sprintf("%s %s", rep.Identity.Username, r.paint("Path", rep.Paths.Home)))
	r.line(b, "source", r.paint("Path", rep.Paths.SourceRoot))

	if rep.Packages != nil {
		r.header(b, "Packages")
		p := rep.Packages
		r.line(b, "manager", p.Manager)
		if p.Audio != "" {
			r.line(b, "audio", string(p.Audio))
		}
		r.line(b, "result", fmt.Sprintf("%d installed, %d already present, %s",
			p.Count(types.PackageInstalled),
			p.Count(types.PackageAlreadyPresent),
			r.countPaint("Warning", p.Count(types.PackageFailedSkipped), "failed")))
		for _, res := range p.Results {
			if res.Outcome == types.PackageFailedSkipped {
				r.line(b, "", r.paint("Warning", "failed: "+res.Name))
			}
		}
	}

	r.header(b, "Hardware")
	r.writeProfile(b, rep.Hardware)
	state := "not written"
	if rep.FragmentWritten {
		state = "written"
	}
	r.line(b, "bindings", fmt.Sprintf("%s (%s)", r.paint("Path", rep.Fragment), state))

	r.header(b, "Links")
	for _, l := range rep.Links {
		if l.Reason == types.ReasonNoSource {
			continue
		}
		r.line(b, string(l.Reason), r.linkLine(rep, l))
	}
	counts := rep.LinkCounts()
	if n := counts[types.ReasonNoSource]; n > 0 {
		r.line(b, "", r.paint("Muted", fmt.Sprintf("%d without a source", n)))
	}
	r.line(b, "include", string(rep.Include))

	r.header(b, "Assets")
	if rep.Fonts.Skipped {
		r.line(b, "fonts", r.paint("Muted", "none"))
	} else {
		r.line(b, "fonts", fmt.Sprintf("%d copied", rep.Fonts.Stats.Copied))
	}
	if rep.Wallpaper.Selected == "" {
		r.line(b, "wallpaper", r.paint("Muted", "none"))
	} else {
		applied := ""
		if rep.Wallpaper.Applied {
			applied = " (applied)"
		}
		r.line(b, "wallpaper", filepath.Base(rep.Wallpaper.Selected)+applied)
	}

	if warnings := rep.Warnings(); len(warnings) > 0 {
		r.header(b, "Warnings")
		for _, w := range summarise(warnings) {
			r.line(b, "", r.paint("Warning", w))
		}
	}
}

func (r *textRenderer) linkLine(rep *provision.Report, l types.LinkResult) string {
	dest := l.Spec.Destination
	if rel, err := filepath.Rel(rep.Paths.Home, dest); err == nil && !strings.HasPrefix(rel, "..") {
		dest = "~/" + rel
	}
	s := fmt.Sprintf("%s -> %s", dest, r.paint("Path", l.Spec.Source))
	switch {
	case l.Reason == types.ReasonFailed && l.Err != nil:
		s += " " + r.paint("Error", l.Err.Error())
	case l.Backup != "":
		s += " " + r.paint("Muted", "(backup "+filepath.Base(l.Backup)+")")
	}
	if l.Reason == types.ReasonLinked || l.Reason == types.ReasonReplaced {
		s = r.paint("Success", "+") + " " + s
	}
	return s
}

func (r *textRenderer) countPaint(style string, n int, label string) string {
	s := fmt.Sprintf("%d %s", n, label)
	if n == 0 {
		return s
	}
	return r.paint(style, s)
}

func (r *textRenderer) writeStatus(b *strings.Builder, entries []provision.StatusEntry) {
	for _, e := range entries {
		state := string(e.State)
		switch {
		case !e.SourceExists:
			state = r.paint("Muted", "no source")
		case e.State == types.StateSymlinkCorrect:
			state = r.paint("Success", state)
		case e.State != types.StateAbsent:
			state = r.paint("Warning", state)
		}
		if e.Error != "" {
			state = r.paint("Error", e.Error)
		}
		fmt.Fprintf(b, "%-9s %s  %s\n", e.Spec.Kind, e.Spec.Destination, state)
	}
}

// summarise collapses repeated markers into "marker (xN)", keeping order.
func summarise(markers []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, m := range markers {
		if counts[m] == 0 {
			order = append(order, m)
		}
		counts[m]++
	}
	out := make([]string, 0, len(order))
	for _, m := range order {
		if counts[m] > 1 {
			out = append(out, fmt.Sprintf("%s (x%d)", m, counts[m]))
		} else {
			out = append(out, m)
		}
	}
	return out
}
