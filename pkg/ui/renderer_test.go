package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/dotrig/pkg/assets"
	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/packages"
	"github.com/arthur-debert/dotrig/pkg/provision"
	"github.com/arthur-debert/dotrig/pkg/textedit"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/arthur-debert/dotrig/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var profile = types.HardwareProfile{Chipset: types.ChipsetIntel, Device: "intel_backlight", Method: types.MethodBrightnessctl}

func sampleReport() *provision.Report {
	return &provision.Report{
		Identity: types.Identity{Username: "alice", UID: 1000, GID: 1000, Home: "/home/alice"},
		Paths:    types.ResolvedPaths{Home: "/home/alice", SourceRoot: "/home/alice/dotfiles"},
		Packages: &packages.Report{
			Manager: "pacman",
			Audio:   types.AudioModern,
			Results: []types.PackageResult{
				{Name: "git", Outcome: types.PackageAlreadyPresent},
				{Name: "feh", Outcome: types.PackageFailedSkipped},
			},
		},
		Hardware:        profile,
		Fragment:        "/home/alice/dotfiles/config/i3/controls.conf",
		FragmentWritten: true,
		Links: []types.LinkResult{
			{
				Spec:    types.LinkSpec{Source: "/home/alice/dotfiles/config/i3", Destination: "/home/alice/.config/i3", Kind: types.LinkDirectory},
				Outcome: types.OutcomeApplied,
				Reason:  types.ReasonReplaced,
				Backup:  "/home/alice/.config/i3.backup",
			},
			{
				Spec:    types.LinkSpec{Source: "/home/alice/dotfiles/shell/zshrc", Destination: "/home/alice/.zshrc", Kind: types.LinkFile},
				Outcome: types.OutcomeSkipped,
				Reason:  types.ReasonNoSource,
			},
		},
		Include:   textedit.InsertedAfterAnchor,
		Fonts:     assets.FontReport{Skipped: true},
		Wallpaper: assets.WallpaperReport{Selected: "/home/alice/dotfiles/wallpapers/bg.png", Script: "/home/alice/.wallpaper.sh"},
	}
}

func render(t *testing.T, format ui.Format, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewRenderer(format, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(v))
	return buf.String()
}

func TestTextReport(t *testing.T) {
	out := render(t, ui.FormatText, sampleReport())

	assert.Contains(t, out, "alice /home/alice")
	assert.Contains(t, out, "0 installed, 1 already present, 1 failed")
	assert.Contains(t, out, "failed: feh")
	assert.Contains(t, out, "~/.config/i3 -> /home/alice/dotfiles/config/i3 (backup i3.backup)")
	assert.NotContains(t, out, ".zshrc", "links without a source are only counted")
	assert.Contains(t, out, "1 without a source")
	assert.Contains(t, out, "bg.png")
	assert.Contains(t, out, "package-failed")
	assert.NotContains(t, out, "\x1b[", "plain text has no escape codes")
}

func TestTextProfile(t *testing.T) {
	out := render(t, ui.FormatText, types.HardwareProfile{Chipset: types.ChipsetUnknown, Method: types.MethodBrightnessctl})
	assert.Equal(t, "chipset    unknown\nbacklight  none\nmethod     brightnessctl\n", out)
}

func TestTextStatus(t *testing.T) {
	out := render(t, ui.FormatText, []provision.StatusEntry{
		{Spec: types.LinkSpec{Destination: "/home/alice/.bashrc", Kind: types.LinkFile}, SourceExists: true, State: types.StateSymlinkCorrect},
		{Spec: types.LinkSpec{Destination: "/home/alice/.zshrc", Kind: types.LinkFile}, State: types.StateAbsent},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "symlink-correct")
	assert.Contains(t, lines[1], "no source")
}

func TestJSONProfile(t *testing.T) {
	out := render(t, ui.FormatJSON, profile)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"chipset": "intel", "device": "intel_backlight", "method": "brightnessctl"}, got)
}

func TestYAMLReport(t *testing.T) {
	out := render(t, ui.FormatYAML, sampleReport())

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "inserted", got["include"])
	hw := got["hardware"].(map[string]interface{})
	assert.Equal(t, "intel", hw["chipset"])
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderError(errors.New(errors.ErrConfiguration, "no user")))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "CONFIGURATION", got["code"])

	buf.Reset()
	r, err = ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderError(errors.New(errors.ErrConfiguration, "no user")))
	assert.Equal(t, "error: [CONFIGURATION] no user\n", buf.String())
}

func TestMarkdownPlain(t *testing.T) {
	assert.Equal(t, "# Title\n", ui.RenderMarkdown("# Title\n", false, 0))
	assert.NotEmpty(t, ui.RenderMarkdown("# Title\n", true, 60))
}

func TestStyleFallback(t *testing.T) {
	assert.Equal(t, "x", ui.Style("DoesNotExist").Render("x"))
	require.NoError(t, ui.LoadStyles([]byte("styles:\n  Header:\n    bold: true\n")))
	require.Error(t, ui.LoadStyles([]byte("styles: [")))
}
