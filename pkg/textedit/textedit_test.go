package textedit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	marker    = "controls.conf"
	directive = "include ~/.config/i3/controls.conf"
	anchor    = "set $mod Mod4"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		result Result
	}{
		{
			name:   "insert after anchor",
			input:  "# i3 config\nset $mod Mod4\nbindsym $mod+Return exec alacritty\n",
			want:   "# i3 config\nset $mod Mod4\ninclude ~/.config/i3/controls.conf\nbindsym $mod+Return exec alacritty\n",
			result: InsertedAfterAnchor,
		},
		{
			name:   "anchor matched after trimming",
			input:  "  set $mod Mod4  \nfont pango:monospace 8\n",
			want:   "  set $mod Mod4  \ninclude ~/.config/i3/controls.conf\nfont pango:monospace 8\n",
			result: InsertedAfterAnchor,
		},
		{
			name:   "only the first anchor is used",
			input:  "set $mod Mod4\nset $mod Mod4\n",
			want:   "set $mod Mod4\ninclude ~/.config/i3/controls.conf\nset $mod Mod4\n",
			result: InsertedAfterAnchor,
		},
		{
			name:   "append without anchor",
			input:  "set $mod Mod1\n",
			want:   "set $mod Mod1\ninclude ~/.config/i3/controls.conf\n",
			result: Appended,
		},
		{
			name:   "append adds missing final newline",
			input:  "font pango:monospace 8",
			want:   "font pango:monospace 8\ninclude ~/.config/i3/controls.conf\n",
			result: Appended,
		},
		{
			name:   "marker anywhere in a line is enough",
			input:  "# include ~/dotfiles/controls.conf disabled\n",
			want:   "# include ~/dotfiles/controls.conf disabled\n",
			result: Present,
		},
		{
			name:   "empty file",
			input:  "",
			want:   "include ~/.config/i3/controls.conf\n",
			result: Appended,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse([]byte(tt.input))
			assert.Equal(t, tt.result, Apply(doc, marker, directive, anchor))
			assert.Equal(t, tt.want, string(doc.Bytes()))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, in := range []string{"a\nb\n", "a\nb", "a\n\nb\n\n", "\n\n"} {
		assert.Equal(t, in, string(Parse([]byte(in)).Bytes()), "%q", in)
	}
}

func TestEnsureDirectiveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("set $mod Mod4\nbar {\n}\n"), 0600))
	fs := filesystem.NewOS()

	first, err := EnsureDirective(fs, path, marker, directive, anchor, false)
	require.NoError(t, err)
	assert.True(t, first.Changed())

	second, err := EnsureDirective(fs, path, marker, directive, anchor, false)
	require.NoError(t, err)
	assert.Equal(t, Present, second)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), directive))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "permissions are kept")
}

func TestEnsureDirectiveMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	res, err := EnsureDirective(filesystem.NewOS(), path, marker, directive, anchor, false)
	require.NoError(t, err)
	assert.Equal(t, MissingFile, res)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureDirectiveDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("set $mod Mod4\n"), 0644))

	res, err := EnsureDirective(filesystem.NewOS(), path, marker, directive, anchor, true)
	require.NoError(t, err)
	assert.Equal(t, InsertedAfterAnchor, res)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "set $mod Mod4\n", string(content))
}
