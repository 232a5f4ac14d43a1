package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotrig/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunnerScriptedResponses(t *testing.T) {
	r := NewFakeRunner().
		On("pacman -Q feh", FakeResponse{Output: "feh 3.10\n"}).
		On("pacman -Q rofi", FakeResponse{ExitCode: 1}).
		WithBinary("pactl")

	out, err := r.Run(context.Background(), "pacman", "-Q", "feh")
	require.NoError(t, err)
	assert.Equal(t, "feh 3.10\n", string(out))

	_, err = r.Run(context.Background(), "pacman", "-Q", "rofi")
	code, ok := executor.ExitCode(err)
	assert.True(t, ok)
	assert.Equal(t, 1, code)

	_, err = r.LookPath("pactl")
	assert.NoError(t, err)
	_, err = r.LookPath("xbacklight")
	assert.Error(t, err)

	assert.True(t, r.Called("pacman -Q rofi"))
	assert.Len(t, r.CallsWithPrefix("pacman -Q"), 2)
}

func TestTestEnvironmentIsolatesHome(t *testing.T) {
	env := NewTestEnvironment(t)

	assert.Equal(t, env.HomeDir, os.Getenv("HOME"))
	assert.Equal(t, env.HomeDir, env.Identity.Home)

	path := env.WriteSource("config/i3/config", "set $mod Mod4\n")
	AssertFileContent(t, path, "set $mod Mod4\n")

	link := env.HomePath("i3")
	require.NoError(t, os.Symlink(filepath.Dir(path), link))
	AssertSymlink(t, link, filepath.Dir(path))
	AssertNotExists(t, env.HomePath("missing"))
}
