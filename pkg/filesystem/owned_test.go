package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chownRecorder struct {
	calls []string
}

func (r *chownRecorder) lchown(path string, uid, gid int) error {
	r.calls = append(r.calls, path)
	return nil
}

var alice = types.Identity{Username: "alice", UID: 1000, GID: 1000, Home: "/home/alice"}

func TestNewOwnedWithoutChownReturnsBase(t *testing.T) {
	base := NewOS()
	assert.Same(t, base, NewOwned(base, alice, false))
}

func TestOwnedMkdirAllChownsOnlyCreatedDirectories(t *testing.T) {
	root := t.TempDir()
	rec := &chownRecorder{}
	fs := NewOwnedWithChown(NewOS(), alice, rec.lchown)

	target := filepath.Join(root, "a", "b", "c")
	require.NoError(t, fs.MkdirAll(target, 0755))

	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "b"),
		target,
	}, rec.calls)

	rec.calls = nil
	require.NoError(t, fs.MkdirAll(target, 0755))
	assert.Empty(t, rec.calls, "existing directories keep their owner")
}

func TestOwnedWriteFileChownsFileAndNewParents(t *testing.T) {
	root := t.TempDir()
	rec := &chownRecorder{}
	fs := NewOwnedWithChown(NewOS(), alice, rec.lchown)

	file := filepath.Join(root, "conf", "controls.conf")
	require.NoError(t, fs.WriteFile(file, []byte("bindsym"), 0644))

	assert.Equal(t, []string{filepath.Join(root, "conf"), file}, rec.calls)
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "bindsym", string(content))
}

func TestOwnedWriteFileCreatesNestedParents(t *testing.T) {
	root := t.TempDir()
	rec := &chownRecorder{}
	fs := NewOwnedWithChown(NewOS(), alice, rec.lchown)

	file := filepath.Join(root, "a", "b", "wallpaper.sh")
	require.NoError(t, fs.WriteFile(file, []byte("#!/bin/sh\n"), 0755))

	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "b"),
		file,
	}, rec.calls)
	info, err := os.Stat(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOwnedSymlinkChownsLink(t *testing.T) {
	root := t.TempDir()
	rec := &chownRecorder{}
	fs := NewOwnedWithChown(NewOS(), alice, rec.lchown)

	link := filepath.Join(root, "link")
	require.NoError(t, fs.Symlink(root, link))
	assert.Equal(t, []string{link}, rec.calls)
}

func TestOwnedChownFailureIsReported(t *testing.T) {
	root := t.TempDir()
	fs := NewOwnedWithChown(NewOS(), alice, func(string, int, int) error {
		return os.ErrPermission
	})

	err := fs.WriteFile(filepath.Join(root, "f"), []byte("x"), 0644)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}
