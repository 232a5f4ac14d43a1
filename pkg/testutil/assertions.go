package testutil

import (
	"os"
	"testing"
)

// AssertSymlink checks that path is a symbolic link whose target is want.
func AssertSymlink(t *testing.T, path, want string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected symlink at %s: %v", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Expected %s to be a symlink, got mode %v", path, info.Mode())
		return
	}
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("Failed to read link %s: %v", path, err)
		return
	}
	if got != want {
		t.Errorf("Symlink %s points to %s, want %s", path, got, want)
	}
}

// AssertFileContent checks that path is a regular file containing want.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected file at %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Expected %s to be a regular file, got mode %v", path, info.Mode())
		return
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(got) != want {
		t.Errorf("Content of %s = %q, want %q", path, string(got), want)
	}
}

// AssertNotExists checks that nothing exists at path, not even a dangling link.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected %s not to exist", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("Unexpected error checking %s: %v", path, err)
	}
}
