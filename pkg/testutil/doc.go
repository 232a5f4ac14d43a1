// Package testutil provides utilities for testing dotrig components.
//
// Key components:
//   - TestEnvironment: an isolated source tree and home directory under
//     t.TempDir(), with HOME and XDG variables pointed at it
//   - FakeRunner: a scripted executor.Runner that records every call
//   - Assertions for symlinks, backups and file content
//
// All tests run against the real filesystem inside temporary directories;
// symlink semantics are the thing under test, so nothing is simulated.
package testutil
