package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// FakeResponse is the scripted result of one command line.
type FakeResponse struct {
	Output   string
	ExitCode int
	Err      error
}

// ExitError mimics *exec.ExitError for scripted non-zero exits.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ExitCode returns the scripted exit status.
func (e *ExitError) ExitCode() int { return e.Code }

// FakeRunner implements executor.Runner from a table of responses keyed by
// the full command line ("pacman -Q feh"). Unknown command lines return
// Default.
type FakeRunner struct {
	mu        sync.Mutex
	Responses map[string]FakeResponse
	Default   FakeResponse
	// Binaries lists the names LookPath resolves. Missing names fail.
	Binaries map[string]bool
	Calls    []string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: make(map[string]FakeResponse),
		Binaries:  make(map[string]bool),
	}
}

// On scripts the response for a command line.
func (f *FakeRunner) On(commandLine string, resp FakeResponse) *FakeRunner {
	f.Responses[commandLine] = resp
	return f
}

// WithBinary makes LookPath find name.
func (f *FakeRunner) WithBinary(names ...string) *FakeRunner {
	for _, name := range names {
		f.Binaries[name] = true
	}
	return f
}

// Run implements executor.Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))

	f.mu.Lock()
	f.Calls = append(f.Calls, line)
	resp, ok := f.Responses[line]
	f.mu.Unlock()

	if !ok {
		resp = f.Default
	}
	if resp.Err != nil {
		return []byte(resp.Output), resp.Err
	}
	if resp.ExitCode != 0 {
		return []byte(resp.Output), &ExitError{Code: resp.ExitCode}
	}
	return []byte(resp.Output), nil
}

// LookPath implements executor.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.Binaries[name] {
		return "/usr/bin/" + name, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// Called reports whether a command line was run.
func (f *FakeRunner) Called(commandLine string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c == commandLine {
			return true
		}
	}
	return false
}

// CallsWithPrefix returns the recorded command lines starting with prefix.
func (f *FakeRunner) CallsWithPrefix(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
