package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/rs/zerolog"
)

// Runner executes external commands.
type Runner interface {
	// Run executes name with args and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports where name would be found on PATH.
	LookPath(name string) (string, error)
}

// CommandExecutor handles execution of external commands
type CommandExecutor struct {
	logger     zerolog.Logger
	credential *syscall.Credential
	env        []string
	passOutput bool
}

// NewCommandExecutor creates a new command executor running as the current
// process identity.
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{
		logger: logging.GetLogger("executor.command"),
	}
}

// WithPassthrough makes children write stdout/stderr straight to the
// terminal in addition to being captured. Package installs use this so the
// user sees the package manager's progress.
func (e *CommandExecutor) WithPassthrough() *CommandExecutor {
	clone := *e
	clone.passOutput = true
	return &clone
}

// AsUser returns an executor whose children run as identity. When elevated
// is false the process already is that user and only the environment is
// adjusted.
func (e *CommandExecutor) AsUser(identity types.Identity, elevated bool) *CommandExecutor {
	clone := *e
	clone.logger = e.logger.With().Str("runAs", identity.Username).Logger()
	clone.env = userEnv(os.Environ(), identity)
	if elevated {
		clone.credential = &syscall.Credential{
			Uid: uint32(identity.UID),
			Gid: uint32(identity.GID),
		}
	}
	return &clone
}

// LookPath implements Runner.
func (e *CommandExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner.
func (e *CommandExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "run requires a command")
	}

	logging.LogCommand(name, args)

	// Create command with context
	cmd := exec.CommandContext(ctx, name, args...)
	if e.env != nil {
		cmd.Env = e.env
	}
	if e.credential != nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{Credential: e.credential}
	}

	// Capture output, echoing it too when asked
	var stdout, stderr bytes.Buffer
	if e.passOutput {
		cmd.Stdout = newTee(&stdout, os.Stdout)
		cmd.Stderr = newTee(&stderr, os.Stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	// Execute command
	err := cmd.Run()

	// Log stderr if present
	if stderr.Len() > 0 {
		e.logger.Debug().
			Str("command", name).
			Str("output", stderr.String()).
			Msg("Command stderr")
	}

	if err != nil {
		e.logger.Debug().
			Err(err).
			Str("command", name).
			Strs("args", args).
			Msg("Command execution failed")

		return stdout.Bytes(), errors.Wrapf(err, errors.ErrCommandExecute,
			"failed to execute command: %s", commandLine(name, args)).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	e.logger.Trace().
		Str("command", name).
		Int("stdoutLen", stdout.Len()).
		Msg("Command executed successfully")

	return stdout.Bytes(), nil
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the exit status carried by err, if the command ran and
// exited non-zero.
func ExitCode(err error) (int, bool) {
	var ec exitCoder
	if stderrors.As(err, &ec) {
		return ec.ExitCode(), true
	}
	return 0, false
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return fmt.Sprintf("%s %s", name, strings.Join(args, " "))
}

// userEnv rewrites the identity-bearing variables so that children see the
// invoking user's home rather than root's.
func userEnv(base []string, identity types.Identity) []string {
	overrides := map[string]string{
		"HOME":    identity.Home,
		"USER":    identity.Username,
		"LOGNAME": identity.Username,
	}
	env := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		env = append(env, kv)
	}
	for _, key := range []string{"HOME", "USER", "LOGNAME"} {
		env = append(env, key+"="+overrides[key])
	}
	return env
}

type tee struct {
	captured *bytes.Buffer
	out      *os.File
}

func newTee(captured *bytes.Buffer, out *os.File) *tee {
	return &tee{captured: captured, out: out}
}

func (t *tee) Write(p []byte) (int, error) {
	t.captured.Write(p)
	return t.out.Write(p)
}

var _ Runner = (*CommandExecutor)(nil)
