package executor

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	e := NewCommandExecutor()

	out, err := e.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestRunNonZeroExit(t *testing.T) {
	e := NewCommandExecutor()

	_, err := e.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExecute))

	code, ok := ExitCode(err)
	assert.True(t, ok)
	assert.Equal(t, 3, code)
	assert.Equal(t, "oops", errors.GetErrorDetails(err)["stderr"])
}

func TestRunMissingBinaryHasNoExitCode(t *testing.T) {
	e := NewCommandExecutor()

	_, err := e.Run(context.Background(), "dotrig-definitely-not-a-binary")
	require.Error(t, err)
	_, ok := ExitCode(err)
	assert.False(t, ok)
}

func TestRunRequiresCommand(t *testing.T) {
	_, err := NewCommandExecutor().Run(context.Background(), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAsUserRewritesEnvironment(t *testing.T) {
	t.Setenv("HOME", "/root")
	identity := types.Identity{Username: "alice", UID: 1000, GID: 1000, Home: "/home/alice"}

	e := NewCommandExecutor().AsUser(identity, false)
	assert.Nil(t, e.credential, "not elevated: no credential switch")

	out, err := e.Run(context.Background(), "sh", "-c", "echo $HOME:$USER")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice:alice\n", string(out))

	elevated := NewCommandExecutor().AsUser(identity, true)
	require.NotNil(t, elevated.credential)
	assert.Equal(t, uint32(1000), elevated.credential.Uid)
	assert.Equal(t, uint32(1000), elevated.credential.Gid)
}

func TestUserEnvReplacesExistingKeys(t *testing.T) {
	env := userEnv([]string{"HOME=/root", "PATH=/usr/bin", "USER=root"},
		types.Identity{Username: "bob", Home: "/home/bob"})

	assert.Contains(t, env, "PATH=/usr/bin")
	assert.Contains(t, env, "HOME=/home/bob")
	assert.Contains(t, env, "USER=bob")
	assert.Contains(t, env, "LOGNAME=bob")
	assert.NotContains(t, env, "HOME=/root")
	assert.NotContains(t, env, "USER=root")
}
