package privilege

import (
	"fmt"
	"os/user"
	"testing"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeResolver(env map[string]string, users ...*user.User) *Resolver {
	byName := make(map[string]*user.User)
	for _, u := range users {
		byName[u.Username] = u
	}
	return &Resolver{
		Getenv: func(k string) string { return env[k] },
		Lookup: func(name string) (*user.User, error) {
			if u, ok := byName[name]; ok {
				return u, nil
			}
			return nil, user.UnknownUserError(name)
		},
		Current: func() (*user.User, error) {
			return &user.User{Username: "self", Uid: "1500", Gid: "1500", HomeDir: "/home/self"}, nil
		},
	}
}

var alice = &user.User{Username: "alice", Uid: "1000", Gid: "100", HomeDir: "/home/alice"}

func TestResolveInvoker(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		override string
		elevated bool
		want     types.Identity
		fatal    bool
	}{
		{
			name:     "SUDO_USER when elevated",
			env:      map[string]string{EnvSudoUser: "alice"},
			elevated: true,
			want:     types.Identity{Username: "alice", UID: 1000, GID: 100, Home: "/home/alice"},
		},
		{
			name:     "override wins over SUDO_USER",
			env:      map[string]string{EnvSudoUser: "nobody-here"},
			override: "alice",
			elevated: true,
			want:     types.Identity{Username: "alice", UID: 1000, GID: 100, Home: "/home/alice"},
		},
		{
			name:     "missing SUDO_USER when elevated is fatal",
			env:      map[string]string{},
			elevated: true,
			fatal:    true,
		},
		{
			name:     "unknown user is fatal",
			env:      map[string]string{EnvSudoUser: "ghost"},
			elevated: true,
			fatal:    true,
		},
		{
			name:     "root as invoker is fatal",
			env:      map[string]string{EnvSudoUser: "root"},
			elevated: true,
			fatal:    true,
		},
		{
			name: "unprivileged falls back to current user",
			env:  map[string]string{},
			want: types.Identity{Username: "self", UID: 1500, GID: 1500, Home: "/home/self"},
		},
	}

	root := &user.User{Username: "root", Uid: "0", Gid: "0", HomeDir: "/root"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fakeResolver(tt.env, alice, root)
			got, err := r.ResolveInvoker(tt.override, tt.elevated)
			if tt.fatal {
				require.Error(t, err)
				assert.True(t, errors.IsFatal(err), "expected fatal error, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveInvokerRejectsMalformedAccount(t *testing.T) {
	broken := &user.User{Username: "bob", Uid: "x", Gid: "100", HomeDir: "/home/bob"}
	homeless := &user.User{Username: "carol", Uid: "1001", Gid: "100"}

	for _, u := range []*user.User{broken, homeless} {
		t.Run(u.Username, func(t *testing.T) {
			r := fakeResolver(map[string]string{EnvSudoUser: u.Username}, u)
			_, err := r.ResolveInvoker("", true)
			require.Error(t, err)
			assert.Equal(t, errors.ErrConfiguration, errors.GetErrorCode(err), fmt.Sprint(err))
		})
	}
}

func TestNewResolverUsesProcessEnvironment(t *testing.T) {
	t.Setenv(EnvSudoUser, "")
	id, err := NewResolver().ResolveInvoker("", false)
	require.NoError(t, err)
	assert.NotEmpty(t, id.Username)
	assert.NotEmpty(t, id.Home)
}

func TestCurrentUserFollowsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvSudoUser, "")
	id, err := NewResolver().ResolveInvoker("", false)
	require.NoError(t, err)
	assert.Equal(t, home, id.Home)
}
