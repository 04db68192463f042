package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndLoad(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	s, err := Open(home, []byte("pass"))
	require.NoError(t, err)
	assert.False(t, s.Initialized())

	acct, u, err := s.Init(ctx, nil)
	require.NoError(t, err)
	_, err = u.Groups().CreateGroup("team")
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(ctx, u))
	require.NoError(t, s.Close())

	reopened, err := Open(home, []byte("pass"))
	require.NoError(t, err)
	defer reopened.Close()

	loadedAcct, loaded, err := reopened.Load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, acct.Identity(), loadedAcct.Identity())
	assert.Equal(t, u.PublicKey(), loaded.PublicKey())
	assert.Equal(t, []string{"team"}, loaded.Groups().IDs())
}

func TestInitTwiceFails(t *testing.T) {
	s, err := Open(t.TempDir(), []byte("pass"))
	require.NoError(t, err)
	defer s.Close()

	_, _, err = s.Init(context.Background(), nil)
	require.NoError(t, err)
	_, _, err = s.Init(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestImportExistingAccount(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir(), []byte("pass"))
	require.NoError(t, err)
	defer s.Close()

	acct, err := account.FromHex("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	require.NoError(t, err)
	_, err = s.Import(ctx, acct, nil)
	require.NoError(t, err)

	loaded, err := s.LoadAccount()
	require.NoError(t, err)
	assert.Equal(t, interfaces.Identity("0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"), loaded.Identity())
}

func TestLoadUninitialized(t *testing.T) {
	s, err := Open(t.TempDir(), []byte("pass"))
	require.NoError(t, err)
	defer s.Close()

	_, _, err = s.Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestWrongPassphrase(t *testing.T) {
	home := t.TempDir()
	s, err := Open(home, []byte("right"))
	require.NoError(t, err)
	_, _, err = s.Init(context.Background(), nil)
	require.NoError(t, err)
	s.Close()

	wrong, err := Open(home, []byte("wrong"))
	require.NoError(t, err)
	defer wrong.Close()

	_, err = wrong.LoadAccount()
	assert.ErrorIs(t, err, errdefs.ErrCipherFailure)
}

func TestChangePassphrase(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	s, err := Open(home, []byte("old"))
	require.NoError(t, err)
	acct, _, err := s.Init(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, s.ChangePassphrase([]byte("new")))
	s.Close()

	old, err := Open(home, []byte("old"))
	require.NoError(t, err)
	_, err = old.LoadAccount()
	assert.Error(t, err)
	old.Close()

	s, err = Open(home, []byte("new"))
	require.NoError(t, err)
	defer s.Close()
	got, _, err := s.Load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, acct.Identity(), got.Identity())
}

func TestStateIsNotPlaintext(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	s, err := Open(home, []byte("pass"))
	require.NoError(t, err)
	defer s.Close()
	_, u, err := s.Init(ctx, nil)
	require.NoError(t, err)
	_, err = u.Groups().CreateGroup("very-visible-group-name")
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(ctx, u))

	raw, err := os.ReadFile(filepath.Join(home, StateEntry))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "very-visible-group-name")
}

func TestOpenRequiresHome(t *testing.T) {
	_, err := Open("", []byte("pass"))
	assert.Error(t, err)
}
