package group

import (
	"context"
	"testing"

	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/keymanager"
	"github.com/stretchr/testify/require"
)

// member is one participant with a key manager and a group registry.
type member struct {
	keys   *keymanager.KeyManager
	groups *Manager
}

func (m member) identity() interfaces.Identity {
	return m.keys.Identity()
}

func (m member) proof(t *testing.T) keymanager.IdentityProof {
	t.Helper()
	p, err := m.keys.ProduceIdentityProof(context.Background())
	require.NoError(t, err)
	return p
}

func newMember(t *testing.T) member {
	t.Helper()

	acct, err := account.Generate()
	require.NoError(t, err)
	km, err := keymanager.New(acct, account.Verifier{}, acct, nil)
	require.NoError(t, err)
	require.NoError(t, km.GenerateKeypair())

	return member{keys: km, groups: NewManager(km, nil, nil)}
}

func bindMutually(t *testing.T, a, b member) {
	t.Helper()
	require.NoError(t, a.keys.AddBinding(b.proof(t)))
	require.NoError(t, b.keys.AddBinding(a.proof(t)))
}

// failingCipher rejects every operation.
type failingCipher struct{ err error }

func (f failingCipher) Encrypt(plaintext, key []byte) ([]byte, error) { return nil, f.err }
func (f failingCipher) Decrypt(ciphertext, key []byte) ([]byte, error) { return nil, f.err }

// plainCipher returns its input unchanged, exposing the envelope.
type plainCipher struct{}

func (plainCipher) Encrypt(plaintext, key []byte) ([]byte, error) {
	return append([]byte(nil), plaintext...), nil
}

func (plainCipher) Decrypt(ciphertext, key []byte) ([]byte, error) {
	return append([]byte(nil), ciphertext...), nil
}
