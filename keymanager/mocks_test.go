package keymanager

import (
	"context"
	"errors"
	"testing"

	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/stretchr/testify/require"
)

var errSignerUnavailable = errors.New("signer unavailable")

// failingSigner wraps an account but refuses to sign.
type failingSigner struct {
	*account.Account
}

func (f failingSigner) Sign(ctx context.Context, msg []byte) ([]byte, error) {
	return nil, errSignerUnavailable
}

// rejectingVerifier never accepts a signature.
type rejectingVerifier struct{}

func (rejectingVerifier) Verify(msg, sig []byte, identity interfaces.Identity) bool {
	return false
}

// recordingPersonal passes data through unchanged and records calls.
type recordingPersonal struct {
	calls []interfaces.Identity
	err   error
}

func (r *recordingPersonal) EncryptPersonal(ctx context.Context, data []byte, id interfaces.Identity) ([]byte, error) {
	r.calls = append(r.calls, id)
	if r.err != nil {
		return nil, r.err
	}
	return append([]byte("sealed:"), data...), nil
}

func (r *recordingPersonal) DecryptPersonal(ctx context.Context, ct []byte, id interfaces.Identity) ([]byte, error) {
	r.calls = append(r.calls, id)
	if r.err != nil {
		return nil, r.err
	}
	return ct[len("sealed:"):], nil
}

// newParticipant builds a KeyManager backed by a fresh account with a
// generated exchange keypair.
func newParticipant(t *testing.T) (*KeyManager, *account.Account) {
	t.Helper()

	acct, err := account.Generate()
	require.NoError(t, err)

	km, err := New(acct, account.Verifier{}, acct, nil)
	require.NoError(t, err)
	require.NoError(t, km.GenerateKeypair())
	return km, acct
}

// bindMutually exchanges identity proofs between a and b.
func bindMutually(t *testing.T, a, b *KeyManager) {
	t.Helper()
	ctx := context.Background()

	pa, err := a.ProduceIdentityProof(ctx)
	require.NoError(t, err)
	pb, err := b.ProduceIdentityProof(ctx)
	require.NoError(t, err)

	require.NoError(t, a.AddBinding(pb))
	require.NoError(t, b.AddBinding(pa))
}
