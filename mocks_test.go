package keybind

import (
	"context"
	"testing"

	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/stretchr/testify/require"
)

// plainPersonal is a personal cipher that does not encrypt, so tests can
// inspect and forge serialized state.
type plainPersonal struct{}

func (plainPersonal) EncryptPersonal(ctx context.Context, data []byte, id interfaces.Identity) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

func (plainPersonal) DecryptPersonal(ctx context.Context, ct []byte, id interfaces.Identity) ([]byte, error) {
	return append([]byte(nil), ct...), nil
}

// blockingPersonal waits for the context, like a wallet awaiting user
// confirmation that never arrives.
type blockingPersonal struct{}

func (blockingPersonal) EncryptPersonal(ctx context.Context, data []byte, id interfaces.Identity) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingPersonal) DecryptPersonal(ctx context.Context, ct []byte, id interfaces.Identity) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestUser(t *testing.T) (*User, *account.Account) {
	t.Helper()

	acct, err := account.Generate()
	require.NoError(t, err)
	u, err := NewFromAccount(acct, nil)
	require.NoError(t, err)
	return u, acct
}

func bindUsers(t *testing.T, a, b *User) {
	t.Helper()
	ctx := context.Background()

	pa, err := a.KeyManager().ProduceIdentityProof(ctx)
	require.NoError(t, err)
	pb, err := b.KeyManager().ProduceIdentityProof(ctx)
	require.NoError(t, err)

	require.NoError(t, a.KeyManager().AddBinding(pb))
	require.NoError(t, b.KeyManager().AddBinding(pa))
}
