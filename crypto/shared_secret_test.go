package crypto

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeriveSharedSecret tests the core ECDH shared secret derivation functionality
func TestDeriveSharedSecret(t *testing.T) {
	alice, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	bob, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	carol, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	tests := []struct {
		name     string
		peer     []byte
		priv     *btcec.PrivateKey
		wantErr  error
		expected []byte
	}{
		{
			name:     "compressed peer key",
			peer:     bob.PubKey().SerializeCompressed(),
			priv:     alice,
			expected: btcec.GenerateSharedSecret(bob, alice.PubKey()),
		},
		{
			name:     "uncompressed peer key",
			peer:     bob.PubKey().SerializeUncompressed(),
			priv:     alice,
			expected: btcec.GenerateSharedSecret(bob, alice.PubKey()),
		},
		{
			name:    "truncated peer key",
			peer:    bob.PubKey().SerializeCompressed()[:20],
			priv:    alice,
			wantErr: errdefs.ErrMalformedInput,
		},
		{
			name:    "empty peer key",
			peer:    nil,
			priv:    alice,
			wantErr: errdefs.ErrMalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := DeriveSharedSecret(tt.peer, tt.priv)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, secret, 32)
			assert.Equal(t, tt.expected, secret)
		})
	}

	t.Run("different peers produce different secrets", func(t *testing.T) {
		withBob, err := DeriveSharedSecret(bob.PubKey().SerializeCompressed(), alice)
		require.NoError(t, err)
		withCarol, err := DeriveSharedSecret(carol.PubKey().SerializeCompressed(), alice)
		require.NoError(t, err)
		assert.NotEqual(t, withBob, withCarol)
	})

	t.Run("nil private key", func(t *testing.T) {
		_, err := DeriveSharedSecret(bob.PubKey().SerializeCompressed(), nil)
		assert.Error(t, err)
	})
}
