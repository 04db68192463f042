package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureWipe(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	require.NoError(t, SecureWipe(data))
	assert.Equal(t, make([]byte, 5), data)

	assert.Error(t, SecureWipe(nil))
	assert.NotPanics(t, func() { ZeroBytes(nil) })
}

func TestWipeKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	peer, err := GenerateKeyPair()
	require.NoError(t, err)

	require.NoError(t, WipeKeyPair(kp))
	assert.Nil(t, kp.Scalar())

	_, err = kp.SharedSecret(peer.PublicKey())
	assert.Error(t, err)

	assert.Error(t, WipeKeyPair(nil))
}
