package crypto

import (
	"fmt"

	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/limits"
	"golang.org/x/crypto/nacl/secretbox"
)

// DecryptSymmetric opens a message produced by EncryptSymmetric.
func DecryptSymmetric(ciphertext []byte, key [32]byte) ([]byte, error) {
	if err := limits.ValidateCiphertext(ciphertext); err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrMalformedInput, err)
	}

	var nonce Nonce
	copy(nonce[:], ciphertext[:limits.NonceSize])

	out, ok := secretbox.Open(nil, ciphertext[limits.NonceSize:], (*[24]byte)(&nonce), &key)
	if !ok {
		NewLogger("DecryptSymmetric").
			WithField("ciphertext_size", len(ciphertext)).
			Warn("Message authentication failed")
		return nil, fmt.Errorf("%w: message authentication failed", errdefs.ErrCipherFailure)
	}
	if out == nil {
		out = []byte{}
	}

	return out, nil
}

// Decrypt implements interfaces.ISymmetricCipher.
func (s *SecretBox) Decrypt(ciphertext, key []byte) ([]byte, error) {
	derived, err := DeriveKey(key, s.info)
	if err != nil {
		return nil, err
	}
	defer ZeroBytes(derived[:])

	return DecryptSymmetric(ciphertext, derived)
}
