package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/limits"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// Nonce is a 24-byte value used for secretbox encryption.
type Nonce [limits.NonceSize]byte

// DefaultKeyInfo is the HKDF info string for SecretBox key derivation.
const DefaultKeyInfo = "keybind secretbox v1"

// GenerateNonce creates a cryptographically secure random nonce.
func GenerateNonce() (Nonce, error) {
	var nonce Nonce
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return Nonce{}, err
	}
	return nonce, nil
}

// DeriveKey expands arbitrary secret material into a 32-byte cipher key
// with HKDF-SHA256.
func DeriveKey(secret []byte, info string) ([32]byte, error) {
	var key [32]byte
	if len(secret) == 0 {
		return key, fmt.Errorf("%w: empty key material", errdefs.ErrMalformedInput)
	}

	reader := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return key, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// EncryptSymmetric seals message under key with a fresh random nonce.
// Output: [nonce:24][secretbox:N+16]
func EncryptSymmetric(message []byte, key [32]byte) ([]byte, error) {
	if err := limits.ValidatePayload(message); err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrMalformedInput, err)
	}

	nonce, err := GenerateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, limits.NonceSize, limits.NonceSize+len(message)+secretbox.Overhead)
	copy(out, nonce[:])
	return secretbox.Seal(out, message, (*[24]byte)(&nonce), &key), nil
}

// SecretBox implements interfaces.ISymmetricCipher. Caller-supplied key
// material of any length is expanded with HKDF before use.
type SecretBox struct {
	info string
}

// NewSecretBox returns a SecretBox using DefaultKeyInfo.
func NewSecretBox() *SecretBox {
	return &SecretBox{info: DefaultKeyInfo}
}

// NewSecretBoxWithInfo returns a SecretBox bound to a custom HKDF info
// string. Ciphers with different info strings cannot read each other.
func NewSecretBoxWithInfo(info string) *SecretBox {
	return &SecretBox{info: info}
}

// Encrypt implements interfaces.ISymmetricCipher.
func (s *SecretBox) Encrypt(plaintext, key []byte) ([]byte, error) {
	derived, err := DeriveKey(key, s.info)
	if err != nil {
		return nil, err
	}
	defer ZeroBytes(derived[:])

	return EncryptSymmetric(plaintext, derived)
}
