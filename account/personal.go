package account

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/limits"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	personalVersion = 0x01
	personalInfo    = "keybind personal v1"
	personalHeader  = 1 + limits.CompressedPublicKeySize
)

// EncryptPersonal implements interfaces.IPersonalCipher.
// Format: [version:1][ephemeral_pub:33][nonce:24][ciphertext+tag:N]
func (a *Account) EncryptPersonal(ctx context.Context, data []byte, identity interfaces.Identity) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := a.checkIdentity(identity); err != nil {
		return nil, err
	}
	return SealTo(a.key.PubKey(), data)
}

// DecryptPersonal implements interfaces.IPersonalCipher.
func (a *Account) DecryptPersonal(ctx context.Context, ciphertext []byte, identity interfaces.Identity) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := a.checkIdentity(identity); err != nil {
		return nil, err
	}
	return a.open(ciphertext)
}

// SealTo encrypts data so that only the holder of pub's private key can
// read it.
func SealTo(pub *btcec.PublicKey, data []byte) ([]byte, error) {
	if err := limits.ValidatePayload(data); err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrMalformedInput, err)
	}

	ephemeral, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	defer ephemeral.Zero()

	out := make([]byte, personalHeader, personalHeader+chacha20poly1305.NonceSizeX+len(data)+chacha20poly1305.Overhead)
	out[0] = personalVersion
	copy(out[1:], ephemeral.PubKey().SerializeCompressed())

	aead, err := personalAEAD(btcec.GenerateSharedSecret(ephemeral, pub), out[1:personalHeader])
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	out = append(out, nonce...)
	return aead.Seal(out, nonce, data, out[:personalHeader]), nil
}

func (a *Account) open(ciphertext []byte) ([]byte, error) {
	minSize := personalHeader + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead
	if len(ciphertext) < minSize {
		return nil, fmt.Errorf("%w: personal ciphertext size %d below minimum %d", errdefs.ErrMalformedInput, len(ciphertext), minSize)
	}
	if ciphertext[0] != personalVersion {
		return nil, fmt.Errorf("%w: unsupported personal ciphertext version %d", errdefs.ErrMalformedInput, ciphertext[0])
	}

	ephemeralPub := ciphertext[1:personalHeader]
	ephemeral, err := crypto.ParsePublicKey(ephemeralPub)
	if err != nil {
		return nil, err
	}

	aead, err := personalAEAD(btcec.GenerateSharedSecret(a.key, ephemeral), ephemeralPub)
	if err != nil {
		return nil, err
	}

	nonce := ciphertext[personalHeader : personalHeader+chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, ciphertext[personalHeader+chacha20poly1305.NonceSizeX:], ciphertext[:personalHeader])
	if err != nil {
		return nil, fmt.Errorf("%w: personal ciphertext authentication failed", errdefs.ErrCipherFailure)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

func personalAEAD(secret, salt []byte) (cipher.AEAD, error) {
	defer crypto.ZeroBytes(secret)

	key := make([]byte, chacha20poly1305.KeySize)
	defer crypto.ZeroBytes(key)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, []byte(personalInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive personal key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return aead, nil
}
