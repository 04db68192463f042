package group

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/limits"
)

// Group holds one symmetric key and encrypts payloads under it. The key is
// fixed for the lifetime of the value.
type Group struct {
	key    []byte
	cipher interfaces.ISymmetricCipher
}

// New creates a group with a fresh random key. A nil cipher selects
// crypto.SecretBox.
func New(cipher interfaces.ISymmetricCipher) (*Group, error) {
	key := make([]byte, limits.SymmetricKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate group key: %w", err)
	}
	return newGroup(key, cipher), nil
}

// FromKey wraps an existing group key. The key is copied.
func FromKey(key []byte, cipher interfaces.ISymmetricCipher) (*Group, error) {
	if err := limits.ValidateKeySize(key, limits.SymmetricKeySize); err != nil {
		return nil, fmt.Errorf("%w: group key: %w", errdefs.ErrMalformedInput, err)
	}
	return newGroup(append([]byte(nil), key...), cipher), nil
}

func newGroup(key []byte, cipher interfaces.ISymmetricCipher) *Group {
	if cipher == nil {
		cipher = crypto.NewSecretBox()
	}
	return &Group{key: key, cipher: cipher}
}

// Key returns a copy of the group key.
func (g *Group) Key() []byte {
	return append([]byte(nil), g.key...)
}

// Encrypt seals payload under the group key. Strings decrypt back to
// strings, byte slices to byte slices; any other value is JSON-encoded.
func (g *Group) Encrypt(payload any) ([]byte, error) {
	plaintext, _, err := sealEnvelope(payload)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(plaintext)

	ct, err := g.cipher.Encrypt(plaintext, g.key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt group payload: %w", err)
	}
	return ct, nil
}

// Open decrypts ciphertext and returns the undecoded envelope.
func (g *Group) Open(ciphertext []byte) (Envelope, error) {
	plaintext, err := g.cipher.Decrypt(ciphertext, g.key)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to decrypt group payload: %w", err)
	}
	return openEnvelope(plaintext)
}

// Decrypt reverses Encrypt. Structured payloads decode into generic JSON
// values (map[string]any, []any, float64, bool, nil); use DecryptInto to
// recover a concrete type.
func (g *Group) Decrypt(ciphertext []byte) (any, error) {
	env, err := g.Open(ciphertext)
	if err != nil {
		return nil, err
	}
	return env.Value()
}

// DecryptInto decrypts a structured payload into v.
func (g *Group) DecryptInto(ciphertext []byte, v any) error {
	env, err := g.Open(ciphertext)
	if err != nil {
		return err
	}
	return env.Into(v)
}
