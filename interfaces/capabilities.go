package interfaces

import (
	"context"
	"strings"
)

// Identity is an externally issued, stable participant address.
// The core treats it as opaque except for equality, which is
// case-insensitive so that checksummed and lower-case renderings of the same
// hex address match. Identity schemes where two identities differ only in
// case are not supported.
type Identity string

// Equal reports whether two identities name the same participant. It agrees
// with Normalize: a.Equal(b) iff a.Normalize() == b.Normalize().
func (id Identity) Equal(other Identity) bool {
	return id.Normalize() == other.Normalize()
}

// Normalize returns the canonical lower-case form used as a map key.
func (id Identity) Normalize() Identity {
	return Identity(strings.ToLower(string(id)))
}

// String implements fmt.Stringer
func (id Identity) String() string {
	return string(id)
}

// ISigner produces signatures on behalf of one identity.
// Sign may block on an external wallet or device and must honour ctx.
type ISigner interface {
	// Identity returns the identity this signer speaks for
	Identity() Identity

	// Sign signs msg and returns a signature recoverable by an IVerifier
	Sign(ctx context.Context, msg []byte) ([]byte, error)
}

// IVerifier checks that a signature over msg was produced by identity.
type IVerifier interface {
	Verify(msg, sig []byte, identity Identity) bool
}

// IPersonalCipher encrypts data so that only the holder of identity's
// external key can recover it. Both operations may block.
type IPersonalCipher interface {
	EncryptPersonal(ctx context.Context, data []byte, identity Identity) ([]byte, error)
	DecryptPersonal(ctx context.Context, ciphertext []byte, identity Identity) ([]byte, error)
}

// ISymmetricCipher is an authenticated cipher keyed by arbitrary secret bytes.
// Decrypt must fail on any tampering or wrong key.
type ISymmetricCipher interface {
	Encrypt(plaintext, key []byte) ([]byte, error)
	Decrypt(ciphertext, key []byte) ([]byte, error)
}

// IKeyExchange creates exchange keypairs.
type IKeyExchange interface {
	// Generate returns a fresh random keypair
	Generate() (IExchangeKeyPair, error)

	// FromScalar rebuilds the keypair deterministically from its private scalar
	FromScalar(scalar []byte) (IExchangeKeyPair, error)

	// NormalizePublicKey validates a peer key and returns its canonical encoding
	NormalizePublicKey(pub []byte) ([]byte, error)
}

// IExchangeKeyPair is one party's Diffie-Hellman keypair.
type IExchangeKeyPair interface {
	// PublicKey returns the serialized public point
	PublicKey() []byte

	// Scalar returns a copy of the raw private scalar
	Scalar() []byte

	// SharedSecret computes the symmetric ECDH secret with peer
	SharedSecret(peer []byte) ([]byte, error)
}
