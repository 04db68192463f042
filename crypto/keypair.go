package crypto

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/limits"
)

// KeyPair is a secp256k1 Diffie-Hellman keypair. The public key is kept in
// compressed form.
type KeyPair struct {
	private *btcec.PrivateKey
	public  []byte
}

// GenerateKeyPair creates a new random secp256k1 keypair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	NewLogger("GenerateKeyPair").
		WithFields(SecureFieldHash(priv.PubKey().SerializeCompressed(), "public_key")).
		Debug("Generated exchange key pair")

	return newKeyPair(priv), nil
}

// FromSecretKey rebuilds a keypair from its 32-byte private scalar. The
// public key is derived deterministically, so the same scalar always yields
// the same keypair.
func FromSecretKey(scalar []byte) (*KeyPair, error) {
	if err := limits.ValidateKeySize(scalar, limits.ScalarSize); err != nil {
		return nil, fmt.Errorf("%w: secret key: %w", errdefs.ErrMalformedInput, err)
	}

	var s btcec.ModNScalar
	if overflow := s.SetByteSlice(scalar); overflow {
		return nil, fmt.Errorf("%w: secret key exceeds curve order", errdefs.ErrMalformedInput)
	}
	if s.IsZero() {
		return nil, fmt.Errorf("%w: secret key is zero", errdefs.ErrMalformedInput)
	}

	priv, _ := btcec.PrivKeyFromBytes(scalar)
	return newKeyPair(priv), nil
}

func newKeyPair(priv *btcec.PrivateKey) *KeyPair {
	return &KeyPair{
		private: priv,
		public:  priv.PubKey().SerializeCompressed(),
	}
}

// PublicKey returns a copy of the compressed public key.
func (kp *KeyPair) PublicKey() []byte {
	out := make([]byte, len(kp.public))
	copy(out, kp.public)
	return out
}

// Scalar returns a copy of the private scalar. Callers should wipe it with
// ZeroBytes when done.
func (kp *KeyPair) Scalar() []byte {
	if kp.private == nil {
		return nil
	}
	return kp.private.Serialize()
}

// SharedSecret computes the ECDH secret with a peer public key.
func (kp *KeyPair) SharedSecret(peer []byte) ([]byte, error) {
	if kp.private == nil {
		return nil, fmt.Errorf("key pair has been wiped")
	}
	return DeriveSharedSecret(peer, kp.private)
}

// ParsePublicKey parses a compressed or uncompressed secp256k1 point.
func ParsePublicKey(pub []byte) (*btcec.PublicKey, error) {
	switch len(pub) {
	case limits.CompressedPublicKeySize, limits.UncompressedPublicKeySize:
	default:
		return nil, fmt.Errorf("%w: public key length %d", errdefs.ErrMalformedInput, len(pub))
	}

	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", errdefs.ErrMalformedInput, err)
	}
	return key, nil
}

// Secp256k1 implements interfaces.IKeyExchange on the secp256k1 curve.
type Secp256k1 struct{}

// NewKeyExchange returns the default key exchange.
func NewKeyExchange() *Secp256k1 {
	return &Secp256k1{}
}

// Generate implements interfaces.IKeyExchange.
func (Secp256k1) Generate() (interfaces.IExchangeKeyPair, error) {
	return GenerateKeyPair()
}

// FromScalar implements interfaces.IKeyExchange.
func (Secp256k1) FromScalar(scalar []byte) (interfaces.IExchangeKeyPair, error) {
	return FromSecretKey(scalar)
}

// NormalizePublicKey implements interfaces.IKeyExchange. It returns the
// compressed encoding of pub.
func (Secp256k1) NormalizePublicKey(pub []byte) ([]byte, error) {
	key, err := ParsePublicKey(pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeCompressed(), nil
}
