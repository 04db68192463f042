package keymanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrNoKeyPair is returned by operations that need an exchange keypair
// before GenerateKeypair or RecoverKeypair has been called.
var ErrNoKeyPair = errors.New("no exchange key pair")

type binding struct {
	identity interfaces.Identity
	key      []byte
}

// KeyManager owns one identity's exchange keypair and its trust store of
// verified bindings. It is not safe for concurrent use.
type KeyManager struct {
	signer   interfaces.ISigner
	verifier interfaces.IVerifier
	personal interfaces.IPersonalCipher
	exchange interfaces.IKeyExchange
	cipher   interfaces.ISymmetricCipher
	log      logrus.FieldLogger

	keyPair  interfaces.IExchangeKeyPair
	bindings map[interfaces.Identity]binding
}

// New creates a KeyManager for the identity behind signer. opts may be nil.
// No keypair exists until GenerateKeypair or RecoverKeypair is called.
func New(signer interfaces.ISigner, verifier interfaces.IVerifier, personal interfaces.IPersonalCipher, opts *Options) (*KeyManager, error) {
	if signer == nil || verifier == nil || personal == nil {
		return nil, errors.New("signer, verifier and personal cipher are required")
	}
	if signer.Identity() == "" {
		return nil, fmt.Errorf("%w: signer has no identity", errdefs.ErrMalformedInput)
	}
	opts = opts.withDefaults()

	return &KeyManager{
		signer:   signer,
		verifier: verifier,
		personal: personal,
		exchange: opts.Exchange,
		cipher:   opts.Cipher,
		log: opts.Logger.WithFields(logrus.Fields{
			"package":  "keymanager",
			"identity": signer.Identity(),
		}),
		bindings: make(map[interfaces.Identity]binding),
	}, nil
}

// Identity returns the owning identity.
func (km *KeyManager) Identity() interfaces.Identity {
	return km.signer.Identity()
}

// GenerateKeypair creates a fresh exchange keypair, replacing any current one.
func (km *KeyManager) GenerateKeypair() error {
	kp, err := km.exchange.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate exchange key pair: %w", err)
	}
	km.keyPair = kp

	km.log.WithFields(logrus.Fields{"function": "GenerateKeypair"}).
		WithFields(crypto.SecureFieldHash(kp.PublicKey(), "public_key")).
		Info("Exchange key pair generated")
	return nil
}

// RecoverKeypair rebuilds the exchange keypair from an exported scalar.
func (km *KeyManager) RecoverKeypair(scalar []byte) error {
	kp, err := km.exchange.FromScalar(scalar)
	if err != nil {
		return fmt.Errorf("failed to recover exchange key pair: %w", err)
	}
	km.keyPair = kp

	km.log.WithFields(logrus.Fields{"function": "RecoverKeypair"}).
		WithFields(crypto.SecureFieldHash(kp.PublicKey(), "public_key")).
		Info("Exchange key pair recovered")
	return nil
}

// PrivateKey exports a copy of the raw private scalar.
func (km *KeyManager) PrivateKey() ([]byte, error) {
	if km.keyPair == nil {
		return nil, ErrNoKeyPair
	}
	return km.keyPair.Scalar(), nil
}

// PublicKey returns the current exchange public key, or nil before a
// keypair exists.
func (km *KeyManager) PublicKey() []byte {
	if km.keyPair == nil {
		return nil
	}
	return km.keyPair.PublicKey()
}

// ProduceIdentityProof signs the current exchange public key with the
// external signer. Signer errors are returned wrapped.
func (km *KeyManager) ProduceIdentityProof(ctx context.Context) (IdentityProof, error) {
	if km.keyPair == nil {
		return IdentityProof{}, ErrNoKeyPair
	}

	pub := km.keyPair.PublicKey()
	sig, err := km.signer.Sign(ctx, pub)
	if err != nil {
		return IdentityProof{}, fmt.Errorf("failed to sign exchange key: %w", err)
	}

	return IdentityProof{
		Identity:       km.signer.Identity(),
		ExchangePubKey: pub,
		Signature:      sig,
	}, nil
}

// AddBinding verifies proof and records identity -> exchange key.
//
// A proof with a missing field fails with both ErrUnauthenticated and
// ErrMalformedInput. A signature that does not verify fails with
// ErrUnauthenticated and nothing is stored. An identity already bound to a
// different key fails with ErrConflict. Rebinding the same key is a no-op.
func (km *KeyManager) AddBinding(proof IdentityProof) error {
	log := km.log.WithFields(logrus.Fields{
		"function": "AddBinding",
		"peer":     proof.Identity,
	})

	if field := proof.missingField(); field != "" {
		log.WithField("field", field).Warn("Rejected incomplete identity proof")
		return fmt.Errorf("%w: %w: missing %s", errdefs.ErrUnauthenticated, errdefs.ErrMalformedInput, field)
	}

	key, err := km.exchange.NormalizePublicKey(proof.ExchangePubKey)
	if err != nil {
		log.WithError(err).Warn("Rejected identity proof with invalid exchange key")
		return fmt.Errorf("%w: %w", errdefs.ErrUnauthenticated, err)
	}

	if !km.verifier.Verify(proof.ExchangePubKey, proof.Signature, proof.Identity) {
		log.Warn("Rejected identity proof with invalid signature")
		return fmt.Errorf("%w: signature does not match identity %s", errdefs.ErrUnauthenticated, proof.Identity)
	}

	norm := proof.Identity.Normalize()
	if existing, ok := km.bindings[norm]; ok {
		if !bytes.Equal(existing.key, key) {
			log.Warn("Rejected rebinding to a different exchange key")
			return fmt.Errorf("%w: identity %s is already bound to a different key", errdefs.ErrConflict, proof.Identity)
		}
		log.Debug("Binding already present")
		return nil
	}

	km.bindings[norm] = binding{identity: proof.Identity, key: key}
	log.WithFields(crypto.SecureFieldHash(key, "exchange_key")).Info("Binding added")
	return nil
}

// Binding returns the exchange key bound to identity.
func (km *KeyManager) Binding(identity interfaces.Identity) ([]byte, bool) {
	b, ok := km.bindings[identity.Normalize()]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.key...), true
}

// Bindings returns a copy of the trust store.
func (km *KeyManager) Bindings() map[interfaces.Identity][]byte {
	out := make(map[interfaces.Identity][]byte, len(km.bindings))
	for _, b := range km.bindings {
		out[b.identity] = append([]byte(nil), b.key...)
	}
	return out
}

// BoundIdentities returns the bound identities in sorted order.
func (km *KeyManager) BoundIdentities() []interfaces.Identity {
	ids := make([]interfaces.Identity, 0, len(km.bindings))
	for _, b := range km.bindings {
		ids = append(ids, b.identity)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Normalize() < ids[j].Normalize() })
	return ids
}

// RestoreBindings loads previously verified bindings without re-verifying
// signatures. It is meant for restoring a trusted backup; existing entries
// for the same identities are replaced. Keys must still be valid points, and
// two entries whose identities differ only in case fail with
// errdefs.ErrConflict.
func (km *KeyManager) RestoreBindings(bindings map[interfaces.Identity][]byte) error {
	restored := make(map[interfaces.Identity]binding, len(bindings))
	for id, key := range bindings {
		if id == "" {
			return fmt.Errorf("%w: binding with empty identity", errdefs.ErrMalformedInput)
		}
		if prev, dup := restored[id.Normalize()]; dup {
			return fmt.Errorf("%w: identities %s and %s are the same", errdefs.ErrConflict, prev.identity, id)
		}
		norm, err := km.exchange.NormalizePublicKey(key)
		if err != nil {
			return fmt.Errorf("binding for %s: %w", id, err)
		}
		restored[id.Normalize()] = binding{identity: id, key: norm}
	}

	for k, b := range restored {
		km.bindings[k] = b
	}
	km.log.WithFields(logrus.Fields{
		"function": "RestoreBindings",
		"count":    len(restored),
	}).Info("Bindings restored")
	return nil
}

// DerivePairwiseSecret computes the ECDH secret with identity's bound key.
// The caller should wipe the result with crypto.ZeroBytes.
func (km *KeyManager) DerivePairwiseSecret(identity interfaces.Identity) ([]byte, error) {
	b, ok := km.bindings[identity.Normalize()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errdefs.ErrUnbound, identity)
	}
	if km.keyPair == nil {
		return nil, ErrNoKeyPair
	}

	secret, err := km.keyPair.SharedSecret(b.key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive pairwise secret with %s: %w", identity, err)
	}
	return secret, nil
}

// EncryptFor encrypts msg under the pairwise secret shared with identity.
func (km *KeyManager) EncryptFor(msg []byte, identity interfaces.Identity) ([]byte, error) {
	secret, err := km.DerivePairwiseSecret(identity)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(secret)

	ct, err := km.cipher.Encrypt(msg, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt for %s: %w", identity, err)
	}
	return ct, nil
}

// DecryptFrom decrypts a message encrypted for us by identity.
func (km *KeyManager) DecryptFrom(ciphertext []byte, identity interfaces.Identity) ([]byte, error) {
	secret, err := km.DerivePairwiseSecret(identity)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(secret)

	pt, err := km.cipher.Decrypt(ciphertext, secret)
	if err != nil {
		km.log.WithFields(logrus.Fields{
			"function": "DecryptFrom",
			"peer":     identity,
			"error":    err.Error(),
		}).Error("Pairwise decryption failed")
		return nil, fmt.Errorf("failed to decrypt from %s: %w", identity, err)
	}
	return pt, nil
}

// EncryptPersonal encrypts data to the owning identity's external account.
func (km *KeyManager) EncryptPersonal(ctx context.Context, data []byte) ([]byte, error) {
	ct, err := km.personal.EncryptPersonal(ctx, data, km.Identity())
	if err != nil {
		return nil, fmt.Errorf("personal encryption failed: %w", err)
	}
	return ct, nil
}

// DecryptPersonal reverses EncryptPersonal.
func (km *KeyManager) DecryptPersonal(ctx context.Context, ciphertext []byte) ([]byte, error) {
	pt, err := km.personal.DecryptPersonal(ctx, ciphertext, km.Identity())
	if err != nil {
		return nil, fmt.Errorf("personal decryption failed: %w", err)
	}
	return pt, nil
}
