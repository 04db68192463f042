package keybind

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/group"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/keymanager"
	"github.com/sirupsen/logrus"
)

// User composes one identity's key manager and group registry and defines
// the backup boundary for their combined state.
type User struct {
	options *Options
	keys    *keymanager.KeyManager
	groups  *group.Manager
	log     logrus.FieldLogger
}

// New creates a User for the identity behind signer and generates a fresh
// exchange key pair. options may be nil.
func New(signer interfaces.ISigner, verifier interfaces.IVerifier, personal interfaces.IPersonalCipher, options *Options) (*User, error) {
	u, err := newUser(signer, verifier, personal, options)
	if err != nil {
		return nil, err
	}
	if err := u.keys.GenerateKeypair(); err != nil {
		return nil, err
	}
	return u, nil
}

// NewFromAccount creates a User backed by a local account for signing,
// verification and personal encryption.
func NewFromAccount(acct *account.Account, options *Options) (*User, error) {
	if acct == nil {
		return nil, errors.New("account is required")
	}
	return New(acct, account.Verifier{}, acct, options)
}

func newUser(signer interfaces.ISigner, verifier interfaces.IVerifier, personal interfaces.IPersonalCipher, options *Options) (*User, error) {
	options = options.withDefaults()

	keys, err := keymanager.New(signer, verifier, personal, options.keyManagerOptions())
	if err != nil {
		return nil, err
	}

	return &User{
		options: options,
		keys:    keys,
		groups:  group.NewManager(keys, options.Cipher, options.Logger),
		log: options.Logger.WithFields(logrus.Fields{
			"package":  "keybind",
			"identity": keys.Identity(),
		}),
	}, nil
}

// Identity returns the owning identity.
func (u *User) Identity() interfaces.Identity {
	return u.keys.Identity()
}

// PublicKey returns the current exchange public key.
func (u *User) PublicKey() []byte {
	return u.keys.PublicKey()
}

// KeyManager returns the user's key manager.
func (u *User) KeyManager() *keymanager.KeyManager {
	return u.keys
}

// Groups returns the user's group registry.
func (u *User) Groups() *group.Manager {
	return u.groups
}

// snapshot collects the current state. The caller must wipe it.
func (u *User) snapshot() (*SerializedState, error) {
	scalar, err := u.keys.PrivateKey()
	if err != nil {
		return nil, err
	}

	state := &SerializedState{
		Version:       StateVersion,
		Owner:         u.Identity(),
		Bindings:      make([]SerializedBinding, 0),
		Groups:        u.groups.Serialize(),
		PrivateScalar: scalar,
		Timestamp:     time.Now().Unix(),
	}

	bindings := u.keys.Bindings()
	for _, id := range u.keys.BoundIdentities() {
		state.Bindings = append(state.Bindings, SerializedBinding{
			Identity:       id,
			ExchangePubKey: bindings[id],
		})
	}
	return state, nil
}

// EncryptSerialized exports the full state encrypted to the owning account.
func (u *User) EncryptSerialized(ctx context.Context) ([]byte, error) {
	state, err := u.snapshot()
	if err != nil {
		return nil, err
	}
	defer state.wipe()

	plaintext, err := state.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	defer crypto.ZeroBytes(plaintext)

	ct, err := u.keys.EncryptPersonal(ctx, plaintext)
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"function": "EncryptSerialized",
		"bindings": len(state.Bindings),
		"groups":   len(state.Groups),
	}).Info("State exported")
	return ct, nil
}

// DecryptAndDeserialize restores a User from EncryptSerialized output.
// Bindings are restored without re-verification; the backup is trusted
// because only the owning account can decrypt it.
func DecryptAndDeserialize(ctx context.Context, signer interfaces.ISigner, verifier interfaces.IVerifier, personal interfaces.IPersonalCipher, ciphertext []byte, options *Options) (*User, error) {
	u, err := newUser(signer, verifier, personal, options)
	if err != nil {
		return nil, err
	}

	plaintext, err := u.keys.DecryptPersonal(ctx, ciphertext)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(plaintext)

	state, err := LoadSerializedState(plaintext)
	if err != nil {
		return nil, err
	}
	defer state.wipe()

	if state.Owner != "" && !state.Owner.Equal(u.Identity()) {
		return nil, fmt.Errorf("%w: state belongs to %s, not %s", errdefs.ErrMalformedInput, state.Owner, u.Identity())
	}

	if err := u.keys.RecoverKeypair(state.PrivateScalar); err != nil {
		return nil, err
	}

	bindings, err := state.bindingMap()
	if err != nil {
		return nil, err
	}
	if err := u.keys.RestoreBindings(bindings); err != nil {
		return nil, err
	}

	if err := u.groups.Deserialize(state.Groups); err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"function": "DecryptAndDeserialize",
		"bindings": len(bindings),
		"groups":   len(state.Groups),
		"saved_at": state.Timestamp,
	}).Info("State restored")
	return u, nil
}

// RestoreFromAccount is DecryptAndDeserialize for a local account.
func RestoreFromAccount(ctx context.Context, acct *account.Account, ciphertext []byte, options *Options) (*User, error) {
	if acct == nil {
		return nil, errors.New("account is required")
	}
	return DecryptAndDeserialize(ctx, acct, account.Verifier{}, acct, ciphertext, options)
}

// EncryptPrivateKey exports only the exchange scalar, encrypted to the
// owning account.
func (u *User) EncryptPrivateKey(ctx context.Context) ([]byte, error) {
	scalar, err := u.keys.PrivateKey()
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(scalar)

	return u.keys.EncryptPersonal(ctx, scalar)
}

// RecoverPrivateKey replaces the exchange key pair with one exported by
// EncryptPrivateKey.
func (u *User) RecoverPrivateKey(ctx context.Context, ciphertext []byte) error {
	scalar, err := u.keys.DecryptPersonal(ctx, ciphertext)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(scalar)

	return u.keys.RecoverKeypair(scalar)
}
