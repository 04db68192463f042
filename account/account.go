package account

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrIdentityMismatch is returned when an operation names an identity other
// than the account's own.
var ErrIdentityMismatch = errors.New("identity does not match account")

// Account is a local secp256k1 account with an Ethereum-style address.
type Account struct {
	key      *btcec.PrivateKey
	identity interfaces.Identity
}

// Generate creates a new random account.
func Generate() (*Account, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account key: %w", err)
	}

	acct := fromKey(key)
	logrus.WithFields(logrus.Fields{
		"function": "Generate",
		"package":  "account",
		"identity": acct.identity,
	}).Info("Generated account")
	return acct, nil
}

// FromPrivateKey loads an account from its 32-byte private key.
func FromPrivateKey(raw []byte) (*Account, error) {
	kp, err := crypto.FromSecretKey(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid account key: %w", err)
	}
	scalar := kp.Scalar()
	defer crypto.ZeroBytes(scalar)

	key, _ := btcec.PrivKeyFromBytes(scalar)
	return fromKey(key), nil
}

// FromHex loads an account from a hex private key, with or without 0x.
func FromHex(s string) (*Account, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid account key hex: %w", err)
	}
	defer crypto.ZeroBytes(raw)
	return FromPrivateKey(raw)
}

func fromKey(key *btcec.PrivateKey) *Account {
	return &Account{
		key:      key,
		identity: ChecksumAddress(PubkeyToAddress(key.PubKey())),
	}
}

// Identity implements interfaces.ISigner.
func (a *Account) Identity() interfaces.Identity {
	return a.identity
}

// PublicKey returns the account's compressed public key.
func (a *Account) PublicKey() []byte {
	return a.key.PubKey().SerializeCompressed()
}

// PrivateKey returns a copy of the 32-byte account key.
func (a *Account) PrivateKey() []byte {
	return a.key.Serialize()
}

// PrivateKeyHex returns the account key as 0x-prefixed hex.
func (a *Account) PrivateKeyHex() string {
	raw := a.key.Serialize()
	defer crypto.ZeroBytes(raw)
	return "0x" + hex.EncodeToString(raw)
}

func (a *Account) checkIdentity(id interfaces.Identity) error {
	if !a.identity.Equal(id) {
		return fmt.Errorf("%w: %s", ErrIdentityMismatch, id)
	}
	return nil
}
