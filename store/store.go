package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/keybind"
	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/crypto"
	"github.com/sirupsen/logrus"
)

const (
	// AccountEntry holds the raw account private key.
	AccountEntry = "account.key"
	// StateEntry holds the encrypted User backup.
	StateEntry = "state.bin"
)

var (
	// ErrNotInitialized is returned when the home directory has no account.
	ErrNotInitialized = errors.New("keybind home is not initialized")
	// ErrAlreadyInitialized is returned by Init when an account exists.
	ErrAlreadyInitialized = errors.New("keybind home is already initialized")
)

// Store is an opened keybind home directory.
type Store struct {
	home string
	ks   *crypto.EncryptedKeyStore
	log  *logrus.Entry
}

// Open opens or creates the store in home. passphrase is wiped.
func Open(home string, passphrase []byte) (*Store, error) {
	if home == "" {
		return nil, errors.New("home directory is required")
	}
	ks, err := crypto.NewEncryptedKeyStore(home, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &Store{
		home: home,
		ks:   ks,
		log:  logrus.WithFields(logrus.Fields{"package": "store", "home": home}),
	}, nil
}

// Home returns the store directory.
func (s *Store) Home() string {
	return s.home
}

// Initialized reports whether an account has been saved.
func (s *Store) Initialized() bool {
	return s.ks.Exists(AccountEntry)
}

// Init creates a fresh account and User and saves both.
func (s *Store) Init(ctx context.Context, opts *keybind.Options) (*account.Account, *keybind.User, error) {
	if s.Initialized() {
		return nil, nil, ErrAlreadyInitialized
	}
	acct, err := account.Generate()
	if err != nil {
		return nil, nil, err
	}
	u, err := s.Import(ctx, acct, opts)
	if err != nil {
		return nil, nil, err
	}
	return acct, u, nil
}

// Import saves an existing account with a new User.
func (s *Store) Import(ctx context.Context, acct *account.Account, opts *keybind.Options) (*keybind.User, error) {
	if s.Initialized() {
		return nil, ErrAlreadyInitialized
	}
	u, err := keybind.NewFromAccount(acct, opts)
	if err != nil {
		return nil, err
	}

	if err := s.SaveAccount(acct); err != nil {
		return nil, err
	}
	if err := s.SaveUser(ctx, u); err != nil {
		return nil, err
	}

	s.log.WithField("identity", acct.Identity()).Info("Store initialized")
	return u, nil
}

// SaveAccount writes the account private key.
func (s *Store) SaveAccount(acct *account.Account) error {
	raw := acct.PrivateKey()
	defer crypto.ZeroBytes(raw)

	if err := s.ks.WriteEncrypted(AccountEntry, raw); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// LoadAccount reads the account private key.
func (s *Store) LoadAccount() (*account.Account, error) {
	raw, err := s.ks.ReadEncrypted(AccountEntry)
	if err != nil {
		if errors.Is(err, crypto.ErrKeyStoreNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	defer crypto.ZeroBytes(raw)

	return account.FromPrivateKey(raw)
}

// SaveUser writes the User's encrypted backup.
func (s *Store) SaveUser(ctx context.Context, u *keybind.User) error {
	blob, err := u.EncryptSerialized(ctx)
	if err != nil {
		return err
	}
	if err := s.ks.WriteEncrypted(StateEntry, blob); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"function": "SaveUser",
		"groups":   u.Groups().Len(),
		"bindings": len(u.KeyManager().BoundIdentities()),
	}).Debug("State saved")
	return nil
}

// LoadUser restores the saved User for acct.
func (s *Store) LoadUser(ctx context.Context, acct *account.Account, opts *keybind.Options) (*keybind.User, error) {
	blob, err := s.ks.ReadEncrypted(StateEntry)
	if err != nil {
		if errors.Is(err, crypto.ErrKeyStoreNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return keybind.RestoreFromAccount(ctx, acct, blob, opts)
}

// Load reads the account and its User.
func (s *Store) Load(ctx context.Context, opts *keybind.Options) (*account.Account, *keybind.User, error) {
	acct, err := s.LoadAccount()
	if err != nil {
		return nil, nil, err
	}
	u, err := s.LoadUser(ctx, acct, opts)
	if err != nil {
		return nil, nil, err
	}
	return acct, u, nil
}

// ChangePassphrase re-encrypts every entry under newPassphrase.
func (s *Store) ChangePassphrase(newPassphrase []byte) error {
	return s.ks.RotateKey(newPassphrase)
}

// Close wipes the store key.
func (s *Store) Close() error {
	return s.ks.Close()
}
