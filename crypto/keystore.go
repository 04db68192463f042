package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opd-ai/keybind/errdefs"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

// EncryptedKeyStore is a directory of files sealed with a passphrase-derived
// XChaCha20-Poly1305 key.
type EncryptedKeyStore struct {
	encryptionKey [32]byte
	dataDir       string
	saltFile      string
}

const (
	// PBKDF2Iterations is the number of iterations for key derivation
	PBKDF2Iterations = 100000
	// EncryptionVersion is the current file format version
	EncryptionVersion = 2
	// SaltSize is the size of the salt for PBKDF2
	SaltSize = 32

	headerSize = 2
	tmpSuffix  = ".tmp"
)

// ErrKeyStoreNotFound is returned by ReadEncrypted for a missing entry.
var ErrKeyStoreNotFound = errors.New("key store entry not found")

// NewEncryptedKeyStore opens or creates a key store in dataDir. The salt is
// created on first use and reused afterwards, so the same passphrase always
// yields the same key for a given directory. masterPassword is wiped.
func NewEncryptedKeyStore(dataDir string, masterPassword []byte) (*EncryptedKeyStore, error) {
	if len(masterPassword) == 0 {
		return nil, fmt.Errorf("master password cannot be empty")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	ks := &EncryptedKeyStore{
		dataDir:  dataDir,
		saltFile: filepath.Join(dataDir, ".salt"),
	}

	salt, err := ks.loadOrGenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize salt: %w", err)
	}

	derivedKey := pbkdf2.Key(masterPassword, salt, PBKDF2Iterations, chacha20poly1305.KeySize, sha256.New)
	copy(ks.encryptionKey[:], derivedKey)

	ZeroBytes(derivedKey)
	ZeroBytes(masterPassword)

	NewLogger("NewEncryptedKeyStore").WithField("data_dir", dataDir).Debug("Key store opened")
	return ks, nil
}

func (ks *EncryptedKeyStore) loadOrGenerateSalt() ([]byte, error) {
	data, err := os.ReadFile(ks.saltFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read salt file: %w", err)
		}

		salt := make([]byte, SaltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		if err := os.WriteFile(ks.saltFile, salt, 0o600); err != nil {
			return nil, fmt.Errorf("failed to save salt: %w", err)
		}
		return salt, nil
	}

	if len(data) != SaltSize {
		return nil, fmt.Errorf("invalid salt file size: got %d, want %d", len(data), SaltSize)
	}
	return data, nil
}

func validName(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") || strings.HasSuffix(filename, tmpSuffix) {
		return fmt.Errorf("invalid key store entry name %q", filename)
	}
	return nil
}

// WriteEncrypted seals plaintext and writes it atomically.
// Format: [version:2][nonce:24][ciphertext+tag:N]
func (ks *EncryptedKeyStore) WriteEncrypted(filename string, plaintext []byte) error {
	if err := validName(filename); err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(ks.encryptionKey[:])
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}

	output := make([]byte, headerSize+aead.NonceSize(), headerSize+aead.NonceSize()+len(plaintext)+aead.Overhead())
	binary.BigEndian.PutUint16(output[:headerSize], EncryptionVersion)
	nonce := output[headerSize:]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	// The header is authenticated as associated data.
	output = aead.Seal(output, nonce, plaintext, output[:headerSize])

	tmpFile := filepath.Join(ks.dataDir, filename+tmpSuffix)
	finalFile := filepath.Join(ks.dataDir, filename)

	if err := os.WriteFile(tmpFile, output, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpFile, finalFile); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// ReadEncrypted reads and opens a file written by WriteEncrypted.
// A missing file yields ErrKeyStoreNotFound.
func (ks *EncryptedKeyStore) ReadEncrypted(filename string) ([]byte, error) {
	if err := validName(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(ks.dataDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyStoreNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	aead, err := chacha20poly1305.NewX(ks.encryptionKey[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	minSize := headerSize + aead.NonceSize() + aead.Overhead()
	if len(data) < minSize {
		return nil, fmt.Errorf("file too short: %d bytes (minimum %d bytes)", len(data), minSize)
	}

	version := binary.BigEndian.Uint16(data[:headerSize])
	if version != EncryptionVersion {
		return nil, fmt.Errorf("unsupported encryption version: %d (expected %d)", version, EncryptionVersion)
	}

	nonce := data[headerSize : headerSize+aead.NonceSize()]
	plaintext, err := aead.Open(nil, nonce, data[headerSize+aead.NonceSize():], data[:headerSize])
	if err != nil {
		return nil, fmt.Errorf("%w: wrong password or corrupted data: %v", errdefs.ErrCipherFailure, err)
	}

	return plaintext, nil
}

// Exists reports whether an entry is present.
func (ks *EncryptedKeyStore) Exists(filename string) bool {
	if validName(filename) != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(ks.dataDir, filename))
	return err == nil
}

// List returns the sorted names of all entries.
func (ks *EncryptedKeyStore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list key store: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || validName(e.Name()) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// DeleteEncrypted overwrites an entry with zeros and removes it.
// Deleting a missing entry is not an error.
func (ks *EncryptedKeyStore) DeleteEncrypted(filename string) error {
	if err := validName(filename); err != nil {
		return err
	}
	filePath := filepath.Join(ks.dataDir, filename)

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	// Best effort; removal proceeds even if the overwrite fails.
	_ = os.WriteFile(filePath, make([]byte, info.Size()), 0o600)
	return os.Remove(filePath)
}

// Close wipes the encryption key. The store must not be used afterwards.
func (ks *EncryptedKeyStore) Close() error {
	ZeroBytes(ks.encryptionKey[:])
	return nil
}

// RotateKey re-encrypts every entry under a key derived from a new
// passphrase and a fresh salt. On failure the old key stays active.
func (ks *EncryptedKeyStore) RotateKey(newMasterPassword []byte) error {
	if len(newMasterPassword) == 0 {
		return fmt.Errorf("new master password cannot be empty")
	}

	names, err := ks.List()
	if err != nil {
		return err
	}

	fileData := make(map[string][]byte, len(names))
	defer func() {
		for _, plaintext := range fileData {
			ZeroBytes(plaintext)
		}
	}()
	for _, name := range names {
		plaintext, err := ks.ReadEncrypted(name)
		if err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", name, err)
		}
		fileData[name] = plaintext
	}

	newSalt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, newSalt); err != nil {
		return fmt.Errorf("failed to generate new salt: %w", err)
	}

	newKey := pbkdf2.Key(newMasterPassword, newSalt, PBKDF2Iterations, chacha20poly1305.KeySize, sha256.New)
	oldKey := ks.encryptionKey
	copy(ks.encryptionKey[:], newKey)
	ZeroBytes(newKey)

	for name, plaintext := range fileData {
		if err := ks.WriteEncrypted(name, plaintext); err != nil {
			ks.encryptionKey = oldKey
			return fmt.Errorf("failed to re-encrypt %s: %w", name, err)
		}
	}

	if err := os.WriteFile(ks.saltFile, newSalt, 0o600); err != nil {
		ks.encryptionKey = oldKey
		return fmt.Errorf("failed to save new salt: %w", err)
	}

	ZeroBytes(oldKey[:])
	ZeroBytes(newMasterPassword)

	NewLogger("RotateKey").WithField("entries", len(names)).Info("Key store passphrase rotated")
	return nil
}
