// Package limits provides centralized size limits for keys, payloads and
// group identifiers. This ensures consistent validation across the key
// manager, the group registry and the persistence layer.
package limits

import (
	"errors"
	"fmt"
)

const (
	// ScalarSize is the length of a secp256k1 private scalar
	ScalarSize = 32

	// CompressedPublicKeySize is the length of a compressed secp256k1 point
	CompressedPublicKeySize = 33

	// UncompressedPublicKeySize is the length of an uncompressed secp256k1 point
	UncompressedPublicKeySize = 65

	// SymmetricKeySize is the length of a group key and of derived cipher keys
	SymmetricKeySize = 32

	// NonceSize is the secretbox nonce length, prepended to every ciphertext
	NonceSize = 24

	// EncryptionOverhead is the Poly1305 tag added by secretbox.Seal
	EncryptionOverhead = 16 // golang.org/x/crypto/nacl/secretbox.Overhead

	// MaxPayload is the absolute maximum plaintext accepted by any cipher (1MB)
	MaxPayload = 1024 * 1024

	// MaxCiphertext is the largest ciphertext a well-formed payload can produce.
	// One extra byte accounts for the group envelope tag.
	MaxCiphertext = MaxPayload + 1 + NonceSize + EncryptionOverhead

	// MinCiphertext is the shortest possible sealed message (empty plaintext)
	MinCiphertext = NonceSize + EncryptionOverhead

	// MaxGroupIDLength bounds group identifiers
	MaxGroupIDLength = 128
)

var (
	// ErrMessageEmpty indicates an empty message was provided
	ErrMessageEmpty = errors.New("empty message")

	// ErrMessageTooLarge indicates message exceeds maximum size
	ErrMessageTooLarge = errors.New("message too large")

	// ErrMessageTooShort indicates a ciphertext cannot hold a nonce and tag
	ErrMessageTooShort = errors.New("message too short")

	// ErrInvalidGroupID indicates an empty or oversized group identifier
	ErrInvalidGroupID = errors.New("invalid group id")

	// ErrInvalidKeySize indicates key material of the wrong length
	ErrInvalidKeySize = errors.New("invalid key size")
)

// ValidateMessageSize validates a message against the specified maximum size.
// Returns an error with context including the actual and maximum sizes.
func ValidateMessageSize(message []byte, maxSize int) error {
	if len(message) == 0 {
		return ErrMessageEmpty
	}
	if len(message) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrMessageTooLarge, len(message), maxSize)
	}
	return nil
}

// ValidatePayload checks a plaintext against MaxPayload. Empty payloads are
// allowed; the ciphers authenticate them like any other.
func ValidatePayload(payload []byte) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("%w: payload size %d exceeds limit %d", ErrMessageTooLarge, len(payload), MaxPayload)
	}
	return nil
}

// ValidateCiphertext checks that a sealed message is within
// [MinCiphertext, MaxCiphertext].
func ValidateCiphertext(ciphertext []byte) error {
	if err := ValidateMessageSize(ciphertext, MaxCiphertext); err != nil {
		return err
	}
	if len(ciphertext) < MinCiphertext {
		return fmt.Errorf("%w: ciphertext size %d below minimum %d", ErrMessageTooShort, len(ciphertext), MinCiphertext)
	}
	return nil
}

// ValidateGroupID rejects empty identifiers and identifiers longer than
// MaxGroupIDLength bytes.
func ValidateGroupID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidGroupID)
	}
	if len(id) > MaxGroupIDLength {
		return fmt.Errorf("%w: length %d exceeds limit %d", ErrInvalidGroupID, len(id), MaxGroupIDLength)
	}
	return nil
}

// ValidateKeySize checks that key material has exactly the expected length.
func ValidateKeySize(key []byte, want int) error {
	if len(key) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), want)
	}
	return nil
}
