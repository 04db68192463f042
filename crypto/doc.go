// Package crypto implements the cryptographic primitives used by keybind.
//
// # Key Exchange
//
// Exchange keypairs live on secp256k1 and are implemented with
// github.com/btcsuite/btcd/btcec/v2. [GenerateKeyPair] creates a fresh pair;
// [FromSecretKey] rebuilds one deterministically from its 32-byte scalar:
//
//	kp, err := crypto.GenerateKeyPair()
//	if err != nil {
//	    return err
//	}
//	backup := kp.Scalar()
//	defer crypto.ZeroBytes(backup)
//	restored, err := crypto.FromSecretKey(backup)
//
// [DeriveSharedSecret] performs ECDH and returns the x coordinate of the
// shared point. Both parties obtain the same 32 bytes. Peer keys may be
// compressed (33 bytes) or uncompressed (65 bytes); [Secp256k1] normalises
// them to the compressed form.
//
// # Symmetric Encryption
//
// [EncryptSymmetric] and [DecryptSymmetric] wrap NaCl secretbox with a random
// nonce prepended to the ciphertext:
//
//	[nonce:24][secretbox(plaintext):N+16]
//
// [SecretBox] implements interfaces.ISymmetricCipher on top of them. It
// accepts key material of any length and expands it with HKDF-SHA256, so raw
// ECDH output and group keys can be used directly. Authentication failure is
// reported as errdefs.ErrCipherFailure; truncated input as
// errdefs.ErrMalformedInput.
//
// # Encrypted Key Store
//
// [EncryptedKeyStore] seals files in a directory with XChaCha20-Poly1305
// under a PBKDF2-derived passphrase key. Writes are atomic (temporary file
// and rename) and [EncryptedKeyStore.RotateKey] re-encrypts every entry under
// a new passphrase.
//
// # Secure Memory
//
// [SecureWipe] and [ZeroBytes] overwrite secret buffers; [WipeKeyPair]
// destroys the scalar held by a [KeyPair]. Go's garbage collector may still
// have copied the memory, so wiping is best effort.
//
// # Logging
//
// [LoggerHelper] attaches standard function and package fields to logrus
// entries. Secret material is only ever logged through [SecureFieldHash],
// which emits an 8-byte preview and the length.
package crypto
