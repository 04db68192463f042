// Package limits provides centralized size constants and validation functions
// for keybind. Every component that accepts untrusted bytes checks them here
// before doing any cryptographic work.
//
// # Size Hierarchy
//
//   - ScalarSize (32 bytes) and CompressedPublicKeySize (33 bytes): secp256k1
//     exchange key material. Uncompressed points (65 bytes) are accepted on
//     input and normalised to the compressed form.
//
//   - SymmetricKeySize (32 bytes): group keys and HKDF-derived cipher keys.
//
//   - MaxPayload (1MB): the absolute maximum plaintext for any cipher. This
//     prevents memory exhaustion from hostile peers.
//
//   - MaxCiphertext: MaxPayload plus the envelope tag, the secretbox nonce
//     and the Poly1305 tag.
//
//   - MaxGroupIDLength (128 bytes): group identifiers are opaque strings.
//
// # Validation Functions
//
//	if err := limits.ValidateCiphertext(ct); err != nil {
//	    // ErrMessageEmpty, ErrMessageTooShort or ErrMessageTooLarge
//	}
//
// Callers wrap these errors with errdefs.ErrMalformedInput before returning
// them across a package boundary.
package limits
