package crypto

import (
	"bytes"
	"testing"
)

// FuzzSecretBoxRoundTrip fuzzes symmetric encryption with arbitrary keys.
func FuzzSecretBoxRoundTrip(f *testing.F) {
	f.Add([]byte("Hello, World!"), []byte("key"))
	f.Add([]byte(""), make([]byte, 32))
	f.Add(make([]byte, 100), []byte{})

	box := NewSecretBox()
	f.Fuzz(func(t *testing.T, plaintext, key []byte) {
		if len(plaintext) > 10000 {
			return
		}

		ct, err := box.Encrypt(plaintext, key)
		if err != nil {
			return
		}
		pt, err := box.Decrypt(ct, key)
		if err != nil {
			t.Fatalf("decrypt after encrypt: %v", err)
		}
		if !bytes.Equal(plaintext, pt) {
			t.Errorf("round trip mismatch: got %q, want %q", pt, plaintext)
		}
	})
}

// FuzzDecryptSymmetric feeds arbitrary ciphertexts to the decryptor.
func FuzzDecryptSymmetric(f *testing.F) {
	f.Add(make([]byte, 40))
	f.Add([]byte{})
	f.Add(bytes.Repeat([]byte{0xff}, 64))

	var key [32]byte
	f.Fuzz(func(t *testing.T, ct []byte) {
		// Must not panic; random input never authenticates.
		if _, err := DecryptSymmetric(ct, key); err == nil && len(ct) > 0 {
			t.Errorf("random ciphertext of %d bytes authenticated", len(ct))
		}
	})
}

// FuzzParsePublicKey fuzzes public key parsing.
func FuzzParsePublicKey(f *testing.F) {
	kp, err := GenerateKeyPair()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(kp.PublicKey())
	f.Add(make([]byte, 33))
	f.Add([]byte{0x04})

	f.Fuzz(func(t *testing.T, pub []byte) {
		parsed, err := ParsePublicKey(pub)
		if err != nil {
			return
		}
		if len(parsed.SerializeCompressed()) != 33 {
			t.Errorf("parsed key does not re-serialize")
		}
	})
}

// FuzzSecureWipe fuzzes the secure wipe function.
func FuzzSecureWipe(f *testing.F) {
	f.Add([]byte("sensitive data"))
	f.Add(make([]byte, 64))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) == 0 {
			return
		}
		buf := append([]byte(nil), data...)
		if err := SecureWipe(buf); err != nil {
			t.Fatalf("SecureWipe: %v", err)
		}
		for i, b := range buf {
			if b != 0 {
				t.Fatalf("byte %d not wiped", i)
			}
		}
	})
}

// FuzzKeypairFromSecret fuzzes scalar import.
func FuzzKeypairFromSecret(f *testing.F) {
	valid := make([]byte, 32)
	valid[31] = 1
	f.Add(valid)
	f.Add(make([]byte, 32))
	f.Add(bytes.Repeat([]byte{0xff}, 32))

	f.Fuzz(func(t *testing.T, scalar []byte) {
		kp, err := FromSecretKey(scalar)
		if err != nil {
			return
		}
		if !bytes.Equal(kp.Scalar(), scalar) {
			t.Errorf("scalar did not round trip")
		}
	})
}
