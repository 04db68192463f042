package crypto

import (
	"testing"
)

func BenchmarkGenerateKeyPair(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := GenerateKeyPair(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSharedSecret(b *testing.B) {
	alice, err := GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	bob, err := GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	peer := bob.PublicKey()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := alice.SharedSecret(peer); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSecretBoxEncrypt(b *testing.B) {
	box := NewSecretBox()
	key := make([]byte, 32)
	msg := make([]byte, 1024)

	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := box.Encrypt(msg, key); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSecretBoxDecrypt(b *testing.B) {
	box := NewSecretBox()
	key := make([]byte, 32)
	ct, err := box.Encrypt(make([]byte, 1024), key)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := box.Decrypt(ct, key); err != nil {
			b.Fatal(err)
		}
	}
}
