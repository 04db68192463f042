package crypto

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// SecureWipe overwrites a byte slice holding sensitive data with zeros.
// It returns an error if the slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	zeros := make([]byte, len(data))
	subtle.ConstantTimeCopy(1, data, zeros)

	runtime.KeepAlive(data)
	return nil
}

// ZeroBytes erases the contents of a byte slice, ignoring nil input.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// WipeKeyPair zeroes the private scalar held by kp.
// The keypair is unusable afterwards.
func WipeKeyPair(kp *KeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil KeyPair")
	}
	if kp.private != nil {
		kp.private.Zero()
		kp.private = nil
	}
	return nil
}
