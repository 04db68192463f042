package account

import (
	"context"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/sirupsen/logrus"
)

// SignatureLength is the length of an R || S || V signature.
const SignatureLength = 65

const personalPrefix = "\x19Ethereum Signed Message:\n"

// PersonalHash returns the personal_sign digest of msg.
func PersonalHash(msg []byte) []byte {
	return Keccak256([]byte(personalPrefix+strconv.Itoa(len(msg))), msg)
}

// Sign implements interfaces.ISigner. The signature is R || S || V with V in
// {27, 28}.
func (a *Account) Sign(ctx context.Context, msg []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compact := ecdsa.SignCompact(a.key, PersonalHash(msg), false)

	// compact is V || R || S
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return sig, nil
}

// RecoverAddress returns the identity whose key produced sig over msg.
func RecoverAddress(msg, sig []byte) (interfaces.Identity, error) {
	if len(sig) != SignatureLength {
		return "", fmt.Errorf("invalid signature length %d", len(sig))
	}

	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 3 {
		return "", fmt.Errorf("invalid signature recovery id %d", sig[64])
	}

	compact := make([]byte, SignatureLength)
	compact[0] = 27 + v
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, PersonalHash(msg))
	if err != nil {
		return "", fmt.Errorf("failed to recover public key: %w", err)
	}
	return ChecksumAddress(PubkeyToAddress(pub)), nil
}

// Verifier implements interfaces.IVerifier by public key recovery.
type Verifier struct{}

// Verify implements interfaces.IVerifier.
func (Verifier) Verify(msg, sig []byte, identity interfaces.Identity) bool {
	recovered, err := RecoverAddress(msg, sig)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Verify",
			"package":  "account",
			"identity": identity,
			"error":    err.Error(),
		}).Debug("Signature recovery failed")
		return false
	}
	return recovered.Equal(identity)
}

// Verify implements interfaces.IVerifier.
func (a *Account) Verify(msg, sig []byte, identity interfaces.Identity) bool {
	return Verifier{}.Verify(msg, sig, identity)
}
