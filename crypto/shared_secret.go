package crypto

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/sirupsen/logrus"
)

// DeriveSharedSecret computes the ECDH secret between privateKey and a peer
// public key on secp256k1. The result is the 32-byte x coordinate of the
// shared point, identical for both parties.
func DeriveSharedSecret(peerPublicKey []byte, privateKey *btcec.PrivateKey) ([]byte, error) {
	logrus.WithFields(logrus.Fields{
		"function":        "DeriveSharedSecret",
		"peer_key_prefix": fmt.Sprintf("%x", peerPublicKey[:min(8, len(peerPublicKey))]),
	}).Debug("Computing shared secret using ECDH")

	if privateKey == nil {
		return nil, fmt.Errorf("failed to compute shared secret: nil private key")
	}

	peer, err := ParsePublicKey(peerPublicKey)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "DeriveSharedSecret",
			"error":    err.Error(),
		}).Error("Peer public key rejected")
		return nil, fmt.Errorf("failed to compute shared secret: %w", err)
	}

	secret := btcec.GenerateSharedSecret(privateKey, peer)

	logrus.WithFields(logrus.Fields{
		"function": "DeriveSharedSecret",
	}).Debug("Shared secret computed successfully")

	return secret, nil
}
