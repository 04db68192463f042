// Package interfaces defines the capability contracts consumed by the
// keybind core.
//
// The key manager, group registry and user composition root never reach for
// a concrete signer, cipher or curve implementation. Everything outside the
// trust-establishment protocol is injected through the interfaces below,
// which keeps the protocol testable with in-memory fakes and lets embedding
// applications plug in hardware wallets or remote signers.
//
// # Identity
//
// [Identity] is the stable external address of a participant. Equality is
// case-insensitive; use [Identity.Normalize] for map keys.
//
// # External Account Capabilities
//
// [ISigner], [IVerifier] and [IPersonalCipher] model the external account.
// Sign and the personal cipher may suspend (user confirmation, remote
// signer), so they take a context.Context:
//
//	sig, err := signer.Sign(ctx, exchangePubKey)
//	if err != nil {
//	    return err
//	}
//	ok := verifier.Verify(exchangePubKey, sig, signer.Identity())
//
// The account package provides an Ethereum-style reference implementation.
//
// # Primitives
//
// [IKeyExchange] and [IExchangeKeyPair] supply Diffie-Hellman keypairs;
// [ISymmetricCipher] supplies authenticated encryption keyed by the
// resulting secrets. The crypto package implements both on secp256k1 and
// NaCl secretbox.
package interfaces
