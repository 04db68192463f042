// Package account is the reference implementation of the external account
// capabilities consumed by keybind: an Ethereum-style secp256k1 account.
//
// The account's identity is its 20-byte address, rendered as EIP-55
// checksummed hex:
//
//	acct, err := account.Generate()
//	fmt.Println(acct.Identity()) // 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed
//
// Signatures follow the personal_sign convention. The message is prefixed
// with "\x19Ethereum Signed Message:\n" and its decimal length, hashed with
// Keccak-256 and signed into a 65-byte R || S || V signature. [Verifier]
// recovers the signer's public key and compares the derived address against
// the claimed identity, so no key registry is needed to verify.
//
// Personal encryption is ECIES to the account key: an ephemeral secp256k1
// key agrees a secret with the account, HKDF-SHA256 expands it and
// XChaCha20-Poly1305 seals the data. Only the account can decrypt.
//
// [Account] satisfies interfaces.ISigner, interfaces.IVerifier and
// interfaces.IPersonalCipher at once.
package account
