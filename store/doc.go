// Package store persists a local keybind account and its User state in a
// passphrase-protected directory.
//
// Two entries are kept in an encrypted key store:
//
//	account.key  the account's secp256k1 private key
//	state.bin    the User backup produced by EncryptSerialized
//
// The state entry is therefore sealed twice: once to the account by the
// personal cipher and once more by the passphrase-derived store key.
package store
