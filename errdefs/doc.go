// Package errdefs defines the error taxonomy shared by the keybind packages.
//
// Every failure surfaced by the key manager, the group registry and the user
// composition root wraps exactly one of the sentinels below, so callers can
// branch with errors.Is instead of matching strings.
//
// # Categories
//
//   - ErrConflict: an identity is already bound to a different exchange key,
//     or a group id is already registered.
//   - ErrUnauthenticated: an identity proof is incomplete or its signature
//     does not recover to the claimed identity.
//   - ErrUnbound: an operation needs a binding for an identity that has none.
//   - ErrCipherFailure: authenticated decryption failed.
//   - ErrMalformedInput: a payload, key or invite could not be parsed.
//
// # Usage
//
// Wrap with context at the call site:
//
//	return fmt.Errorf("%w: identity %s", errdefs.ErrUnbound, id)
//
// and test for the category at the caller:
//
//	if errdefs.IsUnbound(err) {
//	    // ask the peer for an identity proof first
//	}
//
// Errors returned by injected capabilities (signers, personal ciphers) are
// wrapped with %w but never remapped, so their own identity is preserved.
package errdefs
