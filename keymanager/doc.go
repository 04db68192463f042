// Package keymanager implements the trust-establishment half of keybind:
// one identity's exchange keypair, a store of verified bindings from peer
// identities to their exchange keys, and pairwise encryption on top of it.
//
// A binding is only created from an [IdentityProof] whose signature over the
// exchange key verifies against the claimed identity. Once bound, an identity
// can never be re-pointed at a different key:
//
//	proof, err := bob.ProduceIdentityProof(ctx)
//	// ... transport proof to alice ...
//	if err := alice.AddBinding(proof); err != nil {
//	    // errdefs.ErrUnauthenticated or errdefs.ErrConflict
//	}
//	ct, err := alice.EncryptFor([]byte("hi"), bob.Identity())
//
// Signing and personal encryption are delegated to injected capabilities and
// may block; they receive the caller's context unchanged.
package keymanager
